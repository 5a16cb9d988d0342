package ctank

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

/* TANK SYSTEM CATEGORIES */
const (
	SYSTEM_BOILER          = "boiler"
	SYSTEM_COOLING         = "cooling"
	SYSTEM_WASTEWATER      = "wastewater"
	SYSTEM_DENITRIFICATION = "denitrification"
)

/* DOSING CALCULATION METHODS */
const (
	CALC_NONE         = "NONE"
	CALC_CWS_BLOWDOWN = "CWS_BLOWDOWN"
	CALC_BWS_STEAM    = "BWS_STEAM"
)

/* EXPLICIT TANK SHAPES */
const (
	SHAPE_VERTICAL_CYLINDER   = "vertical_cylinder"
	SHAPE_HORIZONTAL_CYLINDER = "horizontal_cylinder"
	SHAPE_RECTANGULAR         = "rectangular"
)

/* HORIZONTAL CYLINDER HEAD TYPES */
const (
	HEAD_FLAT            = "flat"
	HEAD_HEMISPHERICAL   = "hemispherical"
	HEAD_SEMI_ELLIPTICAL = "semi_elliptical_2_1"
)

/* LEVEL INPUT UNITS */
const (
	UNIT_CM      = "cm"
	UNIT_PERCENT = "percent"
)

/* DEFAULT IMPORT-VALIDATION THRESHOLD WHEN A TANK DOES NOT SET ONE (PERCENT OF CAPACITY) */
const DEFAULT_VALIDATION_THRESHOLD = 30.0

/*
TANK - AS WRITTEN TO THE CTMS DATABASE

A TANK'S LEVEL IS CONVERTED TO VOLUME ONE OF THREE WAYS:
  - InputUnit == "percent": volume = capacity * level / 100
  - GeoFactor > 0: volume = level_cm * GeoFactor, clamped to capacity
  - ShapeType set: closed-form geometry over Dimensions
*/
type Tank struct {
	ID int64 `gorm:"unique; primaryKey" json:"id"`

	Name        string `gorm:"not null; varchar(100)" json:"name" validate:"required"`
	SystemType  string `gorm:"not null; varchar(24)" json:"system_type" validate:"required"`
	Description string `gorm:"varchar(512)" json:"description"`

	CapacityLiters float64 `gorm:"not null" json:"capacity_liters" validate:"required,gt=0"`
	GeoFactor      float64 `json:"geo_factor"`

	SafeMinLevel     float64 `json:"safe_min_level"`
	TargetDailyUsage float64 `json:"target_daily_usage"`

	CalculationMethod string `gorm:"varchar(24); default:'NONE'" json:"calculation_method"`

	ShapeType  string         `gorm:"varchar(24)" json:"shape_type"`
	Dimensions TankDimensions `gorm:"type:jsonb" json:"dimensions"`
	InputUnit  string         `gorm:"varchar(10); default:'cm'" json:"input_unit"`

	SortOrder            int32   `json:"sort_order"`
	ValidationThreshold  float64 `json:"validation_threshold"`
	MaxCapacityWarningKg float64 `json:"max_capacity_warning_kg"`

	Supplies []ChemicalSupply `gorm:"foreignKey:TankID" json:"-"`
	Readings []Reading        `gorm:"foreignKey:TankID" json:"-"`
}

/* TANK SHAPE DIMENSIONS; STORED AS A SINGLE JSONB COLUMN */
type TankDimensions struct {
	DiameterCm     float64 `json:"diameter_cm,omitempty"`
	LengthCm       float64 `json:"length_cm,omitempty"`
	WidthCm        float64 `json:"width_cm,omitempty"`
	HeightCm       float64 `json:"height_cm,omitempty"`
	SensorOffsetCm float64 `json:"sensor_offset_cm,omitempty"`
	HeadType       string  `json:"head_type,omitempty"`
}

func (d TankDimensions) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *TankDimensions) Scan(value interface{}) error {
	if value == nil {
		*d = TankDimensions{}
		return nil
	}
	switch b := value.(type) {
	case []byte:
		return json.Unmarshal(b, d)
	case string:
		return json.Unmarshal([]byte(b), d)
	default:
		return fmt.Errorf("Failed to scan tank dimensions: unsupported type %T", value)
	}
}

/*
TANK - VALIDATE CONFIGURATION
  - INVALID GEOMETRY IS AN ERROR REPORTED TO THE CALLER, NEVER SILENTLY DEFAULTED
*/
func (tank *Tank) Validate() (err error) {

	if tank.CapacityLiters <= 0 {
		return fmt.Errorf("Tank capacity must be positive: %f", tank.CapacityLiters)
	}

	if tank.SafeMinLevel < 0 || tank.SafeMinLevel > 100 {
		return fmt.Errorf("Tank safe minimum level must be within [0,100]: %f", tank.SafeMinLevel)
	}

	switch tank.SystemType {
	case SYSTEM_BOILER, SYSTEM_COOLING, SYSTEM_WASTEWATER, SYSTEM_DENITRIFICATION:
	default:
		return fmt.Errorf("Unknown tank system type: %s", tank.SystemType)
	}

	switch tank.CalculationMethod {
	case "", CALC_NONE, CALC_CWS_BLOWDOWN, CALC_BWS_STEAM:
	default:
		return fmt.Errorf("Unknown calculation method: %s", tank.CalculationMethod)
	}

	switch tank.InputUnit {
	case "", UNIT_CM, UNIT_PERCENT:
	default:
		return fmt.Errorf("Unknown input unit: %s", tank.InputUnit)
	}

	if tank.ValidationThreshold < 0 || tank.ValidationThreshold > 100 {
		return fmt.Errorf("Tank validation threshold must be within [0,100]: %f", tank.ValidationThreshold)
	}

	return tank.ValidateGeometry()
}

/* GEOMETRY CONFIGURATION MUST SUPPORT AT LEAST ONE CONVERSION METHOD */
func (tank *Tank) ValidateGeometry() (err error) {

	if tank.InputUnit == UNIT_PERCENT {
		return /* CAPACITY ALONE IS ENOUGH */
	}

	if tank.GeoFactor < 0 {
		return fmt.Errorf("Tank geometric factor must be positive: %f", tank.GeoFactor)
	}
	if tank.GeoFactor > 0 {
		return /* LINEAR FACTOR CONVERSION */
	}

	dim := tank.Dimensions
	switch tank.ShapeType {

	case SHAPE_VERTICAL_CYLINDER:
		if dim.DiameterCm <= 0 || dim.HeightCm <= 0 {
			err = fmt.Errorf("Vertical cylinder tank requires positive diameter and height")
		}

	case SHAPE_HORIZONTAL_CYLINDER:
		if dim.DiameterCm <= 0 || dim.LengthCm <= 0 {
			err = fmt.Errorf("Horizontal cylinder tank requires positive diameter and length")
		}
		switch dim.HeadType {
		case "", HEAD_FLAT, HEAD_HEMISPHERICAL, HEAD_SEMI_ELLIPTICAL:
		default:
			err = fmt.Errorf("Unknown head type: %s", dim.HeadType)
		}

	case SHAPE_RECTANGULAR:
		if dim.LengthCm <= 0 || dim.WidthCm <= 0 || dim.HeightCm <= 0 {
			err = fmt.Errorf("Rectangular tank requires positive length, width and height")
		}

	case "":
		err = fmt.Errorf("Tank has no geometric factor and no shape; level cannot be converted to volume")

	default:
		err = fmt.Errorf("Unknown tank shape type: %s", tank.ShapeType)
	}
	return
}

/* EFFECTIVE DETECTOR THRESHOLD AS A FRACTION OF CAPACITY */
func (tank *Tank) ThresholdFraction() float64 {
	if tank.ValidationThreshold > 0 {
		return tank.ValidationThreshold / 100
	}
	return DEFAULT_VALIDATION_THRESHOLD / 100
}
