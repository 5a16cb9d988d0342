package ctank

import (
	"math"
)

/* CM³ PER LITER */
const cm3PerLiter = 1000.0

/*
GEOMETRY / VOLUME CALCULATOR

CONVERTS A RAW LEVEL MEASUREMENT TO LIQUID VOLUME IN LITERS.
  - PERCENT-UNIT TANKS: FRACTION OF CAPACITY
  - LINEAR-FACTOR TANKS: LEVEL * LITERS-PER-CM, CLAMPED TO [0, CAPACITY]
  - SHAPED TANKS: CLOSED-FORM CROSS-SECTION INTEGRAL OVER Dimensions,
    LEVEL MEASURED ABOVE THE SENSOR OFFSET

overCap REPORTS A LEVEL THAT IMPLIES MORE THAN THE CONFIGURED CAPACITY;
THE RETURNED VOLUME IS CLAMPED TO CAPACITY IN THAT CASE
*/
func VolumeFromLevel(tank *Tank, level float64) (liters float64, overCap bool, err error) {

	if err = tank.ValidateGeometry(); err != nil {
		return 0, false, err
	}

	switch {
	case tank.InputUnit == UNIT_PERCENT:
		liters = tank.CapacityLiters * level / 100

	case tank.GeoFactor > 0:
		liters = level * tank.GeoFactor

	default:
		liters, err = shapedVolume(tank, level)
		if err != nil {
			return 0, false, err
		}
	}

	if liters < 0 {
		liters = 0
	}
	if liters > tank.CapacityLiters {
		liters = tank.CapacityLiters
		overCap = true
	}
	return
}

/* MASS IN KG FROM VOLUME IN LITERS AND SPECIFIC GRAVITY */
func MassFromVolume(liters, sg float64) float64 {
	return liters * sg
}

func shapedVolume(tank *Tank, levelCm float64) (liters float64, err error) {

	dim := tank.Dimensions

	/* LEVEL BELOW THE SENSOR OFFSET FLOORS AT ZERO */
	h := levelCm - dim.SensorOffsetCm
	if h <= 0 {
		return 0, nil
	}

	switch tank.ShapeType {

	case SHAPE_VERTICAL_CYLINDER:
		if h > dim.HeightCm {
			h = dim.HeightCm
		}
		r := dim.DiameterCm / 2
		liters = math.Pi * r * r * h / cm3PerLiter

	case SHAPE_RECTANGULAR:
		if h > dim.HeightCm {
			h = dim.HeightCm
		}
		liters = dim.LengthCm * dim.WidthCm * h / cm3PerLiter

	case SHAPE_HORIZONTAL_CYLINDER:
		if h > dim.DiameterCm {
			h = dim.DiameterCm
		}
		liters = horizontalCylinderVolume(dim.DiameterCm/2, dim.LengthCm, h, dim.HeadType) / cm3PerLiter
	}
	return
}

/*
PARTIAL VOLUME OF A HORIZONTAL CYLINDER AT FILL HEIGHT h (CM³)

BARREL: CIRCULAR SEGMENT AREA * LENGTH
HEADS: BOTH ENDS TOGETHER FORM A (SCALED) SPHERE; THE PAIRED CAP VOLUME
(π h²/3)(3r−h) IS SCALED BY THE HEAD DEPTH RATIO
*/
func horizontalCylinderVolume(r, length, h float64, headType string) float64 {

	/* CIRCULAR SEGMENT AREA AT FILL HEIGHT h */
	segment := r*r*math.Acos((r-h)/r) - (r-h)*math.Sqrt(2*r*h-h*h)
	barrel := segment * length

	var headFactor float64
	switch headType {
	case HEAD_HEMISPHERICAL:
		headFactor = 1.0
	case HEAD_SEMI_ELLIPTICAL:
		headFactor = 0.5 /* HEAD DEPTH r/2 FOR A 2:1 ELLIPTICAL HEAD */
	default:
		headFactor = 0 /* FLAT OR UNSET */
	}

	heads := headFactor * (math.Pi * h * h / 3) * (3*r - h)

	return barrel + heads
}
