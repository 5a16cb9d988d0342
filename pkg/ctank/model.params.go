package ctank

/*
COOLING WATER SYSTEM DOSING PARAMETERS

HISTORY-SUPPORTING: OWN PRIMARY KEY + EFFECTIVE DATE, MULTIPLE ROWS PER
TANK; THE ROW WITH THE LATEST DATE <= NOW IS THE ONE IN FORCE
*/
type CWSParameter struct {
	ID     int64 `gorm:"unique; primaryKey" json:"id"`
	TankID int64 `gorm:"not null; index" json:"tank_id" validate:"required"`

	CirculationRate     float64 `json:"circulation_rate"`
	TempOutlet          float64 `json:"temp_outlet"`
	TempReturn          float64 `json:"temp_return"`
	TempDiff            float64 `json:"temp_diff"`
	CWSHardness         float64 `gorm:"column:cws_hardness" json:"cws_hardness"`
	MakeupHardness      float64 `json:"makeup_hardness"`
	ConcentrationCycles float64 `json:"concentration_cycles"`
	Date                int64   `gorm:"not null; index" json:"date" validate:"required"`

	Tank Tank `gorm:"foreignKey:TankID" json:"-"`
}

func (CWSParameter) TableName() string { return "cws_parameters" }

/* BOILER WATER SYSTEM DOSING PARAMETERS; SAME HISTORY MODEL */
type BWSParameter struct {
	ID     int64 `gorm:"unique; primaryKey" json:"id"`
	TankID int64 `gorm:"not null; index" json:"tank_id" validate:"required"`

	SteamProduction float64 `json:"steam_production"`
	Date            int64   `gorm:"not null; index" json:"date" validate:"required"`

	Tank Tank `gorm:"foreignKey:TankID" json:"-"`
}

func (BWSParameter) TableName() string { return "bws_parameters" }
