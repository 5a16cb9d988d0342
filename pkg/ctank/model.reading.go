package ctank

/*
READING - AS WRITTEN TO THE CTMS DATABASE

CalculatedVolume / CalculatedWeightKg / AppliedSG ARE DERIVED SERVER-SIDE
FROM LevelCm + TANK GEOMETRY + THE ACTIVE SUPPLY; CLIENT VALUES FOR THOSE
FIELDS ARE IGNORED ON WRITE
*/
type Reading struct {
	ID     int64 `gorm:"unique; primaryKey" json:"id"`
	TankID int64 `gorm:"not null; index" json:"tank_id" validate:"required"`

	Timestamp int64   `gorm:"not null" json:"timestamp" validate:"required"`
	LevelCm   float64 `json:"level_cm"`

	CalculatedVolume   float64 `json:"calculated_volume"`
	CalculatedWeightKg float64 `json:"calculated_weight_kg"`
	AppliedSG          float64 `gorm:"column:applied_sg" json:"applied_sg"`

	SupplyID          *int64  `json:"supply_id"`
	AddedAmountLiters float64 `json:"added_amount_liters"`
	OperatorName      string  `gorm:"varchar(100)" json:"operator_name"`

	/* SET WHEN THE RAW LEVEL IMPLIES MORE THAN THE CONFIGURED CAPACITY;
	THE PERSISTED VOLUME IS CLAMPED, THE CONDITION IS NOT */
	OverCapacity bool `json:"over_capacity"`

	/* SET WHEN THE DERIVED WEIGHT REACHES THE TANK'S MaxCapacityWarningKg */
	MaxWeightWarning bool `json:"max_weight_warning"`

	/* SET WHEN THE OPERATOR OVERRIDES THE RESOLVED SPECIFIC GRAVITY AT ENTRY TIME */
	SGOverride float64 `gorm:"-" json:"sg_override,omitempty"`

	Tank   Tank            `gorm:"foreignKey:TankID" json:"-"`
	Supply *ChemicalSupply `gorm:"foreignKey:SupplyID" json:"-"`
}

/*
DERIVE VOLUME / WEIGHT / APPLIED SG FOR THIS READING

THE SINGLE SHARED PATH FOR MANUAL ENTRY, BATCH IMPORT AND MQTT INGEST;
THE DETECTOR READS THE PERSISTED RESULTS OF THIS SAME CALCULATION
*/
func (reading *Reading) Calculate(tank *Tank, supplies []ChemicalSupply) (err error) {

	volume, overCap, err := VolumeFromLevel(tank, reading.LevelCm)
	if err != nil {
		return err
	}
	reading.CalculatedVolume = volume
	reading.OverCapacity = overCap

	sg := reading.SGOverride
	if sg <= 0 {
		if active := ResolveActiveSupply(supplies, reading.Timestamp); active != nil {
			sg = active.SpecificGravity
			reading.SupplyID = &active.ID
		} else {
			sg = 1.0 /* NO CONTRACT IN FORCE: WATER-EQUIVALENT */
		}
	}
	reading.AppliedSG = sg
	reading.CalculatedWeightKg = MassFromVolume(volume, sg)
	reading.MaxWeightWarning = tank.MaxCapacityWarningKg > 0 &&
		reading.CalculatedWeightKg >= tank.MaxCapacityWarningKg

	return
}
