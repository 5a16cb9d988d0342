package ctank

/*
CHEMICAL SUPPLY - AS WRITTEN TO THE CTMS DATABASE

ONE ROW PER CONTRACT; PAST PERIODS ARE NEVER MUTATED IN PLACE,
A NEW CONTRACT IS A NEW ROW WITH A LATER START DATE
*/
type ChemicalSupply struct {
	ID     int64 `gorm:"unique; primaryKey" json:"id"`
	TankID int64 `gorm:"not null; index" json:"tank_id" validate:"required"`

	SupplierName    string  `gorm:"not null; varchar(100)" json:"supplier_name" validate:"required"`
	ChemicalName    string  `gorm:"not null; varchar(100)" json:"chemical_name" validate:"required"`
	SpecificGravity float64 `gorm:"not null" json:"specific_gravity" validate:"required,gt=0"`
	Price           float64 `json:"price"`
	StartDate       int64   `gorm:"not null" json:"start_date" validate:"required"`
	Notes           string  `gorm:"varchar(512)" json:"notes"`
	TargetPPM       float64 `gorm:"column:target_ppm" json:"target_ppm"`

	Tank Tank `gorm:"foreignKey:TankID" json:"-"`
}

/*
ACTIVE-SUPPLY RESOLVER

SELECTS THE CONTRACT IN FORCE AT at: LATEST StartDate <= at.
TIES ON StartDate GO TO THE HIGHER ID (LATER INSERTION).
RETURNS nil WHEN NO CONTRACT HAS STARTED.
*/
func ResolveActiveSupply(supplies []ChemicalSupply, at int64) *ChemicalSupply {

	var active *ChemicalSupply
	for i := range supplies {
		sup := &supplies[i]
		if sup.StartDate > at {
			continue
		}
		if active == nil ||
			sup.StartDate > active.StartDate ||
			(sup.StartDate == active.StartDate && sup.ID > active.ID) {
			active = sup
		}
	}
	return active
}
