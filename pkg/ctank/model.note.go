package ctank

/*
IMPORTANT NOTE - AS WRITTEN TO THE CTMS DATABASE

FREE-TEXT ANNOTATION; RECORDS ANOMALY EXPLANATIONS AND MAINTENANCE EVENTS,
OPTIONALLY LINKED TO A TANK'S AREA / CHEMICAL
*/
type ImportantNote struct {
	ID int64 `gorm:"unique; primaryKey" json:"id"`

	DateStr      string `gorm:"column:date_str; not null; varchar(24)" json:"date_str" validate:"required"`
	Area         string `gorm:"varchar(100)" json:"area"`
	ChemicalName string `gorm:"varchar(100)" json:"chemical_name"`
	Note         string `gorm:"not null; varchar(1024)" json:"note" validate:"required"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli" json:"created_at"`
}

func (ImportantNote) TableName() string { return "important_notes" }
