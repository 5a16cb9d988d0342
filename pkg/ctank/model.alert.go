package ctank

/* ALERT ORIGIN TAGS */
const (
	ORIGIN_MANUAL = "manual"
	ORIGIN_IMPORT = "import"
)

/*
FLUCTUATION ALERT - DERIVED, NOT A PRIMARY TABLE

PRODUCED BY THE DETECTOR FROM ADJACENT READING PAIRS; IDENTITY IS
(TankID, Timestamp) WHERE Timestamp IS THE LATER READING OF THE PAIR
*/
type FluctuationAlert struct {
	TankID   int64  `json:"tank_id"`
	TankName string `json:"tank_name"`

	PrevTimestamp int64 `json:"prev_timestamp"`
	Timestamp     int64 `json:"timestamp"`

	PrevVolume float64 `json:"prev_volume"`
	CurrVolume float64 `json:"curr_volume"`

	DailyRate          float64 `json:"daily_rate"`
	ThresholdLitersDay float64 `json:"threshold_liters_day"`

	Reason           string `json:"reason"`
	IsPossibleRefill bool   `json:"is_possible_refill"`
	Origin           string `json:"origin"`

	/* SET ONCE AN OPERATOR HAS REVIEWED THE ALERT */
	NoteID    *int64 `json:"note_id,omitempty"`
	Dismissed bool   `json:"dismissed"`
}

/*
ALERT REVIEW - AS WRITTEN TO THE CTMS DATABASE

AN ALERT IS TRANSIENT UNTIL AN OPERATOR ANNOTATES OR DISMISSES IT;
THE REVIEW ROW CARRIES THAT OUTCOME KEYED BY THE ALERT IDENTITY
*/
type AlertReview struct {
	ID     int64 `gorm:"unique; primaryKey" json:"id"`
	TankID int64 `gorm:"not null; index:idx_alert_identity,unique" json:"tank_id" validate:"required"`

	Timestamp int64  `gorm:"not null; index:idx_alert_identity,unique" json:"timestamp" validate:"required"`
	Dismissed bool   `json:"dismissed"`
	NoteID    *int64 `json:"note_id"`

	CreatedAt int64 `gorm:"autoCreateTime:milli" json:"created_at"`

	Tank Tank           `gorm:"foreignKey:TankID" json:"-"`
	Note *ImportantNote `gorm:"foreignKey:NoteID" json:"-"`
}

/* ATTACH PERSISTED REVIEW OUTCOMES TO FRESHLY DETECTED ALERTS */
func MergeAlertReviews(alerts []FluctuationAlert, reviews []AlertReview) []FluctuationAlert {

	byIdentity := make(map[int64]map[int64]*AlertReview, len(reviews))
	for i := range reviews {
		rev := &reviews[i]
		if byIdentity[rev.TankID] == nil {
			byIdentity[rev.TankID] = make(map[int64]*AlertReview)
		}
		byIdentity[rev.TankID][rev.Timestamp] = rev
	}

	for i := range alerts {
		if rev, ok := byIdentity[alerts[i].TankID][alerts[i].Timestamp]; ok {
			alerts[i].NoteID = rev.NoteID
			alerts[i].Dismissed = rev.Dismissed
		}
	}
	return alerts
}
