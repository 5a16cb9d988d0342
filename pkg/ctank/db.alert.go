package ctank

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ChiaYing-Chen/Chemical-MANG-SYSTEM-sub001/pkg"
)

/*
RECORD A REVIEW OUTCOME FOR AN ALERT

UPSERT ON THE ALERT IDENTITY (tank_id, timestamp): RE-REVIEWING AN ALERT
REPLACES THE EARLIER OUTCOME
*/
func WriteAlertReview(review *AlertReview) (err error) {

	if _, err = GetTank(review.TankID); err != nil {
		return
	}
	if review.NoteID != nil {
		if _, err = GetNote(*review.NoteID); err != nil {
			return
		}
	}

	res := pkg.CTMS.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tank_id"}, {Name: "timestamp"}},
		DoUpdates: clause.AssignmentColumns([]string{"dismissed", "note_id"}),
	}).Create(review)
	return res.Error
}

func GetAlertReviewsByTank(tankID int64) (reviews []AlertReview, err error) {

	res := pkg.CTMS.DB.
		Where("tank_id = ?", tankID).
		Order("timestamp ASC").
		Find(&reviews)
	err = res.Error
	return
}

func DeleteAlertReview(tankID, timestamp int64) (err error) {

	res := pkg.CTMS.DB.
		Where("tank_id = ? AND timestamp = ?", tankID, timestamp).
		Delete(&AlertReview{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("No review recorded for tank %d at %d", tankID, timestamp)
	}
	return
}

/* BATCH DISMISS; ALL ROWS SUCCEED OR NONE ARE WRITTEN */
func WriteAlertReviewsBatch(reviews []AlertReview) (err error) {

	return pkg.CTMS.DB.Transaction(func(tx *gorm.DB) error {
		for i := range reviews {
			if _, err := GetTank(reviews[i].TankID); err != nil {
				return err
			}
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "tank_id"}, {Name: "timestamp"}},
				DoUpdates: clause.AssignmentColumns([]string{"dismissed", "note_id"}),
			}).Create(&reviews[i])
			if res.Error != nil {
				return res.Error
			}
		}
		return nil
	})
}
