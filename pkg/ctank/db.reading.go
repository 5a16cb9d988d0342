package ctank

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ChiaYing-Chen/Chemical-MANG-SYSTEM-sub001/pkg"
)

/*
WRITE A SINGLE READING

DERIVED FIELDS ARE RECOMPUTED FROM LEVEL + GEOMETRY + ACTIVE SUPPLY
BEFORE THE ROW IS WRITTEN; A GEOMETRY CONFIGURATION ERROR ABORTS THE WRITE
*/
func WriteReading(reading *Reading) (err error) {

	tank, err := GetTank(reading.TankID)
	if err != nil {
		return
	}
	supplies, err := GetSuppliesByTank(reading.TankID)
	if err != nil {
		return
	}
	if err = reading.Calculate(&tank, supplies); err != nil {
		return
	}

	reading.ID = 0
	res := pkg.CTMS.DB.Create(reading)
	return res.Error
}

func GetReading(id int64) (reading Reading, err error) {

	res := pkg.CTMS.DB.First(&reading, "id = ?", id)
	if res.Error == gorm.ErrRecordNotFound {
		err = fmt.Errorf("Reading %d does not exist", id)
		return
	}
	err = res.Error
	return
}

/* TIME-ORDERED; from / to ARE UNIX MS, ZERO MEANS UNBOUNDED */
func GetReadingsByTank(tankID, from, to int64) (readings []Reading, err error) {

	qry := pkg.CTMS.DB.Where("tank_id = ?", tankID)
	if from > 0 {
		qry = qry.Where("timestamp >= ?", from)
	}
	if to > 0 {
		qry = qry.Where("timestamp <= ?", to)
	}
	res := qry.Order("timestamp ASC, id ASC").Find(&readings)
	err = res.Error
	return
}

func GetReadingList() (readings []Reading, err error) {

	res := pkg.CTMS.DB.Order("timestamp DESC, id DESC").Find(&readings)
	err = res.Error
	return
}

/* EDITS ARE SUPPORTED FOR CORRECTION; DERIVED FIELDS ARE RECOMPUTED */
func UpdateReading(reading *Reading) (err error) {

	if _, err = GetReading(reading.ID); err != nil {
		return
	}

	tank, err := GetTank(reading.TankID)
	if err != nil {
		return
	}
	supplies, err := GetSuppliesByTank(reading.TankID)
	if err != nil {
		return
	}
	if err = reading.Calculate(&tank, supplies); err != nil {
		return
	}

	res := pkg.CTMS.DB.Save(reading)
	return res.Error
}

func DeleteReading(id int64) (err error) {

	if _, err = GetReading(id); err != nil {
		return
	}
	res := pkg.CTMS.DB.Delete(&Reading{}, id)
	return res.Error
}

/*
BATCH CREATE; ALL ROWS SUCCEED OR NONE ARE WRITTEN

EACH ROW IS DERIVED THROUGH THE SAME CALCULATION PATH AS A SINGLE WRITE;
THE FIRST MALFORMED ROW ROLLS BACK THE WHOLE BATCH
*/
func WriteReadingsBatch(readings []Reading) (err error) {

	/* CACHED PER TANK; A BATCH TYPICALLY TARGETS FEW TANKS */
	tanks := map[int64]*Tank{}
	supplies := map[int64][]ChemicalSupply{}

	return pkg.CTMS.DB.Transaction(func(tx *gorm.DB) error {
		for i := range readings {
			reading := &readings[i]

			tank, ok := tanks[reading.TankID]
			if !ok {
				t, err := GetTank(reading.TankID)
				if err != nil {
					return err
				}
				sups, err := GetSuppliesByTank(reading.TankID)
				if err != nil {
					return err
				}
				tank = &t
				tanks[reading.TankID] = tank
				supplies[reading.TankID] = sups
			}

			if reading.Timestamp == 0 {
				return fmt.Errorf("Batch row %d: missing timestamp", i)
			}
			if err := reading.Calculate(tank, supplies[reading.TankID]); err != nil {
				return fmt.Errorf("Batch row %d: %s", i, err.Error())
			}

			reading.ID = 0
			if res := tx.Create(reading); res.Error != nil {
				return res.Error
			}
		}
		return nil
	})
}

/*
RUN THE DETECTOR OVER A TANK'S COMMITTED READINGS

READ-ONLY; MERGES ANY PERSISTED REVIEW OUTCOMES ONTO THE FRESH ALERT SET
*/
func GetTankFluctuations(tankID int64, thresholdFraction float64) (alerts []FluctuationAlert, err error) {

	tank, err := GetTank(tankID)
	if err != nil {
		return
	}
	readings, err := GetReadingsByTank(tankID, 0, 0)
	if err != nil {
		return
	}
	reviews, err := GetAlertReviewsByTank(tankID)
	if err != nil {
		return
	}

	alerts = DetectFluctuations(&tank, readings, thresholdFraction, ORIGIN_MANUAL)
	alerts = MergeAlertReviews(alerts, reviews)
	return
}
