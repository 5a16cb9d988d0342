package ctank

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ChiaYing-Chen/Chemical-MANG-SYSTEM-sub001/pkg"
)

/* TABLES OWNED BY THIS PACKAGE; MIGRATED AT STARTUP */
func Models() []interface{} {
	return []interface{}{
		&Tank{},
		&ChemicalSupply{},
		&Reading{},
		&CWSParameter{},
		&BWSParameter{},
		&ImportantNote{},
		&AlertReview{},
	}
}

func WriteTank(tank *Tank) (err error) {

	if err = tank.Validate(); err != nil {
		return
	}
	tank.ID = 0
	res := pkg.CTMS.DB.Create(tank)
	return res.Error
}

func GetTank(id int64) (tank Tank, err error) {

	res := pkg.CTMS.DB.First(&tank, "id = ?", id)
	if res.Error == gorm.ErrRecordNotFound {
		err = fmt.Errorf("Tank %d does not exist", id)
		return
	}
	err = res.Error
	return
}

func GetTankList() (tanks []Tank, err error) {

	res := pkg.CTMS.DB.Order("sort_order ASC, id ASC").Find(&tanks)
	err = res.Error
	return
}

func UpdateTank(tank *Tank) (err error) {

	if err = tank.Validate(); err != nil {
		return
	}
	if _, err = GetTank(tank.ID); err != nil {
		return
	}
	res := pkg.CTMS.DB.Save(tank)
	return res.Error
}

func DeleteTank(id int64) (err error) {

	if _, err = GetTank(id); err != nil {
		return
	}
	res := pkg.CTMS.DB.Delete(&Tank{}, id)
	return res.Error
}

/* BATCH CREATE; ALL ROWS SUCCEED OR NONE ARE WRITTEN */
func WriteTanksBatch(tanks []Tank) (err error) {

	return pkg.CTMS.DB.Transaction(func(tx *gorm.DB) error {
		for i := range tanks {
			if err := tanks[i].Validate(); err != nil {
				return err
			}
			tanks[i].ID = 0
			if res := tx.Create(&tanks[i]); res.Error != nil {
				return res.Error
			}
		}
		return nil
	})
}

/* ASSIGNS EACH TANK ITS POSITION IN ids AS THE NEW SORT ORDER */
func ReorderTanks(ids []int64) (err error) {

	return pkg.CTMS.DB.Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			res := tx.Model(&Tank{}).Where("id = ?", id).Update("sort_order", i)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("Tank %d does not exist", id)
			}
		}
		return nil
	})
}
