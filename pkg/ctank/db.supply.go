package ctank

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ChiaYing-Chen/Chemical-MANG-SYSTEM-sub001/pkg"
)

func WriteSupply(supply *ChemicalSupply) (err error) {

	if _, err = GetTank(supply.TankID); err != nil {
		return
	}
	supply.ID = 0
	res := pkg.CTMS.DB.Create(supply)
	return res.Error
}

func GetSupply(id int64) (supply ChemicalSupply, err error) {

	res := pkg.CTMS.DB.First(&supply, "id = ?", id)
	if res.Error == gorm.ErrRecordNotFound {
		err = fmt.Errorf("Chemical supply %d does not exist", id)
		return
	}
	err = res.Error
	return
}

func GetSupplyList() (supplies []ChemicalSupply, err error) {

	res := pkg.CTMS.DB.Order("start_date DESC, id DESC").Find(&supplies)
	err = res.Error
	return
}

func GetSuppliesByTank(tankID int64) (supplies []ChemicalSupply, err error) {

	res := pkg.CTMS.DB.
		Where("tank_id = ?", tankID).
		Order("start_date ASC, id ASC").
		Find(&supplies)
	err = res.Error
	return
}

func UpdateSupply(supply *ChemicalSupply) (err error) {

	if _, err = GetSupply(supply.ID); err != nil {
		return
	}
	res := pkg.CTMS.DB.Save(supply)
	return res.Error
}

func DeleteSupply(id int64) (err error) {

	if _, err = GetSupply(id); err != nil {
		return
	}
	res := pkg.CTMS.DB.Delete(&ChemicalSupply{}, id)
	return res.Error
}

/* BATCH CREATE; ALL ROWS SUCCEED OR NONE ARE WRITTEN */
func WriteSuppliesBatch(supplies []ChemicalSupply) (err error) {

	return pkg.CTMS.DB.Transaction(func(tx *gorm.DB) error {
		for i := range supplies {
			if _, err := GetTank(supplies[i].TankID); err != nil {
				return err
			}
			supplies[i].ID = 0
			if res := tx.Create(&supplies[i]); res.Error != nil {
				return res.Error
			}
		}
		return nil
	})
}
