package ctank

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ChiaYing-Chen/Chemical-MANG-SYSTEM-sub001/pkg"
)

/* COOLING WATER SYSTEM PARAMETERS */

func WriteCWSParameter(param *CWSParameter) (err error) {

	if _, err = GetTank(param.TankID); err != nil {
		return
	}
	param.ID = 0
	res := pkg.CTMS.DB.Create(param)
	return res.Error
}

func GetCWSParameter(id int64) (param CWSParameter, err error) {

	res := pkg.CTMS.DB.First(&param, "id = ?", id)
	if res.Error == gorm.ErrRecordNotFound {
		err = fmt.Errorf("CWS parameter record %d does not exist", id)
		return
	}
	err = res.Error
	return
}

func GetCWSParameterList() (params []CWSParameter, err error) {

	res := pkg.CTMS.DB.Order("date DESC, id DESC").Find(&params)
	err = res.Error
	return
}

/* FULL PARAMETER HISTORY FOR ONE TANK, MOST RECENT FIRST */
func GetCWSHistoryByTank(tankID int64) (params []CWSParameter, err error) {

	if _, err = GetTank(tankID); err != nil {
		return
	}
	res := pkg.CTMS.DB.
		Where("tank_id = ?", tankID).
		Order("date DESC, id DESC").
		Find(&params)
	err = res.Error
	return
}

func UpdateCWSParameter(param *CWSParameter) (err error) {

	if _, err = GetCWSParameter(param.ID); err != nil {
		return
	}
	res := pkg.CTMS.DB.Save(param)
	return res.Error
}

func DeleteCWSParameter(id int64) (err error) {

	if _, err = GetCWSParameter(id); err != nil {
		return
	}
	res := pkg.CTMS.DB.Delete(&CWSParameter{}, id)
	return res.Error
}

/* BOILER WATER SYSTEM PARAMETERS */

func WriteBWSParameter(param *BWSParameter) (err error) {

	if _, err = GetTank(param.TankID); err != nil {
		return
	}
	param.ID = 0
	res := pkg.CTMS.DB.Create(param)
	return res.Error
}

func GetBWSParameter(id int64) (param BWSParameter, err error) {

	res := pkg.CTMS.DB.First(&param, "id = ?", id)
	if res.Error == gorm.ErrRecordNotFound {
		err = fmt.Errorf("BWS parameter record %d does not exist", id)
		return
	}
	err = res.Error
	return
}

func GetBWSParameterList() (params []BWSParameter, err error) {

	res := pkg.CTMS.DB.Order("date DESC, id DESC").Find(&params)
	err = res.Error
	return
}

func GetBWSHistoryByTank(tankID int64) (params []BWSParameter, err error) {

	if _, err = GetTank(tankID); err != nil {
		return
	}
	res := pkg.CTMS.DB.
		Where("tank_id = ?", tankID).
		Order("date DESC, id DESC").
		Find(&params)
	err = res.Error
	return
}

func UpdateBWSParameter(param *BWSParameter) (err error) {

	if _, err = GetBWSParameter(param.ID); err != nil {
		return
	}
	res := pkg.CTMS.DB.Save(param)
	return res.Error
}

func DeleteBWSParameter(id int64) (err error) {

	if _, err = GetBWSParameter(id); err != nil {
		return
	}
	res := pkg.CTMS.DB.Delete(&BWSParameter{}, id)
	return res.Error
}
