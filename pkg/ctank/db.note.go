package ctank

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ChiaYing-Chen/Chemical-MANG-SYSTEM-sub001/pkg"
)

func WriteNote(note *ImportantNote) (err error) {

	note.ID = 0
	res := pkg.CTMS.DB.Create(note)
	return res.Error
}

func GetNote(id int64) (note ImportantNote, err error) {

	res := pkg.CTMS.DB.First(&note, "id = ?", id)
	if res.Error == gorm.ErrRecordNotFound {
		err = fmt.Errorf("Note %d does not exist", id)
		return
	}
	err = res.Error
	return
}

func GetNoteList() (notes []ImportantNote, err error) {

	res := pkg.CTMS.DB.Order("created_at DESC, id DESC").Find(&notes)
	err = res.Error
	return
}

func UpdateNote(note *ImportantNote) (err error) {

	if _, err = GetNote(note.ID); err != nil {
		return
	}
	res := pkg.CTMS.DB.Save(note)
	return res.Error
}

func DeleteNote(id int64) (err error) {

	if _, err = GetNote(id); err != nil {
		return
	}
	res := pkg.CTMS.DB.Delete(&ImportantNote{}, id)
	return res.Error
}

/* BATCH CREATE; ALL ROWS SUCCEED OR NONE ARE WRITTEN */
func WriteNotesBatch(notes []ImportantNote) (err error) {

	return pkg.CTMS.DB.Transaction(func(tx *gorm.DB) error {
		for i := range notes {
			notes[i].ID = 0
			if res := tx.Create(&notes[i]); res.Error != nil {
				return res.Error
			}
		}
		return nil
	})
}
