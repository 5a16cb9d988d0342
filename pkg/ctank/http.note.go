package ctank

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ChiaYing-Chen/Chemical-MANG-SYSTEM-sub001/pkg"
)

func InitializeNoteRoutes(api *fiber.App) {

	api.Get("/notes", pkg.CTMSAuth, HandleGetNotes)
	api.Post("/notes", pkg.CTMSAuth, HandleCreateNote)
	api.Put("/notes/:id", pkg.CTMSAuth, HandleUpdateNote)
	api.Delete("/notes/:id", pkg.CTMSAuth, HandleDeleteNote)
	api.Post("/notes/batch", pkg.CTMSAuth, HandleCreateNotesBatch)
}

func HandleGetNotes(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Viewer(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be a viewer to list notes",
		})
	}

	notes, err := GetNoteList()
	if err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"notes": notes},
	})
}

func HandleCreateNote(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to create notes",
		})
	}

	/* PARSE AND VALIDATE REQUEST DATA */
	note := ImportantNote{}
	if err = c.BodyParser(&note); err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}
	if errors := pkg.ValidateStruct(note); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "fail",
			"errors": errors,
		})
	}

	if err = WriteNote(&note); err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"note": note},
	})
}

func HandleUpdateNote(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to update notes",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid note id",
		})
	}

	note := ImportantNote{}
	if err = c.BodyParser(&note); err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}
	note.ID = int64(id)
	if errors := pkg.ValidateStruct(note); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "fail",
			"errors": errors,
		})
	}

	if err = UpdateNote(&note); err != nil {
		pkg.LogErr(err)
		return c.Status(notFoundOr(err, fiber.StatusBadRequest)).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"note": note},
	})
}

func HandleDeleteNote(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to delete notes",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid note id",
		})
	}

	if err = DeleteNote(int64(id)); err != nil {
		pkg.LogErr(err)
		return c.Status(notFoundOr(err, fiber.StatusInternalServerError)).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Note deleted",
	})
}

func HandleCreateNotesBatch(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to create notes",
		})
	}

	notes := []ImportantNote{}
	if err = c.BodyParser(&notes); err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}
	for i := range notes {
		if errors := pkg.ValidateStruct(notes[i]); errors != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status": "fail",
				"errors": errors,
			})
		}
	}

	if err = WriteNotesBatch(notes); err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"notes": notes},
	})
}
