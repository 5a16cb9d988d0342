package ctank

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ChiaYing-Chen/Chemical-MANG-SYSTEM-sub001/pkg"
)

func InitializeReadingRoutes(api *fiber.App) {

	api.Get("/readings", pkg.CTMSAuth, HandleGetReadings)
	api.Get("/readings/fluctuations", pkg.CTMSAuth, HandleGetFluctuations)
	api.Post("/readings", pkg.CTMSAuth, HandleCreateReading)
	api.Put("/readings/:id", pkg.CTMSAuth, HandleUpdateReading)
	api.Delete("/readings/:id", pkg.CTMSAuth, HandleDeleteReading)
	api.Post("/readings/batch", pkg.CTMSAuth, HandleCreateReadingsBatch)
	api.Post("/readings/import-xlsx", pkg.CTMSAuth, HandleImportReadingsXLSX)
}

func HandleGetReadings(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Viewer(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be a viewer to list readings",
		})
	}

	var readings []Reading
	if tankStr := c.Query("tank_id"); tankStr != "" {
		tankID, convErr := strconv.ParseInt(tankStr, 10, 64)
		if convErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "fail",
				"message": "Invalid tank_id",
			})
		}
		from, _ := strconv.ParseInt(c.Query("from"), 10, 64)
		to, _ := strconv.ParseInt(c.Query("to"), 10, 64)
		readings, err = GetReadingsByTank(tankID, from, to)
	} else {
		readings, err = GetReadingList()
	}
	if err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"readings": readings},
	})
}

/* RUN THE DETECTOR ON DEMAND OVER A TANK'S COMMITTED READINGS */
func HandleGetFluctuations(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Viewer(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be a viewer to review fluctuations",
		})
	}

	tankID, err := strconv.ParseInt(c.Query("tank_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid tank_id",
		})
	}

	/* OPTIONAL OVERRIDE; FRACTION OF CAPACITY, E.G. 0.3 */
	threshold, _ := strconv.ParseFloat(c.Query("threshold"), 64)

	alerts, err := GetTankFluctuations(tankID, threshold)
	if err != nil {
		pkg.LogErr(err)
		return c.Status(notFoundOr(err, fiber.StatusInternalServerError)).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	/* unexplained=true HIDES ALERTS ALREADY ANNOTATED OR DISMISSED */
	if c.Query("unexplained") == "true" {
		unexplained := []FluctuationAlert{}
		for _, alert := range alerts {
			if alert.NoteID == nil && !alert.Dismissed {
				unexplained = append(unexplained, alert)
			}
		}
		alerts = unexplained
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"alerts": alerts},
	})
}

func HandleCreateReading(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to create readings",
		})
	}

	/* PARSE AND VALIDATE REQUEST DATA */
	reading := Reading{}
	if err = c.BodyParser(&reading); err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}
	if errors := pkg.ValidateStruct(reading); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "fail",
			"errors": errors,
		})
	}

	if err = WriteReading(&reading); err != nil {
		pkg.LogErr(err)
		return c.Status(notFoundOr(err, fiber.StatusBadRequest)).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	FeedBroadcastReading(&reading)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"reading": reading},
	})
}

func HandleUpdateReading(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to update readings",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid reading id",
		})
	}

	/* PARSE AND VALIDATE REQUEST DATA */
	reading := Reading{}
	if err = c.BodyParser(&reading); err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}
	reading.ID = int64(id)
	if errors := pkg.ValidateStruct(reading); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "fail",
			"errors": errors,
		})
	}

	if err = UpdateReading(&reading); err != nil {
		pkg.LogErr(err)
		return c.Status(notFoundOr(err, fiber.StatusBadRequest)).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"reading": reading},
	})
}

func HandleDeleteReading(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to delete readings",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid reading id",
		})
	}

	if err = DeleteReading(int64(id)); err != nil {
		pkg.LogErr(err)
		return c.Status(notFoundOr(err, fiber.StatusInternalServerError)).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Reading deleted",
	})
}

func HandleCreateReadingsBatch(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to import readings",
		})
	}

	/* PARSE AND VALIDATE REQUEST DATA */
	readings := []Reading{}
	if err = c.BodyParser(&readings); err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	if err = WriteReadingsBatch(readings); err != nil {
		pkg.LogErr(err)
		return c.Status(notFoundOr(err, fiber.StatusBadRequest)).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	/* DETECTOR RUNS AFTER THE TRANSACTION, OVER COMMITTED DATA ONLY */
	alerts := []FluctuationAlert{}
	for _, tankID := range distinctTankIDs(readings) {
		tankAlerts, derr := GetTankFluctuations(tankID, 0)
		if derr != nil {
			pkg.LogErr(derr)
			continue
		}
		for i := range tankAlerts {
			tankAlerts[i].Origin = ORIGIN_IMPORT
		}
		alerts = append(alerts, tankAlerts...)
	}
	for i := range alerts {
		FeedBroadcastAlert(&alerts[i])
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"readings": readings, "alerts": alerts},
	})
}

func distinctTankIDs(readings []Reading) (ids []int64) {
	seen := map[int64]bool{}
	for _, reading := range readings {
		if !seen[reading.TankID] {
			seen[reading.TankID] = true
			ids = append(ids, reading.TankID)
		}
	}
	return
}
