package ctank

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ChiaYing-Chen/Chemical-MANG-SYSTEM-sub001/pkg"
)

func InitializeAlertRoutes(api *fiber.App) {

	api.Post("/alerts-review", pkg.CTMSAuth, HandleReviewAlert)
	api.Post("/alerts-review/batch", pkg.CTMSAuth, HandleReviewAlertsBatch)
	api.Delete("/alerts-review", pkg.CTMSAuth, HandleDeleteAlertReview)
}

/*
ANNOTATE OR DISMISS A FLUCTUATION ALERT

THE ALERT ITSELF IS TRANSIENT; ONLY THE REVIEW OUTCOME IS PERSISTED,
KEYED BY (tank_id, timestamp)
*/
func HandleReviewAlert(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to review alerts",
		})
	}

	/* PARSE AND VALIDATE REQUEST DATA */
	review := AlertReview{}
	if err = c.BodyParser(&review); err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}
	if errors := pkg.ValidateStruct(review); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "fail",
			"errors": errors,
		})
	}

	if err = WriteAlertReview(&review); err != nil {
		pkg.LogErr(err)
		return c.Status(notFoundOr(err, fiber.StatusBadRequest)).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"review": review},
	})
}

func HandleReviewAlertsBatch(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to review alerts",
		})
	}

	reviews := []AlertReview{}
	if err = c.BodyParser(&reviews); err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}
	for i := range reviews {
		if errors := pkg.ValidateStruct(reviews[i]); errors != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status": "fail",
				"errors": errors,
			})
		}
	}

	if err = WriteAlertReviewsBatch(reviews); err != nil {
		pkg.LogErr(err)
		return c.Status(notFoundOr(err, fiber.StatusBadRequest)).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"reviews": reviews},
	})
}

func HandleDeleteAlertReview(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to delete alert reviews",
		})
	}

	tankID, err := strconv.ParseInt(c.Query("tank_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid tank_id",
		})
	}
	timestamp, err := strconv.ParseInt(c.Query("timestamp"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid timestamp",
		})
	}

	if err = DeleteAlertReview(tankID, timestamp); err != nil {
		pkg.LogErr(err)
		return c.Status(notFoundOr(err, fiber.StatusInternalServerError)).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Alert review deleted",
	})
}
