package ctank

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ChiaYing-Chen/Chemical-MANG-SYSTEM-sub001/pkg"
)

func InitializeSupplyRoutes(api *fiber.App) {

	api.Get("/supplies", pkg.CTMSAuth, HandleGetSupplies)
	api.Post("/supplies", pkg.CTMSAuth, HandleCreateSupply)
	api.Put("/supplies/:id", pkg.CTMSAuth, HandleUpdateSupply)
	api.Delete("/supplies/:id", pkg.CTMSAuth, HandleDeleteSupply)
	api.Post("/supplies/batch", pkg.CTMSAuth, HandleCreateSuppliesBatch)
}

func HandleGetSupplies(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Viewer(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be a viewer to list supplies",
		})
	}

	var supplies []ChemicalSupply
	if tankStr := c.Query("tank_id"); tankStr != "" {
		tankID, convErr := strconv.ParseInt(tankStr, 10, 64)
		if convErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "fail",
				"message": "Invalid tank_id",
			})
		}
		supplies, err = GetSuppliesByTank(tankID)
	} else {
		supplies, err = GetSupplyList()
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
		"data":   fiber.Map{"supplies": supplies},
	})
}

func HandleCreateSupply(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to create supplies",
		})
	}

	/* PARSE AND VALIDATE REQUEST DATA */
	supply := ChemicalSupply{}
	if err = c.BodyParser(&supply); err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}
	if errors := pkg.ValidateStruct(supply); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "fail",
			"errors": errors,
		})
	}

	if err = WriteSupply(&supply); err != nil {
		pkg.LogErr(err)
		return c.Status(notFoundOr(err, fiber.StatusBadRequest)).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"supply": supply},
	})
}

func HandleUpdateSupply(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to update supplies",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid supply id",
		})
	}

	/* PARSE AND VALIDATE REQUEST DATA */
	supply := ChemicalSupply{}
	if err = c.BodyParser(&supply); err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}
	supply.ID = int64(id)
	if errors := pkg.ValidateStruct(supply); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "fail",
			"errors": errors,
		})
	}

	if err = UpdateSupply(&supply); err != nil {
		pkg.LogErr(err)
		return c.Status(notFoundOr(err, fiber.StatusBadRequest)).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"supply": supply},
	})
}

func HandleDeleteSupply(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to delete supplies",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid supply id",
		})
	}

	if err = DeleteSupply(int64(id)); err != nil {
		pkg.LogErr(err)
		return c.Status(notFoundOr(err, fiber.StatusInternalServerError)).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Chemical supply deleted",
	})
}

func HandleCreateSuppliesBatch(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to create supplies",
		})
	}

	/* PARSE AND VALIDATE REQUEST DATA */
	supplies := []ChemicalSupply{}
	if err = c.BodyParser(&supplies); err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}
	for i := range supplies {
		if errors := pkg.ValidateStruct(supplies[i]); errors != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status": "fail",
				"errors": errors,
			})
		}
	}

	if err = WriteSuppliesBatch(supplies); err != nil {
		pkg.LogErr(err)
		return c.Status(notFoundOr(err, fiber.StatusBadRequest)).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"supplies": supplies},
	})
}
