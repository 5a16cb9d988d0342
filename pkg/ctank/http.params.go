package ctank

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ChiaYing-Chen/Chemical-MANG-SYSTEM-sub001/pkg"
)

func InitializeParameterRoutes(api *fiber.App) {

	api.Get("/cws-params", pkg.CTMSAuth, HandleGetCWSParameters)
	api.Post("/cws-params", pkg.CTMSAuth, HandleCreateCWSParameter)
	api.Put("/cws-params/:id", pkg.CTMSAuth, HandleUpdateCWSParameter)
	api.Delete("/cws-params/:id", pkg.CTMSAuth, HandleDeleteCWSParameter)
	api.Get("/cws-params/history/:tankId", pkg.CTMSAuth, HandleGetCWSHistory)

	api.Get("/bws-params", pkg.CTMSAuth, HandleGetBWSParameters)
	api.Post("/bws-params", pkg.CTMSAuth, HandleCreateBWSParameter)
	api.Put("/bws-params/:id", pkg.CTMSAuth, HandleUpdateBWSParameter)
	api.Delete("/bws-params/:id", pkg.CTMSAuth, HandleDeleteBWSParameter)
	api.Get("/bws-params/history/:tankId", pkg.CTMSAuth, HandleGetBWSHistory)
}

func HandleGetCWSParameters(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Viewer(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be a viewer to list CWS parameters",
		})
	}

	params, err := GetCWSParameterList()
	if err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"cws_parameters": params},
	})
}

func HandleCreateCWSParameter(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to create CWS parameters",
		})
	}

	/* PARSE AND VALIDATE REQUEST DATA */
	param := CWSParameter{}
	if err = c.BodyParser(&param); err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}
	if errors := pkg.ValidateStruct(param); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "fail",
			"errors": errors,
		})
	}

	if err = WriteCWSParameter(&param); err != nil {
		pkg.LogErr(err)
		return c.Status(notFoundOr(err, fiber.StatusBadRequest)).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"cws_parameter": param},
	})
}

func HandleUpdateCWSParameter(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to update CWS parameters",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid CWS parameter id",
		})
	}

	param := CWSParameter{}
	if err = c.BodyParser(&param); err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}
	param.ID = int64(id)
	if errors := pkg.ValidateStruct(param); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "fail",
			"errors": errors,
		})
	}

	if err = UpdateCWSParameter(&param); err != nil {
		pkg.LogErr(err)
		return c.Status(notFoundOr(err, fiber.StatusBadRequest)).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"cws_parameter": param},
	})
}

func HandleDeleteCWSParameter(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to delete CWS parameters",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid CWS parameter id",
		})
	}

	if err = DeleteCWSParameter(int64(id)); err != nil {
		pkg.LogErr(err)
		return c.Status(notFoundOr(err, fiber.StatusInternalServerError)).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "CWS parameter record deleted",
	})
}

func HandleGetCWSHistory(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Viewer(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be a viewer to view CWS parameter history",
		})
	}

	tankID, err := c.ParamsInt("tankId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid tank id",
		})
	}

	params, err := GetCWSHistoryByTank(int64(tankID))
	if err != nil {
		pkg.LogErr(err)
		return c.Status(notFoundOr(err, fiber.StatusInternalServerError)).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"cws_parameters": params},
	})
}

func HandleGetBWSParameters(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Viewer(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be a viewer to list BWS parameters",
		})
	}

	params, err := GetBWSParameterList()
	if err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"bws_parameters": params},
	})
}

func HandleCreateBWSParameter(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to create BWS parameters",
		})
	}

	param := BWSParameter{}
	if err = c.BodyParser(&param); err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}
	if errors := pkg.ValidateStruct(param); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "fail",
			"errors": errors,
		})
	}

	if err = WriteBWSParameter(&param); err != nil {
		pkg.LogErr(err)
		return c.Status(notFoundOr(err, fiber.StatusBadRequest)).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"bws_parameter": param},
	})
}

func HandleUpdateBWSParameter(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to update BWS parameters",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid BWS parameter id",
		})
	}

	param := BWSParameter{}
	if err = c.BodyParser(&param); err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}
	param.ID = int64(id)
	if errors := pkg.ValidateStruct(param); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "fail",
			"errors": errors,
		})
	}

	if err = UpdateBWSParameter(&param); err != nil {
		pkg.LogErr(err)
		return c.Status(notFoundOr(err, fiber.StatusBadRequest)).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"bws_parameter": param},
	})
}

func HandleDeleteBWSParameter(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to delete BWS parameters",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid BWS parameter id",
		})
	}

	if err = DeleteBWSParameter(int64(id)); err != nil {
		pkg.LogErr(err)
		return c.Status(notFoundOr(err, fiber.StatusInternalServerError)).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "BWS parameter record deleted",
	})
}

func HandleGetBWSHistory(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Viewer(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be a viewer to view BWS parameter history",
		})
	}

	tankID, err := c.ParamsInt("tankId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid tank id",
		})
	}

	params, err := GetBWSHistoryByTank(int64(tankID))
	if err != nil {
		pkg.LogErr(err)
		return c.Status(notFoundOr(err, fiber.StatusInternalServerError)).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"bws_parameters": params},
	})
}
