package ctank

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ChiaYing-Chen/Chemical-MANG-SYSTEM-sub001/pkg"
)

/* SET AT STARTUP; nil WHEN NO PROVIDER IS CONFIGURED */
var ReportSummarizer Summarizer

func InitializeReportRoutes(api *fiber.App) {

	api.Post("/reports/summary", pkg.CTMSAuth, HandleCreateSummaryReport)
}

/*
GENERATE A NARRATIVE INVENTORY REPORT

COLLECTS CONSUMPTION STATISTICS OVER COMMITTED READINGS, FORMATS THE
PROMPT CONTEXT AND HANDS IT TO THE CONFIGURED Summarizer
*/
func HandleCreateSummaryReport(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Viewer(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be a viewer to generate reports",
		})
	}

	if ReportSummarizer == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "fail",
			"message": "No report summarizer is configured",
		})
	}

	at := time.Now().UTC().UnixMilli()

	stats, err := CollectConsumptionStats(at)
	if err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	promptContext := BuildReportContext(stats, at)

	text, err := ReportSummarizer.Summarize(c.Context(), promptContext)
	if err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"report": text, "stats": stats},
	})
}
