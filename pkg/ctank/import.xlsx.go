package ctank

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"github.com/ChiaYing-Chen/Chemical-MANG-SYSTEM-sub001/pkg"
)

/* ACCEPTED timestamp CELL LAYOUTS; INTEGER CELLS ARE READ AS UNIX MILLI */
var xlsxTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01-02-06",
	"1/2/06 15:04",
}

/*
IMPORT READINGS FROM AN UPLOADED .xlsx WORKBOOK

EXPECTS A HEADER ROW FOLLOWED BY ONE ROW PER READING:

	tank_id | timestamp | level | sg (OPTIONAL)

ALL ROWS COMMIT IN A SINGLE TRANSACTION; ANY BAD ROW REJECTS THE WHOLE FILE.
THE DETECTOR THEN RUNS OVER EACH AFFECTED TANK AND THE RESULTING ALERTS ARE
RETURNED TAGGED origin=import
*/
func HandleImportReadingsXLSX(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to import readings",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Missing form file 'file'",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}
	defer file.Close()

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": fmt.Sprintf("Failed to parse workbook: %v", err),
		})
	}
	defer workbook.Close()

	readings, err := ParseReadingsXLSX(workbook)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}
	if len(readings) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Workbook contains no reading rows",
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
		"data": fiber.Map{
			"imported": len(readings),
			"alerts":   alerts,
		},
	})
}

/* PARSE THE FIRST SHEET OF A WORKBOOK INTO READINGS */
func ParseReadingsXLSX(workbook *excelize.File) (readings []Reading, err error) {

	sheetName := workbook.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("Workbook has no sheets")
	}

	rows, err := workbook.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("Failed to read rows: %v", err)
	}
	if len(rows) < 2 {
		return readings, nil
	}

	/* SKIP THE HEADER ROW */
	for i, row := range rows[1:] {
		rowNum := i + 2

		/* excelize TRIMS TRAILING EMPTY CELLS; BLANK ROWS COME BACK EMPTY */
		if len(row) == 0 {
			continue
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("Row %d: expected tank_id, timestamp, level", rowNum)
		}

		tankID, convErr := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
		if convErr != nil {
			return nil, fmt.Errorf("Row %d: invalid tank_id %q", rowNum, row[0])
		}

		timestamp, convErr := parseXLSXTimestamp(strings.TrimSpace(row[1]))
		if convErr != nil {
			return nil, fmt.Errorf("Row %d: invalid timestamp %q", rowNum, row[1])
		}

		level, convErr := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if convErr != nil {
			return nil, fmt.Errorf("Row %d: invalid level %q", rowNum, row[2])
		}

		reading := Reading{
			TankID:    tankID,
			Timestamp: timestamp,
			LevelCm:   level,
		}

		/* OPTIONAL PER-ROW SG OVERRIDE */
		if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
			sg, convErr := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
			if convErr != nil {
				return nil, fmt.Errorf("Row %d: invalid sg %q", rowNum, row[3])
			}
			reading.SGOverride = sg
		}

		readings = append(readings, reading)
	}

	return readings, nil
}

func parseXLSXTimestamp(cell string) (int64, error) {

	if ms, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return ms, nil
	}

	for _, layout := range xlsxTimeLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t.UTC().UnixMilli(), nil
		}
	}

	return 0, fmt.Errorf("unrecognized timestamp %q", cell)
}
