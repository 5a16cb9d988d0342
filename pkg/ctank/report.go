package ctank

import (
	"fmt"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat" // go get gonum.org/v1/gonum/...
)

/*
PER-TANK CONSUMPTION STATISTICS FEEDING THE REPORT PROMPT CONTEXT

DAILY USAGE SAMPLES ARE THE DAY-NORMALIZED VOLUME DROPS BETWEEN ADJACENT
READINGS; RISES (REFILLS) ARE EXCLUDED FROM THE CONSUMPTION SERIES
*/
type TankConsumption struct {
	TankID   int64  `json:"tank_id"`
	TankName string `json:"tank_name"`

	CurrentVolume   float64 `json:"current_volume"`
	CurrentWeightKg float64 `json:"current_weight_kg"`
	LevelPercent    float64 `json:"level_percent"`
	BelowSafeMin    bool    `json:"below_safe_min"`

	MeanDailyUsage   float64 `json:"mean_daily_usage"`
	StdDevDailyUsage float64 `json:"std_dev_daily_usage"`
	DaysOfStock      float64 `json:"days_of_stock"`

	ActiveChemical string `json:"active_chemical"`
	ActiveSupplier string `json:"active_supplier"`
}

func ComputeTankConsumption(tank *Tank, readings []Reading, supplies []ChemicalSupply, at int64) (tc TankConsumption) {

	tc.TankID = tank.ID
	tc.TankName = tank.Name

	if active := ResolveActiveSupply(supplies, at); active != nil {
		tc.ActiveChemical = active.ChemicalName
		tc.ActiveSupplier = active.SupplierName
	}

	if len(readings) == 0 {
		return
	}

	last := readings[len(readings)-1]
	tc.CurrentVolume = last.CalculatedVolume
	tc.CurrentWeightKg = last.CalculatedWeightKg
	if tank.CapacityLiters > 0 {
		tc.LevelPercent = last.CalculatedVolume / tank.CapacityLiters * 100
	}
	tc.BelowSafeMin = tc.LevelPercent < tank.SafeMinLevel

	usage := []float64{}
	for i := 1; i < len(readings); i++ {
		drop := readings[i-1].CalculatedVolume - readings[i].CalculatedVolume
		if drop <= 0 {
			continue /* REFILL OR FLAT */
		}
		days := float64(readings[i].Timestamp-readings[i-1].Timestamp) / msPerDay
		if days < 1 {
			days = 1
		}
		usage = append(usage, drop/days)
	}
	if len(usage) > 0 {
		tc.MeanDailyUsage = stat.Mean(usage, nil)
		tc.StdDevDailyUsage = stat.StdDev(usage, nil)
	}
	if tc.MeanDailyUsage > 0 {
		tc.DaysOfStock = tc.CurrentVolume / tc.MeanDailyUsage
	}
	return
}

/*
FORMAT THE PLAIN-TEXT SNAPSHOT CONSUMED BY THE Summarizer

ONE BLOCK PER TANK; NUMBERS ONLY, NO PROSE: THE NARRATIVE IS THE
SUMMARIZER'S JOB
*/
func BuildReportContext(stats []TankConsumption, at int64) string {

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Chemical tank snapshot at %s\n\n",
		time.UnixMilli(at).UTC().Format("2006-01-02 15:04 MST"),
	))

	for _, tc := range stats {
		sb.WriteString(fmt.Sprintf("Tank: %s (id %d)\n", tc.TankName, tc.TankID))
		if tc.ActiveChemical != "" {
			sb.WriteString(fmt.Sprintf("  Chemical: %s (supplier %s)\n", tc.ActiveChemical, tc.ActiveSupplier))
		}
		sb.WriteString(fmt.Sprintf("  Current: %.1f L / %.1f kg (%.1f%% of capacity)\n",
			tc.CurrentVolume, tc.CurrentWeightKg, tc.LevelPercent,
		))
		if tc.BelowSafeMin {
			sb.WriteString("  WARNING: below safe minimum level\n")
		}
		if tc.MeanDailyUsage > 0 {
			sb.WriteString(fmt.Sprintf("  Usage: %.1f L/day (stddev %.1f), ~%.0f days of stock remain\n",
				tc.MeanDailyUsage, tc.StdDevDailyUsage, tc.DaysOfStock,
			))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

/* GATHER STATS FOR EVERY TANK; READ-ONLY */
func CollectConsumptionStats(at int64) (stats []TankConsumption, err error) {

	tanks, err := GetTankList()
	if err != nil {
		return
	}

	for i := range tanks {
		readings, rerr := GetReadingsByTank(tanks[i].ID, 0, at)
		if rerr != nil {
			return nil, rerr
		}
		supplies, serr := GetSuppliesByTank(tanks[i].ID)
		if serr != nil {
			return nil, serr
		}
		stats = append(stats, ComputeTankConsumption(&tanks[i], readings, supplies, at))
	}
	return
}
