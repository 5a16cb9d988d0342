package ctank

import (
	"fmt"
	"sort"
)

/* MS PER DAY */
const msPerDay = 86400000.0

/* A RISE OF AT LEAST THIS MANY THRESHOLD-VOLUMES IS TREATED AS A REFILL */
const REFILL_MULTIPLE = 15.0

/*
FLUCTUATION / ANOMALY DETECTOR

SCANS A TANK'S READINGS IN TIMESTAMP ORDER AND FLAGS ADJACENT PAIRS WHOSE
DAY-NORMALIZED VOLUME DELTA EXCEEDS thresholdFraction OF TANK CAPACITY.

  - dailyRate = |v2 - v1| / max(1, days between)
  - FLAGGED WHEN dailyRate > threshold (STRICTLY GREATER; A DELTA
    EXACTLY AT THE THRESHOLD IS NOT FLAGGED)
  - A RISE OF >= 15x THE THRESHOLD VOLUME IS A POSSIBLE UNLOGGED REFILL;
    ANY OTHER FLAGGED PAIR IS A POSSIBLE DATA-ENTRY ERROR

PURE OVER ITS INPUTS: RE-RUNNING OVER AN UNCHANGED READING SET YIELDS AN
IDENTICAL ALERT SET. PASS thresholdFraction <= 0 TO USE THE TANK'S OWN
VALIDATION THRESHOLD (OR THE 30% DEFAULT).
*/
func DetectFluctuations(tank *Tank, readings []Reading, thresholdFraction float64, origin string) (alerts []FluctuationAlert) {

	if thresholdFraction <= 0 {
		thresholdFraction = tank.ThresholdFraction()
	}
	thresholdLiters := thresholdFraction * tank.CapacityLiters

	ordered := make([]Reading, len(readings))
	copy(ordered, readings)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp < ordered[j].Timestamp
	})

	for i := 1; i < len(ordered); i++ {
		prev, curr := &ordered[i-1], &ordered[i]

		delta := curr.CalculatedVolume - prev.CalculatedVolume

		days := float64(curr.Timestamp-prev.Timestamp) / msPerDay
		if days < 1 {
			days = 1
		}
		dailyRate := delta / days
		if dailyRate < 0 {
			dailyRate = -dailyRate
		}

		if dailyRate <= thresholdLiters {
			continue
		}

		refill := delta > 0 && delta >= REFILL_MULTIPLE*thresholdLiters

		alert := FluctuationAlert{
			TankID:             tank.ID,
			TankName:           tank.Name,
			PrevTimestamp:      prev.Timestamp,
			Timestamp:          curr.Timestamp,
			PrevVolume:         prev.CalculatedVolume,
			CurrVolume:         curr.CalculatedVolume,
			DailyRate:          dailyRate,
			ThresholdLitersDay: thresholdLiters,
			IsPossibleRefill:   refill,
			Origin:             origin,
		}
		alert.Reason = buildReason(&alert)

		alerts = append(alerts, alert)
	}
	return
}

/* HUMAN-READABLE EXPLANATION; EMBEDS THE COMPUTED RATE AND THE EXCEEDED THRESHOLD */
func buildReason(alert *FluctuationAlert) string {

	if alert.IsPossibleRefill {
		return fmt.Sprintf(
			"Possible unlogged refill: volume rose %.1f L -> %.1f L (%.1f L/day, threshold %.1f L/day)",
			alert.PrevVolume, alert.CurrVolume, alert.DailyRate, alert.ThresholdLitersDay,
		)
	}
	return fmt.Sprintf(
		"Possible data-entry anomaly: volume changed %.1f L -> %.1f L (%.1f L/day, threshold %.1f L/day)",
		alert.PrevVolume, alert.CurrVolume, alert.DailyRate, alert.ThresholdLitersDay,
	)
}
