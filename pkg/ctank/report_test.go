package ctank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Summarizer = (*OpenAISummarizer)(nil)

type stubSummarizer struct {
	promptContext string
	text          string
	err           error
}

func (s *stubSummarizer) Summarize(ctx context.Context, promptContext string) (string, error) {
	s.promptContext = promptContext
	return s.text, s.err
}

func TestComputeTankConsumption(t *testing.T) {

	tank := &Tank{ID: 7, Name: "PAC Day Tank", CapacityLiters: 2000, SafeMinLevel: 20}
	supplies := []ChemicalSupply{
		{ID: 1, TankID: 7, ChemicalName: "PAC", SupplierName: "Acme Chem", SpecificGravity: 1.2, StartDate: day(1)},
	}

	/* STEADY 100 L/DAY DRAW */
	readings := []Reading{
		{TankID: 7, Timestamp: day(1), CalculatedVolume: 1000, CalculatedWeightKg: 1200},
		{TankID: 7, Timestamp: day(2), CalculatedVolume: 900, CalculatedWeightKg: 1080},
		{TankID: 7, Timestamp: day(3), CalculatedVolume: 800, CalculatedWeightKg: 960},
	}

	tc := ComputeTankConsumption(tank, readings, supplies, day(3))

	assert.Equal(t, "PAC", tc.ActiveChemical)
	assert.Equal(t, "Acme Chem", tc.ActiveSupplier)
	assert.InDelta(t, 800.0, tc.CurrentVolume, 1e-9)
	assert.InDelta(t, 960.0, tc.CurrentWeightKg, 1e-9)
	assert.InDelta(t, 40.0, tc.LevelPercent, 1e-9)
	assert.False(t, tc.BelowSafeMin)
	assert.InDelta(t, 100.0, tc.MeanDailyUsage, 1e-9)
	assert.InDelta(t, 0.0, tc.StdDevDailyUsage, 1e-9)
	assert.InDelta(t, 8.0, tc.DaysOfStock, 1e-9)
}

func TestComputeTankConsumption_RefillsExcludedFromUsage(t *testing.T) {

	tank := &Tank{ID: 7, Name: "PAC Day Tank", CapacityLiters: 2000}

	readings := []Reading{
		{TankID: 7, Timestamp: day(1), CalculatedVolume: 500},
		{TankID: 7, Timestamp: day(2), CalculatedVolume: 400},
		{TankID: 7, Timestamp: day(3), CalculatedVolume: 1900}, /* REFILL */
		{TankID: 7, Timestamp: day(4), CalculatedVolume: 1700},
	}

	tc := ComputeTankConsumption(tank, readings, nil, day(4))

	/* SAMPLES ARE THE TWO DROPS: 100 AND 200 */
	assert.InDelta(t, 150.0, tc.MeanDailyUsage, 1e-9)
}

func TestComputeTankConsumption_BelowSafeMin(t *testing.T) {

	tank := &Tank{ID: 7, Name: "PAC Day Tank", CapacityLiters: 2000, SafeMinLevel: 25}
	readings := []Reading{
		{TankID: 7, Timestamp: day(1), CalculatedVolume: 300},
	}

	tc := ComputeTankConsumption(tank, readings, nil, day(1))
	assert.True(t, tc.BelowSafeMin)
	assert.Zero(t, tc.MeanDailyUsage)
	assert.Zero(t, tc.DaysOfStock)
}

func TestComputeTankConsumption_NoReadings(t *testing.T) {

	tank := &Tank{ID: 7, Name: "PAC Day Tank", CapacityLiters: 2000}
	tc := ComputeTankConsumption(tank, nil, nil, day(1))

	assert.Equal(t, int64(7), tc.TankID)
	assert.Zero(t, tc.CurrentVolume)
	assert.False(t, tc.BelowSafeMin)
}

func TestBuildReportContext(t *testing.T) {

	stats := []TankConsumption{
		{
			TankID: 7, TankName: "PAC Day Tank",
			ActiveChemical: "PAC", ActiveSupplier: "Acme Chem",
			CurrentVolume: 800, CurrentWeightKg: 960, LevelPercent: 40,
			MeanDailyUsage: 100, StdDevDailyUsage: 5, DaysOfStock: 8,
		},
		{
			TankID: 8, TankName: "Bulk NaOH",
			CurrentVolume: 100, LevelPercent: 5, BelowSafeMin: true,
		},
	}

	text := BuildReportContext(stats, day(100))

	assert.Contains(t, text, "PAC Day Tank")
	assert.Contains(t, text, "Acme Chem")
	assert.Contains(t, text, "days of stock")
	assert.Contains(t, text, "Bulk NaOH")
	assert.Contains(t, text, "WARNING: below safe minimum level")
}

func TestStubSummarizerReceivesContext(t *testing.T) {

	stub := &stubSummarizer{text: "All tanks nominal."}

	text, err := stub.Summarize(context.Background(), "snapshot body")
	require.NoError(t, err)
	assert.Equal(t, "All tanks nominal.", text)
	assert.Equal(t, "snapshot body", stub.promptContext)
}
