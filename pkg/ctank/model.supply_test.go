package ctank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int64) int64 { return n * 86400000 }

func TestResolveActiveSupply(t *testing.T) {

	supplies := []ChemicalSupply{
		{ID: 1, TankID: 7, ChemicalName: "PAC", SpecificGravity: 1.2, StartDate: day(1)},
		{ID: 2, TankID: 7, ChemicalName: "PAC", SpecificGravity: 1.25, StartDate: day(10)},
	}

	/* BETWEEN CONTRACTS: THE EARLIER ONE IS STILL IN FORCE */
	active := ResolveActiveSupply(supplies, day(5))
	require.NotNil(t, active)
	assert.Equal(t, int64(1), active.ID)

	/* AFTER THE SECOND START DATE */
	active = ResolveActiveSupply(supplies, day(15))
	require.NotNil(t, active)
	assert.Equal(t, int64(2), active.ID)

	/* EXACTLY ON A START DATE: THAT CONTRACT APPLIES */
	active = ResolveActiveSupply(supplies, day(10))
	require.NotNil(t, active)
	assert.Equal(t, int64(2), active.ID)

	/* BEFORE ANY CONTRACT HAS STARTED */
	assert.Nil(t, ResolveActiveSupply(supplies, day(0)))
}

func TestResolveActiveSupply_TieOnStartDate(t *testing.T) {

	/* SAME START DATE: THE LATER INSERTION (HIGHER ID) WINS */
	supplies := []ChemicalSupply{
		{ID: 3, StartDate: day(4), SpecificGravity: 1.1},
		{ID: 9, StartDate: day(4), SpecificGravity: 1.3},
		{ID: 5, StartDate: day(4), SpecificGravity: 1.2},
	}

	active := ResolveActiveSupply(supplies, day(6))
	require.NotNil(t, active)
	assert.Equal(t, int64(9), active.ID)
	assert.InDelta(t, 1.3, active.SpecificGravity, 1e-9)
}

func TestResolveActiveSupply_Empty(t *testing.T) {
	assert.Nil(t, ResolveActiveSupply(nil, day(100)))
	assert.Nil(t, ResolveActiveSupply([]ChemicalSupply{}, day(100)))
}

func TestReadingCalculate(t *testing.T) {

	tank := &Tank{ID: 7, CapacityLiters: 2000, GeoFactor: 10}
	supplies := []ChemicalSupply{
		{ID: 1, TankID: 7, SpecificGravity: 1.25, StartDate: day(1)},
	}

	reading := Reading{TankID: 7, Timestamp: day(5), LevelCm: 50}
	require.NoError(t, reading.Calculate(tank, supplies))

	assert.InDelta(t, 500.0, reading.CalculatedVolume, 1e-9)
	assert.InDelta(t, 1.25, reading.AppliedSG, 1e-9)
	assert.InDelta(t, 625.0, reading.CalculatedWeightKg, 1e-9)
	require.NotNil(t, reading.SupplyID)
	assert.Equal(t, int64(1), *reading.SupplyID)
}

func TestReadingCalculate_NoActiveSupply(t *testing.T) {

	/* NO CONTRACT IN FORCE: WATER-EQUIVALENT SG */
	tank := &Tank{ID: 7, CapacityLiters: 2000, GeoFactor: 10}

	reading := Reading{TankID: 7, Timestamp: day(5), LevelCm: 50}
	require.NoError(t, reading.Calculate(tank, nil))

	assert.InDelta(t, 1.0, reading.AppliedSG, 1e-9)
	assert.InDelta(t, 500.0, reading.CalculatedWeightKg, 1e-9)
	assert.Nil(t, reading.SupplyID)
}

func TestReadingCalculate_SGOverride(t *testing.T) {

	tank := &Tank{ID: 7, CapacityLiters: 2000, GeoFactor: 10}
	supplies := []ChemicalSupply{
		{ID: 1, TankID: 7, SpecificGravity: 1.25, StartDate: day(1)},
	}

	reading := Reading{TankID: 7, Timestamp: day(5), LevelCm: 50, SGOverride: 1.4}
	require.NoError(t, reading.Calculate(tank, supplies))

	assert.InDelta(t, 1.4, reading.AppliedSG, 1e-9)
	assert.InDelta(t, 700.0, reading.CalculatedWeightKg, 1e-9)
	assert.Nil(t, reading.SupplyID)
}

func TestReadingCalculate_InvalidGeometry(t *testing.T) {

	tank := &Tank{ID: 7, CapacityLiters: 2000}
	reading := Reading{TankID: 7, Timestamp: day(5), LevelCm: 50}
	assert.Error(t, reading.Calculate(tank, nil))
}

func TestReadingCalculate_OverCapacity(t *testing.T) {

	/* A CLAMPED READING MUST BE DISTINGUISHABLE FROM A GENUINELY FULL ONE */
	tank := &Tank{ID: 7, CapacityLiters: 2000, GeoFactor: 10}

	clamped := Reading{TankID: 7, Timestamp: day(5), LevelCm: 1000}
	require.NoError(t, clamped.Calculate(tank, nil))

	full := Reading{TankID: 7, Timestamp: day(5), LevelCm: 200}
	require.NoError(t, full.Calculate(tank, nil))

	assert.InDelta(t, full.CalculatedVolume, clamped.CalculatedVolume, 1e-9)
	assert.InDelta(t, full.CalculatedWeightKg, clamped.CalculatedWeightKg, 1e-9)
	assert.True(t, clamped.OverCapacity)
	assert.False(t, full.OverCapacity)
}

func TestReadingCalculate_MaxWeightWarning(t *testing.T) {

	tank := &Tank{ID: 7, CapacityLiters: 2000, GeoFactor: 10, MaxCapacityWarningKg: 2400}
	supplies := []ChemicalSupply{
		{ID: 1, TankID: 7, SpecificGravity: 1.25, StartDate: day(1)},
	}

	/* 2000 L * 1.25 = 2500 KG >= 2400 KG */
	heavy := Reading{TankID: 7, Timestamp: day(5), LevelCm: 200}
	require.NoError(t, heavy.Calculate(tank, supplies))
	assert.True(t, heavy.MaxWeightWarning)

	/* 1500 L * 1.25 = 1875 KG */
	light := Reading{TankID: 7, Timestamp: day(5), LevelCm: 150}
	require.NoError(t, light.Calculate(tank, supplies))
	assert.False(t, light.MaxWeightWarning)
}

func TestReadingCalculate_MaxWeightWarningUnset(t *testing.T) {

	/* ZERO MaxCapacityWarningKg MEANS THE CHECK IS DISABLED */
	tank := &Tank{ID: 7, CapacityLiters: 2000, GeoFactor: 10}
	reading := Reading{TankID: 7, Timestamp: day(5), LevelCm: 200}
	require.NoError(t, reading.Calculate(tank, nil))
	assert.False(t, reading.MaxWeightWarning)
}
