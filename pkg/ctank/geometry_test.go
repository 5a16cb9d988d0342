package ctank

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeFromLevel_PercentUnit(t *testing.T) {

	tank := &Tank{CapacityLiters: 2000, InputUnit: UNIT_PERCENT}

	liters, overCap, err := VolumeFromLevel(tank, 50)
	require.NoError(t, err)
	assert.False(t, overCap)
	assert.InDelta(t, 1000.0, liters, 1e-9)

	liters, _, err = VolumeFromLevel(tank, 0)
	require.NoError(t, err)
	assert.Zero(t, liters)
}

func TestVolumeFromLevel_LinearFactor(t *testing.T) {

	/* 10 L PER CM OF LEVEL */
	tank := &Tank{CapacityLiters: 2000, GeoFactor: 10}

	liters, overCap, err := VolumeFromLevel(tank, 25)
	require.NoError(t, err)
	assert.False(t, overCap)
	assert.InDelta(t, 250.0, liters, 1e-9)

	/* NEGATIVE LEVEL FLOORS AT ZERO */
	liters, overCap, err = VolumeFromLevel(tank, -5)
	require.NoError(t, err)
	assert.False(t, overCap)
	assert.Zero(t, liters)

	/* IMPLIED VOLUME BEYOND CAPACITY CLAMPS AND REPORTS */
	liters, overCap, err = VolumeFromLevel(tank, 1000)
	require.NoError(t, err)
	assert.True(t, overCap)
	assert.InDelta(t, 2000.0, liters, 1e-9)
}

func TestVolumeFromLevel_VerticalCylinder(t *testing.T) {

	tank := &Tank{
		CapacityLiters: 2000,
		ShapeType:      SHAPE_VERTICAL_CYLINDER,
		Dimensions:     TankDimensions{DiameterCm: 100, HeightCm: 200},
	}

	/* pi * 50^2 * 100 / 1000 */
	liters, _, err := VolumeFromLevel(tank, 100)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi*2500*100/1000, liters, 1e-6)

	/* LEVEL ABOVE THE SHELL HEIGHT CAPS AT THE SHELL */
	full, _, err := VolumeFromLevel(tank, 500)
	require.NoError(t, err)
	capped, _, err := VolumeFromLevel(tank, 200)
	require.NoError(t, err)
	assert.InDelta(t, capped, full, 1e-9)
}

func TestVolumeFromLevel_Rectangular(t *testing.T) {

	tank := &Tank{
		CapacityLiters: 1000,
		ShapeType:      SHAPE_RECTANGULAR,
		Dimensions:     TankDimensions{LengthCm: 100, WidthCm: 50, HeightCm: 100},
	}

	liters, _, err := VolumeFromLevel(tank, 80)
	require.NoError(t, err)
	assert.InDelta(t, 400.0, liters, 1e-9)
}

func TestVolumeFromLevel_SensorOffset(t *testing.T) {

	tank := &Tank{
		CapacityLiters: 1000,
		ShapeType:      SHAPE_RECTANGULAR,
		Dimensions:     TankDimensions{LengthCm: 100, WidthCm: 50, HeightCm: 100, SensorOffsetCm: 10},
	}

	/* LEVEL AT OR BELOW THE OFFSET READS EMPTY */
	liters, _, err := VolumeFromLevel(tank, 5)
	require.NoError(t, err)
	assert.Zero(t, liters)

	/* ONLY THE HEIGHT ABOVE THE OFFSET COUNTS */
	liters, _, err = VolumeFromLevel(tank, 30)
	require.NoError(t, err)
	assert.InDelta(t, 100*50*20/1000.0, liters, 1e-9)
}

func TestVolumeFromLevel_HorizontalCylinder(t *testing.T) {

	r, length := 50.0, 200.0

	flat := &Tank{
		CapacityLiters: 5000,
		ShapeType:      SHAPE_HORIZONTAL_CYLINDER,
		Dimensions:     TankDimensions{DiameterCm: 2 * r, LengthCm: length, HeadType: HEAD_FLAT},
	}

	/* HALF FULL FLAT-HEAD BARREL = HALF THE CYLINDER */
	halfBarrel := math.Pi * r * r * length / 2 / 1000
	liters, _, err := VolumeFromLevel(flat, r)
	require.NoError(t, err)
	assert.InDelta(t, halfBarrel, liters, 1e-6)

	/* HEMISPHERICAL HEADS ADD HALF A SPHERE AT HALF FILL */
	hemi := &Tank{
		CapacityLiters: 5000,
		ShapeType:      SHAPE_HORIZONTAL_CYLINDER,
		Dimensions:     TankDimensions{DiameterCm: 2 * r, LengthCm: length, HeadType: HEAD_HEMISPHERICAL},
	}
	halfSphere := (4.0 / 3.0) * math.Pi * r * r * r / 2 / 1000
	liters, _, err = VolumeFromLevel(hemi, r)
	require.NoError(t, err)
	assert.InDelta(t, halfBarrel+halfSphere, liters, 1e-6)

	/* 2:1 ELLIPTICAL HEADS HOLD HALF THE HEMISPHERICAL VOLUME */
	elliptical := &Tank{
		CapacityLiters: 5000,
		ShapeType:      SHAPE_HORIZONTAL_CYLINDER,
		Dimensions:     TankDimensions{DiameterCm: 2 * r, LengthCm: length, HeadType: HEAD_SEMI_ELLIPTICAL},
	}
	liters, _, err = VolumeFromLevel(elliptical, r)
	require.NoError(t, err)
	assert.InDelta(t, halfBarrel+halfSphere/2, liters, 1e-6)
}

func TestVolumeFromLevel_InvalidGeometry(t *testing.T) {

	/* NO PERCENT UNIT, NO FACTOR, NO SHAPE */
	tank := &Tank{CapacityLiters: 1000}
	_, _, err := VolumeFromLevel(tank, 50)
	require.Error(t, err)

	/* SHAPED TANK MISSING DIMENSIONS */
	tank = &Tank{CapacityLiters: 1000, ShapeType: SHAPE_VERTICAL_CYLINDER}
	_, _, err = VolumeFromLevel(tank, 50)
	require.Error(t, err)
}

func TestMassFromVolume(t *testing.T) {
	assert.InDelta(t, 1250.0, MassFromVolume(1000, 1.25), 1e-9)
	assert.InDelta(t, 1000.0, MassFromVolume(1000, 1.0), 1e-9)
}

func TestTankValidate(t *testing.T) {

	tank := &Tank{
		Name:           "NaOCl Day Tank",
		SystemType:     SYSTEM_COOLING,
		CapacityLiters: 2000,
		InputUnit:      UNIT_PERCENT,
	}
	require.NoError(t, tank.Validate())

	bad := *tank
	bad.CapacityLiters = 0
	assert.Error(t, bad.Validate())

	bad = *tank
	bad.SystemType = "aquarium"
	assert.Error(t, bad.Validate())

	bad = *tank
	bad.SafeMinLevel = 120
	assert.Error(t, bad.Validate())

	bad = *tank
	bad.ValidationThreshold = -1
	assert.Error(t, bad.Validate())
}
