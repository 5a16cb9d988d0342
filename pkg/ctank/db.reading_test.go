package ctank

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ChiaYing-Chen/Chemical-MANG-SYSTEM-sub001/pkg"
)

/* SWAP THE PACKAGE DATABASE FOR A MOCKED CONNECTION FOR ONE TEST */
func mockCTMS(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	prev := pkg.CTMS
	pkg.CTMS = pkg.CTMSDatabase{DBClient: pkg.DBClient{DB: gdb}}
	t.Cleanup(func() {
		pkg.CTMS = prev
		conn.Close()
	})
	return mock
}

func mockTankRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "system_type", "capacity_liters", "geo_factor", "input_unit"}).
		AddRow(7, "PAC Day Tank", SYSTEM_COOLING, 2000.0, 10.0, UNIT_CM)
}

func TestWriteReadingsBatch_MalformedRowRollsBackAll(t *testing.T) {

	mock := mockCTMS(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tanks"`).WillReturnRows(mockTankRows())
	mock.ExpectQuery(`SELECT \* FROM "chemical_supplies"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "readings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectRollback()

	readings := []Reading{
		{TankID: 7, Timestamp: day(1), LevelCm: 100},
		{TankID: 7, LevelCm: 90}, /* MISSING TIMESTAMP */
	}
	err := WriteReadingsBatch(readings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Batch row 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteReadingsBatch_UnknownTankRollsBackAll(t *testing.T) {

	mock := mockCTMS(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tanks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	readings := []Reading{
		{TankID: 99, Timestamp: day(1), LevelCm: 100},
	}
	err := WriteReadingsBatch(readings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Tank 99 does not exist")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteReadingsBatch_CommitsAndDerives(t *testing.T) {

	mock := mockCTMS(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tanks"`).WillReturnRows(mockTankRows())
	mock.ExpectQuery(`SELECT \* FROM "chemical_supplies"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tank_id", "chemical_name", "specific_gravity", "start_date"}).
			AddRow(3, 7, "PAC 10%", 1.25, day(1)))
	mock.ExpectQuery(`INSERT INTO "readings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "readings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	readings := []Reading{
		{TankID: 7, Timestamp: day(2), LevelCm: 100},
		{TankID: 7, Timestamp: day(3), LevelCm: 90},
	}
	require.NoError(t, WriteReadingsBatch(readings))

	/* DERIVED FIELDS AND ASSIGNED IDS SURVIVE ON THE CALLER'S SLICE */
	assert.InDelta(t, 1000.0, readings[0].CalculatedVolume, 1e-9)
	assert.InDelta(t, 1.25, readings[0].AppliedSG, 1e-9)
	assert.InDelta(t, 1250.0, readings[0].CalculatedWeightKg, 1e-9)
	assert.Equal(t, int64(1), readings[0].ID)
	assert.Equal(t, int64(2), readings[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetReadingsByTank_TimeOrdered(t *testing.T) {

	mock := mockCTMS(t)

	mock.ExpectQuery(`SELECT \* FROM "readings" WHERE tank_id = .+ ORDER BY timestamp ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tank_id", "timestamp", "level_cm", "calculated_volume", "over_capacity"}).
			AddRow(1, 7, day(1), 100.0, 1000.0, false).
			AddRow(2, 7, day(2), 90.0, 900.0, false))

	readings, err := GetReadingsByTank(7, 0, 0)
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.InDelta(t, 1000.0, readings[0].CalculatedVolume, 1e-9)
	assert.Equal(t, day(2), readings[1].Timestamp)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTank_NotFound(t *testing.T) {

	mock := mockCTMS(t)

	mock.ExpectQuery(`SELECT \* FROM "tanks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := GetTank(99)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Tank 99 does not exist")
	assert.NoError(t, mock.ExpectationsWereMet())
}
