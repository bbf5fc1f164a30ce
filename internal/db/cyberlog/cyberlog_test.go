package cyberlog

import (
	"context"
	c "securecrop/internal/core/domain/common"
	"securecrop/internal/core/domain/cyberlog"
	"securecrop/internal/db"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

var NOW time.Time = time.Date(2024, 4, 15, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxRepository
}

func (suite *testSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxCyberLogRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestCreate() {
	rec, err := suite.repo.Create(context.Background(), cyberlog.CreateInput{
		SoilInputID:     c.NewOptional(int64(42), true),
		AnomalyDetected: true,
		IntegrityStatus: cyberlog.StatusAnomaly,
		Details:         "ph reading outside expected band",
		CreatedAt:       NOW,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.NotZero(rec.ID)
	assert.Equal(c.NewOptional(int64(42), true), rec.SoilInputID)
	assert.True(rec.AnomalyDetected)
	assert.Equal(cyberlog.StatusAnomaly, rec.IntegrityStatus)
	assert.Equal("ph reading outside expected band", rec.Details)
	assert.True(NOW.Equal(rec.CreatedAt))
}

func (suite *testSuite) TestCreateWithoutSoilInput() {
	rec, err := suite.repo.Create(context.Background(), cyberlog.CreateInput{
		IntegrityStatus: cyberlog.StatusOK,
		Details:         "integrity check passed",
		CreatedAt:       NOW,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.False(rec.SoilInputID.IsPresent)
}

func (suite *testSuite) TestListWithFilters() {
	suite.createRecord(cyberlog.StatusOK, false, NOW)
	suite.createRecord(cyberlog.StatusAnomaly, true, NOW.Add(time.Minute))
	suite.createRecord(cyberlog.StatusTampered, true, NOW.Add(2*time.Minute))

	assert := suite.Require()

	all, err := suite.repo.List(context.Background(), cyberlog.ListFilter{})
	assert.Nil(err)
	assert.Len(all, 3)
	// Newest first.
	assert.Equal(cyberlog.StatusTampered, all[0].IntegrityStatus)

	anomalies, err := suite.repo.List(context.Background(), cyberlog.ListFilter{
		AnomalyDetected: c.NewOptional(true, true),
	})
	assert.Nil(err)
	assert.Len(anomalies, 2)

	tampered, err := suite.repo.List(context.Background(), cyberlog.ListFilter{
		AnomalyDetected: c.NewOptional(true, true),
		IntegrityStatus: c.NewOptional(cyberlog.StatusTampered, true),
	})
	assert.Nil(err)
	assert.Len(tampered, 1)
	assert.Equal(cyberlog.StatusTampered, tampered[0].IntegrityStatus)
}

func (suite *testSuite) TestGetStatsEmpty() {
	stats, err := suite.repo.GetStats(context.Background())

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(int64(0), stats.TotalLogs)
	assert.Equal(int64(0), stats.AnomaliesDetected)
	assert.Equal(float64(0), stats.AnomalyRate)
	assert.Len(stats.StatusBreakdown, 0)
}

func (suite *testSuite) TestGetStats() {
	suite.createRecord(cyberlog.StatusOK, false, NOW)
	suite.createRecord(cyberlog.StatusOK, false, NOW)
	suite.createRecord(cyberlog.StatusAnomaly, true, NOW)

	stats, err := suite.repo.GetStats(context.Background())

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(int64(3), stats.TotalLogs)
	assert.Equal(int64(1), stats.AnomaliesDetected)
	assert.Equal(33.33, stats.AnomalyRate)
	assert.Equal(
		[]cyberlog.StatusCount{
			{IntegrityStatus: cyberlog.StatusAnomaly, Count: 1},
			{IntegrityStatus: cyberlog.StatusOK, Count: 2},
		},
		stats.StatusBreakdown,
	)
}

func (suite *testSuite) createRecord(status cyberlog.IntegrityStatus, anomaly bool, at time.Time) {
	suite.T().Helper()
	_, err := suite.repo.Create(context.Background(), cyberlog.CreateInput{
		AnomalyDetected: anomaly,
		IntegrityStatus: status,
		Details:         "test",
		CreatedAt:       at,
	})
	if err != nil {
		suite.FailNow(err.Error())
	}
}
