package listcyberlogs

import (
	"context"
	c "securecrop/internal/core/domain/common"
	"securecrop/internal/core/domain/cyberlog"
	"securecrop/internal/core/domain/logging"
	"securecrop/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Repository *cyberlog.FakeRepository
	Service    services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Repository = cyberlog.NewFakeRepository()
	suite.Service = New(logging.NewFakeLogger(), suite.Repository)
}

func TestListCyberLogsService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestListAll() {
	suite.createRecord(cyberlog.StatusOK, false)
	suite.createRecord(cyberlog.StatusAnomaly, true)

	result, err := suite.Service.Run(context.Background(), Input{})

	assert := suite.Require()
	assert.Nil(err)
	assert.Len(result.Records, 2)
}

func (suite *testSuite) TestFilterByAnomaly() {
	suite.createRecord(cyberlog.StatusOK, false)
	suite.createRecord(cyberlog.StatusAnomaly, true)
	suite.createRecord(cyberlog.StatusTampered, true)

	result, err := suite.Service.Run(context.Background(), Input{
		Filter: cyberlog.ListFilter{AnomalyDetected: c.NewOptional(true, true)},
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Len(result.Records, 2)
	for _, rec := range result.Records {
		assert.True(rec.AnomalyDetected)
	}
}

func (suite *testSuite) TestFilterByIntegrityStatus() {
	suite.createRecord(cyberlog.StatusOK, false)
	suite.createRecord(cyberlog.StatusTampered, true)

	result, err := suite.Service.Run(context.Background(), Input{
		Filter: cyberlog.ListFilter{
			IntegrityStatus: c.NewOptional(cyberlog.StatusTampered, true),
		},
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Len(result.Records, 1)
	assert.Equal(cyberlog.StatusTampered, result.Records[0].IntegrityStatus)
}

func (suite *testSuite) TestInvalidStatusFilter() {
	_, err := suite.Service.Run(context.Background(), Input{
		Filter: cyberlog.ListFilter{
			IntegrityStatus: c.NewOptional(cyberlog.IntegrityStatus("BROKEN"), true),
		},
	})
	suite.Require().NotNil(err)
}

func (suite *testSuite) createRecord(status cyberlog.IntegrityStatus, anomaly bool) {
	suite.T().Helper()
	_, err := suite.Repository.Create(context.Background(), cyberlog.CreateInput{
		AnomalyDetected: anomaly,
		IntegrityStatus: status,
		Details:         "test",
		CreatedAt:       NOW,
	})
	if err != nil {
		suite.FailNow(err.Error())
	}
}
