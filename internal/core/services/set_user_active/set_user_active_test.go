package setuseractive

import (
	"context"
	"errors"
	"securecrop/internal/core/domain/auditlog"
	c "securecrop/internal/core/domain/common"
	"securecrop/internal/core/domain/logging"
	uow "securecrop/internal/core/domain/unit_of_work"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	UserRepository     *user.FakeUserRepository
	AdminLogRepository *auditlog.FakeRepository
	UnitOfWork         *uow.FakeUnitOfWork
	Service            services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.UnitOfWork = uow.NewFakeUnitOfWork()
	suite.UserRepository = suite.UnitOfWork.Context.UserRepository
	suite.AdminLogRepository = suite.UnitOfWork.Context.AdminLogRepository
	suite.Service = New(
		logging.NewFakeLogger(),
		suite.UnitOfWork,
		func() time.Time { return NOW },
	)
}

func TestSetUserActiveService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestDeactivate() {
	admin := suite.createUser("admin@test.test", user.RoleAdmin, true)
	target := suite.createUser("farmer@test.test", user.RoleUser, true)

	result, err := suite.Service.Run(
		context.Background(),
		Input{Admin: admin, UserID: target.ID, IsActive: false},
	)

	assert := suite.Require()
	assert.Nil(err)
	assert.False(result.User.IsActive)
	assert.True(suite.UnitOfWork.Context.WasCommitCalled)

	records, err := suite.AdminLogRepository.List(context.Background())
	assert.Nil(err)
	assert.Len(records, 1)
	assert.Equal(admin.ID, records[0].AdminID)
	assert.Equal("deactivated user farmer@test.test", records[0].Action)
	assert.Equal(NOW, records[0].CreatedAt)
}

func (suite *testSuite) TestActivate() {
	admin := suite.createUser("admin@test.test", user.RoleAdmin, true)
	target := suite.createUser("farmer@test.test", user.RoleUser, false)

	result, err := suite.Service.Run(
		context.Background(),
		Input{Admin: admin, UserID: target.ID, IsActive: true},
	)

	assert := suite.Require()
	assert.Nil(err)
	assert.True(result.User.IsActive)

	records, err := suite.AdminLogRepository.List(context.Background())
	assert.Nil(err)
	assert.Len(records, 1)
	assert.Equal("activated user farmer@test.test", records[0].Action)
}

func (suite *testSuite) TestUnknownUser() {
	admin := suite.createUser("admin@test.test", user.RoleAdmin, true)

	_, err := suite.Service.Run(
		context.Background(),
		Input{Admin: admin, UserID: user.ID(999), IsActive: false},
	)

	assert := suite.Require()
	assert.True(errors.Is(err, user.ErrUserDoesNotExist))
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
}

func (suite *testSuite) TestAuditFailureRollsBack() {
	admin := suite.createUser("admin@test.test", user.RoleAdmin, true)
	target := suite.createUser("farmer@test.test", user.RoleUser, true)
	suite.AdminLogRepository.ReturnError = true

	_, err := suite.Service.Run(
		context.Background(),
		Input{Admin: admin, UserID: target.ID, IsActive: false},
	)

	assert := suite.Require()
	assert.NotNil(err)
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
	assert.True(suite.UnitOfWork.Context.WasRollbackCalled)
}

func (suite *testSuite) createUser(email string, role user.Role, isActive bool) user.User {
	suite.T().Helper()
	u, err := suite.UserRepository.Create(
		context.Background(),
		user.CreateUserInput{
			Email:        c.NewEmail(email),
			Username:     "tester",
			PasswordHash: user.PasswordHash("test-hash"),
			Role:         role,
			IsActive:     isActive,
			CreatedAt:    NOW,
		},
	)
	if err != nil {
		suite.FailNow(err.Error())
	}
	return u
}
