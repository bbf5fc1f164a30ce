package verifypasswordresettoken

import (
	"context"
	c "securecrop/internal/core/domain/common"
	"securecrop/internal/core/domain/logging"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL       = c.Email("test@test.test")
	RESET_TOKEN = user.PasswordResetToken("test-reset-token")
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	UserRepository          *user.FakeUserRepository
	PasswordResetRepository *user.FakePasswordResetRepository
	Service                 services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.UserRepository = user.NewFakeUserRepository()
	suite.PasswordResetRepository = user.NewFakePasswordResetRepository()
	suite.Service = New(
		logging.NewFakeLogger(),
		suite.PasswordResetRepository,
		suite.UserRepository,
		func() time.Time { return NOW },
	)
}

func TestVerifyPasswordResetTokenService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestValidToken() {
	u := suite.createUser()
	suite.createToken(u.ID, NOW.Add(time.Hour), false)

	result, err := suite.Service.Run(context.Background(), Input{Token: RESET_TOKEN})

	assert := suite.Require()
	assert.Nil(err)
	assert.True(result.IsValid)
	assert.Equal(EMAIL, result.Email)
}

func (suite *testSuite) TestUnknownToken() {
	result, err := suite.Service.Run(context.Background(), Input{Token: "unknown-token"})

	assert := suite.Require()
	assert.Nil(err)
	assert.False(result.IsValid)
	assert.Equal(c.Email(""), result.Email)
}

func (suite *testSuite) TestExpiredToken() {
	u := suite.createUser()
	suite.createToken(u.ID, NOW.Add(-time.Minute), false)

	result, err := suite.Service.Run(context.Background(), Input{Token: RESET_TOKEN})

	assert := suite.Require()
	assert.Nil(err)
	assert.False(result.IsValid)
}

func (suite *testSuite) TestUsedToken() {
	u := suite.createUser()
	suite.createToken(u.ID, NOW.Add(time.Hour), true)

	result, err := suite.Service.Run(context.Background(), Input{Token: RESET_TOKEN})

	assert := suite.Require()
	assert.Nil(err)
	assert.False(result.IsValid)
}

func (suite *testSuite) createUser() user.User {
	suite.T().Helper()
	u, err := suite.UserRepository.Create(
		context.Background(),
		user.CreateUserInput{
			Email:        EMAIL,
			Username:     "tester",
			PasswordHash: user.PasswordHash("test-hash"),
			Role:         user.RoleUser,
			IsActive:     true,
			CreatedAt:    NOW,
		},
	)
	if err != nil {
		suite.FailNow(err.Error())
	}
	return u
}

func (suite *testSuite) createToken(userID user.ID, expiresAt time.Time, used bool) {
	suite.T().Helper()
	_, err := suite.PasswordResetRepository.Create(
		context.Background(),
		user.CreatePasswordResetInput{
			Token:     RESET_TOKEN,
			UserID:    userID,
			CreatedAt: NOW,
			ExpiresAt: expiresAt,
		},
	)
	if err != nil {
		suite.FailNow(err.Error())
	}
	if used {
		if err := suite.PasswordResetRepository.MarkUsed(context.Background(), RESET_TOKEN); err != nil {
			suite.FailNow(err.Error())
		}
	}
}
