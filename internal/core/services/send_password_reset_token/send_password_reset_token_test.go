package sendpasswordresettoken

import (
	"context"
	c "securecrop/internal/core/domain/common"
	"securecrop/internal/core/domain/logging"
	uow "securecrop/internal/core/domain/unit_of_work"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL          = c.Email("test@test.test")
	RESET_TOKEN    = "test-reset-token"
	RESET_BASE_URL = "https://app.test"
	TOKEN_VALIDITY = time.Hour
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger                  *logging.FakeLogger
	UserRepository          *user.FakeUserRepository
	PasswordResetRepository *user.FakePasswordResetRepository
	UnitOfWork              *uow.FakeUnitOfWork
	TokenGenerator          *user.FakePasswordResetTokenGenerator
	TokenSender             *user.FakePasswordResetTokenSender
	Service                 services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UnitOfWork = uow.NewFakeUnitOfWork()
	suite.UserRepository = suite.UnitOfWork.Context.UserRepository
	suite.PasswordResetRepository = suite.UnitOfWork.Context.PasswordResetRepository
	suite.TokenGenerator = user.NewFakePasswordResetTokenGenerator(RESET_TOKEN)
	suite.TokenSender = user.NewFakePasswordResetTokenSender()
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.UnitOfWork,
		suite.TokenGenerator,
		suite.TokenSender,
		TOKEN_VALIDITY,
		RESET_BASE_URL,
		func() time.Time { return NOW },
	)
}

func TestSendPasswordResetTokenService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	u := suite.createUser(true)

	result, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(user.PasswordResetToken(RESET_TOKEN), result.Token)
	assert.Equal(RESET_BASE_URL+"/reset-password?token="+RESET_TOKEN, result.ResetLink)
	assert.True(result.EmailSent)
	assert.True(suite.UnitOfWork.Context.WasCommitCalled)

	p, err := suite.PasswordResetRepository.GetByToken(context.Background(), result.Token)
	assert.Nil(err)
	assert.Equal(u.ID, p.UserID)
	assert.Equal(NOW, p.CreatedAt)
	assert.Equal(NOW.Add(TOKEN_VALIDITY), p.ExpiresAt)
	assert.False(p.Used)

	assert.Equal(1, suite.TokenSender.SentCount())
	assert.Equal(u.ID, suite.TokenSender.SentTo[0].ID)
}

func (suite *testSuite) TestUnknownEmailLooksLikeSuccess() {
	result, err := suite.Service.Run(context.Background(), Input{Email: "unknown@test.test"})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(user.PasswordResetToken(""), result.Token)
	assert.Equal(0, suite.TokenSender.SentCount())
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
}

func (suite *testSuite) TestInactiveUserLooksLikeSuccess() {
	suite.createUser(false)

	result, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(user.PasswordResetToken(""), result.Token)
	assert.Equal(0, suite.TokenSender.SentCount())
}

func (suite *testSuite) TestPreviousTokensAreInvalidated() {
	u := suite.createUser(true)
	for _, token := range []user.PasswordResetToken{"old-token-1", "old-token-2"} {
		_, err := suite.PasswordResetRepository.Create(context.Background(), user.CreatePasswordResetInput{
			Token:     token,
			UserID:    u.ID,
			CreatedAt: NOW.Add(-time.Minute),
			ExpiresAt: NOW.Add(TOKEN_VALIDITY),
		})
		suite.Require().Nil(err)
	}

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	active := suite.PasswordResetRepository.ActiveTokens(u.ID, NOW)
	assert.Len(active, 1)
	assert.Equal(user.PasswordResetToken(RESET_TOKEN), active[0].Token)
}

func (suite *testSuite) TestSendFailureDoesNotFailTheRequest() {
	u := suite.createUser(true)
	suite.TokenSender.ReturnError = true

	result, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(user.PasswordResetToken(RESET_TOKEN), result.Token)
	assert.False(result.EmailSent)
	assert.NotEmpty(result.SendError)
	assert.True(suite.UnitOfWork.Context.WasCommitCalled)

	// The token survived the delivery failure.
	active := suite.PasswordResetRepository.ActiveTokens(u.ID, NOW)
	assert.Len(active, 1)
}

func (suite *testSuite) TestRepositoryError() {
	suite.createUser(true)
	suite.PasswordResetRepository.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL})

	assert := suite.Require()
	assert.NotNil(err)
	assert.True(suite.UnitOfWork.Context.WasRollbackCalled)
	assert.Equal(0, suite.TokenSender.SentCount())
}

func (suite *testSuite) createUser(isActive bool) user.User {
	suite.T().Helper()
	u, err := suite.UserRepository.Create(
		context.Background(),
		user.CreateUserInput{
			Email:        EMAIL,
			Username:     "tester",
			PasswordHash: user.PasswordHash("test-hash"),
			Role:         user.RoleUser,
			IsActive:     isActive,
			CreatedAt:    NOW,
		},
	)
	if err != nil {
		suite.FailNow(err.Error())
	}
	return u
}
