package user

import (
	"context"
	"errors"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/db"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const SESSION_TOKEN = user.SessionToken("test-session-token")

type sessionTestSuite struct {
	suite.Suite
	pool     *pgxpool.Pool
	userRepo *PgxUserRepository
	repo     *PgxSessionRepository
}

func (suite *sessionTestSuite) SetupSuite() {
	suite.pool = db.CreateTestPool()
	suite.userRepo = NewPgxRepository(suite.pool)
	suite.repo = NewPgxSessionRepository(suite.pool)
}

func (suite *sessionTestSuite) TearDownSuite() {
	suite.pool.Close()
}

func (suite *sessionTestSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxSessionRepository(t *testing.T) {
	suite.Run(t, new(sessionTestSuite))
}

func (suite *sessionTestSuite) TestCreateAndGetUserByToken() {
	u := suite.createUser()

	err := suite.repo.Create(context.Background(), user.CreateSessionInput{
		UserID:    u.ID,
		Token:     SESSION_TOKEN,
		CreatedAt: NOW,
	})

	assert := suite.Require()
	assert.Nil(err)

	sessionUser, err := suite.repo.GetUserByToken(context.Background(), SESSION_TOKEN)
	assert.Nil(err)
	assert.Equal(u.ID, sessionUser.ID)
	assert.Equal(u.Email, sessionUser.Email)
}

func (suite *sessionTestSuite) TestGetUserByUnknownToken() {
	_, err := suite.repo.GetUserByToken(context.Background(), "unknown-token")
	suite.Require().True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (suite *sessionTestSuite) TestDelete() {
	u := suite.createUser()
	err := suite.repo.Create(context.Background(), user.CreateSessionInput{
		UserID:    u.ID,
		Token:     SESSION_TOKEN,
		CreatedAt: NOW,
	})
	suite.Require().Nil(err)

	userID, err := suite.repo.Delete(context.Background(), SESSION_TOKEN)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(u.ID, userID)

	_, err = suite.repo.GetUserByToken(context.Background(), SESSION_TOKEN)
	assert.True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (suite *sessionTestSuite) TestDeleteUnknownToken() {
	_, err := suite.repo.Delete(context.Background(), "unknown-token")
	suite.Require().True(errors.Is(err, user.ErrSessionDoesNotExist))
}

func (suite *sessionTestSuite) createUser() user.User {
	suite.T().Helper()
	u, err := suite.userRepo.Create(context.Background(), user.CreateUserInput{
		Email:        EMAIL,
		Username:     USERNAME,
		PasswordHash: PASSWORD_HASH,
		Role:         user.RoleUser,
		IsActive:     true,
		CreatedAt:    NOW,
	})
	if err != nil {
		suite.FailNow(err.Error())
	}
	return u
}
