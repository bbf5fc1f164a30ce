package user

import (
	"context"
	"errors"
	c "securecrop/internal/core/domain/common"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/db"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = c.Email("test@test.test")
	USERNAME      = "tester"
	PASSWORD_HASH = user.PasswordHash("test-password-hash")
)

var NOW time.Time = time.Date(2024, 4, 15, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	repo *PgxUserRepository
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

func TestPgxUserRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestCreateSuccess() {
	input := user.CreateUserInput{
		Email:              EMAIL,
		Username:           USERNAME,
		PasswordHash:       PASSWORD_HASH,
		Role:               user.RoleUser,
		IsActive:           true,
		CreatedAt:          NOW,
		ReceiveEmailAlerts: true,
		ReceiveSMSAlerts:   false,
	}
	u, err := suite.repo.Create(context.Background(), input)

	assert := suite.Require()
	assert.Nil(err)
	assert.NotZero(u.ID)
	assert.Equal(EMAIL, u.Email)
	assert.Equal(USERNAME, u.Username)
	assert.Equal(PASSWORD_HASH, u.PasswordHash)
	assert.Equal(user.RoleUser, u.Role)
	assert.True(u.IsActive)
	assert.True(NOW.Equal(u.CreatedAt))
	assert.True(u.ReceiveEmailAlerts)
	assert.False(u.ReceiveSMSAlerts)
	assert.False(u.LastLoginAt.IsPresent)
	assert.False(u.PhoneNumber.IsPresent)
	assert.False(u.LocationLat.IsPresent)
	assert.False(u.LocationLon.IsPresent)
}

func (suite *testSuite) TestEmailAlreadyExistsError() {
	suite.createUser(EMAIL)

	_, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Email:        EMAIL,
		Username:     "other",
		PasswordHash: PASSWORD_HASH,
		Role:         user.RoleUser,
		IsActive:     true,
		CreatedAt:    NOW,
	})
	suite.Require().True(errors.Is(err, user.ErrEmailAlreadyExists))
}

func (suite *testSuite) TestGetByEmail() {
	created := suite.createUser(EMAIL)

	u, err := suite.repo.GetByEmail(context.Background(), EMAIL)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(created.ID, u.ID)

	_, err = suite.repo.GetByEmail(context.Background(), "unknown@test.test")
	assert.True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (suite *testSuite) TestList() {
	first := suite.createUser("first@test.test")
	second := suite.createUser("second@test.test")

	users, err := suite.repo.List(context.Background())

	assert := suite.Require()
	assert.Nil(err)
	assert.Len(users, 2)
	// Newest first, ties broken by ID.
	assert.Equal(second.ID, users[0].ID)
	assert.Equal(first.ID, users[1].ID)
}

func (suite *testSuite) TestUpdate() {
	created := suite.createUser(EMAIL)

	u, err := suite.repo.Update(context.Background(), user.UpdateUserInput{
		ID:                  created.ID,
		DoUsernameUpdate:    true,
		Username:            "renamed",
		DoPhoneNumberUpdate: true,
		PhoneNumber:         c.NewOptional("+221772345678", true),
		DoLocationUpdate:    true,
		LocationLat:         c.NewOptional(14.6928, true),
		LocationLon:         c.NewOptional(-17.4467, true),
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal("renamed", u.Username)
	assert.Equal(c.NewOptional("+221772345678", true), u.PhoneNumber)
	assert.Equal(c.NewOptional(14.6928, true), u.LocationLat)
	assert.Equal(c.NewOptional(-17.4467, true), u.LocationLon)
	// Untouched fields keep their values.
	assert.Equal(EMAIL, u.Email)
	assert.True(u.ReceiveEmailAlerts)
}

func (suite *testSuite) TestUpdateClearsOptionalFields() {
	created := suite.createUser(EMAIL)
	_, err := suite.repo.Update(context.Background(), user.UpdateUserInput{
		ID:                  created.ID,
		DoPhoneNumberUpdate: true,
		PhoneNumber:         c.NewOptional("+221772345678", true),
	})
	suite.Require().Nil(err)

	u, err := suite.repo.Update(context.Background(), user.UpdateUserInput{
		ID:                  created.ID,
		DoPhoneNumberUpdate: true,
		PhoneNumber:         c.NewOptional("", false),
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.False(u.PhoneNumber.IsPresent)
}

func (suite *testSuite) TestUpdateUnknownUser() {
	_, err := suite.repo.Update(context.Background(), user.UpdateUserInput{
		ID:               user.ID(999),
		DoUsernameUpdate: true,
		Username:         "renamed",
	})
	suite.Require().True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (suite *testSuite) TestSetPassword() {
	created := suite.createUser(EMAIL)

	err := suite.repo.SetPassword(context.Background(), created.ID, user.PasswordHash("new-hash"))

	assert := suite.Require()
	assert.Nil(err)
	u, err := suite.repo.GetByID(context.Background(), created.ID)
	assert.Nil(err)
	assert.Equal(user.PasswordHash("new-hash"), u.PasswordHash)

	err = suite.repo.SetPassword(context.Background(), user.ID(999), user.PasswordHash("new-hash"))
	assert.True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (suite *testSuite) TestSetLastLogin() {
	created := suite.createUser(EMAIL)

	err := suite.repo.SetLastLogin(context.Background(), created.ID, NOW)

	assert := suite.Require()
	assert.Nil(err)
	u, err := suite.repo.GetByID(context.Background(), created.ID)
	assert.Nil(err)
	assert.True(u.LastLoginAt.IsPresent)
	assert.True(NOW.Equal(u.LastLoginAt.Value))
}

func (suite *testSuite) TestSetActive() {
	created := suite.createUser(EMAIL)

	u, err := suite.repo.SetActive(context.Background(), created.ID, false)

	assert := suite.Require()
	assert.Nil(err)
	assert.False(u.IsActive)

	_, err = suite.repo.SetActive(context.Background(), user.ID(999), false)
	assert.True(errors.Is(err, user.ErrUserDoesNotExist))
}

func (suite *testSuite) createUser(email c.Email) user.User {
	suite.T().Helper()
	u, err := suite.repo.Create(context.Background(), user.CreateUserInput{
		Email:              email,
		Username:           USERNAME,
		PasswordHash:       PASSWORD_HASH,
		Role:               user.RoleUser,
		IsActive:           true,
		CreatedAt:          NOW,
		ReceiveEmailAlerts: true,
		ReceiveSMSAlerts:   false,
	})
	if err != nil {
		suite.FailNow(err.Error())
	}
	return u
}
