package user

import (
	"context"
	c "securecrop/internal/core/domain/common"
	"time"
)

type CreateUserInput struct {
	Email              c.Email
	Username           string
	PasswordHash       PasswordHash
	Role               Role
	IsActive           bool
	CreatedAt          time.Time
	ReceiveEmailAlerts bool
	ReceiveSMSAlerts   bool
}

type UpdateUserInput struct {
	ID                         ID
	DoUsernameUpdate           bool
	Username                   string
	DoPhoneNumberUpdate        bool
	PhoneNumber                c.Optional[string]
	DoLocationUpdate           bool
	LocationLat                c.Optional[float64]
	LocationLon                c.Optional[float64]
	DoReceiveEmailAlertsUpdate bool
	ReceiveEmailAlerts         bool
	DoReceiveSMSAlertsUpdate   bool
	ReceiveSMSAlerts           bool
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, input UpdateUserInput) (User, error)
	SetPassword(ctx context.Context, id ID, password PasswordHash) error
	SetLastLogin(ctx context.Context, id ID, at time.Time) error
	SetActive(ctx context.Context, id ID, isActive bool) (User, error)
}

type CreateSessionInput struct {
	UserID    ID
	Token     SessionToken
	CreatedAt time.Time
}

type SessionRepository interface {
	Create(ctx context.Context, input CreateSessionInput) error
	GetUserByToken(ctx context.Context, token SessionToken) (User, error)
	Delete(ctx context.Context, token SessionToken) (userID ID, err error)
}
