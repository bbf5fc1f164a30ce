package user

import (
	c "securecrop/internal/core/domain/common"
	"time"
)

type ID int64

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type SessionToken string

type User struct {
	ID                 ID
	Email              c.Email
	Username           string
	PasswordHash       PasswordHash
	Role               Role
	IsActive           bool
	CreatedAt          time.Time
	LastLoginAt        c.Optional[time.Time]
	PhoneNumber        c.Optional[string]
	LocationLat        c.Optional[float64]
	LocationLon        c.Optional[float64]
	ReceiveEmailAlerts bool
	ReceiveSMSAlerts   bool
	ProfilePicture     c.Optional[string]
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
