package user

import (
	"context"
	"time"
)

type PasswordResetToken string

// PasswordReset is a single-use token row. Every minted token is kept for
// audit; only the most recent unused and unexpired one is meant to work.
type PasswordReset struct {
	Token     PasswordResetToken
	UserID    ID
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
}

func (p *PasswordReset) IsValid(now time.Time) bool {
	return !p.Used && now.Before(p.ExpiresAt)
}

type CreatePasswordResetInput struct {
	Token     PasswordResetToken
	UserID    ID
	CreatedAt time.Time
	ExpiresAt time.Time
}

type PasswordResetRepository interface {
	Create(ctx context.Context, input CreatePasswordResetInput) (PasswordReset, error)
	GetByToken(ctx context.Context, token PasswordResetToken) (PasswordReset, error)
	// GetByTokenWithLock locks the token row for the rest of the transaction
	// so concurrent confirmations cannot both consume it.
	GetByTokenWithLock(ctx context.Context, token PasswordResetToken) (PasswordReset, error)
	MarkUsed(ctx context.Context, token PasswordResetToken) error
	MarkAllUsedForUser(ctx context.Context, userID ID) (count int64, err error)
}

type PasswordResetTokenGenerator interface {
	GeneratePasswordResetToken() PasswordResetToken
}

type PasswordResetTokenSender interface {
	SendPasswordResetToken(ctx context.Context, u User, token PasswordResetToken) error
}
