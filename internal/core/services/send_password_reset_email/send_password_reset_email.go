package sendpasswordresetemail

import (
	"context"
	c "securecrop/internal/core/domain/common"
	e "securecrop/internal/core/domain/errors"
	"securecrop/internal/core/domain/logging"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/core/services"
	"time"
)

type Input struct {
	UserID   user.ID
	Email    c.Email
	Username string
	Token    user.PasswordResetToken
}

type Result struct{}

// service delivers a queued password reset email. It runs in the worker, the
// API never waits on SES.
type service struct {
	log         logging.Logger
	sender      user.PasswordResetTokenSender
	sendTimeout time.Duration
}

func New(
	log logging.Logger,
	sender user.PasswordResetTokenSender,
	sendTimeout time.Duration,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	return &service{log: log, sender: sender, sendTimeout: sendTimeout}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u := user.User{
		ID:       input.UserID,
		Email:    input.Email,
		Username: input.Username,
	}
	// A SES timeout is a delivery failure, never a reason to block the queue.
	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()
	if err := s.sender.SendPasswordResetToken(sendCtx, u, input.Token); err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset email.",
			logging.Entry("userID", input.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}
	s.log.Info(ctx, "Password reset email sent.", logging.Entry("userID", input.UserID))
	return result, nil
}
