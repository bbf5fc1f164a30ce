package verifypasswordresettoken

import (
	"context"
	"errors"
	c "securecrop/internal/core/domain/common"
	e "securecrop/internal/core/domain/errors"
	"securecrop/internal/core/domain/logging"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/core/services"
	"time"
)

type Input struct {
	Token user.PasswordResetToken
}

type Result struct {
	IsValid bool
	Email   c.Email
}

// service checks a token without consuming it. Unknown, used and expired
// tokens all come back as not valid.
type service struct {
	log                     logging.Logger
	passwordResetRepository user.PasswordResetRepository
	userRepository          user.UserRepository
	now                     func() time.Time
}

func New(
	log logging.Logger,
	passwordResetRepository user.PasswordResetRepository,
	userRepository user.UserRepository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if passwordResetRepository == nil {
		panic(e.NewNilArgumentError("passwordResetRepository"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                     log,
		passwordResetRepository: passwordResetRepository,
		userRepository:          userRepository,
		now:                     now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	p, err := s.passwordResetRepository.GetByToken(ctx, input.Token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrPasswordResetTokenDoesNotExist) {
		return Result{IsValid: false}, nil
	}
	if err != nil {
		s.log.Error(ctx, "Could not get password reset token.", logging.Entry("err", err))
		return result, err
	}
	if !p.IsValid(s.now()) {
		return Result{IsValid: false}, nil
	}

	u, err := s.userRepository.GetByID(ctx, p.UserID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return Result{IsValid: false}, nil
	}
	if err != nil {
		s.log.Error(ctx, "Could not get user by ID.", logging.Entry("err", err))
		return result, err
	}
	return Result{IsValid: true, Email: u.Email}, nil
}
