package resetpassword

import (
	"context"
	"errors"
	e "securecrop/internal/core/domain/errors"
	"securecrop/internal/core/domain/logging"
	uow "securecrop/internal/core/domain/unit_of_work"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/core/services"
	"time"
)

type Input struct {
	Token    user.PasswordResetToken
	Password user.RawPassword
}

type Result struct{}

type service struct {
	log            logging.Logger
	unitOfWork     uow.UnitOfWork
	passwordHasher user.PasswordHasher
	now            func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	passwordHasher user.PasswordHasher,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		unitOfWork:     unitOfWork,
		passwordHasher: passwordHasher,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	passwordHash, err := s.passwordHasher.HashPassword(input.Password)
	if err != nil {
		s.log.Error(ctx, "Could not hash password.", logging.Entry("err", err))
		return result, err
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return result, err
	}
	defer uow.Rollback(ctx)

	// The row lock makes concurrent confirmations of the same token serialize
	// here, so only the first one finds it still valid.
	p, err := uow.PasswordResetTokens().GetByTokenWithLock(ctx, input.Token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrPasswordResetTokenDoesNotExist) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not get password reset token.", logging.Entry("err", err))
		return result, err
	}
	if !p.IsValid(s.now()) {
		return result, user.ErrPasswordResetTokenInvalid
	}

	if err := uow.Users().SetPassword(ctx, p.UserID, passwordHash); err != nil {
		s.log.Error(
			ctx,
			"Could not set new password.",
			logging.Entry("userID", p.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}
	if err := uow.PasswordResetTokens().MarkUsed(ctx, p.Token); err != nil {
		s.log.Error(
			ctx,
			"Could not mark password reset token as used.",
			logging.Entry("err", err),
		)
		return result, err
	}
	// Any older tokens of the same user die with this one.
	if _, err := uow.PasswordResetTokens().MarkAllUsedForUser(ctx, p.UserID); err != nil {
		s.log.Error(
			ctx,
			"Could not invalidate remaining password reset tokens.",
			logging.Entry("userID", p.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		s.log.Error(ctx, "Could not commit unit of work.", logging.Entry("err", err))
		return result, err
	}

	s.log.Info(ctx, "Password has been reset.", logging.Entry("userID", p.UserID))
	return result, nil
}
