package sendpasswordresettoken

import (
	"context"
	"errors"
	"fmt"
	c "securecrop/internal/core/domain/common"
	e "securecrop/internal/core/domain/errors"
	"securecrop/internal/core/domain/logging"
	uow "securecrop/internal/core/domain/unit_of_work"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/core/services"
	"strings"
	"time"
)

type Input struct {
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return "send-password-reset-token::" + string(i.Email)
}

// Result is identical for existing and unknown emails so that callers cannot
// infer account existence. The debug fields are only surfaced in test mode.
type Result struct {
	Token     user.PasswordResetToken
	ResetLink string
	EmailSent bool
	SendError string
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	unitOfWork     uow.UnitOfWork
	tokenGenerator user.PasswordResetTokenGenerator
	tokenSender    user.PasswordResetTokenSender
	tokenValidity  time.Duration
	resetBaseURL   string
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	unitOfWork uow.UnitOfWork,
	tokenGenerator user.PasswordResetTokenGenerator,
	tokenSender user.PasswordResetTokenSender,
	tokenValidity time.Duration,
	resetBaseURL string,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if tokenSender == nil {
		panic(e.NewNilArgumentError("tokenSender"))
	}
	if tokenValidity <= 0 {
		panic("tokenValidity must be positive")
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		unitOfWork:     unitOfWork,
		tokenGenerator: tokenGenerator,
		tokenSender:    tokenSender,
		tokenValidity:  tokenValidity,
		resetBaseURL:   strings.TrimRight(resetBaseURL, "/"),
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) || (err == nil && !u.IsActive) {
		// Deliberately indistinguishable from the success path.
		s.log.Info(
			ctx,
			"Password reset requested for unknown or inactive email.",
			logging.Entry("email", input.Email),
		)
		return result, nil
	}
	if err != nil {
		s.log.Error(ctx, "Could not get user by email.", logging.Entry("err", err))
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

	invalidatedCount, err := uow.PasswordResetTokens().MarkAllUsedForUser(ctx, u.ID)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not invalidate previous password reset tokens.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	now := s.now()
	token := s.tokenGenerator.GeneratePasswordResetToken()
	_, err = uow.PasswordResetTokens().Create(ctx, user.CreatePasswordResetInput{
		Token:     token,
		UserID:    u.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenValidity),
	})
	if err != nil {
		s.log.Error(
			ctx,
			"Could not create password reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		s.log.Error(ctx, "Could not commit unit of work.", logging.Entry("err", err))
		return result, err
	}

	result.Token = token
	result.ResetLink = fmt.Sprintf("%s/reset-password?token=%s", s.resetBaseURL, token)

	s.log.Info(
		ctx,
		"Password reset token created.",
		logging.Entry("userID", u.ID),
		logging.Entry("invalidatedTokens", invalidatedCount),
	)

	// Delivery happens after commit so its failure can never roll back the
	// freshly minted token, and is never reported to the caller.
	if err := s.tokenSender.SendPasswordResetToken(ctx, u, token); err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		result.SendError = err.Error()
		return result, nil
	}
	result.EmailSent = true
	return result, nil
}
