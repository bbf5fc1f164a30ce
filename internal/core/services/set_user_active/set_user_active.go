package setuseractive

import (
	"context"
	"errors"
	"fmt"
	"securecrop/internal/core/domain/auditlog"
	e "securecrop/internal/core/domain/errors"
	"securecrop/internal/core/domain/logging"
	uow "securecrop/internal/core/domain/unit_of_work"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/core/services"
	"securecrop/internal/core/services/auth"
	"time"
)

type Input struct {
	Admin    user.User
	UserID   user.ID
	IsActive bool
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.Admin = u
	return i
}

type Result struct {
	User user.User
}

// service flips a user's active flag and writes the admin log record in the
// same transaction, so the audit trail can never miss an applied change.
type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
	now        func() time.Time
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
		now:        now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not begin unit of work.", logging.Entry("err", err))
		return result, err
	}
	defer uow.Rollback(ctx)

	u, err := uow.Users().SetActive(ctx, input.UserID, input.IsActive)
	if errors.Is(err, context.Canceled) || errors.Is(err, user.ErrUserDoesNotExist) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user active status.",
			logging.Entry("userID", input.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	action := "deactivated"
	if input.IsActive {
		action = "activated"
	}
	_, err = uow.AdminLogs().Create(ctx, auditlog.CreateInput{
		AdminID:   input.Admin.ID,
		Action:    fmt.Sprintf("%s user %s", action, string(u.Email)),
		CreatedAt: s.now(),
	})
	if err != nil {
		s.log.Error(ctx, "Could not create admin log record.", logging.Entry("err", err))
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		s.log.Error(ctx, "Could not commit unit of work.", logging.Entry("err", err))
		return result, err
	}

	s.log.Info(
		ctx,
		"User active status updated.",
		logging.Entry("adminID", input.Admin.ID),
		logging.Entry("userID", u.ID),
		logging.Entry("isActive", u.IsActive),
	)
	return Result{User: u}, nil
}
