package listadminlogs

import (
	"context"
	"errors"
	"securecrop/internal/core/domain/auditlog"
	e "securecrop/internal/core/domain/errors"
	"securecrop/internal/core/domain/logging"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/core/services"
	"securecrop/internal/core/services/auth"
)

type Input struct {
	Admin user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.Admin = u
	return i
}

type Result struct {
	Records []auditlog.Record
}

type service struct {
	log                logging.Logger
	adminLogRepository auditlog.Repository
}

func New(
	log logging.Logger,
	adminLogRepository auditlog.Repository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if adminLogRepository == nil {
		panic(e.NewNilArgumentError("adminLogRepository"))
	}
	return &service{
		log:                log,
		adminLogRepository: adminLogRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	records, err := s.adminLogRepository.List(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not list admin log records.", logging.Entry("err", err))
		return result, err
	}
	return Result{Records: records}, nil
}
