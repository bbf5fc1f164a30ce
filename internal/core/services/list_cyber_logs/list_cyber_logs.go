package listcyberlogs

import (
	"context"
	"errors"
	"securecrop/internal/core/domain/cyberlog"
	e "securecrop/internal/core/domain/errors"
	"securecrop/internal/core/domain/logging"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/core/services"
	"securecrop/internal/core/services/auth"
)

type Input struct {
	Admin  user.User
	Filter cyberlog.ListFilter
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.Admin = u
	return i
}

type Result struct {
	Records []cyberlog.Record
}

type service struct {
	log                logging.Logger
	cyberLogRepository cyberlog.Repository
}

func New(
	log logging.Logger,
	cyberLogRepository cyberlog.Repository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if cyberLogRepository == nil {
		panic(e.NewNilArgumentError("cyberLogRepository"))
	}
	return &service{
		log:                log,
		cyberLogRepository: cyberLogRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.Filter.IntegrityStatus.IsPresent {
		if err := input.Filter.IntegrityStatus.Value.Validate(); err != nil {
			return result, err
		}
	}
	records, err := s.cyberLogRepository.List(ctx, input.Filter)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not list security log records.", logging.Entry("err", err))
		return result, err
	}
	return Result{Records: records}, nil
}
