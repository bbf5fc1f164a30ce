package getcyberlogstats

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
	Admin user.User
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.Admin = u
	return i
}

type Result struct {
	Stats cyberlog.Stats
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
	stats, err := s.cyberLogRepository.GetStats(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not get security log stats.", logging.Entry("err", err))
		return result, err
	}
	return Result{Stats: stats}, nil
}
