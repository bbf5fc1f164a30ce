package listusers

import (
	"context"
	"errors"
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
	Users []user.User
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	users, err := s.userRepository.List(ctx)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not list users.", logging.Entry("err", err))
		return result, err
	}
	return Result{Users: users}, nil
}
