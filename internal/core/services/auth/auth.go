package auth

import (
	"context"
	"errors"

	e "securecrop/internal/core/domain/errors"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/core/services"
)

type contextAuthToken string

const CONTEXT_AUTH_TOKEN_KEY = contextAuthToken("authToken")

type Input interface {
	WithAuthenticatedUser(u user.User) Input
}

type service[T Input, S any] struct {
	sessionRepository user.SessionRepository
	isAdminRequired   bool
	inner             services.Service[T, S]
}

func WithAuthentication[T Input, S any](
	sessionRepository user.SessionRepository,
	inner services.Service[T, S],
) services.Service[T, S] {
	return newService(sessionRepository, false, inner)
}

// WithAdminAuthentication additionally requires the session user to hold the
// ADMIN role.
func WithAdminAuthentication[T Input, S any](
	sessionRepository user.SessionRepository,
	inner services.Service[T, S],
) services.Service[T, S] {
	return newService(sessionRepository, true, inner)
}

func newService[T Input, S any](
	sessionRepository user.SessionRepository,
	isAdminRequired bool,
	inner services.Service[T, S],
) services.Service[T, S] {
	if sessionRepository == nil {
		panic(e.NewNilArgumentError("sessionRepository"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &service[T, S]{
		sessionRepository: sessionRepository,
		isAdminRequired:   isAdminRequired,
		inner:             inner,
	}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	authToken, ok := ctx.Value(CONTEXT_AUTH_TOKEN_KEY).(user.SessionToken)
	if !ok {
		return result, user.ErrSessionDoesNotExist
	}
	u, err := s.sessionRepository.GetUserByToken(ctx, authToken)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, user.ErrSessionDoesNotExist
	}
	if err != nil {
		return result, err
	}
	if s.isAdminRequired && !u.IsAdmin() {
		return result, user.ErrPermissionDenied
	}
	return s.inner.Run(ctx, input.WithAuthenticatedUser(u).(T))
}
