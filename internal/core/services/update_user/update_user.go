package updateuser

import (
	"context"
	c "securecrop/internal/core/domain/common"
	e "securecrop/internal/core/domain/errors"
	"securecrop/internal/core/domain/logging"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/core/services"
	"securecrop/internal/core/services/auth"
)

type Input struct {
	UserID                     user.ID
	DoUsernameUpdate           bool
	Username                   string
	DoPhoneNumberUpdate        bool
	PhoneNumber                c.Optional[string]
	DoLocationUpdate           bool
	LocationLat                c.Optional[float64]
	LocationLon                c.Optional[float64]
	DoReceiveEmailAlertsUpdate bool
	ReceiveEmailAlerts         bool
	DoReceiveSMSAlertsUpdate   bool
	ReceiveSMSAlerts           bool
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	User user.User
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
	updatedUser, err := s.userRepository.Update(
		ctx,
		user.UpdateUserInput{
			ID:                         input.UserID,
			DoUsernameUpdate:           input.DoUsernameUpdate,
			Username:                   input.Username,
			DoPhoneNumberUpdate:        input.DoPhoneNumberUpdate,
			PhoneNumber:                input.PhoneNumber,
			DoLocationUpdate:           input.DoLocationUpdate,
			LocationLat:                input.LocationLat,
			LocationLon:                input.LocationLon,
			DoReceiveEmailAlertsUpdate: input.DoReceiveEmailAlertsUpdate,
			ReceiveEmailAlerts:         input.ReceiveEmailAlerts,
			DoReceiveSMSAlertsUpdate:   input.DoReceiveSMSAlertsUpdate,
			ReceiveSMSAlerts:           input.ReceiveSMSAlerts,
		},
	)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(
		ctx,
		"User profile successfully updated.",
		logging.Entry("userID", updatedUser.ID),
	)
	result.User = updatedUser
	return result, nil
}
