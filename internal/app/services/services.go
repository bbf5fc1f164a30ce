package services

import (
	"securecrop/internal/app/deps"
	drl "securecrop/internal/core/domain/rate_limiter"
	"securecrop/internal/core/services"
	"securecrop/internal/core/services/auth"
	getcyberlogstats "securecrop/internal/core/services/get_cyber_log_stats"
	getuserbysessiontoken "securecrop/internal/core/services/get_user_by_session_token"
	listadminlogs "securecrop/internal/core/services/list_admin_logs"
	listcyberlogs "securecrop/internal/core/services/list_cyber_logs"
	listusers "securecrop/internal/core/services/list_users"
	loginwithemail "securecrop/internal/core/services/log_in_with_email"
	logout "securecrop/internal/core/services/log_out"
	ratelimiting "securecrop/internal/core/services/rate_limiting"
	recordsecurityevent "securecrop/internal/core/services/record_security_event"
	resetpassword "securecrop/internal/core/services/reset_password"
	sendpasswordresetemail "securecrop/internal/core/services/send_password_reset_email"
	sendpasswordresettoken "securecrop/internal/core/services/send_password_reset_token"
	setuseractive "securecrop/internal/core/services/set_user_active"
	signup "securecrop/internal/core/services/sign_up"
	updateuser "securecrop/internal/core/services/update_user"
	verifypasswordresettoken "securecrop/internal/core/services/verify_password_reset_token"
)

type Services struct {
	SignUp                   services.Service[signup.Input, signup.Result]
	LogInWithEmail           services.Service[loginwithemail.Input, loginwithemail.Result]
	LogOut                   services.Service[logout.Input, logout.Result]
	GetUserBySessionToken    services.Service[getuserbysessiontoken.Input, getuserbysessiontoken.Result]
	UpdateUser               services.Service[updateuser.Input, updateuser.Result]
	SendPasswordResetToken   services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword            services.Service[resetpassword.Input, resetpassword.Result]
	VerifyPasswordResetToken services.Service[verifypasswordresettoken.Input, verifypasswordresettoken.Result]
	SendPasswordResetEmail   services.Service[sendpasswordresetemail.Input, sendpasswordresetemail.Result]

	ListUsers        services.Service[listusers.Input, listusers.Result]
	SetUserActive    services.Service[setuseractive.Input, setuseractive.Result]
	ListAdminLogs    services.Service[listadminlogs.Input, listadminlogs.Result]
	ListCyberLogs    services.Service[listcyberlogs.Input, listcyberlogs.Result]
	GetCyberLogStats services.Service[getcyberlogstats.Input, getcyberlogstats.Result]

	RecordSecurityEvent services.Service[recordsecurityevent.Input, recordsecurityevent.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.SignUp = signup.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordHasher,
		deps.SessionTokenGenerator,
		deps.Now,
	)
	s.LogInWithEmail = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 10},
		loginwithemail.New(
			deps.Logger,
			deps.UserRepository,
			deps.SessionRepository,
			deps.PasswordHasher,
			deps.SessionTokenGenerator,
			deps.Now,
		),
	)
	s.LogOut = logout.New(
		deps.Logger,
		deps.SessionRepository,
	)
	s.GetUserBySessionToken = auth.WithAuthentication(
		deps.SessionRepository,
		getuserbysessiontoken.New(),
	)
	s.UpdateUser = auth.WithAuthentication(
		deps.SessionRepository,
		updateuser.New(
			deps.Logger,
			deps.UserRepository,
		),
	)
	s.SendPasswordResetToken = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Hour, Value: 3},
		sendpasswordresettoken.New(
			deps.Logger,
			deps.UserRepository,
			deps.UnitOfWork,
			deps.PasswordResetTokenGenerator,
			deps.PasswordResetTokenSender,
			deps.Config.PasswordResetValidDuration,
			deps.Config.PasswordResetBaseURL,
			deps.Now,
		),
	)
	s.ResetPassword = resetpassword.New(
		deps.Logger,
		deps.UnitOfWork,
		deps.PasswordHasher,
		deps.Now,
	)
	s.VerifyPasswordResetToken = verifypasswordresettoken.New(
		deps.Logger,
		deps.PasswordResetRepository,
		deps.UserRepository,
		deps.Now,
	)
	s.SendPasswordResetEmail = sendpasswordresetemail.New(
		deps.Logger,
		deps.EmailSender,
		deps.Config.EmailSendTimeout,
	)

	s.ListUsers = auth.WithAdminAuthentication(
		deps.SessionRepository,
		listusers.New(
			deps.Logger,
			deps.UserRepository,
		),
	)
	s.SetUserActive = auth.WithAdminAuthentication(
		deps.SessionRepository,
		setuseractive.New(
			deps.Logger,
			deps.UnitOfWork,
			deps.Now,
		),
	)
	s.ListAdminLogs = auth.WithAdminAuthentication(
		deps.SessionRepository,
		listadminlogs.New(
			deps.Logger,
			deps.AdminLogRepository,
		),
	)
	s.ListCyberLogs = auth.WithAdminAuthentication(
		deps.SessionRepository,
		listcyberlogs.New(
			deps.Logger,
			deps.CyberLogRepository,
		),
	)
	s.GetCyberLogStats = auth.WithAdminAuthentication(
		deps.SessionRepository,
		getcyberlogstats.New(
			deps.Logger,
			deps.CyberLogRepository,
		),
	)

	s.RecordSecurityEvent = recordsecurityevent.New(
		deps.Logger,
		deps.CyberLogRepository,
		deps.SecurityEventStream,
	)

	return s
}
