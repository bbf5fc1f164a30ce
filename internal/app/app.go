package app

import (
	"fmt"
	"net/http"
	"securecrop/internal/app/deps"
	"securecrop/internal/app/services"
	cyberlogstats "securecrop/internal/http/handlers/admin/cyber_log_stats"
	listadminlogs "securecrop/internal/http/handlers/admin/list_admin_logs"
	listcyberlogs "securecrop/internal/http/handlers/admin/list_cyber_logs"
	listusers "securecrop/internal/http/handlers/admin/list_users"
	securityevents "securecrop/internal/http/handlers/admin/security_events"
	setuseractive "securecrop/internal/http/handlers/admin/set_user_active"
	"securecrop/internal/http/handlers/auth"
	getprofile "securecrop/internal/http/handlers/auth/get_profile"
	loginwithemail "securecrop/internal/http/handlers/auth/log_in_with_email"
	logout "securecrop/internal/http/handlers/auth/log_out"
	me "securecrop/internal/http/handlers/auth/me"
	resetpassword "securecrop/internal/http/handlers/auth/reset_password"
	sendpasswordresettoken "securecrop/internal/http/handlers/auth/send_password_reset_token"
	signup "securecrop/internal/http/handlers/auth/sign_up"
	updateprofile "securecrop/internal/http/handlers/auth/update_profile"
	verifypasswordresettoken "securecrop/internal/http/handlers/auth/verify_password_reset_token"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	authRouter := chi.NewRouter()
	authRouter.Use(auth.SetAuthTokenToContext)
	authRouter.Method(http.MethodPost, "/register", signup.New(s.SignUp))
	authRouter.Method(http.MethodPost, "/login", loginwithemail.New(s.LogInWithEmail))
	authRouter.Method(http.MethodPost, "/logout", logout.New(s.LogOut))
	authRouter.Method(
		http.MethodPost,
		"/password-reset/",
		sendpasswordresettoken.New(s.SendPasswordResetToken, isTestMode),
	)
	authRouter.Method(http.MethodPost, "/password-reset/confirm/", resetpassword.New(s.ResetPassword))
	authRouter.Method(
		http.MethodGet,
		"/password-reset/verify/",
		verifypasswordresettoken.New(s.VerifyPasswordResetToken),
	)
	authRouter.Method(http.MethodGet, "/me", me.New(s.GetUserBySessionToken))
	authRouter.Method(http.MethodGet, "/profile", getprofile.New(s.GetUserBySessionToken))
	authRouter.Method(http.MethodPut, "/profile", updateprofile.New(s.UpdateUser))
	authRouter.Method(http.MethodGet, "/admin/users/", listusers.New(s.ListUsers))
	authRouter.Method(http.MethodPatch, "/admin/users/{userID:[0-9]+}", setuseractive.New(s.SetUserActive))

	adminLogsRouter := chi.NewRouter()
	adminLogsRouter.Use(auth.SetAuthTokenToContext)
	adminLogsRouter.Method(http.MethodGet, "/admin-actions/", listadminlogs.New(s.ListAdminLogs))
	adminLogsRouter.Method(http.MethodGet, "/cyber/", listcyberlogs.New(s.ListCyberLogs))
	adminLogsRouter.Method(http.MethodGet, "/cyber/stats/", cyberlogstats.New(s.GetCyberLogStats))
	adminLogsRouter.Method(
		http.MethodGet,
		"/cyber/events",
		securityevents.New(deps.Logger, deps.SseServer, s.GetUserBySessionToken),
	)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/api/auth", authRouter)
	router.Mount("/api/admin/logs", adminLogsRouter)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
