package securityevents

import (
	"context"
	"errors"
	"net/http"
	e "securecrop/internal/core/domain/errors"
	"securecrop/internal/core/domain/logging"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/core/services"
	domainAuth "securecrop/internal/core/services/auth"
	s "securecrop/internal/core/services/get_user_by_session_token"
	"securecrop/internal/http/handlers/auth"
	"securecrop/internal/http/handlers/response"
	"securecrop/internal/implementations/security_event_stream"

	"github.com/r3labs/sse/v2"
)

// Handler streams live security events to admin dashboards. EventSource
// cannot set headers, so the session token may come in as a query parameter
// instead of the Authorization header.
type Handler struct {
	log       logging.Logger
	service   services.Service[s.Input, s.Result]
	sseServer *sse.Server
}

func New(
	log logging.Logger,
	sseServer *sse.Server,
	service services.Service[s.Input, s.Result],
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{log: log, sseServer: sseServer, service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	tokenFromQuery := r.URL.Query().Get("token")
	if tokenFromQuery != "" {
		if len(tokenFromQuery) > auth.AUTH_TOKEN_MAX_LEN {
			response.RenderUnauthorized(rw)
			return
		}
		ctx := context.WithValue(r.Context(), domainAuth.CONTEXT_AUTH_TOKEN_KEY, user.SessionToken(tokenFromQuery))
		r = r.WithContext(ctx)
	}

	result, err := h.service.Run(r.Context(), s.Input{})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrSessionDoesNotExist):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}
	if !result.User.IsAdmin() {
		response.RenderForbidden(rw)
		return
	}

	// The sse server routes by the stream query parameter. Pin it to the
	// shared security events stream so clients cannot subscribe elsewhere.
	query := r.URL.Query()
	query.Set("stream", securityeventstream.STREAM_ID)
	r.URL.RawQuery = query.Encode()

	go func() {
		<-r.Context().Done()
		h.log.Info(
			r.Context(),
			"Admin unsubscribed from security events.",
			logging.Entry("adminID", result.User.ID),
		)
	}()

	h.log.Info(
		r.Context(),
		"Admin subscribed to security events.",
		logging.Entry("adminID", result.User.ID),
	)
	h.sseServer.ServeHTTP(rw, r)
}
