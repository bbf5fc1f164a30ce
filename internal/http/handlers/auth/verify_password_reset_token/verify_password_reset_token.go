package verifypasswordresettoken

import (
	"net/http"
	e "securecrop/internal/core/domain/errors"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/core/services"
	service "securecrop/internal/core/services/verify_password_reset_token"
	"securecrop/internal/http/handlers/response"
)

const TOKEN_MAX_LEN = 1024

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Result struct {
	Valid bool   `json:"valid"`
	Email string `json:"email,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.RenderError(rw, "token query parameter is required", http.StatusBadRequest)
		return
	}
	if len(token) > TOKEN_MAX_LEN {
		response.Render(rw, Result{Valid: false, Error: "invalid or expired token"}, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{Token: user.PasswordResetToken(token)},
	)
	if err != nil {
		response.RenderInternalError(rw)
		return
	}
	if !result.IsValid {
		response.Render(rw, Result{Valid: false, Error: "invalid or expired token"}, http.StatusBadRequest)
		return
	}
	response.Render(rw, Result{Valid: true, Email: string(result.Email)}, http.StatusOK)
}
