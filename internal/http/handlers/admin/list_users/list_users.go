package listusers

import (
	"errors"
	"net/http"
	e "securecrop/internal/core/domain/errors"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/core/services"
	service "securecrop/internal/core/services/list_users"
	"securecrop/internal/http/handlers/response"
)

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
	Count   int             `json:"count"`
	Results []response.User `json:"results"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), service.Input{})
	if errors.Is(err, user.ErrSessionDoesNotExist) {
		response.RenderUnauthorized(rw)
		return
	}
	if errors.Is(err, user.ErrPermissionDenied) {
		response.RenderForbidden(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	users := make([]response.User, len(result.Users))
	for ix, du := range result.Users {
		users[ix].FromDomainUser(du)
	}
	response.Render(rw, Result{Count: len(users), Results: users}, http.StatusOK)
}
