package resetpassword

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "securecrop/internal/core/domain/errors"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/core/services"
	resetpassword "securecrop/internal/core/services/reset_password"
	"securecrop/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

// INVALID_TOKEN_MESSAGE is shared by the unknown, used and expired cases so a
// caller cannot probe which tokens exist.
const INVALID_TOKEN_MESSAGE = "invalid or expired token"

type Handler struct {
	service services.Service[resetpassword.Input, resetpassword.Result]
}

func New(
	service services.Service[resetpassword.Input, resetpassword.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Token              string `json:"token"`
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

type Result struct {
	Message string `json:"message"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, validation.Required, validation.Length(0, 1024)),
		validation.Field(&i.NewPassword, validation.Required, validation.Length(8, 256)),
		validation.Field(&i.NewPasswordConfirm, validation.Required, validation.Length(8, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}
	if input.NewPassword != input.NewPasswordConfirm {
		response.RenderError(rw, "passwords do not match", http.StatusBadRequest)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		resetpassword.Input{
			Token:    user.PasswordResetToken(input.Token),
			Password: user.RawPassword(input.NewPassword),
		},
	)
	if errors.Is(err, user.ErrPasswordResetTokenDoesNotExist) ||
		errors.Is(err, user.ErrPasswordResetTokenInvalid) {
		response.RenderError(rw, INVALID_TOKEN_MESSAGE, http.StatusBadRequest)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, Result{Message: "Password has been reset successfully."}, http.StatusOK)
}
