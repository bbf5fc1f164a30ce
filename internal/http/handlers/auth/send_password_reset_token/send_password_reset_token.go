package sendpasswordresettoken

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "securecrop/internal/core/domain/common"
	e "securecrop/internal/core/domain/errors"
	ratelimiter "securecrop/internal/core/domain/rate_limiter"
	"securecrop/internal/core/services"
	service "securecrop/internal/core/services/send_password_reset_token"
	"securecrop/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const SUCCESS_MESSAGE = "If your email is registered, you will receive a password reset link shortly."

type Handler struct {
	service    services.Service[service.Input, service.Result]
	isTestMode bool
}

func New(
	service services.Service[service.Input, service.Result],
	isTestMode bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, isTestMode: isTestMode}
}

type Input struct {
	Email string `json:"email"`
}

// Result carries the same message whether or not the account exists. Debug
// fields are only populated in test mode.
type Result struct {
	Message    string `json:"message"`
	DebugLink  string `json:"debug_link,omitempty"`
	EmailSent  *bool  `json:"email_sent,omitempty"`
	EmailError string `json:"email_error,omitempty"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
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

	result, err := h.service.Run(
		r.Context(),
		service.Input{Email: c.NewEmail(input.Email)},
	)
	if errors.Is(err, ratelimiter.ErrRateLimitExceeded) {
		response.RenderRateLimitExceeded(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	res := Result{Message: SUCCESS_MESSAGE}
	if h.isTestMode && result.Token != "" {
		res.DebugLink = result.ResetLink
		emailSent := result.EmailSent
		res.EmailSent = &emailSent
		res.EmailError = result.SendError
	}
	response.Render(rw, res, http.StatusOK)
}
