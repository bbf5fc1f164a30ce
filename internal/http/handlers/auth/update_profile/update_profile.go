package updateprofile

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "securecrop/internal/core/domain/common"
	e "securecrop/internal/core/domain/errors"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/core/services"
	service "securecrop/internal/core/services/update_user"
	"securecrop/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
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

// Absent fields are left untouched. An empty phone number clears it.
type Input struct {
	Username           *string  `json:"username"`
	PhoneNumber        *string  `json:"phone_number"`
	LocationLat        *float64 `json:"location_lat"`
	LocationLon        *float64 `json:"location_lon"`
	ReceiveEmailAlerts *bool    `json:"receive_email_alerts"`
	ReceiveSMSAlerts   *bool    `json:"receive_sms_alerts"`
}

type Result struct {
	User response.User `json:"user"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Username, validation.Length(1, 150)),
		validation.Field(&i.PhoneNumber, validation.Length(0, 32)),
		validation.Field(&i.LocationLat, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&i.LocationLon, validation.Min(-180.0), validation.Max(180.0)),
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

	serviceInput := service.Input{}
	if input.Username != nil {
		serviceInput.DoUsernameUpdate = true
		serviceInput.Username = *input.Username
	}
	if input.PhoneNumber != nil {
		serviceInput.DoPhoneNumberUpdate = true
		serviceInput.PhoneNumber = c.NewOptional(*input.PhoneNumber, *input.PhoneNumber != "")
	}
	if input.LocationLat != nil || input.LocationLon != nil {
		if input.LocationLat == nil || input.LocationLon == nil {
			response.RenderError(rw, "both location_lat and location_lon are required", http.StatusBadRequest)
			return
		}
		serviceInput.DoLocationUpdate = true
		serviceInput.LocationLat = c.NewOptional(*input.LocationLat, true)
		serviceInput.LocationLon = c.NewOptional(*input.LocationLon, true)
	}
	if input.ReceiveEmailAlerts != nil {
		serviceInput.DoReceiveEmailAlertsUpdate = true
		serviceInput.ReceiveEmailAlerts = *input.ReceiveEmailAlerts
	}
	if input.ReceiveSMSAlerts != nil {
		serviceInput.DoReceiveSMSAlertsUpdate = true
		serviceInput.ReceiveSMSAlerts = *input.ReceiveSMSAlerts
	}

	result, err := h.service.Run(r.Context(), serviceInput)
	if errors.Is(err, user.ErrSessionDoesNotExist) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	u := response.User{}
	u.FromDomainUser(result.User)
	response.Render(rw, Result{User: u}, http.StatusOK)
}
