package listcyberlogs

import (
	"errors"
	"net/http"
	c "securecrop/internal/core/domain/common"
	"securecrop/internal/core/domain/cyberlog"
	e "securecrop/internal/core/domain/errors"
	"securecrop/internal/core/domain/user"
	"securecrop/internal/core/services"
	service "securecrop/internal/core/services/list_cyber_logs"
	"securecrop/internal/http/handlers/response"
	"strconv"
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
	Count   int                       `json:"count"`
	Results []response.CyberLogRecord `json:"results"`
}

func filterFromQuery(r *http.Request) (cyberlog.ListFilter, error) {
	filter := cyberlog.ListFilter{}

	if raw := r.URL.Query().Get("anomaly_detected"); raw != "" {
		anomalyDetected, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, errors.New("anomaly_detected must be a boolean")
		}
		filter.AnomalyDetected = c.NewOptional(anomalyDetected, true)
	}

	if raw := r.URL.Query().Get("integrity_status"); raw != "" {
		status := cyberlog.IntegrityStatus(raw)
		if err := status.Validate(); err != nil {
			return filter, err
		}
		filter.IntegrityStatus = c.NewOptional(status, true)
	}

	return filter, nil
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{Filter: filter})
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

	records := make([]response.CyberLogRecord, len(result.Records))
	for ix, rec := range result.Records {
		records[ix].FromDomainRecord(rec)
	}
	response.Render(rw, Result{Count: len(records), Results: records}, http.StatusOK)
}
