package listcyberlogs

import (
	"context"
	"net/http"
	"net/http/httptest"
	c "securecrop/internal/core/domain/common"
	"securecrop/internal/core/domain/cyberlog"
	service "securecrop/internal/core/services/list_cyber_logs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var Records []cyberlog.Record = []cyberlog.Record{
	{
		ID:              cyberlog.ID(1),
		SoilInputID:     c.NewOptional[int64](42, true),
		AnomalyDetected: true,
		IntegrityStatus: cyberlog.StatusAnomaly,
		Details:         "pH reading outside expected range",
		CreatedAt:       time.Date(2023, 5, 2, 10, 0, 0, 0, time.UTC),
	},
	{
		ID:              cyberlog.ID(2),
		AnomalyDetected: false,
		IntegrityStatus: cyberlog.StatusOK,
		Details:         "routine check",
		CreatedAt:       time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC),
	},
}

type stubService struct {
	records []cyberlog.Record
	err     error
	input   *service.Input
}

func newStubService() *stubService {
	return &stubService{records: Records}
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	result.Records = s.records
	return result, nil
}

func TestListCyberLogsHandler(t *testing.T) {
	cases := []struct {
		url            string
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			url:            "/admin/logs/cyber",
			expectedStatus: http.StatusOK,
			expectedInput:  &service.Input{},
		},
		{
			url:            "/admin/logs/cyber?anomaly_detected=true",
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				Filter: cyberlog.ListFilter{AnomalyDetected: c.NewOptional(true, true)},
			},
		},
		{
			url:            "/admin/logs/cyber?anomaly_detected=false",
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				Filter: cyberlog.ListFilter{AnomalyDetected: c.NewOptional(false, true)},
			},
		},
		{
			url:            "/admin/logs/cyber?anomaly_detected=yes-please",
			expectedStatus: http.StatusBadRequest,
			expectedInput:  nil,
		},
		{
			url:            "/admin/logs/cyber?integrity_status=TAMPERED",
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				Filter: cyberlog.ListFilter{
					IntegrityStatus: c.NewOptional(cyberlog.StatusTampered, true),
				},
			},
		},
		{
			url:            "/admin/logs/cyber?integrity_status=tampered",
			expectedStatus: http.StatusBadRequest,
			expectedInput:  nil,
		},
		{
			url:            "/admin/logs/cyber?integrity_status=UNKNOWN",
			expectedStatus: http.StatusBadRequest,
			expectedInput:  nil,
		},
		{
			url:            "/admin/logs/cyber?anomaly_detected=true&integrity_status=OUT_OF_RANGE",
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				Filter: cyberlog.ListFilter{
					AnomalyDetected: c.NewOptional(true, true),
					IntegrityStatus: c.NewOptional(cyberlog.StatusOutOfRange, true),
				},
			},
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.url, func(t *testing.T) {
			req, err := http.NewRequest("GET", testcase.url, nil)
			if err != nil {
				t.Fatal(err)
			}

			service := newStubService()
			rr := httptest.NewRecorder()
			handler := New(service)
			handler.ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			assert.Equal(t, testcase.expectedInput, service.input)
		})
	}
}
