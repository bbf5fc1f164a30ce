package sendpasswordresettoken

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	ratelimiter "securecrop/internal/core/domain/rate_limiter"
	service "securecrop/internal/core/services/send_password_reset_token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	result service.Result
	err    error
	input  *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (service.Result, error) {
	if s.err != nil {
		return service.Result{}, s.err
	}
	s.input = &input
	return s.result, nil
}

func TestSendPasswordResetTokenHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		isTestMode     bool
		serviceResult  service.Result
		serviceErr     error
		expectedStatus int
	}{
		{
			id:             "known email",
			body:           `{"email": "farmer@test.com"}`,
			serviceResult:  service.Result{Token: "token-1", ResetLink: "https://app.test/reset-password?token=token-1", EmailSent: true},
			expectedStatus: http.StatusOK,
		},
		{
			id:             "unknown email looks the same",
			body:           `{"email": "nobody@test.com"}`,
			serviceResult:  service.Result{},
			expectedStatus: http.StatusOK,
		},
		{
			id:             "invalid email",
			body:           `{"email": "not-an-email"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "missing email",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "broken JSON",
			body:           `{"email": `,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "rate limit exceeded",
			body:           `{"email": "farmer@test.com"}`,
			serviceErr:     ratelimiter.ErrRateLimitExceeded,
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			id:             "test mode exposes debug link",
			body:           `{"email": "farmer@test.com"}`,
			isTestMode:     true,
			serviceResult:  service.Result{Token: "token-1", ResetLink: "https://app.test/reset-password?token=token-1", EmailSent: true},
			expectedStatus: http.StatusOK,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			req, err := http.NewRequest("POST", "/password-reset", strings.NewReader(testcase.body))
			if err != nil {
				t.Fatal(err)
			}

			stub := &stubService{result: testcase.serviceResult, err: testcase.serviceErr}
			rr := httptest.NewRecorder()
			handler := New(stub, testcase.isTestMode)
			handler.ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			if rr.Code != http.StatusOK {
				return
			}

			result := Result{}
			require.Nil(t, json.Unmarshal(rr.Body.Bytes(), &result))
			assert.Equal(t, SUCCESS_MESSAGE, result.Message)
			if testcase.isTestMode && testcase.serviceResult.Token != "" {
				assert.Equal(t, testcase.serviceResult.ResetLink, result.DebugLink)
				require.NotNil(t, result.EmailSent)
				assert.True(t, *result.EmailSent)
			} else {
				assert.Equal(t, "", result.DebugLink)
				assert.Nil(t, result.EmailSent)
			}
		})
	}
}
