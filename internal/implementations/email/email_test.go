package email

import (
	"net/url"
	"securecrop/internal/core/domain/user"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const TOKEN = user.PasswordResetToken("tok123")

func TestPasswordResetLink(t *testing.T) {
	cases := []struct {
		id       string
		baseURL  string
		expected string
	}{
		{
			id:       "bare host",
			baseURL:  "https://app.securecrop.example",
			expected: "https://app.securecrop.example/reset-password?token=tok123",
		},
		{
			id:       "trailing slash",
			baseURL:  "https://app.securecrop.example/",
			expected: "https://app.securecrop.example/reset-password?token=tok123",
		},
		{
			id:       "path prefix",
			baseURL:  "https://securecrop.example/app",
			expected: "https://securecrop.example/app/reset-password?token=tok123",
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			baseURL, err := url.Parse(testcase.baseURL)
			require.Nil(t, err)

			sender := NewEmailSender(aws.Config{}, "noreply@securecrop.example", *baseURL)
			assert.Equal(t, testcase.expected, sender.passwordResetLink(TOKEN))
		})
	}
}
