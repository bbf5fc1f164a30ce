package email

import (
	"context"
	"fmt"
	"net/url"

	"securecrop/internal/core/domain/user"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const PASSWORD_RESET_SUBJECT = "Password Reset Request - SecureCrop"

type EmailSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender               string
	passwordResetBaseUrl url.URL
}

func NewEmailSender(
	awsConfig aws.Config,
	sender string,
	passwordResetBaseUrl url.URL,
) *EmailSender {
	return &EmailSender{
		ses:                  ses.NewFromConfig(awsConfig),
		sender:               sender,
		passwordResetBaseUrl: passwordResetBaseUrl,
	}
}

func (s *EmailSender) SendPasswordResetToken(ctx context.Context, u user.User, token user.PasswordResetToken) error {
	resetLink := s.passwordResetLink(token)
	subject := PASSWORD_RESET_SUBJECT
	htmlBody := fmt.Sprintf(
		`<p>Hello %s,</p>
<p>We received a request to reset the password for your SecureCrop account.</p>
<p><a href="%s">Reset your password</a></p>
<p>The link expires in one hour. If you did not request a reset, you can safely ignore this email.</p>`,
		u.Username,
		resetLink,
	)
	textBody := fmt.Sprintf(
		"Hello %s,\n\nWe received a request to reset the password for your SecureCrop account.\n\n"+
			"Reset it here: %s\n\nThe link expires in one hour. "+
			"If you did not request a reset, you can safely ignore this email.",
		u.Username,
		resetLink,
	)

	email := string(u.Email)
	_, err := s.ses.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Message: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	)
	return err
}

func (s *EmailSender) passwordResetLink(token user.PasswordResetToken) string {
	link := *s.passwordResetBaseUrl.JoinPath("reset-password")
	query := link.Query()
	query.Set("token", string(token))
	link.RawQuery = query.Encode()
	return link.String()
}
