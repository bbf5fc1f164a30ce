package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool `env:"TEST_MODE" envDefault:"false"`

	Port          uint16 `env:"PORT" envDefault:"9090"`
	PostgresqlURL string `env:"POSTGRESQL_URL,notEmpty"`
	RedisURL      string `env:"REDIS_URL,notEmpty"`
	RabbitmqURL   string `env:"RABBITMQ_URL,notEmpty"`

	RabbitmqPasswordResetEmailsQueue string `env:"RABBITMQ_PASSWORD_RESET_EMAILS_QUEUE" envDefault:"securecrop.password_reset.emails"`
	RabbitmqSecurityEventsQueue      string `env:"RABBITMQ_SECURITY_EVENTS_QUEUE" envDefault:"securecrop.security.events"`

	Secret           string `env:"SECRET,notEmpty"`
	BcryptHasherCost int    `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	PasswordResetValidDuration time.Duration `env:"PASSWORD_RESET_VALID_DURATION" envDefault:"1h"`
	PasswordResetBaseURL       string        `env:"PASSWORD_RESET_BASE_URL,notEmpty"`

	AwsRegion        string        `env:"AWS_REGION" envDefault:"eu-west-1"`
	AwsAccessKey     string        `env:"AWS_ACCESS_KEY,notEmpty"`
	AwsSecretKey     string        `env:"AWS_SECRET_KEY,notEmpty"`
	AwsEmailSender   string        `env:"AWS_EMAIL_SENDER,notEmpty"`
	EmailSendTimeout time.Duration `env:"EMAIL_SEND_TIMEOUT" envDefault:"10s"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("could not load configuration: %w", err)
	}
	return config, nil
}
