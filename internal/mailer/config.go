package mailer

import (
	"os"

	"go-payhr/internal/shared/apperror"
)

const defaultEndpoint = "https://api.resend.com/emails"

type Config struct {
	APIKey   string
	Sender   string
	Endpoint string
}

// ConfigFromEnv dibaca saat kirim, bukan saat startup, supaya
// kredensial yang dirotasi terbaca tanpa restart.
func ConfigFromEnv() Config {
	cfg := Config{
		APIKey:   os.Getenv("EMAIL_API_KEY"),
		Sender:   os.Getenv("EMAIL_SENDER"),
		Endpoint: os.Getenv("EMAIL_API_URL"),
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	return cfg
}

// Validate gagal cepat sebelum ada network call. Pesan error memuat
// petunjuk perbaikan untuk operator.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return apperror.Configuration(
			"Email provider API key",
			"Set the EMAIL_API_KEY environment variable.",
		)
	}
	if c.Sender == "" {
		return apperror.Configuration(
			"Email sender address",
			"Set the EMAIL_SENDER environment variable to a verified sender.",
		)
	}
	return nil
}
