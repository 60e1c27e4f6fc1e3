package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Should apply defaults when env is empty", func(t *testing.T) {
		t.Setenv("MAIL_PROVIDER", "resend")
		t.Setenv("RESEND_API_KEY", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, MailProviderResend, cfg.MailProvider)
		assert.Equal(t, "https://api.resend.com", cfg.ResendAPIURL)
		assert.Empty(t, cfg.ResendAPIKey, "missing key must not fail startup")
	})

	t.Run("Should parse extra CORS origins", func(t *testing.T) {
		t.Setenv("FRONTEND_URL", "https://agency.dev/")
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://www.agency.dev/ ,, https://agency.dev")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, []string{"https://agency.dev", "https://www.agency.dev"}, cfg.AllowedOrigins())
	})

	t.Run("Should reject unknown mail provider", func(t *testing.T) {
		t.Setenv("MAIL_PROVIDER", "carrier-pigeon")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Mail Provider")
	})

	t.Run("Should reject malformed operator address", func(t *testing.T) {
		t.Setenv("CONTACT_EMAIL_TO", "not-an-email")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Contact Email To")
	})

	t.Run("Should fall back on invalid timeout", func(t *testing.T) {
		t.Setenv("MAIL_TIMEOUT_SECONDS", "soon")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.MailTimeoutSeconds)
	})
}
