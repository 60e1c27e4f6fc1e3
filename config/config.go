package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"go-agency-backend/pkg/validation"

	"github.com/joho/godotenv"
)

// Mail provider identifiers accepted by MAIL_PROVIDER
const (
	MailProviderResend = "resend"
	MailProviderSMTP   = "smtp"
)

type Config struct {
	Port        string `validate:"required,numeric"`
	Environment string
	FrontendURL string `validate:"required,url"`
	// Extra origins allowed to call the intake endpoints (comma separated in env)
	CORSAllowedOrigins []string
	// Mail delivery
	MailProvider       string `validate:"oneof=resend smtp"`
	ResendAPIKey       string // Checked on first send, not at startup
	ResendAPIURL       string `validate:"required,url"`
	MailFrom           string `validate:"required"`
	ContactEmailTo     string `validate:"required,email"`
	MailTimeoutSeconds int    `validate:"min=1,max=120"`
	// SMTP Configuration (Brevo), used when MAIL_PROVIDER=smtp
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
}

func LoadConfig() (*Config, error) {
	// .env is only present locally; production relies on the real environment
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("APP_ENV", "development"),
		FrontendURL:        strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		MailProvider:       strings.ToLower(getEnv("MAIL_PROVIDER", MailProviderResend)),
		ResendAPIKey:       getEnv("RESEND_API_KEY", ""),
		ResendAPIURL:       strings.TrimRight(getEnv("RESEND_API_URL", "https://api.resend.com"), "/"),
		MailFrom:           getEnv("MAIL_FROM", "Agency Website <onboarding@resend.dev>"),
		ContactEmailTo:     getEnv("CONTACT_EMAIL_TO", "hello@agency.dev"),
		MailTimeoutSeconds: getEnvInt("MAIL_TIMEOUT_SECONDS", 10),
		SMTPHost:           getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:           getEnv("SMTP_PORT", "587"),
		SMTPUsername:       getEnv("SMTP_USERNAME", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.MailProvider == MailProviderResend && cfg.ResendAPIKey == "" {
		log.Println("WARNING: RESEND_API_KEY is missing. Form submissions will fail until it is set.")
	}

	return cfg, nil
}

// Validate checks the static shape of the configuration.
// Credentials are deliberately not required here.
func (c *Config) Validate() error {
	if err := validation.NewValidator().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %s", strings.Join(validation.FormatValidationErrors(err), "; "))
	}
	return nil
}

// AllowedOrigins returns the frontend URL followed by any extra CORS origins.
func (c *Config) AllowedOrigins() []string {
	origins := []string{c.FrontendURL}
	for _, o := range c.CORSAllowedOrigins {
		if o != c.FrontendURL {
			origins = append(origins, o)
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping blanks and trailing slashes
func getEnvList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimRight(strings.TrimSpace(part), "/")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
