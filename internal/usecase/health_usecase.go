package usecase

import (
	"context"

	"go-agency-backend/pkg/email"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	provider string
	sender   email.Sender
}

// NewHealthUsecase reports liveness plus whether the mail provider has credentials.
// A missing key does not fail the check; submissions fail individually instead.
func NewHealthUsecase(provider string, sender email.Sender) HealthUsecase {
	return &healthUsecase{provider: provider, sender: sender}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status": "ok",
	}
	if u.provider != "" {
		status["mail_provider"] = u.provider
	}

	if c, ok := u.sender.(interface{ IsConfigured() bool }); ok {
		if c.IsConfigured() {
			status["mail"] = "configured"
		} else {
			status["mail"] = "unconfigured"
		}
	}
	return status
}
