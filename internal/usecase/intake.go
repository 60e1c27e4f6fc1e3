package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go-agency-backend/internal/domain"
	"go-agency-backend/pkg/apperror"
	"go-agency-backend/pkg/email"
	"go-agency-backend/pkg/security"

	"github.com/google/uuid"
)

// Client-visible messages of the intake endpoints
const (
	MsgEmailSent           = "Email sent successfully"
	MsgMissingFields       = "Missing required fields"
	MsgDeliveryFailed      = "Failed to send email"
	MsgInternalServerError = "Internal server error"
	MsgUnknownForm         = "Unknown form"
)

// IntakeConfig holds the fixed addresses used for operator notifications
type IntakeConfig struct {
	From string
	To   string
}

type intakeUsecase struct {
	sender   email.Sender
	audit    *security.IntakeLogger
	cfg      IntakeConfig
	variants map[string]domain.IntakeVariant
}

// NewIntakeUsecase creates the intake usecase for the given variants
func NewIntakeUsecase(sender email.Sender, audit *security.IntakeLogger, cfg IntakeConfig, variants ...domain.IntakeVariant) domain.IntakeUsecase {
	byName := make(map[string]domain.IntakeVariant, len(variants))
	for _, v := range variants {
		byName[v.Name] = v
	}
	return &intakeUsecase{
		sender:   sender,
		audit:    audit,
		cfg:      cfg,
		variants: byName,
	}
}

func (uc *intakeUsecase) Variant(name string) (domain.IntakeVariant, bool) {
	v, ok := uc.variants[name]
	return v, ok
}

// Submit checks presence of the variant's required fields, then makes a single
// delivery attempt. Format validation is the client's job; this is only the
// server-side backstop.
func (uc *intakeUsecase) Submit(ctx context.Context, variantName string, p *domain.SubmissionPayload) (*domain.SubmissionResult, error) {
	variant, ok := uc.variants[variantName]
	if !ok {
		return nil, apperror.NotFound(MsgUnknownForm)
	}
	requestID := domain.RequestIDFrom(ctx)

	if p.Honeypot != "" {
		uc.audit.LogHoneypotTriggered(ctx, variant.Name, domain.ClientIPFrom(ctx), requestID)
		// Look like a normal success so bots do not adapt
		return &domain.SubmissionResult{Message: MsgEmailSent, ID: uuid.NewString()}, nil
	}

	if missing := p.MissingFields(variant.RequiredFields); len(missing) > 0 {
		uc.audit.LogSubmissionRejected(ctx, variant.Name, p.Email, domain.ClientIPFrom(ctx), requestID, missing)
		return nil, apperror.BadRequest(MsgMissingFields)
	}

	html, err := variant.HTML(p)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("render %s notification: %w", variant.Name, err))
	}

	msg := email.Message{
		From:    uc.cfg.From,
		To:      []string{uc.cfg.To},
		Subject: variant.Subject(p),
		HTML:    html,
		ReplyTo: strings.TrimSpace(p.Email),
	}

	id, err := uc.sender.Send(ctx, msg)
	if err != nil {
		uc.audit.LogDeliveryFailed(ctx, variant.Name, p.Email, requestID, err)
		return nil, apperror.New(http.StatusInternalServerError, MsgDeliveryFailed, err)
	}

	uc.audit.LogDeliverySucceeded(ctx, variant.Name, p.Email, requestID, id)
	return &domain.SubmissionResult{Message: MsgEmailSent, ID: id}, nil
}
