package usecase

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"go-agency-backend/internal/domain"
)

// Variant names, also used as the last path segment of the intake routes
const (
	VariantContact          = "contact"
	VariantPrototypeRequest = "prototype-request"
)

const defaultSource = "website"

// notificationTemplate renders the operator email for both variants.
// html/template escapes all submitter content.
const notificationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #1f2937; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9fafb; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .value { margin-top: 5px; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #6366f1; margin-top: 10px; white-space: pre-wrap; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>{{.Title}}</h1>
        </div>
        <div class="content">
            <div class="field">
                <div class="label">Name:</div>
                <div class="value">{{.Name}}</div>
            </div>
            <div class="field">
                <div class="label">Email:</div>
                <div class="value">{{.Email}}</div>
            </div>
            {{- if .Phone}}
            <div class="field">
                <div class="label">Phone:</div>
                <div class="value">{{.Phone}}</div>
            </div>
            {{- end}}
            <div class="field">
                <div class="label">Company:</div>
                <div class="value">{{or .Company "Not provided"}}</div>
            </div>
            <div class="field">
                <div class="label">Project Type:</div>
                <div class="value">{{or .ProjectType "Not specified"}}</div>
            </div>
            {{- if .Source}}
            <div class="field">
                <div class="label">Source:</div>
                <div class="value">{{.Source}}</div>
            </div>
            {{- end}}
            <div class="field">
                <div class="label">{{.MessageLabel}}:</div>
                <div class="message-box">{{or .Message "No details provided"}}</div>
            </div>
        </div>
        <div class="footer">
            <p>This email was sent from the {{.FormName}} on the agency website.</p>
            <p>Reply directly to this email to respond to {{.Email}}.</p>
        </div>
    </div>
</body>
</html>`

var notificationTmpl = template.Must(template.New("notification").Parse(notificationTemplate))

type notificationData struct {
	Title        string
	FormName     string
	MessageLabel string
	Name         string
	Email        string
	Phone        string
	Company      string
	ProjectType  string
	Source       string
	Message      string
}

func renderNotification(data notificationData) (string, error) {
	var body bytes.Buffer
	if err := notificationTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func payloadData(p *domain.SubmissionPayload) notificationData {
	return notificationData{
		Name:        strings.TrimSpace(p.Name),
		Email:       strings.TrimSpace(p.Email),
		Phone:       strings.TrimSpace(p.Phone),
		Company:     strings.TrimSpace(p.Company),
		ProjectType: strings.TrimSpace(p.ProjectType),
		Message:     strings.TrimSpace(p.Message),
	}
}

// ContactVariant is the general contact form: name, email and message required.
func ContactVariant() domain.IntakeVariant {
	return domain.IntakeVariant{
		Name:           VariantContact,
		RequiredFields: []string{domain.FieldName, domain.FieldEmail, domain.FieldMessage},
		Subject: func(p *domain.SubmissionPayload) string {
			return "New Contact Form Submission from " + strings.TrimSpace(p.Name)
		},
		HTML: func(p *domain.SubmissionPayload) (string, error) {
			data := payloadData(p)
			data.Title = "New Contact Form Submission"
			data.FormName = "contact form"
			data.MessageLabel = "Message"
			return renderNotification(data)
		},
	}
}

// PrototypeRequestVariant is the free prototype request: only name and email required.
func PrototypeRequestVariant() domain.IntakeVariant {
	return domain.IntakeVariant{
		Name:           VariantPrototypeRequest,
		RequiredFields: []string{domain.FieldName, domain.FieldEmail},
		Subject: func(p *domain.SubmissionPayload) string {
			return "New Free Prototype Request from " + strings.TrimSpace(p.Name)
		},
		HTML: func(p *domain.SubmissionPayload) (string, error) {
			data := payloadData(p)
			data.Title = "New Free Prototype Request"
			data.FormName = "free prototype request form"
			data.MessageLabel = "Project Details"
			data.Source = strings.TrimSpace(p.Source)
			if data.Source == "" {
				data.Source = defaultSource
			}
			return renderNotification(data)
		},
	}
}
