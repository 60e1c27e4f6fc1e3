package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const resendProvider = "resend"

// ResendSender delivers mail through the Resend REST API.
type ResendSender struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

type resendResponse struct {
	ID string `json:"id"`
}

type resendError struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

// NewResendSender creates a sender for the given API key and base URL.
// An empty key is accepted; Send reports ErrNotConfigured instead.
func NewResendSender(apiKey, baseURL string, timeout time.Duration) *ResendSender {
	return &ResendSender{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// IsConfigured reports whether an API key is present
func (s *ResendSender) IsConfigured() bool {
	return s.apiKey != ""
}

func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	if !s.IsConfigured() {
		return "", ErrNotConfigured
	}
	if err := msg.validate(); err != nil {
		return "", err
	}

	body, err := json.Marshal(resendRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: resendProvider, Detail: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &ProviderError{Provider: resendProvider, StatusCode: resp.StatusCode, Detail: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr resendError
		if json.Unmarshal(raw, &apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = string(raw)
		}
		return "", &ProviderError{
			Provider:   resendProvider,
			StatusCode: resp.StatusCode,
			Name:       apiErr.Name,
			Detail:     apiErr.Message,
		}
	}

	var out resendResponse
	if err := json.Unmarshal(raw, &out); err != nil || out.ID == "" {
		return "", &ProviderError{Provider: resendProvider, StatusCode: resp.StatusCode, Detail: "response missing message id"}
	}
	return out.ID, nil
}
