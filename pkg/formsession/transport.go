package formsession

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Intake endpoint paths served by the API
const (
	ContactPath          = "/submit/contact"
	PrototypeRequestPath = "/submit/prototype-request"
)

// Payload is the JSON body posted to the intake endpoint
type Payload struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Company     string `json:"company,omitempty"`
	Message     string `json:"message,omitempty"`
	ProjectType string `json:"projectType,omitempty"`
	Source      string `json:"source,omitempty"`
}

// Result is a successful intake response
type Result struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// Transport sends a validated submission to the server
type Transport interface {
	Submit(ctx context.Context, p Payload) (*Result, error)
}

// RequestError is a failed submission. Message holds the server's own error
// text when the server sent one.
type RequestError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("submission request failed: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("submission rejected (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("submission rejected (status %d)", e.StatusCode)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// HTTPTransport posts submissions as JSON. No retry: one attempt per Submit.
type HTTPTransport struct {
	Endpoint string
	Client   *http.Client
}

// NewHTTPTransport targets the endpoint at path on baseURL. A nil client uses
// http.DefaultClient and its default timeout behaviour.
func NewHTTPTransport(baseURL, path string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{
		Endpoint: strings.TrimRight(baseURL, "/") + path,
		Client:   client,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (t *HTTPTransport) Submit(ctx context.Context, p Payload) (*Result, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, &RequestError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &RequestError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return nil, &RequestError{StatusCode: resp.StatusCode, Message: eb.Error}
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &RequestError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return &result, nil
}
