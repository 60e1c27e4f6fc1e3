package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-agency-backend/pkg/formsession"
	"go-agency-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCmd(t *testing.T) {
	t.Run("Should report every invalid field", func(t *testing.T) {
		out, err := execute(t, "validate", "--email", "nope", "--phone", "12")
		assert.ErrorIs(t, err, formsession.ErrInvalidForm)
		assert.Contains(t, out, "✗ Name: "+validation.MsgNameRequired)
		assert.Contains(t, out, "✗ Email: "+validation.MsgEmailInvalid)
		assert.Contains(t, out, "✗ Phone: "+validation.MsgPhoneInvalid)
		assert.Contains(t, out, "✗ Project Description: "+validation.MsgDescriptionRequired)
	})

	t.Run("Should report a missing email as required", func(t *testing.T) {
		out, err := execute(t, "validate", "--name", "Jane Doe", "-m", "A new marketing site")
		assert.ErrorIs(t, err, formsession.ErrInvalidForm)
		assert.Equal(t, "✗ Email: "+validation.MsgEmailRequired+"\n", out)
	})

	t.Run("Should accept a valid form", func(t *testing.T) {
		out, err := execute(t, "validate", "--name", "Jane Doe", "--email", "jane@example.com", "-m", "A new marketing site")
		require.NoError(t, err)
		assert.Contains(t, out, "form is valid")
	})
}

func TestSubmitCmd(t *testing.T) {
	t.Run("Should post to the chosen form and print transitions", func(t *testing.T) {
		var got formsession.Payload
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, formsession.PrototypeRequestPath, r.URL.Path)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"message":"Email sent successfully","id":"proto-1"}`))
		}))
		defer srv.Close()

		out, err := execute(t, "submit",
			"--api-url", srv.URL,
			"--form", "prototype-request",
			"--name", "Sam Lee",
			"--email", "sam@example.com",
			"-m", "A booking app for salons",
			"--source", "cli",
		)
		require.NoError(t, err)
		assert.Equal(t, "cli", got.Source)
		assert.Equal(t, "A booking app for salons", got.Message)
		assert.Contains(t, out, "→ validating")
		assert.Contains(t, out, "→ submitting")
		assert.Contains(t, out, "→ success: "+formsession.MsgSuccess)
	})

	t.Run("Should surface the server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"Failed to send email"}`))
		}))
		defer srv.Close()

		out, err := execute(t, "submit", "--api-url", srv.URL,
			"--name", "Jane Doe", "--email", "jane@example.com", "-m", "A new marketing site")
		require.Error(t, err)
		assert.Contains(t, out, "→ error: Failed to send email")
	})

	t.Run("Should not contact the API for an invalid form", func(t *testing.T) {
		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
		defer srv.Close()

		out, err := execute(t, "submit", "--api-url", srv.URL, "--email", "jane@example.com")
		assert.ErrorIs(t, err, formsession.ErrInvalidForm)
		assert.False(t, called)
		assert.Contains(t, out, "name: "+validation.MsgNameRequired)
	})

	t.Run("Should reject an unknown form", func(t *testing.T) {
		_, err := execute(t, "submit", "--form", "newsletter")
		assert.ErrorContains(t, err, "unknown form")
	})
}
