package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go-agency-backend/pkg/formsession"
	"go-agency-backend/pkg/logger"
	"go-agency-backend/pkg/validation"

	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:8080"

// formFlags holds the field values and target for one invocation
type formFlags struct {
	apiURL      string
	form        string
	name        string
	email       string
	phone       string
	company     string
	message     string
	projectType string
	source      string
	timeout     time.Duration
	verbose     bool
}

func newRootCmd() *cobra.Command {
	f := &formFlags{}

	rootCmd := &cobra.Command{
		Use:   "contactctl",
		Short: "Validate and submit contact form entries",
		Long: `contactctl runs a contact form session outside the browser.

Available subcommands:
  validate - Check field values against the form rules
  submit   - Validate and post the form to the intake API`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if f.verbose {
				logger.Init("development")
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&f.name, "name", "", "Full name")
	rootCmd.PersistentFlags().StringVar(&f.email, "email", "", "Email address")
	rootCmd.PersistentFlags().StringVar(&f.phone, "phone", "", "Phone number (optional)")
	rootCmd.PersistentFlags().StringVar(&f.company, "company", "", "Company (optional)")
	rootCmd.PersistentFlags().StringVarP(&f.message, "message", "m", "", "Project description")
	rootCmd.PersistentFlags().StringVar(&f.projectType, "project-type", "", "Project type (optional)")
	rootCmd.PersistentFlags().StringVar(&f.source, "source", "", "Where the request came from (prototype-request only)")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check field values against the form rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, f)
		},
	}

	submitCmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate and post the form to the intake API",
		Long: `Validate the form locally and post it to the intake API.

This command:
1. Runs the field rules and stops on the first invalid form
2. Posts the payload to /submit/<form> on the API
3. Prints every status transition of the session`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(cmd, f)
		},
	}
	submitCmd.Flags().StringVar(&f.apiURL, "api-url", envOr("CONTACT_API_URL", defaultAPIURL), "Base URL of the intake API")
	submitCmd.Flags().StringVar(&f.form, "form", "contact", "Form to submit: contact or prototype-request")
	submitCmd.Flags().DurationVar(&f.timeout, "timeout", 15*time.Second, "Request timeout")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(submitCmd)
	return rootCmd
}

// contactForm carries the form rules as validator tags
type contactForm struct {
	Name               string `validate:"contact_name"`
	Email              string `validate:"contact_email"`
	Phone              string `validate:"contact_phone"`
	ProjectDescription string `validate:"project_description"`
}

func runValidate(cmd *cobra.Command, f *formFlags) error {
	form := contactForm{
		Name:               f.name,
		Email:              f.email,
		Phone:              f.phone,
		ProjectDescription: f.message,
	}

	out := cmd.OutOrStdout()
	if err := validation.NewValidator().Struct(form); err != nil {
		for _, msg := range validation.FormatValidationErrors(err) {
			fmt.Fprintf(out, "✗ %s\n", msg)
		}
		return formsession.ErrInvalidForm
	}
	fmt.Fprintln(out, "✓ form is valid")
	return nil
}

func runSubmit(cmd *cobra.Command, f *formFlags) error {
	path, err := formPath(f.form)
	if err != nil {
		return err
	}

	transport := formsession.NewHTTPTransport(f.apiURL, path, &http.Client{Timeout: f.timeout})
	session := newSession(f, transport)
	defer session.Close(nil)

	out := cmd.OutOrStdout()
	last := session.State().Status
	session.Subscribe(func(s formsession.State) {
		if s.Status == last {
			return
		}
		last = s.Status
		if s.Message != "" {
			fmt.Fprintf(out, "→ %s: %s\n", s.Status, s.Message)
		} else {
			fmt.Fprintf(out, "→ %s\n", s.Status)
		}
	})

	ctx, cancel := context.WithTimeout(cmd.Context(), f.timeout)
	defer cancel()

	err = session.Submit(ctx)
	if errors.Is(err, formsession.ErrInvalidForm) {
		printFieldErrors(out, session.State())
	}
	return err
}

func newSession(f *formFlags, transport formsession.Transport) *formsession.Session {
	session := formsession.New(transport, formsession.WithLogger(logger.Log))
	session.SetField(formsession.FieldName, f.name)
	session.SetField(formsession.FieldEmail, f.email)
	session.SetField(formsession.FieldPhone, f.phone)
	session.SetField(formsession.FieldCompany, f.company)
	session.SetField(formsession.FieldProjectDescription, f.message)
	session.SetField(formsession.FieldProjectType, f.projectType)
	session.SetField(formsession.FieldSource, f.source)
	return session
}

func formPath(form string) (string, error) {
	switch form {
	case "contact":
		return formsession.ContactPath, nil
	case "prototype-request":
		return formsession.PrototypeRequestPath, nil
	}
	return "", fmt.Errorf("unknown form %q (want contact or prototype-request)", form)
}

func printFieldErrors(w io.Writer, s formsession.State) {
	for _, name := range []string{
		formsession.FieldName,
		formsession.FieldEmail,
		formsession.FieldPhone,
		formsession.FieldProjectDescription,
	} {
		if msg := s.Error(name); msg != "" {
			fmt.Fprintf(w, "✗ %s: %s\n", name, msg)
		}
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
