// Package formsession is the client-side model of the contact form: field
// values, per-field errors and the submission status machine
//
//	idle -> validating -> submitting -> success -> (3s) idle
//	idle/validating/submitting -> error -> (Retry) idle
//
// A UI layer drives it through SetField, Blur, Submit, Retry and Close, and
// renders whatever State it receives from Subscribe.
package formsession

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go-agency-backend/pkg/logger"
	"go-agency-backend/pkg/validation"
)

// Session owns one open instance of the form. It is safe for concurrent use,
// but only one submission can be outstanding at a time.
type Session struct {
	transport Transport
	clock     Clock
	tracker   Tracker
	log       *slog.Logger
	onFocus   func(field string)

	mu          sync.Mutex
	fields      map[string]string
	errors      map[string]string
	status      Status
	message     string
	lastSuccess time.Time
	resetTimer  Timer
	resetGen    int
	closed      bool
	subscribers map[int]func(State)
	nextSubID   int
}

// Option customises a Session
type Option func(*Session)

// WithClock replaces the system clock
func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithTracker sets the analytics tracker
func WithTracker(t Tracker) Option {
	return func(s *Session) { s.tracker = t }
}

// WithLogger sets the logger used for non-fatal failures
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithFocus registers the callback that moves focus to the first invalid field
func WithFocus(f func(field string)) Option {
	return func(s *Session) { s.onFocus = f }
}

// New opens a form session that submits through transport
func New(transport Transport, opts ...Option) *Session {
	s := &Session{
		transport:   transport,
		clock:       SystemClock(),
		fields:      make(map[string]string),
		errors:      make(map[string]string),
		status:      StatusIdle,
		subscribers: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Log
	}
	if s.tracker == nil {
		s.tracker = LogTracker{Log: s.log}
	}
	return s
}

// Subscribe registers fn to receive every state change.
// The returned func removes the subscription.
func (s *Session) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// State returns a snapshot of the session
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// SetField stores a value. A displayed error for the field is cleared
// optimistically; the value is re-checked only on Blur or Submit.
func (s *Session) SetField(name, value string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	_, hadError := s.errors[name]
	if s.fields[name] == value && !hadError {
		s.mu.Unlock()
		return
	}
	s.fields[name] = value
	delete(s.errors, name)
	s.commitLocked()
}

// ValidateField applies the rule for name to value. Returns "" when valid.
func (s *Session) ValidateField(name, value string) string {
	return validation.ValidateField(name, value)
}

// Blur validates the current value of a field and shows or clears its error
func (s *Session) Blur(name string) string {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ""
	}
	msg := s.ValidateField(name, s.fields[name])
	if msg == s.errors[name] {
		s.mu.Unlock()
		return msg
	}
	if msg == "" {
		delete(s.errors, name)
	} else {
		s.errors[name] = msg
	}
	s.commitLocked()
	return msg
}

// ValidateAll checks every required field, and phone when filled in, replacing
// the whole error mapping. Reports whether the form is valid.
func (s *Session) ValidateAll() bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	valid := s.validateAllLocked()
	s.commitLocked()
	return valid
}

// Submit runs the full submission flow. It blocks until the request has
// completed and returns nil only on success.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.status == StatusValidating || s.status == StatusSubmitting {
		s.mu.Unlock()
		return ErrSubmissionInFlight
	}

	if !s.lastSuccess.IsZero() && s.clock.Now().Sub(s.lastSuccess) < RateLimitWindow {
		s.status = StatusError
		s.message = MsgRateLimited
		s.commitLocked()
		return ErrRateLimited
	}

	if !s.validateAllLocked() {
		s.status = StatusError
		s.message = MsgInvalidForm
		first := s.firstInvalidLocked()
		s.commitLocked()
		if s.onFocus != nil && first != "" {
			s.onFocus(first)
		}
		return ErrInvalidForm
	}

	s.status = StatusValidating
	s.message = ""
	payload := s.payloadLocked()
	s.commitLocked()

	if err := s.clock.Sleep(ctx, ValidatingDelay); err != nil {
		s.fail(MsgGeneric)
		return err
	}

	if !s.advance(StatusValidating, StatusSubmitting) {
		return ErrClosed
	}

	result, err := s.transport.Submit(ctx, payload)
	if err != nil {
		msg := MsgGeneric
		var reqErr *RequestError
		if errors.As(err, &reqErr) && reqErr.Message != "" {
			msg = reqErr.Message
		}
		if !s.fail(msg) {
			return ErrClosed
		}
		return err
	}

	if !s.succeed() {
		return ErrClosed
	}

	props := map[string]any{"has_phone": strings.TrimSpace(payload.Phone) != ""}
	if result != nil && result.ID != "" {
		props["submission_id"] = result.ID
	}
	if err := s.tracker.Track(ctx, AnalyticsEvent, props); err != nil {
		s.log.Warn("Analytics tracking failed", "event", AnalyticsEvent, "error", err)
	}
	return nil
}

// Retry leaves the error state so the user can resubmit. Field values stay.
func (s *Session) Retry() {
	s.mu.Lock()
	if s.closed || s.status != StatusError {
		s.mu.Unlock()
		return
	}
	s.status = StatusIdle
	s.message = ""
	s.commitLocked()
}

// HasUnsavedChanges reports whether closing would discard user input
func (s *Session) HasUnsavedChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasUnsavedLocked()
}

// Close tears the session down. With unsaved input, confirm is asked first and
// the session stays open unless it returns true. A nil confirm discards
// without asking. A response arriving after Close is ignored.
func (s *Session) Close(confirm func() bool) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return true
	}
	if s.hasUnsavedLocked() && confirm != nil {
		// never hold the lock while the UI is prompting
		s.mu.Unlock()
		if !confirm() {
			return false
		}
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return true
		}
	}
	s.closed = true
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
	s.fields = make(map[string]string)
	s.errors = make(map[string]string)
	s.subscribers = make(map[int]func(State))
	s.mu.Unlock()
	return true
}

func (s *Session) advance(from, to Status) bool {
	s.mu.Lock()
	if s.closed || s.status != from {
		s.mu.Unlock()
		return false
	}
	s.status = to
	s.commitLocked()
	return true
}

func (s *Session) fail(msg string) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.status = StatusError
	s.message = msg
	s.commitLocked()
	return true
}

func (s *Session) succeed() bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.status = StatusSuccess
	s.message = MsgSuccess
	s.lastSuccess = s.clock.Now()
	if s.resetTimer != nil {
		s.resetTimer.Stop()
	}
	s.resetGen++
	gen := s.resetGen
	s.resetTimer = s.clock.AfterFunc(ResetDelay, func() { s.reset(gen) })
	s.commitLocked()
	return true
}

// reset clears the form once the success banner has been shown. It runs
// whatever the status is by then, e.g. after a rate-limited resubmit.
func (s *Session) reset(gen int) {
	s.mu.Lock()
	if s.closed || s.resetTimer == nil || gen != s.resetGen {
		s.mu.Unlock()
		return
	}
	s.fields = make(map[string]string)
	s.errors = make(map[string]string)
	s.status = StatusIdle
	s.message = ""
	s.resetTimer = nil
	s.commitLocked()
}

func (s *Session) validateAllLocked() bool {
	errs := make(map[string]string)
	for _, name := range validation.RequiredFields {
		if msg := validation.ValidateField(name, s.fields[name]); msg != "" {
			errs[name] = msg
		}
	}
	if strings.TrimSpace(s.fields[FieldPhone]) != "" {
		if msg := validation.ValidatePhone(s.fields[FieldPhone]); msg != "" {
			errs[FieldPhone] = msg
		}
	}
	s.errors = errs
	return len(errs) == 0
}

func (s *Session) firstInvalidLocked() string {
	for _, name := range fieldOrder {
		if _, ok := s.errors[name]; ok {
			return name
		}
	}
	return ""
}

func (s *Session) hasUnsavedLocked() bool {
	if s.status == StatusSuccess {
		return false
	}
	for _, v := range s.fields {
		if v != "" {
			return true
		}
	}
	return false
}

func (s *Session) payloadLocked() Payload {
	f := func(name string) string { return strings.TrimSpace(s.fields[name]) }
	return Payload{
		Name:        f(FieldName),
		Email:       f(FieldEmail),
		Phone:       f(FieldPhone),
		Company:     f(FieldCompany),
		Message:     f(FieldProjectDescription),
		ProjectType: f(FieldProjectType),
		Source:      f(FieldSource),
	}
}

func (s *Session) snapshotLocked() State {
	return State{
		Fields:  copyMap(s.fields),
		Errors:  copyMap(s.errors),
		Status:  s.status,
		Message: s.message,
	}
}

// commitLocked snapshots the state, releases the lock and notifies subscribers.
// Callers must hold s.mu; it is released on return.
func (s *Session) commitLocked() {
	snap := s.snapshotLocked()
	subs := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}
