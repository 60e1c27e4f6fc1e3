package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of intake event
type EventType string

const (
	EventSubmissionRejected EventType = "submission_rejected"
	EventHoneypotTriggered  EventType = "honeypot_triggered"
	EventDeliveryFailed     EventType = "delivery_failed"
	EventDeliverySucceeded  EventType = "delivery_succeeded"
	EventRequestFailed      EventType = "request_failed"
)

// IntakeEvent is a structured record of something that happened to a submission
type IntakeEvent struct {
	Service      string                 `json:"service"`
	Environment  string                 `json:"env"`
	Event        EventType              `json:"event"`
	Variant      string                 `json:"variant,omitempty"`
	SubjectValue string                 `json:"subject_value,omitempty"` // masked submitter email
	IP           string                 `json:"ip,omitempty"`
	RequestID    string                 `json:"request_id,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// IntakeLogger provides structured logging for intake events
type IntakeLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// InitIntakeLogger builds the production zap logger for intake events
func InitIntakeLogger(serviceName, environment string) *IntakeLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddCaller())
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	return NewIntakeLogger(logger, serviceName, environment)
}

// NewIntakeLogger wraps an existing zap logger
func NewIntakeLogger(z *zap.Logger, serviceName, environment string) *IntakeLogger {
	return &IntakeLogger{
		zapLogger:   z,
		serviceName: serviceName,
		environment: environment,
	}
}

// Log logs an intake event. Time and level are written by zap itself.
func (l *IntakeLogger) Log(ctx context.Context, event IntakeEvent) {
	event.Service = l.serviceName
	event.Environment = l.environment

	level := zapcore.InfoLevel
	switch event.Event {
	case EventSubmissionRejected, EventHoneypotTriggered:
		level = zapcore.WarnLevel
	case EventDeliveryFailed, EventRequestFailed:
		level = zapcore.ErrorLevel
	}

	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("env", event.Environment),
		zap.String("event", string(event.Event)),
	}
	if event.Variant != "" {
		fields = append(fields, zap.String("variant", event.Variant))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	l.zapLogger.Log(level, string(event.Event), fields...)
}

// LogSubmissionRejected logs a submission missing required fields
func (l *IntakeLogger) LogSubmissionRejected(ctx context.Context, variant, email, ip, requestID string, missing []string) {
	l.Log(ctx, IntakeEvent{
		Event:        EventSubmissionRejected,
		Variant:      variant,
		SubjectValue: MaskEmail(email),
		IP:           ip,
		RequestID:    requestID,
		Details:      map[string]interface{}{"missing_fields": missing},
	})
}

// LogHoneypotTriggered logs a submission that filled the hidden bot trap
func (l *IntakeLogger) LogHoneypotTriggered(ctx context.Context, variant, ip, requestID string) {
	l.Log(ctx, IntakeEvent{
		Event:     EventHoneypotTriggered,
		Variant:   variant,
		IP:        ip,
		RequestID: requestID,
	})
}

// LogDeliveryFailed logs the provider's error detail for operator diagnosis
func (l *IntakeLogger) LogDeliveryFailed(ctx context.Context, variant, email, requestID string, err error) {
	l.Log(ctx, IntakeEvent{
		Event:        EventDeliveryFailed,
		Variant:      variant,
		SubjectValue: MaskEmail(email),
		RequestID:    requestID,
		Details:      map[string]interface{}{"error": err.Error()},
	})
}

// LogDeliverySucceeded logs the provider message id of a relayed submission
func (l *IntakeLogger) LogDeliverySucceeded(ctx context.Context, variant, email, requestID, messageID string) {
	l.Log(ctx, IntakeEvent{
		Event:        EventDeliverySucceeded,
		Variant:      variant,
		SubjectValue: MaskEmail(email),
		RequestID:    requestID,
		Details:      map[string]interface{}{"message_id": messageID},
	})
}

// LogRequestFailed logs an unexpected fault caught at the handler boundary
func (l *IntakeLogger) LogRequestFailed(ctx context.Context, path, requestID string, cause interface{}) {
	l.Log(ctx, IntakeEvent{
		Event:     EventRequestFailed,
		RequestID: requestID,
		Details:   map[string]interface{}{"path": path, "cause": cause},
	})
}

// Sync flushes any buffered log entries
func (l *IntakeLogger) Sync() error {
	return l.zapLogger.Sync()
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}
	if len(email) < 3 {
		return "***"
	}
	atIndex := -1
	for i, c := range email {
		if c == '@' {
			atIndex = i
			break
		}
	}
	if atIndex < 0 {
		return HashValue(email)
	}
	if atIndex <= 1 {
		return "***" + email[atIndex:]
	}
	return string(email[0]) + "***" + email[atIndex:]
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}
