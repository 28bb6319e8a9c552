package blsms

import (
	"time"

	"github.com/google/uuid"
)

// AuditEventType represents the type of audit event
type AuditEventType string

const (
	// Protocol phases
	AuditEventSetup         AuditEventType = "setup"
	AuditEventSign          AuditEventType = "sign"
	AuditEventCombine       AuditEventType = "combine"
	AuditEventAggregateKeys AuditEventType = "aggregate_keys"
	AuditEventVerify        AuditEventType = "verify"

	// Error events
	AuditEventValidationFailure AuditEventType = "validation_failure"
	AuditEventError             AuditEventType = "error"
)

// AuditEvent represents a single audit event emitted by a scheme
type AuditEvent struct {
	// Event metadata
	EventID   string         `json:"event_id"`
	Timestamp time.Time      `json:"timestamp"`
	EventType AuditEventType `json:"event_type"`

	// Context information
	Scheme      SchemeType `json:"scheme"`
	CurveName   string     `json:"curve_name,omitempty"`
	SignerCount int        `json:"signer_count,omitempty"`
	BitLength   int        `json:"bit_length,omitempty"`

	// Success/failure information
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	// Additional context
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// OperationEvent records a completed setup, sign, combine or aggregation
type OperationEvent struct {
	AuditEvent

	Duration time.Duration `json:"duration"`
}

// VerificationEvent records the outcome of a Verify call
type VerificationEvent struct {
	AuditEvent

	Valid    bool          `json:"valid"`
	Duration time.Duration `json:"duration"`
}

// ValidationFailureEvent contains details about rejected inputs
type ValidationFailureEvent struct {
	AuditEvent

	// Validation-specific fields
	ValidationType string                 `json:"validation_type"` // "bit_length", "signer_set", "shares"
	FailureReason  string                 `json:"failure_reason"`
	InputValues    map[string]interface{} `json:"input_values,omitempty"`
}

// AuditEventHandler defines the interface for handling audit events.
// Applications implement this interface to record events according to their needs.
type AuditEventHandler interface {
	// OnOperation is called after each successful protocol phase
	OnOperation(event *OperationEvent)

	// OnVerification is called after every verification, valid or not
	OnVerification(event *VerificationEvent)

	// OnValidationFailure is called when inputs are rejected
	OnValidationFailure(event *ValidationFailureEvent)

	// OnError is called when a phase fails for any other reason
	OnError(event *AuditEvent)
}

// NullAuditHandler is a no-op implementation of AuditEventHandler
type NullAuditHandler struct{}

func (n *NullAuditHandler) OnOperation(event *OperationEvent)                 {}
func (n *NullAuditHandler) OnVerification(event *VerificationEvent)           {}
func (n *NullAuditHandler) OnValidationFailure(event *ValidationFailureEvent) {}
func (n *NullAuditHandler) OnError(event *AuditEvent)                         {}

// AuditEventBuilder helps construct audit events with proper defaults
type AuditEventBuilder struct {
	event *AuditEvent
}

// NewAuditEventBuilder creates a new audit event builder
func NewAuditEventBuilder(eventType AuditEventType, scheme SchemeType) *AuditEventBuilder {
	return &AuditEventBuilder{
		event: &AuditEvent{
			EventID:   generateEventID(),
			Timestamp: time.Now(),
			EventType: eventType,
			Scheme:    scheme,
			Success:   true, // Default to success, can be overridden
			Metadata:  make(map[string]interface{}),
		},
	}
}

// WithCurve sets the curve name for the event
func (b *AuditEventBuilder) WithCurve(curveName string) *AuditEventBuilder {
	b.event.CurveName = curveName
	return b
}

// WithSigners sets the signer count
func (b *AuditEventBuilder) WithSigners(count int) *AuditEventBuilder {
	b.event.SignerCount = count
	return b
}

// WithBitLength sets the OUR-MS bit length
func (b *AuditEventBuilder) WithBitLength(bitLen int) *AuditEventBuilder {
	b.event.BitLength = bitLen
	return b
}

// WithError marks the event as failed and sets error information
func (b *AuditEventBuilder) WithError(err error) *AuditEventBuilder {
	b.event.Success = false
	if err != nil {
		b.event.Error = err.Error()
	}
	return b
}

// WithMetadata adds metadata to the event
func (b *AuditEventBuilder) WithMetadata(key string, value interface{}) *AuditEventBuilder {
	b.event.Metadata[key] = value
	return b
}

// Build returns the constructed audit event
func (b *AuditEventBuilder) Build() *AuditEvent {
	return b.event
}

// BuildOperation returns an OperationEvent
func (b *AuditEventBuilder) BuildOperation(duration time.Duration) *OperationEvent {
	return &OperationEvent{
		AuditEvent: *b.event,
		Duration:   duration,
	}
}

// BuildVerification returns a VerificationEvent
func (b *AuditEventBuilder) BuildVerification(valid bool, duration time.Duration) *VerificationEvent {
	return &VerificationEvent{
		AuditEvent: *b.event,
		Valid:      valid,
		Duration:   duration,
	}
}

// BuildValidationFailure returns a ValidationFailureEvent
func (b *AuditEventBuilder) BuildValidationFailure(validationType, failureReason string, inputValues map[string]interface{}) *ValidationFailureEvent {
	b.event.Success = false
	return &ValidationFailureEvent{
		AuditEvent:     *b.event,
		ValidationType: validationType,
		FailureReason:  failureReason,
		InputValues:    inputValues,
	}
}

func generateEventID() string {
	return uuid.NewString()
}
