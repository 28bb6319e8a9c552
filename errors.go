package blsms

import (
	"errors"
	"fmt"
)

// ErrorCategory represents the category of a multi-signature error
type ErrorCategory string

const (
	ErrorCategoryValidation    ErrorCategory = "validation"
	ErrorCategoryConfiguration ErrorCategory = "configuration"
	ErrorCategoryEncoding      ErrorCategory = "encoding"
	ErrorCategoryKeyGeneration ErrorCategory = "key_generation"
	ErrorCategorySigning       ErrorCategory = "signing"
	ErrorCategoryAggregation   ErrorCategory = "aggregation"
	ErrorCategoryCryptographic ErrorCategory = "cryptographic"
	ErrorCategoryInternal      ErrorCategory = "internal"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	ErrorSeverityLow      ErrorSeverity = "low"      // Non-critical, operation can continue
	ErrorSeverityMedium   ErrorSeverity = "medium"   // Important, may affect functionality
	ErrorSeverityHigh     ErrorSeverity = "high"     // Critical, operation should stop
	ErrorSeverityCritical ErrorSeverity = "critical" // System-level failure
)

// MultisigError represents a structured error in the library
type MultisigError struct {
	Category    ErrorCategory          `json:"category"`
	Severity    ErrorSeverity          `json:"severity"`
	Code        string                 `json:"code"`
	Message     string                 `json:"message"`
	Details     string                 `json:"details,omitempty"`
	Cause       error                  `json:"-"` // Original error, not serialized
	Context     map[string]interface{} `json:"context,omitempty"`
	Recoverable bool                   `json:"recoverable"`
}

// Error implements the error interface
func (e *MultisigError) Error() string {
	msg := fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *MultisigError) Unwrap() error {
	return e.Cause
}

// Is matches on Code, so copies made by WithContext or WithCause still
// satisfy errors.Is against the package-level sentinel.
func (e *MultisigError) Is(target error) bool {
	var other *MultisigError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

func (e *MultisigError) clone() *MultisigError {
	newError := &MultisigError{
		Category:    e.Category,
		Severity:    e.Severity,
		Code:        e.Code,
		Message:     e.Message,
		Details:     e.Details,
		Recoverable: e.Recoverable,
		Cause:       e.Cause,
		Context:     make(map[string]interface{}, len(e.Context)+1),
	}
	for k, v := range e.Context {
		newError.Context[k] = v
	}
	return newError
}

// WithContext returns a copy of the error with an extra context entry
func (e *MultisigError) WithContext(key string, value interface{}) *MultisigError {
	newError := e.clone()
	newError.Context[key] = value
	return newError
}

// WithCause returns a copy of the error wrapping cause
func (e *MultisigError) WithCause(cause error) *MultisigError {
	newError := e.clone()
	newError.Cause = cause
	return newError
}

// WithDetails returns a copy of the error with a human readable detail string
func (e *MultisigError) WithDetails(format string, args ...interface{}) *MultisigError {
	newError := e.clone()
	newError.Details = fmt.Sprintf(format, args...)
	return newError
}

// IsRecoverable returns whether the error is recoverable
func (e *MultisigError) IsRecoverable() bool {
	return e.Recoverable
}

// NewMultisigError creates a new structured error
func NewMultisigError(category ErrorCategory, severity ErrorSeverity, code, message string) *MultisigError {
	return &MultisigError{
		Category:    category,
		Severity:    severity,
		Code:        code,
		Message:     message,
		Context:     make(map[string]interface{}),
		Recoverable: severity != ErrorSeverityCritical,
	}
}

// Validation Errors
var (
	ErrInvalidBitLength = NewMultisigError(
		ErrorCategoryValidation, ErrorSeverityHigh, "INVALID_BIT_LENGTH",
		"bit length must be a multiple of 8 in [0, 64]")

	ErrEmptySignerSet = NewMultisigError(
		ErrorCategoryValidation, ErrorSeverityHigh, "EMPTY_SIGNER_SET",
		"signer set is empty")

	ErrShareCountMismatch = NewMultisigError(
		ErrorCategoryValidation, ErrorSeverityHigh, "SHARE_COUNT_MISMATCH",
		"number of signature shares does not match signer set")

	ErrInvalidShareIndex = NewMultisigError(
		ErrorCategoryValidation, ErrorSeverityHigh, "INVALID_SHARE_INDEX",
		"signature share index is out of range or duplicated")
)

// Configuration Errors
var (
	ErrInvalidConfiguration = NewMultisigError(
		ErrorCategoryConfiguration, ErrorSeverityHigh, "INVALID_CONFIGURATION",
		"configuration parameters are invalid")

	ErrUnsupportedCurve = NewMultisigError(
		ErrorCategoryConfiguration, ErrorSeverityHigh, "UNSUPPORTED_CURVE",
		"curve backend is unsupported")

	ErrUnsupportedHash = NewMultisigError(
		ErrorCategoryConfiguration, ErrorSeverityHigh, "UNSUPPORTED_HASH",
		"hash algorithm is unsupported")

	ErrUnsupportedScheme = NewMultisigError(
		ErrorCategoryConfiguration, ErrorSeverityHigh, "UNSUPPORTED_SCHEME",
		"multi-signature scheme is unsupported")
)

// Encoding Errors
var (
	ErrInvalidEncoding = NewMultisigError(
		ErrorCategoryEncoding, ErrorSeverityHigh, "INVALID_ENCODING",
		"malformed scalar or point encoding")
)

// Key Generation Errors
var (
	ErrKeyGenerationFailed = NewMultisigError(
		ErrorCategoryKeyGeneration, ErrorSeverityHigh, "KEY_GENERATION_FAILED",
		"key pair generation failed")
)

// Signing Errors
var (
	ErrSigningFailed = NewMultisigError(
		ErrorCategorySigning, ErrorSeverityHigh, "SIGNING_FAILED",
		"signature share generation failed")
)

// Cryptographic Errors
var (
	ErrRandomnessGeneration = NewMultisigError(
		ErrorCategoryCryptographic, ErrorSeverityCritical, "RANDOMNESS_GENERATION_FAILED",
		"failed to generate secure randomness")

	ErrHashToCurve = NewMultisigError(
		ErrorCategoryCryptographic, ErrorSeverityHigh, "HASH_TO_CURVE_FAILED",
		"hash to curve failed")
)

// Error helper functions

// WrapError wraps an existing error with structured context
func WrapError(err error, category ErrorCategory, severity ErrorSeverity, code, message string) *MultisigError {
	return NewMultisigError(category, severity, code, message).WithCause(err)
}

// IsErrorCategory checks if an error belongs to a specific category
func IsErrorCategory(err error, category ErrorCategory) bool {
	var msErr *MultisigError
	if errors.As(err, &msErr) {
		return msErr.Category == category
	}
	return false
}

// IsRecoverableError checks if an error is recoverable
func IsRecoverableError(err error) bool {
	var msErr *MultisigError
	if errors.As(err, &msErr) {
		return msErr.IsRecoverable()
	}
	return true
}

// GetErrorContext extracts context from a structured error
func GetErrorContext(err error) map[string]interface{} {
	var msErr *MultisigError
	if errors.As(err, &msErr) {
		return msErr.Context
	}
	return nil
}
