package blsms

import (
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "blsms")

// LogrusAuditHandler writes audit events as structured logrus entries
type LogrusAuditHandler struct {
	entry *logrus.Entry
}

// NewLogrusAuditHandler logs through entry, or the package logger when nil
func NewLogrusAuditHandler(entry *logrus.Entry) *LogrusAuditHandler {
	if entry == nil {
		entry = log
	}
	return &LogrusAuditHandler{entry: entry}
}

func (h *LogrusAuditHandler) fields(event *AuditEvent) logrus.Fields {
	f := logrus.Fields{
		"eventID": event.EventID,
		"event":   string(event.EventType),
		"scheme":  string(event.Scheme),
		"curve":   event.CurveName,
	}
	if event.SignerCount > 0 {
		f["signers"] = event.SignerCount
	}
	if event.Scheme == SchemeOurMS {
		f["bitLen"] = event.BitLength
	}
	for k, v := range event.Metadata {
		f[k] = v
	}
	return f
}

func (h *LogrusAuditHandler) OnOperation(event *OperationEvent) {
	h.entry.WithFields(h.fields(&event.AuditEvent)).
		WithField("duration", event.Duration).
		Debug("Phase completed")
}

func (h *LogrusAuditHandler) OnVerification(event *VerificationEvent) {
	entry := h.entry.WithFields(h.fields(&event.AuditEvent)).
		WithField("duration", event.Duration).
		WithField("valid", event.Valid)
	if event.Valid {
		entry.Debug("Signature verified")
		return
	}
	entry.Warn("Signature rejected")
}

func (h *LogrusAuditHandler) OnValidationFailure(event *ValidationFailureEvent) {
	h.entry.WithFields(h.fields(&event.AuditEvent)).
		WithField("validation", event.ValidationType).
		WithField("reason", event.FailureReason).
		Warn("Input validation failed")
}

func (h *LogrusAuditHandler) OnError(event *AuditEvent) {
	h.entry.WithFields(h.fields(event)).
		WithField("error", event.Error).
		Error("Operation failed")
}
