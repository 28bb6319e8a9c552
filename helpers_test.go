package blsms

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var testMessage = []byte("test message")

// testCurves returns both BLS12-381 backends keyed by name
func testCurves() []Curve {
	return []Curve{NewGnarkCurve(), NewKyberCurve()}
}

// fixedSeeds returns n distinct 32-byte seeds
func fixedSeeds(n int) FixedSeeds {
	seeds := make(FixedSeeds, n)
	for i := range seeds {
		seeds[i] = bytes.Repeat([]byte{byte(i + 1)}, MinSeedLength)
	}
	return seeds
}

func fixedSet(t *testing.T, curve Curve, n int) *SignerSet {
	t.Helper()
	set, err := Setup(context.Background(), curve, n, fixedSeeds(n), 1)
	require.NoError(t, err)
	require.Equal(t, n, set.Len())
	return set
}

func secretScalars(t *testing.T, curve Curve, set *SignerSet) []Scalar {
	t.Helper()
	out := make([]Scalar, set.Len())
	for i, kp := range set.Signers {
		s, err := kp.SecretScalar(curve)
		require.NoError(t, err)
		out[i] = s
	}
	return out
}

// recordingAuditHandler stores every event it receives
type recordingAuditHandler struct {
	mu          sync.Mutex
	operations  []*OperationEvent
	verifies    []*VerificationEvent
	validations []*ValidationFailureEvent
	errors      []*AuditEvent
}

func (h *recordingAuditHandler) OnOperation(event *OperationEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.operations = append(h.operations, event)
}

func (h *recordingAuditHandler) OnVerification(event *VerificationEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.verifies = append(h.verifies, event)
}

func (h *recordingAuditHandler) OnValidationFailure(event *ValidationFailureEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.validations = append(h.validations, event)
}

func (h *recordingAuditHandler) OnError(event *AuditEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, event)
}
