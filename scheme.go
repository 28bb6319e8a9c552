package blsms

import (
	"errors"
	"strings"
	"time"
)

// SchemeType names a multi-signature scheme
type SchemeType string

const (
	SchemeBDN   SchemeType = "bdn"
	SchemeOurMS SchemeType = "ourms"
)

// ParseSchemeType maps a user supplied name onto a scheme
func ParseSchemeType(name string) (SchemeType, error) {
	switch s := SchemeType(strings.ToLower(strings.TrimSpace(name))); s {
	case SchemeBDN, SchemeOurMS:
		return s, nil
	case "our-ms", "our_ms":
		return SchemeOurMS, nil
	default:
		return "", ErrUnsupportedScheme.WithContext("scheme", name)
	}
}

// Option configures a scheme
type Option func(*options)

type options struct {
	hash    HashAlgorithm
	workers int
	audit   AuditEventHandler
	entropy EntropySource
}

func defaultOptions() options {
	return options{
		hash:    DefaultHashAlgorithm,
		workers: 1,
		entropy: CryptoEntropy{},
	}
}

// WithHashAlgorithm selects the digest used for coefficient derivation
func WithHashAlgorithm(alg HashAlgorithm) Option {
	return func(o *options) { o.hash = alg }
}

// WithWorkers bounds the number of signers processed concurrently during
// Setup and Sign. Values below 2 run sequentially.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithAuditHandler installs an audit event handler
func WithAuditHandler(h AuditEventHandler) Option {
	return func(o *options) { o.audit = h }
}

// WithEntropy replaces the crypto/rand seed source used by Setup
func WithEntropy(e EntropySource) Option {
	return func(o *options) { o.entropy = e }
}

// schemeBase holds the state shared by both scheme implementations
type schemeBase struct {
	scheme SchemeType
	curve  Curve
	bitLen int
	opts   options
}

func newSchemeBase(scheme SchemeType, curve Curve, bitLen int, opts []Option) (schemeBase, error) {
	b := schemeBase{scheme: scheme, curve: curve, bitLen: bitLen, opts: defaultOptions()}
	for _, opt := range opts {
		opt(&b.opts)
	}
	if curve == nil {
		return b, ErrInvalidConfiguration.WithDetails("curve cannot be nil")
	}
	if _, err := b.opts.hash.New(); err != nil {
		return b, err
	}
	if b.opts.entropy == nil {
		b.opts.entropy = CryptoEntropy{}
	}
	return b, nil
}

// Curve returns the curve the scheme operates on
func (b *schemeBase) Curve() Curve {
	return b.curve
}

func (b *schemeBase) event(eventType AuditEventType, signers int) *AuditEventBuilder {
	builder := NewAuditEventBuilder(eventType, b.scheme).
		WithCurve(b.curve.Name()).
		WithSigners(signers)
	if b.scheme == SchemeOurMS {
		builder.WithBitLength(b.bitLen)
	}
	return builder
}

// record reports the outcome of a phase. Validation errors go to
// OnValidationFailure, other errors to OnError.
func (b *schemeBase) record(eventType AuditEventType, signers int, started time.Time, err error) {
	h := b.opts.audit
	if h == nil {
		return
	}
	if err == nil {
		h.OnOperation(b.event(eventType, signers).BuildOperation(time.Since(started)))
		return
	}

	var msErr *MultisigError
	if errors.As(err, &msErr) && msErr.Category == ErrorCategoryValidation {
		h.OnValidationFailure(b.event(AuditEventValidationFailure, signers).
			WithError(err).
			WithMetadata("phase", string(eventType)).
			BuildValidationFailure(string(eventType), msErr.Message, msErr.Context))
		return
	}
	h.OnError(b.event(AuditEventError, signers).
		WithError(err).
		WithMetadata("phase", string(eventType)).
		Build())
}

func (b *schemeBase) recordVerify(signers int, started time.Time, valid bool) {
	if h := b.opts.audit; h != nil {
		h.OnVerification(b.event(AuditEventVerify, signers).BuildVerification(valid, time.Since(started)))
	}
}

// sumShort adds points in the short group
func sumShort(curve Curve, points []ShortPoint) ShortPoint {
	acc := curve.ShortIdentity()
	for _, p := range points {
		acc = acc.Add(p)
	}
	return acc
}
