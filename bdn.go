package blsms

import (
	"context"
	"time"
)

// BDNScheme implements the Boneh-Drijvers-Neven multi-signature. Each
// signer's key is weighted by t_i = H(pk_i || pk_0 || ... || pk_{n-1}), which
// makes the aggregate key resistant to rogue-key attacks.
type BDNScheme struct {
	schemeBase
}

// NewBDNScheme creates a BDN scheme over curve
func NewBDNScheme(curve Curve, opts ...Option) (*BDNScheme, error) {
	base, err := newSchemeBase(SchemeBDN, curve, 0, opts)
	if err != nil {
		return nil, err
	}
	return &BDNScheme{schemeBase: base}, nil
}

// Setup generates n independent key pairs
func (s *BDNScheme) Setup(ctx context.Context, n int) (*SignerSet, error) {
	started := time.Now()
	set, err := Setup(ctx, s.curve, n, s.opts.entropy, s.opts.workers)
	s.record(AuditEventSetup, n, started, err)
	return set, err
}

// Coefficient returns t_i for signer i of set
func (s *BDNScheme) Coefficient(set *SignerSet, i int) (Scalar, error) {
	if err := set.checkNonEmpty(); err != nil {
		return nil, err
	}
	if i < 0 || i >= set.Len() {
		return nil, ErrInvalidShareIndex.WithContext("index", i)
	}
	return DeriveFromKeySet(s.curve, s.opts.hash, set.Signers[i].Public, set.ConcatPublicKeys())
}

// Coefficients returns t_0 ... t_{n-1} in signer order
func (s *BDNScheme) Coefficients(set *SignerSet) ([]Scalar, error) {
	if err := set.checkNonEmpty(); err != nil {
		return nil, err
	}
	all := set.ConcatPublicKeys()
	coeffs := make([]Scalar, set.Len())
	for i, kp := range set.Signers {
		t, err := DeriveFromKeySet(s.curve, s.opts.hash, kp.Public, all)
		if err != nil {
			return nil, err
		}
		coeffs[i] = t
	}
	return coeffs, nil
}

// Sign produces one share per signer: BLS-Sign(sk_i * t_i, msg)
func (s *BDNScheme) Sign(ctx context.Context, set *SignerSet, msg []byte) ([]SignatureShare, error) {
	started := time.Now()
	shares, err := s.sign(ctx, set, msg)
	s.record(AuditEventSign, set.Len(), started, err)
	return shares, err
}

func (s *BDNScheme) sign(ctx context.Context, set *SignerSet, msg []byte) ([]SignatureShare, error) {
	if err := set.checkNonEmpty(); err != nil {
		return nil, err
	}
	all := set.ConcatPublicKeys()
	shares := make([]SignatureShare, set.Len())

	err := forEachSigner(ctx, set.Len(), s.opts.workers, func(i int) error {
		kp := set.Signers[i]
		t, err := DeriveFromKeySet(s.curve, s.opts.hash, kp.Public, all)
		if err != nil {
			return err
		}
		sk, err := kp.SecretScalar(s.curve)
		if err != nil {
			return ErrSigningFailed.WithContext("signer", i).WithCause(err)
		}
		weighted := sk.Mul(t)
		sk.Zeroize()
		defer weighted.Zeroize()

		sig, err := s.curve.Sign(weighted, msg)
		if err != nil {
			return ErrSigningFailed.WithContext("signer", i).WithCause(err)
		}
		shares[i] = SignatureShare{Index: i, Point: sig}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return shares, nil
}

// Combine sums the shares into sigma. The result does not depend on share order.
func (s *BDNScheme) Combine(shares []SignatureShare) (*BDNSignature, error) {
	started := time.Now()
	sig, err := s.combine(shares)
	s.record(AuditEventCombine, len(shares), started, err)
	return sig, err
}

func (s *BDNScheme) combine(shares []SignatureShare) (*BDNSignature, error) {
	if len(shares) == 0 {
		return nil, ErrEmptySignerSet.WithDetails("no signature shares")
	}
	points := make([]ShortPoint, len(shares))
	for i, share := range shares {
		if share.Point == nil {
			return nil, ErrInvalidShareIndex.WithDetails("share %d has no point", i)
		}
		points[i] = share.Point
	}
	return &BDNSignature{Sigma: sumShort(s.curve, points)}, nil
}

// AggregateKeys computes apk = sum(t_i * pk_i)
func (s *BDNScheme) AggregateKeys(set *SignerSet) (*BDNPublicKey, error) {
	started := time.Now()
	apk, err := s.aggregateKeys(set)
	s.record(AuditEventAggregateKeys, set.Len(), started, err)
	return apk, err
}

func (s *BDNScheme) aggregateKeys(set *SignerSet) (*BDNPublicKey, error) {
	coeffs, err := s.Coefficients(set)
	if err != nil {
		return nil, err
	}
	pks, err := set.DecodePublicKeys(s.curve)
	if err != nil {
		return nil, err
	}
	apk := s.curve.LongIdentity()
	for i, pk := range pks {
		apk = apk.Add(pk.Mul(coeffs[i]))
	}
	return &BDNPublicKey{APK: apk}, nil
}

// Verify checks e(g2, -sigma) * e(apk, H(msg)) == 1. A malformed input
// verifies as false.
func (s *BDNScheme) Verify(msg []byte, sig *BDNSignature, apk *BDNPublicKey) bool {
	started := time.Now()
	valid := s.verify(msg, sig, apk)
	s.recordVerify(0, started, valid)
	return valid
}

func (s *BDNScheme) verify(msg []byte, sig *BDNSignature, apk *BDNPublicKey) bool {
	if sig == nil || apk == nil || sig.Sigma == nil || apk.APK == nil {
		return false
	}
	h, err := s.curve.HashToShort(msg)
	if err != nil {
		return false
	}
	acc := s.curve.NewPairing()
	acc.Accumulate(s.curve.LongGenerator(), sig.Sigma.Neg())
	acc.Accumulate(apk.APK, h)
	return acc.Finalize()
}
