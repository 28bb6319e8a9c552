package blsms

import (
	"context"
	"time"
)

// OurMSScheme implements the OUR-MS multi-signature. Signers sign with their
// raw keys; the combiner, who holds signer 0's secret, weights share i by
// c_i = sk_0 + start + i + 1 where start comes from the first bitLen bits of
// H(share_0).
type OurMSScheme struct {
	schemeBase
}

// NewOurMSScheme creates an OUR-MS scheme. bitLen must be a multiple of 8
// in [0, 64].
func NewOurMSScheme(curve Curve, bitLen int, opts ...Option) (*OurMSScheme, error) {
	if err := ValidateBitLength(bitLen); err != nil {
		return nil, err
	}
	base, err := newSchemeBase(SchemeOurMS, curve, bitLen, opts)
	if err != nil {
		return nil, err
	}
	return &OurMSScheme{schemeBase: base}, nil
}

// BitLength returns the number of signature-hash bits fed into start
func (s *OurMSScheme) BitLength() int {
	return s.bitLen
}

// Setup generates n independent key pairs
func (s *OurMSScheme) Setup(ctx context.Context, n int) (*SignerSet, error) {
	started := time.Now()
	set, err := Setup(ctx, s.curve, n, s.opts.entropy, s.opts.workers)
	s.record(AuditEventSetup, n, started, err)
	return set, err
}

// Sign produces one plain BLS share per signer
func (s *OurMSScheme) Sign(ctx context.Context, set *SignerSet, msg []byte) ([]SignatureShare, error) {
	started := time.Now()
	shares, err := s.sign(ctx, set, msg)
	s.record(AuditEventSign, set.Len(), started, err)
	return shares, err
}

func (s *OurMSScheme) sign(ctx context.Context, set *SignerSet, msg []byte) ([]SignatureShare, error) {
	if err := set.checkNonEmpty(); err != nil {
		return nil, err
	}
	shares := make([]SignatureShare, set.Len())
	err := forEachSigner(ctx, set.Len(), s.opts.workers, func(i int) error {
		sk, err := set.Signers[i].SecretScalar(s.curve)
		if err != nil {
			return ErrSigningFailed.WithContext("signer", i).WithCause(err)
		}
		defer sk.Zeroize()

		sig, err := s.curve.Sign(sk, msg)
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

// Start derives the combiner offset from signer 0's share
func (s *OurMSScheme) Start(sig0 ShortPoint) (Scalar, error) {
	if sig0 == nil {
		return nil, ErrInvalidShareIndex.WithDetails("missing share for signer 0")
	}
	return DeriveFromSignature(s.curve, s.opts.hash, sig0.Bytes(), s.bitLen)
}

// CombinerCoefficients returns c_i = sk_0 + start + i + 1 for every signer
func (s *OurMSScheme) CombinerCoefficients(set *SignerSet, sig0 ShortPoint) ([]Scalar, error) {
	if err := set.checkNonEmpty(); err != nil {
		return nil, err
	}
	start, err := s.Start(sig0)
	if err != nil {
		return nil, err
	}
	sk0, err := set.Signers[0].SecretScalar(s.curve)
	if err != nil {
		return nil, ErrInvalidEncoding.WithContext("signer", 0).WithCause(err)
	}
	defer sk0.Zeroize()

	coeffs := make([]Scalar, set.Len())
	for i := range coeffs {
		coeffs[i] = sk0.Add(signerOffset(s.curve, start, i))
	}
	return coeffs, nil
}

// Combine computes S2 = share_0 and S1 = sum(c_i * share_i). Each share is
// weighted by its Index, so the slice may arrive in any order, but the
// indices must cover every signer exactly once.
func (s *OurMSScheme) Combine(shares []SignatureShare, set *SignerSet) (*OurMSSignature, error) {
	started := time.Now()
	sig, err := s.combine(shares, set)
	s.record(AuditEventCombine, set.Len(), started, err)
	return sig, err
}

func (s *OurMSScheme) combine(shares []SignatureShare, set *SignerSet) (*OurMSSignature, error) {
	if err := set.checkNonEmpty(); err != nil {
		return nil, err
	}
	byIndex, err := indexShares(shares, set.Len())
	if err != nil {
		return nil, err
	}

	s2 := byIndex[0]
	coeffs, err := s.CombinerCoefficients(set, s2)
	if err != nil {
		return nil, err
	}

	s1 := s.curve.ShortIdentity()
	for i, point := range byIndex {
		s1 = s1.Add(point.Mul(coeffs[i]))
		coeffs[i].Zeroize()
	}
	return &OurMSSignature{S1: s1, S2: s2}, nil
}

// indexShares orders shares by Index and rejects gaps, duplicates and
// out-of-range indices.
func indexShares(shares []SignatureShare, n int) ([]ShortPoint, error) {
	if len(shares) != n {
		return nil, ErrShareCountMismatch.WithContext("shares", len(shares)).WithContext("signers", n)
	}
	byIndex := make([]ShortPoint, n)
	for _, share := range shares {
		if share.Index < 0 || share.Index >= n || share.Point == nil {
			return nil, ErrInvalidShareIndex.WithContext("index", share.Index)
		}
		if byIndex[share.Index] != nil {
			return nil, ErrInvalidShareIndex.WithDetails("duplicate share for signer %d", share.Index)
		}
		byIndex[share.Index] = share.Point
	}
	return byIndex, nil
}

// AggregateKeys computes K1 = sum(pk_i) and K2 = sum((start+i+1) * pk_i) + pk_0,
// with start recomputed from sig0.
func (s *OurMSScheme) AggregateKeys(set *SignerSet, sig0 ShortPoint) (*OurMSPublicKey, error) {
	started := time.Now()
	pk, err := s.aggregateKeys(set, sig0)
	s.record(AuditEventAggregateKeys, set.Len(), started, err)
	return pk, err
}

func (s *OurMSScheme) aggregateKeys(set *SignerSet, sig0 ShortPoint) (*OurMSPublicKey, error) {
	if err := set.checkNonEmpty(); err != nil {
		return nil, err
	}
	start, err := s.Start(sig0)
	if err != nil {
		return nil, err
	}
	pks, err := set.DecodePublicKeys(s.curve)
	if err != nil {
		return nil, err
	}

	k1 := s.curve.LongIdentity()
	k2 := pks[0]
	for i, pk := range pks {
		k1 = k1.Add(pk)
		k2 = k2.Add(pk.Mul(signerOffset(s.curve, start, i)))
	}
	return &OurMSPublicKey{K1: k1, K2: k2}, nil
}

// Verify checks e(g2, -(S1+S2)) * e(K1, S2) * e(K2, H(msg)) == 1. A malformed
// input verifies as false.
func (s *OurMSScheme) Verify(msg []byte, sig *OurMSSignature, pk *OurMSPublicKey) bool {
	started := time.Now()
	valid := s.verify(msg, sig, pk)
	s.recordVerify(0, started, valid)
	return valid
}

func (s *OurMSScheme) verify(msg []byte, sig *OurMSSignature, pk *OurMSPublicKey) bool {
	if sig == nil || pk == nil || sig.S1 == nil || sig.S2 == nil || pk.K1 == nil || pk.K2 == nil {
		return false
	}
	h, err := s.curve.HashToShort(msg)
	if err != nil {
		return false
	}
	acc := s.curve.NewPairing()
	acc.Accumulate(s.curve.LongGenerator(), sig.S1.Add(sig.S2).Neg())
	acc.Accumulate(pk.K1, sig.S2)
	acc.Accumulate(pk.K2, h)
	return acc.Finalize()
}
