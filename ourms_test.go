package blsms

import (
	"context"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestOurMS(t *testing.T, curve Curve, bitLen int, opts ...Option) *OurMSScheme {
	t.Helper()
	s, err := NewOurMSScheme(curve, bitLen, opts...)
	require.NoError(t, err)
	return s
}

func runOurMS(t *testing.T, s *OurMSScheme, set *SignerSet, msg []byte) ([]SignatureShare, *OurMSSignature, *OurMSPublicKey) {
	t.Helper()
	shares, err := s.Sign(context.Background(), set, msg)
	require.NoError(t, err)
	require.Len(t, shares, set.Len())
	sig, err := s.Combine(shares, set)
	require.NoError(t, err)
	pk, err := s.AggregateKeys(set, sig.S2)
	require.NoError(t, err)
	return shares, sig, pk
}

func TestOurMSRoundTrip(t *testing.T) {
	for _, curve := range testCurves() {
		for _, bitLen := range []int{0, 8, 32, 64} {
			for _, n := range []int{1, 2, 3, 5} {
				s := newTestOurMS(t, curve, bitLen)
				set, err := s.Setup(context.Background(), n)
				require.NoError(t, err)

				_, sig, pk := runOurMS(t, s, set, testMessage)
				require.True(t, s.Verify(testMessage, sig, pk), "%s bitLen=%d n=%d", curve.Name(), bitLen, n)
				require.False(t, s.Verify([]byte("wrong message"), sig, pk), "%s bitLen=%d n=%d", curve.Name(), bitLen, n)
			}
		}
	}
}

func TestOurMSInvalidBitLength(t *testing.T) {
	for _, bitLen := range []int{-8, 4, 65, 72} {
		_, err := NewOurMSScheme(NewGnarkCurve(), bitLen)
		require.ErrorIs(t, err, ErrInvalidBitLength, "bitLen %d", bitLen)
	}
}

func TestOurMSStart(t *testing.T) {
	for _, curve := range testCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			set := fixedSet(t, curve, 2)
			shares, err := newTestOurMS(t, curve, 0).Sign(context.Background(), set, testMessage)
			require.NoError(t, err)
			sig0 := shares[0].Point

			zero, err := newTestOurMS(t, curve, 0).Start(sig0)
			require.NoError(t, err)
			require.True(t, zero.IsZero())

			digest := sha256.Sum256(sig0.Bytes())
			eight, err := newTestOurMS(t, curve, 8).Start(sig0)
			require.NoError(t, err)
			require.True(t, eight.Equal(curve.ScalarFromUint64(uint64(digest[0]))))

			_, err = newTestOurMS(t, curve, 8).Start(nil)
			require.ErrorIs(t, err, ErrInvalidShareIndex)
		})
	}
}

func TestOurMSFixedSeedVector(t *testing.T) {
	for _, curve := range testCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			s := newTestOurMS(t, curve, 8)
			set := fixedSet(t, curve, 3)
			shares, sig, pk := runOurMS(t, s, set, testMessage)

			sks := secretScalars(t, curve, set)
			h, err := curve.HashToShort(testMessage)
			require.NoError(t, err)
			g2 := curve.LongGenerator()

			// Every share is a plain BLS signature.
			for i, share := range shares {
				require.True(t, share.Point.Equal(h.Mul(sks[i])), "share %d", i)
			}

			digest := sha256.Sum256(shares[0].Point.Bytes())
			start := uint64(digest[0])

			// S1 = H(m)^(sum c_i sk_i) with c_i = sk_0 + start + i + 1.
			s1Exp := curve.ScalarZero()
			k1Exp := curve.ScalarZero()
			k2Exp := sks[0]
			for i, sk := range sks {
				offset := curve.ScalarFromUint64(start + uint64(i) + 1)
				s1Exp = s1Exp.Add(sks[0].Add(offset).Mul(sk))
				k1Exp = k1Exp.Add(sk)
				k2Exp = k2Exp.Add(offset.Mul(sk))
			}

			require.True(t, sig.S1.Equal(h.Mul(s1Exp)))
			require.True(t, sig.S2.Equal(h.Mul(sks[0])))
			require.True(t, pk.K1.Equal(g2.Mul(k1Exp)))
			require.True(t, pk.K2.Equal(g2.Mul(k2Exp)))
			require.True(t, s.Verify(testMessage, sig, pk))
		})
	}
}

func TestOurMSSingleSigner(t *testing.T) {
	for _, curve := range testCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			s := newTestOurMS(t, curve, 16)
			set := fixedSet(t, curve, 1)
			shares, sig, pk := runOurMS(t, s, set, testMessage)

			sk := secretScalars(t, curve, set)[0]
			start, err := s.Start(shares[0].Point)
			require.NoError(t, err)
			one := curve.ScalarFromUint64(1)

			// c_0 = sk_0 + start + 1, K1 = pk_0, K2 = (start + 1) * pk_0 + pk_0.
			c0 := sk.Add(start).Add(one)
			require.True(t, sig.S1.Equal(shares[0].Point.Mul(c0)))
			require.True(t, sig.S2.Equal(shares[0].Point))

			pk0, err := set.Signers[0].PublicPoint(curve)
			require.NoError(t, err)
			require.True(t, pk.K1.Equal(pk0))
			require.True(t, pk.K2.Equal(pk0.Mul(start.Add(one)).Add(pk0)))
			require.True(t, s.Verify(testMessage, sig, pk))
		})
	}
}

func TestOurMSCombinerCoefficients(t *testing.T) {
	curve := NewGnarkCurve()
	s := newTestOurMS(t, curve, 0)
	set := fixedSet(t, curve, 3)
	shares, err := s.Sign(context.Background(), set, testMessage)
	require.NoError(t, err)

	coeffs, err := s.CombinerCoefficients(set, shares[0].Point)
	require.NoError(t, err)
	require.Len(t, coeffs, 3)

	// With bitLen 0 the offset is zero, so c_i = sk_0 + i + 1.
	sk0 := secretScalars(t, curve, set)[0]
	for i, c := range coeffs {
		require.True(t, c.Equal(sk0.Add(curve.ScalarFromUint64(uint64(i)+1))), "coefficient %d", i)
	}
}

func TestOurMSPermutedSharesStillVerify(t *testing.T) {
	for _, curve := range testCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			s := newTestOurMS(t, curve, 32)
			set := fixedSet(t, curve, 4)
			shares, sig, pk := runOurMS(t, s, set, testMessage)

			permuted := []SignatureShare{shares[2], shares[0], shares[3], shares[1]}
			sig2, err := s.Combine(permuted, set)
			require.NoError(t, err)
			require.True(t, sig.S1.Equal(sig2.S1))
			require.True(t, sig.S2.Equal(sig2.S2))
			require.True(t, s.Verify(testMessage, sig2, pk))
		})
	}
}

func TestOurMSRejectsSwappedShares(t *testing.T) {
	for _, curve := range testCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			s := newTestOurMS(t, curve, 8)
			set := fixedSet(t, curve, 3)
			shares, _, _ := runOurMS(t, s, set, testMessage)

			// Same indices, points of signers 1 and 2 exchanged.
			swapped := []SignatureShare{
				shares[0],
				{Index: 1, Point: shares[2].Point},
				{Index: 2, Point: shares[1].Point},
			}
			sig, err := s.Combine(swapped, set)
			require.NoError(t, err)
			pk, err := s.AggregateKeys(set, sig.S2)
			require.NoError(t, err)
			require.False(t, s.Verify(testMessage, sig, pk))
		})
	}
}

func TestOurMSRejectsFlippedPublicKey(t *testing.T) {
	for _, curve := range testCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			s := newTestOurMS(t, curve, 8)
			set := fixedSet(t, curve, 3)
			_, sig, _ := runOurMS(t, s, set, testMessage)

			tampered := &KeyPair{Secret: set.Signers[2].Secret, Public: append([]byte{}, set.Signers[2].Public...)}
			tampered.Public[0] ^= 0x20
			pk, err := s.AggregateKeys(NewSignerSet(set.Signers[0], set.Signers[1], tampered), sig.S2)
			require.NoError(t, err)
			require.False(t, s.Verify(testMessage, sig, pk))
		})
	}
}

func TestOurMSRejectsWrongKeySignature(t *testing.T) {
	curve := NewGnarkCurve()
	s := newTestOurMS(t, curve, 8)
	set := fixedSet(t, curve, 3)
	_, sig, _ := runOurMS(t, s, set, testMessage)

	// Keys aggregated against a different sig0 use a different start.
	h, err := curve.HashToShort([]byte("unrelated"))
	require.NoError(t, err)
	pk, err := s.AggregateKeys(set, h)
	require.NoError(t, err)
	require.False(t, s.Verify(testMessage, sig, pk))
}

func TestOurMSCombineValidation(t *testing.T) {
	curve := NewGnarkCurve()
	s := newTestOurMS(t, curve, 8)
	set := fixedSet(t, curve, 3)
	shares, err := s.Sign(context.Background(), set, testMessage)
	require.NoError(t, err)

	_, err = s.Combine(shares[:2], set)
	require.ErrorIs(t, err, ErrShareCountMismatch)

	dup := []SignatureShare{shares[0], shares[1], {Index: 1, Point: shares[2].Point}}
	_, err = s.Combine(dup, set)
	require.ErrorIs(t, err, ErrInvalidShareIndex)

	outOfRange := []SignatureShare{shares[0], shares[1], {Index: 3, Point: shares[2].Point}}
	_, err = s.Combine(outOfRange, set)
	require.ErrorIs(t, err, ErrInvalidShareIndex)

	missingPoint := []SignatureShare{shares[0], shares[1], {Index: 2}}
	_, err = s.Combine(missingPoint, set)
	require.ErrorIs(t, err, ErrInvalidShareIndex)

	_, err = s.Combine(shares, NewSignerSet())
	require.ErrorIs(t, err, ErrEmptySignerSet)
	_, err = s.AggregateKeys(nil, shares[0].Point)
	require.ErrorIs(t, err, ErrEmptySignerSet)

	require.False(t, s.Verify(testMessage, nil, nil))
	require.False(t, s.Verify(testMessage, &OurMSSignature{S1: shares[0].Point}, &OurMSPublicKey{}))
}

func TestOurMSParallelSigning(t *testing.T) {
	curve := NewKyberCurve()
	s := newTestOurMS(t, curve, 8, WithWorkers(3), WithEntropy(fixedSeeds(5)))
	set, err := s.Setup(context.Background(), 5)
	require.NoError(t, err)
	_, sig, pk := runOurMS(t, s, set, testMessage)
	require.True(t, s.Verify(testMessage, sig, pk))
}

func TestOurMSAuditEvents(t *testing.T) {
	h := &recordingAuditHandler{}
	s := newTestOurMS(t, NewGnarkCurve(), 16, WithAuditHandler(h))
	set := fixedSet(t, s.Curve(), 2)
	_, sig, pk := runOurMS(t, s, set, testMessage)
	require.False(t, s.Verify([]byte("other"), sig, pk))

	require.Len(t, h.operations, 3)
	for _, ev := range h.operations {
		require.Equal(t, SchemeOurMS, ev.Scheme)
		require.Equal(t, 16, ev.BitLength)
	}
	require.Len(t, h.verifies, 1)
	require.False(t, h.verifies[0].Valid)
}

func BenchmarkOurMS(b *testing.B) {
	for _, curve := range testCurves() {
		s, err := NewOurMSScheme(curve, 32)
		require.NoError(b, err)
		ctx := context.Background()
		set, err := s.Setup(ctx, 10)
		require.NoError(b, err)
		shares, err := s.Sign(ctx, set, testMessage)
		require.NoError(b, err)
		sig, err := s.Combine(shares, set)
		require.NoError(b, err)
		pk, err := s.AggregateKeys(set, sig.S2)
		require.NoError(b, err)

		b.Run(curve.Name()+"/Combine", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = s.Combine(shares, set)
			}
		})
		b.Run(curve.Name()+"/AggregateKeys", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = s.AggregateKeys(set, sig.S2)
			}
		})
		b.Run(curve.Name()+"/Verify", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				s.Verify(testMessage, sig, pk)
			}
		})
	}
}
