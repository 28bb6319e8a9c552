package blsms

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCurve(t *testing.T) {
	c, err := NewCurve("")
	require.NoError(t, err)
	require.Equal(t, string(BLS12381), c.Name())

	c, err = NewCurve(BLS12381Kyber)
	require.NoError(t, err)
	require.Equal(t, string(BLS12381Kyber), c.Name())

	_, err = NewCurve("secp256k1")
	require.ErrorIs(t, err, ErrUnsupportedCurve)
}

func TestCurveSizes(t *testing.T) {
	for _, curve := range testCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			require.Equal(t, ScalarLength, curve.ScalarSize())
			require.Equal(t, ShortPointLength, curve.ShortPointSize())
			require.Equal(t, LongPointLength, curve.LongPointSize())

			require.Len(t, curve.ScalarFromUint64(7).Bytes(), ScalarLength)
			h, err := curve.HashToShort(testMessage)
			require.NoError(t, err)
			require.Len(t, h.Bytes(), ShortPointLength)
			require.Len(t, curve.LongGenerator().Bytes(), LongPointLength)
		})
	}
}

func TestScalarArithmetic(t *testing.T) {
	for _, curve := range testCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			two := curve.ScalarFromUint64(2)
			three := curve.ScalarFromUint64(3)
			require.True(t, two.Add(three).Equal(curve.ScalarFromUint64(5)))
			require.True(t, two.Mul(three).Equal(curve.ScalarFromUint64(6)))
			require.True(t, curve.ScalarZero().IsZero())
			require.False(t, two.IsZero())

			// Big-endian encoding puts small values in the last byte.
			b := three.Bytes()
			require.Equal(t, byte(3), b[len(b)-1])
			require.True(t, bytes.Equal(b[:len(b)-1], make([]byte, len(b)-1)))

			decoded, err := curve.ScalarFromBytes(b)
			require.NoError(t, err)
			require.True(t, decoded.Equal(three))

			s := curve.ScalarFromUint64(9)
			s.Zeroize()
			require.True(t, s.IsZero())
		})
	}
}

func TestScalarFromBytesRejectsMalformed(t *testing.T) {
	for _, curve := range testCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			_, err := curve.ScalarFromBytes(make([]byte, 31))
			require.ErrorIs(t, err, ErrInvalidEncoding)

			// 2^256 - 1 is above the group order.
			_, err = curve.ScalarFromBytes(bytes.Repeat([]byte{0xff}, 32))
			require.ErrorIs(t, err, ErrInvalidEncoding)
		})
	}
}

func TestUniformBytesReduce(t *testing.T) {
	for _, curve := range testCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			// Any input width is accepted and reduced.
			s := curve.ScalarFromUniformBytes(bytes.Repeat([]byte{0xff}, 32))
			require.Len(t, s.Bytes(), ScalarLength)
			_, err := curve.ScalarFromBytes(s.Bytes())
			require.NoError(t, err)

			small := curve.ScalarFromUniformBytes([]byte{0x01, 0x00})
			require.True(t, small.Equal(curve.ScalarFromUint64(256)))
		})
	}
}

func TestPointGroupLaws(t *testing.T) {
	for _, curve := range testCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			g := curve.LongGenerator()
			two := curve.ScalarFromUint64(2)
			require.True(t, g.Add(g).Equal(g.Mul(two)))
			require.True(t, g.Add(g.Neg()).IsIdentity())
			require.True(t, curve.LongIdentity().IsIdentity())
			require.True(t, curve.LongIdentity().Add(g).Equal(g))

			h, err := curve.HashToShort(testMessage)
			require.NoError(t, err)
			require.True(t, h.Add(h).Equal(h.Mul(two)))
			require.True(t, h.Add(h.Neg()).IsIdentity())
			require.True(t, curve.ShortIdentity().IsIdentity())
			require.False(t, h.IsIdentity())
		})
	}
}

func TestPointEncodingRoundTrip(t *testing.T) {
	for _, curve := range testCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			g := curve.LongGenerator().Mul(curve.ScalarFromUint64(12345))
			decoded, err := curve.LongPointFromBytes(g.Bytes())
			require.NoError(t, err)
			require.True(t, decoded.Equal(g))

			h, err := curve.HashToShort([]byte("encode"))
			require.NoError(t, err)
			decodedShort, err := curve.ShortPointFromBytes(h.Bytes())
			require.NoError(t, err)
			require.True(t, decodedShort.Equal(h))

			_, err = curve.LongPointFromBytes(g.Bytes()[:LongPointLength-1])
			require.ErrorIs(t, err, ErrInvalidEncoding)
			_, err = curve.ShortPointFromBytes(append(h.Bytes(), 0))
			require.ErrorIs(t, err, ErrInvalidEncoding)
		})
	}
}

func TestHashToShortDeterministic(t *testing.T) {
	for _, curve := range testCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			a, err := curve.HashToShort(testMessage)
			require.NoError(t, err)
			b, err := curve.HashToShort(testMessage)
			require.NoError(t, err)
			c, err := curve.HashToShort([]byte("other message"))
			require.NoError(t, err)
			require.True(t, a.Equal(b))
			require.False(t, a.Equal(c))
		})
	}
}

func TestSingleSignerBLS(t *testing.T) {
	for _, curve := range testCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			kp, err := KeyPairFromSeed(curve, fixedSeeds(1)[0])
			require.NoError(t, err)
			sk, err := kp.SecretScalar(curve)
			require.NoError(t, err)
			pk, err := kp.PublicPoint(curve)
			require.NoError(t, err)

			sig, err := curve.Sign(sk, testMessage)
			require.NoError(t, err)
			require.True(t, curve.Verify(pk, testMessage, sig))
			require.False(t, curve.Verify(pk, []byte("wrong"), sig))
			require.False(t, curve.Verify(pk.Neg(), testMessage, sig))
			require.False(t, curve.Verify(nil, testMessage, sig))

			// Sign is H(m)^sk.
			h, err := curve.HashToShort(testMessage)
			require.NoError(t, err)
			require.True(t, h.Mul(sk).Equal(sig))
		})
	}
}

func TestPairingAccumulator(t *testing.T) {
	for _, curve := range testCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			h, err := curve.HashToShort(testMessage)
			require.NoError(t, err)
			g := curve.LongGenerator()
			a := curve.ScalarFromUint64(11)
			b := curve.ScalarFromUint64(13)

			// e(a*g, b*h) * e(-(a*b)*g, h) == 1
			acc := curve.NewPairing()
			acc.Accumulate(g.Mul(a), h.Mul(b))
			acc.Accumulate(g.Mul(a.Mul(b)).Neg(), h)
			require.True(t, acc.Finalize())

			acc = curve.NewPairing()
			acc.Accumulate(g.Mul(a), h.Mul(b))
			acc.Accumulate(g.Mul(a).Neg(), h)
			require.False(t, acc.Finalize())

			require.True(t, curve.NewPairing().Finalize())
		})
	}
}

func TestSecureRandom(t *testing.T) {
	a, err := SecureRandom(32)
	require.NoError(t, err)
	b, err := SecureRandom(32)
	require.NoError(t, err)
	require.Len(t, a, 32)
	require.NotEqual(t, a, b)
}
