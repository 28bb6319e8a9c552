package blsms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBDNEncoding(t *testing.T) {
	for _, curve := range testCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			s := newTestBDN(t, curve)
			sig, apk := runBDN(t, s, fixedSet(t, curve, 3), testMessage)

			sigBytes, err := sig.MarshalBinary()
			require.NoError(t, err)
			require.Len(t, sigBytes, ShortPointLength)
			apkBytes, err := apk.MarshalBinary()
			require.NoError(t, err)
			require.Len(t, apkBytes, LongPointLength)

			sig2, err := UnmarshalBDNSignature(curve, sigBytes)
			require.NoError(t, err)
			apk2, err := UnmarshalBDNPublicKey(curve, apkBytes)
			require.NoError(t, err)
			require.True(t, s.Verify(testMessage, sig2, apk2))

			_, err = UnmarshalBDNSignature(curve, sigBytes[1:])
			require.ErrorIs(t, err, ErrInvalidEncoding)
			_, err = UnmarshalBDNPublicKey(curve, append(apkBytes, 0))
			require.ErrorIs(t, err, ErrInvalidEncoding)

			_, err = (&BDNSignature{}).MarshalBinary()
			require.ErrorIs(t, err, ErrInvalidEncoding)
		})
	}
}

func TestOurMSEncoding(t *testing.T) {
	for _, curve := range testCurves() {
		t.Run(curve.Name(), func(t *testing.T) {
			s := newTestOurMS(t, curve, 8)
			_, sig, pk := runOurMS(t, s, fixedSet(t, curve, 3), testMessage)

			sigBytes, err := sig.MarshalBinary()
			require.NoError(t, err)
			require.Len(t, sigBytes, 2*ShortPointLength)
			pkBytes, err := pk.MarshalBinary()
			require.NoError(t, err)
			require.Len(t, pkBytes, 2*LongPointLength)

			sig2, err := UnmarshalOurMSSignature(curve, sigBytes)
			require.NoError(t, err)
			pk2, err := UnmarshalOurMSPublicKey(curve, pkBytes)
			require.NoError(t, err)
			require.True(t, sig.S1.Equal(sig2.S1))
			require.True(t, sig.S2.Equal(sig2.S2))
			require.True(t, s.Verify(testMessage, sig2, pk2))

			_, err = UnmarshalOurMSSignature(curve, sigBytes[:ShortPointLength])
			require.ErrorIs(t, err, ErrInvalidEncoding)
			_, err = UnmarshalOurMSPublicKey(curve, pkBytes[:len(pkBytes)-1])
			require.ErrorIs(t, err, ErrInvalidEncoding)

			_, err = (&OurMSPublicKey{K1: pk.K1}).MarshalBinary()
			require.ErrorIs(t, err, ErrInvalidEncoding)
		})
	}
}

func TestSignerSetEncoding(t *testing.T) {
	curve := NewGnarkCurve()
	set, err := Setup(context.Background(), curve, 2, fixedSeeds(2), 1)
	require.NoError(t, err)

	pks := set.PublicKeys()
	require.Len(t, pks, 2)
	require.Equal(t, append(append([]byte{}, pks[0]...), pks[1]...), set.ConcatPublicKeys())

	points, err := set.DecodePublicKeys(curve)
	require.NoError(t, err)
	require.Len(t, points, 2)

	bad := NewSignerSet(set.Signers[0], &KeyPair{Public: []byte{1, 2, 3}})
	_, err = bad.DecodePublicKeys(curve)
	require.ErrorIs(t, err, ErrInvalidEncoding)
	require.Equal(t, 1, GetErrorContext(err)["signer"])

	set.Zeroize()
	for _, kp := range set.Signers {
		require.Equal(t, make([]byte, ScalarLength), kp.Secret)
	}
}
