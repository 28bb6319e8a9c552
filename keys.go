package blsms

import (
	"bytes"
)

// KeyPair is a signer's fixed-width secret scalar and compressed G2 public key.
type KeyPair struct {
	Secret []byte
	Public []byte
}

// Zeroize securely clears the secret key bytes
func (kp *KeyPair) Zeroize() {
	if kp != nil {
		ZeroizeBytes(kp.Secret)
	}
}

// SecretScalar decodes the secret key on the given curve
func (kp *KeyPair) SecretScalar(curve Curve) (Scalar, error) {
	s, err := curve.ScalarFromBytes(kp.Secret)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// PublicPoint decodes the public key on the given curve
func (kp *KeyPair) PublicPoint(curve Curve) (LongPoint, error) {
	return curve.LongPointFromBytes(kp.Public)
}

// SignerSet is an ordered list of key pairs. A signer's position is its
// index in every coefficient computation, and index 0 is the distinguished
// signer in OUR-MS.
type SignerSet struct {
	Signers []*KeyPair
}

// NewSignerSet wraps key pairs into a signer set without copying them
func NewSignerSet(signers ...*KeyPair) *SignerSet {
	return &SignerSet{Signers: signers}
}

// Len returns the number of signers
func (s *SignerSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Signers)
}

// PublicKeys returns the encoded public keys in signer order
func (s *SignerSet) PublicKeys() [][]byte {
	pks := make([][]byte, 0, s.Len())
	for _, kp := range s.Signers {
		pks = append(pks, kp.Public)
	}
	return pks
}

// ConcatPublicKeys returns pk_0 || pk_1 || ... || pk_{n-1}
func (s *SignerSet) ConcatPublicKeys() []byte {
	return bytes.Join(s.PublicKeys(), nil)
}

// DecodePublicKeys decodes all public keys in signer order
func (s *SignerSet) DecodePublicKeys(curve Curve) ([]LongPoint, error) {
	points := make([]LongPoint, s.Len())
	for i, kp := range s.Signers {
		p, err := kp.PublicPoint(curve)
		if err != nil {
			return nil, ErrInvalidEncoding.WithContext("signer", i).WithCause(err)
		}
		points[i] = p
	}
	return points, nil
}

// Zeroize clears every secret key in the set
func (s *SignerSet) Zeroize() {
	if s == nil {
		return
	}
	for _, kp := range s.Signers {
		kp.Zeroize()
	}
}

func (s *SignerSet) checkNonEmpty() error {
	if s.Len() == 0 {
		return ErrEmptySignerSet
	}
	for i, kp := range s.Signers {
		if kp == nil {
			return ErrEmptySignerSet.WithDetails("signer %d is nil", i)
		}
	}
	return nil
}

// SignatureShare is one signer's contribution to a multi-signature
type SignatureShare struct {
	Index int
	Point ShortPoint
}

// BDNSignature is the aggregate BDN signature sigma
type BDNSignature struct {
	Sigma ShortPoint
}

// BDNPublicKey is the BDN aggregate public key sum(t_i * pk_i)
type BDNPublicKey struct {
	APK LongPoint
}

// OurMSSignature is the OUR-MS aggregate signature (S1, S2)
type OurMSSignature struct {
	S1 ShortPoint
	S2 ShortPoint
}

// OurMSPublicKey is the OUR-MS aggregate key pair (K1, K2)
type OurMSPublicKey struct {
	K1 LongPoint
	K2 LongPoint
}
