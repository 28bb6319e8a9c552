package blsms

import (
	"crypto/rand"
	"fmt"
)

// Curve defines the pairing-friendly curve operations the multi-signature
// schemes consume. The short group holds signatures and message hashes, the
// long group holds public keys.
type Curve interface {
	// Metadata
	Name() string
	ScalarSize() int
	ShortPointSize() int
	LongPointSize() int

	// Scalar operations
	ScalarFromBytes([]byte) (Scalar, error)
	ScalarFromUniformBytes([]byte) Scalar
	ScalarFromUint64(uint64) Scalar
	ScalarZero() Scalar

	// Point operations
	ShortPointFromBytes([]byte) (ShortPoint, error)
	LongPointFromBytes([]byte) (LongPoint, error)
	ShortIdentity() ShortPoint
	LongIdentity() LongPoint
	LongGenerator() LongPoint

	// Message hashing and single-signer BLS
	HashToShort(msg []byte) (ShortPoint, error)
	Sign(secret Scalar, msg []byte) (ShortPoint, error)
	Verify(public LongPoint, msg []byte, sig ShortPoint) bool

	// NewPairing returns an empty multi-pairing accumulator.
	NewPairing() PairingAccumulator
}

// Scalar represents an integer modulo the group order
type Scalar interface {
	// Serialization
	Bytes() []byte
	String() string

	// Arithmetic operations
	Add(Scalar) Scalar
	Mul(Scalar) Scalar

	// Comparison
	Equal(Scalar) bool
	IsZero() bool

	// Security
	Zeroize()
}

// ShortPoint is an element of the signature group (G1).
type ShortPoint interface {
	Bytes() []byte
	String() string

	Add(ShortPoint) ShortPoint
	Neg() ShortPoint
	Mul(Scalar) ShortPoint

	Equal(ShortPoint) bool
	IsIdentity() bool
}

// LongPoint is an element of the public key group (G2).
type LongPoint interface {
	Bytes() []byte
	String() string

	Add(LongPoint) LongPoint
	Neg() LongPoint
	Mul(Scalar) LongPoint

	Equal(LongPoint) bool
	IsIdentity() bool
}

// PairingAccumulator multiplies pairing terms together and defers the final
// exponentiation until Finalize.
type PairingAccumulator interface {
	// Accumulate multiplies e(q, p) into the running product.
	Accumulate(q LongPoint, p ShortPoint)
	// Finalize reports whether the accumulated product is the identity of GT.
	Finalize() bool
}

// CurveType represents supported curve backends
type CurveType string

const (
	// BLS12381 is BLS12-381 backed by gnark-crypto.
	BLS12381 CurveType = "bls12-381"
	// BLS12381Kyber is BLS12-381 backed by drand/kyber.
	BLS12381Kyber CurveType = "bls12-381-kyber"
)

// NewCurve creates a new curve instance
func NewCurve(curveType CurveType) (Curve, error) {
	switch curveType {
	case BLS12381, "":
		return NewGnarkCurve(), nil
	case BLS12381Kyber:
		return NewKyberCurve(), nil
	default:
		return nil, ErrUnsupportedCurve.WithContext("curve", string(curveType))
	}
}

// Compressed encoding widths shared by both BLS12-381 backends.
const (
	ScalarLength     = 32
	ShortPointLength = 48
	LongPointLength  = 96
)

// SecureRandom generates cryptographically secure random bytes
func SecureRandom(size int) ([]byte, error) {
	bytes := make([]byte, size)
	if _, err := rand.Read(bytes); err != nil {
		return nil, fmt.Errorf("read %d random bytes: %w", size, err)
	}
	return bytes, nil
}
