package blsms

import (
	"encoding/hex"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// SignatureDST is the hash-to-curve domain separation tag for signatures in G1.
const SignatureDST = "BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_NUL_"

// GnarkCurve implements Curve for BLS12-381 using gnark-crypto
type GnarkCurve struct {
	dst []byte
	g2  bls12381.G2Affine
}

// NewGnarkCurve creates a new gnark-crypto BLS12-381 curve instance
func NewGnarkCurve() *GnarkCurve {
	_, _, _, g2 := bls12381.Generators()
	return &GnarkCurve{dst: []byte(SignatureDST), g2: g2}
}

func (c *GnarkCurve) Name() string        { return string(BLS12381) }
func (c *GnarkCurve) ScalarSize() int     { return fr.Bytes }
func (c *GnarkCurve) ShortPointSize() int { return bls12381.SizeOfG1AffineCompressed }
func (c *GnarkCurve) LongPointSize() int  { return bls12381.SizeOfG2AffineCompressed }

func (c *GnarkCurve) ScalarFromBytes(data []byte) (Scalar, error) {
	if len(data) != fr.Bytes {
		return nil, ErrInvalidEncoding.WithDetails("scalar length %d, want %d", len(data), fr.Bytes)
	}
	s := &GnarkScalar{}
	if err := s.inner.SetBytesCanonical(data); err != nil {
		return nil, ErrInvalidEncoding.WithCause(err)
	}
	return s, nil
}

func (c *GnarkCurve) ScalarFromUniformBytes(data []byte) Scalar {
	s := &GnarkScalar{}
	s.inner.SetBytes(data)
	return s
}

func (c *GnarkCurve) ScalarFromUint64(v uint64) Scalar {
	s := &GnarkScalar{}
	s.inner.SetUint64(v)
	return s
}

func (c *GnarkCurve) ScalarZero() Scalar {
	return &GnarkScalar{}
}

func (c *GnarkCurve) ShortPointFromBytes(data []byte) (ShortPoint, error) {
	if len(data) != bls12381.SizeOfG1AffineCompressed {
		return nil, ErrInvalidEncoding.WithDetails("G1 length %d, want %d", len(data), bls12381.SizeOfG1AffineCompressed)
	}
	p := &GnarkShortPoint{}
	if _, err := p.inner.SetBytes(data); err != nil {
		return nil, ErrInvalidEncoding.WithCause(err)
	}
	return p, nil
}

func (c *GnarkCurve) LongPointFromBytes(data []byte) (LongPoint, error) {
	if len(data) != bls12381.SizeOfG2AffineCompressed {
		return nil, ErrInvalidEncoding.WithDetails("G2 length %d, want %d", len(data), bls12381.SizeOfG2AffineCompressed)
	}
	p := &GnarkLongPoint{}
	if _, err := p.inner.SetBytes(data); err != nil {
		return nil, ErrInvalidEncoding.WithCause(err)
	}
	return p, nil
}

// The zero value of an affine point is the point at infinity.
func (c *GnarkCurve) ShortIdentity() ShortPoint { return &GnarkShortPoint{} }
func (c *GnarkCurve) LongIdentity() LongPoint   { return &GnarkLongPoint{} }

func (c *GnarkCurve) LongGenerator() LongPoint {
	return &GnarkLongPoint{inner: c.g2}
}

func (c *GnarkCurve) HashToShort(msg []byte) (ShortPoint, error) {
	h, err := bls12381.HashToG1(msg, c.dst)
	if err != nil {
		return nil, ErrHashToCurve.WithCause(err)
	}
	return &GnarkShortPoint{inner: h}, nil
}

// Sign returns H(msg)^secret.
func (c *GnarkCurve) Sign(secret Scalar, msg []byte) (ShortPoint, error) {
	h, err := c.HashToShort(msg)
	if err != nil {
		return nil, err
	}
	return h.Mul(secret), nil
}

// Verify checks e(g2, -sig) * e(public, H(msg)) == 1.
func (c *GnarkCurve) Verify(public LongPoint, msg []byte, sig ShortPoint) bool {
	if public == nil || sig == nil {
		return false
	}
	h, err := c.HashToShort(msg)
	if err != nil {
		return false
	}
	acc := c.NewPairing()
	acc.Accumulate(c.LongGenerator(), sig.Neg())
	acc.Accumulate(public, h)
	return acc.Finalize()
}

func (c *GnarkCurve) NewPairing() PairingAccumulator {
	return &gnarkPairing{}
}

// gnarkPairing collects pairs for a single Miller loop and final exponentiation.
type gnarkPairing struct {
	p []bls12381.G1Affine
	q []bls12381.G2Affine
}

func (a *gnarkPairing) Accumulate(q LongPoint, p ShortPoint) {
	a.p = append(a.p, p.(*GnarkShortPoint).inner)
	a.q = append(a.q, q.(*GnarkLongPoint).inner)
}

func (a *gnarkPairing) Finalize() bool {
	if len(a.p) == 0 {
		return true
	}
	ml, err := bls12381.MillerLoop(a.p, a.q)
	if err != nil {
		return false
	}
	gt := bls12381.FinalExponentiation(&ml)
	return gt.IsOne()
}

// GnarkScalar implements the Scalar interface
type GnarkScalar struct {
	inner fr.Element
}

func (s *GnarkScalar) Bytes() []byte {
	b := s.inner.Bytes()
	return b[:]
}

func (s *GnarkScalar) String() string {
	return hex.EncodeToString(s.Bytes())
}

func (s *GnarkScalar) Add(other Scalar) Scalar {
	result := &GnarkScalar{}
	result.inner.Add(&s.inner, &other.(*GnarkScalar).inner)
	return result
}

func (s *GnarkScalar) Mul(other Scalar) Scalar {
	result := &GnarkScalar{}
	result.inner.Mul(&s.inner, &other.(*GnarkScalar).inner)
	return result
}

func (s *GnarkScalar) Equal(other Scalar) bool {
	o, ok := other.(*GnarkScalar)
	return ok && s.inner.Equal(&o.inner)
}

func (s *GnarkScalar) IsZero() bool {
	return s.inner.IsZero()
}

func (s *GnarkScalar) Zeroize() {
	s.inner.SetZero()
}

func (s *GnarkScalar) bigInt() *big.Int {
	return s.inner.BigInt(new(big.Int))
}

// GnarkShortPoint implements ShortPoint over G1
type GnarkShortPoint struct {
	inner bls12381.G1Affine
}

func (p *GnarkShortPoint) Bytes() []byte {
	b := p.inner.Bytes()
	return b[:]
}

func (p *GnarkShortPoint) String() string {
	return hex.EncodeToString(p.Bytes())
}

func (p *GnarkShortPoint) Add(other ShortPoint) ShortPoint {
	var acc bls12381.G1Jac
	acc.FromAffine(&p.inner)
	acc.AddMixed(&other.(*GnarkShortPoint).inner)
	result := &GnarkShortPoint{}
	result.inner.FromJacobian(&acc)
	return result
}

func (p *GnarkShortPoint) Neg() ShortPoint {
	result := &GnarkShortPoint{}
	result.inner.Neg(&p.inner)
	return result
}

func (p *GnarkShortPoint) Mul(scalar Scalar) ShortPoint {
	result := &GnarkShortPoint{}
	result.inner.ScalarMultiplication(&p.inner, scalar.(*GnarkScalar).bigInt())
	return result
}

func (p *GnarkShortPoint) Equal(other ShortPoint) bool {
	o, ok := other.(*GnarkShortPoint)
	return ok && p.inner.Equal(&o.inner)
}

func (p *GnarkShortPoint) IsIdentity() bool {
	return p.inner.IsInfinity()
}

// GnarkLongPoint implements LongPoint over G2
type GnarkLongPoint struct {
	inner bls12381.G2Affine
}

func (p *GnarkLongPoint) Bytes() []byte {
	b := p.inner.Bytes()
	return b[:]
}

func (p *GnarkLongPoint) String() string {
	return hex.EncodeToString(p.Bytes())
}

func (p *GnarkLongPoint) Add(other LongPoint) LongPoint {
	var acc bls12381.G2Jac
	acc.FromAffine(&p.inner)
	acc.AddMixed(&other.(*GnarkLongPoint).inner)
	result := &GnarkLongPoint{}
	result.inner.FromJacobian(&acc)
	return result
}

func (p *GnarkLongPoint) Neg() LongPoint {
	result := &GnarkLongPoint{}
	result.inner.Neg(&p.inner)
	return result
}

func (p *GnarkLongPoint) Mul(scalar Scalar) LongPoint {
	result := &GnarkLongPoint{}
	result.inner.ScalarMultiplication(&p.inner, scalar.(*GnarkScalar).bigInt())
	return result
}

func (p *GnarkLongPoint) Equal(other LongPoint) bool {
	o, ok := other.(*GnarkLongPoint)
	return ok && p.inner.Equal(&o.inner)
}

func (p *GnarkLongPoint) IsIdentity() bool {
	return p.inner.IsInfinity()
}
