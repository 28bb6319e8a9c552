package blsms

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/drand/kyber"
	bls12381 "github.com/drand/kyber-bls12381"
	"github.com/drand/kyber/pairing"
	"github.com/drand/kyber/sign"
	"github.com/drand/kyber/sign/bls"
)

type hashablePoint interface {
	Hash([]byte) kyber.Point
}

// KyberCurve implements Curve for BLS12-381 using drand/kyber. Single-signer
// signing and verification go through kyber's BLS scheme on G1.
type KyberCurve struct {
	suite  pairing.Suite
	scheme sign.Scheme
	// base is e(g1, g2); GT identity checks compare x*base against base.
	base kyber.Point
}

// NewKyberCurve creates a new kyber BLS12-381 curve instance
func NewKyberCurve() *KyberCurve {
	var suite pairing.Suite = bls12381.NewBLS12381Suite()
	return &KyberCurve{
		suite:  suite,
		scheme: bls.NewSchemeOnG1(suite),
		base:   suite.Pair(suite.G1().Point().Base(), suite.G2().Point().Base()),
	}
}

func (c *KyberCurve) Name() string        { return string(BLS12381Kyber) }
func (c *KyberCurve) ScalarSize() int     { return c.suite.G1().ScalarLen() }
func (c *KyberCurve) ShortPointSize() int { return c.suite.G1().PointLen() }
func (c *KyberCurve) LongPointSize() int  { return c.suite.G2().PointLen() }

func (c *KyberCurve) ScalarFromBytes(data []byte) (Scalar, error) {
	if len(data) != c.ScalarSize() {
		return nil, ErrInvalidEncoding.WithDetails("scalar length %d, want %d", len(data), c.ScalarSize())
	}
	s := c.suite.G1().Scalar()
	if err := s.UnmarshalBinary(data); err != nil {
		return nil, ErrInvalidEncoding.WithCause(err)
	}
	return &KyberScalar{inner: s}, nil
}

func (c *KyberCurve) ScalarFromUniformBytes(data []byte) Scalar {
	return &KyberScalar{inner: c.suite.G1().Scalar().SetBytes(data)}
}

func (c *KyberCurve) ScalarFromUint64(v uint64) Scalar {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return &KyberScalar{inner: c.suite.G1().Scalar().SetBytes(buf[:])}
}

func (c *KyberCurve) ScalarZero() Scalar {
	return &KyberScalar{inner: c.suite.G1().Scalar().Zero()}
}

func (c *KyberCurve) ShortPointFromBytes(data []byte) (ShortPoint, error) {
	if len(data) != c.ShortPointSize() {
		return nil, ErrInvalidEncoding.WithDetails("G1 length %d, want %d", len(data), c.ShortPointSize())
	}
	p := c.suite.G1().Point()
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, ErrInvalidEncoding.WithCause(err)
	}
	return &KyberShortPoint{inner: p}, nil
}

func (c *KyberCurve) LongPointFromBytes(data []byte) (LongPoint, error) {
	if len(data) != c.LongPointSize() {
		return nil, ErrInvalidEncoding.WithDetails("G2 length %d, want %d", len(data), c.LongPointSize())
	}
	p := c.suite.G2().Point()
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, ErrInvalidEncoding.WithCause(err)
	}
	return &KyberLongPoint{inner: p}, nil
}

func (c *KyberCurve) ShortIdentity() ShortPoint {
	return &KyberShortPoint{inner: c.suite.G1().Point().Null()}
}

func (c *KyberCurve) LongIdentity() LongPoint {
	return &KyberLongPoint{inner: c.suite.G2().Point().Null()}
}

func (c *KyberCurve) LongGenerator() LongPoint {
	return &KyberLongPoint{inner: c.suite.G2().Point().Base()}
}

func (c *KyberCurve) HashToShort(msg []byte) (ShortPoint, error) {
	hashable, ok := c.suite.G1().Point().(hashablePoint)
	if !ok {
		return nil, ErrHashToCurve.WithDetails("G1 point of %s is not hashable", c.Name())
	}
	return &KyberShortPoint{inner: hashable.Hash(msg)}, nil
}

func (c *KyberCurve) Sign(secret Scalar, msg []byte) (ShortPoint, error) {
	raw, err := c.scheme.Sign(secret.(*KyberScalar).inner, msg)
	if err != nil {
		return nil, ErrSigningFailed.WithCause(err)
	}
	return c.ShortPointFromBytes(raw)
}

func (c *KyberCurve) Verify(public LongPoint, msg []byte, sig ShortPoint) bool {
	if public == nil || sig == nil {
		return false
	}
	return c.scheme.Verify(public.(*KyberLongPoint).inner, msg, sig.Bytes()) == nil
}

// NewPairing returns an accumulator that multiplies per-pair pairings in GT.
// kyber exposes no shared Miller loop, so each term is fully exponentiated.
func (c *KyberCurve) NewPairing() PairingAccumulator {
	return &kyberPairing{suite: c.suite, base: c.base, acc: c.base.Clone()}
}

type kyberPairing struct {
	suite pairing.Suite
	base  kyber.Point
	acc   kyber.Point
}

func (a *kyberPairing) Accumulate(q LongPoint, p ShortPoint) {
	term := a.suite.Pair(p.(*KyberShortPoint).inner, q.(*KyberLongPoint).inner)
	a.acc = a.acc.Clone().Add(a.acc, term)
}

func (a *kyberPairing) Finalize() bool {
	return a.acc.Equal(a.base)
}

// KyberScalar implements the Scalar interface
type KyberScalar struct {
	inner kyber.Scalar
}

func (s *KyberScalar) Bytes() []byte {
	b, err := s.inner.MarshalBinary()
	if err != nil {
		return nil
	}
	return b
}

func (s *KyberScalar) String() string {
	return hex.EncodeToString(s.Bytes())
}

func (s *KyberScalar) Add(other Scalar) Scalar {
	return &KyberScalar{inner: s.inner.Clone().Add(s.inner, other.(*KyberScalar).inner)}
}

func (s *KyberScalar) Mul(other Scalar) Scalar {
	return &KyberScalar{inner: s.inner.Clone().Mul(s.inner, other.(*KyberScalar).inner)}
}

func (s *KyberScalar) Equal(other Scalar) bool {
	o, ok := other.(*KyberScalar)
	return ok && s.inner.Equal(o.inner)
}

func (s *KyberScalar) IsZero() bool {
	return s.inner.Equal(s.inner.Clone().Zero())
}

func (s *KyberScalar) Zeroize() {
	s.inner.Zero()
}

// KyberShortPoint implements ShortPoint over G1
type KyberShortPoint struct {
	inner kyber.Point
}

func (p *KyberShortPoint) Bytes() []byte {
	b, err := p.inner.MarshalBinary()
	if err != nil {
		return nil
	}
	return b
}

func (p *KyberShortPoint) String() string {
	return hex.EncodeToString(p.Bytes())
}

func (p *KyberShortPoint) Add(other ShortPoint) ShortPoint {
	return &KyberShortPoint{inner: p.inner.Clone().Add(p.inner, other.(*KyberShortPoint).inner)}
}

func (p *KyberShortPoint) Neg() ShortPoint {
	return &KyberShortPoint{inner: p.inner.Clone().Neg(p.inner)}
}

func (p *KyberShortPoint) Mul(scalar Scalar) ShortPoint {
	return &KyberShortPoint{inner: p.inner.Clone().Mul(scalar.(*KyberScalar).inner, p.inner)}
}

func (p *KyberShortPoint) Equal(other ShortPoint) bool {
	o, ok := other.(*KyberShortPoint)
	return ok && p.inner.Equal(o.inner)
}

func (p *KyberShortPoint) IsIdentity() bool {
	return p.inner.Equal(p.inner.Clone().Null())
}

// KyberLongPoint implements LongPoint over G2
type KyberLongPoint struct {
	inner kyber.Point
}

func (p *KyberLongPoint) Bytes() []byte {
	b, err := p.inner.MarshalBinary()
	if err != nil {
		return nil
	}
	return b
}

func (p *KyberLongPoint) String() string {
	return hex.EncodeToString(p.Bytes())
}

func (p *KyberLongPoint) Add(other LongPoint) LongPoint {
	return &KyberLongPoint{inner: p.inner.Clone().Add(p.inner, other.(*KyberLongPoint).inner)}
}

func (p *KyberLongPoint) Neg() LongPoint {
	return &KyberLongPoint{inner: p.inner.Clone().Neg(p.inner)}
}

func (p *KyberLongPoint) Mul(scalar Scalar) LongPoint {
	return &KyberLongPoint{inner: p.inner.Clone().Mul(scalar.(*KyberScalar).inner, p.inner)}
}

func (p *KyberLongPoint) Equal(other LongPoint) bool {
	o, ok := other.(*KyberLongPoint)
	return ok && p.inner.Equal(o.inner)
}

func (p *KyberLongPoint) IsIdentity() bool {
	return p.inner.Equal(p.inner.Clone().Null())
}
