package curves

import (
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// compactSigMagicOffset is the header offset used by the compact
// signature format of both decred and btcec.
const compactSigMagicOffset = 27

var (
	errBadRecoveryCode = errors.New("curves: signer produced an invalid recovery code")
	errInfinity        = errors.New("curves: point at infinity")
)

// Secp256k1 is the curve backend built directly on the decred secp256k1
// package.
type Secp256k1 struct{}

// NewSecp256k1 returns a new instance of the decred backend.
func NewSecp256k1() Curve {
	return &Secp256k1{}
}

func (c *Secp256k1) Name() string {
	return DefaultCurve
}

func (c *Secp256k1) ScalarFromBytes(b []byte) (Scalar, bool) {
	return scalarFromBytes(b)
}

func (c *Secp256k1) ScalarBaseMult(k Scalar) Point {
	var r secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&mustScalar(k).s, &r)
	return newPoint(&r)
}

func (c *Secp256k1) Add(p, q Point) Point {
	var r secp256k1.JacobianPoint
	secp256k1.AddNonConst(&mustPoint(p).p, &mustPoint(q).p, &r)
	return newPoint(&r)
}

func (c *Secp256k1) ParsePoint(b []byte) (Point, error) {
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, err
	}
	return pointFromPubKey(pub)
}

func (c *Secp256k1) SignCompact(k Scalar, digest []byte) ([]byte, int, error) {
	priv := secp256k1.NewPrivateKey(&mustScalar(k).s)
	defer priv.Zero()

	return splitCompact(ecdsa.SignCompact(priv, digest, false))
}

func (c *Secp256k1) Verify(sig, digest []byte, p Point) bool {
	r, s, ok := parseRS(sig)
	if !ok {
		return false
	}
	pt := mustPoint(p)
	if pt.IsInfinity() {
		return false
	}
	pub := secp256k1.NewPublicKey(&pt.p.X, &pt.p.Y)
	return ecdsa.NewSignature(r, s).Verify(digest, pub)
}

func (c *Secp256k1) RecoverCompact(sig []byte, recID int, digest []byte) (Point, error) {
	pub, _, err := ecdsa.RecoverCompact(joinCompact(sig, recID), digest)
	if err != nil {
		return nil, err
	}
	return pointFromPubKey(pub)
}

// splitCompact converts the 65-byte header || r || s compact format into
// r || s and a recovery id in [0, 3].
func splitCompact(compact []byte) ([]byte, int, error) {
	if len(compact) != 65 {
		return nil, 0, errBadRecoveryCode
	}
	code := int(compact[0]) - compactSigMagicOffset
	if code < 0 || code > 3 {
		return nil, 0, errBadRecoveryCode
	}
	sig := make([]byte, 64)
	copy(sig, compact[1:])
	return sig, code, nil
}

// joinCompact is the inverse of splitCompact. The compressed-key flag is
// left clear; recovery does not depend on it.
func joinCompact(sig []byte, recID int) []byte {
	var compact [65]byte
	compact[0] = byte(compactSigMagicOffset + recID)
	copy(compact[1:], sig)
	return compact[:]
}

// parseRS decodes r and s, rejecting zero, overflowing and high-S values.
func parseRS(sig []byte) (*secp256k1.ModNScalar, *secp256k1.ModNScalar, bool) {
	if len(sig) != 64 {
		return nil, nil, false
	}
	var r, s secp256k1.ModNScalar
	if r.SetByteSlice(sig[:32]) || r.IsZero() {
		return nil, nil, false
	}
	if s.SetByteSlice(sig[32:]) || s.IsZero() || s.IsOverHalfOrder() {
		return nil, nil, false
	}
	return &r, &s, true
}

type scalar struct {
	s secp256k1.ModNScalar
}

func scalarFromBytes(b []byte) (Scalar, bool) {
	if len(b) != 32 {
		return nil, false
	}
	sc := &scalar{}
	if overflow := sc.s.SetByteSlice(b); overflow {
		sc.s.Zero()
		return nil, false
	}
	return sc, true
}

func mustScalar(k Scalar) *scalar {
	s, ok := k.(*scalar)
	if !ok {
		panic("curves: scalar type mismatch")
	}
	return s
}

func (s *scalar) Bytes() [32]byte {
	return s.s.Bytes()
}

func (s *scalar) IsZero() bool {
	return s.s.IsZero()
}

func (s *scalar) Add(o Scalar) Scalar {
	r := &scalar{}
	r.s.Add2(&s.s, &mustScalar(o).s)
	return r
}

func (s *scalar) Negate() Scalar {
	r := &scalar{}
	r.s.NegateVal(&s.s)
	return r
}

func (s *scalar) Zero() {
	s.s.Zero()
}

// point holds an affine point with Z = 1, or all-zero coordinates for the
// point at infinity.
type point struct {
	p secp256k1.JacobianPoint
}

func newPoint(j *secp256k1.JacobianPoint) *point {
	pt := &point{}
	if isInfinity(j) {
		return pt
	}
	pt.p.Set(j)
	pt.p.ToAffine()
	return pt
}

func pointFromPubKey(pub *secp256k1.PublicKey) (Point, error) {
	pt := &point{}
	pub.AsJacobian(&pt.p)
	if isInfinity(&pt.p) {
		return nil, errInfinity
	}
	return pt, nil
}

func isInfinity(j *secp256k1.JacobianPoint) bool {
	var x, y, z secp256k1.FieldVal
	x.Set(&j.X).Normalize()
	y.Set(&j.Y).Normalize()
	z.Set(&j.Z).Normalize()
	return z.IsZero() || (x.IsZero() && y.IsZero())
}

func mustPoint(p Point) *point {
	pt, ok := p.(*point)
	if !ok {
		panic("curves: point type mismatch")
	}
	return pt
}

func (p *point) SerializeCompressed() []byte {
	if p.IsInfinity() {
		return nil
	}
	return secp256k1.NewPublicKey(&p.p.X, &p.p.Y).SerializeCompressed()
}

func (p *point) SerializeUncompressed() []byte {
	if p.IsInfinity() {
		return nil
	}
	return secp256k1.NewPublicKey(&p.p.X, &p.p.Y).SerializeUncompressed()
}

func (p *point) IsInfinity() bool {
	return isInfinity(&p.p)
}

func (p *point) Equal(o Point) bool {
	q := mustPoint(o)
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() == q.IsInfinity()
	}
	return p.p.X.Equals(&q.p.X) && p.p.Y.Equals(&q.p.Y)
}
