package curves

import (
	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// Btcec is the curve backend built on btcsuite's btcec/v2 package. btcec
// shares its field and group types with the decred package, so scalars and
// points are interchangeable between the two backends.
type Btcec struct{}

// NewBtcec returns a new instance of the btcec backend.
func NewBtcec() Curve {
	return &Btcec{}
}

func (c *Btcec) Name() string {
	return "btcec"
}

func (c *Btcec) ScalarFromBytes(b []byte) (Scalar, bool) {
	return scalarFromBytes(b)
}

func (c *Btcec) ScalarBaseMult(k Scalar) Point {
	var r btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(&mustScalar(k).s, &r)
	return newPoint(&r)
}

func (c *Btcec) Add(p, q Point) Point {
	var r btcec.JacobianPoint
	btcec.AddNonConst(&mustPoint(p).p, &mustPoint(q).p, &r)
	return newPoint(&r)
}

func (c *Btcec) ParsePoint(b []byte) (Point, error) {
	pub, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, err
	}
	return pointFromPubKey(pub)
}

func (c *Btcec) SignCompact(k Scalar, digest []byte) ([]byte, int, error) {
	priv := btcec.PrivKeyFromScalar(&mustScalar(k).s)
	defer priv.Zero()

	return splitCompact(btcecdsa.SignCompact(priv, digest, false))
}

func (c *Btcec) Verify(sig, digest []byte, p Point) bool {
	r, s, ok := parseRS(sig)
	if !ok {
		return false
	}
	pt := mustPoint(p)
	if pt.IsInfinity() {
		return false
	}
	pub := btcec.NewPublicKey(&pt.p.X, &pt.p.Y)
	return btcecdsa.NewSignature(r, s).Verify(digest, pub)
}

func (c *Btcec) RecoverCompact(sig []byte, recID int, digest []byte) (Point, error) {
	pub, _, err := btcecdsa.RecoverCompact(joinCompact(sig, recID), digest)
	if err != nil {
		return nil, err
	}
	return pointFromPubKey(pub)
}
