package ecc

import (
	"github.com/smallyu/go-secp256k1-ecc/internal/crypto/curves"
)

// Operation names used in errors and logs.
const (
	OpPubKeyGen      = "pubkey_gen"
	OpPubKeyTweakAdd = "pubkey_tweak_add"
	OpPubKeyCheck    = "pubkey_check"
)

// PubKeyGen derives the public key for a 32-byte private key and returns its
// compressed (33-byte) or uncompressed (65-byte) encoding.
func (c *Context) PubKeyGen(privKey []byte, compressed bool) ([]byte, error) {
	if err := precheckPubKeyGen(privKey); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	k, err := c.scalar(OpPubKeyGen, privKey, labelPrivateKey)
	if err != nil {
		return nil, err
	}
	defer k.Zero()

	p, err := c.derivePublicPoint(OpPubKeyGen, k)
	if err != nil {
		return nil, err
	}
	return serializePublicKey(p, compressed), nil
}

// PubKeyTweakAdd returns pubKey + tweak*G, encoded in the same format
// (compressed or uncompressed) as pubKey.
func (c *Context) PubKeyTweakAdd(pubKey, tweak []byte) ([]byte, error) {
	if err := precheckPubKeyTweakAdd(pubKey, tweak); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.parsePublicKey(OpPubKeyTweakAdd, pubKey)
	if err != nil {
		return nil, err
	}
	t, err := c.scalar(OpPubKeyTweakAdd, tweak, labelTweak)
	if err != nil {
		return nil, err
	}
	defer t.Zero()

	sum, err := c.tweakAddPublicKey(OpPubKeyTweakAdd, p, t)
	if err != nil {
		return nil, err
	}
	return serializePublicKey(sum, len(pubKey) == CompressedPubKeyLen), nil
}

// PubKeyCheck returns nil if pubKey is a well-formed encoding of a point on
// the curve other than the point at infinity.
func (c *Context) PubKeyCheck(pubKey []byte) error {
	if err := precheckPubKeyCheck(pubKey); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.parsePublicKey(OpPubKeyCheck, pubKey)
	return err
}

func precheckPubKeyGen(privKey []byte) error {
	return checkPrivateScalar(OpPubKeyGen, privKey, labelPrivateKey)
}

func precheckPubKeyTweakAdd(pubKey, tweak []byte) error {
	if err := checkPubKeyShape(OpPubKeyTweakAdd, pubKey); err != nil {
		return err
	}
	return checkPrivateScalar(OpPubKeyTweakAdd, tweak, labelTweak)
}

func precheckPubKeyCheck(pubKey []byte) error {
	return checkPubKeyShape(OpPubKeyCheck, pubKey)
}

// scalar decodes an already range-checked scalar.
func (c *Context) scalar(op string, b []byte, label string) (curves.Scalar, error) {
	k, ok := c.curve.ScalarFromBytes(b)
	if !ok || k.IsZero() {
		return nil, makeError(op, ErrOutOfRange, label+" not in allowable range")
	}
	return k, nil
}

// derivePublicPoint computes k*G. The caller must hold c.mu.
func (c *Context) derivePublicPoint(op string, k curves.Scalar) (curves.Point, error) {
	p := c.baseMult(k)
	if p.IsInfinity() {
		return nil, makeError(op, ErrKeyDerivationFailed, "public key derivation produced the point at infinity")
	}
	return p, nil
}

// parsePublicKey decodes a shape-checked encoding. The caller must hold c.mu.
func (c *Context) parsePublicKey(op string, b []byte) (curves.Point, error) {
	if err := checkPubKeyShape(op, b); err != nil {
		return nil, err
	}
	p, err := c.curve.ParsePoint(b)
	if err != nil {
		return nil, wrapError(op, ErrInvalidEncoding, "Failed to parse public key", err)
	}
	if p.IsInfinity() {
		return nil, makeError(op, ErrPointAtInfinity, "public key is the point at infinity")
	}
	return p, nil
}

// tweakAddPublicKey computes p + t*G. The caller must hold c.mu.
func (c *Context) tweakAddPublicKey(op string, p curves.Point, t curves.Scalar) (curves.Point, error) {
	tG, err := c.derivePublicPoint(op, t)
	if err != nil {
		return nil, err
	}
	sum := c.curve.Add(p, tG)
	if sum.IsInfinity() {
		return nil, makeError(op, ErrResultAtInfinity, "tweaked public key is the point at infinity")
	}
	return sum, nil
}

func serializePublicKey(p curves.Point, compressed bool) []byte {
	if compressed {
		return p.SerializeCompressed()
	}
	return p.SerializeUncompressed()
}
