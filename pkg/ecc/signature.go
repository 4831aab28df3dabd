package ecc

import (
	"github.com/smallyu/go-secp256k1-ecc/internal/crypto/curves"
)

const (
	OpSignMsgHash   = "sign_msghash"
	OpVerifySig     = "verify_sig"
	OpPubKeyRecover = "pubkey_recover"
)

// SignMsgHash signs a 32-byte digest with a 32-byte private key. It returns
// the 64-byte r || s signature and the recovery id in [0, 3]. Nonces are
// derived per RFC6979, so equal inputs give equal outputs, and s is always
// in the lower half of the group order.
func (c *Context) SignMsgHash(digest, privKey []byte) ([]byte, int, error) {
	if err := precheckSignMsgHash(digest, privKey); err != nil {
		return nil, 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	k, err := c.scalar(OpSignMsgHash, privKey, labelPrivateKey)
	if err != nil {
		return nil, 0, err
	}
	defer k.Zero()

	return c.signRecoverable(digest, k)
}

// VerifySig reports whether the 64-byte r || s signature over digest is
// valid for pubKey. A signature that does not verify is not an error;
// errors are returned only for malformed inputs.
func (c *Context) VerifySig(sig, digest, pubKey []byte) (bool, error) {
	if err := precheckVerifySig(sig, digest, pubKey); err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.parsePublicKey(OpVerifySig, pubKey)
	if err != nil {
		return false, err
	}
	return c.verify(sig, digest, p), nil
}

// PubKeyRecover recovers the public key that produced sig over digest with
// the given recovery id, encoded compressed or uncompressed.
func (c *Context) PubKeyRecover(digest, sig []byte, recID int, compressed bool) ([]byte, error) {
	if err := precheckPubKeyRecover(digest, sig, recID); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.recoverPublicKey(digest, sig, recID)
	if err != nil {
		return nil, err
	}
	return serializePublicKey(p, compressed), nil
}

func precheckSignMsgHash(digest, privKey []byte) error {
	if err := checkDigest(OpSignMsgHash, digest); err != nil {
		return err
	}
	return checkPrivateScalar(OpSignMsgHash, privKey, labelPrivateKey)
}

func precheckVerifySig(sig, digest, pubKey []byte) error {
	if err := checkSignatureLen(OpVerifySig, sig); err != nil {
		return err
	}
	if err := checkDigest(OpVerifySig, digest); err != nil {
		return err
	}
	return checkPubKeyShape(OpVerifySig, pubKey)
}

func precheckPubKeyRecover(digest, sig []byte, recID int) error {
	if err := checkRecoveryID(OpPubKeyRecover, recID); err != nil {
		return err
	}
	if err := checkSignatureLen(OpPubKeyRecover, sig); err != nil {
		return err
	}
	return checkDigest(OpPubKeyRecover, digest)
}

// signRecoverable signs a validated digest. The caller must hold c.mu.
func (c *Context) signRecoverable(digest []byte, k curves.Scalar) ([]byte, int, error) {
	sig, recID, err := c.curve.SignCompact(k, digest)
	if err != nil {
		return nil, 0, wrapError(OpSignMsgHash, ErrSigningFailed, "signing failed", err)
	}
	if len(sig) != SignatureLen || checkRecoveryID(OpSignMsgHash, recID) != nil {
		return nil, 0, makeError(OpSignMsgHash, ErrSigningFailed, "signer returned a malformed signature")
	}
	return sig, recID, nil
}

// verify checks a validated signature. The caller must hold c.mu.
func (c *Context) verify(sig, digest []byte, p curves.Point) bool {
	return c.curve.Verify(sig, digest, p)
}

// recoverPublicKey recovers a point from validated inputs. The caller must
// hold c.mu.
func (c *Context) recoverPublicKey(digest, sig []byte, recID int) (curves.Point, error) {
	p, err := c.curve.RecoverCompact(sig, recID, digest)
	if err != nil {
		return nil, wrapError(OpPubKeyRecover, ErrRecoveryFailed, "unable to recover public key", err)
	}
	if p.IsInfinity() {
		return nil, makeError(OpPubKeyRecover, ErrRecoveryFailed, "recovered the point at infinity")
	}
	return p, nil
}
