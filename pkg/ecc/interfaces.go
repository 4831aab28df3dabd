package ecc

// Operations is the byte-level surface shared by Context and Engine. All
// inputs and outputs are raw bytes; none are retained after a call returns.
type Operations interface {
	// PubKeyGen derives a 33- or 65-byte public key from a 32-byte private key.
	PubKeyGen(privKey []byte, compressed bool) ([]byte, error)

	// PubKeyTweakAdd adds tweak*G to a public key, keeping its format.
	PubKeyTweakAdd(pubKey, tweak []byte) ([]byte, error)

	// PubKeyCheck validates a serialized public key.
	PubKeyCheck(pubKey []byte) error

	// SignMsgHash returns a 64-byte signature and its recovery id.
	SignMsgHash(digest, privKey []byte) ([]byte, int, error)

	// VerifySig reports whether a 64-byte signature is valid.
	VerifySig(sig, digest, pubKey []byte) (bool, error)

	// PubKeyRecover recovers a public key from a signature and recovery id.
	PubKeyRecover(digest, sig []byte, recID int, compressed bool) ([]byte, error)
}

var (
	_ Operations = (*Context)(nil)
	_ Operations = (*Engine)(nil)
)
