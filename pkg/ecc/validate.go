package ecc

import (
	"crypto/subtle"
)

// Serialized sizes of the byte-level inputs and outputs.
const (
	PrivateKeyLen         = 32
	DigestLen             = 32
	SignatureLen          = 64
	CompressedPubKeyLen   = 33
	UncompressedPubKeyLen = 65

	// MaxRecoveryID is the largest valid recovery id.
	MaxRecoveryID = 3
)

// SEC1 prefix bytes.
const (
	pubKeyEven         = 0x02
	pubKeyOdd          = 0x03
	pubKeyUncompressed = 0x04
)

// Labels used to say which scalar input failed a range check.
const (
	labelPrivateKey = "Private key"
	labelTweak      = "Tweak"
)

// groupOrder is n, the order of the secp256k1 generator, big-endian.
var groupOrder = [32]byte{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe,
	0xba, 0xae, 0xdc, 0xe6, 0xaf, 0x48, 0xa0, 0x3b,
	0xbf, 0xd2, 0x5e, 0x8c, 0xd0, 0x36, 0x41, 0x41,
}

var zero32 [32]byte

// checkPrivateScalar ensures b is a 32-byte big-endian integer in
// [1, n-1]. label names the input in the error. The comparison runs in
// constant time with respect to the value of b.
func checkPrivateScalar(op string, b []byte, label string) error {
	if len(b) != PrivateKeyLen {
		return makeError(op, ErrInvalidLength, label+" length not 32 bytes")
	}
	isZero := subtle.ConstantTimeCompare(b, zero32[:])
	if isZero|(1^lessThanOrder(b)) != 0 {
		return makeError(op, ErrOutOfRange, label+" not in allowable range")
	}
	return nil
}

// lessThanOrder returns 1 if the 32-byte big-endian b is less than n and
// 0 otherwise, without branching on b.
func lessThanOrder(b []byte) int {
	borrow := 0
	for i := len(groupOrder) - 1; i >= 0; i-- {
		diff := int(b[i]) - int(groupOrder[i]) - borrow
		borrow = (diff >> 8) & 1
	}
	return borrow
}

// checkPubKeyShape checks the length and prefix byte of a serialized
// public key without decoding its coordinates.
func checkPubKeyShape(op string, b []byte) error {
	switch len(b) {
	case CompressedPubKeyLen:
		if b[0] != pubKeyEven && b[0] != pubKeyOdd {
			return makeError(op, ErrInvalidEncoding, "Invalid first byte of compressed public key")
		}
	case UncompressedPubKeyLen:
		if b[0] != pubKeyUncompressed {
			return makeError(op, ErrInvalidEncoding, "Invalid first byte of uncompressed public key")
		}
	default:
		return makeError(op, ErrInvalidLength, "Serialized public key length not 33 or 65 bytes")
	}
	return nil
}

func checkRecoveryID(op string, id int) error {
	if id < 0 || id > MaxRecoveryID {
		return makeError(op, ErrOutOfRange, "Invalid recovery ID")
	}
	return nil
}

func checkDigest(op string, b []byte) error {
	if len(b) != DigestLen {
		return makeError(op, ErrInvalidLength, "Invalid message hash length")
	}
	return nil
}

func checkSignatureLen(op string, b []byte) error {
	if len(b) != SignatureLen {
		return makeError(op, ErrInvalidLength, "Invalid signature length")
	}
	return nil
}
