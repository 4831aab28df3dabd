package curves

import (
	"fmt"
	"sort"
)

// Curve defines the secp256k1 operations the ecc layer delegates to a
// curve-arithmetic library. Implementations perform no input shape checks
// beyond what the underlying library does; callers validate first.
type Curve interface {
	// Name returns the registry name of the backend.
	Name() string

	// ScalarFromBytes decodes a 32-byte big-endian scalar. ok is false when
	// the value is not less than the group order.
	ScalarFromBytes(b []byte) (s Scalar, ok bool)

	// ScalarBaseMult computes k * G.
	ScalarBaseMult(k Scalar) Point

	// Add combines two points. Either input may be the point at infinity.
	Add(p, q Point) Point

	// ParsePoint decodes a SEC1 compressed or uncompressed encoding.
	ParsePoint(b []byte) (Point, error)

	// SignCompact produces a deterministic (RFC6979) low-S signature over a
	// 32-byte digest as 64 bytes r || s together with its recovery id.
	SignCompact(k Scalar, digest []byte) (sig []byte, recID int, err error)

	// Verify reports whether the 64-byte r || s signature is valid for digest
	// under p. Zero, overflowing and high-S components never verify.
	Verify(sig, digest []byte, p Point) bool

	// RecoverCompact recovers the signing point from a 64-byte r || s
	// signature, its recovery id and the digest.
	RecoverCompact(sig []byte, recID int, digest []byte) (Point, error)
}

// Scalar represents a value in the secp256k1 scalar field.
type Scalar interface {
	// Bytes returns the 32-byte big-endian encoding.
	Bytes() [32]byte

	IsZero() bool

	// Add returns s + o mod n. The receiver is not modified.
	Add(o Scalar) Scalar

	// Negate returns -s mod n. The receiver is not modified.
	Negate() Scalar

	// Zero clears the scalar in place.
	Zero()
}

// Point represents a point on secp256k1 in affine form, or the point at
// infinity.
type Point interface {
	SerializeCompressed() []byte
	SerializeUncompressed() []byte
	IsInfinity() bool
	Equal(o Point) bool
}

// DefaultCurve is the backend used when no name is configured.
const DefaultCurve = "secp256k1"

var registry = map[string]func() Curve{
	DefaultCurve: NewSecp256k1,
	"decred":     NewSecp256k1,
	"btcec":      NewBtcec,
}

// ByName returns a new instance of the named backend.
func ByName(name string) (Curve, error) {
	if name == "" {
		name = DefaultCurve
	}
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown curve backend %q", name)
	}
	return ctor(), nil
}

// Names lists the registered backend names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
