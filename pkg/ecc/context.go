package ecc

import (
	"crypto/rand"
	"io"
	"sync"

	"github.com/smallyu/go-secp256k1-ecc/internal/crypto/curves"
)

const opContext = "context"

// SeedLen is the number of entropy bytes drawn to harden a context.
const SeedLen = 32

// Context is a curve context: a handle to a curve backend plus an optional
// generator blinding. When hardened, k*G is evaluated as (k+b)*G + (-b*G)
// for a secret random b, so the multiplication never runs on k directly.
//
// A Context is safe for concurrent use. Every operation holds its mutex,
// so goroutines sharing one Context are serialized.
type Context struct {
	mu    sync.Mutex
	curve curves.Curve

	// blind is b and unblind is -b*G. Both are nil for an unhardened context.
	blind   curves.Scalar
	unblind curves.Point
}

// NewContext creates a context for the named curve backend. If randomize is
// true the context is hardened with SeedLen bytes from crypto/rand.
func NewContext(curveName string, randomize bool) (*Context, error) {
	curve, err := curves.ByName(curveName)
	if err != nil {
		return nil, wrapError(opContext, ErrUnknownCurve, "unknown curve backend", err)
	}
	return newContext(curve, randomize, rand.Reader)
}

func newContext(curve curves.Curve, randomize bool, entropy io.Reader) (*Context, error) {
	ctx := &Context{curve: curve}
	if !randomize {
		return ctx, nil
	}

	var seed [SeedLen]byte
	defer clear(seed[:])
	if _, err := io.ReadFull(entropy, seed[:]); err != nil {
		return nil, wrapError(opContext, ErrContextInitializationFailed,
			"unable to read entropy for context randomization", err)
	}
	if err := ctx.randomize(seed[:]); err != nil {
		return nil, err
	}
	return ctx, nil
}

// Randomize replaces the context's blinding with one derived from a
// 32-byte seed. A failure leaves the previous blinding in place.
func (c *Context) Randomize(seed []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.randomize(seed)
}

// Randomized reports whether the context currently carries a blinding.
func (c *Context) Randomized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.blind != nil
}

// CurveName returns the name of the backend the context delegates to.
func (c *Context) CurveName() string {
	return c.curve.Name()
}

func (c *Context) randomize(seed []byte) error {
	if len(seed) != SeedLen {
		return makeError(opContext, ErrContextInitializationFailed, "randomization seed length not 32 bytes")
	}
	b, ok := c.curve.ScalarFromBytes(seed)
	if !ok || b.IsZero() {
		return makeError(opContext, ErrContextInitializationFailed, "randomization seed not a valid scalar")
	}
	nb := b.Negate()
	unblind := c.curve.ScalarBaseMult(nb)
	nb.Zero()
	if unblind.IsInfinity() {
		b.Zero()
		return makeError(opContext, ErrContextInitializationFailed, "randomization produced the point at infinity")
	}

	if c.blind != nil {
		c.blind.Zero()
	}
	c.blind = b
	c.unblind = unblind
	return nil
}

// baseMult computes k*G through the blinding if one is set. The caller
// must hold c.mu.
func (c *Context) baseMult(k curves.Scalar) curves.Point {
	if c.blind == nil {
		return c.curve.ScalarBaseMult(k)
	}
	kb := k.Add(c.blind)
	defer kb.Zero()
	return c.curve.Add(c.curve.ScalarBaseMult(kb), c.unblind)
}
