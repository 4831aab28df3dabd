package ecc

import (
	"crypto/rand"
	"io"

	"github.com/smallyu/go-secp256k1-ecc/internal/crypto/curves"
	"github.com/smallyu/go-secp256k1-ecc/internal/logs"
)

// Engine runs each operation against a curve context obtained according to
// its ContextPolicy. Inputs are validated before a context is acquired, so
// malformed input never reaches the entropy source or the curve backend.
type Engine struct {
	cfg     Config
	curve   curves.Curve
	entropy io.Reader
	shared  *Context
}

// Option customizes an Engine.
type Option func(*Engine)

// WithEntropy replaces crypto/rand as the source of context randomization
// seeds. The reader must be safe for concurrent use under PolicyPerCall.
func WithEntropy(r io.Reader) Option {
	return func(e *Engine) {
		e.entropy = r
	}
}

// NewEngine validates cfg and builds an Engine. A nil cfg means
// DefaultConfig. Under PolicyShared the single context is created here, so
// an entropy failure is reported by NewEngine. The log level is process-wide
// and is left to the host program; see logs.SetLevelName.
func NewEngine(cfg *Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	curve, err := curves.ByName(cfg.Curve)
	if err != nil {
		return nil, wrapError("engine", ErrUnknownCurve, "unknown curve backend", err)
	}

	e := &Engine{
		cfg:     *cfg,
		curve:   curve,
		entropy: rand.Reader,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.cfg.ContextPolicy == PolicyShared {
		ctx, err := newContext(e.curve, e.cfg.Randomize, e.entropy)
		if err != nil {
			logs.Error("[ecc] shared context initialization failed: %s", kindOf(err))
			return nil, err
		}
		e.shared = ctx
	}

	logs.Debug("[ecc] engine ready: curve=%s policy=%s randomize=%v",
		curve.Name(), e.cfg.ContextPolicy, e.cfg.Randomize)
	return e, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) PubKeyGen(privKey []byte, compressed bool) ([]byte, error) {
	if err := precheckPubKeyGen(privKey); err != nil {
		return nil, e.observe(OpPubKeyGen, err)
	}
	ctx, err := e.context(OpPubKeyGen)
	if err != nil {
		return nil, err
	}
	out, err := ctx.PubKeyGen(privKey, compressed)
	return out, e.observe(OpPubKeyGen, err)
}

func (e *Engine) PubKeyTweakAdd(pubKey, tweak []byte) ([]byte, error) {
	if err := precheckPubKeyTweakAdd(pubKey, tweak); err != nil {
		return nil, e.observe(OpPubKeyTweakAdd, err)
	}
	ctx, err := e.context(OpPubKeyTweakAdd)
	if err != nil {
		return nil, err
	}
	out, err := ctx.PubKeyTweakAdd(pubKey, tweak)
	return out, e.observe(OpPubKeyTweakAdd, err)
}

func (e *Engine) PubKeyCheck(pubKey []byte) error {
	if err := precheckPubKeyCheck(pubKey); err != nil {
		return e.observe(OpPubKeyCheck, err)
	}
	ctx, err := e.context(OpPubKeyCheck)
	if err != nil {
		return err
	}
	return e.observe(OpPubKeyCheck, ctx.PubKeyCheck(pubKey))
}

func (e *Engine) SignMsgHash(digest, privKey []byte) ([]byte, int, error) {
	if err := precheckSignMsgHash(digest, privKey); err != nil {
		return nil, 0, e.observe(OpSignMsgHash, err)
	}
	ctx, err := e.context(OpSignMsgHash)
	if err != nil {
		return nil, 0, err
	}
	sig, recID, err := ctx.SignMsgHash(digest, privKey)
	return sig, recID, e.observe(OpSignMsgHash, err)
}

func (e *Engine) VerifySig(sig, digest, pubKey []byte) (bool, error) {
	if err := precheckVerifySig(sig, digest, pubKey); err != nil {
		return false, e.observe(OpVerifySig, err)
	}
	ctx, err := e.context(OpVerifySig)
	if err != nil {
		return false, err
	}
	ok, err := ctx.VerifySig(sig, digest, pubKey)
	return ok, e.observe(OpVerifySig, err)
}

func (e *Engine) PubKeyRecover(digest, sig []byte, recID int, compressed bool) ([]byte, error) {
	if err := precheckPubKeyRecover(digest, sig, recID); err != nil {
		return nil, e.observe(OpPubKeyRecover, err)
	}
	ctx, err := e.context(OpPubKeyRecover)
	if err != nil {
		return nil, err
	}
	out, err := ctx.PubKeyRecover(digest, sig, recID, compressed)
	return out, e.observe(OpPubKeyRecover, err)
}

// context returns the shared context, or a new one under PolicyPerCall.
func (e *Engine) context(op string) (*Context, error) {
	if e.shared != nil {
		return e.shared, nil
	}
	ctx, err := newContext(e.curve, e.cfg.Randomize, e.entropy)
	if err != nil {
		logs.Error("[ecc] %s: context initialization failed: %s", op, kindOf(err))
		return nil, err
	}
	logs.Trace("[ecc] %s: new context randomized=%v", op, e.cfg.Randomize)
	return ctx, nil
}

// observe logs a failed operation by kind only. Input errors are expected
// and go to Debug; failures the caller did not cause go to Warn.
func (e *Engine) observe(op string, err error) error {
	switch {
	case err == nil:
	case IsFatal(err):
		logs.Warn("[ecc] %s failed: %s", op, kindOf(err))
	default:
		logs.Debug("[ecc] %s failed: %s", op, kindOf(err))
	}
	return err
}
