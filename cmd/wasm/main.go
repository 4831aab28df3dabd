//go:build js && wasm

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"syscall/js"

	"github.com/smallyu/go-secp256k1-ecc/internal/logs"
	"github.com/smallyu/go-secp256k1-ecc/pkg/ecc"
)

// engine serves every call. Under the default per-call policy each call
// gets its own randomized context.
var engine *ecc.Engine

func main() {
	c := make(chan struct{}, 0)

	cfg := ecc.DefaultConfig()
	if err := logs.SetLevelName(cfg.LogLevel); err != nil {
		fmt.Printf("Go secp256k1 WASM failed to initialize: %v\n", err)
		return
	}

	var err error
	engine, err = ecc.NewEngine(cfg)
	if err != nil {
		fmt.Printf("Go secp256k1 WASM failed to initialize: %v\n", err)
		return
	}

	logs.Info("[wasm] Go secp256k1 WASM initialized: curve=%s policy=%s", cfg.Curve, cfg.ContextPolicy)

	// Expose Go functions to JS
	js.Global().Set("GoSecp256k1", map[string]interface{}{
		"pubkeyGen":      js.FuncOf(PubKeyGen),
		"pubkeyTweakAdd": js.FuncOf(PubKeyTweakAdd),
		"pubkeyCheck":    js.FuncOf(PubKeyCheck),
		"signMsghash":    js.FuncOf(SignMsgHash),
		"verifySig":      js.FuncOf(VerifySig),
		"pubkeyRecover":  js.FuncOf(PubKeyRecover),
	})

	<-c
}

// PubKeyGen derives a public key.
// Arguments:
// 0: private key (hex)
// 1: compressed (bool)
// Returns:
// public key (hex) or an error string
func PubKeyGen(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (privKeyHex, compressed)"
	}
	priv, err := decodeHex(args[0], "privKey")
	if err != nil {
		return err.Error()
	}
	compressed, err := boolArg(args[1], "compressed")
	if err != nil {
		clear(priv)
		return err.Error()
	}
	pub, err := engine.PubKeyGen(priv, compressed)
	clear(priv)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return hex.EncodeToString(pub)
}

// PubKeyTweakAdd adds tweak*G to a public key.
// Arguments:
// 0: public key (hex)
// 1: tweak (hex)
// Returns:
// tweaked public key (hex) or an error string
func PubKeyTweakAdd(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (pubKeyHex, tweakHex)"
	}
	pub, err := decodeHex(args[0], "pubKey")
	if err != nil {
		return err.Error()
	}
	tweak, err := decodeHex(args[1], "tweak")
	if err != nil {
		return err.Error()
	}
	out, err := engine.PubKeyTweakAdd(pub, tweak)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return hex.EncodeToString(out)
}

// PubKeyCheck validates a public key.
// Arguments:
// 0: public key (hex)
// Returns:
// true or an error string
func PubKeyCheck(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return "error: expected 1 argument (pubKeyHex)"
	}
	pub, err := decodeHex(args[0], "pubKey")
	if err != nil {
		return err.Error()
	}
	if err := engine.PubKeyCheck(pub); err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return true
}

// SignMsgHash signs a 32-byte digest.
// Arguments:
// 0: digest (hex)
// 1: private key (hex)
// Returns:
// JSON string {"signature": hex, "recid": n} or an error string
func SignMsgHash(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (digestHex, privKeyHex)"
	}
	digest, err := decodeHex(args[0], "digest")
	if err != nil {
		return err.Error()
	}
	priv, err := decodeHex(args[1], "privKey")
	if err != nil {
		return err.Error()
	}
	sig, recID, err := engine.SignMsgHash(digest, priv)
	clear(priv)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}

	resp := map[string]interface{}{
		"signature": hex.EncodeToString(sig),
		"recid":     recID,
	}
	respBytes, _ := json.Marshal(resp)
	return string(respBytes)
}

// VerifySig verifies a 64-byte signature.
// Arguments:
// 0: signature (hex)
// 1: digest (hex)
// 2: public key (hex)
// Returns:
// bool or an error string for malformed input
func VerifySig(this js.Value, args []js.Value) interface{} {
	if len(args) != 3 {
		return "error: expected 3 arguments (sigHex, digestHex, pubKeyHex)"
	}
	sig, err := decodeHex(args[0], "signature")
	if err != nil {
		return err.Error()
	}
	digest, err := decodeHex(args[1], "digest")
	if err != nil {
		return err.Error()
	}
	pub, err := decodeHex(args[2], "pubKey")
	if err != nil {
		return err.Error()
	}
	ok, err := engine.VerifySig(sig, digest, pub)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return ok
}

// PubKeyRecover recovers the signing public key.
// Arguments:
// 0: digest (hex)
// 1: signature (hex)
// 2: recovery id (number)
// 3: compressed (bool)
// Returns:
// public key (hex) or an error string
func PubKeyRecover(this js.Value, args []js.Value) interface{} {
	if len(args) != 4 {
		return "error: expected 4 arguments (digestHex, sigHex, recid, compressed)"
	}
	digest, err := decodeHex(args[0], "digest")
	if err != nil {
		return err.Error()
	}
	sig, err := decodeHex(args[1], "signature")
	if err != nil {
		return err.Error()
	}
	recID, err := intArg(args[2], "recid")
	if err != nil {
		return err.Error()
	}
	compressed, err := boolArg(args[3], "compressed")
	if err != nil {
		return err.Error()
	}
	pub, err := engine.PubKeyRecover(digest, sig, recID, compressed)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return hex.EncodeToString(pub)
}

// Helpers

func decodeHex(v js.Value, name string) ([]byte, error) {
	if v.Type() != js.TypeString {
		return nil, fmt.Errorf("error: %s must be a hex string", name)
	}
	b, err := hex.DecodeString(v.String())
	if err != nil {
		return nil, fmt.Errorf("error: invalid hex %s", name)
	}
	return b, nil
}

// js.Value.Bool and js.Value.Int panic on any other JS type.

func boolArg(v js.Value, name string) (bool, error) {
	if v.Type() != js.TypeBoolean {
		return false, fmt.Errorf("error: %s must be a boolean", name)
	}
	return v.Bool(), nil
}

func intArg(v js.Value, name string) (int, error) {
	if v.Type() != js.TypeNumber {
		return 0, fmt.Errorf("error: %s must be a number", name)
	}
	f := v.Float()
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("error: %s must be an integer", name)
	}
	return int(f), nil
}
