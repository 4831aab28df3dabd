package ecc

import (
	"bytes"
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pubKeyVector holds a private key with its public key and the public key
// tweaked by 123456789, both compressed and uncompressed.
type pubKeyVector struct {
	priv         string
	compressed   string
	uncompressed string
	tweakedC     string
	tweakedU     string
}

var pubKeyVectors = []pubKeyVector{
	{
		priv:         "beadcafebeadcafebeadcafebeadcafebeadcafebeadcafebeadcafebeadcafe",
		compressed:   "02a4c2eeecf9bf03e3175ff1b5ef55b091160ce13d614b0ec8f33ff5c2305bae36",
		uncompressed: "04a4c2eeecf9bf03e3175ff1b5ef55b091160ce13d614b0ec8f33ff5c2305bae368aa96440ab6a4a515e6eec02ab0652d8129ba132d767254971b2e870057fc7aa",
		tweakedC:     "021736fd0d8c2216106967cb599ee43041c907ab5088f91c192cfe7edb649a9a20",
		tweakedU:     "041736fd0d8c2216106967cb599ee43041c907ab5088f91c192cfe7edb649a9a206ef9459375f46e876c03556c98133f8797c28699d0a06d29acdae6835762106a",
	},
	{
		priv:         "0000000000000000000000000000000000000000000000000000000000000001",
		compressed:   "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		uncompressed: "0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8",
		tweakedC:     "03bdd8bc0008173fc0da77c82d758ac6eafbbbef1fab9d83be51d2f0c7d44cbe21",
		tweakedU:     "04bdd8bc0008173fc0da77c82d758ac6eafbbbef1fab9d83be51d2f0c7d44cbe21a6c5edaf5f8c098889b411448dbebe7ac90879c7c63cc2836dae399baa9b4e79",
	},
	{
		priv:         "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140",
		compressed:   "0379be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		uncompressed: "0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798b7c52588d95c3b9aa25b0403f1eef75702e84bb7597aabe663b82f6f04ef2777",
		tweakedC:     "0233ecc2f90dda20f4a6ff9e4447ebc59b809b0176a448f811b79bd0e28860d9bc",
		tweakedU:     "0433ecc2f90dda20f4a6ff9e4447ebc59b809b0176a448f811b79bd0e28860d9bc879c4b05b9cda9163e1dc6c8a85cf50f98b7418eab103acf3556dc1762aab83c",
	},
}

func TestPubKeyGenVectors(t *testing.T) {
	forEachContext(t, func(t *testing.T, ctx *Context) {
		for _, v := range pubKeyVectors {
			priv := mustHex(t, v.priv)

			pub, err := ctx.PubKeyGen(priv, true)
			require.NoError(t, err)
			assert.Equal(t, v.compressed, hex.EncodeToString(pub))
			assert.NoError(t, ctx.PubKeyCheck(pub))

			pub, err = ctx.PubKeyGen(priv, false)
			require.NoError(t, err)
			assert.Equal(t, v.uncompressed, hex.EncodeToString(pub))
			assert.NoError(t, ctx.PubKeyCheck(pub))
		}
	})
}

func TestPubKeyTweakAddVectors(t *testing.T) {
	tweak := scalarBytes(123456789)

	forEachContext(t, func(t *testing.T, ctx *Context) {
		for _, v := range pubKeyVectors {
			got, err := ctx.PubKeyTweakAdd(mustHex(t, v.compressed), tweak)
			require.NoError(t, err)
			assert.Len(t, got, CompressedPubKeyLen)
			assert.Equal(t, v.tweakedC, hex.EncodeToString(got))
			assert.NoError(t, ctx.PubKeyCheck(got))

			got, err = ctx.PubKeyTweakAdd(mustHex(t, v.uncompressed), tweak)
			require.NoError(t, err)
			assert.Len(t, got, UncompressedPubKeyLen)
			assert.Equal(t, v.tweakedU, hex.EncodeToString(got))
			assert.NoError(t, ctx.PubKeyCheck(got))
		}
	})
}

// TestPubKeyTweakAddAgainstAffine cross-checks tweak addition with the
// affine arithmetic of the elliptic.Curve adaptor.
func TestPubKeyTweakAddAgainstAffine(t *testing.T) {
	curve := secp256k1.S256()
	ctx, err := NewContext("", true)
	require.NoError(t, err)

	for _, k := range []int64{2, 7, 1 << 40} {
		for _, tw := range []int64{1, 3, 123456789} {
			px, py := curve.ScalarBaseMult(scalarBytes(k))
			tx, ty := curve.ScalarBaseMult(scalarBytes(tw))
			wx, wy := curve.Add(px, py, tx, ty)

			pub, err := ctx.PubKeyGen(scalarBytes(k), false)
			require.NoError(t, err)
			got, err := ctx.PubKeyTweakAdd(pub, scalarBytes(tw))
			require.NoError(t, err)

			assert.Equal(t, 0, wx.Cmp(new(big.Int).SetBytes(got[1:33])), "k=%d t=%d", k, tw)
			assert.Equal(t, 0, wy.Cmp(new(big.Int).SetBytes(got[33:])), "k=%d t=%d", k, tw)

			// Tweaking by t equals generating from k+t.
			want, err := ctx.PubKeyGen(scalarBytes(k+tw), false)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	}
}

func TestPubKeyGenErrors(t *testing.T) {
	tests := []struct {
		name string
		priv []byte
		kind ErrorKind
	}{
		{"zero", make([]byte, 32), ErrOutOfRange},
		{"n", orderPlus(0), ErrOutOfRange},
		{"n+1", orderPlus(1), ErrOutOfRange},
		{"all ff", bytes.Repeat([]byte{0xff}, 32), ErrOutOfRange},
		{"31 bytes", bytes.Repeat([]byte{0xab}, 31), ErrInvalidLength},
		{"33 bytes", bytes.Repeat([]byte{0xab}, 33), ErrInvalidLength},
	}

	forEachContext(t, func(t *testing.T, ctx *Context) {
		for _, test := range tests {
			for _, compressed := range []bool{true, false} {
				pub, err := ctx.PubKeyGen(test.priv, compressed)
				require.Error(t, err, test.name)
				assert.Nil(t, pub)
				assert.True(t, errors.Is(err, test.kind), "%s: got %v", test.name, err)
			}
		}
	})
}

func TestPubKeyTweakAddErrors(t *testing.T) {
	ctx, err := NewContext("", true)
	require.NoError(t, err)

	pub, err := ctx.PubKeyGen(mustHex(t, pubKeyVectors[0].priv), true)
	require.NoError(t, err)

	tests := []struct {
		name  string
		pub   []byte
		tweak []byte
		kind  ErrorKind
		msg   string
	}{
		{"zero tweak", pub, make([]byte, 32), ErrOutOfRange, "Tweak not in allowable range"},
		{"tweak n", pub, orderPlus(0), ErrOutOfRange, "Tweak not in allowable range"},
		{"short tweak", pub, make([]byte, 31), ErrInvalidLength, "Tweak length not 32 bytes"},
		{"64-byte pubkey", bytes.Repeat([]byte{0x03}, 64), scalarBytes(1), ErrInvalidLength, "public key length"},
		{"bad prefix", bytes.Repeat([]byte{0x04}, 33), scalarBytes(1), ErrInvalidEncoding, "Invalid first byte"},
		// Shape is checked before the tweak.
		{"bad pubkey and tweak", []byte{}, make([]byte, 32), ErrInvalidLength, "public key length"},
		{"not on curve", append([]byte{0x02}, bytes.Repeat([]byte{0xff}, 32)...), scalarBytes(1), ErrInvalidEncoding, "Failed to parse public key"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ctx.PubKeyTweakAdd(test.pub, test.tweak)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, test.kind), "got %v", err)
			assert.Contains(t, err.Error(), test.msg)
		})
	}
}

func TestPubKeyTweakAddResultAtInfinity(t *testing.T) {
	// P = G and t = n-1 gives P + t*G = n*G.
	forEachContext(t, func(t *testing.T, ctx *Context) {
		for _, compressed := range []bool{true, false} {
			pub, err := ctx.PubKeyGen(scalarBytes(1), compressed)
			require.NoError(t, err)

			got, err := ctx.PubKeyTweakAdd(pub, orderPlus(-1))
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, ErrResultAtInfinity)
			assert.False(t, errors.Is(err, ErrPointAtInfinity))
		}
	})
}

func TestPubKeyCheck(t *testing.T) {
	notOnCurve := append([]byte{0x02}, bytes.Repeat([]byte{0xff}, 32)...)
	offCurveUncompressed := mustHex(t, pubKeyVectors[0].uncompressed)
	offCurveUncompressed[64] ^= 0x01

	tests := []struct {
		name string
		pub  []byte
		kind ErrorKind
	}{
		{"04 prefix with 33 bytes", bytes.Repeat([]byte{0x04}, 33), ErrInvalidEncoding},
		{"03 prefix with 65 bytes", bytes.Repeat([]byte{0x03}, 65), ErrInvalidEncoding},
		{"02 prefix with 65 bytes", bytes.Repeat([]byte{0x02}, 65), ErrInvalidEncoding},
		{"64 bytes", bytes.Repeat([]byte{0x03}, 64), ErrInvalidLength},
		{"empty", []byte{}, ErrInvalidLength},
		{"x not in field", notOnCurve, ErrInvalidEncoding},
		{"y off curve", offCurveUncompressed, ErrInvalidEncoding},
	}

	forEachContext(t, func(t *testing.T, ctx *Context) {
		for _, v := range pubKeyVectors {
			assert.NoError(t, ctx.PubKeyCheck(mustHex(t, v.compressed)))
			assert.NoError(t, ctx.PubKeyCheck(mustHex(t, v.uncompressed)))
		}
		for _, test := range tests {
			err := ctx.PubKeyCheck(test.pub)
			require.Error(t, err, test.name)
			assert.True(t, errors.Is(err, test.kind), "%s: got %v", test.name, err)
		}
	})
}

func TestPubKeyGenDoesNotRetainInput(t *testing.T) {
	ctx, err := NewContext("", true)
	require.NoError(t, err)

	priv := mustHex(t, pubKeyVectors[0].priv)
	pub, err := ctx.PubKeyGen(priv, true)
	require.NoError(t, err)

	// Mutating the caller's buffers after the call has no effect on later
	// results.
	copy(priv, scalarBytes(1))
	pub[1] ^= 0xff

	again, err := ctx.PubKeyGen(mustHex(t, pubKeyVectors[0].priv), true)
	require.NoError(t, err)
	assert.Equal(t, pubKeyVectors[0].compressed, hex.EncodeToString(again))
}
