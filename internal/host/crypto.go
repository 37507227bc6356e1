package host

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/jsl-lang/jsl/internal/value"
)

func init() {
	RegisterOp("crypto", "hash", cryptoHash)
	RegisterOp("crypto", "random", cryptoRandom)
}

// cryptoHash implements crypto/hash(s: string) -> {hash: "<sha256 hex>"}.
func cryptoHash(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, InvalidArgumentCount("crypto/hash", 1, len(args))
	}
	s, ok := args[0].(value.String)
	if !ok {
		return nil, InvalidArgumentType("crypto/hash", 0, "string", value.TypeName(args[0]))
	}
	sum := sha256.Sum256([]byte(s))
	return value.NewMap().Set("hash", value.String(hex.EncodeToString(sum[:]))), nil
}

// cryptoRandom implements crypto/random() -> {uuid: "<v4-shaped uuid>"},
// grounded on jsl/jsl_host_dispatcher.py's "util/random-uuid".
func cryptoRandom(args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return nil, InvalidArgumentCount("crypto/random", 0, len(args))
	}
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return nil, UnhandledHostError("crypto/random", err)
	}
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	uuid := fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
	return value.NewMap().Set("uuid", value.String(uuid)), nil
}
