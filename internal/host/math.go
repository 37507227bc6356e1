package host

import (
	"math/rand"

	"github.com/jsl-lang/jsl/internal/value"
)

func init() {
	RegisterOp("math", "random", mathRandom)
}

// mathRandom implements math/random(min: number, max: number) ->
// {random_int: int}, grounded on jsl/jsl_host_dispatcher.py's
// "util/random-int". Exposed as a host command (rather than a pure
// prelude builtin) because it is non-deterministic — it belongs on the
// impure side of the host boundary, unlike the pure math builtins
// (sin/cos/sqrt/...) in internal/prelude.
func mathRandom(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, InvalidArgumentCount("math/random", 2, len(args))
	}
	lo, ok := args[0].(value.Number)
	if !ok {
		return nil, InvalidArgumentType("math/random", 0, "number", value.TypeName(args[0]))
	}
	hi, ok := args[1].(value.Number)
	if !ok {
		return nil, InvalidArgumentType("math/random", 1, "number", value.TypeName(args[1]))
	}
	min, max := int(lo), int(hi)
	if max < min {
		min, max = max, min
	}
	n := min + rand.Intn(max-min+1)
	return value.NewMap().Set("random_int", value.Number(n)), nil
}
