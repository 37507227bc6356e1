package host

import (
	"github.com/jsl-lang/jsl/internal/serialize"
	"github.com/jsl-lang/jsl/internal/value"
)

func init() {
	RegisterOp("json", "parse", jsonParse)
	RegisterOp("json", "stringify", jsonStringify)
}

func jsonParse(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, InvalidArgumentCount("json/parse", 1, len(args))
	}
	s, ok := args[0].(value.String)
	if !ok {
		return nil, InvalidArgumentType("json/parse", 0, "string", value.TypeName(args[0]))
	}
	v, err := serialize.JSONToValue(string(s))
	if err != nil {
		return nil, UnhandledHostError("json/parse", err)
	}
	return v, nil
}

func jsonStringify(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, InvalidArgumentCount("json/stringify", 1, len(args))
	}
	text, err := serialize.ValueToJSON(args[0])
	if err != nil {
		return nil, UnhandledHostError("json/stringify", err)
	}
	return value.String(text), nil
}
