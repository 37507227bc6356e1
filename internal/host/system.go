package host

import (
	"os"
	"runtime"

	"github.com/jsl-lang/jsl/internal/value"
)

func init() {
	RegisterOp("system", "env", systemEnv)
	RegisterOp("system", "arch", systemArch)
	RegisterOp("system", "pid", systemPid)
}

func systemEnv(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, InvalidArgumentCount("system/env", 1, len(args))
	}
	name, ok := args[0].(value.String)
	if !ok {
		return nil, InvalidArgumentType("system/env", 0, "string", value.TypeName(args[0]))
	}
	v, ok := os.LookupEnv(string(name))
	if !ok {
		return value.NullValue, nil
	}
	return value.String(v), nil
}

func systemArch(args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return nil, InvalidArgumentCount("system/arch", 0, len(args))
	}
	return value.String(runtime.GOARCH), nil
}

func systemPid(args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return nil, InvalidArgumentCount("system/pid", 0, len(args))
	}
	return value.Number(os.Getpid()), nil
}
