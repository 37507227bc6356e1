package host

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jsl-lang/jsl/internal/value"
)

// Grounded on
// _examples/sunholo-data-ailang/internal/effects/io.go's print/println/
// readLine trio, adapted from the teacher's capability-gated EffContext
// call convention to this package's flat Op signature; the "io" namespace
// grant itself is checked once in Dispatch (capability.go/context.go)
// rather than per-op here.
func init() {
	RegisterOp("io", "print", ioPrint)
	RegisterOp("io", "println", ioPrintln)
	RegisterOp("io", "readLine", ioReadLine)
}

var stdin = bufio.NewReader(os.Stdin)

func ioPrint(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, InvalidArgumentCount("io/print", 1, len(args))
	}
	s, ok := args[0].(value.String)
	if !ok {
		return nil, InvalidArgumentType("io/print", 0, "string", value.TypeName(args[0]))
	}
	fmt.Print(string(s))
	return value.NullValue, nil
}

func ioPrintln(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, InvalidArgumentCount("io/println", 1, len(args))
	}
	s, ok := args[0].(value.String)
	if !ok {
		return nil, InvalidArgumentType("io/println", 0, "string", value.TypeName(args[0]))
	}
	fmt.Println(string(s))
	return value.NullValue, nil
}

func ioReadLine(args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return nil, InvalidArgumentCount("io/readLine", 0, len(args))
	}
	line, err := stdin.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return value.String(""), nil
		}
		return nil, UnhandledHostError("io/readLine", err)
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return value.String(line), nil
}
