package host

import (
	"time"

	"github.com/jsl-lang/jsl/internal/value"
)

func init() {
	RegisterOp("time", "now", timeNow)
	RegisterOp("time", "format", timeFormat)
}

// timeNow implements time/now() -> {timestamp: "<RFC3339 UTC>"}.
// Grounded on jsl/jsl_host_dispatcher.py's "util/timestamp-iso" command.
func timeNow(args []value.Value) (value.Value, error) {
	if len(args) != 0 {
		return nil, InvalidArgumentCount("time/now", 0, len(args))
	}
	ts := time.Now().UTC().Format(time.RFC3339)
	return value.NewMap().Set("timestamp", value.String(ts)), nil
}

// timeFormat implements time/format(epochSeconds: number, layout: string)
// -> string, using Go's reference-time layout strings.
func timeFormat(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, InvalidArgumentCount("time/format", 2, len(args))
	}
	epoch, ok := args[0].(value.Number)
	if !ok {
		return nil, InvalidArgumentType("time/format", 0, "number", value.TypeName(args[0]))
	}
	layout, ok := args[1].(value.String)
	if !ok {
		return nil, InvalidArgumentType("time/format", 1, "string", value.TypeName(args[1]))
	}
	t := time.Unix(int64(epoch), 0).UTC()
	return value.String(t.Format(string(layout))), nil
}
