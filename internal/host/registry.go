// Package host implements the effect dispatcher: the sole boundary
// through which impurity escapes the evaluator (spec §4.7). Reified
// "host" calls are translated here into concrete host-side actions,
// returning either a pure value.Value or a $jsl_host_error envelope.
//
// Grounded on _examples/sunholo-data-ailang/internal/effects/ops.go's
// two-level Registry[effect][op] + Call(ctx, effect, op, args) pattern,
// generalized to this spec's slash-path commandId (e.g. "time/now",
// "crypto/hash"), and on
// _examples/original_source/jsl/jsl_host_dispatcher.py's
// process_host_request for the concrete command set and the
// $jsl_host_error envelope shape.
package host

import (
	"strings"

	"github.com/jsl-lang/jsl/internal/value"
)

// Op is a single host command implementation.
type Op func(args []value.Value) (value.Value, error)

// registry maps namespace -> (remaining path -> Op). "time/now" is
// registered as registry["time"]["now"].
var registry = map[string]map[string]Op{}

// RegisterOp installs a command implementation under namespace/opPath.
// Called from each command file's init().
func RegisterOp(namespace, opPath string, op Op) {
	ns, ok := registry[namespace]
	if !ok {
		ns = make(map[string]Op)
		registry[namespace] = ns
	}
	ns[opPath] = op
}

// Dispatch looks up commandID and invokes it, returning either a pure
// value.Value or a *langerr.Error of Kind HostError. commandID not found (including namespaces
// that are cost-tracked but have no registered handler, e.g. "file/*" and
// "network/*" — deliberately out of scope per SPEC_FULL.md §12.4) yields
// CommandNotFound.
func Dispatch(commandID string, args []value.Value) (value.Value, error) {
	ns, rest, ok := strings.Cut(commandID, "/")
	if !ok {
		return nil, CommandNotFound(commandID)
	}
	ops, ok := registry[ns]
	if !ok {
		return nil, CommandNotFound(commandID)
	}
	op, ok := ops[rest]
	if !ok {
		return nil, CommandNotFound(commandID)
	}
	if current != nil && !current.Has(Capability(ns)) {
		return nil, PermissionDenied(commandID, ns)
	}
	return op(args)
}
