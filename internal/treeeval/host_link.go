package treeeval

import (
	"github.com/jsl-lang/jsl/internal/host"
	"github.com/jsl-lang/jsl/internal/value"
)

// dispatchHost hands a validated host request to the dispatcher (spec
// §4.7 step 3-5). host.Dispatch already returns a *langerr.Error with
// Kind HostError on failure, matching the evaluator's error taxonomy.
func dispatchHost(commandID string, args []value.Value) (value.Value, error) {
	return host.Dispatch(commandID, args)
}
