package host

// current is the process-wide capability gate Dispatch consults, installed
// once per process/session via SetCapabilities (the same narrow
// late-binding idiom internal/evalctx and each evaluator's prelude_link.go
// use, chosen over threading a Capabilities value through every Dispatch
// call site since the host registry itself is already process-global).
//
// Grounded on _examples/sunholo-data-ailang/internal/effects/context.go's
// EffContext, trimmed to just the capability grant map: this port's
// deterministic-time and network-security knobs (ClockContext, NetContext)
// have no analogue here since spec.md's host namespaces beyond
// time/math/crypto/system/json are namespace-only cost entries with no
// registered handler (SPEC_FULL.md §12.4).
var current *Capabilities

// SetCapabilities installs the process's capability gate. Passing nil
// reverts to the default, unrestricted posture.
func SetCapabilities(c *Capabilities) {
	current = c
}
