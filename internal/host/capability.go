package host

// Capability names the host-command namespaces (the "time", "math",
// "crypto", "system", "json" prefixes RegisterOp installs under, plus the
// unimplemented "file"/"network" namespaces the gas-cost tree still
// tracks) a Capabilities set may grant or withhold.
//
// Grounded on _examples/sunholo-data-ailang/internal/effects/capability.go's
// Capability token, simplified from its name+metadata struct to a bare
// name since this port has no per-capability budget/sandbox metadata —
// that role is already filled by internal/budget's HostGasPolicy.
type Capability string

// Capabilities is a namespace grant set consulted by Dispatch. Has on a
// nil or zero-value *Capabilities reports false for every name.
// Restriction is still opt-in: Dispatch skips the check entirely while no
// gate is installed (SetCapabilities(nil)), so callers that never mention
// capabilities keep running unrestricted.
type Capabilities struct {
	granted map[Capability]bool
}

// NewCapabilities creates an empty, deny-by-default grant set, matching
// the teacher's EffContext.NewEffContext deny-by-default posture.
func NewCapabilities() *Capabilities {
	return &Capabilities{granted: make(map[Capability]bool)}
}

// Grant adds name to the set. Idempotent.
func (c *Capabilities) Grant(name Capability) *Capabilities {
	c.granted[name] = true
	return c
}

// Has reports whether name is granted.
func (c *Capabilities) Has(name Capability) bool {
	return c != nil && c.granted[name]
}
