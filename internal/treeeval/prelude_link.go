package treeeval

import "github.com/jsl-lang/jsl/internal/value"

// currentPrelude is the active prelude instance this process's evaluators
// reattach closures to. Spec §9's design notes flag the reference's fully
// global mutable prelude pointer as something a port should avoid in
// favor of explicit parameter threading; this narrows that to exactly the
// one mechanic that needs a process-wide notion of "the current prelude"
// — reattachment of a closure captured under a stale prelude instance —
// while every other prelude use (construction, lookup) is passed
// explicitly as a *value.Env parameter throughout this package.
var currentPrelude *value.Env

// SetCurrentPrelude installs the prelude instance closures should
// reattach to. No package in this module calls it; while it is unset,
// reattachPrelude does nothing.
func SetCurrentPrelude(p *value.Env) {
	currentPrelude = p
}

func reattachPrelude(env *value.Env) {
	if currentPrelude != nil {
		env.ReattachPrelude(currentPrelude)
	}
}
