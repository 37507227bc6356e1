package stackeval

import "github.com/jsl-lang/jsl/internal/value"

// currentPrelude mirrors internal/treeeval/prelude_link.go's mechanic:
// the one process-wide pointer a closure's stale prelude ancestor
// reattaches to on application. Kept as this package's own variable
// (not shared with treeeval) so each evaluator stays independently
// self-contained. No package in this module calls either evaluator's
// SetCurrentPrelude, so while it is unset reattachPrelude does nothing.
var currentPrelude *value.Env

// SetCurrentPrelude installs the prelude instance closures should
// reattach to.
func SetCurrentPrelude(p *value.Env) {
	currentPrelude = p
}

func reattachPrelude(env *value.Env) {
	if currentPrelude != nil {
		env.ReattachPrelude(currentPrelude)
	}
}
