package repl

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jsl-lang/jsl/internal/prelude"
	"github.com/jsl-lang/jsl/internal/value"
)

// HandleCommand dispatches a ":"-prefixed REPL command.
func (r *REPL) HandleCommand(cmd string, out io.Writer) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case ":help", ":h":
		r.printHelp(out)

	case ":engine":
		if len(parts) < 2 {
			fmt.Fprintf(out, "Current engine: %s\n", yellow(r.config.Engine.String()))
			fmt.Fprintln(out, "Usage: :engine tree|stack")
			return
		}
		switch parts[1] {
		case "tree":
			r.config.Engine = EngineTree
		case "stack":
			r.config.Engine = EngineStack
		default:
			fmt.Fprintf(out, "Unknown engine %q (want tree or stack)\n", parts[1])
			return
		}
		fmt.Fprintf(out, "Engine set to %s\n", yellow(r.config.Engine.String()))

	case ":compiled":
		r.config.ShowCompiled = !r.config.ShowCompiled
		status := "disabled"
		if r.config.ShowCompiled {
			status = "enabled"
		}
		fmt.Fprintf(out, "Postfix display %s\n", yellow(status))

	case ":def":
		r.showBindings(out)

	case ":env":
		r.showBindings(out)

	case ":history":
		r.showHistory(out)

	case ":clear":
		fmt.Fprint(out, "\033[H\033[2J")

	case ":reset":
		preludeEnv, _ := prelude.New()
		r.prelude = preludeEnv
		r.env = preludeEnv.Extend(nil, nil)
		fmt.Fprintln(out, green("Environment reset"))

	default:
		fmt.Fprintf(out, "Unknown command: %s\n", cmd)
		fmt.Fprintln(out, "Type :help for help")
	}
}

// showBindings lists names defined at the top-level session environment,
// i.e. everything bound by `def` since the last :reset, excluding prelude.
func (r *REPL) showBindings(out io.Writer) {
	keys := r.env.OwnKeys()
	if len(keys) == 0 {
		fmt.Fprintln(out, dim("(no session bindings yet)"))
		return
	}
	sort.Strings(keys)
	for _, k := range keys {
		v, _ := r.env.Get(k)
		fmt.Fprintf(out, "  %s = %s\n", cyan(k), truncate(valueSummary(v), 80))
	}
}

func valueSummary(v value.Value) string {
	return v.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

func (r *REPL) showHistory(out io.Writer) {
	if len(r.history) == 0 {
		fmt.Fprintln(out, dim("(empty)"))
		return
	}
	for i, h := range r.history {
		fmt.Fprintf(out, "%4d  %s\n", i+1, h)
	}
}

func (r *REPL) printHelp(out io.Writer) {
	fmt.Fprintln(out, bold("JSL REPL commands:"))
	fmt.Fprintln(out, "  :help, :h            Show this help")
	fmt.Fprintln(out, "  :quit, :q            Exit the REPL")
	fmt.Fprintln(out, "  :engine [tree|stack] Show or switch the evaluator engine")
	fmt.Fprintln(out, "  :compiled            Toggle printing the compiled postfix form")
	fmt.Fprintln(out, "  :env                 List top-level session bindings")
	fmt.Fprintln(out, "  :history             Show input history")
	fmt.Fprintln(out, "  :clear               Clear the screen")
	fmt.Fprintln(out, "  :reset               Discard session bindings, keep prelude")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Any other input is parsed as one JSON form — e.g.:")
	fmt.Fprintln(out, `  ["+", 1, 2, 3]`)
	fmt.Fprintln(out, `  ["def", "square", ["lambda", ["x"], ["*", "x", "x"]]]`)
}
