// Package repl implements an interactive read-eval-print loop over a JSON
// form read one line (or one bracket-balanced multi-line block) at a time,
// evaluated under a persistent prelude-backed environment.
//
// Grounded on _examples/sunholo-data-ailang/internal/repl/repl.go's
// structure: a liner.Liner for history/completion, fatih/color for output,
// and a persistent environment shared across inputs so `def` bindings from
// one line are visible to the next — generalized here from AILANG's
// Core/type-checker pipeline to JSL's read -> compile -> evaluate pipeline,
// switchable between the tree and stack evaluators via :engine.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/jsl-lang/jsl/internal/budget"
	"github.com/jsl-lang/jsl/internal/compiler"
	"github.com/jsl-lang/jsl/internal/host"
	"github.com/jsl-lang/jsl/internal/prelude"
	"github.com/jsl-lang/jsl/internal/serialize"
	"github.com/jsl-lang/jsl/internal/stackeval"
	"github.com/jsl-lang/jsl/internal/treeeval"
	"github.com/jsl-lang/jsl/internal/value"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

// Engine selects which evaluator drives top-level input.
type Engine int

const (
	EngineTree Engine = iota
	EngineStack
)

func (e Engine) String() string {
	if e == EngineStack {
		return "stack"
	}
	return "tree"
}

// Config holds REPL-session toggles.
type Config struct {
	ShowCompiled bool // print the postfix form before evaluating
	Engine       Engine
}

// REPL is one interactive session: a persistent environment, resource
// limits, and the evaluator engine currently selected.
type REPL struct {
	config  *Config
	env     *value.Env
	prelude *value.Env
	limits  budget.Limits
	hostGas *budget.HostGasPolicy
	history []string
	version string
}

// New creates a REPL with the default resource limits and host gas policy.
func New(version string) *REPL {
	return NewWithLimits(version, budget.DefaultLimits(), budget.DefaultHostGasPolicy())
}

// NewWithLimits creates a REPL using caller-supplied limits, e.g. loaded
// via internal/config.Load from a --config flag.
func NewWithLimits(version string, limits budget.Limits, hostGas *budget.HostGasPolicy) *REPL {
	if version == "" {
		version = "dev"
	}
	preludeEnv, _ := prelude.New()
	// Grant every implemented namespace for REPL convenience, mirroring
	// the teacher's REPL granting IO by default rather than forcing
	// :import-style ceremony before println works interactively.
	host.SetCapabilities(host.NewCapabilities().
		Grant("io").Grant("time").Grant("math").Grant("crypto").Grant("system").Grant("json"))
	return &REPL{
		config:  &Config{Engine: EngineTree},
		env:     preludeEnv.Extend(nil, nil),
		prelude: preludeEnv,
		limits:  limits,
		hostGas: hostGas,
		history: []string{},
		version: version,
	}
}

func (r *REPL) getPrompt() string {
	return fmt.Sprintf("jsl[%s]> ", r.config.Engine)
}

// Start begins the interactive session and writes to out. Input comes from
// the terminal through liner, which owns its own terminal handling; in is
// not read.
func (r *REPL) Start(in io.Reader, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()

	historyFile := filepath.Join(os.TempDir(), ".jsl_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	line.SetMultiLineMode(true)

	fmt.Fprintf(out, "%s %s\n", bold("JSL"), bold(r.version))
	fmt.Fprintln(out, dim("Type :help for help, :quit to exit"))
	fmt.Fprintln(out)

	line.SetCompleter(func(input string) (c []string) {
		if strings.HasPrefix(input, ":") {
			commands := []string{":help", ":quit", ":engine", ":compiled", ":def", ":env", ":history", ":clear", ":reset"}
			for _, cmd := range commands {
				if strings.HasPrefix(cmd, input) {
					c = append(c, cmd)
				}
			}
		}
		return
	})

	for {
		input, err := line.Prompt(r.getPrompt())
		if err == io.EOF {
			fmt.Fprintln(out, green("\nGoodbye!"))
			break
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if needsContinuation(input) {
			var lines []string
			lines = append(lines, input)
			for needsContinuation(strings.Join(lines, "\n")) {
				cont, err := line.Prompt("... ")
				if err == io.EOF {
					fmt.Fprintln(out, red("\nIncomplete form"))
					lines = nil
					break
				}
				if err != nil {
					fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
					lines = nil
					break
				}
				lines = append(lines, cont)
			}
			if lines == nil {
				continue
			}
			input = strings.Join(lines, "\n")
		}

		line.AppendHistory(input)
		r.history = append(r.history, input)

		if strings.HasPrefix(input, ":") {
			if strings.HasPrefix(input, ":quit") || strings.HasPrefix(input, ":q") {
				fmt.Fprintln(out, green("Goodbye!"))
				break
			}
			r.HandleCommand(input, out)
			continue
		}

		r.ProcessForm(input, out)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

// needsContinuation reports whether text has unbalanced brackets and should
// keep reading more lines before being parsed as JSON.
func needsContinuation(text string) bool {
	depth := 0
	inString := false
	escaped := false
	for _, r := range text {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
		}
	}
	return depth > 0 || inString
}

// ProcessForm parses input as one JSON form, compiles it, evaluates it
// under the selected engine, and prints the result.
func (r *REPL) ProcessForm(input string, out io.Writer) {
	form, err := serialize.JSONToValue(input)
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Parse error"), err)
		return
	}

	if r.config.ShowCompiled {
		instructions := compiler.Compile(form)
		text, _ := serialize.ValueToJSON(instructions)
		fmt.Fprintf(out, "%s %s\n", dim("postfix:"), dim(text))
	}

	b := budget.New(r.limits, r.hostGas)

	var result value.Value
	switch r.config.Engine {
	case EngineStack:
		result, err = stackeval.EvalFunc(form, r.env, b)
	default:
		result, err = treeeval.Eval(form, r.env, b)
	}
	if err != nil {
		fmt.Fprintf(out, "%s: %v\n", red("Error"), err)
		return
	}

	text, err := serialize.ValueToJSON(result)
	if err != nil {
		fmt.Fprintf(out, "%s %s\n", cyan("=>"), result.String())
		return
	}
	fmt.Fprintf(out, "%s %s\n", cyan("=>"), green(text))
}
