package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/jsl-lang/jsl/internal/budget"
	"github.com/jsl-lang/jsl/internal/compiler"
	"github.com/jsl-lang/jsl/internal/config"
	"github.com/jsl-lang/jsl/internal/host"
	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/prelude"
	"github.com/jsl-lang/jsl/internal/repl"
	"github.com/jsl-lang/jsl/internal/serialize"
	"github.com/jsl-lang/jsl/internal/stackeval"
	"github.com/jsl-lang/jsl/internal/treeeval"
	"github.com/jsl-lang/jsl/internal/value"
	"github.com/jsl-lang/jsl/internal/wire"
)

var (
	// Version info, set by ldflags during build.
	Version = "dev"
	Commit  = "unknown"

	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printHelp()
		os.Exit(1)
	}

	command := args[0]
	rest := args[1:]

	switch command {
	case "run":
		runCommand(rest)
	case "eval":
		evalCommand(rest)
	case "repl":
		replCommand(rest)
	case "compile":
		compileCommand(rest)
	case "decompile":
		decompileCommand(rest)
	case "--version", "-version", "version":
		printVersion()
	case "--help", "-help", "help":
		printHelp()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), command)
		printHelp()
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("jsl %s (%s)\n", bold(Version), Commit)
}

func printHelp() {
	fmt.Println(bold("jsl - JSON Serializable Language"))
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  jsl <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Printf("  %s <file>        Run a program document (spec §6.1)\n", cyan("run"))
	fmt.Printf("  %s <expr>       Evaluate one JSON form from the command line\n", cyan("eval"))
	fmt.Printf("  %s               Start the interactive REPL\n", cyan("repl"))
	fmt.Printf("  %s <expr>     Compile a form to its postfix (JPN) encoding\n", cyan("compile"))
	fmt.Printf("  %s <postfix> Decompile a postfix form back to tree form\n", cyan("decompile"))
	fmt.Println()
	fmt.Println("Flags common to run/eval:")
	fmt.Println("  --engine tree|stack   Evaluator engine (default tree)")
	fmt.Println("  --config <file>       YAML resource-limit/host-cost overrides")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Printf("  %s\n", cyan(`jsl eval '["+", 1, 2, 3]'`))
	fmt.Printf("  %s\n", cyan("jsl run program.jsl.json --engine stack"))
	fmt.Printf("  %s\n", cyan("jsl repl"))
}

// parseCommonFlags scans args for --engine/--config, present on
// run/eval/repl, returning the remaining positional arguments.
func parseCommonFlags(args []string) (engine string, configPath string, positional []string) {
	engine = "tree"
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--engine":
			if i+1 < len(args) {
				engine = args[i+1]
				i++
			}
		case "--config":
			if i+1 < len(args) {
				configPath = args[i+1]
				i++
			}
		default:
			positional = append(positional, args[i])
		}
	}
	return
}

func buildBudget(configPath string) *budget.Budget {
	limits, hostGas, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
	// A CLI invocation runs one program to completion unattended; grant
	// every implemented namespace rather than require a --caps ceremony
	// before println/time/crypto work at all.
	host.SetCapabilities(host.NewCapabilities().
		Grant("io").Grant("time").Grant("math").Grant("crypto").Grant("system").Grant("json"))
	return budget.New(limits, hostGas)
}

func evalWith(engine string, form value.Value, env *value.Env, b *budget.Budget) (value.Value, error) {
	if engine == "stack" {
		return stackeval.EvalFunc(form, env, b)
	}
	return treeeval.Eval(form, env, b)
}

func runCommand(args []string) {
	engine, configPath, positional := parseCommonFlags(args)
	if len(positional) < 1 {
		fmt.Fprintf(os.Stderr, "%s: missing file argument\n", red("Error"))
		fmt.Println("Usage: jsl run <file> [--engine tree|stack] [--config <file>]")
		os.Exit(1)
	}

	content, err := os.ReadFile(positional[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read file %q: %v\n", red("Error"), positional[0], err)
		os.Exit(1)
	}

	doc, err := wire.ParseDocument(string(content))
	if err != nil {
		reportError(err)
		os.Exit(1)
	}

	env, _ := prelude.New()
	b := buildBudget(configPath)
	evalFn := func(expr value.Value, e *value.Env, bb *budget.Budget) (value.Value, error) {
		return evalWith(engine, expr, e, bb)
	}

	result, err := wire.Run(doc, env, b, evalFn)
	if err != nil {
		reportError(err)
		os.Exit(1)
	}
	printResult(result)
}

func evalCommand(args []string) {
	engine, configPath, positional := parseCommonFlags(args)
	if len(positional) < 1 {
		fmt.Fprintf(os.Stderr, "%s: missing expression argument\n", red("Error"))
		fmt.Println(`Usage: jsl eval '["+", 1, 2, 3]' [--engine tree|stack] [--config <file>]`)
		os.Exit(1)
	}

	form, err := serialize.JSONToValue(positional[0])
	if err != nil {
		reportError(err)
		os.Exit(1)
	}

	env, _ := prelude.New()
	b := buildBudget(configPath)
	result, err := evalWith(engine, form, env, b)
	if err != nil {
		reportError(err)
		os.Exit(1)
	}
	printResult(result)
}

func replCommand(args []string) {
	_, configPath, _ := parseCommonFlags(args)
	limits, hostGas, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
		os.Exit(1)
	}
	r := repl.NewWithLimits(Version, limits, hostGas)
	r.Start(os.Stdin, os.Stdout)
}

func compileCommand(args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "%s: missing expression argument\n", red("Error"))
		fmt.Println(`Usage: jsl compile '["+", 1, 2, 3]'`)
		os.Exit(1)
	}
	form, err := serialize.JSONToValue(args[0])
	if err != nil {
		reportError(err)
		os.Exit(1)
	}
	instructions := compiler.Compile(form)
	text, err := serialize.ValueToJSON(instructions)
	if err != nil {
		reportError(err)
		os.Exit(1)
	}
	fmt.Println(text)
}

func decompileCommand(args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "%s: missing postfix argument\n", red("Error"))
		fmt.Println(`Usage: jsl decompile '[1, 2, 2, "+"]'`)
		os.Exit(1)
	}
	v, err := serialize.JSONToValue(args[0])
	if err != nil {
		reportError(err)
		os.Exit(1)
	}
	instructions, ok := v.(value.List)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: postfix argument must be a JSON array\n", red("Error"))
		os.Exit(1)
	}
	form, err := compiler.Decompile(instructions)
	if err != nil {
		reportError(err)
		os.Exit(1)
	}
	text, err := serialize.ValueToJSON(form)
	if err != nil {
		reportError(err)
		os.Exit(1)
	}
	fmt.Println(text)
}

func printResult(result value.Value) {
	if result == nil {
		return
	}
	text, err := serialize.ValueToJSON(result)
	if err != nil {
		fmt.Println(result.String())
		return
	}
	fmt.Println(text)
}

func reportError(err error) {
	if le, ok := langerr.As(err); ok {
		fmt.Fprintf(os.Stderr, "%s %s: %s\n", red("Error"), strings.ToLower(string(le.Kind)), le.Message)
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
}
