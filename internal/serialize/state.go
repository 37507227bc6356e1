package serialize

import (
	"github.com/jsl-lang/jsl/internal/budget"
	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/value"
)

// SuspendedState is the self-contained record a step-bounded stack
// evaluation returns on exhaustion (spec §4.4, §4.8): {stack, pc,
// instructions, env, budget_checkpoint}, restorable on any machine that
// shares this process's prelude.
//
// Defined here rather than in internal/stackeval so that both
// internal/stackeval and this package can depend on it without a cycle:
// stackeval imports serialize to encode/decode its own State, so the
// shared shape has to live on this side.
type SuspendedState struct {
	Stack        []value.Value
	PC           int
	Instructions value.List
	Env          *value.Env
	Checkpoint   budget.Checkpoint
}

const suspendedStateTag = "__suspended_state__"

// EncodeState renders a SuspendedState to JSON text.
func EncodeState(s SuspendedState) (string, error) {
	registry := value.NewMap()
	rootID, err := encodeEnvRegistry(s.Env, nil, registry)
	if err != nil {
		return "", err
	}
	stack := make(value.List, len(s.Stack))
	copy(stack, s.Stack)

	cp := value.NewMap().
		Set("gas_used", value.Number(s.Checkpoint.GasUsed)).
		Set("memory_used", value.Number(s.Checkpoint.MemoryUsed)).
		Set("elapsed_ms", value.Number(s.Checkpoint.ElapsedMs)).
		Set("stack_depth", value.Number(s.Checkpoint.StackDepth)).
		Set("object_count", value.Number(s.Checkpoint.ObjectCount))

	envelope := value.NewMap().
		Set(suspendedStateTag, value.Bool(true)).
		Set("stack", stack).
		Set("pc", value.Number(s.PC)).
		Set("instructions", s.Instructions).
		Set(envTag, value.NewMap().Set(envRootKey, value.String(rootID)).Set(envRegistry, registry)).
		Set("budget_checkpoint", cp)
	return ValueToJSON(envelope)
}

// DecodeState parses JSON text produced by EncodeState, reattaching the
// given prelude at the root of the reconstructed environment chain.
func DecodeState(text string, prelude *value.Env) (SuspendedState, error) {
	var out SuspendedState
	v, err := JSONToValue(text)
	if err != nil {
		return out, err
	}
	m, ok := v.(*value.Map)
	if !ok {
		return out, langerr.New(langerr.SyntaxError, "suspended state document must be a JSON object")
	}
	if tag, ok := m.Get(suspendedStateTag); !ok || !value.Truthy(tag) {
		return out, langerr.New(langerr.SyntaxError, "missing %s tag", suspendedStateTag)
	}

	stackV, ok := m.Get("stack")
	if !ok {
		return out, langerr.New(langerr.SyntaxError, "suspended state missing stack")
	}
	stackList, ok := stackV.(value.List)
	if !ok {
		return out, langerr.New(langerr.SyntaxError, "suspended state stack must be a list")
	}
	out.Stack = append([]value.Value(nil), stackList...)

	pcV, ok := m.Get("pc")
	if !ok {
		return out, langerr.New(langerr.SyntaxError, "suspended state missing pc")
	}
	pcNum, ok := pcV.(value.Number)
	if !ok {
		return out, langerr.New(langerr.SyntaxError, "suspended state pc must be a number")
	}
	out.PC = int(pcNum)

	instrV, ok := m.Get("instructions")
	if !ok {
		return out, langerr.New(langerr.SyntaxError, "suspended state missing instructions")
	}
	instrList, ok := instrV.(value.List)
	if !ok {
		return out, langerr.New(langerr.SyntaxError, "suspended state instructions must be a list")
	}
	out.Instructions = instrList

	envV, ok := m.Get(envTag)
	if !ok {
		return out, langerr.New(langerr.SyntaxError, "suspended state missing %s", envTag)
	}
	envEnvelope, ok := envV.(*value.Map)
	if !ok {
		return out, langerr.New(langerr.SyntaxError, "%s must be an object", envTag)
	}
	rootV, _ := envEnvelope.Get(envRootKey)
	rootID, _ := rootV.(value.String)
	registryV, ok := envEnvelope.Get(envRegistry)
	if !ok {
		return out, langerr.New(langerr.SyntaxError, "env envelope missing %s", envRegistry)
	}
	registry, ok := registryV.(*value.Map)
	if !ok {
		return out, langerr.New(langerr.SyntaxError, "%s must be an object", envRegistry)
	}
	env, err := decodeEnvRegistry(registry, string(rootID), prelude)
	if err != nil {
		return out, err
	}
	out.Env = env

	cpV, ok := m.Get("budget_checkpoint")
	if !ok {
		return out, langerr.New(langerr.SyntaxError, "suspended state missing budget_checkpoint")
	}
	cpMap, ok := cpV.(*value.Map)
	if !ok {
		return out, langerr.New(langerr.SyntaxError, "budget_checkpoint must be an object")
	}
	out.Checkpoint, err = decodeCheckpoint(cpMap)
	if err != nil {
		return out, err
	}
	return out, nil
}

func decodeCheckpoint(m *value.Map) (budget.Checkpoint, error) {
	var cp budget.Checkpoint
	get := func(key string) (float64, error) {
		v, ok := m.Get(key)
		if !ok {
			return 0, langerr.New(langerr.SyntaxError, "budget_checkpoint missing %s", key)
		}
		n, ok := v.(value.Number)
		if !ok {
			return 0, langerr.New(langerr.SyntaxError, "budget_checkpoint.%s must be a number", key)
		}
		return float64(n), nil
	}
	gasUsed, err := get("gas_used")
	if err != nil {
		return cp, err
	}
	memUsed, err := get("memory_used")
	if err != nil {
		return cp, err
	}
	elapsed, err := get("elapsed_ms")
	if err != nil {
		return cp, err
	}
	stackDepth, err := get("stack_depth")
	if err != nil {
		return cp, err
	}
	objCount, err := get("object_count")
	if err != nil {
		return cp, err
	}
	cp.GasUsed = int64(gasUsed)
	cp.MemoryUsed = int64(memUsed)
	cp.ElapsedMs = int64(elapsed)
	cp.StackDepth = int64(stackDepth)
	cp.ObjectCount = int64(objCount)
	return cp, nil
}
