package serialize

import (
	"github.com/jsl-lang/jsl/internal/langerr"
	"github.com/jsl-lang/jsl/internal/value"
)

// Closure envelope keys (spec §4.8): a closure serializes as a tagged
// object carrying its parameter list, its body (itself an AST value, so
// it round-trips through the ordinary writeValue/decodeValue path), and
// its captured environment chain as a flat registry keyed by frame id
// rather than a nested tree. Each closure's envelope carries its own
// registry; frames are not shared between the envelopes of different
// closures.
const (
	closureTag  = "__closure__"
	envTag      = "__env__"
	envRegistry = "envs"
	envRootKey  = "root"
)

// EncodeClosure renders a closure to JSON text including its captured
// environment chain, stopping at (and excluding) the prelude.
func EncodeClosure(c *value.Closure) (string, error) {
	m, err := closureToMap(c)
	if err != nil {
		return "", err
	}
	return ValueToJSON(m)
}

func closureToMap(c *value.Closure) (*value.Map, error) {
	registry := value.NewMap()
	needed := closureFreeVars(c.Params, c.Body)
	rootID, err := encodeEnvRegistry(c.Env, needed, registry)
	if err != nil {
		return nil, err
	}
	params := make(value.List, len(c.Params))
	for i, p := range c.Params {
		params[i] = value.String(p)
	}
	envelope := value.NewMap().
		Set(closureTag, value.Bool(true)).
		Set("params", params).
		Set("body", c.Body).
		Set(envTag, value.NewMap().Set(envRootKey, value.String(rootID)).Set(envRegistry, registry))
	return envelope, nil
}

// DecodeClosure parses JSON text produced by EncodeClosure, reattaching
// the given prelude at the root of the reconstructed environment chain.
func DecodeClosure(text string, prelude *value.Env) (*value.Closure, error) {
	v, err := JSONToValue(text)
	if err != nil {
		return nil, err
	}
	m, ok := v.(*value.Map)
	if !ok {
		return nil, langerr.New(langerr.SyntaxError, "closure envelope must be a JSON object")
	}
	return mapToClosure(m, prelude)
}

func mapToClosure(m *value.Map, prelude *value.Env) (*value.Closure, error) {
	if tag, ok := m.Get(closureTag); !ok || !value.Truthy(tag) {
		return nil, langerr.New(langerr.SyntaxError, "missing %s tag", closureTag)
	}
	paramsV, ok := m.Get("params")
	if !ok {
		return nil, langerr.New(langerr.SyntaxError, "closure envelope missing params")
	}
	paramList, ok := paramsV.(value.List)
	if !ok {
		return nil, langerr.New(langerr.SyntaxError, "closure params must be a list")
	}
	params := make([]string, len(paramList))
	for i, p := range paramList {
		ps, ok := p.(value.String)
		if !ok {
			return nil, langerr.New(langerr.SyntaxError, "closure param must be a string")
		}
		params[i] = string(ps)
	}
	body, ok := m.Get("body")
	if !ok {
		return nil, langerr.New(langerr.SyntaxError, "closure envelope missing body")
	}
	envV, ok := m.Get(envTag)
	if !ok {
		return nil, langerr.New(langerr.SyntaxError, "closure envelope missing %s", envTag)
	}
	envEnvelope, ok := envV.(*value.Map)
	if !ok {
		return nil, langerr.New(langerr.SyntaxError, "%s must be an object", envTag)
	}
	rootV, _ := envEnvelope.Get(envRootKey)
	rootID, _ := rootV.(value.String)
	registryV, ok := envEnvelope.Get(envRegistry)
	if !ok {
		return nil, langerr.New(langerr.SyntaxError, "env envelope missing %s", envRegistry)
	}
	registry, ok := registryV.(*value.Map)
	if !ok {
		return nil, langerr.New(langerr.SyntaxError, "%s must be an object", envRegistry)
	}
	env, err := decodeEnvRegistry(registry, string(rootID), prelude)
	if err != nil {
		return nil, err
	}
	return &value.Closure{Params: params, Body: body, Env: env}, nil
}
