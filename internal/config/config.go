// Package config loads resource limits and host gas-cost overrides from
// an optional YAML file, layering them on top of the in-process defaults
// (budget.DefaultLimits, budget.DefaultHostGasPolicy) rather than
// requiring a config file to exist.
//
// Grounded on _examples/sunholo-data-ailang/internal/eval_harness/models.go's
// use of gopkg.in/yaml.v3 to load a manifest of named model configs —
// generalized here to a single resource-limits document since a JSL
// evaluator has one active limit set per process, not a named registry.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jsl-lang/jsl/internal/budget"
	"github.com/jsl-lang/jsl/internal/langerr"
)

// Limits mirrors budget.Limits with YAML tags; fields absent from the
// file stay nil and are not applied, so a partial override document only
// touches the limits it mentions.
type Limits struct {
	MaxGas            *int64 `yaml:"max_gas"`
	MaxMemory         *int64 `yaml:"max_memory"`
	MaxTimeMs         *int64 `yaml:"max_time_ms"`
	MaxStackDepth     *int64 `yaml:"max_stack_depth"`
	MaxCollectionSize *int64 `yaml:"max_collection_size"`
	MaxStringLength   *int64 `yaml:"max_string_length"`
}

// HostCost is one override entry in the host gas-policy section.
type HostCost struct {
	Path string `yaml:"path"`
	Cost int64  `yaml:"cost"`
}

// File is the top-level shape of a resource-limits config document.
type File struct {
	Limits          Limits     `yaml:"limits"`
	HostDefaultCost *int64     `yaml:"host_default_cost"`
	HostCosts       []HostCost `yaml:"host_costs"`
}

// Load reads path, applying its overrides on top of
// budget.DefaultLimits()/budget.DefaultHostGasPolicy(). A missing file
// is not an error — it returns the bare defaults, matching the
// reference's "config is optional" posture.
func Load(path string) (budget.Limits, *budget.HostGasPolicy, error) {
	limits := budget.DefaultLimits()
	policy := budget.DefaultHostGasPolicy()

	if path == "" {
		return limits, policy, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return limits, policy, nil
	}
	if err != nil {
		return limits, policy, langerr.New(langerr.SyntaxError, "reading config %q: %v", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return limits, policy, langerr.New(langerr.SyntaxError, "parsing config %q: %v", path, err)
	}

	applyLimitOverrides(&limits, f.Limits)
	if f.HostDefaultCost != nil {
		policy.SetDefaultCost(*f.HostDefaultCost)
	}
	for _, hc := range f.HostCosts {
		policy.SetCost(hc.Path, hc.Cost)
	}
	return limits, policy, nil
}

func applyLimitOverrides(l *budget.Limits, o Limits) {
	if o.MaxGas != nil {
		l.MaxGas = *o.MaxGas
	}
	if o.MaxMemory != nil {
		l.MaxMemory = *o.MaxMemory
	}
	if o.MaxTimeMs != nil {
		l.MaxTimeMs = *o.MaxTimeMs
	}
	if o.MaxStackDepth != nil {
		l.MaxStackDepth = *o.MaxStackDepth
	}
	if o.MaxCollectionSize != nil {
		l.MaxCollectionSize = *o.MaxCollectionSize
	}
	if o.MaxStringLength != nil {
		l.MaxStringLength = *o.MaxStringLength
	}
}
