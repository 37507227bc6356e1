package budget

import "strings"

// HostGasPolicy is the hierarchical cost tree for host operations, keyed
// by slash-separated commandId segments (e.g. "network/http/post"). Cost
// inheritance is longest-prefix match: each tree node may carry a "_cost"
// default inherited by any descendant that doesn't override it.
//
// Ported from _examples/original_source/jsl/resources.py
// (HostGasPolicy._default_costs, HostGasPolicy.get_cost).
type HostGasPolicy struct {
	root        *costNode
	defaultCost int64
}

type costNode struct {
	cost     int64
	hasCost  bool
	children map[string]*costNode
}

func newCostNode() *costNode {
	return &costNode{children: make(map[string]*costNode)}
}

func (n *costNode) child(seg string) *costNode {
	c, ok := n.children[seg]
	if !ok {
		c = newCostNode()
		n.children[seg] = c
	}
	return c
}

// set installs cost at the node reached by path (slash-separated).
func (n *costNode) set(path string, cost int64) {
	cur := n
	for _, seg := range strings.Split(path, "/") {
		cur = cur.child(seg)
	}
	cur.cost = cost
	cur.hasCost = true
}

// DefaultHostGasPolicy builds the reference namespace tree: file,
// network/http/{get,post,put,delete}, network/dns, time/{now,sleep,format},
// math/{random,sqrt,pow}, crypto/{hash,hmac,sign,verify,random},
// system/{env,arch,pid}, json/{parse,stringify}. Namespaces this port
// leaves unimplemented (file, network) still carry costs — SPEC_FULL.md
// §12.4 wires the tree independently of which commands have registered
// handlers.
func DefaultHostGasPolicy() *HostGasPolicy {
	p := &HostGasPolicy{root: newCostNode(), defaultCost: 20}

	p.root.set("file", 50)
	p.root.set("file/read", 40)
	p.root.set("file/write", 60)

	p.root.set("network", 100)
	p.root.set("network/http", 120)
	p.root.set("network/http/get", 100)
	p.root.set("network/http/post", 150)
	p.root.set("network/http/put", 150)
	p.root.set("network/http/delete", 120)
	p.root.set("network/dns", 80)

	p.root.set("time", 5)
	p.root.set("time/now", 5)
	p.root.set("time/sleep", 10)
	p.root.set("time/format", 8)

	p.root.set("math", 15)
	p.root.set("math/random", 15)
	p.root.set("math/sqrt", 5)
	p.root.set("math/pow", 5)

	p.root.set("crypto", 30)
	p.root.set("crypto/hash", 25)
	p.root.set("crypto/hmac", 35)
	p.root.set("crypto/sign", 60)
	p.root.set("crypto/verify", 60)
	p.root.set("crypto/random", 15)

	p.root.set("system", 10)
	p.root.set("system/env", 5)
	p.root.set("system/arch", 3)
	p.root.set("system/pid", 3)

	p.root.set("json", 10)
	p.root.set("json/parse", 12)
	p.root.set("json/stringify", 12)

	return p
}

// SetCost overrides (or installs) the cost at path, letting a config
// loader layer overrides on top of DefaultHostGasPolicy without needing
// access to the unexported cost-tree node type.
func (p *HostGasPolicy) SetCost(path string, cost int64) {
	p.root.set(path, cost)
}

// SetDefaultCost overrides the tree's fallback cost for unrecognized
// commandId prefixes.
func (p *HostGasPolicy) SetDefaultCost(cost int64) {
	p.defaultCost = cost
}

// GetCost walks commandId's path segments, returning the cost of the
// deepest matching node that declares one; falls back to the nearest
// ancestor's cost, then the tree's global default.
func (p *HostGasPolicy) GetCost(commandID string) int64 {
	cur := p.root
	best := p.defaultCost
	if cur.hasCost {
		best = cur.cost
	}
	for _, seg := range strings.Split(commandID, "/") {
		next, ok := cur.children[seg]
		if !ok {
			break
		}
		cur = next
		if cur.hasCost {
			best = cur.cost
		}
	}
	return best
}
