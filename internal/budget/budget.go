// Package budget implements the resource-metering subsystem: gas, memory,
// wall-time, stack-depth, collection-size and string-length limits, with
// checkpoint/restore support for suspending and resuming execution across
// machine boundaries.
//
// Ported from _examples/original_source/jsl/resources.py (ResourceBudget,
// ResourceLimits, GasCost), translated from Python exceptions to Go's
// explicit (*langerr.Error) return convention.
package budget

import (
	"time"

	"github.com/jsl-lang/jsl/internal/langerr"
)

// GasCost lists the per-instruction-kind gas costs dispatched operations
// consume (spec §4.6).
const (
	GasLiteral    int64 = 1
	GasVariable   int64 = 2
	GasArithmetic int64 = 3
	GasComparison int64 = 3
	GasLogical    int64 = 3
	GasCall       int64 = 10
	GasCollection int64 = 5 // plus per-item below
	GasPerItem    int64 = 1
)

// Limits holds the configurable ceilings. A field set to the Unlimited
// sentinel (-1) has no ceiling; any other value, including zero, is
// enforced as the ceiling.
type Limits struct {
	MaxGas             int64 // -1 = unlimited
	MaxMemory          int64
	MaxTimeMs          int64
	MaxStackDepth      int64
	MaxCollectionSize  int64
	MaxStringLength    int64
}

// Unlimited marks a limit field as having no ceiling.
const Unlimited int64 = -1

// DefaultLimits matches the reference implementation's permissive
// defaults: generous but finite, so runaway programs still terminate.
func DefaultLimits() Limits {
	return Limits{
		MaxGas:            1_000_000,
		MaxMemory:         64 * 1024 * 1024,
		MaxTimeMs:         30_000,
		MaxStackDepth:     1_000,
		MaxCollectionSize: 100_000,
		MaxStringLength:   10 * 1024 * 1024,
	}
}

// Checkpoint is a restorable snapshot of a Budget's counters.
type Checkpoint struct {
	GasUsed       int64
	MemoryUsed    int64
	StackDepth    int64
	ObjectCount   int64
	ElapsedMs     int64
}

// Budget tracks cumulative resource usage for one evaluator instance (tree
// or stack). It is not safe for concurrent use — the model is one budget
// per single-threaded evaluator (spec §5).
type Budget struct {
	Limits Limits
	Host   *HostGasPolicy

	GasUsed     int64
	MemoryUsed  int64
	StackDepth  int64
	ObjectCount int64
	startTime   time.Time
}

// New constructs a Budget with the given limits and host gas policy,
// starting its wall-clock anchor now.
func New(limits Limits, host *HostGasPolicy) *Budget {
	if host == nil {
		host = DefaultHostGasPolicy()
	}
	return &Budget{Limits: limits, Host: host, startTime: time.Now()}
}

// ConsumeGas charges cost against the gas counter, failing with
// GasExhausted (uncatchable) if the ceiling is crossed.
func (b *Budget) ConsumeGas(cost int64) error {
	b.GasUsed += cost
	if b.Limits.MaxGas != Unlimited && b.GasUsed > b.Limits.MaxGas {
		return langerr.New(langerr.GasExhausted, "gas budget exceeded: used %d, limit %d", b.GasUsed, b.Limits.MaxGas)
	}
	return nil
}

// ConsumeHostGas looks up commandId's cost in the host policy tree and
// charges it.
func (b *Budget) ConsumeHostGas(commandID string) error {
	return b.ConsumeGas(b.Host.GetCost(commandID))
}

// AllocateMemory charges an estimated byte cost against the memory
// counter.
func (b *Budget) AllocateMemory(bytes int64) error {
	b.MemoryUsed += bytes
	if b.Limits.MaxMemory != Unlimited && b.MemoryUsed > b.Limits.MaxMemory {
		return langerr.New(langerr.MemoryExhausted, "memory budget exceeded: used %d, limit %d", b.MemoryUsed, b.Limits.MaxMemory)
	}
	return nil
}

// CheckTime verifies the monotonic wall clock against max_time_ms. Called
// before each dispatched instruction.
func (b *Budget) CheckTime() error {
	if b.Limits.MaxTimeMs == Unlimited {
		return nil
	}
	elapsed := time.Since(b.startTime).Milliseconds()
	if elapsed > b.Limits.MaxTimeMs {
		return langerr.New(langerr.TimeExhausted, "time budget exceeded: elapsed %dms, limit %dms", elapsed, b.Limits.MaxTimeMs)
	}
	return nil
}

// EnterCall increments stack depth on closure application, failing with
// StackOverflow if the ceiling is crossed.
func (b *Budget) EnterCall() error {
	b.StackDepth++
	if b.Limits.MaxStackDepth != Unlimited && b.StackDepth > b.Limits.MaxStackDepth {
		return langerr.New(langerr.StackOverflow, "stack depth exceeded: depth %d, limit %d", b.StackDepth, b.Limits.MaxStackDepth)
	}
	return nil
}

// ExitCall decrements stack depth on return.
func (b *Budget) ExitCall() {
	if b.StackDepth > 0 {
		b.StackDepth--
	}
}

// CheckCollectionSize verifies a newly created list/map's size.
func (b *Budget) CheckCollectionSize(n int) error {
	if b.Limits.MaxCollectionSize != Unlimited && int64(n) > b.Limits.MaxCollectionSize {
		return langerr.New(langerr.MemoryExhausted, "collection size %d exceeds limit %d", n, b.Limits.MaxCollectionSize)
	}
	return nil
}

// CheckStringLength verifies a newly created string's length.
func (b *Budget) CheckStringLength(n int) error {
	if b.Limits.MaxStringLength != Unlimited && int64(n) > b.Limits.MaxStringLength {
		return langerr.New(langerr.MemoryExhausted, "string length %d exceeds limit %d", n, b.Limits.MaxStringLength)
	}
	return nil
}

// Checkpoint captures the current counters plus elapsed wall time, for
// serialization into a suspended state (spec §4.6).
func (b *Budget) Checkpoint() Checkpoint {
	return Checkpoint{
		GasUsed:     b.GasUsed,
		MemoryUsed:  b.MemoryUsed,
		StackDepth:  b.StackDepth,
		ObjectCount: b.ObjectCount,
		ElapsedMs:   time.Since(b.startTime).Milliseconds(),
	}
}

// Restore adjusts counters and the wall-clock anchor so that subsequent
// CheckTime calls behave as if elapsed time were preserved across
// suspension/resumption, even on a different machine.
func (b *Budget) Restore(cp Checkpoint) {
	b.GasUsed = cp.GasUsed
	b.MemoryUsed = cp.MemoryUsed
	b.StackDepth = cp.StackDepth
	b.ObjectCount = cp.ObjectCount
	b.startTime = time.Now().Add(-time.Duration(cp.ElapsedMs) * time.Millisecond)
}
