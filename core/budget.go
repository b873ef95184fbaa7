package core

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// CostType is the closed set of operations the Budget meters. Every
// allocation, comparison, clone and byte-copy the host performs must route
// through one of these before the work happens.
type CostType uint8

const (
	CostHostMemAlloc CostType = iota
	CostHostMemCpy
	CostHostMemCmp
	CostVmMemRead
	CostVmMemWrite
	CostMapEntry
	CostVecEntry
	CostInt256AddSub
	CostInt256Mul
	CostInt256Div
	CostInt256Pow
	CostInt256Shift
	CostSha256
	CostKeccak256
	CostEd25519Verify
	CostSecp256k1Recover
	CostVmInstantiation
	CostWasmInsnExec
	CostValXdrConv
)

func (c CostType) String() string {
	names := [...]string{
		"HostMemAlloc", "HostMemCpy", "HostMemCmp", "VmMemRead", "VmMemWrite",
		"MapEntry", "VecEntry", "Int256AddSub", "Int256Mul", "Int256Div",
		"Int256Pow", "Int256Shift", "Sha256", "Keccak256", "Ed25519Verify",
		"Secp256k1Recover", "VmInstantiation", "WasmInsnExec", "ValXdrConv",
	}
	if int(c) < len(names) {
		return names[c]
	}
	return "Unknown"
}

// CostModel prices one unit of a CostType as cpu = const + linear*input,
// mem = memConst + memLinear*input: a flat per-opcode gas table generalized
// with a linear term so per-byte/per-element operations scale with their
// input size.
type CostModel struct {
	CPUConst   uint64
	CPULinear  uint64
	MemConst   uint64
	MemLinear  uint64
}

func (m CostModel) eval(input uint64) (cpu, mem uint64) {
	return m.CPUConst + m.CPULinear*input, m.MemConst + m.MemLinear*input
}

// DefaultCostModel is charged for any cost type that has slipped through the
// cracks of defaultCostTable. Deliberately punitive, logged once.
var DefaultCostModel = CostModel{CPUConst: 100_000, MemConst: 100_000}

var defaultCostTable = map[CostType]CostModel{
	CostHostMemAlloc:     {CPUConst: 40, MemConst: 16},
	CostHostMemCpy:       {CPULinear: 1, MemLinear: 1},
	CostHostMemCmp:       {CPULinear: 1},
	CostVmMemRead:        {CPULinear: 1, MemLinear: 1},
	CostVmMemWrite:       {CPULinear: 1, MemLinear: 1},
	CostMapEntry:         {CPUConst: 60, MemConst: 32},
	CostVecEntry:         {CPUConst: 30, MemConst: 16},
	CostInt256AddSub:     {CPUConst: 80},
	CostInt256Mul:        {CPUConst: 160},
	CostInt256Div:        {CPUConst: 200},
	CostInt256Pow:        {CPUConst: 480},
	CostInt256Shift:      {CPUConst: 60},
	CostSha256:           {CPUConst: 4000, CPULinear: 20},
	CostKeccak256:        {CPUConst: 4000, CPULinear: 20},
	CostEd25519Verify:    {CPUConst: 350_000},
	CostSecp256k1Recover: {CPUConst: 700_000},
	CostVmInstantiation:  {CPUConst: 1_000_000, MemConst: 1 << 16},
	CostWasmInsnExec:     {CPULinear: 1},
	CostValXdrConv:       {CPUConst: 20, CPULinear: 4},
}

// Budget accumulates cpu and mem cost units under named cost types, failing
// ExceededLimit when either crosses its configured limit.
type Budget struct {
	mu sync.Mutex

	models map[CostType]CostModel
	logger *logrus.Logger

	cpuCount, memCount uint64
	cpuLimit, memLimit uint64

	free   bool // true while inside WithFreeBudget
	warned map[CostType]bool
}

func NewBudget(cpuLimit, memLimit uint64, logger *logrus.Logger) *Budget {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Budget{
		models:   defaultCostTable,
		logger:   logger,
		cpuLimit: cpuLimit,
		memLimit: memLimit,
		warned:   make(map[CostType]bool),
	}
}

// Charge adds model(costType, input) to the cumulative counters and fails
// with Budget/ExceededLimit if either limit is crossed. No-op while the
// budget is suspended via WithFreeBudget.
func (b *Budget) Charge(ct CostType, input uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.free {
		return nil
	}
	model, ok := b.models[ct]
	if !ok {
		if !b.warned[ct] {
			b.warned[ct] = true
			b.logger.Warnf("budget: missing cost model for %s, charging default", ct)
		}
		model = DefaultCostModel
	}
	cpu, mem := model.eval(input)
	cpuNext := b.cpuCount + cpu
	memNext := b.memCount + mem
	if b.cpuLimit > 0 && cpuNext > b.cpuLimit {
		return NewHostError(ErrBudget, ErrCodeExceededLimit, "cpu budget exceeded")
	}
	if b.memLimit > 0 && memNext > b.memLimit {
		return NewHostError(ErrBudget, ErrCodeExceededLimit, "mem budget exceeded")
	}
	b.cpuCount, b.memCount = cpuNext, memNext
	return nil
}

// WithFreeBudget suspends charging for the duration of f, for diagnostic-only
// work such as log_from_linear_memory. Never reachable from a
// consensus-observable path.
//
// TODO: split diagnostic logging onto its own metered "debug budget" instead
// of riding the free-budget path; left as an explicit hook per the pending
// upstream migration.
func (b *Budget) WithFreeBudget(f func()) {
	b.mu.Lock()
	wasFree := b.free
	b.free = true
	b.mu.Unlock()

	f()

	b.mu.Lock()
	b.free = wasFree
	b.mu.Unlock()
}

// Counts returns the current cumulative (cpu, mem) usage.
func (b *Budget) Counts() (cpu, mem uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cpuCount, b.memCount
}

// Reset zeroes the cumulative counters, used between top-level invocations
// when a Host instance is reused in test harnesses.
func (b *Budget) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cpuCount, b.memCount = 0, 0
}
