package core

import (
	"sync"
	"time"
)

// SandboxInfo records the resource isolation limits the processor has
// requested for one frame's execution. In place of a package-level map
// indexed by contract address and persisted to a global ledger singleton,
// sandboxes here are keyed by frame index on the Host itself, so they are
// automatically scoped to (and cleaned up with) one invocation — a Host is
// constructed fresh per invocation, so there is no cross-invocation state
// to index by contract address.
type SandboxInfo struct {
	FrameIndex  int
	Contract    Address
	MemoryLimit uint64
	CPULimit    uint64
	Started     time.Time
	Active      bool
}

// SandboxManager tracks per-frame resource limits for the lifetime of a
// single Host. It does not itself enforce the limits — wasmer-go's own
// memory/fuel configuration does that — but gives the processor a place to
// declare and query them per frame.
type SandboxManager struct {
	mu    sync.RWMutex
	boxes map[int]*SandboxInfo
}

func NewSandboxManager() *SandboxManager {
	return &SandboxManager{boxes: make(map[int]*SandboxInfo)}
}

func (sm *SandboxManager) Start(frameIndex int, contract Address, memLimit, cpuLimit uint64) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sb, ok := sm.boxes[frameIndex]; ok && sb.Active {
		return NewHostError(ErrContext, ErrCodeInvalidAction, "sandbox already active for this frame")
	}
	sm.boxes[frameIndex] = &SandboxInfo{
		FrameIndex: frameIndex, Contract: contract,
		MemoryLimit: memLimit, CPULimit: cpuLimit,
		Started: time.Now(), Active: true,
	}
	return nil
}

// Stop marks frameIndex's sandbox inactive; called once the frame pops,
// whether on normal return or error unwind.
func (sm *SandboxManager) Stop(frameIndex int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sb, ok := sm.boxes[frameIndex]; ok {
		sb.Active = false
	}
}

func (sm *SandboxManager) Status(frameIndex int) (SandboxInfo, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	sb, ok := sm.boxes[frameIndex]
	if !ok {
		return SandboxInfo{}, false
	}
	return *sb, true
}

// Active returns every sandbox still marked active, for processor-side
// diagnostics of an in-flight call tree.
func (sm *SandboxManager) Active() []SandboxInfo {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	out := make([]SandboxInfo, 0, len(sm.boxes))
	for _, sb := range sm.boxes {
		if sb.Active {
			out = append(out, *sb)
		}
	}
	return out
}
