package core

import "sync"

// FrameKind distinguishes the four frame variants an invocation can push:
// a Wasm contract invocation, a bookkeeping frame for a host function's own
// nested work, the built-in token contract, and a natively-linked test
// contract.
type FrameKind uint8

const (
	FrameContractVM FrameKind = iota
	FrameHostFunction
	FrameToken
	FrameTestContract
)

// FrameState is the state machine a frame walks through:
// Entered -> (Running <-> NestedCalling) -> Exiting -> Returned|Failed.
type FrameState uint8

const (
	FrameEntered FrameState = iota
	FrameRunning
	FrameNestedCalling
	FrameExiting
	FrameReturned
	FrameFailed
)

// ContractReentryMode is kept internal: the guest ABI (functions_call.go)
// only ever passes Prohibited, but callNInternal (call.go) itself accepts the
// flag so a future ABI version can surface it.
type ContractReentryMode uint8

const (
	ReentryProhibited ContractReentryMode = iota
	reentryAllowed                        // unexported: no ABI entry point yet
)

// Frame is one activation record on the Host's invocation stack.
type Frame struct {
	Kind       FrameKind
	ContractID Address
	Function   string
	Args       []Val
	PRNG       *FramePRNG
	State      FrameState

	// instanceStorage is loaded lazily on first access and written back to
	// Storage only on a successful Exiting transition.
	instanceStorage     *HostMap
	instanceStorageUsed bool

	// PanicSlot holds the typed error a caught guest panic converts to,
	// valid only for FrameTestContract frames (core/testcontract.go).
	PanicSlot *HostError
}

// FrameStack is the Host's call stack. Not safe for concurrent use from
// multiple goroutines — the host is single-threaded per invocation. Its
// methods serialize through a plain sync.Mutex; unlike guard.go, it does not
// detect reentrant access.
type FrameStack struct {
	mu       sync.Mutex
	frames   []*Frame
	basePRNG *FramePRNG
	depth    int
}

const defaultMaxFrameDepth = DefaultHostDepthLimit

func NewFrameStack(basePRNG *FramePRNG) *FrameStack {
	return &FrameStack{basePRNG: basePRNG}
}

// Contains reports whether contractID already appears anywhere in the
// current stack, used to enforce Prohibited reentry.
func (s *FrameStack) Contains(contractID Address) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.frames {
		if f.Kind != FrameHostFunction && f.ContractID == contractID {
			return true
		}
	}
	return false
}

// Push seeds a new frame's PRNG deterministically from the base PRNG forked
// by stack depth, and appends it to the stack.
func (s *FrameStack) Push(kind FrameKind, contractID Address, function string, args []Val) (*Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) >= defaultMaxFrameDepth {
		return nil, NewHostError(ErrContext, ErrCodeInvalidAction, "frame stack depth limit exceeded")
	}
	f := &Frame{
		Kind: kind, ContractID: contractID, Function: function, Args: args,
		PRNG: s.basePRNG.Fork(uint32(len(s.frames))), State: FrameEntered,
	}
	s.frames = append(s.frames, f)
	return f, nil
}

// Pop removes the top frame, used on both normal return and error unwind.
func (s *FrameStack) Pop() *Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return nil
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return f
}

func (s *FrameStack) Current() *Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

func (s *FrameStack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

// IsRoot reports whether the stack is currently empty, i.e. the next pushed
// frame will be the top-level invocation.
func (s *FrameStack) IsRoot() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames) == 0
}

// loadInstanceStorage lazily hydrates a frame's instance storage map the
// first time it is touched.
func (f *Frame) loadInstanceStorage(st *Storage) error {
	if f.instanceStorageUsed {
		return nil
	}
	entry, err := st.Get(InstanceKey(f.ContractID))
	if err != nil {
		if he := asHostError(err); he.Code == ErrCodeMissingValue {
			f.instanceStorage = NewHostMap()
			f.instanceStorageUsed = true
			return nil
		}
		return err
	}
	m, decodeErr := decodeHostMap(entry.Data)
	if decodeErr != nil {
		return decodeErr
	}
	f.instanceStorage = m
	f.instanceStorageUsed = true
	return nil
}
