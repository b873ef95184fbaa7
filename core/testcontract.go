//go:build testtools

package core

import "fmt"

// testcontract.go provides a native, in-process contract backend for tests:
// a TestContractFunc is an ordinary Go closure run directly against a Host
// under a FrameTestContract frame, with any panic it raises caught and
// converted to a typed HostError in the frame's PanicSlot rather than
// crashing the test binary. Not reachable from the Wasmer-backed production
// path — callNInternal only ever pushes FrameContractVM or FrameToken.

// TestContractFunc is a native contract body, the test-only analogue of a
// compiled Wasm entry point.
type TestContractFunc func(ctx *VMContext) (Val, error)

// TestContractRegistry maps a contract address to its native Go
// implementation.
type TestContractRegistry struct {
	funcs map[Address]TestContractFunc
}

func NewTestContractRegistry() *TestContractRegistry {
	return &TestContractRegistry{funcs: make(map[Address]TestContractFunc)}
}

func (r *TestContractRegistry) Register(addr Address, fn TestContractFunc) {
	r.funcs[addr] = fn
}

// InvokeTestContract pushes a FrameTestContract frame for contractID and runs
// its registered native body, mirroring callNInternal's push/run/pop shape
// but with a recover() bridging a guest panic into a typed HostError instead
// of propagating it.
func (h *Host) InvokeTestContract(reg *TestContractRegistry, contractID Address, function string, args []Val) (result Val, err error) {
	frame, perr := h.frames.Push(FrameTestContract, contractID, function, args)
	if perr != nil {
		return Val{}, perr
	}
	frame.State = FrameRunning

	defer func() {
		if r := recover(); r != nil {
			he := NewHostError(ErrWasmVM, ErrCodeInternalError, fmt.Sprintf("test contract panic: %v", r))
			frame.PanicSlot = he
			frame.State = FrameFailed
			h.frames.Pop()
			result, err = Val{}, he
		}
	}()

	fn, ok := reg.funcs[contractID]
	if !ok {
		frame.State = FrameFailed
		h.frames.Pop()
		return Val{}, NewHostError(ErrContract, ErrCodeMissingValue, "no native test contract registered for this address")
	}

	out, callErr := fn(&VMContext{Host: h, ContractID: contractID})
	if callErr != nil {
		frame.State = FrameFailed
		h.frames.Pop()
		return Val{}, callErr
	}
	frame.State = FrameReturned
	h.frames.Pop()
	return out, nil
}
