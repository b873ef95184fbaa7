package core

import "testing"

// stubVM returns a fixed Val for every entry point, avoiding a real wasmer
// instance in unit tests that only exercise Host plumbing.
type stubVM struct {
	result Val
	err    error
}

func (s *stubVM) Execute(contractID Address, bytecode []byte, entry string, args []Val, ctx *VMContext) (Val, error) {
	return s.result, s.err
}

func newTestHost(vm VM) (*Host, *ContractRegistry, *Storage) {
	fp := NewFootprint()
	st := NewStorage(fp, 1000, nil)
	bud := NewBudget(0, 0, nil)
	h := NewHost(st, bud, vm)
	reg := NewContractRegistry()
	h.SetContractRegistry(reg)
	return h, reg, st
}

func TestHostInvokeDispatchesToVM(t *testing.T) {
	vm := &stubVM{result: U32Val(42)}
	h, reg, st := newTestHost(vm)
	addr := addrFixture(1)
	if err := reg.Deploy(st, addr, []byte{1, 2, 3}, false); err != nil {
		t.Fatalf("Deploy: %v", err)
	}

	out, err := h.Invoke(addr, "run", nil)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if n, ok := out.AsU32(); !ok || n != 42 {
		t.Fatalf("want 42, got %v ok=%v", n, ok)
	}
}

func TestHostInvokeUnknownContract(t *testing.T) {
	h, _, _ := newTestHost(&stubVM{})
	if _, err := h.Invoke(addrFixture(9), "run", nil); err == nil {
		t.Fatalf("expected error invoking an undeployed contract")
	}
}

func TestHostInvokePropagatesVMError(t *testing.T) {
	vm := &stubVM{err: NewHostError(ErrContract, ErrCodeInvalidAction, "boom")}
	h, reg, st := newTestHost(vm)
	addr := addrFixture(2)
	_ = reg.Deploy(st, addr, []byte{1}, false)

	if _, err := h.Invoke(addr, "run", nil); err == nil {
		t.Fatalf("expected the VM error to propagate")
	}
}

func TestHostTryCallConvertsRecoverableError(t *testing.T) {
	vm := &stubVM{err: NewHostError(ErrContract, ErrCodeInvalidAction, "boom")}
	h, reg, st := newTestHost(vm)
	addr := addrFixture(3)
	_ = reg.Deploy(st, addr, []byte{1}, false)

	out, err := h.TryCall(addr, "run", nil)
	if err != nil {
		t.Fatalf("expected recoverable error to convert to a Val, got %v", err)
	}
	if !out.IsError() {
		t.Fatalf("expected an error Val, got %v", out)
	}
}

func TestHostTryCallPropagatesBudgetError(t *testing.T) {
	vm := &stubVM{err: NewHostError(ErrBudget, ErrCodeExceededLimit, "over budget")}
	h, reg, st := newTestHost(vm)
	addr := addrFixture(4)
	_ = reg.Deploy(st, addr, []byte{1}, false)

	if _, err := h.TryCall(addr, "run", nil); err == nil {
		t.Fatalf("expected budget errors to remain non-recoverable")
	}
}

func TestHostFinishRequiresEmptyFrameStack(t *testing.T) {
	h, _, _ := newTestHost(&stubVM{})
	if _, _, err := h.Finish(); err != nil {
		t.Fatalf("Finish on a fresh host: %v", err)
	}
}

func TestHostFinishRejectsDoubleFinish(t *testing.T) {
	h, _, _ := newTestHost(&stubVM{})
	if _, _, err := h.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if _, _, err := h.Finish(); err == nil {
		t.Fatalf("expected error on double Finish")
	}
}

func TestHostCurrentContractAtRootIsZero(t *testing.T) {
	h, _, _ := newTestHost(&stubVM{})
	if !h.CurrentContract().IsZero() {
		t.Fatalf("expected zero address at root")
	}
}

func TestHostStorageGetRawMissingReturnsFalse(t *testing.T) {
	h, _, _ := newTestHost(&stubVM{})
	_, found, err := h.StorageGetRaw(Persistent, []byte("missing"))
	if err != nil {
		t.Fatalf("StorageGetRaw: %v", err)
	}
	if found {
		t.Fatalf("expected not found")
	}
}
