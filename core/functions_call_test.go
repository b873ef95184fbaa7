package core

import "testing"

func TestValsOfUnpacksHostVec(t *testing.T) {
	h := newLedgerTestHost()
	vecVal, err := h.objects.Add(NewHostVec(U32Val(1), U32Val(2)))
	if err != nil {
		t.Fatalf("Add vec: %v", err)
	}
	vals, err := h.valsOf(vecVal)
	if err != nil {
		t.Fatalf("valsOf: %v", err)
	}
	if len(vals) != 2 {
		t.Fatalf("want 2 vals, got %d", len(vals))
	}
}

func TestValsOfRejectsNonVec(t *testing.T) {
	h := newLedgerTestHost()
	if _, err := h.valsOf(U32Val(1)); err == nil {
		t.Fatalf("expected error unpacking a non-vec Val")
	}
}

func TestTryCallWrappedConvertsRecoverableError(t *testing.T) {
	target := addrFixture(30)
	vm := &routingVM{run: func(ctx *VMContext) (Val, error) {
		return Val{}, NewHostError(ErrContract, ErrCodeInvalidAction, "guest rejected call")
	}}
	fp := NewFootprint()
	st := NewStorage(fp, 1000, nil)
	reg := NewContractRegistry()
	_ = reg.Deploy(st, target, []byte{1}, false)

	h := NewHost(st, NewBudget(0, 0, nil), vm)
	h.SetContractRegistry(reg)

	argsVec, _ := h.objects.Add(NewHostVec())
	out, err := h.TryCallWrapped(target, "run", argsVec)
	if err != nil {
		t.Fatalf("expected recoverable error to convert instead of propagating: %v", err)
	}
	if _, _, ok := out.AsError(); !ok {
		t.Fatalf("expected an error Val, got %+v", out)
	}
}
