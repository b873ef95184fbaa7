package core

import "testing"

func runInsideFrame(t *testing.T, run func(ctx *VMContext) (Val, error)) Val {
	t.Helper()
	addr := addrFixture(40)
	fp := NewFootprint()
	st := NewStorage(fp, 1000, nil)
	reg := NewContractRegistry()
	_ = reg.Deploy(st, addr, []byte{1}, false)
	h := NewHost(st, NewBudget(0, 0, nil), &routingVM{run: run})
	h.SetContractRegistry(reg)
	out, err := h.Invoke(addr, "run", nil)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	return out
}

func TestPRNGU64InInclusiveRangeInsideFrame(t *testing.T) {
	var h *Host
	out := runInsideFrame(t, func(ctx *VMContext) (Val, error) {
		h = ctx.Host
		return ctx.Host.PRNGU64InInclusiveRange(5, 5)
	})
	got, err := Get[U64Box](h.objects, out)
	if err != nil {
		t.Fatalf("Get U64Box: %v", err)
	}
	if uint64(got) != 5 {
		t.Fatalf("want 5, got %d", got)
	}
}

func TestPRNGU64InInclusiveRangeRejectsInvertedBoundsInsideFrame(t *testing.T) {
	addr := addrFixture(41)
	fp := NewFootprint()
	st := NewStorage(fp, 1000, nil)
	reg := NewContractRegistry()
	_ = reg.Deploy(st, addr, []byte{1}, false)
	h := NewHost(st, NewBudget(0, 0, nil), &routingVM{run: func(ctx *VMContext) (Val, error) {
		return ctx.Host.PRNGU64InInclusiveRange(10, 1)
	}})
	h.SetContractRegistry(reg)
	if _, err := h.Invoke(addr, "run", nil); err == nil {
		t.Fatalf("expected inverted bounds to fail")
	}
}

func TestPRNGVecShuffleInsideFrame(t *testing.T) {
	addr := addrFixture(42)
	fp := NewFootprint()
	st := NewStorage(fp, 1000, nil)
	reg := NewContractRegistry()
	_ = reg.Deploy(st, addr, []byte{1}, false)

	var shuffled *HostVec
	h := NewHost(st, NewBudget(0, 0, nil), &routingVM{run: func(ctx *VMContext) (Val, error) {
		vecVal, err := ctx.Host.objects.Add(NewHostVec(U32Val(1), U32Val(2), U32Val(3)))
		if err != nil {
			return Val{}, err
		}
		out, err := ctx.Host.PRNGVecShuffle(vecVal)
		if err != nil {
			return Val{}, err
		}
		shuffled, err = Get[*HostVec](ctx.Host.objects, out)
		return out, err
	}})
	h.SetContractRegistry(reg)

	if _, err := h.Invoke(addr, "run", nil); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if shuffled == nil || shuffled.Len() != 3 {
		t.Fatalf("expected a shuffled 3-element vec, got %+v", shuffled)
	}
}
