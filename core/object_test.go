package core

import "testing"

func TestObjectRegistryAddAndVisit(t *testing.T) {
	r := NewObjectRegistry(NewBudget(0, 0, nil))
	addr := Address{Kind: AddressAccount}
	v, err := r.Add(addr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.IsObject() {
		t.Fatalf("expected handle to be object-tagged")
	}

	var got Address
	err = r.Visit(v, func(obj HostObject) error {
		got = obj.(Address)
		return nil
	})
	if err != nil {
		t.Fatalf("Visit failed: %v", err)
	}
	if got != addr {
		t.Fatalf("round trip mismatch: want %+v got %+v", addr, got)
	}
}

func TestObjectRegistryGetTyped(t *testing.T) {
	r := NewObjectRegistry(NewBudget(0, 0, nil))
	v, err := r.Add(U64Box(7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	box, err := Get[U64Box](r, v)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if box != 7 {
		t.Fatalf("expected 7, got %d", box)
	}
}

func TestObjectRegistryGetTypeMismatch(t *testing.T) {
	r := NewObjectRegistry(NewBudget(0, 0, nil))
	v, err := r.Add(U64Box(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := Get[Address](r, v); err == nil {
		t.Fatalf("expected type mismatch error")
	}
}

func TestObjectRegistryIndexOutOfRange(t *testing.T) {
	r := NewObjectRegistry(NewBudget(0, 0, nil))
	bogus := objectVal(ObjU64, 99)
	if _, err := Get[U64Box](r, bogus); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestObjectRegistryVisitRejectsNonObjectVal(t *testing.T) {
	r := NewObjectRegistry(NewBudget(0, 0, nil))
	err := r.Visit(U32Val(5), func(HostObject) error { return nil })
	if err == nil {
		t.Fatalf("expected error for non-object Val")
	}
}

func TestObjectRegistryLen(t *testing.T) {
	r := NewObjectRegistry(NewBudget(0, 0, nil))
	if r.Len() != 0 {
		t.Fatalf("expected empty registry")
	}
	if _, err := r.Add(U64Box(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Add(U64Box(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("expected len 2, got %d", r.Len())
	}
}
