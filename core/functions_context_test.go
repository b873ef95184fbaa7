package core

import "testing"

func TestLedgerSequenceAndTimestampAndNetworkID(t *testing.T) {
	h := newLedgerTestHost()
	h.SetLedgerInfo(LedgerInfo{
		SequenceNumber: 42,
		Timestamp:      1700000000,
		NetworkID:      [32]byte{1, 2, 3},
	})

	if n, ok := h.LedgerSequence().AsU32(); !ok || n != 42 {
		t.Fatalf("want sequence 42, got %d ok=%v", n, ok)
	}

	tsVal, err := h.LedgerTimestamp()
	if err != nil {
		t.Fatalf("LedgerTimestamp: %v", err)
	}
	tp, err := Get[TimePoint](h.objects, tsVal)
	if err != nil || uint64(tp) != 1700000000 {
		t.Fatalf("unexpected timestamp: %v err %v", tp, err)
	}

	netVal, err := h.LedgerNetworkID()
	if err != nil {
		t.Fatalf("LedgerNetworkID: %v", err)
	}
	b, err := Get[Bytes](h.objects, netVal)
	if err != nil || b[0] != 1 || b[1] != 2 || b[2] != 3 {
		t.Fatalf("unexpected network id: %v err %v", b, err)
	}
}

func TestGetCurrentContractAddressAtRootIsZero(t *testing.T) {
	h := newLedgerTestHost()
	v, err := h.GetCurrentContractAddress()
	if err != nil {
		t.Fatalf("GetCurrentContractAddress: %v", err)
	}
	addr, err := Get[Address](h.objects, v)
	if err != nil || addr != (Address{}) {
		t.Fatalf("expected zero address at root, got %v err %v", addr, err)
	}
}

func TestFailWithErrorRequiresContractType(t *testing.T) {
	h := newLedgerTestHost()
	if _, err := h.FailWithError(VoidVal()); err == nil {
		t.Fatalf("expected a non-error Val to be rejected")
	}

	notContract := ErrVal(ErrValue, ErrCodeInvalidInput)
	if _, err := h.FailWithError(notContract); err == nil {
		t.Fatalf("expected a non-Contract error type to be rejected")
	}

	contractErr := ErrVal(ErrContract, ErrCodeInvalidAction)
	_, err := h.FailWithError(contractErr)
	if err == nil {
		t.Fatalf("expected FailWithError to always return an error")
	}
	he, ok := err.(*HostError)
	if !ok || he.Type != ErrContract || he.Code != ErrCodeInvalidAction {
		t.Fatalf("expected the original error type/code to propagate, got %+v", err)
	}
}

func TestObjCmpHostFn(t *testing.T) {
	h := newLedgerTestHost()
	v, err := h.ObjCmpHostFn(U32Val(1), U32Val(2))
	if err != nil {
		t.Fatalf("ObjCmpHostFn: %v", err)
	}
	if n, ok := v.AsI32(); !ok || n >= 0 {
		t.Fatalf("expected a negative comparison result, got %d ok=%v", n, ok)
	}
}

func TestLogFromLinearMemoryRecordsDiagnostic(t *testing.T) {
	h := newLedgerTestHost()
	h.events = NewEventManager(DiagnosticAll, nil)
	h.LogFromLinearMemory("hello", nil)
	if len(h.events.DiagnosticEvents()) != 1 {
		t.Fatalf("expected one diagnostic event to be recorded")
	}
}
