package core

import "testing"

func TestStorageGetRequiresFootprint(t *testing.T) {
	fp := NewFootprint()
	s := NewStorage(fp, 1000, nil)
	k := LedgerKey{Class: Persistent, Payload: []byte("k1")}

	if _, err := s.Get(k); err == nil {
		t.Fatalf("expected error reading key outside footprint")
	}

	fp.AllowRead(k)
	if _, err := s.Get(k); !isMissingValue(err) {
		t.Fatalf("expected missing value, got %v", err)
	}
}

func TestStoragePutAndGetRoundTrip(t *testing.T) {
	fp := NewFootprint()
	k := LedgerKey{Class: Persistent, Payload: []byte("k1")}
	fp.AllowWrite(k)
	fp.AllowRead(k)
	s := NewStorage(fp, 1000, nil)

	if err := s.Put(k, LedgerEntry{Data: []byte("v1"), Expiration: 10}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	e, err := s.Get(k)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(e.Data) != "v1" || e.Expiration != 10 {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestStoragePutRejectsWriteOutsideFootprint(t *testing.T) {
	fp := NewFootprint()
	k := LedgerKey{Class: Persistent, Payload: []byte("k1")}
	s := NewStorage(fp, 1000, nil)
	if err := s.Put(k, LedgerEntry{}); err == nil {
		t.Fatalf("expected error writing key outside footprint")
	}
}

func TestStorageDel(t *testing.T) {
	fp := NewFootprint()
	k := LedgerKey{Class: Temporary, Payload: []byte("k1")}
	fp.AllowWrite(k)
	fp.AllowRead(k)
	s := NewStorage(fp, 1000, nil)
	_ = s.Put(k, LedgerEntry{Data: []byte("v")})

	if err := s.Del(k); err != nil {
		t.Fatalf("Del: %v", err)
	}
	has, err := s.Has(k)
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	if has {
		t.Fatalf("expected key to be gone after Del")
	}
}

func TestStorageBumpRespectsWatermarks(t *testing.T) {
	fp := NewFootprint()
	k := LedgerKey{Class: Persistent, Payload: []byte("k1")}
	fp.AllowWrite(k)
	fp.AllowRead(k)
	s := NewStorage(fp, 1000, nil)
	_ = s.Put(k, LedgerEntry{Data: []byte("v"), Expiration: 5})

	if err := s.Bump(k, 10, 50); err != nil {
		t.Fatalf("Bump: %v", err)
	}
	e, _ := s.Get(k)
	if e.Expiration != 50 {
		t.Fatalf("want bumped to 50, got %d", e.Expiration)
	}

	// already above lowWatermark: no-op
	if err := s.Bump(k, 10, 20); err != nil {
		t.Fatalf("Bump: %v", err)
	}
	e, _ = s.Get(k)
	if e.Expiration != 50 {
		t.Fatalf("expected no-op bump to leave expiration at 50, got %d", e.Expiration)
	}
}

func TestStorageBumpRejectsInvertedWatermarks(t *testing.T) {
	s := NewStorage(nil, 1000, nil)
	if err := s.Bump(LedgerKey{}, 50, 10); err == nil {
		t.Fatalf("expected error for high < low watermark")
	}
}

func TestStorageBumpRejectsExceedingMax(t *testing.T) {
	s := NewStorage(nil, 100, nil)
	if err := s.Bump(LedgerKey{}, 0, 200); err == nil {
		t.Fatalf("expected error for watermark exceeding max entry expiration")
	}
}

func TestStorageSnapshot(t *testing.T) {
	fp := NewFootprint()
	k1 := LedgerKey{Class: Persistent, Payload: []byte("a")}
	k2 := LedgerKey{Class: Temporary, Payload: []byte("b")}
	fp.AllowWrite(k1)
	fp.AllowWrite(k2)
	s := NewStorage(fp, 1000, nil)
	_ = s.Put(k1, LedgerEntry{Data: []byte("1")})
	_ = s.Put(k2, LedgerEntry{Data: []byte("2")})

	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("want 2 entries, got %d", len(snap))
	}
}

func TestBumpContractInstanceAndCode(t *testing.T) {
	addr := Address{Kind: AddressContract, ID: [32]byte{9}}
	instKey := InstanceKey(addr)
	codeKey := ContractCodeKey(addr)

	fp := NewFootprint()
	fp.AllowWrite(instKey)
	fp.AllowRead(instKey)
	fp.AllowWrite(codeKey)
	fp.AllowRead(codeKey)
	s := NewStorage(fp, 1000, nil)
	_ = s.Put(instKey, LedgerEntry{Expiration: 1})
	_ = s.Put(codeKey, LedgerEntry{Expiration: 1})

	if err := s.BumpContractInstanceAndCode(addr, 5, 100); err != nil {
		t.Fatalf("BumpContractInstanceAndCode: %v", err)
	}
	instE, _ := s.Get(instKey)
	codeE, _ := s.Get(codeKey)
	if instE.Expiration != 100 || codeE.Expiration != 100 {
		t.Fatalf("expected both entries bumped, got inst=%d code=%d", instE.Expiration, codeE.Expiration)
	}
}

func isMissingValue(err error) bool {
	he := asHostError(err)
	return he != nil && he.Type == ErrStorage && he.Code == ErrCodeMissingValue
}
