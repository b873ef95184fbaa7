package core

import "testing"

func TestSerializeDeserializeImmediate(t *testing.T) {
	h := newLedgerTestHost()
	v := U32Val(42)

	b, err := h.SerializeToBytes(v)
	if err != nil {
		t.Fatalf("SerializeToBytes: %v", err)
	}
	got, err := h.DeserializeFromBytes(b)
	if err != nil {
		t.Fatalf("DeserializeFromBytes: %v", err)
	}
	if n, ok := got.AsU32(); !ok || n != 42 {
		t.Fatalf("want 42, got %d ok=%v", n, ok)
	}
}

func TestSerializeDeserializeVoid(t *testing.T) {
	h := newLedgerTestHost()
	b, err := h.SerializeToBytes(VoidVal())
	if err != nil {
		t.Fatalf("SerializeToBytes: %v", err)
	}
	got, err := h.DeserializeFromBytes(b)
	if err != nil {
		t.Fatalf("DeserializeFromBytes: %v", err)
	}
	if !got.IsVoid() {
		t.Fatalf("expected round-tripped Val to stay void")
	}
}

func TestSerializeDeserializeBytesObject(t *testing.T) {
	h := newLedgerTestHost()
	v, _ := h.BytesNew([]byte("payload"))

	b, err := h.SerializeToBytes(v)
	if err != nil {
		t.Fatalf("SerializeToBytes: %v", err)
	}
	got, err := h.DeserializeFromBytes(b)
	if err != nil {
		t.Fatalf("DeserializeFromBytes: %v", err)
	}
	out, err := Get[Bytes](h.objects, got)
	if err != nil || string(out) != "payload" {
		t.Fatalf("unexpected round-tripped bytes: %q err %v", out, err)
	}
}

func TestSerializeDeserializeAddressObject(t *testing.T) {
	h := newLedgerTestHost()
	addr := addrFixture(9)
	v, _ := h.objects.Add(addr)

	b, err := h.SerializeToBytes(v)
	if err != nil {
		t.Fatalf("SerializeToBytes: %v", err)
	}
	got, err := h.DeserializeFromBytes(b)
	if err != nil {
		t.Fatalf("DeserializeFromBytes: %v", err)
	}
	out, err := Get[Address](h.objects, got)
	if err != nil || out != addr {
		t.Fatalf("unexpected round-tripped address: %+v err %v", out, err)
	}
}

func TestSerializeDeserializeU64Box(t *testing.T) {
	h := newLedgerTestHost()
	v, _ := h.objects.Add(U64Box(1 << 60))

	b, err := h.SerializeToBytes(v)
	if err != nil {
		t.Fatalf("SerializeToBytes: %v", err)
	}
	got, err := h.DeserializeFromBytes(b)
	if err != nil {
		t.Fatalf("DeserializeFromBytes: %v", err)
	}
	out, err := Get[U64Box](h.objects, got)
	if err != nil || out != U64Box(1<<60) {
		t.Fatalf("unexpected round-tripped u64 box: %v err %v", out, err)
	}
}

func TestSerializeDeserializeU256Object(t *testing.T) {
	h := newLedgerTestHost()
	v, _ := h.objects.Add(NewU256FromUint64(12345))

	b, err := h.SerializeToBytes(v)
	if err != nil {
		t.Fatalf("SerializeToBytes: %v", err)
	}
	got, err := h.DeserializeFromBytes(b)
	if err != nil {
		t.Fatalf("DeserializeFromBytes: %v", err)
	}
	out, err := Get[U256](h.objects, got)
	if err != nil {
		t.Fatalf("Get U256: %v", err)
	}
	if out.Val.Cmp(NewU256FromUint64(12345).Val) != 0 {
		t.Fatalf("unexpected round-tripped u256: %v", out.Val)
	}
}

func TestDeserializeFromBytesRejectsGarbage(t *testing.T) {
	h := newLedgerTestHost()
	if _, err := h.DeserializeFromBytes([]byte("not json")); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}

func TestDecodeHostMapRoundTrip(t *testing.T) {
	h := newLedgerTestHost()
	m := NewHostMap()
	m, err := m.Insert(h.objects, h.budget, U32Val(1), U32Val(10))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	enc, err := encodeHostMap(m)
	if err != nil {
		t.Fatalf("encodeHostMap: %v", err)
	}
	decoded, err := decodeHostMap(enc)
	if err != nil {
		t.Fatalf("decodeHostMap: %v", err)
	}
	got, err := decoded.Get(h.objects, h.budget, U32Val(1))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if n, _ := got.AsU32(); n != 10 {
		t.Fatalf("want 10, got %d", n)
	}
}

func TestDecodeHostMapEmptyBytes(t *testing.T) {
	m, err := decodeHostMap(nil)
	if err != nil {
		t.Fatalf("decodeHostMap(nil): %v", err)
	}
	if m.Len() != 0 {
		t.Fatalf("expected an empty map for nil input, got len %d", m.Len())
	}
}
