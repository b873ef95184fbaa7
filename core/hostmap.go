package core

import "encoding/json"

// mapEntry is one key/value pair of a HostMap, kept in ObjCmp-sorted order by
// key so iteration is always deterministic.
type mapEntry struct {
	key Val
	val Val
}

// mapEntryJSON mirrors mapEntry with exported fields so xdr.go's
// encodeHostMap/decodeHostMap can serialize entries whose own fields are
// otherwise invisible to encoding/json.
type mapEntryJSON struct {
	Key Val `json:"key"`
	Val Val `json:"val"`
}

func (e mapEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(mapEntryJSON{Key: e.key, Val: e.val})
}

func (e *mapEntry) UnmarshalJSON(b []byte) error {
	var ej mapEntryJSON
	if err := json.Unmarshal(b, &ej); err != nil {
		return err
	}
	e.key, e.val = ej.Key, ej.Val
	return nil
}

// HostMap is a persistent, ordered key->value map. Keys are unique and kept
// in total host order (compare.go's ObjCmp). Get, ContainsKey and GetAtIndex
// charge one MapEntry, Insert and Remove one MapEntry per existing entry, and
// Keys and Values one VecEntry per entry; key comparisons are not charged
// beyond what ObjCmp charges (HostMemCmp for byte-like and address keys only).
// Like HostVec, this is a hand-rolled
// copy-on-write sorted slice rather than an adopted persistent-map library —
// see hostvec.go's doc comment for why.
type HostMap struct {
	entries []mapEntry
}

func (*HostMap) objectTag() ObjectTag { return ObjMap }

func NewHostMap() *HostMap { return &HostMap{} }

func (m *HostMap) Len() int { return len(m.entries) }

func (m *HostMap) clone(extra int) *HostMap {
	out := make([]mapEntry, len(m.entries), len(m.entries)+extra)
	copy(out, m.entries)
	return &HostMap{entries: out}
}

// find returns the sorted position of key and whether it is already present.
func (m *HostMap) find(reg *ObjectRegistry, bud *Budget, key Val) (int, bool, error) {
	lo, hi := 0, len(m.entries)
	for lo < hi {
		mid := (lo + hi) / 2
		c, err := ObjCmp(reg, bud, m.entries[mid].key, key)
		if err != nil {
			return 0, false, err
		}
		switch {
		case c == 0:
			return mid, true, nil
		case c < 0:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return lo, false, nil
}

func (m *HostMap) Get(reg *ObjectRegistry, bud *Budget, key Val) (Val, error) {
	if err := bud.Charge(CostMapEntry, 1); err != nil {
		return Val{}, err
	}
	i, ok, err := m.find(reg, bud, key)
	if err != nil {
		return Val{}, err
	}
	if !ok {
		return Val{}, NewHostError(ErrObject, ErrCodeMissingValue, "map key not found")
	}
	return m.entries[i].val, nil
}

func (m *HostMap) ContainsKey(reg *ObjectRegistry, bud *Budget, key Val) (bool, error) {
	if err := bud.Charge(CostMapEntry, 1); err != nil {
		return false, err
	}
	_, ok, err := m.find(reg, bud, key)
	return ok, err
}

// Insert returns a new map with key bound to val, either replacing an
// existing entry or inserting one that keeps the slice sorted.
func (m *HostMap) Insert(reg *ObjectRegistry, bud *Budget, key, val Val) (*HostMap, error) {
	if err := bud.Charge(CostMapEntry, uint64(len(m.entries))); err != nil {
		return nil, err
	}
	i, ok, err := m.find(reg, bud, key)
	if err != nil {
		return nil, err
	}
	if ok {
		out := m.clone(0)
		out.entries[i].val = val
		return out, nil
	}
	out := make([]mapEntry, 0, len(m.entries)+1)
	out = append(out, m.entries[:i]...)
	out = append(out, mapEntry{key: key, val: val})
	out = append(out, m.entries[i:]...)
	return &HostMap{entries: out}, nil
}

func (m *HostMap) Remove(reg *ObjectRegistry, bud *Budget, key Val) (*HostMap, error) {
	if err := bud.Charge(CostMapEntry, uint64(len(m.entries))); err != nil {
		return nil, err
	}
	i, ok, err := m.find(reg, bud, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewHostError(ErrObject, ErrCodeMissingValue, "map key not found")
	}
	out := make([]mapEntry, 0, len(m.entries)-1)
	out = append(out, m.entries[:i]...)
	out = append(out, m.entries[i+1:]...)
	return &HostMap{entries: out}, nil
}

// Keys returns the keys in sorted order as a new HostVec.
func (m *HostMap) Keys(bud *Budget) (*HostVec, error) {
	if err := bud.Charge(CostVecEntry, uint64(len(m.entries))); err != nil {
		return nil, err
	}
	keys := make([]Val, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.key
	}
	return &HostVec{items: keys}, nil
}

func (m *HostMap) Values(bud *Budget) (*HostVec, error) {
	if err := bud.Charge(CostVecEntry, uint64(len(m.entries))); err != nil {
		return nil, err
	}
	vals := make([]Val, len(m.entries))
	for i, e := range m.entries {
		vals[i] = e.val
	}
	return &HostVec{items: vals}, nil
}

// GetAtIndex returns the (key, value) pair at a sorted position, for guest
// ordinal iteration without re-sorting on the guest side.
func (m *HostMap) GetAtIndex(bud *Budget, i int) (Val, Val, error) {
	if err := bud.Charge(CostMapEntry, 1); err != nil {
		return Val{}, Val{}, err
	}
	if i < 0 || i >= len(m.entries) {
		return Val{}, Val{}, NewHostError(ErrObject, ErrCodeIndexBounds, "map index out of range")
	}
	return m.entries[i].key, m.entries[i].val, nil
}

// NewHostMapFromLinearMemory builds a map from parallel key/value slices
// already decoded from guest linear memory by functions_map.go, preserving
// key order validation responsibilities to the caller.
func NewHostMapFromLinearMemory(reg *ObjectRegistry, bud *Budget, keys []Val, vals []Val) (*HostMap, error) {
	if len(keys) != len(vals) {
		return nil, NewHostError(ErrValue, ErrCodeUnexpectedSize, "key/value length mismatch")
	}
	m := NewHostMap()
	for i := range keys {
		next, err := m.Insert(reg, bud, keys[i], vals[i])
		if err != nil {
			return nil, err
		}
		m = next
	}
	return m, nil
}
