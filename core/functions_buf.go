package core

import "fmt"

// buf host-function module: bytes/string/symbol construction and transfer
// to/from guest linear memory. The VM layer is responsible for the actual
// linear-memory read/write; these helpers take already-sliced Go byte
// slices and charge for the copy, mirroring the split between
// wasmer-go's memory view and the host's own accounting.

func (h *Host) BytesNew(b []byte) (Val, error) {
	if err := h.budget.Charge(CostHostMemAlloc, uint64(len(b))); err != nil {
		return Val{}, err
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return h.objects.Add(Bytes(cp))
}

func (h *Host) BytesNewFromLinearMemory(mem []byte) (Val, error) {
	if err := h.budget.Charge(CostVmMemRead, uint64(len(mem))); err != nil {
		return Val{}, err
	}
	return h.BytesNew(mem)
}

func (h *Host) BytesCopyToLinearMemory(v Val) ([]byte, error) {
	b, err := Get[Bytes](h.objects, v)
	if err != nil {
		return nil, err
	}
	if err := h.budget.Charge(CostVmMemWrite, uint64(len(b))); err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (h *Host) BytesLen(v Val) (Val, error) {
	b, err := Get[Bytes](h.objects, v)
	if err != nil {
		return Val{}, err
	}
	return U32Val(uint32(len(b))), nil
}

func (h *Host) BytesGet(v Val, i uint32) (Val, error) {
	b, err := Get[Bytes](h.objects, v)
	if err != nil {
		return Val{}, err
	}
	if int(i) >= len(b) {
		return Val{}, NewHostError(ErrValue, ErrCodeIndexBounds, "bytes index out of range")
	}
	small, _ := U64SmallVal(uint64(b[i]))
	return small, nil
}

func (h *Host) BytesPut(v Val, i uint32, u byte) (Val, error) {
	b, err := Get[Bytes](h.objects, v)
	if err != nil {
		return Val{}, err
	}
	if int(i) >= len(b) {
		return Val{}, NewHostError(ErrValue, ErrCodeIndexBounds, "bytes index out of range")
	}
	if err := h.budget.Charge(CostHostMemCpy, uint64(len(b))); err != nil {
		return Val{}, err
	}
	cp := make(Bytes, len(b))
	copy(cp, b)
	cp[i] = u
	return h.objects.Add(cp)
}

func (h *Host) BytesAppend(a, b Val) (Val, error) {
	av, err := Get[Bytes](h.objects, a)
	if err != nil {
		return Val{}, err
	}
	bv, err := Get[Bytes](h.objects, b)
	if err != nil {
		return Val{}, err
	}
	if err := h.budget.Charge(CostHostMemCpy, uint64(len(av)+len(bv))); err != nil {
		return Val{}, err
	}
	out := make(Bytes, 0, len(av)+len(bv))
	out = append(out, av...)
	out = append(out, bv...)
	return h.objects.Add(out)
}

func (h *Host) BytesSlice(v Val, lo, hi uint32) (Val, error) {
	b, err := Get[Bytes](h.objects, v)
	if err != nil {
		return Val{}, err
	}
	if hi < lo || int(hi) > len(b) {
		return Val{}, NewHostError(ErrValue, ErrCodeIndexBounds, "bytes slice out of range")
	}
	if err := h.budget.Charge(CostHostMemAlloc, uint64(hi-lo)); err != nil {
		return Val{}, err
	}
	cp := make(Bytes, hi-lo)
	copy(cp, b[lo:hi])
	return h.objects.Add(cp)
}

func (h *Host) StringNew(s string) (Val, error) {
	if err := h.budget.Charge(CostHostMemAlloc, uint64(len(s))); err != nil {
		return Val{}, err
	}
	return h.objects.Add(String(s))
}

func (h *Host) StringLen(v Val) (Val, error) {
	s, err := Get[String](h.objects, v)
	if err != nil {
		return Val{}, err
	}
	return U32Val(uint32(len(s))), nil
}

// SymbolNew boxes s if it exceeds the small-symbol ceiling, otherwise
// returns an inline TagSymbolSmall immediate — callers should prefer
// checking FitsSmallSymbol themselves before boxing to avoid the
// allocation charge.
func (h *Host) SymbolNew(s string) (Val, error) {
	if err := ValidateSymbol(s); err != nil {
		return Val{}, err
	}
	if FitsSmallSymbol(s) {
		return SymbolSmallVal(s)
	}
	if err := h.budget.Charge(CostHostMemAlloc, uint64(len(s))); err != nil {
		return Val{}, err
	}
	return h.objects.Add(Symbol(s))
}

func (h *Host) SymbolIndexInLinearMemory(sym Val, slices []string) (Val, error) {
	name, err := h.symbolString(sym)
	if err != nil {
		return Val{}, err
	}
	for i, s := range slices {
		if s == name {
			return U32Val(uint32(i)), nil
		}
	}
	return Val{}, NewHostError(ErrValue, ErrCodeInvalidInput, fmt.Sprintf("symbol %q not found", name))
}

func (h *Host) symbolString(v Val) (string, error) {
	if s, ok := v.AsSymbolSmall(); ok {
		return s, nil
	}
	sym, err := Get[Symbol](h.objects, v)
	if err != nil {
		return "", err
	}
	return string(sym), nil
}
