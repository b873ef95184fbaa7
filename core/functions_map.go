package core

// map host-function module.

func (h *Host) MapNew() (Val, error) { return h.objects.Add(NewHostMap()) }

func (h *Host) MapPut(m, key, val Val) (Val, error) {
	hm, err := Get[*HostMap](h.objects, m)
	if err != nil {
		return Val{}, err
	}
	next, err := hm.Insert(h.objects, h.budget, key, val)
	if err != nil {
		return Val{}, err
	}
	return h.objects.Add(next)
}

func (h *Host) MapGet(m, key Val) (Val, error) {
	hm, err := Get[*HostMap](h.objects, m)
	if err != nil {
		return Val{}, err
	}
	return hm.Get(h.objects, h.budget, key)
}

func (h *Host) MapDel(m, key Val) (Val, error) {
	hm, err := Get[*HostMap](h.objects, m)
	if err != nil {
		return Val{}, err
	}
	next, err := hm.Remove(h.objects, h.budget, key)
	if err != nil {
		return Val{}, err
	}
	return h.objects.Add(next)
}

func (h *Host) MapHas(m, key Val) (Val, error) {
	hm, err := Get[*HostMap](h.objects, m)
	if err != nil {
		return Val{}, err
	}
	ok, err := hm.ContainsKey(h.objects, h.budget, key)
	if err != nil {
		return Val{}, err
	}
	return BoolVal(ok), nil
}

func (h *Host) MapLen(m Val) (Val, error) {
	hm, err := Get[*HostMap](h.objects, m)
	if err != nil {
		return Val{}, err
	}
	return U32Val(uint32(hm.Len())), nil
}

func (h *Host) MapKeys(m Val) (Val, error) {
	hm, err := Get[*HostMap](h.objects, m)
	if err != nil {
		return Val{}, err
	}
	keys, err := hm.Keys(h.budget)
	if err != nil {
		return Val{}, err
	}
	return h.objects.Add(keys)
}

func (h *Host) MapValues(m Val) (Val, error) {
	hm, err := Get[*HostMap](h.objects, m)
	if err != nil {
		return Val{}, err
	}
	vals, err := hm.Values(h.budget)
	if err != nil {
		return Val{}, err
	}
	return h.objects.Add(vals)
}

func (h *Host) MapGetAtIndex(m Val, i uint32) (Val, Val, error) {
	hm, err := Get[*HostMap](h.objects, m)
	if err != nil {
		return Val{}, Val{}, err
	}
	return hm.GetAtIndex(h.budget, int(i))
}

// MapNewFromLinearMemory builds a map from parallel key-symbol/value-word
// slices already decoded from guest linear memory by the VM layer, each byte
// metered under VmMemRead by the caller before this is invoked. Keys must be
// valid symbols.
func (h *Host) MapNewFromLinearMemory(keySymbols []string, vals []Val) (Val, error) {
	if len(keySymbols) != len(vals) {
		return Val{}, NewHostError(ErrValue, ErrCodeUnexpectedSize, "key/value length mismatch")
	}
	keys := make([]Val, len(keySymbols))
	for i, s := range keySymbols {
		if err := ValidateSymbol(s); err != nil {
			return Val{}, err
		}
		sv, err := h.objects.Add(Symbol(s))
		if err != nil {
			return Val{}, err
		}
		keys[i] = sv
	}
	hm, err := NewHostMapFromLinearMemory(h.objects, h.budget, keys, vals)
	if err != nil {
		return Val{}, err
	}
	return h.objects.Add(hm)
}

// MapUnpackToLinearMemory requires that the map's keys match the provided
// key symbols in order, then returns the corresponding values for the
// caller to write to linear memory.
func (h *Host) MapUnpackToLinearMemory(m Val, keySymbols []string) ([]Val, error) {
	hm, err := Get[*HostMap](h.objects, m)
	if err != nil {
		return nil, err
	}
	if hm.Len() != len(keySymbols) {
		return nil, NewHostError(ErrValue, ErrCodeUnexpectedSize, "key count mismatch")
	}
	out := make([]Val, len(keySymbols))
	for i, s := range keySymbols {
		k, v, err := hm.GetAtIndex(h.budget, i)
		if err != nil {
			return nil, err
		}
		sym, err := Get[Symbol](h.objects, k)
		if err != nil {
			return nil, err
		}
		if string(sym) != s {
			return nil, NewHostError(ErrValue, ErrCodeInvalidAction, "map keys do not match requested order")
		}
		out[i] = v
	}
	return out, nil
}
