package core

// call host-function module: the guest-facing wrappers over callNInternal
// and TryCall. The guest ABI only ever requests Prohibited reentry (see
// frame.go's ContractReentryMode doc comment).

func (h *Host) Call(contract Address, function string, argsVec Val) (Val, error) {
	args, err := h.valsOf(argsVec)
	if err != nil {
		return Val{}, err
	}
	return h.callNInternal(contract, function, args, ReentryProhibited, h.frames.IsRoot())
}

func (h *Host) TryCallWrapped(contract Address, function string, argsVec Val) (Val, error) {
	args, err := h.valsOf(argsVec)
	if err != nil {
		return Val{}, err
	}
	return h.TryCall(contract, function, args)
}

func (h *Host) valsOf(v Val) ([]Val, error) {
	hv, err := Get[*HostVec](h.objects, v)
	if err != nil {
		return nil, err
	}
	out := make([]Val, hv.Len())
	for i := range out {
		out[i], err = hv.Get(h.budget, i)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
