package core

// prng host-function module: guest-facing wrappers over the current
// frame's forked PRNG.

func (h *Host) currentPRNG() (*FramePRNG, error) {
	f := h.frames.Current()
	if f == nil {
		return nil, NewHostError(ErrContext, ErrCodeInternalError, "prng call outside a frame")
	}
	return f.PRNG, nil
}

func (h *Host) PRNGBytesNew(n uint32) (Val, error) {
	p, err := h.currentPRNG()
	if err != nil {
		return Val{}, err
	}
	if err := h.budget.Charge(CostHostMemAlloc, uint64(n)); err != nil {
		return Val{}, err
	}
	return h.objects.Add(Bytes(p.BytesNew(int(n))))
}

func (h *Host) PRNGU64InInclusiveRange(lo, hi uint64) (Val, error) {
	p, err := h.currentPRNG()
	if err != nil {
		return Val{}, err
	}
	v, err := p.U64InInclusiveRange(lo, hi)
	if err != nil {
		return Val{}, err
	}
	return h.objects.Add(U64Box(v))
}

func (h *Host) PRNGVecShuffle(v Val) (Val, error) {
	p, err := h.currentPRNG()
	if err != nil {
		return Val{}, err
	}
	hv, err := Get[*HostVec](h.objects, v)
	if err != nil {
		return Val{}, err
	}
	next, err := p.VecShuffle(h.budget, hv)
	if err != nil {
		return Val{}, err
	}
	return h.objects.Add(next)
}
