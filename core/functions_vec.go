package core

// vec host-function module.

func (h *Host) VecNew() (Val, error) { return h.objects.Add(NewHostVec()) }

func (h *Host) VecGet(v Val, i uint32) (Val, error) {
	hv, err := Get[*HostVec](h.objects, v)
	if err != nil {
		return Val{}, err
	}
	return hv.Get(h.budget, int(i))
}

func (h *Host) VecSet(v Val, i uint32, x Val) (Val, error) {
	hv, err := Get[*HostVec](h.objects, v)
	if err != nil {
		return Val{}, err
	}
	next, err := hv.Set(h.budget, int(i), x)
	if err != nil {
		return Val{}, err
	}
	return h.objects.Add(next)
}

func (h *Host) VecPushBack(v, x Val) (Val, error) { return h.vecUnary(v, func(hv *HostVec) (*HostVec, error) { return hv.PushBack(h.budget, x) }) }
func (h *Host) VecPushFront(v, x Val) (Val, error) { return h.vecUnary(v, func(hv *HostVec) (*HostVec, error) { return hv.PushFront(h.budget, x) }) }
func (h *Host) VecPopBack(v Val) (Val, error) { return h.vecUnary(v, func(hv *HostVec) (*HostVec, error) { return hv.PopBack(h.budget) }) }
func (h *Host) VecPopFront(v Val) (Val, error) { return h.vecUnary(v, func(hv *HostVec) (*HostVec, error) { return hv.PopFront(h.budget) }) }

func (h *Host) VecInsert(v Val, i uint32, x Val) (Val, error) {
	return h.vecUnary(v, func(hv *HostVec) (*HostVec, error) { return hv.Insert(h.budget, int(i), x) })
}

func (h *Host) VecRemove(v Val, i uint32) (Val, error) {
	return h.vecUnary(v, func(hv *HostVec) (*HostVec, error) { return hv.Remove(h.budget, int(i)) })
}

func (h *Host) VecAppend(v, other Val) (Val, error) {
	ov, err := Get[*HostVec](h.objects, other)
	if err != nil {
		return Val{}, err
	}
	return h.vecUnary(v, func(hv *HostVec) (*HostVec, error) { return hv.Append(h.budget, ov) })
}

func (h *Host) VecSlice(v Val, lo, hi uint32) (Val, error) {
	return h.vecUnary(v, func(hv *HostVec) (*HostVec, error) { return hv.Slice(h.budget, int(lo), int(hi)) })
}

func (h *Host) VecLen(v Val) (Val, error) {
	hv, err := Get[*HostVec](h.objects, v)
	if err != nil {
		return Val{}, err
	}
	return U32Val(uint32(hv.Len())), nil
}

func (h *Host) VecFirstIndexOf(v, x Val) (Val, error) {
	hv, err := Get[*HostVec](h.objects, v)
	if err != nil {
		return Val{}, err
	}
	i, err := hv.FirstIndexOf(h.objects, h.budget, x)
	if err != nil {
		return Val{}, err
	}
	return I32Val(int32(i)), nil
}

func (h *Host) VecLastIndexOf(v, x Val) (Val, error) {
	hv, err := Get[*HostVec](h.objects, v)
	if err != nil {
		return Val{}, err
	}
	i, err := hv.LastIndexOf(h.objects, h.budget, x)
	if err != nil {
		return Val{}, err
	}
	return I32Val(int32(i)), nil
}

// VecBinarySearch returns an i64 Val where bit 63 is set iff found, the low
// 32 bits the index.
func (h *Host) VecBinarySearch(v, x Val) (Val, error) {
	hv, err := Get[*HostVec](h.objects, v)
	if err != nil {
		return Val{}, err
	}
	idx, found, err := hv.BinarySearch(h.objects, h.budget, x)
	if err != nil {
		return Val{}, err
	}
	return h.objects.Add(I64Box(int64(EncodeBinarySearch(idx, found))))
}

func (h *Host) vecUnary(v Val, f func(*HostVec) (*HostVec, error)) (Val, error) {
	hv, err := Get[*HostVec](h.objects, v)
	if err != nil {
		return Val{}, err
	}
	next, err := f(hv)
	if err != nil {
		return Val{}, err
	}
	return h.objects.Add(next)
}
