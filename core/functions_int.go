package core

// int host-function module: construct/deconstruct the integer and
// time/duration families, plus big-int arithmetic with overflow-checking
// semantics. Charging for the wide types is handled by bignum.go's U256
// arithmetic helpers; construction here charges HostMemAlloc like any other
// boxed object.

func (h *Host) ObjFromU64(v uint64) (Val, error) {
	if small, ok := U64SmallVal(v); ok {
		return small, nil
	}
	return h.objects.Add(U64Box(v))
}

func (h *Host) ObjToU64(v Val) (uint64, error) {
	if v.tag == TagU64Small {
		return v.payload, nil
	}
	box, err := Get[U64Box](h.objects, v)
	if err != nil {
		return 0, err
	}
	return uint64(box), nil
}

func (h *Host) ObjFromI64(v int64) (Val, error) {
	if small, ok := I64SmallVal(v); ok {
		return small, nil
	}
	return h.objects.Add(I64Box(v))
}

func (h *Host) ObjToI64(v Val) (int64, error) {
	if v.tag == TagI64Small {
		return int64(v.payload), nil
	}
	box, err := Get[I64Box](h.objects, v)
	if err != nil {
		return 0, err
	}
	return int64(box), nil
}

func (h *Host) ObjFromU128(hi, lo uint64) (Val, error) { return h.objects.Add(U128{Hi: hi, Lo: lo}) }
func (h *Host) ObjFromI128(hi int64, lo uint64) (Val, error) {
	return h.objects.Add(I128{Hi: hi, Lo: lo})
}

func (h *Host) ObjFromU256Pieces(v U256) (Val, error) { return h.objects.Add(v) }
func (h *Host) ObjFromI256Pieces(v I256) (Val, error) { return h.objects.Add(v) }

func (h *Host) ObjFromTimepoint(t uint64) (Val, error) { return h.objects.Add(TimePoint(t)) }
func (h *Host) ObjFromDuration(d uint64) (Val, error)  { return h.objects.Add(Duration(d)) }

// U256Add/Sub/Mul/Div dispatch to bignum.go, charging the matching
// Int256* cost type declared in budget.go.
func (h *Host) U256Add(a, b Val) (Val, error) { return h.u256Binop(a, b, U256.Add) }
func (h *Host) U256Sub(a, b Val) (Val, error) { return h.u256Binop(a, b, U256.Sub) }
func (h *Host) U256Mul(a, b Val) (Val, error) { return h.u256Binop(a, b, U256.Mul) }
func (h *Host) U256Div(a, b Val) (Val, error) { return h.u256Binop(a, b, U256.Div) }

func (h *Host) u256Binop(a, b Val, op func(U256, U256, *Budget) (U256, error)) (Val, error) {
	av, err := Get[U256](h.objects, a)
	if err != nil {
		return Val{}, err
	}
	bv, err := Get[U256](h.objects, b)
	if err != nil {
		return Val{}, err
	}
	out, err := op(av, bv, h.budget)
	if err != nil {
		return Val{}, err
	}
	return h.objects.Add(out)
}
