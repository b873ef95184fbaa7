package core

import "bytes"

// DefaultHostDepthLimit bounds every recursive comparison, clone and value
// conversion to guard against adversarial nested objects blowing the native
// stack.
const DefaultHostDepthLimit = 100

// scValOrdinal orders Vals by their declared ScVal type when they are not
// directly comparable (rule 3 of obj_cmp). The ordering is total and fixed;
// changing it would be a consensus-breaking change.
func scValOrdinal(v Val) int {
	switch v.tag {
	case TagVoid:
		return 0
	case TagTrue, TagFalse:
		return 1
	case TagError:
		return 2
	case TagU32:
		return 3
	case TagI32:
		return 4
	case TagU64Small:
		return 5
	case TagI64Small:
		return 6
	case TagTimepointSmall:
		return 7
	case TagDurationSmall:
		return 8
	case TagU256Small:
		return 11
	case TagI256Small:
		return 12
	case TagSymbolSmall:
		return 15
	}
	objOrdinals := [...]int{
		ObjU64: 5, ObjI64: 6, ObjTimepoint: 7, ObjDuration: 8,
		ObjU128: 9, ObjI128: 10, ObjU256: 11, ObjI256: 12,
		ObjBytes: 13, ObjString: 14, ObjSymbol: 15, ObjVec: 16,
		ObjMap: 17, ObjAddress: 18, ObjContractExecutable: 19,
	}
	if tag, _, ok := v.ObjectHandle(); ok && int(tag) < len(objOrdinals) {
		return objOrdinals[tag]
	}
	return 99
}

// ObjCmp implements the total order over Vals:
// same-type objects compare canonically, an object and a compatible
// immediate reduce to the same-typed comparison, and everything else falls
// back to the ScVal-type ordinal. Every byte compared charges HostMemCmp.
func ObjCmp(reg *ObjectRegistry, bud *Budget, a, b Val) (int, error) {
	return objCmpDepth(reg, bud, a, b, 0)
}

func objCmpDepth(reg *ObjectRegistry, bud *Budget, a, b Val, depth int) (int, error) {
	if depth > DefaultHostDepthLimit {
		return 0, NewHostError(ErrValue, ErrCodeInvalidAction, "comparison recursion depth exceeded")
	}

	aTag, aIdx, aIsObj := a.ObjectHandle()
	bTag, bIdx, bIsObj := b.ObjectHandle()

	switch {
	case aIsObj && bIsObj && aTag == bTag:
		if err := reg.checkType(aIdx, aTag); err != nil {
			return 0, err
		}
		if err := reg.checkType(bIdx, bTag); err != nil {
			return 0, err
		}
		return compareSameTypeObjects(reg, bud, reg.entries[aIdx], reg.entries[bIdx], depth)
	case aIsObj != bIsObj:
		// rule 2: reduce an object vs. compatible small immediate to a
		// same-typed comparison where possible.
		if c, ok, err := reduceImmediateForCompare(reg, a, b); ok {
			return c, err
		}
	case !aIsObj && !bIsObj && a.tag == b.tag:
		return compareImmediates(a, b), nil
	}

	// true and false share an ordinal; false orders before true.
	if ab, ok := a.AsBool(); ok {
		if bb, ok := b.AsBool(); ok && ab != bb {
			if ab {
				return 1, nil
			}
			return -1, nil
		}
	}

	oa, ob := scValOrdinal(a), scValOrdinal(b)
	switch {
	case oa < ob:
		return -1, nil
	case oa > ob:
		return 1, nil
	default:
		return 0, nil
	}
}

func compareImmediates(a, b Val) int {
	switch a.tag {
	case TagU32:
		return cmpUint64(a.payload, b.payload)
	case TagI32:
		return cmpInt64(int64(int32(uint32(a.payload))), int64(int32(uint32(b.payload))))
	case TagU64Small, TagTimepointSmall, TagDurationSmall, TagU256Small:
		return cmpUint64(a.payload, b.payload)
	case TagI64Small, TagI256Small:
		return cmpInt64(int64(a.payload), int64(b.payload))
	case TagError:
		return cmpUint64(a.payload, b.payload)
	case TagSymbolSmall:
		as, _ := a.AsSymbolSmall()
		bs, _ := b.AsSymbolSmall()
		return bytes.Compare([]byte(as), []byte(bs))
	default:
		return 0
	}
}

// reduceImmediateForCompare compares a mismatched object/immediate pair when
// the object's type has a compatible small-immediate counterpart: ObjU64 vs
// TagU64Small, ObjI64 vs TagI64Small, ObjSymbol vs TagSymbolSmall. Every
// other object type has no
// immediate analogue and falls back to the ScVal-ordinal comparison in the
// caller.
func reduceImmediateForCompare(reg *ObjectRegistry, a, b Val) (int, bool, error) {
	obj, imm, objIsA := a, b, true
	if _, _, ok := a.ObjectHandle(); !ok {
		obj, imm, objIsA = b, a, false
	}

	tag, _, ok := obj.ObjectHandle()
	if !ok {
		return 0, false, nil
	}

	var c int
	switch tag {
	case ObjU64:
		if imm.tag != TagU64Small {
			return 0, false, nil
		}
		v, err := Get[U64Box](reg, obj)
		if err != nil {
			return 0, false, err
		}
		c = cmpUint64(uint64(v), imm.payload)
	case ObjI64:
		if imm.tag != TagI64Small {
			return 0, false, nil
		}
		v, err := Get[I64Box](reg, obj)
		if err != nil {
			return 0, false, err
		}
		c = cmpInt64(int64(v), int64(imm.payload))
	case ObjSymbol:
		if imm.tag != TagSymbolSmall {
			return 0, false, nil
		}
		v, err := Get[Symbol](reg, obj)
		if err != nil {
			return 0, false, err
		}
		s, _ := imm.AsSymbolSmall()
		c = bytes.Compare([]byte(v), []byte(s))
	default:
		return 0, false, nil
	}

	if !objIsA {
		c = -c
	}
	return c, true, nil
}

func compareSameTypeObjects(reg *ObjectRegistry, bud *Budget, a, b HostObject, depth int) (int, error) {
	switch av := a.(type) {
	case U64Box:
		bv := b.(U64Box)
		return cmpUint64(uint64(av), uint64(bv)), nil
	case I64Box:
		bv := b.(I64Box)
		return cmpInt64(int64(av), int64(bv)), nil
	case TimePoint:
		bv := b.(TimePoint)
		return cmpUint64(uint64(av), uint64(bv)), nil
	case Duration:
		bv := b.(Duration)
		return cmpUint64(uint64(av), uint64(bv)), nil
	case U128:
		bv := b.(U128)
		if c := cmpUint64(av.Hi, bv.Hi); c != 0 {
			return c, nil
		}
		return cmpUint64(av.Lo, bv.Lo), nil
	case I128:
		bv := b.(I128)
		if c := cmpInt64(av.Hi, bv.Hi); c != 0 {
			return c, nil
		}
		return cmpUint64(av.Lo, bv.Lo), nil
	case U256:
		bv := b.(U256)
		return av.Cmp(bv), nil
	case I256:
		bv := b.(I256)
		return compareI256(av, bv), nil
	case Bytes:
		bv := b.(Bytes)
		if err := bud.Charge(CostHostMemCmp, uint64(max(len(av), len(bv)))); err != nil {
			return 0, err
		}
		return bytes.Compare(av, bv), nil
	case String:
		bv := b.(String)
		if err := bud.Charge(CostHostMemCmp, uint64(max(len(av), len(bv)))); err != nil {
			return 0, err
		}
		return bytes.Compare([]byte(av), []byte(bv)), nil
	case Symbol:
		bv := b.(Symbol)
		if err := bud.Charge(CostHostMemCmp, uint64(max(len(av), len(bv)))); err != nil {
			return 0, err
		}
		return bytes.Compare([]byte(av), []byte(bv)), nil
	case Address:
		bv := b.(Address)
		if av.Kind != bv.Kind {
			return cmpUint64(uint64(av.Kind), uint64(bv.Kind)), nil
		}
		if err := bud.Charge(CostHostMemCmp, 32); err != nil {
			return 0, err
		}
		return bytes.Compare(av.ID[:], bv.ID[:]), nil
	case *HostVec:
		bv := b.(*HostVec)
		return compareVecs(reg, bud, av, bv, depth)
	case *HostMap:
		bv := b.(*HostMap)
		return compareMaps(reg, bud, av, bv, depth)
	default:
		return 0, NewHostError(ErrObject, ErrCodeUnexpectedType, "incomparable object type")
	}
}

func compareI256(a, b I256) int {
	if a.Neg != b.Neg {
		if a.Neg {
			return -1
		}
		return 1
	}
	c := a.Mag.Cmp(b.Mag)
	if a.Neg {
		return -c
	}
	return c
}

func compareVecs(reg *ObjectRegistry, bud *Budget, a, b *HostVec, depth int) (int, error) {
	n := min(a.Len(), b.Len())
	for i := 0; i < n; i++ {
		c, err := objCmpDepth(reg, bud, a.items[i], b.items[i], depth+1)
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return cmpInt64(int64(a.Len()), int64(b.Len())), nil
}

func compareMaps(reg *ObjectRegistry, bud *Budget, a, b *HostMap, depth int) (int, error) {
	n := min(a.Len(), b.Len())
	for i := 0; i < n; i++ {
		if c, err := objCmpDepth(reg, bud, a.entries[i].key, b.entries[i].key, depth+1); err != nil {
			return 0, err
		} else if c != 0 {
			return c, nil
		}
		if c, err := objCmpDepth(reg, bud, a.entries[i].val, b.entries[i].val, depth+1); err != nil {
			return 0, err
		} else if c != 0 {
			return c, nil
		}
	}
	return cmpInt64(int64(a.Len()), int64(b.Len())), nil
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
