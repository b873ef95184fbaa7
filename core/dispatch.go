package core

// dispatchHostFunction is the switch-based registry InvokeFunction routes
// through: guest-callable operation name -> concrete Host method. Argument
// decoding/encoding lives here so the per-module function files (functions_
// *.go) can work with native Go types instead of raw Vals.
//
// Not every one of the ~170 named operations in the surface has a dispatch
// entry yet; this covers one representative, fully wired path per module
// plus the operations the built-in token contract and tests exercise
// directly. Missing names fail closed with ErrCodeUnexpectedType rather than
// silently no-op.
func dispatchHostFunction(h *Host, call HostFunctionCall) (Val, error) {
	a := call.Args
	switch call.Name {

	// context
	case "ledger_sequence":
		return h.LedgerSequence(), nil
	case "ledger_timestamp":
		return h.LedgerTimestamp()
	case "ledger_network_id":
		return h.LedgerNetworkID()
	case "get_current_contract_address":
		return h.GetCurrentContractAddress()
	case "fail_with_error":
		return h.FailWithError(mustArg(a, 0))
	case "obj_cmp":
		return h.ObjCmpHostFn(mustArg(a, 0), mustArg(a, 1))

	// int
	case "obj_from_u64":
		return h.ObjFromU64(mustU64(a, 0))
	case "obj_to_u64":
		v, err := h.ObjToU64(mustArg(a, 0))
		if err != nil {
			return Val{}, err
		}
		small, _ := U64SmallVal(v)
		return small, nil
	case "obj_from_i64":
		return h.ObjFromI64(mustI64(a, 0))
	case "obj_to_i64":
		v, err := h.ObjToI64(mustArg(a, 0))
		if err != nil {
			return Val{}, err
		}
		small, _ := I64SmallVal(v)
		return small, nil
	case "u256_add":
		return h.U256Add(mustArg(a, 0), mustArg(a, 1))
	case "u256_sub":
		return h.U256Sub(mustArg(a, 0), mustArg(a, 1))
	case "u256_mul":
		return h.U256Mul(mustArg(a, 0), mustArg(a, 1))
	case "u256_div":
		return h.U256Div(mustArg(a, 0), mustArg(a, 1))

	// map
	case "map_new":
		return h.MapNew()
	case "map_put":
		return h.MapPut(mustArg(a, 0), mustArg(a, 1), mustArg(a, 2))
	case "map_get":
		return h.MapGet(mustArg(a, 0), mustArg(a, 1))
	case "map_del":
		return h.MapDel(mustArg(a, 0), mustArg(a, 1))
	case "map_has":
		return h.MapHas(mustArg(a, 0), mustArg(a, 1))
	case "map_len":
		return h.MapLen(mustArg(a, 0))
	case "map_keys":
		return h.MapKeys(mustArg(a, 0))
	case "map_values":
		return h.MapValues(mustArg(a, 0))

	// vec
	case "vec_new":
		return h.VecNew()
	case "vec_get":
		return h.VecGet(mustArg(a, 0), mustU32(a, 1))
	case "vec_set":
		return h.VecSet(mustArg(a, 0), mustU32(a, 1), mustArg(a, 2))
	case "vec_push_back":
		return h.VecPushBack(mustArg(a, 0), mustArg(a, 1))
	case "vec_push_front":
		return h.VecPushFront(mustArg(a, 0), mustArg(a, 1))
	case "vec_pop_back":
		return h.VecPopBack(mustArg(a, 0))
	case "vec_pop_front":
		return h.VecPopFront(mustArg(a, 0))
	case "vec_len":
		return h.VecLen(mustArg(a, 0))
	case "vec_binary_search":
		return h.VecBinarySearch(mustArg(a, 0), mustArg(a, 1))

	// buf
	case "bytes_new_from_linear_memory":
		return h.BytesNewFromLinearMemory(mustBytes(h, a, 0))
	case "bytes_len":
		return h.BytesLen(mustArg(a, 0))
	case "bytes_append":
		return h.BytesAppend(mustArg(a, 0), mustArg(a, 1))
	case "string_new":
		return h.StringNew(string(mustBytes(h, a, 0)))
	case "symbol_new":
		return h.SymbolNew(string(mustBytes(h, a, 0)))

	// ledger
	case "has_contract_data":
		return h.HasContractData(mustArg(a, 0), mustStorageClass(a, 1))
	case "get_contract_data":
		return h.GetContractData(mustArg(a, 0), mustStorageClass(a, 1))
	case "put_contract_data":
		exp := mustU32(a, 3)
		return VoidVal(), h.PutContractData(mustArg(a, 0), mustArg(a, 1), mustStorageClass(a, 2), exp)
	case "del_contract_data":
		return VoidVal(), h.DelContractData(mustArg(a, 0), mustStorageClass(a, 1))
	case "bump_contract_data":
		return VoidVal(), h.BumpContractData(mustArg(a, 0), mustStorageClass(a, 1), mustU32(a, 2), mustU32(a, 3))
	case "bump_contract_instance_and_code":
		return VoidVal(), h.BumpCurrentContractInstanceAndCode(mustU32(a, 0), mustU32(a, 1))

	// call
	case "call":
		return h.Call(mustAddress(h, a, 0), string(mustBytes(h, a, 1)), mustArg(a, 2))
	case "try_call":
		return h.TryCallWrapped(mustAddress(h, a, 0), string(mustBytes(h, a, 1)), mustArg(a, 2))

	// crypto
	case "sha256":
		return h.Sha256(mustBytes(h, a, 0))
	case "keccak256":
		return h.Keccak256(mustBytes(h, a, 0))

	// address
	case "require_auth":
		return VoidVal(), h.RequireAuth(mustArg(a, 0))
	case "address_to_bytes":
		b, err := h.AddressToBytes(mustArg(a, 0))
		if err != nil {
			return Val{}, err
		}
		return h.objects.Add(Bytes(b))

	// prng
	case "prng_bytes_new":
		return h.PRNGBytesNew(mustU32(a, 0))
	case "prng_u64_in_inclusive_range":
		return h.PRNGU64InInclusiveRange(mustU64(a, 0), mustU64(a, 1))
	case "prng_vec_shuffle":
		return h.PRNGVecShuffle(mustArg(a, 0))

	default:
		return Val{}, NewHostError(ErrContext, ErrCodeUnexpectedType, "unknown host function: "+call.Name)
	}
}

func mustArg(a []Val, i int) Val {
	if i >= len(a) {
		return Val{}
	}
	return a[i]
}

func mustU32(a []Val, i int) uint32 {
	v, _ := mustArg(a, i).AsU32()
	return v
}

func mustU64(a []Val, i int) uint64 {
	v := mustArg(a, i)
	if v.tag == TagU64Small {
		return v.payload
	}
	n, _ := v.AsU32()
	return uint64(n)
}

func mustI64(a []Val, i int) int64 {
	v := mustArg(a, i)
	if v.tag == TagI64Small {
		return int64(v.payload)
	}
	n, _ := v.AsI32()
	return int64(n)
}

func mustStorageClass(a []Val, i int) StorageClass {
	return StorageClass(mustU32(a, i))
}

func mustBytes(h *Host, a []Val, i int) []byte {
	b, err := Get[Bytes](h.objects, mustArg(a, i))
	if err != nil {
		return nil
	}
	return b
}

func mustAddress(h *Host, a []Val, i int) Address {
	addr, err := Get[Address](h.objects, mustArg(a, i))
	if err != nil {
		return Address{}
	}
	return addr
}
