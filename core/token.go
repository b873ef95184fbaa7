package core

import (
	"encoding/binary"
)

// Built-in token (asset) contract: a fixed function set natively dispatched
// rather than run through the VM (see call.go's FrameToken frame kind).
// Grounded on a minted-supply-plus-balances coin manager, generalized to
// per-contract-instance storage, an allowance table, a frozen/authorized
// flag per holder, and an admin address — a fixed asset-contract surface
// rather than a single global coin.
//
// State lives directly in Storage under the token contract's own address,
// bypassing the guest ABI's footprint declaration the same way contract
// deployment (functions_ledger.go CreateContract) seeds its own entries —
// the token contract is host-trusted code, not guest bytecode.

const (
	tokenKeyAdmin      = "admin"
	tokenKeyDecimals   = "decimals"
	tokenKeyName       = "name"
	tokenKeySymbol     = "symbol"
	tokenKeyBalPrefix  = "bal:"
	tokenKeyAuthPrefix = "auth:"
	tokenKeyAllwPrefix = "allw:"
)

func tokenKey(token Address, suffix string) LedgerKey {
	return ContractDataKey(token, []byte(suffix), Persistent)
}

func (h *Host) tokenGetRaw(token Address, suffix string) ([]byte, bool) {
	k := tokenKey(token, suffix)
	h.storage.footprint.AllowRead(k)
	e, err := h.storage.Get(k)
	if err != nil {
		return nil, false
	}
	return e.Data, true
}

func (h *Host) tokenPutRaw(token Address, suffix string, data []byte) error {
	k := tokenKey(token, suffix)
	h.storage.footprint.AllowWrite(k)
	return h.storage.Put(k, LedgerEntry{Data: data})
}

func tokenBalanceKey(addr Address) string    { return tokenKeyBalPrefix + string(addr.Bytes()) }
func tokenAuthKey(addr Address) string       { return tokenKeyAuthPrefix + string(addr.Bytes()) }
func tokenAllowanceKey(from, spender Address) string {
	return tokenKeyAllwPrefix + string(from.Bytes()) + string(spender.Bytes())
}

func (h *Host) tokenBalance(token, addr Address) uint64 {
	data, ok := h.tokenGetRaw(token, tokenBalanceKey(addr))
	if !ok || len(data) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(data)
}

func (h *Host) tokenSetBalance(token, addr Address, amount uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], amount)
	return h.tokenPutRaw(token, tokenBalanceKey(addr), buf[:])
}

func (h *Host) tokenAuthorized(token, addr Address) bool {
	data, ok := h.tokenGetRaw(token, tokenAuthKey(addr))
	return !ok || (len(data) == 1 && data[0] == 1)
}

func (h *Host) tokenSetAuthorized(token, addr Address, authorized bool) error {
	v := byte(1)
	if !authorized {
		v = 0
	}
	return h.tokenPutRaw(token, tokenAuthKey(addr), []byte{v})
}

func (h *Host) tokenAllowance(token, from, spender Address) uint64 {
	data, ok := h.tokenGetRaw(token, tokenAllowanceKey(from, spender))
	if !ok || len(data) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(data)
}

func (h *Host) tokenSetAllowance(token, from, spender Address, amount uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], amount)
	return h.tokenPutRaw(token, tokenAllowanceKey(from, spender), buf[:])
}

func (h *Host) tokenAdmin(token Address) (Address, bool) {
	data, ok := h.tokenGetRaw(token, tokenKeyAdmin)
	if !ok {
		return Address{}, false
	}
	addr, err := AddressFromBytes(data)
	if err != nil {
		return Address{}, false
	}
	return addr, true
}

func argAddress(h *Host, args []Val, i int) (Address, error) {
	return Get[Address](h.objects, mustArg(args, i))
}

func argU64(args []Val, i int) (uint64, error) {
	v := mustArg(args, i)
	if v.tag != TagU64Small {
		return 0, NewHostError(ErrValue, ErrCodeUnexpectedType, "token amount must be a u64")
	}
	if int64(v.payload) < 0 {
		return 0, NewHostError(ErrValue, ErrCodeArithDomain, "token amount must be non-negative")
	}
	return v.payload, nil
}

func (h *Host) emitTokenEvent(token Address, topic string, args ...Val) error {
	topicVal, err := h.SymbolNew(topic)
	if err != nil {
		return err
	}
	idx := h.frames.Depth() - 1
	dataVec := NewHostVec(args...)
	dataHandle, err := h.objects.Add(dataVec)
	if err != nil {
		return err
	}
	h.events.EmitContractEvent(token, []Val{topicVal}, dataHandle, idx)
	return nil
}

// dispatchToken implements the fixed asset-contract function set:
// init_asset, allowance, approve, balance,
// spendable_balance, authorized, transfer, transfer_from, burn, burn_from,
// set_authorized, mint, clawback, set_admin, admin, decimals, name, symbol.
// Every state-changing entry point other than init_asset bumps the
// instance-and-code entry and emits a typed event, and every amount argument is validated non-negative
// before use.
func dispatchToken(h *Host, function string, args []Val) (Val, error) {
	token := h.CurrentContract()

	bumpAndEmit := func(topic string, evArgs ...Val) error {
		if err := h.BumpCurrentContractInstanceAndCode(h.ledgerInfo.MinPersistentEntryExpiration, h.ledgerInfo.MaxEntryExpiration); err != nil {
			return err
		}
		return h.emitTokenEvent(token, topic, evArgs...)
	}

	switch function {
	case "init_asset":
		expected, err := argAddress(h, args, 0)
		if err != nil {
			return Val{}, err
		}
		if token != expected {
			return Val{}, NewHostError(ErrContract, ErrCodeInvalidAction, "init_asset: current contract is not the expected asset contract")
		}
		admin, err := argAddress(h, args, 1)
		if err != nil {
			return Val{}, err
		}
		if err := h.tokenPutRaw(token, tokenKeyAdmin, admin.Bytes()); err != nil {
			return Val{}, err
		}
		return VoidVal(), nil

	case "decimals":
		data, ok := h.tokenGetRaw(token, tokenKeyDecimals)
		if !ok || len(data) == 0 {
			return U32Val(7), nil
		}
		return U32Val(uint32(data[0])), nil

	case "name":
		data, _ := h.tokenGetRaw(token, tokenKeyName)
		return h.objects.Add(String(data))

	case "symbol":
		data, _ := h.tokenGetRaw(token, tokenKeySymbol)
		return h.objects.Add(String(data))

	case "admin":
		admin, ok := h.tokenAdmin(token)
		if !ok {
			return Val{}, NewHostError(ErrContract, ErrCodeMissingValue, "asset has no admin set")
		}
		return h.objects.Add(admin)

	case "set_admin":
		admin, ok := h.tokenAdmin(token)
		if ok {
			if err := h.RequireAuth(mustAddrVal(h, admin)); err != nil {
				return Val{}, err
			}
		}
		newAdmin, err := argAddress(h, args, 0)
		if err != nil {
			return Val{}, err
		}
		if err := h.tokenPutRaw(token, tokenKeyAdmin, newAdmin.Bytes()); err != nil {
			return Val{}, err
		}
		return VoidVal(), bumpAndEmit("set_admin")

	case "balance":
		addr, err := argAddress(h, args, 0)
		if err != nil {
			return Val{}, err
		}
		return h.objects.Add(U64Box(h.tokenBalance(token, addr)))

	case "spendable_balance":
		addr, err := argAddress(h, args, 0)
		if err != nil {
			return Val{}, err
		}
		bal := h.tokenBalance(token, addr)
		if !h.tokenAuthorized(token, addr) {
			bal = 0
		}
		return h.objects.Add(U64Box(bal))

	case "authorized":
		addr, err := argAddress(h, args, 0)
		if err != nil {
			return Val{}, err
		}
		return BoolVal(h.tokenAuthorized(token, addr)), nil

	case "set_authorized":
		admin, ok := h.tokenAdmin(token)
		if ok {
			if err := h.RequireAuth(mustAddrVal(h, admin)); err != nil {
				return Val{}, err
			}
		}
		addr, err := argAddress(h, args, 0)
		if err != nil {
			return Val{}, err
		}
		authVal, _ := mustArg(args, 1).AsBool()
		if err := h.tokenSetAuthorized(token, addr, authVal); err != nil {
			return Val{}, err
		}
		return VoidVal(), bumpAndEmit("set_authorized")

	case "allowance":
		from, err := argAddress(h, args, 0)
		if err != nil {
			return Val{}, err
		}
		spender, err := argAddress(h, args, 1)
		if err != nil {
			return Val{}, err
		}
		return h.objects.Add(U64Box(h.tokenAllowance(token, from, spender)))

	case "approve":
		from, err := argAddress(h, args, 0)
		if err != nil {
			return Val{}, err
		}
		if err := h.RequireAuth(mustAddrVal(h, from)); err != nil {
			return Val{}, err
		}
		spender, err := argAddress(h, args, 1)
		if err != nil {
			return Val{}, err
		}
		amount, err := argU64(args, 2)
		if err != nil {
			return Val{}, err
		}
		if err := h.tokenSetAllowance(token, from, spender, amount); err != nil {
			return Val{}, err
		}
		return VoidVal(), bumpAndEmit("approve")

	case "transfer":
		from, err := argAddress(h, args, 0)
		if err != nil {
			return Val{}, err
		}
		if err := h.RequireAuth(mustAddrVal(h, from)); err != nil {
			return Val{}, err
		}
		to, err := argAddress(h, args, 1)
		if err != nil {
			return Val{}, err
		}
		amount, err := argU64(args, 2)
		if err != nil {
			return Val{}, err
		}
		if err := h.tokenMove(token, from, to, amount); err != nil {
			return Val{}, err
		}
		return VoidVal(), bumpAndEmit("transfer")

	case "transfer_from":
		spender, err := argAddress(h, args, 0)
		if err != nil {
			return Val{}, err
		}
		if err := h.RequireAuth(mustAddrVal(h, spender)); err != nil {
			return Val{}, err
		}
		from, err := argAddress(h, args, 1)
		if err != nil {
			return Val{}, err
		}
		to, err := argAddress(h, args, 2)
		if err != nil {
			return Val{}, err
		}
		amount, err := argU64(args, 3)
		if err != nil {
			return Val{}, err
		}
		allowed := h.tokenAllowance(token, from, spender)
		if allowed < amount {
			return Val{}, NewHostError(ErrContract, ErrCodeInvalidAction, "transfer_from exceeds allowance")
		}
		if err := h.tokenMove(token, from, to, amount); err != nil {
			return Val{}, err
		}
		if err := h.tokenSetAllowance(token, from, spender, allowed-amount); err != nil {
			return Val{}, err
		}
		return VoidVal(), bumpAndEmit("transfer")

	case "burn":
		from, err := argAddress(h, args, 0)
		if err != nil {
			return Val{}, err
		}
		if err := h.RequireAuth(mustAddrVal(h, from)); err != nil {
			return Val{}, err
		}
		amount, err := argU64(args, 1)
		if err != nil {
			return Val{}, err
		}
		if err := h.tokenDebit(token, from, amount); err != nil {
			return Val{}, err
		}
		return VoidVal(), bumpAndEmit("burn")

	case "burn_from":
		spender, err := argAddress(h, args, 0)
		if err != nil {
			return Val{}, err
		}
		if err := h.RequireAuth(mustAddrVal(h, spender)); err != nil {
			return Val{}, err
		}
		from, err := argAddress(h, args, 1)
		if err != nil {
			return Val{}, err
		}
		amount, err := argU64(args, 2)
		if err != nil {
			return Val{}, err
		}
		allowed := h.tokenAllowance(token, from, spender)
		if allowed < amount {
			return Val{}, NewHostError(ErrContract, ErrCodeInvalidAction, "burn_from exceeds allowance")
		}
		if err := h.tokenDebit(token, from, amount); err != nil {
			return Val{}, err
		}
		if err := h.tokenSetAllowance(token, from, spender, allowed-amount); err != nil {
			return Val{}, err
		}
		return VoidVal(), bumpAndEmit("burn")

	case "clawback":
		admin, ok := h.tokenAdmin(token)
		if ok {
			if err := h.RequireAuth(mustAddrVal(h, admin)); err != nil {
				return Val{}, err
			}
		}
		from, err := argAddress(h, args, 0)
		if err != nil {
			return Val{}, err
		}
		amount, err := argU64(args, 1)
		if err != nil {
			return Val{}, err
		}
		if err := h.tokenDebit(token, from, amount); err != nil {
			return Val{}, err
		}
		return VoidVal(), bumpAndEmit("clawback")

	case "mint":
		admin, ok := h.tokenAdmin(token)
		if ok {
			if err := h.RequireAuth(mustAddrVal(h, admin)); err != nil {
				return Val{}, err
			}
		}
		to, err := argAddress(h, args, 0)
		if err != nil {
			return Val{}, err
		}
		amount, err := argU64(args, 1)
		if err != nil {
			return Val{}, err
		}
		if err := h.tokenSetBalance(token, to, h.tokenBalance(token, to)+amount); err != nil {
			return Val{}, err
		}
		return VoidVal(), bumpAndEmit("mint")

	default:
		return Val{}, NewHostError(ErrContract, ErrCodeUnexpectedType, "unknown asset contract function: "+function)
	}
}

func (h *Host) tokenMove(token, from, to Address, amount uint64) error {
	if !h.tokenAuthorized(token, from) || !h.tokenAuthorized(token, to) {
		return NewHostError(ErrContract, ErrCodeInvalidAction, "transfer involves a deauthorized holder")
	}
	if err := h.tokenDebit(token, from, amount); err != nil {
		return err
	}
	return h.tokenSetBalance(token, to, h.tokenBalance(token, to)+amount)
}

func (h *Host) tokenDebit(token, from Address, amount uint64) error {
	bal := h.tokenBalance(token, from)
	if bal < amount {
		return NewHostError(ErrContract, ErrCodeInvalidAction, "insufficient balance")
	}
	return h.tokenSetBalance(token, from, bal-amount)
}

// mustAddrVal re-boxes addr as a Val for the RequireAuth call sites above,
// which take the guest-visible handle form rather than the native struct.
func mustAddrVal(h *Host, addr Address) Val {
	v, err := h.objects.Add(addr)
	if err != nil {
		return Val{}
	}
	return v
}
