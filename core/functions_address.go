package core

// address host-function module: require_auth, authorize_as_curr_contract,
// and address<->bytes conversions.

func (h *Host) RequireAuth(addrVal Val) error {
	addr, err := Get[Address](h.objects, addrVal)
	if err != nil {
		return err
	}
	f := h.frames.Current()
	if f == nil {
		return NewHostError(ErrContext, ErrCodeInternalError, "require_auth outside a frame")
	}
	return h.auth.RequireAuth(addr, f.ContractID, f.Function, f.Args, h.frames.Depth() == 1)
}

// RequireAuthForArgs authorizes exactly the caller-supplied argument set
// rather than the full current frame's args, used when a contract wants to
// authorize a sub-action distinct from its own invocation signature.
func (h *Host) RequireAuthForArgs(addrVal Val, function string, args []Val) error {
	addr, err := Get[Address](h.objects, addrVal)
	if err != nil {
		return err
	}
	return h.auth.RequireAuth(addr, h.CurrentContract(), function, args, h.frames.Depth() == 1)
}

// AuthorizeAsCurrContract lets the currently executing contract pre-declare
// sub-invocations it will itself perform on addr's behalf.
func (h *Host) AuthorizeAsCurrContract(addrVal Val, nodes []*InvocationNode) error {
	addr, err := Get[Address](h.objects, addrVal)
	if err != nil {
		return err
	}
	h.auth.AuthorizeAsCurrContract(addr, nodes)
	return nil
}

func (h *Host) AddressFromBytesVal(b []byte) (Val, error) {
	addr, err := AddressFromBytes(b)
	if err != nil {
		return Val{}, err
	}
	return h.objects.Add(addr)
}

func (h *Host) AddressToBytes(v Val) ([]byte, error) {
	addr, err := Get[Address](h.objects, v)
	if err != nil {
		return nil, err
	}
	return addr.Bytes(), nil
}
