package core

// context host-function module: ledger info accessors, current contract
// address, diagnostics, and fail_with_error.

// LedgerSequence returns the current ledger sequence number.
func (h *Host) LedgerSequence() Val { return U32Val(h.ledgerInfo.SequenceNumber) }

// LedgerTimestamp returns the ledger's close timestamp.
func (h *Host) LedgerTimestamp() (Val, error) {
	return h.objects.Add(TimePoint(h.ledgerInfo.Timestamp))
}

// LedgerNetworkID returns the configured network id as a Bytes object.
func (h *Host) LedgerNetworkID() (Val, error) {
	return h.objects.Add(Bytes(h.ledgerInfo.NetworkID[:]))
}

// GetCurrentContractAddress returns the currently executing contract's
// address, derived from the top of the frame stack.
func (h *Host) GetCurrentContractAddress() (Val, error) {
	return h.objects.Add(h.CurrentContract())
}

// LogFromLinearMemory is a no-op unless the diagnostic level permits it, and
// always executes under WithFreeBudget so it never consumes consensus gas.
func (h *Host) LogFromLinearMemory(msg string, args []Val) {
	h.budget.WithFreeBudget(func() {
		h.events.EmitDiagnostic(h.budget, DiagnosticAll, msg, args...)
	})
}

// FailWithError rejects any error whose type is not Contract, matching the
// guest-visible fail_with_error contract.
func (h *Host) FailWithError(e Val) (Val, error) {
	et, ec, ok := e.AsError()
	if !ok {
		return Val{}, NewHostError(ErrValue, ErrCodeUnexpectedType, "fail_with_error requires an error Val")
	}
	if et != ErrContract {
		return Val{}, NewHostError(ErrContext, ErrCodeInvalidAction, "fail_with_error only accepts Contract-typed errors")
	}
	return Val{}, NewHostError(et, ec, "contract failure")
}

// ObjCmpHostFn exposes ObjCmp to the dispatcher as a host function.
func (h *Host) ObjCmpHostFn(a, b Val) (Val, error) {
	c, err := ObjCmp(h.objects, h.budget, a, b)
	if err != nil {
		return Val{}, err
	}
	return I32Val(int32(c)), nil
}
