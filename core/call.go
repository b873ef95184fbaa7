package core

// callNInternal implements the cross-contract call algorithm: resolve the
// callee's executable, enforce the reentry policy, push the appropriate
// frame variant, fork its PRNG, dispatch, and pop the frame whether the
// call returns or fails.
func (h *Host) callNInternal(contractID Address, function string, args []Val, mode ContractReentryMode, isRoot bool) (Val, error) {
	sc, ok := h.registry.lookup(contractID)
	if !ok {
		return Val{}, NewHostError(ErrStorage, ErrCodeMissingValue, "contract executable not found in instance storage")
	}

	if mode == ReentryProhibited && h.frames.Contains(contractID) {
		return Val{}, NewHostError(ErrContext, ErrCodeInvalidAction, "reentrant call prohibited")
	}

	kind := FrameContractVM
	if sc.IsBuiltinToken {
		kind = FrameToken
	}

	frame, err := h.frames.Push(kind, contractID, function, args)
	if err != nil {
		return Val{}, err
	}
	frame.State = FrameRunning
	frameIdx := h.frames.Depth() - 1
	if err := h.sandboxes.Start(frameIdx, contractID, h.sandboxMemLimit, h.sandboxCPULimit); err != nil {
		h.frames.Pop()
		return Val{}, err
	}
	defer h.sandboxes.Stop(frameIdx)

	var (
		result Val
		callErr error
	)
	switch kind {
	case FrameToken:
		result, callErr = dispatchToken(h, function, args)
	default:
		if h.vm == nil {
			callErr = NewHostError(ErrWasmVM, ErrCodeInternalError, "no VM configured")
		} else {
			result, callErr = h.vm.Execute(contractID, sc.Bytecode, function, args, &VMContext{Host: h, ContractID: contractID})
		}
	}

	if callErr != nil {
		frame.State = FrameFailed
		h.frames.Pop()
		return Val{}, callErr
	}

	frame.State = FrameExiting
	if frame.instanceStorageUsed {
		enc, encErr := encodeHostMap(frame.instanceStorage)
		if encErr != nil {
			h.frames.Pop()
			return Val{}, encErr
		}
		if err := h.storage.Put(InstanceKey(contractID), LedgerEntry{Data: enc}); err != nil {
			h.frames.Pop()
			return Val{}, err
		}
	}
	frame.State = FrameReturned
	h.frames.Pop()
	return result, nil
}

// TryCall additionally distinguishes recoverable host errors — surfaced as a
// Val — from non-recoverable ones (budget exhaustion, internal invariants)
// which always propagate.
func (h *Host) TryCall(contractID Address, function string, args []Val) (Val, error) {
	result, err := h.callNInternal(contractID, function, args, ReentryProhibited, false)
	if err == nil {
		return result, nil
	}
	he := asHostError(err)
	if !he.IsRecoverable() {
		return Val{}, he
	}
	if he.Type == ErrContract {
		return he.Val(), nil
	}
	return ErrVal(ErrContext, ErrCodeInvalidAction), nil
}
