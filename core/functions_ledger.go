package core

// ledger host-function module: the guest-facing get/has/put/del/bump
// surface over storage.go's Storage, plus contract creation/upload/update
// hooks. Every key is the XDR encoding of the guest-supplied Val, same as
// the real host turns an ScVal storage key into its canonical bytes before
// touching the map.

func (h *Host) storageKey(keyVal Val, class StorageClass) (LedgerKey, error) {
	contract := h.CurrentContract()
	enc, err := h.SerializeToBytes(keyVal)
	if err != nil {
		return LedgerKey{}, err
	}
	return ContractDataKey(contract, enc, class), nil
}

func (h *Host) HasContractData(keyVal Val, class StorageClass) (Val, error) {
	k, err := h.storageKey(keyVal, class)
	if err != nil {
		return Val{}, err
	}
	ok, err := h.storage.Has(k)
	if err != nil {
		return Val{}, err
	}
	return BoolVal(ok), nil
}

func (h *Host) GetContractData(keyVal Val, class StorageClass) (Val, error) {
	k, err := h.storageKey(keyVal, class)
	if err != nil {
		return Val{}, err
	}
	e, err := h.storage.Get(k)
	if err != nil {
		return Val{}, err
	}
	return h.DeserializeFromBytes(e.Data)
}

func (h *Host) PutContractData(keyVal, valVal Val, class StorageClass, expiration uint32) error {
	if class == Instance {
		return NewHostError(ErrStorage, ErrCodeInvalidAction, "instance storage is mutated only through the instance update path")
	}
	k, err := h.storageKey(keyVal, class)
	if err != nil {
		return err
	}
	data, err := h.SerializeToBytes(valVal)
	if err != nil {
		return err
	}
	return h.storage.Put(k, LedgerEntry{Data: data, Expiration: expiration})
}

func (h *Host) DelContractData(keyVal Val, class StorageClass) error {
	if class == Instance {
		return NewHostError(ErrStorage, ErrCodeInvalidAction, "instance storage entries cannot be deleted")
	}
	k, err := h.storageKey(keyVal, class)
	if err != nil {
		return err
	}
	return h.storage.Del(k)
}

func (h *Host) BumpContractData(keyVal Val, class StorageClass, low, high uint32) error {
	if class == Instance {
		return NewHostError(ErrStorage, ErrCodeInvalidAction, "instance storage is bumped only through the instance update path")
	}
	k, err := h.storageKey(keyVal, class)
	if err != nil {
		return err
	}
	return h.storage.Bump(k, low, high)
}

// BumpCurrentContractInstanceAndCode bumps the currently executing
// contract's own instance and code entries, the only storage-expiration
// path reachable without an explicit key.
func (h *Host) BumpCurrentContractInstanceAndCode(low, high uint32) error {
	return h.storage.BumpContractInstanceAndCode(h.CurrentContract(), low, high)
}

// CreateContract deploys executable (a Wasm blob or a built-in marker) under
// a freshly derived address and seeds its Instance-class storage entry,
// mirroring create_contract's (deployer, salt) -> address flow.
func (h *Host) CreateContract(deployer Address, salt [32]byte, executable []byte) (Val, error) {
	addr := ContractAddress(deployer, append(salt[:], executable...))
	if h.registry == nil {
		return Val{}, NewHostError(ErrContext, ErrCodeInternalError, "no contract registry configured")
	}
	if err := h.registry.Deploy(h.storage, addr, executable, false); err != nil {
		return Val{}, err
	}
	return h.objects.Add(addr)
}

// CreateTokenContract deploys the built-in asset contract (call.go dispatches
// it natively as FrameToken rather than through the VM) under a freshly
// derived address, skipping the empty-bytecode rejection CreateContract
// applies to ordinary Wasm deployments.
func (h *Host) CreateTokenContract(deployer Address, salt [32]byte) (Val, error) {
	addr := ContractAddress(deployer, salt[:])
	if h.registry == nil {
		return Val{}, NewHostError(ErrContext, ErrCodeInternalError, "no contract registry configured")
	}
	if err := h.registry.Deploy(h.storage, addr, nil, true); err != nil {
		return Val{}, err
	}
	return h.objects.Add(addr)
}

// UpdateContractWasm replaces addr's executable code in storage under its
// code key, used by contract lifecycle upgrades; the instance entry and its
// storage are left as they are. It does not check that addr is registered
// and does not update the registry's in-memory record (Bytecode, CodeHash).
func (h *Host) UpdateContractWasm(addr Address, executable []byte) error {
	if h.registry == nil {
		return NewHostError(ErrContext, ErrCodeInternalError, "no contract registry configured")
	}
	codeKey := ContractCodeKey(addr)
	h.storage.footprint.AllowWrite(codeKey)
	return h.storage.Put(codeKey, LedgerEntry{Data: executable})
}
