package core

import (
	"errors"
	"sync"
)

// ContractManager provides administrative lifecycle operations for deployed
// contracts: ownership transfer, pause/resume, and code upgrade. Ledger
// key/value persistence is generalized to Storage's LedgerKey scheme;
// gas-limit bookkeeping is dropped since the per-invocation Budget already
// meters execution cost (no per-contract static limit exists in this model).
type ContractManager struct {
	storage *Storage
	reg     *ContractRegistry
	mu      sync.RWMutex
}

const (
	ownerPrefix  = "contract:owner:"
	pausedPrefix = "contract:paused:"
)

func NewContractManager(st *Storage, reg *ContractRegistry) *ContractManager {
	return &ContractManager{storage: st, reg: reg}
}

func ownerKey(addr Address) LedgerKey {
	return LedgerKey{Class: Persistent, Payload: append([]byte(ownerPrefix), addr.Bytes()...)}
}

func pausedKey(addr Address) LedgerKey {
	return LedgerKey{Class: Persistent, Payload: append([]byte(pausedPrefix), addr.Bytes()...)}
}

func (cm *ContractManager) putState(k LedgerKey, data []byte) error {
	cm.storage.footprint.AllowWrite(k)
	return cm.storage.Put(k, LedgerEntry{Data: data})
}

func (cm *ContractManager) getState(k LedgerKey) ([]byte, error) {
	cm.storage.footprint.AllowRead(k)
	e, err := cm.storage.Get(k)
	if err != nil {
		return nil, err
	}
	return e.Data, nil
}

// TransferOwnership assigns a new owner for the contract.
func (cm *ContractManager) TransferOwnership(addr, newOwner Address) error {
	if cm.storage == nil || cm.reg == nil {
		return errors.New("contract manager not initialised")
	}
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if _, ok := cm.reg.byAddr[addr]; !ok {
		return errors.New("contract not found")
	}
	return cm.putState(ownerKey(addr), newOwner.Bytes())
}

// OwnerOf fetches the currently assigned owner of a contract. If no owner
// has been recorded the zero Address is returned.
func (cm *ContractManager) OwnerOf(addr Address) (Address, error) {
	if cm.storage == nil {
		return Address{}, errors.New("storage not available")
	}
	b, err := cm.getState(ownerKey(addr))
	if err != nil {
		if he := asHostError(err); he.Code == ErrCodeMissingValue {
			return Address{}, nil
		}
		return Address{}, err
	}
	return AddressFromBytes(b)
}

// PauseContract marks the contract as paused; callNInternal does not itself
// consult this flag, so enforcement is the processor's responsibility via
// OwnerOf/IsPaused before calling Invoke.
func (cm *ContractManager) PauseContract(addr Address) error {
	if cm.storage == nil {
		return errors.New("storage not available")
	}
	return cm.putState(pausedKey(addr), []byte{1})
}

func (cm *ContractManager) ResumeContract(addr Address) error {
	if cm.storage == nil {
		return errors.New("storage not available")
	}
	return cm.putState(pausedKey(addr), []byte{0})
}

func (cm *ContractManager) IsPaused(addr Address) bool {
	if cm.storage == nil {
		return false
	}
	b, err := cm.getState(pausedKey(addr))
	return err == nil && len(b) > 0 && b[0] == 1
}

// UpgradeContract replaces the bytecode for a deployed contract and updates
// the registry entry in place. Existing paused state is preserved since it
// lives under a separate key.
func (cm *ContractManager) UpgradeContract(addr Address, code []byte) error {
	if cm.storage == nil || cm.reg == nil {
		return errors.New("contract manager not initialised")
	}
	cm.mu.Lock()
	defer cm.mu.Unlock()
	sc, ok := cm.reg.byAddr[addr]
	if !ok {
		return errors.New("contract not found")
	}
	if cm.IsPaused(addr) {
		return errors.New("contract is paused")
	}
	sc.Bytecode = code
	sc.CodeHash = hostSha256(code)
	codeKey := ContractCodeKey(addr)
	cm.storage.footprint.AllowWrite(codeKey)
	return cm.storage.Put(codeKey, LedgerEntry{Data: code})
}

// ContractInfo returns a snapshot describing the contract's owner and
// paused status alongside its registry record.
type ContractInfo struct {
	*SmartContract
	Owner  Address
	Paused bool
}

func (cm *ContractManager) Info(addr Address) (*ContractInfo, error) {
	if cm.reg == nil {
		return nil, errors.New("registry not initialised")
	}
	cm.mu.RLock()
	sc, ok := cm.reg.byAddr[addr]
	cm.mu.RUnlock()
	if !ok {
		return nil, errors.New("contract not found")
	}
	owner, _ := cm.OwnerOf(addr)
	return &ContractInfo{SmartContract: sc, Owner: owner, Paused: cm.IsPaused(addr)}, nil
}
