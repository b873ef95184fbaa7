package core

// Contract registry for the execution host: Invoke/Deploy/DeriveContractAddress
// generalized to the Host's invoke_function/finish contract, with ledger
// persistence kept through Storage's Instance/code key scheme.

import (
	"sync"
	"time"
)

// SmartContract is the deployed-contract record the registry and Storage
// both reference: code, its hash, and whether it is the built-in token
// contract (dispatched natively rather than through the VM).
type SmartContract struct {
	Address        Address
	CodeHash       [32]byte
	Bytecode       []byte
	IsBuiltinToken bool
	CreatedAt      time.Time
}

// ContractRegistry is the in-memory index of deployed contracts for the
// current Host; Storage remains the durable record via ContractCodeKey.
type ContractRegistry struct {
	mu     sync.RWMutex
	byAddr map[Address]*SmartContract
}

func NewContractRegistry() *ContractRegistry {
	return &ContractRegistry{byAddr: make(map[Address]*SmartContract)}
}

func (cr *ContractRegistry) lookup(addr Address) (*SmartContract, bool) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	sc, ok := cr.byAddr[addr]
	return sc, ok
}

// Deploy registers new contract code under addr and writes it to storage
// under its code key so it survives across Host instances via Storage.Seed.
func (cr *ContractRegistry) Deploy(st *Storage, addr Address, code []byte, isToken bool) error {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	if _, exists := cr.byAddr[addr]; exists {
		return NewHostError(ErrContract, ErrCodeInvalidAction, "contract already deployed")
	}
	if len(code) == 0 && !isToken {
		return NewHostError(ErrContract, ErrCodeInvalidInput, "empty contract bytecode")
	}
	sc := &SmartContract{
		Address: addr, CodeHash: hostSha256(code), Bytecode: code,
		IsBuiltinToken: isToken, CreatedAt: time.Now().UTC(),
	}
	cr.byAddr[addr] = sc
	if st != nil {
		codeKey := ContractCodeKey(addr)
		st.footprint.AllowWrite(codeKey)
		if err := st.Put(codeKey, LedgerEntry{Data: code}); err != nil {
			return err
		}
		instKey := InstanceKey(addr)
		st.footprint.AllowWrite(instKey)
		if err := st.Put(instKey, LedgerEntry{Data: nil}); err != nil {
			return err
		}
	}
	return nil
}

// All returns a snapshot of every deployed contract known to this registry.
func (cr *ContractRegistry) All() map[Address]*SmartContract {
	cr.mu.RLock()
	defer cr.mu.RUnlock()
	out := make(map[Address]*SmartContract, len(cr.byAddr))
	for a, c := range cr.byAddr {
		out[a] = c
	}
	return out
}
