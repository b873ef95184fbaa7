// core/storage.go
package core

// Storage subsystem — ledger key/entry store with expiration bumping and a
// declared read/write footprint, logrus-backed and mutex-guarded in place of
// an off-chain blob gateway: this host's persistence is ledger state.

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// StorageClass is one of the three key lifetimes a ledger entry can have.
type StorageClass uint8

const (
	Temporary StorageClass = iota
	Persistent
	Instance
)

func (c StorageClass) String() string {
	switch c {
	case Temporary:
		return "temporary"
	case Persistent:
		return "persistent"
	case Instance:
		return "instance"
	default:
		return "unknown"
	}
}

// LedgerKey identifies a storage slot: a class plus an opaque payload (the
// encoded ScVal key in production, a contract-address prefix for Instance).
type LedgerKey struct {
	Class   StorageClass
	Payload []byte
}

func (k LedgerKey) bytes() []byte {
	b := make([]byte, 0, len(k.Payload)+1)
	b = append(b, byte(k.Class))
	b = append(b, k.Payload...)
	return b
}

// LedgerEntry is the value half of a storage slot plus its expiration
// ledger sequence.
type LedgerEntry struct {
	Data       []byte
	Expiration uint32
}

// Footprint declares the keys a transaction may read or write. Storage
// access outside it fails with Storage/InvalidAction.
type Footprint struct {
	ReadOnly  map[string]struct{}
	ReadWrite map[string]struct{}
}

func NewFootprint() *Footprint {
	return &Footprint{ReadOnly: make(map[string]struct{}), ReadWrite: make(map[string]struct{})}
}

func (f *Footprint) AllowRead(k LedgerKey)  { f.ReadOnly[string(k.bytes())] = struct{}{} }
func (f *Footprint) AllowWrite(k LedgerKey) { f.ReadWrite[string(k.bytes())] = struct{}{} }

func (f *Footprint) canRead(k LedgerKey) bool {
	kb := string(k.bytes())
	if _, ok := f.ReadWrite[kb]; ok {
		return true
	}
	_, ok := f.ReadOnly[kb]
	return ok
}

func (f *Footprint) canWrite(k LedgerKey) bool {
	_, ok := f.ReadWrite[string(k.bytes())]
	return ok
}

// Storage is the key->entry store the Host operates against. One Storage is
// constructed by the processor per invocation and recovered via finish().
type Storage struct {
	mu        sync.Mutex
	logger    *logrus.Logger
	entries   map[string]*LedgerEntry
	footprint *Footprint

	maxEntryExpiration uint32
}

func NewStorage(fp *Footprint, maxEntryExpiration uint32, logger *logrus.Logger) *Storage {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if fp == nil {
		fp = NewFootprint()
	}
	return &Storage{
		logger:             logger,
		entries:            make(map[string]*LedgerEntry),
		footprint:          fp,
		maxEntryExpiration: maxEntryExpiration,
	}
}

// Seed preloads an entry, used by the processor to hand the host its initial
// ledger snapshot before invocation.
func (s *Storage) Seed(k LedgerKey, e LedgerEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[string(k.bytes())] = &e
}

// Get returns the entry at k, failing Storage/MissingValue if absent.
func (s *Storage) Get(k LedgerKey) (LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.footprint.canRead(k) {
		return LedgerEntry{}, NewHostError(ErrStorage, ErrCodeInvalidAction, "key outside declared footprint")
	}
	e, ok := s.entries[string(k.bytes())]
	if !ok {
		return LedgerEntry{}, NewHostError(ErrStorage, ErrCodeMissingValue, "ledger key not found")
	}
	return *e, nil
}

// Has reports whether k is present, without requiring it be present.
func (s *Storage) Has(k LedgerKey) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.footprint.canRead(k) {
		return false, NewHostError(ErrStorage, ErrCodeInvalidAction, "key outside declared footprint")
	}
	_, ok := s.entries[string(k.bytes())]
	return ok, nil
}

// Put upserts k -> e. Instance-class writes are permitted here; the guest
// ABI (functions_ledger.go) is the layer that actually forbids Instance
// access via the generic put/bump host functions.
func (s *Storage) Put(k LedgerKey, e LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.footprint.canWrite(k) {
		return NewHostError(ErrStorage, ErrCodeInvalidAction, "key outside declared footprint")
	}
	cp := e
	s.entries[string(k.bytes())] = &cp
	return nil
}

func (s *Storage) Del(k LedgerKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.footprint.canWrite(k) {
		return NewHostError(ErrStorage, ErrCodeInvalidAction, "key outside declared footprint")
	}
	delete(s.entries, string(k.bytes()))
	return nil
}

// Bump extends k's expiration to at least highWatermark if it currently sits
// below lowWatermark; otherwise it is a no-op. highWatermark must be within
// [lowWatermark, maxEntryExpiration].
func (s *Storage) Bump(k LedgerKey, lowWatermark, highWatermark uint32) error {
	if highWatermark < lowWatermark {
		return NewHostError(ErrStorage, ErrCodeInvalidInput, "bump high watermark below low watermark")
	}
	if s.maxEntryExpiration > 0 && highWatermark > s.maxEntryExpiration {
		return NewHostError(ErrStorage, ErrCodeInvalidInput, "bump high watermark exceeds max entry expiration")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.footprint.canWrite(k) {
		return NewHostError(ErrStorage, ErrCodeInvalidAction, "key outside declared footprint")
	}
	e, ok := s.entries[string(k.bytes())]
	if !ok {
		return NewHostError(ErrStorage, ErrCodeMissingValue, "ledger key not found")
	}
	if e.Expiration < lowWatermark {
		e.Expiration = highWatermark
	}
	return nil
}

// BumpContractInstanceAndCode bumps the Instance-class entry for addr
// together with its code entry; this is the only path permitted to touch
// Instance storage expiration.
func (s *Storage) BumpContractInstanceAndCode(addr Address, lowWatermark, highWatermark uint32) error {
	instKey := InstanceKey(addr)
	codeKey := ContractCodeKey(addr)
	if err := s.Bump(instKey, lowWatermark, highWatermark); err != nil {
		return err
	}
	return s.Bump(codeKey, lowWatermark, highWatermark)
}

// Snapshot returns a defensive copy of every live entry for diagnostics or
// for finish() to hand back to the processor.
func (s *Storage) Snapshot() map[string]LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]LedgerEntry, len(s.entries))
	for k, e := range s.entries {
		out[k] = *e
	}
	return out
}

// Key helpers. ContractDataKey / ContractCodeKey / InstanceKey build the
// LedgerKey payloads the rest of the host uses, keyed by contract address:
// a data key is the address, ':' and the encoded key; code and instance keys
// put a "code:" or "instance:" prefix before the address.

func ContractDataKey(contract Address, scKey []byte, class StorageClass) LedgerKey {
	payload := make([]byte, 0, len(contract.Bytes())+len(scKey)+1)
	payload = append(payload, contract.Bytes()...)
	payload = append(payload, ':')
	payload = append(payload, scKey...)
	return LedgerKey{Class: class, Payload: payload}
}

func ContractCodeKey(addr Address) LedgerKey {
	return LedgerKey{Class: Persistent, Payload: append([]byte("code:"), addr.Bytes()...)}
}

func InstanceKey(addr Address) LedgerKey {
	return LedgerKey{Class: Instance, Payload: append([]byte("instance:"), addr.Bytes()...)}
}
