package core

import (
	"encoding/hex"
	"fmt"
)

// AddressKind distinguishes the two address families the host deals with.
type AddressKind uint8

const (
	AddressAccount AddressKind = iota
	AddressContract
)

// Address is a host object identifying either a source account or a
// contract instance: a (kind, id) pair sized for a 32-byte strkey-style
// identifier, grounded in the account/contract address split the built-in
// token contract depends on.
type Address struct {
	Kind AddressKind
	ID   [32]byte
}

func (Address) objectTag() ObjectTag { return ObjAddress }

// Bytes returns the canonical byte encoding: one kind byte followed by the
// 32-byte id, used as a ledger-key component throughout storage.go.
func (a Address) Bytes() []byte {
	b := make([]byte, 0, 33)
	b = append(b, byte(a.Kind))
	b = append(b, a.ID[:]...)
	return b
}

func (a Address) Hex() string { return hex.EncodeToString(a.Bytes()) }

func (a Address) String() string {
	kind := "C"
	if a.Kind == AddressAccount {
		kind = "A"
	}
	return fmt.Sprintf("%s%s", kind, hex.EncodeToString(a.ID[:8]))
}

func (a Address) IsZero() bool {
	for _, b := range a.ID {
		if b != 0 {
			return false
		}
	}
	return a.Kind == AddressAccount
}

// AddressFromBytes parses the Bytes() encoding back into an Address.
func AddressFromBytes(b []byte) (Address, error) {
	if len(b) != 33 {
		return Address{}, NewHostError(ErrValue, ErrCodeInvalidInput, "malformed address encoding")
	}
	var out Address
	out.Kind = AddressKind(b[0])
	copy(out.ID[:], b[1:])
	return out, nil
}

// ContractAddress derives a deterministic contract address from a creator
// account and the contract's code, salted with the creator's bytes.
func ContractAddress(creator Address, code []byte) Address {
	h := hostSha256(append(creator.Bytes(), code...))
	var out Address
	out.Kind = AddressContract
	copy(out.ID[:], h[:])
	return out
}

var zeroAddress Address
