package core

// crypto host-function module: sha256, keccak256, ed25519 verify, and
// secp256k1 recover. Primitive implementations are the audited standard
// library (sha256, ed25519) and go-ethereum/decred libraries for Keccak256
// and secp256k1 recovery; only their host-function contract — budget
// charging and Val/object wrapping — is implemented here.

import (
	"crypto/ed25519"
	"crypto/sha256"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

func hostSha256(b []byte) [32]byte { return sha256.Sum256(b) }

// Sha256 charges CostSha256 and returns a Bytes object holding the digest.
func (h *Host) Sha256(b []byte) (Val, error) {
	if err := h.budget.Charge(CostSha256, uint64(len(b))); err != nil {
		return Val{}, err
	}
	sum := sha256.Sum256(b)
	return h.objects.Add(Bytes(sum[:]))
}

// Keccak256 charges CostKeccak256 and returns a Bytes object holding the
// digest, backed by go-ethereum/crypto.
func (h *Host) Keccak256(b []byte) (Val, error) {
	if err := h.budget.Charge(CostKeccak256, uint64(len(b))); err != nil {
		return Val{}, err
	}
	sum := ethcrypto.Keccak256(b)
	return h.objects.Add(Bytes(sum))
}

// Ed25519Verify charges CostEd25519Verify and returns a bool Val.
func (h *Host) Ed25519Verify(pub, msg, sig []byte) (Val, error) {
	if err := h.budget.Charge(CostEd25519Verify, uint64(len(msg))); err != nil {
		return Val{}, err
	}
	if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return Val{}, NewHostError(ErrCrypto, ErrCodeInvalidInput, "ed25519 key/signature size")
	}
	ok := ed25519.Verify(pub, msg, sig)
	return BoolVal(ok), nil
}

// Secp256k1Recover charges CostSecp256k1Recover and returns a Bytes object
// holding the recovered uncompressed public key, grounded in the
// decred/dcrd secp256k1 library the pack's go.mod already carries.
func (h *Host) Secp256k1Recover(digest [32]byte, sig []byte, recID byte) (Val, error) {
	if err := h.budget.Charge(CostSecp256k1Recover, 1); err != nil {
		return Val{}, err
	}
	if len(sig) != 64 {
		return Val{}, NewHostError(ErrCrypto, ErrCodeInvalidInput, "secp256k1 signature must be 64 bytes")
	}
	compact := make([]byte, 65)
	compact[0] = recID + 27
	copy(compact[1:], sig)
	pub, _, err := secp256k1.RecoverCompact(compact, digest[:])
	if err != nil {
		return Val{}, NewHostError(ErrCrypto, ErrCodeInvalidInput, "secp256k1 recover: "+err.Error())
	}
	return h.objects.Add(Bytes(pub.SerializeUncompressed()))
}
