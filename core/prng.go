package core

import (
	"crypto/sha256"
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
)

// FramePRNG is a ChaCha-family deterministic generator. The base PRNG is
// seeded once per transaction; every frame forks its own sub-PRNG from the
// base seed domain-separated by frame index so outputs are reproducible
// regardless of call order inside a frame.
type FramePRNG struct {
	cipher *chacha20.Cipher
	zeros  [64]byte
}

// NewBasePRNG seeds the transaction-level PRNG from the processor-supplied
// 32-byte seed.
func NewBasePRNG(seed [32]byte) *FramePRNG {
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(seed[:], nonce[:])
	if err != nil {
		panic("prng: chacha20 init: " + err.Error())
	}
	return &FramePRNG{cipher: c}
}

// Fork derives a sub-PRNG for frameIndex by drawing 64 bytes from p's own
// stream (advancing it), hashing them with the big-endian index, then
// re-keying a fresh cipher from the digest: a domain-separated
// "stream || frame-index" construction.
func (p *FramePRNG) Fork(frameIndex uint32) *FramePRNG {
	var idxBuf [4]byte
	binary.BigEndian.PutUint32(idxBuf[:], frameIndex)

	seedMaterial := make([]byte, 64)
	p.fill(seedMaterial)
	digest := sha256.Sum256(append(seedMaterial, idxBuf[:]...))

	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(digest[:], nonce[:])
	if err != nil {
		panic("prng: fork: " + err.Error())
	}
	return &FramePRNG{cipher: c}
}

func (p *FramePRNG) fill(dst []byte) {
	for i := range dst {
		dst[i] = 0
	}
	p.cipher.XORKeyStream(dst, dst)
}

// BytesNew draws n deterministic bytes.
func (p *FramePRNG) BytesNew(n int) []byte {
	out := make([]byte, n)
	p.fill(out)
	return out
}

// U64InInclusiveRange draws a uniform value in [lo, hi] via rejection
// sampling, avoiding modulo bias.
func (p *FramePRNG) U64InInclusiveRange(lo, hi uint64) (uint64, error) {
	if lo > hi {
		return 0, NewHostError(ErrContext, ErrCodeInvalidInput, "prng range lo > hi")
	}
	span := hi - lo
	if span == ^uint64(0) {
		return p.draw(), nil
	}
	span++
	limit := (^uint64(0) - (^uint64(0) % span))
	for {
		v := p.draw()
		if v < limit {
			return lo + v%span, nil
		}
	}
}

func (p *FramePRNG) draw() uint64 {
	var b [8]byte
	p.fill(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// VecShuffle performs a Fisher-Yates shuffle driven by U64InInclusiveRange,
// charging through the supplied budget like any other vec operation.
func (p *FramePRNG) VecShuffle(bud *Budget, v *HostVec) (*HostVec, error) {
	items := make([]Val, v.Len())
	copy(items, v.items)
	for i := len(items) - 1; i > 0; i-- {
		if err := bud.Charge(CostVecEntry, 1); err != nil {
			return nil, err
		}
		j, err := p.U64InInclusiveRange(0, uint64(i))
		if err != nil {
			return nil, err
		}
		items[i], items[j] = items[j], items[i]
	}
	return &HostVec{items: items}, nil
}
