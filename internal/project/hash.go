package project

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// Digest is a 64-bit content hash used as a cache key.
type Digest uint64

func (d Digest) String() string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(d))
	return hex.EncodeToString(b[:])
}

// Hasher accumulates length-prefixed parts, so ("ab","c") and ("a","bc")
// produce different digests.
type Hasher struct {
	h *xxhash.Digest
}

func NewHasher() *Hasher { return &Hasher{h: xxhash.New()} }

func (h *Hasher) Add(part []byte) *Hasher {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(part)))
	_, _ = h.h.Write(n[:])
	_, _ = h.h.Write(part)
	return h
}

func (h *Hasher) AddString(part string) *Hasher { return h.Add([]byte(part)) }

func (h *Hasher) Sum() Digest { return Digest(h.h.Sum64()) }

// Combine hashes parts in order.
func Combine(parts ...[]byte) Digest {
	h := NewHasher()
	for _, p := range parts {
		h.Add(p)
	}
	return h.Sum()
}
