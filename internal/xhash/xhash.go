// Package xhash provides the structural-hash combinator shared by expr and
// network. It centralizes the one hashing primitive the rest of the module
// depends on so that every package combines fingerprints the same way.
package xhash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Seed is a 64-bit fingerprint. Zero is a valid value but is never emitted
// by Of/String for non-empty input; callers may reserve it as "unset".
type Seed = uint64

// Of hashes a byte string to a Seed.
func Of(b []byte) Seed {
	return xxhash.Sum64(b)
}

// String hashes a Go string without an extra allocation.
func String(s string) Seed {
	return xxhash.Sum64String(s)
}

// Uint64 hashes a single uint64, used for combining small integer fields
// (arities, tags, ids) into a running fingerprint.
func Uint64(v uint64) Seed {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return xxhash.Sum64(buf[:])
}

// Combine folds h2 into the running hash h1. The combinator is
// order-sensitive by design: Combine(a, b) != Combine(b, a) in general,
// which is required for structural hashes of ordered children (Sum/Product
// members, Tensor slots) to depend on their order.
//
// The salt spreads near-collisions apart; it is applied on every combine
// so that the whole module has exactly one mixing constant to reason
// about.
const salt uint64 = 0x43d2c59cb15b73f0

func Combine(h1, h2 Seed) Seed {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], h1)
	binary.LittleEndian.PutUint64(buf[8:16], h2^salt)
	return xxhash.Sum64(buf[:])
}
