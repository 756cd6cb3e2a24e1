//go:build !go1.19

package ubj

import (
	"hash/maphash"
)

// maphashString is the pre-1.19 fallback for hash/maphash.String, used
// to derive the two siphash key halves in object.go.
func maphashString(seed maphash.Seed, s string) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	h.WriteString(s)
	return h.Sum64()
}
