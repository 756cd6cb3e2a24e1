//go:build go1.19

package ubj

import (
	"hash/maphash"
)

// maphashString delegates to the standard library on go1.19+, which
// added maphash.String directly.
func maphashString(seed maphash.Seed, s string) uint64 {
	return maphash.String(seed, s)
}
