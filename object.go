package ubj

import (
	"fmt"
	"hash/maphash"

	"github.com/aristanetworks/gomap"
	"github.com/dchest/siphash"
)

// siphashKey is the fixed process-lifetime key used to hash Object's
// string keys, the role the teacher's Dict fills with a per-Dict
// maphash.Seed (see xmaphash_118.go). A fixed key is fine here: Object
// is never used across processes for anything security-sensitive, and
// a fixed key keeps hashing allocation-free.
var siphashKey0, siphashKey1 = func() (uint64, uint64) {
	seed := maphash.MakeSeed()
	return maphashString(seed, "ubj/object/k0"), maphashString(seed, "ubj/object/k1")
}()

func siphashString(s string) uint64 {
	return siphash.Hash(siphashKey0, siphashKey1, []byte(s))
}

// Object is an ordered string-keyed mapping (spec.md §3.1): the
// UBJSON-specialized descendant of the teacher's Dict, which has to
// support arbitrary Python-hashable keys via a general equal/hash pair.
// UBJSON object keys are always strings, so Object only needs a string
// index, but it keeps Dict's pointer-like value shape and its
// gomap-backed index for O(1) Get/Set; Del re-indexes every entry after
// the removed one.
//
// Note: like Dict, the zero Object is a non-nil-looking but unusable
// value; use NewObject.
type Object struct {
	idx     *gomap.Map[string, int]
	keys    []string
	values  []interface{}
}

// NewObject returns a new empty Object.
func NewObject() Object {
	return NewObjectWithSizeHint(0)
}

// NewObjectWithSizeHint returns a new empty Object with preallocated
// space for size items.
func NewObjectWithSizeHint(size int) Object {
	return Object{
		idx:    gomap.NewHint[string, int](size, stringEq, stringHash),
		keys:   make([]string, 0, size),
		values: make([]interface{}, 0, size),
	}
}

func stringEq(a, b string) bool { return a == b }
func stringHash(_ maphash.Seed, s string) uint64 { return siphashString(s) }

// Get returns the value associated with key, and whether it was
// present.
func (o Object) Get(key string) (interface{}, bool) {
	i, ok := o.idx.Get(key)
	if !ok {
		return nil, false
	}
	return o.values[i], true
}

// Set associates key with value. If key is already present, its value
// is overwritten in place and its position in iteration order is
// unchanged; otherwise the pair is appended (spec.md §3.1 "insertion
// order preserved").
func (o *Object) Set(key string, value interface{}) {
	if i, ok := o.idx.Get(key); ok {
		o.values[i] = value
		return
	}
	i := len(o.keys)
	o.keys = append(o.keys, key)
	o.values = append(o.values, value)
	o.idx.Set(key, i)
}

// Del removes key, if present, closing the gap it leaves in iteration
// order.
func (o *Object) Del(key string) {
	i, ok := o.idx.Get(key)
	if !ok {
		return
	}
	o.keys = append(o.keys[:i], o.keys[i+1:]...)
	o.values = append(o.values[:i], o.values[i+1:]...)
	o.idx.Delete(key)
	for k := i; k < len(o.keys); k++ {
		o.idx.Set(o.keys[k], k)
	}
}

// Len returns the number of entries.
func (o Object) Len() int {
	return len(o.keys)
}

// Keys returns the keys in insertion order. The returned slice must not
// be mutated.
func (o Object) Keys() []string { return o.keys }

// Iter calls yield for every entry in insertion order, stopping early if
// yield returns false.
func (o Object) Iter() func(yield func(key string, value interface{}) bool) {
	return func(yield func(key string, value interface{}) bool) {
		for i, k := range o.keys {
			if !yield(k, o.values[i]) {
				return
			}
		}
	}
}

// String returns a human-readable representation in insertion order.
func (o Object) String() string {
	s := "{"
	for i, k := range o.keys {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%q: %v", k, o.values[i])
	}
	return s + "}"
}
