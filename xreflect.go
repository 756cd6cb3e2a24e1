package ubj
// Utilities that complement std reflect package.

import (
	"reflect"
)

// deepEqual is like reflect.DeepEqual but also supports Object, and
// recurses into Object values found nested inside slices/arrays.
//
// It is needed because reflect.DeepEqual would otherwise compare
// Object's internal *gomap.Map index structurally, which differs
// between two Objects built via different Set/Del histories even when
// they represent the same ordered mapping.
func deepEqual(a, b any) bool {
	if oa, ok := a.(Object); ok {
		ob, ok := b.(Object)
		if !ok {
			return false
		}
		return objectsEqual(oa, ob)
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.IsValid() && vb.IsValid() && va.Kind() == reflect.Slice && vb.Kind() == reflect.Slice {
		if va.Len() != vb.Len() {
			return false
		}
		for i := 0; i < va.Len(); i++ {
			if !deepEqual(va.Index(i).Interface(), vb.Index(i).Interface()) {
				return false
			}
		}
		return true
	}

	return reflect.DeepEqual(a, b)
}

func objectsEqual(oa, ob Object) bool {
	if oa.Len() != ob.Len() {
		return false
	}
	ka, kb := oa.Keys(), ob.Keys()
	for i := range ka {
		if ka[i] != kb[i] {
			return false
		}
		va, _ := oa.Get(ka[i])
		vb, _ := ob.Get(kb[i])
		if !deepEqual(va, vb) {
			return false
		}
	}
	return true
}
