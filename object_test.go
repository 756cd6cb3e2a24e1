package ubj

import "testing"

func TestObjectInsertionOrder(t *testing.T) {
	o := NewObject()
	o.Set("z", 1)
	o.Set("a", 2)
	o.Set("m", 3)

	want := []string{"z", "a", "m"}
	got := o.Keys()
	if len(got) != len(want) {
		t.Fatalf("keys: have %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys: have %v, want %v", got, want)
		}
	}
}

func TestObjectSetOverwritesInPlace(t *testing.T) {
	o := NewObject()
	o.Set("a", 1)
	o.Set("b", 2)
	o.Set("a", 99)

	if v, _ := o.Get("a"); v != 99 {
		t.Fatalf("a: have %v, want 99", v)
	}
	keys := o.Keys()
	if keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("overwrite moved position: %v", keys)
	}
}

func TestObjectDelClosesGap(t *testing.T) {
	o := NewObject()
	o.Set("a", 1)
	o.Set("b", 2)
	o.Set("c", 3)
	o.Del("b")

	if o.Len() != 2 {
		t.Fatalf("len: have %d, want 2", o.Len())
	}
	keys := o.Keys()
	if keys[0] != "a" || keys[1] != "c" {
		t.Fatalf("keys after delete: %v", keys)
	}
	if _, ok := o.Get("b"); ok {
		t.Fatalf("deleted key still present")
	}
	// reinsert after delete must still find its correct index
	o.Set("d", 4)
	if v, _ := o.Get("d"); v != 4 {
		t.Fatalf("d: have %v, want 4", v)
	}
}

func TestObjectGetMissing(t *testing.T) {
	o := NewObject()
	if _, ok := o.Get("nope"); ok {
		t.Fatalf("expected missing key to report ok=false")
	}
}

func TestObjectIterStopsEarly(t *testing.T) {
	o := NewObject()
	o.Set("a", 1)
	o.Set("b", 2)
	o.Set("c", 3)

	var seen []string
	o.Iter()(func(k string, _ interface{}) bool {
		seen = append(seen, k)
		return k != "b"
	})
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Fatalf("iter did not stop early: %v", seen)
	}
}
