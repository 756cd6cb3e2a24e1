package ubj

import (
	"bytes"
	"testing"
)

func pprintBytes(t *testing.T, b []byte, d Draft) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Pprint(NewBufferByteSource(b), &buf, d); err != nil {
		t.Fatalf("pprint: %s", err)
	}
	return buf.String()
}

func TestPprintScalarDraft9(t *testing.T) {
	got := pprintBytes(t, []byte{'U', 42}, Draft9)
	want := "[U] 42\n"
	if got != want {
		t.Fatalf("have %q, want %q", got, want)
	}
}

func TestPprintSizedArrayDraft9(t *testing.T) {
	// [i\x02 U\x01 U\x02 (sized: no close marker on the wire)
	data := []byte{'[', 'i', 2, 'U', 1, 'U', 2}
	got := pprintBytes(t, data, Draft9)
	want := "[[] 2\n    [U] 1\n    [U] 2\n[]]\n"
	if got != want {
		t.Fatalf("have %q, want %q", got, want)
	}
}

func TestPprintStreamedArrayDraft9(t *testing.T) {
	data := []byte{'[', 'T', 'F', ']'}
	got := pprintBytes(t, data, Draft9)
	want := "[[]\n    [T]\n    [F]\n[]]\n"
	if got != want {
		t.Fatalf("have %q, want %q", got, want)
	}
}

func TestPprintStringEscapesDraft9(t *testing.T) {
	data := append([]byte{'S', 'i', 3}, "a\nb"...)
	got := pprintBytes(t, data, Draft9)
	want := `[S] 3 "a\nb"` + "\n"
	if got != want {
		t.Fatalf("have %q, want %q", got, want)
	}
}

func TestPprintCharDraft9(t *testing.T) {
	got := pprintBytes(t, []byte{'C', 'Z'}, Draft9)
	want := `[C] "Z"` + "\n"
	if got != want {
		t.Fatalf("have %q, want %q", got, want)
	}
}

// A sized array whose sole child is itself a sized array exercises the
// cascading close: finishing the inner array also finishes the outer
// one, in the same pass, each at its own depth.
func TestPprintNestedContainersCloseCascade(t *testing.T) {
	// [i\x01 [i\x01 U\x01
	data := []byte{'[', 'i', 1, '[', 'i', 1, 'U', 1}
	got := pprintBytes(t, data, Draft9)
	want := "[[] 1\n    [[] 1\n        [U] 1\n    []]\n[]]\n"
	if got != want {
		t.Fatalf("have %q, want %q", got, want)
	}
}
