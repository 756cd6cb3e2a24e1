package ubj

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func encodeBytes(t *testing.T, v interface{}, d Draft) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := Encode(&buf, v, d); err != nil {
		t.Fatalf("encode: %s", err)
	}
	return buf.Bytes()
}

// spec.md §6 scenario 2: Draft-8 integer narrowing.
func TestEncodeIntNarrowingDraft8(t *testing.T) {
	tests := []struct {
		v    int64
		want []byte
	}{
		{127, []byte{'B', 0x7F}},
		{128, []byte{'i', 0x00, 0x80}},
		{-1, []byte{'i', 0xFF, 0xFF}},
	}
	for _, tt := range tests {
		got := encodeBytes(t, tt.v, Draft8)
		if !bytes.Equal(got, tt.want) {
			t.Fatalf("encode(%d): have % x, want % x", tt.v, got, tt.want)
		}
	}
}

// spec.md §6 scenario 3: Draft-9 char promotion.
func TestEncodeCharPromotionDraft9(t *testing.T) {
	got := encodeBytes(t, "A", Draft9)
	want := []byte{'C', 'A'}
	if !bytes.Equal(got, want) {
		t.Fatalf("have % x, want % x", got, want)
	}

	got = encodeBytes(t, "AB", Draft9)
	want = []byte{'S', 'i', 2, 'A', 'B'}
	if !bytes.Equal(got, want) {
		t.Fatalf("have % x, want % x", got, want)
	}
}

// spec.md §6 scenario 5: non-finite floats encode as null in both drafts.
func TestEncodeNonFiniteFloat(t *testing.T) {
	for _, d := range []Draft{Draft8, Draft9} {
		for _, f := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
			got := encodeBytes(t, f, d)
			if !bytes.Equal(got, []byte{'Z'}) {
				t.Fatalf("draft %s: have % x, want null marker", d, got)
			}
		}
	}
}

func TestEncodeStreamedArrayDraft9(t *testing.T) {
	i := 0
	vals := []interface{}{int64(1), int64(2), int64(3)}
	sa := StreamedArray{Next: func() (interface{}, bool) {
		if i >= len(vals) {
			return nil, false
		}
		v := vals[i]
		i++
		return v, true
	}}
	got := encodeBytes(t, sa, Draft9)
	want := []byte{'[', 'i', 1, 'i', 2, 'i', 3, ']'}
	if !bytes.Equal(got, want) {
		t.Fatalf("have % x, want % x", got, want)
	}
}

func TestEncodeBytesRejectedByDefaultDraft9(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, Bytes("raw"), Draft9)
	var eerr *EncodeError
	if err == nil {
		t.Fatalf("expected error encoding Bytes under draft-9 default BytesMode")
	}
	if !errors.As(err, &eerr) {
		t.Fatalf("want *EncodeError, got %#v", err)
	}
}

func TestEncodeBytesAsStringDraft9(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeWithConfig(&buf, Bytes("hi"), Draft9, &EncoderConfig{BytesMode: BytesAsString})
	if err != nil {
		t.Fatalf("encode: %s", err)
	}
	want := []byte{'S', 'i', 2, 'h', 'i'}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("have % x, want % x", buf.Bytes(), want)
	}
}

func TestEncodeObjectNonStringMapKeyFails(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, map[int]string{1: "a"}, Draft9)
	if err == nil {
		t.Fatalf("expected error for non-string map key")
	}
}

// A sized container carries its count in the header and has no trailing
// close marker (spec.md §3.2 glossary); only a streamed container is
// closed explicitly. This guards against writing the close marker
// unconditionally, which would corrupt anything encoded after a sized
// array/object nested inside another container.
func TestEncodeSizedArrayHasNoCloseMarker(t *testing.T) {
	got := encodeBytes(t, Array{int64(1), int64(2)}, Draft9)
	want := []byte{'[', 'i', 2, 'i', 1, 'i', 2}
	if !bytes.Equal(got, want) {
		t.Fatalf("have % x, want % x", got, want)
	}
}

func TestEncodeSizedObjectHasNoCloseMarker(t *testing.T) {
	obj := NewObject()
	obj.Set("a", int64(1))
	got := encodeBytes(t, obj, Draft9)
	// key "a" is itself Char-promoted, same as any other single-byte
	// single-rune string value (spec.md §6 scenario 3).
	want := []byte{'{', 'i', 1, 'C', 'a', 'i', 1}
	if !bytes.Equal(got, want) {
		t.Fatalf("have % x, want % x", got, want)
	}
}

func TestRoundTripBothDrafts(t *testing.T) {
	obj := NewObject()
	obj.Set("a", int64(1))
	obj.Set("b", Array{"x", int64(2), true, nil, float64(3.5)})
	obj.Set("huge", Huge("123456789012345678901234567890"))

	for _, d := range []Draft{Draft8, Draft9} {
		var buf bytes.Buffer
		if err := Encode(&buf, obj, d); err != nil {
			t.Fatalf("draft %s: encode: %s", d, err)
		}
		got, err := Decode(NewBufferByteSource(buf.Bytes()), d)
		if err != nil {
			t.Fatalf("draft %s: decode: %s", d, err)
		}
		if !deepEqual(got, interface{}(obj)) {
			t.Fatalf("draft %s: round trip mismatch:\nhave: %#v\nwant: %#v", d, got, obj)
		}
	}
}
