package ubj

// Tuple, None and friends in the teacher's package represent Python-only
// concepts that have no UBJSON equivalent; the value domain here is the
// one described in spec.md §3.1 instead.

// NoOp is the decoder-visible sentinel for the protocol-level padding
// marker. It never appears in a built value tree unless the caller opts
// in via DecoderConfig.AllowNoOp.
type NoOp struct{}

// Huge is an arbitrary-precision decimal represented on the wire as a
// length-prefixed ASCII decimal string (spec.md §3.1, §4.3). The codec
// treats it as opaque: it never performs decimal arithmetic, it only
// moves the canonical string representation across the wire. Host code
// that owns a real big-decimal type converts to/from Huge at the
// façade boundary (out of scope here, per spec.md §1).
type Huge string

func (h Huge) String() string { return string(h) }

// Bytes represents the "byte string" host category (spec.md §3.1/§4.3).
// Draft-8 always carries it through the text path, UTF-8 assumed.
// Draft-9 has no dedicated byte-string marker; see BytesMode for the
// documented choice of what to do about that (spec.md §9 Open Question).
type Bytes string

// Object is an ordered string-keyed map: UBJSON object keys are always
// strings (spec.md §3.1), and insertion order must be preserved on
// decode (spec.md §3.1, §4.5). It is the UBJSON-specialized descendant
// of the teacher's general-purpose Dict, which has to support arbitrary
// Python-hashable keys; here the key type is fixed, so the machinery is
// considerably smaller. See object.go.

// Array is the decoded representation of a sized or streamed UBJSON
// array: an ordered slice of values.
type Array []interface{}

// StreamedArray is a lazy producer accepted by the Encoder wherever the
// caller's array length is not cheaply known (spec.md §4.3 "Containers"
// and §9 "Iterator-shaped encoding input"). Next returns ok == false
// exactly once, when exhausted; it must not be called again afterward.
type StreamedArray struct {
	Next func() (v interface{}, ok bool)
}

// StreamedObject is the object analogue of StreamedArray.
type StreamedObject struct {
	Next func() (key string, v interface{}, ok bool)
}

// BytesMode resolves the Draft-9 byte-string marker question left open
// by spec.md §9: Draft-9 defines no distinct marker for byte strings.
type BytesMode int

const (
	// RejectBytes fails encoding of a Bytes value under Draft-9 with an
	// EncodeError. This is the default: it never silently reinterprets
	// binary data as UTF-8 text.
	RejectBytes BytesMode = iota

	// BytesAsString encodes a Bytes value under Draft-9 through the
	// String/Char marker, the same way Draft-8 always does, assuming the
	// byte string is valid UTF-8. Decoding never reconstructs Bytes; the
	// caller recovers it from the decoded string if it cares to.
	BytesAsString
)
