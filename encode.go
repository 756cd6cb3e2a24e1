package ubj

import (
	"encoding/binary"
	"io"
	"math"
	"reflect"
	"unicode/utf8"
)

// Encoder writes Go values to a UBJSON byte stream using a single draft's
// marker table (spec.md §4.3). Like the teacher's pickle Encoder, it
// walks the input with reflect.Value so callers can hand in anything
// with a uniform int/float/string/slice/map shape, not just the
// package's own Array/Object types.
type Encoder struct {
	w      io.Writer
	table  draftTable
	config *EncoderConfig
}

// EncoderConfig tunes Encoder.
type EncoderConfig struct {
	// BytesMode resolves how a Bytes value is encoded under Draft9, which
	// defines no dedicated byte-string marker (spec.md §9).
	BytesMode BytesMode

	// MaxDepth bounds recursion depth the same way DecoderConfig.MaxDepth
	// bounds decode nesting. Zero means "use the package default".
	MaxDepth int
}

func defaultedEncoderConfig(config *EncoderConfig) *EncoderConfig {
	cfg := EncoderConfig{}
	if config != nil {
		cfg = *config
	}
	_ = mergoMerge(&cfg, EncoderConfig{MaxDepth: defaultMaxDepth})
	return &cfg
}

// NewEncoder returns a new Encoder writing draft d to w with default
// config.
func NewEncoder(w io.Writer, d Draft) (*Encoder, error) {
	return NewEncoderWithConfig(w, d, nil)
}

// NewEncoderWithConfig is like NewEncoder but allows tuning behavior.
func NewEncoderWithConfig(w io.Writer, d Draft, config *EncoderConfig) (*Encoder, error) {
	table, err := tableFor(d)
	if err != nil {
		return nil, err
	}
	return &Encoder{w: w, table: table, config: defaultedEncoderConfig(config)}, nil
}

// Encode writes the UBJSON encoding of v to the encoder's writer.
func (e *Encoder) Encode(v interface{}) error {
	return e.encode(reflectValueOf(v), 0)
}

// Encode is the package-level façade: encode v to w using draft d
// (spec.md §6).
func Encode(w io.Writer, v interface{}, d Draft) error {
	return EncodeWithConfig(w, v, d, nil)
}

// EncodeWithConfig is like Encode but allows tuning encoder behavior.
func EncodeWithConfig(w io.Writer, v interface{}, d Draft, config *EncoderConfig) error {
	enc, err := NewEncoderWithConfig(w, d, config)
	if err != nil {
		return err
	}
	return enc.Encode(v)
}

func (e *Encoder) emit(b ...byte) error {
	_, err := e.w.Write(b)
	return err
}

func (e *Encoder) emits(s string) error {
	_, err := io.WriteString(e.w, s)
	return err
}

func (e *Encoder) encode(rv reflect.Value, depth int) error {
	if depth > e.config.MaxDepth {
		return &EncodeError{Type: rv.Type().String(), Reason: "recursion exceeds MaxDepth"}
	}

	if !rv.IsValid() {
		return e.encodeNull()
	}

	switch v := rv.Interface().(type) {
	case NoOp:
		return e.emit(e.table.noopMarker)
	case Huge:
		return e.encodeHuge(v)
	case Bytes:
		return e.encodeBytes(v)
	case Object:
		return e.encodeObject(v, depth)
	case StreamedArray:
		return e.encodeStreamedArray(v, depth)
	case StreamedObject:
		return e.encodeStreamedObject(v, depth)
	}

	switch rv.Kind() {
	case reflect.Invalid:
		return e.encodeNull()

	case reflect.Bool:
		return e.encodeBool(rv.Bool())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return e.encodeInt(rv.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return &EncodeError{Type: rv.Type().String(), Reason: "value exceeds int64 range"}
		}
		return e.encodeInt(int64(u))

	case reflect.Float32, reflect.Float64:
		return e.encodeFloat(rv.Float())

	case reflect.String:
		return e.encodeString(rv.String())

	case reflect.Slice, reflect.Array:
		return e.encodeArray(rv, depth)

	case reflect.Map:
		return e.encodeMap(rv, depth)

	case reflect.Interface, reflect.Ptr:
		if rv.IsNil() {
			return e.encodeNull()
		}
		return e.encode(rv.Elem(), depth)

	default:
		return &EncodeError{Type: rv.Kind().String()}
	}
}

func (e *Encoder) encodeNull() error {
	return e.emit(e.table.nullMarker)
}

func (e *Encoder) encodeBool(b bool) error {
	if b {
		return e.emit(e.table.trueMarker)
	}
	return e.emit(e.table.falseMarker)
}

// encodeInt picks the narrowest marker that admits v (spec.md §3.3,
// §4.3 "canonical narrowing").
func (e *Encoder) encodeInt(v int64) error {
	w := e.table.widthFor(v)
	if err := e.emit(w.marker); err != nil {
		return err
	}
	return e.writeInt(w, v)
}

func (e *Encoder) writeInt(w intWidth, v int64) error {
	var b [8]byte
	switch w.bytes {
	case 1:
		b[0] = byte(v)
		return e.emit(b[0])
	case 2:
		binary.BigEndian.PutUint16(b[:2], uint16(v))
		return e.emit(b[:2]...)
	case 4:
		binary.BigEndian.PutUint32(b[:4], uint32(v))
		return e.emit(b[:4]...)
	default:
		binary.BigEndian.PutUint64(b[:8], uint64(v))
		return e.emit(b[:8]...)
	}
}

// encodeFloat emits a non-finite value as null (spec.md §3.3): UBJSON
// has no NaN/Inf marker and silently reinterpreting one as a number
// would corrupt the payload worse than dropping it.
func (e *Encoder) encodeFloat(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return e.encodeNull()
	}
	if f32 := float32(f); float64(f32) == f {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], math.Float32bits(f32))
		if err := e.emit(e.table.float32M); err != nil {
			return err
		}
		return e.emit(b[:]...)
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(f))
	if err := e.emit(e.table.float64M); err != nil {
		return err
	}
	return e.emit(b[:]...)
}

func (e *Encoder) encodeLengthPrefix(n int) error {
	if e.table.draft == Draft8 {
		panic("ubj: draft8 length prefix width is baked into the marker choice")
	}
	w := e.table.widthFor(int64(n))
	if err := e.emit(w.marker); err != nil {
		return err
	}
	return e.writeInt(w, int64(n))
}

func (e *Encoder) encodeString(s string) error {
	if e.table.draft == Draft8 {
		n := len(s)
		if n <= 0xFF {
			if err := e.emit(e.table.stringShortM, byte(n)); err != nil {
				return err
			}
			return e.emits(s)
		}
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(n))
		if err := e.emit(e.table.stringLongM); err != nil {
			return err
		}
		if err := e.emit(b[:]...); err != nil {
			return err
		}
		return e.emits(s)
	}

	// draft9 MAY promote a single code point whose UTF-8 form is exactly
	// one byte to the Char marker, skipping the length prefix entirely
	// (spec.md §4.3, §6 scenario 3).
	if r, n := utf8.DecodeRuneInString(s); n == len(s) && n == 1 && r != utf8.RuneError {
		return e.emit(e.table.charM, s[0])
	}

	if err := e.emit(e.table.stringM); err != nil {
		return err
	}
	if err := e.encodeLengthPrefix(len(s)); err != nil {
		return err
	}
	return e.emits(s)
}

func (e *Encoder) encodeHuge(h Huge) error {
	s := string(h)
	if !isCanonicalDecimal([]byte(s)) {
		return &EncodeError{Type: "ubj.Huge", Reason: "not a canonical decimal string"}
	}

	if e.table.draft == Draft8 {
		n := len(s)
		if n <= 0xFF {
			if err := e.emit(e.table.hugeShortM, byte(n)); err != nil {
				return err
			}
			return e.emits(s)
		}
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(n))
		if err := e.emit(e.table.hugeLongM); err != nil {
			return err
		}
		if err := e.emit(b[:]...); err != nil {
			return err
		}
		return e.emits(s)
	}

	if err := e.emit(e.table.hugeM); err != nil {
		return err
	}
	if err := e.encodeLengthPrefix(len(s)); err != nil {
		return err
	}
	return e.emits(s)
}

// encodeBytes handles the Bytes host category (spec.md §3.1, §9). Draft8
// carries it through the ordinary text path; Draft9 has no dedicated
// byte-string marker, so the choice is governed by EncoderConfig.BytesMode.
func (e *Encoder) encodeBytes(b Bytes) error {
	if e.table.draft == Draft8 {
		return e.encodeString(string(b))
	}
	switch e.config.BytesMode {
	case BytesAsString:
		return e.encodeString(string(b))
	default:
		return &EncodeError{Type: "ubj.Bytes", Reason: "draft-9 has no byte-string marker; set EncoderConfig.BytesMode to BytesAsString to allow lossy round-trip through String"}
	}
}

func (e *Encoder) arrayOpenMarker(n int) byte {
	if e.table.draft == Draft9 {
		return e.table.arrayOpenSmallM
	}
	// 0xFF is the 1-byte streamed sentinel, so a sized count of 255 needs
	// the 4-byte form.
	if n < 0xFF {
		return e.table.arrayOpenSmallM
	}
	return e.table.arrayOpenLargeM
}

func (e *Encoder) objOpenMarker(n int) byte {
	if e.table.draft == Draft9 {
		return e.table.objOpenSmallM
	}
	if n < 0xFF {
		return e.table.objOpenSmallM
	}
	return e.table.objOpenLargeM
}

func (e *Encoder) encodeSizedContainerHeader(open byte, n int) error {
	if err := e.emit(open); err != nil {
		return err
	}
	if e.table.draft == Draft9 {
		return e.encodeLengthPrefix(n)
	}
	width := e.table.rawContainerLenWidth[open]
	switch width {
	case 1:
		return e.emit(byte(n))
	default:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(n))
		return e.emit(b[:]...)
	}
}

// Sized containers carry their count in the header and have no trailing
// close marker (spec.md §3.2 glossary); only a streamed container
// (encodeStreamedArray/encodeStreamedObject below) is closed explicitly.
func (e *Encoder) encodeArray(rv reflect.Value, depth int) error {
	n := rv.Len()
	if err := e.encodeSizedContainerHeader(e.arrayOpenMarker(n), n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := e.encode(rv.Index(i), depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeObject(obj Object, depth int) error {
	n := obj.Len()
	if err := e.encodeSizedContainerHeader(e.objOpenMarker(n), n); err != nil {
		return err
	}
	var outerErr error
	obj.Iter()(func(k string, v interface{}) bool {
		if outerErr = e.encodeString(k); outerErr != nil {
			return false
		}
		if outerErr = e.encode(reflectValueOf(v), depth+1); outerErr != nil {
			return false
		}
		return true
	})
	return outerErr
}

func (e *Encoder) encodeMap(rv reflect.Value, depth int) error {
	if rv.Type().Key().Kind() != reflect.String {
		return &EncodeError{Type: rv.Type().String(), Reason: "object keys must be strings"}
	}
	keys := rv.MapKeys()
	if err := e.encodeSizedContainerHeader(e.objOpenMarker(len(keys)), len(keys)); err != nil {
		return err
	}
	for _, k := range keys {
		if err := e.encodeString(k.String()); err != nil {
			return err
		}
		if err := e.encode(rv.MapIndex(k), depth+1); err != nil {
			return err
		}
	}
	return nil
}

// streamedOpenMarker writes a container's open marker with no length
// field (draft9: bare '['/'{', followed directly by elements and a
// close marker; draft8: the all-ones raw length sentinel, spec.md §4.3).
func (e *Encoder) streamedOpenMarker(open byte) error {
	if e.table.draft == Draft9 {
		return e.emit(open)
	}
	width := e.table.rawContainerLenWidth[open]
	allOnes := uint64(1)<<(uint(width)*8) - 1
	if err := e.emit(open); err != nil {
		return err
	}
	switch width {
	case 1:
		return e.emit(byte(allOnes))
	default:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(allOnes))
		return e.emit(b[:]...)
	}
}

func (e *Encoder) encodeStreamedArray(sa StreamedArray, depth int) error {
	open := e.arrayOpenMarker(0)
	if err := e.streamedOpenMarker(open); err != nil {
		return err
	}
	for {
		v, ok := sa.Next()
		if !ok {
			break
		}
		if err := e.encode(reflectValueOf(v), depth+1); err != nil {
			return err
		}
	}
	return e.emit(e.table.arrayCloseM)
}

func (e *Encoder) encodeStreamedObject(so StreamedObject, depth int) error {
	open := e.objOpenMarker(0)
	if err := e.streamedOpenMarker(open); err != nil {
		return err
	}
	for {
		k, v, ok := so.Next()
		if !ok {
			break
		}
		if err := e.encodeString(k); err != nil {
			return err
		}
		if err := e.encode(reflectValueOf(v), depth+1); err != nil {
			return err
		}
	}
	return e.emit(e.table.objCloseM)
}

func reflectValueOf(v interface{}) reflect.Value {
	rv, ok := v.(reflect.Value)
	if !ok {
		rv = reflect.ValueOf(v)
	}
	return rv
}
