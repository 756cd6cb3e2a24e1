package ubj

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// token is one entry of the flat marker stream (spec.md §4.2). The
// Decoder never tracks nesting itself — callers (the marshaller, the
// pretty-printer) interpret open/close tokens and count children.
type token struct {
	kind   tokKind
	marker byte // wire marker byte this token was read from; used by the pretty printer
	length int  // declared item count for a sized container open; -1 for a streamed open; unused (0) for other tokens
	value  interface{}
	offset int64
}

// Decoder is a pull tokenizer over a ByteSource, parameterized by a
// draftTable (spec.md §4.2). The tokenizer itself (token) holds no
// nesting state; the depth field is only maintained by the value builder
// in marshal.go to enforce DecoderConfig.MaxDepth.
type Decoder struct {
	src    ByteSource
	table  draftTable
	config *DecoderConfig
	offset int64

	peeked    byte
	hasPeeked bool

	depth int
}

// DecoderConfig tunes Decoder the way the teacher's DecoderConfig tunes
// pickle decoding.
type DecoderConfig struct {
	// AllowNoOp surfaces NoOp tokens to the caller as the NoOp{}
	// sentinel value instead of silently discarding them (spec.md §4.5,
	// §9).
	AllowNoOp bool

	// MaxDepth bounds container nesting depth the decoder will descend
	// into before failing with a DecodeError, guarding the O(depth)
	// resource bound from spec.md §5 against pathological input. Zero
	// means "use the package default" (see defaultMaxDepth).
	MaxDepth int
}

const defaultMaxDepth = 10000

func defaultedDecoderConfig(config *DecoderConfig) *DecoderConfig {
	cfg := DecoderConfig{}
	if config != nil {
		cfg = *config
	}
	// imdario/mergo fills zero-valued fields from the default, the way
	// damianoneill/net merges partial tool configs with the builtin
	// defaults; here it spares a single `if cfg.MaxDepth == 0`.
	_ = mergoMerge(&cfg, DecoderConfig{MaxDepth: defaultMaxDepth})
	return &cfg
}

// NewDecoder constructs a Decoder reading draft d from src.
func NewDecoder(src ByteSource, d Draft) (*Decoder, error) {
	return NewDecoderWithConfig(src, d, nil)
}

// NewDecoderWithConfig is like NewDecoder but allows tuning behavior via
// config.
func NewDecoderWithConfig(src ByteSource, d Draft, config *DecoderConfig) (*Decoder, error) {
	table, err := tableFor(d)
	if err != nil {
		return nil, err
	}
	return &Decoder{src: src, table: table, config: defaultedDecoderConfig(config)}, nil
}

func (d *Decoder) readByte() (byte, error) {
	if d.hasPeeked {
		d.hasPeeked = false
		d.offset++
		return d.peeked, nil
	}
	b, err := d.src.Read(1)
	if err != nil {
		return 0, err
	}
	d.offset++
	return b[0], nil
}

func (d *Decoder) peekByte() (byte, error) {
	if d.hasPeeked {
		return d.peeked, nil
	}
	b, err := d.src.Read(1)
	if err != nil {
		return 0, wrapEOF(err, d.offset)
	}
	d.peeked = b[0]
	d.hasPeeked = true
	return d.peeked, nil
}

func (d *Decoder) readN(n int) ([]byte, error) {
	if n < 0 {
		return nil, &DecodeError{Offset: d.offset, Reason: "negative length prefix"}
	}
	if !d.hasPeeked {
		b, err := d.src.Read(n)
		if err != nil {
			return nil, wrapEOF(err, d.offset)
		}
		d.offset += int64(n)
		return b, nil
	}
	// serve the peeked byte first, then read the remainder
	if n == 0 {
		return nil, nil
	}
	out := make([]byte, 0, n)
	out = append(out, d.peeked)
	d.hasPeeked = false
	d.offset++
	if n > 1 {
		rest, err := d.src.Read(n - 1)
		if err != nil {
			return nil, wrapEOF(err, d.offset)
		}
		d.offset += int64(n - 1)
		out = append(out, rest...)
	}
	return out, nil
}

func (d *Decoder) readUint(bytes int) (uint64, error) {
	b, err := d.readN(bytes)
	if err != nil {
		return 0, err
	}
	switch bytes {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(binary.BigEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.BigEndian.Uint32(b)), nil
	case 8:
		return binary.BigEndian.Uint64(b), nil
	default:
		panic("ubj: unsupported integer width")
	}
}

func (d *Decoder) readInt(w intWidth) (int64, error) {
	u, err := d.readUint(w.bytes)
	if err != nil {
		return 0, err
	}
	if !w.signed {
		return int64(u), nil
	}
	switch w.bytes {
	case 1:
		return int64(int8(u)), nil
	case 2:
		return int64(int16(u)), nil
	case 4:
		return int64(int32(u)), nil
	default:
		return int64(u), nil
	}
}

func (d *Decoder) readFloat(bits int) (float64, error) {
	u, err := d.readUint(bits / 8)
	if err != nil {
		return 0, err
	}
	if bits == 32 {
		return float64(math.Float32frombits(uint32(u))), nil
	}
	return math.Float64frombits(u), nil
}

// readLengthPrefix reads the length of a String/Huge payload, following
// the draft's own rule: draft8 bakes a fixed raw width into the marker
// (rawLenBytes), draft9 nests another integer marker (spec.md §4.2
// step 3, "Length-prefixed bytes").
func (d *Decoder) readLengthPrefix(info markerInfo) (int, error) {
	if info.rawLenBytes != 0 {
		u, err := d.readUint(info.rawLenBytes)
		if err != nil {
			return 0, err
		}
		return int(u), nil
	}
	m, err := d.readByte()
	if err != nil {
		return 0, wrapEOF(err, d.offset)
	}
	w, ok := d.table.isIntMarker(m)
	if !ok {
		return 0, &MarkerError{Marker: m, Offset: d.offset - 1, Context: "length prefix"}
	}
	n, err := d.readInt(w)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, &DecodeError{Offset: d.offset, Reason: "negative length prefix"}
	}
	return int(n), nil
}

// readContainerLength reads a container open marker's length field,
// returning (length, streamed).
func (d *Decoder) readContainerLength(marker byte) (int, bool, error) {
	if d.table.draft == Draft8 {
		width := d.table.rawContainerLenWidth[marker]
		u, err := d.readUint(width)
		if err != nil {
			return 0, false, err
		}
		allOnes := uint64(1)<<(uint(width)*8) - 1
		if u == allOnes {
			return 0, true, nil
		}
		return int(u), false, nil
	}

	// draft9: peek; an integer marker means sized, anything else
	// (including the matching close marker) means streamed.
	peek, err := d.peekByte()
	if err != nil {
		return 0, false, err
	}
	w, ok := d.table.isIntMarker(peek)
	if !ok {
		return 0, true, nil
	}
	// consume the peeked marker, then its value
	if _, err := d.readByte(); err != nil {
		return 0, false, wrapEOF(err, d.offset)
	}
	n, err := d.readInt(w)
	if err != nil {
		return 0, false, err
	}
	if n < 0 {
		return 0, false, &DecodeError{Offset: d.offset, Reason: "negative container length"}
	}
	return int(n), false, nil
}

// token reads one flat token from the stream. A clean io.EOF on the
// leading marker byte is normal termination (spec.md §4.1); any EOF
// encountered once a token has started is reported as an
// *EndOfStreamError, wrapping ErrEndOfStream (spec.md §7).
func (d *Decoder) token() (token, error) {
	start := d.offset
	m, err := d.readByte()
	if err != nil {
		return token{}, err
	}

	info, ok := d.table.reverse[m]
	if !ok {
		return token{}, &MarkerError{Marker: m, Offset: start}
	}

	switch info.kind {
	case tokNull, tokNoOp:
		return token{kind: info.kind, marker: m, offset: start}, nil

	case tokBool:
		return token{kind: tokBool, marker: m, value: m == d.table.trueMarker, offset: start}, nil

	case tokInt:
		v, err := d.readInt(*info.intW)
		if err != nil {
			return token{}, err
		}
		return token{kind: tokInt, marker: m, value: v, offset: start}, nil

	case tokFloat:
		v, err := d.readFloat(info.floatBits)
		if err != nil {
			return token{}, err
		}
		return token{kind: tokFloat, marker: m, value: v, offset: start}, nil

	case tokString, tokHuge:
		if d.table.draft == Draft9 && m == d.table.charM {
			b, err := d.readN(1)
			if err != nil {
				return token{}, err
			}
			if b[0] > 0x7F {
				return token{}, &DecodeError{Offset: start, Reason: "Char payload not a single-byte code point"}
			}
			return token{kind: tokString, marker: m, value: string(rune(b[0])), offset: start}, nil
		}

		n, err := d.readLengthPrefix(info)
		if err != nil {
			return token{}, err
		}
		payload, err := d.readN(n)
		if err != nil {
			return token{}, err
		}
		if info.asHuge {
			if !isCanonicalDecimal(payload) {
				return token{}, &DecodeError{Offset: start, Reason: "Huge payload is not a decimal string"}
			}
			return token{kind: tokHuge, marker: m, value: string(payload), offset: start}, nil
		}
		if !utf8.Valid(payload) {
			return token{}, &DecodeError{Offset: start, Reason: "String payload is not valid UTF-8"}
		}
		return token{kind: tokString, marker: m, value: string(payload), offset: start}, nil

	case tokArrayOpen, tokObjectOpen:
		n, streamed, err := d.readContainerLength(m)
		if err != nil {
			return token{}, err
		}
		if streamed {
			return token{kind: info.kind, marker: m, length: -1, offset: start}, nil
		}
		return token{kind: info.kind, marker: m, length: n, offset: start}, nil

	case tokArrayClose, tokObjectClose, tokClose:
		return token{kind: info.kind, marker: m, offset: start}, nil

	default:
		return token{}, &MarkerError{Marker: m, Offset: start}
	}
}

func isCanonicalDecimal(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	i := 0
	if b[i] == '-' || b[i] == '+' {
		i++
	}
	sawDigit := false
	sawDot := false
	sawExp := false
	for ; i < len(b); i++ {
		c := b[i]
		switch {
		case c >= '0' && c <= '9':
			sawDigit = true
		case c == '.' && !sawDot && !sawExp:
			sawDot = true
		case (c == 'e' || c == 'E') && !sawExp && sawDigit:
			sawExp = true
			sawDigit = false // the exponent needs digits of its own
			if i+1 < len(b) && (b[i+1] == '+' || b[i+1] == '-') {
				i++
			}
		default:
			return false
		}
	}
	return sawDigit
}

// isCloseFor reports whether tok closes a container of the given kind,
// accounting for draft-8's single ambiguous 'E' marker (spec.md §4.2).
func isCloseFor(tok token, open containerKind) bool {
	if tok.kind == tokClose {
		return true
	}
	if open == containerArray {
		return tok.kind == tokArrayClose
	}
	return tok.kind == tokObjectClose
}
