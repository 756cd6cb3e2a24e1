package ubj

import "io"

// Decode drives the Decoder to build one nested value from the token
// stream (spec.md §4.5): scalars become Go values, container opens
// build an Object or Array by repeatedly reading child values until the
// declared count is reached (sized) or a close token arrives
// (streamed).
//
// After the value is read, Decode checks for a further token and fails
// if one follows. This catches the one case the draft-9 container
// length peek (spec.md §4.2) cannot resolve on its own: a streamed
// array/object whose first child is itself an integer is wire-identical
// to a sized header up to that point, and misreading it that way
// otherwise leaves the remaining stream bytes silently unconsumed
// rather than raising an error.
func (d *Decoder) Decode() (interface{}, error) {
	tok, err := d.nextToken()
	if err != nil {
		return nil, err
	}
	v, err := d.valueFromToken(tok)
	if err != nil {
		return nil, err
	}
	if _, err := d.nextToken(); err != io.EOF {
		if err == nil {
			return nil, &DecodeError{Offset: d.offset, Reason: "trailing data after value"}
		}
		return nil, err
	}
	return v, nil
}

// Decode is the package-level façade: decode one value from src using
// draft d (spec.md §6).
func Decode(src ByteSource, d Draft) (interface{}, error) {
	return DecodeWithConfig(src, d, nil)
}

// DecodeWithConfig is like Decode but allows tuning decoder behavior.
func DecodeWithConfig(src ByteSource, d Draft, config *DecoderConfig) (interface{}, error) {
	dec, err := NewDecoderWithConfig(src, d, config)
	if err != nil {
		return nil, err
	}
	return dec.Decode()
}

// nextToken pulls the next non-NoOp token, unless the decoder is
// configured to surface NoOp tokens (spec.md §4.5, §9).
func (d *Decoder) nextToken() (token, error) {
	for {
		tok, err := d.token()
		if err != nil {
			return token{}, err
		}
		if tok.kind == tokNoOp && !d.config.AllowNoOp {
			continue
		}
		return tok, nil
	}
}

func (d *Decoder) readValue() (interface{}, error) {
	tok, err := d.nextToken()
	if err != nil {
		return nil, wrapEOF(err, d.offset)
	}
	return d.valueFromToken(tok)
}

func (d *Decoder) valueFromToken(tok token) (interface{}, error) {
	switch tok.kind {
	case tokNoOp:
		return NoOp{}, nil
	case tokNull:
		return nil, nil
	case tokBool, tokInt, tokFloat, tokString:
		return tok.value, nil
	case tokHuge:
		return Huge(tok.value.(string)), nil
	case tokArrayOpen:
		return d.readArrayBody(tok)
	case tokObjectOpen:
		return d.readObjectBody(tok)
	default:
		return nil, &MarkerError{Offset: tok.offset, Context: "value"}
	}
}

func (d *Decoder) enterContainer() error {
	d.depth++
	if d.depth > d.config.MaxDepth {
		return &DecodeError{Offset: d.offset, Reason: "container nesting exceeds MaxDepth"}
	}
	return nil
}

func (d *Decoder) leaveContainer() { d.depth-- }

func (d *Decoder) readArrayBody(open token) (interface{}, error) {
	if err := d.enterContainer(); err != nil {
		return nil, err
	}
	defer d.leaveContainer()

	arr := Array{}
	if open.length >= 0 {
		arr = make(Array, 0, open.length)
		for i := 0; i < open.length; i++ {
			v, err := d.readValue()
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	}

	for {
		tok, err := d.nextToken()
		if err != nil {
			return nil, wrapEOF(err, d.offset)
		}
		if isCloseFor(tok, containerArray) {
			if tok.kind == tokObjectClose {
				return nil, &MarkerError{Offset: tok.offset, Context: "array close"}
			}
			break
		}
		v, err := d.valueFromToken(tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	return arr, nil
}

func (d *Decoder) readObjectBody(open token) (interface{}, error) {
	if err := d.enterContainer(); err != nil {
		return nil, err
	}
	defer d.leaveContainer()

	obj := NewObjectWithSizeHint(maxInt(open.length, 0))

	if open.length >= 0 {
		for i := 0; i < open.length; i++ {
			key, err := d.readObjectKey()
			if err != nil {
				return nil, err
			}
			v, err := d.readValue()
			if err != nil {
				return nil, err
			}
			obj.Set(key, v)
		}
		return obj, nil
	}

	for {
		tok, err := d.nextToken()
		if err != nil {
			return nil, wrapEOF(err, d.offset)
		}
		if isCloseFor(tok, containerObject) {
			if tok.kind == tokArrayClose {
				return nil, &MarkerError{Offset: tok.offset, Context: "object close"}
			}
			break
		}
		if tok.kind != tokString {
			return nil, &MarkerError{Offset: tok.offset, Context: "object key"}
		}
		key := tok.value.(string)
		v, err := d.readValue()
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}
	return obj, nil
}

func (d *Decoder) readObjectKey() (string, error) {
	tok, err := d.nextToken()
	if err != nil {
		return "", wrapEOF(err, d.offset)
	}
	if tok.kind != tokString {
		return "", &MarkerError{Offset: tok.offset, Context: "object key"}
	}
	return tok.value.(string), nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
