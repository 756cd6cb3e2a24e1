package ubj

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Pprinter reformats a decoder's marker stream into a canonical indented
// textual view without ever materializing a value tree (spec.md §4.4).
// It drives the same flat tokenizer the Decoder/Marshaller use, keeping
// its own frame stack rather than recursing through Decoder.Decode.
type Pprinter struct {
	dec   *Decoder
	table draftTable
	w     io.Writer
	depth int
	stack []pprintFrame
}

type pprintFrame struct {
	kind      containerKind
	remaining int // -1 means streamed: await an explicit close token
}

// NewPprinter returns a Pprinter reading draft d from src and writing to w.
func NewPprinter(src ByteSource, w io.Writer, d Draft) (*Pprinter, error) {
	table, err := tableFor(d)
	if err != nil {
		return nil, err
	}
	dec, err := NewDecoder(src, d)
	if err != nil {
		return nil, err
	}
	return &Pprinter{dec: dec, table: table, w: w}, nil
}

// Pprint is the package-level façade: pretty-print one value read from
// src using draft d to w (spec.md §6).
func Pprint(src ByteSource, w io.Writer, d Draft) error {
	p, err := NewPprinter(src, w, d)
	if err != nil {
		return err
	}
	return p.Run()
}

// Run drives the tokenizer to completion, printing exactly one top-level
// value.
func (p *Pprinter) Run() error {
	for {
		tok, err := p.dec.token()
		if err != nil {
			if err == io.EOF && len(p.stack) == 0 {
				return nil
			}
			return wrapEOF(err, p.dec.offset)
		}

		switch {
		case tok.kind == tokArrayOpen || tok.kind == tokObjectOpen:
			if err := p.printOpen(tok); err != nil {
				return err
			}
			kind := containerArray
			if tok.kind == tokObjectOpen {
				kind = containerObject
			}
			remaining := -1
			if tok.length >= 0 {
				remaining = tok.length
				if kind == containerObject {
					remaining *= 2
				}
			}
			p.depth++
			p.stack = append(p.stack, pprintFrame{kind: kind, remaining: remaining})
			if remaining == 0 {
				// an empty sized container is complete as soon as it opens
				if err := p.closeSizedFrames(); err != nil {
					return err
				}
			}

		case tok.kind == tokArrayClose || tok.kind == tokObjectClose || tok.kind == tokClose:
			if len(p.stack) == 0 {
				return &DecodeError{Offset: tok.offset, Reason: "unmatched close marker"}
			}
			p.depth--
			if err := p.writeLine(fmt.Sprintf("[%s]", markerText(tok.marker))); err != nil {
				return err
			}
			p.stack = p.stack[:len(p.stack)-1]
			if err := p.closeSizedFrames(); err != nil {
				return err
			}

		default:
			if err := p.printScalar(tok); err != nil {
				return err
			}
			if err := p.closeSizedFrames(); err != nil {
				return err
			}
		}

		if len(p.stack) == 0 {
			return nil
		}
	}
}

// closeSizedFrames closes every sized frame whose remaining count just
// reached zero, cascading upward since closing an inner container is
// itself a completed child of whatever encloses it.
func (p *Pprinter) closeSizedFrames() error {
	for len(p.stack) > 0 {
		top := &p.stack[len(p.stack)-1]
		if top.remaining < 0 {
			return nil // streamed: only an explicit close token ends it
		}
		top.remaining--
		if top.remaining > 0 {
			return nil
		}
		p.depth--
		marker := p.table.arrayCloseM
		if top.kind == containerObject {
			marker = p.table.objCloseM
		}
		if err := p.writeLine(fmt.Sprintf("[%s]", markerText(marker))); err != nil {
			return err
		}
		p.stack = p.stack[:len(p.stack)-1]
	}
	return nil
}

func (p *Pprinter) printOpen(tok token) error {
	if tok.length >= 0 {
		return p.writeLine(fmt.Sprintf("[%s] %d", markerText(tok.marker), tok.length))
	}
	return p.writeLine(fmt.Sprintf("[%s]", markerText(tok.marker)))
}

func (p *Pprinter) printScalar(tok token) error {
	switch tok.kind {
	case tokNull, tokNoOp, tokBool:
		return p.writeLine(fmt.Sprintf("[%s]", markerText(tok.marker)))

	case tokInt:
		return p.writeLine(fmt.Sprintf("[%s] %d", markerText(tok.marker), tok.value.(int64)))

	case tokFloat:
		return p.writeLine(fmt.Sprintf("[%s] %s", markerText(tok.marker), strconv.FormatFloat(tok.value.(float64), 'g', -1, 64)))

	case tokHuge:
		s := tok.value.(string)
		return p.writeLine(fmt.Sprintf("[%s] %d %s", markerText(tok.marker), len(s), s))

	case tokString:
		s := tok.value.(string)
		if p.table.draft == Draft9 && tok.marker == p.table.charM {
			return p.writeLine(fmt.Sprintf("[%s] %s", markerText(tok.marker), jsonQuote(s)))
		}
		return p.writeLine(fmt.Sprintf("[%s] %d %s", markerText(tok.marker), len(s), jsonQuote(s)))

	default:
		return &DecodeError{Offset: tok.offset, Reason: "unexpected token kind in pretty printer"}
	}
}

func (p *Pprinter) writeLine(text string) error {
	indent := strings.Repeat("    ", p.depth)
	_, err := fmt.Fprintf(p.w, "%s%s\n", indent, text)
	return err
}

// markerText renders a marker byte as its source character, falling
// back to a hex escape for the (never currently used) non-printable case.
func markerText(m byte) string {
	if m >= 0x20 && m < 0x7F {
		return string(rune(m))
	}
	return fmt.Sprintf("\\x%02x", m)
}
