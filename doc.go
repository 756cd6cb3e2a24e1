// Package ubj is a library for decoding, encoding and pretty-printing
// Universal Binary JSON (UBJSON) in its two historically incompatible
// revisions.
//
// Use Decoder to decode a value from an input stream, for example:
//
//	d, err := ubj.NewDecoder(src, ubj.Draft9)
//	obj, err := d.Decode() // obj is interface{} representing the decoded value
//
// Use Encoder to encode a value into an output stream, for example:
//
//	e, err := ubj.NewEncoder(w, ubj.Draft9)
//	err = e.Encode(obj)
//
// The following table summarizes the mapping between UBJSON and Go types:
//
//	UBJSON        Go
//	------        --
//
//	null      ↔   nil
//	bool      ↔   bool
//	int       ↔   int64
//	huge      ↔   ubj.Huge   (opaque canonical decimal string)
//	float     ↔   float64
//	char      →   string     (single-codepoint string, draft-9 only)
//	string    ↔   string
//	string    ←   ubj.Bytes  (encode only, see BytesMode; decodes as string)
//	array     ↔   ubj.Array  ([]interface{})
//	object    ↔   ubj.Object (insertion-order preserving string map)
//
// Stream-shaped arrays and objects, whose length the caller does not
// know up front, are encoded from a StreamedArray or StreamedObject
// producer rather than a materialized Array/Object; decode always
// yields a materialized Array/Object regardless of whether the source
// was sized or streamed on the wire.
//
// # Drafts
//
// UBJSON evolved through an incompatible revision: Draft-8 uses
// distinct short/long markers for String and Huge and a single 'E'
// marker to close both streamed arrays and streamed objects; Draft-9
// unifies container markers as '[' / '{' with their own close markers
// and adds Uint8 and Char markers. The two drafts disagree on nearly
// every marker byte, so every Decoder, Encoder and Pprinter is
// constructed against exactly one Draft and never mixes tables.
//
// # Tokenizer
//
// Internally the Decoder is a flat pull tokenizer (see decode.go):
// it never tracks container nesting itself. Decode, Pprint and the
// fuzz round-trip property all drive the token stream by counting
// children for sized containers and watching for the appropriate close
// token for streamed ones.
//
// # Errors
//
// Decode errors are one of MarkerError, DecodeError, DraftError or
// EndOfStreamError (the source ran out while a token was still
// expected); encode errors are EncodeError. All wrap a small set of
// sentinel errors (ErrMarker, ErrDecode, ErrDraft, ErrEndOfStream,
// ErrEncode) usable with errors.Is.
package ubj
