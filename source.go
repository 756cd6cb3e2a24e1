package ubj

import (
	"bufio"
	"io"

	"github.com/klauspost/compress/zstd"
)

// ByteSource is the uniform pull interface over an arbitrary byte
// producer (spec.md §4.1). Read(n) returns exactly n bytes, or an error
// — io.EOF if the source was exhausted before any byte of this read was
// produced, io.ErrUnexpectedEOF if it was exhausted partway through.
type ByteSource interface {
	Read(n int) ([]byte, error)
}

// bufSource adapts a byte slice by plain slicing; no copying, no
// buffering needed.
type bufSource struct {
	b   []byte
	pos int
}

// NewBufferByteSource returns a ByteSource that reads from a byte slice
// directly, without copying.
func NewBufferByteSource(b []byte) ByteSource {
	return &bufSource{b: b}
}

func (s *bufSource) Read(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if s.pos >= len(s.b) {
		return nil, io.EOF
	}
	if s.pos+n > len(s.b) {
		return nil, io.ErrUnexpectedEOF
	}
	out := s.b[s.pos : s.pos+n]
	s.pos += n
	return out, nil
}

// ChunkFunc is a callable returning the next chunk of bytes, and ok ==
// false to signal exhaustion (no more chunks, not an error).
type ChunkFunc func() (chunk []byte, ok bool)

// chunkSource buffers chunks (from a callable or an iterator) until n
// bytes are available or the producer is exhausted.
type chunkSource struct {
	next    ChunkFunc
	pending []byte
	eof     bool
}

// NewFuncByteSource returns a ByteSource over a chunk-producing
// callable, buffering chunks internally until Read's n bytes are
// available.
func NewFuncByteSource(next ChunkFunc) ByteSource {
	return &chunkSource{next: next}
}

// ChunkIter is a push (yield-style) iterator of byte chunks — the shape produced by
// range-over-func style generators. NewIterByteSource adapts it the
// same way NewFuncByteSource adapts a plain callable.
type ChunkIter func(yield func([]byte) bool)

// NewIterByteSource returns a ByteSource over an iterator of byte
// chunks.
func NewIterByteSource(it ChunkIter) ByteSource {
	ch := make(chan []byte)
	done := make(chan struct{})
	go func() {
		defer close(ch)
		it(func(b []byte) bool {
			select {
			case ch <- b:
				return true
			case <-done:
				return false
			}
		})
	}()
	closed := false
	return &chunkSource{next: func() ([]byte, bool) {
		b, ok := <-ch
		if !ok && !closed {
			closed = true
			close(done)
		}
		return b, ok
	}}
}

func (s *chunkSource) fill(n int) error {
	for len(s.pending) < n {
		if s.eof {
			return io.ErrUnexpectedEOF
		}
		chunk, ok := s.next()
		if !ok {
			s.eof = true
			if len(s.pending) == 0 {
				return io.EOF
			}
			return io.ErrUnexpectedEOF
		}
		s.pending = append(s.pending, chunk...)
	}
	return nil
}

func (s *chunkSource) Read(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if len(s.pending) == 0 && s.eof {
		return nil, io.EOF
	}
	if err := s.fill(n); err != nil {
		return nil, err
	}
	out := s.pending[:n]
	s.pending = s.pending[n:]
	return out, nil
}

// readerSource adapts an io.Reader via bufio, grounded on the teacher's
// bufio.NewReader(r) use in NewDecoder.
type readerSource struct {
	r *bufio.Reader
}

// NewReaderByteSource returns a ByteSource reading directly from r, for
// the common case of decoding from a file or socket.
func NewReaderByteSource(r io.Reader) ByteSource {
	return &readerSource{r: bufio.NewReader(r)}
}

func (s *readerSource) Read(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	_, err := io.ReadFull(s.r, buf)
	if err == io.ErrUnexpectedEOF || err == io.EOF {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// NewZstdByteSource wraps a zstd-compressed stream and exposes the
// decompressed bytes through the same Read(n) contract, for UBJSON
// blobs stored compressed at rest. This is a framing convenience, not a
// concurrency feature — decompression happens synchronously on Read.
func NewZstdByteSource(r io.Reader) (ByteSource, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, &DecodeError{Reason: "zstd: " + err.Error()}
	}
	return &zstdSource{zr: zr, inner: NewReaderByteSource(zr)}, nil
}

type zstdSource struct {
	zr    *zstd.Decoder
	inner ByteSource
}

func (s *zstdSource) Read(n int) ([]byte, error) {
	b, err := s.inner.Read(n)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, &DecodeError{Reason: "zstd: " + err.Error()}
	}
	return b, err
}
