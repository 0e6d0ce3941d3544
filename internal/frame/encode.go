package frame

import "github.com/palisade-labs/sigcodec/internal/stream"

// Entry is one accepted (key, value) pair.
type Entry struct {
	Key   string
	Value Value
}

// Writer assembles the EncodeBuffer: it frames entries as key:value pairs,
// XORing the JSON-ish text against the main stream byte by byte, and keeps
// track of whether it has emitted anything yet so the first separator can
// be '{' and every one after it ','.
type Writer struct {
	main  *stream.Stream
	buf   []byte
	empty bool
}

// NewWriter returns a Writer that XORs every emitted byte against main.
func NewWriter(main *stream.Stream) *Writer {
	return &Writer{main: main, empty: true}
}

// Add frames one entry into the buffer. A key equal to "xt1" is a silent
// historical drop; an empty key is likewise rejected.
func (w *Writer) Add(key string, v Value) {
	if key == "" || key == "xt1" {
		return
	}

	sep := byte(',')
	if w.empty {
		sep = '{'
	}
	w.empty = false
	w.emit(sep)

	w.emitString(quoteString(key))
	w.emit(':')
	w.emitString(Stringify(v))
}

func (w *Writer) emit(b byte) {
	w.buf = append(w.buf, b^w.main.Next(false))
}

func (w *Writer) emitString(s string) {
	for i := 0; i < len(s); i++ {
		w.emit(s[i])
	}
}

// Finish appends the terminator byte and returns the finished buffer. The
// terminator is computed from the main stream's cache-flagged output so the
// byte that cid consumes next matches what a decoder replaying the same
// sequence would produce.
func (w *Writer) Finish(cid *stream.Stream) []byte {
	term := byte(0x7D) ^ w.main.Next(true) ^ cid.Next(false)
	out := append(w.buf, term)

	for i := range out {
		out[i] ^= cid.Next(false)
	}
	return out
}
