// Package stream implements ByteStream, the stateful pseudo-random byte
// generator that drives both of the codec's keystreams (main and cid). It
// is modelled as a struct with an explicit Next(cacheNext) method rather
// than a captured closure, so its lifetime and internal state are visible
// to callers and tests.
package stream

import "github.com/palisade-labs/sigcodec/internal/wordmix"

// Stream produces one pseudo-random byte per call to Next, derived from a
// 32-bit xorshift state word and, when alt mode is enabled, an additional
// salt countdown XOR overlay. A Stream is built for a single encode or
// decode pass and is not reused afterwards.
type Stream struct {
	state     wordmix.Word
	round     int // -1, 0, 1, 2; wraps to 0 and remixes state once it exceeds 2
	saltState int32
	useAlt    bool
	cached    *byte
}

// New constructs a Stream with the given seed, salt countdown, and alt-mode
// flag. round starts at -1 so the first call to Next always advances it to
// 0 before producing a byte.
func New(seed int32, salt int32, useAlt bool) *Stream {
	return &Stream{
		state:     seed,
		round:     -1,
		saltState: salt,
		useAlt:    useAlt,
	}
}

// Next returns the stream's next pseudo-random byte. If cacheNext is true,
// the byte is also stashed in a one-slot cache; the following call drains
// that cache (ignoring its own cacheNext argument) instead of advancing the
// generator, so a (true) call followed by a (false) call always returns the
// same byte while the state advances only once.
func (s *Stream) Next(cacheNext bool) byte {
	if s.cached != nil {
		b := *s.cached
		s.cached = nil
		return b
	}

	s.round++
	if s.round > 2 {
		s.round = 0
		s.state = wordmix.Mix(s.state)
	}

	result := s.state >> (16 - 8*s.round)
	if s.useAlt {
		s.saltState--
		result ^= s.saltState
	}
	b := byte(result & 0xFF)

	if cacheNext {
		s.cached = &b
	}
	return b
}

// Factory builds Streams for one encode or decode session, enforcing the
// "useAlt consumed on first construction" latch: once a Stream has been
// built with useAlt=true, every subsequent Stream from the same Factory is
// built with useAlt=false, regardless of what the caller asks for.
type Factory struct {
	altAvailable bool
}

// NewFactory returns a Factory whose first New call may honour useAlt=true.
func NewFactory() *Factory {
	return &Factory{altAvailable: true}
}

// New builds a Stream with the given seed and salt. useAlt is honoured only
// if the factory's one-shot latch has not already been consumed; the latch
// is cleared only once a Stream is actually built with useAlt in effect,
// matching the reference implementation's captured-then-cleared closure
// variable (a caller that first builds with useAlt=false does not burn the
// latch — only an actual true build does).
func (f *Factory) New(seed int32, salt int32, useAlt bool) *Stream {
	effectiveAlt := useAlt && f.altAvailable
	if effectiveAlt {
		f.altAvailable = false
	}
	return New(seed, salt, effectiveAlt)
}
