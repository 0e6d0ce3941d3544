package sigcodec

import (
	"fmt"
	"math"
	"time"

	"github.com/palisade-labs/sigcodec/internal/frame"
	"github.com/palisade-labs/sigcodec/internal/stream"
)

// Encoder turns a sequence of Add calls into the finished wire payload. An
// Encoder is single-use in the sense spec §6 describes: Finish is meant to
// be called exactly once per session, though calling it again just
// re-serialises whatever state is left.
type Encoder struct {
	ctx *Context
	cfg encoderConfig

	factory *stream.Factory
	main    *stream.Stream
	cid     *stream.Stream
	writer  *frame.Writer
}

// NewEncoder builds an Encoder for the given hash/cid, applying opts in
// order. If no salt is supplied via WithSalt, one is derived from the
// clock collaborator (WithClock, defaulting to time.Now).
func NewEncoder(hash, cid string, opts ...EncoderOption) *Encoder {
	cfg := encoderConfig{
		clock:     func() int64 { return time.Now().UnixMilli() },
		challenge: Captcha,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	salt := cfg.salt
	if !cfg.hasSalt {
		salt = deriveAutoSalt(cfg.clock())
	}

	e := &Encoder{cfg: cfg}
	e.ctx = newContext(hash, cid, salt, cfg.challenge)
	e.reset()
	return e
}

// reset rebuilds the keystream factory, both streams, and the writer from
// the current context. It's the common path for both construction and
// SetChallengeType.
func (e *Encoder) reset() {
	e.factory = stream.NewFactory()
	e.main = e.factory.New(e.ctx.mainSeed, e.ctx.salt, true)
	e.cid = e.factory.New(e.ctx.cidSeed, e.ctx.salt, true)
	e.writer = frame.NewWriter(e.main)
}

// Salt returns the effective salt in use, whether explicit or auto-derived.
func (e *Encoder) Salt() int32 { return e.ctx.salt }

// SetChallengeType resets all internal state and re-derives seeds from the
// new challenge type; any previously added entries are discarded, per
// spec §6.
func (e *Encoder) SetChallengeType(t ChallengeType) {
	e.cfg.challenge = t
	e.ctx.challengeType = t
	e.ctx.deriveSeeds()
	e.reset()
}

// Add frames one (key, value) entry. Invalid entries (empty key, or the
// historical "xt1" key) are silently dropped, per spec §4.6 — the drop
// check runs before any value validation, so a dropped key has no
// observable effect for any value, including a non-finite float that
// would otherwise fail to stringify. On an otherwise-accepted key it
// returns an error for a non-finite float, which the JSON stringifier has
// no valid representation for, and for a value of another type that the
// JSON marshaller cannot encode.
func (e *Encoder) Add(key string, value any) error {
	if key == "" || key == "xt1" {
		if e.cfg.logger != nil {
			e.cfg.logger.Printf("add: dropped key %q", key)
		}
		return nil
	}

	if f, ok := asFloat(value); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		err := fmt.Errorf("sigcodec: value for key %q is not finite: %v", key, f)
		if e.cfg.logger != nil {
			e.cfg.logger.Printf("add: %v", err)
		}
		return err
	}

	v, err := frame.FromAny(value)
	if err != nil {
		if e.cfg.logger != nil {
			e.cfg.logger.Printf("add: key %q: %v", key, err)
		}
		return fmt.Errorf("sigcodec: encoding value for key %q: %w", key, err)
	}

	e.writer.Add(key, v)
	return nil
}

func asFloat(value any) (float64, bool) {
	switch x := value.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	default:
		return 0, false
	}
}

// Finish produces the payload text.
func (e *Encoder) Finish() string {
	buf := e.writer.Finish(e.cid)
	return string(envelopeEncode(buf, e.ctx.salt, e.ctx.challengeType))
}
