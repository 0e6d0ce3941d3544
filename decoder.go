package sigcodec

import (
	"github.com/palisade-labs/sigcodec/internal/frame"
	"github.com/palisade-labs/sigcodec/internal/stream"
)

// Decoder recovers entries from a payload produced by an Encoder built
// with the same hash, cid, salt, and challenge type. All four fields are
// required constructor arguments: spec §6 notes that mismatched context
// is the one programmer error this codec can't detect, and it manifests
// as garbled output rather than a reported failure.
type Decoder struct {
	ctx *Context
}

// NewDecoder builds a Decoder for a fixed context.
func NewDecoder(hash, cid string, salt int32, t ChallengeType) *Decoder {
	return &Decoder{ctx: newContext(hash, cid, salt, t)}
}

// NewDecoderFromName builds a Decoder from a case-insensitive challenge-type
// tag (spec §6), e.g. "captcha" or "Interstitial", via ParseChallengeType.
func NewDecoderFromName(hash, cid string, salt int32, typeName string) *Decoder {
	return NewDecoder(hash, cid, salt, ParseChallengeType(typeName))
}

// Decode reverses Encoder.Finish. It never returns an error: malformed
// wire text decodes to whatever the lenient envelope and scanner stages
// produce, per spec §7.
func (d *Decoder) Decode(text string) []frame.Entry {
	// Reproduces the encoder's stream settings (main with alt, cid without)
	// in the opposite construction order: the cid stream is built first,
	// with useAlt explicitly false, so the one-shot alt latch is still
	// available for the main stream built right after it.
	factory := stream.NewFactory()
	cid := factory.New(d.ctx.cidSeed, d.ctx.salt, false)
	main := factory.New(d.ctx.mainSeed, d.ctx.salt, true)

	wire := envelopeDecode([]byte(text), d.ctx.salt, d.ctx.challengeType)
	return frame.Decode(wire, main, cid)
}
