package sigcodec

import "github.com/palisade-labs/sigcodec/internal/envelope"

func envelopeEncode(data []byte, salt int32, _ ChallengeType) []byte {
	return envelope.Encode(data, salt)
}

func envelopeDecode(wire []byte, salt int32, t ChallengeType) []byte {
	if t == Interstitial {
		return envelope.DecodeInterstitial(wire, salt)
	}
	return envelope.DecodeCaptcha(wire, salt)
}
