package sigcodec

import "github.com/palisade-labs/sigcodec/internal/signhash"

// ChallengeType selects which constant set (hash-XOR seed and envelope trim
// rule) a Context uses. The zero value is Captcha.
type ChallengeType int

const (
	Captcha ChallengeType = iota
	Interstitial
)

// ParseChallengeType maps a case-insensitive tag to a ChallengeType.
// Anything other than "interstitial" is treated as "captcha", matching the
// reference's default-on-unrecognised behaviour.
func ParseChallengeType(s string) ChallengeType {
	switch lower(s) {
	case "interstitial":
		return Interstitial
	default:
		return Captcha
	}
}

func (t ChallengeType) String() string {
	if t == Interstitial {
		return "interstitial"
	}
	return "captcha"
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// The three word constants fixed by the wire protocol. mainConst32 is the
// low 32 bits of 9959949970 — it's used as-is in the original, and XORing
// it against a 32-bit word is equivalent to XORing against its low half.
const (
	mainConstRaw int64 = 9959949970
	cidConst32   int32 = 1809053797

	hashXorCaptcha      int32 = -1748112727
	hashXorInterstitial int32 = -883841716
)

// mainConst32 is the low 32 bits of mainConstRaw, reinterpreted as signed.
// Go constant conversion rejects integer truncation at compile time, so
// the raw value is masked to its low 32 bits first; that value
// (1370015378) has bit 31 clear, so it is already the signed result.
var mainConst32 = int32(mainConstRaw & 0xFFFFFFFF)

// signHashFallback mirrors SIGNHASH_FALLBACK; reused from internal/signhash
// so the two packages never drift.
const signHashFallback = signhash.Fallback

func hashXorConst(t ChallengeType) int32 {
	if t == Interstitial {
		return hashXorInterstitial
	}
	return hashXorCaptcha
}
