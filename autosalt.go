package sigcodec

import (
	"math"

	"github.com/palisade-labs/sigcodec/internal/wordmix"
)

// autoSaltXorConst is 11027890091 coerced to a 32-bit signed word the way a
// bitwise XOR operand would be on a host whose integers are IEEE-754
// doubles: truncated via ToInt32, not via Go's native (and much cheaper)
// 32-bit wraparound.
var autoSaltXorConst = toInt32(11027890091)

// deriveAutoSalt computes the clock-seeded salt a host without an explicit
// salt falls back to: WordMixer(WordMixer((nowMs >> 3) XOR K) * mainConstRaw).
// The multiplication by mainConstRaw must happen at double precision (it
// overflows 32 bits by more than twenty bits) before folding the product
// back through WordMixer; see §9.3.
func deriveAutoSalt(nowMs int64) int32 {
	truncatedNow := toInt32(float64(nowMs))
	inner := (truncatedNow >> 3) ^ autoSaltXorConst
	mixed := wordmix.Mix(inner)

	product := float64(mixed) * float64(mainConstRaw)
	folded := toInt32(product)

	return wordmix.Mix(folded)
}

// toInt32 reproduces ECMAScript's ToInt32 abstract operation: truncate
// toward zero, reduce modulo 2^32, then remap into the signed range. Used
// wherever the reference relies on a double silently losing precision
// before a bitwise operator coerces it back to 32 bits.
func toInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	const twoPow32 = 4294967296
	const twoPow31 = 2147483648

	f = math.Trunc(f)
	m := math.Mod(f, twoPow32)
	if m < 0 {
		m += twoPow32
	}
	if m >= twoPow31 {
		m -= twoPow32
	}
	return int32(m)
}
