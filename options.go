package sigcodec

import "log"

// Clock supplies the current time in milliseconds for the auto-salt path.
// It exists as an injectable collaborator so tests never depend on the
// wall clock; the default is time.Now().UnixMilli.
type Clock func() int64

type encoderConfig struct {
	salt       int32
	hasSalt    bool
	clock      Clock
	logger     *log.Logger
	challenge  ChallengeType
}

// EncoderOption configures a new Encoder. The pattern mirrors the
// teacher's weighted-strategy options: small functions closing over a
// config struct, applied in order.
type EncoderOption func(*encoderConfig)

// WithSalt fixes the salt explicitly, bypassing the clock-derived
// auto-salt path entirely.
func WithSalt(salt int32) EncoderOption {
	return func(cfg *encoderConfig) {
		cfg.salt = salt
		cfg.hasSalt = true
	}
}

// WithClock overrides the millisecond clock the auto-salt path reads from.
func WithClock(clock Clock) EncoderOption {
	return func(cfg *encoderConfig) {
		cfg.clock = clock
	}
}

// WithLogger attaches a diagnostics logger. Nil (the default) means
// silent: no failure mode in this codec ever needs to be observed to
// behave correctly, per spec §7.
func WithLogger(logger *log.Logger) EncoderOption {
	return func(cfg *encoderConfig) {
		cfg.logger = logger
	}
}

// WithChallengeType sets the initial challenge type; default is Captcha.
func WithChallengeType(t ChallengeType) EncoderOption {
	return func(cfg *encoderConfig) {
		cfg.challenge = t
	}
}

// WithChallengeTypeName sets the initial challenge type from a
// case-insensitive tag (spec §6), e.g. "captcha" or "Interstitial". Anything
// other than "interstitial" resolves to Captcha, matching ParseChallengeType.
func WithChallengeTypeName(name string) EncoderOption {
	return WithChallengeType(ParseChallengeType(name))
}
