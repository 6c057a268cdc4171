// Package totp derives and verifies RFC 6238 time-based one-time passwords
// from a validated seed.
//
// Codes are six digits, HMAC-SHA1, 30-second steps. The HMAC key is the 32 raw
// bytes behind the seed's 64 hex characters; the step counter is
// floor(unix/30) encoded as an 8-byte big-endian integer, and the digest is
// reduced with RFC 4226 dynamic truncation.
//
// All functions are pure: they take the seed and the instant explicitly and
// keep no state, so they are safe for concurrent use.
//
// # Usage
//
//	code, err := totp.Generate(s, time.Now())
//	validFor := totp.SecondsRemaining(time.Now())
//
//	ok, err := totp.Verify(s, userCode, totp.DefaultWindow, time.Now())
//
// Verify checks every step in [c-window, c+window] with a constant-time
// comparison and does not report which step matched.
//
// GetTOTPURI builds the otpauth:// URI used to enroll the same seed in an
// authenticator app; the seed bytes are re-encoded as unpadded Base32.
//
// # See Also
//
//   - RFC 4226 – HMAC-Based One-Time Password (HOTP) Algorithm
//   - RFC 6238 – Time-Based One-Time Password (TOTP) Algorithm
package totp
