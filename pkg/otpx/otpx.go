package otpx

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	DefaultPeriod = 30 // seconds per window
	DefaultSkew   = 1  // windows accepted either side of the current one

	// Placeholder is shown in place of a code when the secret is unusable.
	Placeholder = "------"
)

var ErrEmptySecret = errors.New("otpx: empty secret")

// Engine generates and validates RFC 6238 codes. The zero value is not
// usable; construct it with New.
type Engine struct {
	Period    uint
	Digits    otp.Digits
	Skew      uint
	Algorithm otp.Algorithm

	// Now is the clock, replaced in tests.
	Now func() time.Time

	// Tick is the refresh interval for Watch (default one second).
	Tick time.Duration
}

// New returns an engine with 30 second windows, six SHA1 digits and a
// tolerance of one window either side for verification.
func New() *Engine {
	return &Engine{
		Period:    DefaultPeriod,
		Digits:    otp.DigitsSix,
		Skew:      DefaultSkew,
		Algorithm: otp.AlgorithmSHA1,
		Now:       time.Now,
		Tick:      time.Second,
	}
}

// CodeWindow is a code together with its remaining validity. It is derived
// from (secret, now) and never persisted.
type CodeWindow struct {
	Code      string    `json:"code"`
	Remaining int       `json:"remaining"`
	ExpiresAt time.Time `json:"expiresAt"`

	// Valid is false when Code is the placeholder.
	Valid bool `json:"valid"`

	// Refreshed is set on the first window Watch emits after a boundary.
	Refreshed bool `json:"refreshed"`
}

// NormalizeSecret strips whitespace and upper-cases a base32 secret, so
// secrets copied as "jbsw y3dp ..." still work.
func NormalizeSecret(secret string) string {
	return strings.ToUpper(strings.Join(strings.Fields(secret), ""))
}

func (e *Engine) opts(skew uint) totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    e.period(),
		Skew:      skew,
		Digits:    e.Digits,
		Algorithm: e.Algorithm,
	}
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// GenerateCodeAt returns the code for the window containing t.
func (e *Engine) GenerateCodeAt(secret string, t time.Time) (string, error) {
	secret = NormalizeSecret(secret)
	if secret == "" {
		return "", ErrEmptySecret
	}
	code, err := totp.GenerateCodeCustom(secret, t.UTC(), e.opts(0))
	if err != nil {
		return "", fmt.Errorf("otpx: generate code: %w", err)
	}
	return code, nil
}

// GenerateCode returns the code for the current window, or Placeholder when
// the secret is malformed. It never fails.
func (e *Engine) GenerateCode(secret string) string {
	code, err := e.GenerateCodeAt(secret, e.now())
	if err != nil {
		return Placeholder
	}
	return code
}

// VerifyCode reports whether code matches the current window or one of the
// Skew windows either side of it.
func (e *Engine) VerifyCode(secret, code string) bool {
	secret = NormalizeSecret(secret)
	code = strings.TrimSpace(code)
	if secret == "" || code == "" {
		return false
	}
	ok, err := totp.ValidateCustom(code, secret, e.now().UTC(), e.opts(e.Skew))
	if err != nil {
		return false
	}
	return ok
}

// SecondsRemaining returns Period - (epochSeconds mod Period), so a window
// boundary reports the full period.
func (e *Engine) SecondsRemaining(epochSeconds int64) int {
	p := int64(e.period())
	return int(p - ((epochSeconds%p)+p)%p)
}

func (e *Engine) period() uint {
	if e.Period == 0 {
		return DefaultPeriod
	}
	return e.Period
}

// counter is the RFC 6238 time step containing t.
func (e *Engine) counter(t time.Time) int64 {
	return t.Unix() / int64(e.period())
}

// WindowAt computes the code window for t.
func (e *Engine) WindowAt(secret string, t time.Time) CodeWindow {
	remaining := e.SecondsRemaining(t.Unix())
	w := CodeWindow{
		Code:      Placeholder,
		Remaining: remaining,
		ExpiresAt: time.Unix(t.Unix()+int64(remaining), 0).UTC(),
	}
	if code, err := e.GenerateCodeAt(secret, t); err == nil {
		w.Code = code
		w.Valid = true
	}
	return w
}

// Window computes the code window for the current time.
func (e *Engine) Window(secret string) CodeWindow {
	return e.WindowAt(secret, e.now())
}

// GenerateKey creates a new random secret for enrolment.
func (e *Engine) GenerateKey(issuer, account string) (*otp.Key, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: account,
		Period:      e.period(),
		Digits:      e.Digits,
		Algorithm:   e.Algorithm,
	})
	if err != nil {
		return nil, fmt.Errorf("otpx: generate key: %w", err)
	}
	return key, nil
}
