package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/credvault/internal/vault/domain"
	"github.com/aussiebroadwan/credvault/internal/vault/store"
	"github.com/aussiebroadwan/credvault/pkg/cryptox"
	"github.com/aussiebroadwan/credvault/pkg/fieldcrypt"
	"github.com/aussiebroadwan/credvault/pkg/idx"
	"github.com/aussiebroadwan/credvault/pkg/jwtx"
	"github.com/aussiebroadwan/credvault/pkg/otpx"
	"github.com/aussiebroadwan/credvault/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTOTPRequired       = errors.New("2FA code required")
	ErrInvalidTOTPCode    = errors.New("invalid 2FA code")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidUser        = errors.New("username and password are required")
)

// AuthService authenticates operators and issues session tokens.
type AuthService struct {
	Store  store.Store
	Cipher *fieldcrypt.Cipher
	Hasher cryptox.Hasher
	OTP    *otpx.Engine
	Signer jwtx.Signer

	Issuer   string
	Audience []string
	TTL      time.Duration

	// Now is the clock, replaced in tests.
	Now func() time.Time
}

// Session is an issued operator session.
type Session struct {
	Token     string
	ExpiresAt time.Time
	UserID    string
	Username  string
}

// Enrollment is the material needed to add a TOTP secret to an
// authenticator app.
type Enrollment struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauthUrl"`
	QRCode     string `json:"qrCodeUrl"`
}

func (s *AuthService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func (s *AuthService) ttl() time.Duration {
	if s.TTL <= 0 {
		return jwtx.DefaultSessionTTL
	}
	return s.TTL
}

// Login checks the password and, when enabled, the second factor. A user
// with 2FA enabled who supplies no code gets ErrTOTPRequired so the client
// can prompt for one.
func (s *AuthService) Login(ctx context.Context, username, password, code string) (Session, error) {
	l := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("login for unknown user", slog.String("username", username))
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("failed to load user: %w", err)
	}

	if !s.checkPassword(u, password) {
		l.Info("login with wrong password", slog.String("user_id", u.ID))
		return Session{}, ErrInvalidCredentials
	}

	amr := []string{jwtx.AMRPassword}
	if u.TwoFAEnabled {
		code = strings.TrimSpace(code)
		if code == "" {
			return Session{}, ErrTOTPRequired
		}
		if !s.OTP.VerifyCode(s.userSecret(u), code) {
			l.Info("login with wrong 2FA code", slog.String("user_id", u.ID))
			return Session{}, ErrInvalidTOTPCode
		}
		amr = append(amr, jwtx.AMROTP)
	}

	now := s.now()
	if err := s.Store.Users().UpdateLastLogin(ctx, u.ID, now); err != nil {
		return Session{}, fmt.Errorf("failed to record login: %w", err)
	}

	sid, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return Session{}, fmt.Errorf("failed to generate session id: %w", err)
	}

	claims := jwtx.NewSessionClaims(u.ID, sid, u.Username, amr, s.ttl(), s.Issuer, s.Audience, now)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return Session{}, fmt.Errorf("failed to sign session: %w", err)
	}

	l.Info("operator logged in", slog.String("user_id", u.ID))
	return Session{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		UserID:    u.ID,
		Username:  u.Username,
	}, nil
}

// checkPassword accepts Argon2id hashes and, for users imported from the
// previous application, passwords stored through the field cipher.
func (s *AuthService) checkPassword(u domain.User, password string) bool {
	if cryptox.IsPasswordHash(u.Password) {
		return s.Hasher.Verify(password, u.Password) == nil
	}

	res := s.Cipher.Open(u.Password)
	if res.Outcome != fieldcrypt.Decrypted {
		return false
	}
	stored := res.Value.String()
	return stored != "" && subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

func (s *AuthService) userSecret(u domain.User) string {
	if u.TwoFASecret == nil {
		return ""
	}
	return s.Cipher.DecryptString(*u.TwoFASecret)
}

// CreateUser adds an operator. When withTOTP is set a secret is generated
// and enabled straight away, and returned so it can be shown once.
func (s *AuthService) CreateUser(ctx context.Context, username, password string, withTOTP bool) (domain.User, *Enrollment, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, nil, ErrInvalidUser
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return domain.User{}, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	u := domain.User{
		ID:        idx.NewAt(now).String(),
		Username:  username,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var enrol *Enrollment
	if withTOTP {
		key, err := s.OTP.GenerateKey(s.Issuer, username)
		if err != nil {
			return domain.User{}, nil, err
		}
		sealed, err := s.Cipher.EncryptString(key.Secret())
		if err != nil {
			return domain.User{}, nil, fmt.Errorf("failed to encrypt 2FA secret: %w", err)
		}
		u.TwoFASecret = &sealed
		u.TwoFAEnabled = true
		enrol = &Enrollment{Secret: key.Secret(), OTPAuthURL: key.URL()}
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, nil, ErrUserExists
		}
		return domain.User{}, nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, enrol, nil
}
