package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/credvault/internal/vault/store"
	"github.com/aussiebroadwan/credvault/pkg/fieldcrypt"
	"github.com/aussiebroadwan/credvault/pkg/otpx"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrMFANotEnrolled    = errors.New("invalid setup")
	ErrMFANotEnabled     = errors.New("2FA not enabled for this user")
	ErrMFAAlreadyEnabled = errors.New("2FA already enabled for this user")
)

// qrSize is the edge length of the enrolment QR code in pixels.
const qrSize = 256

// MFAService manages the operator's own TOTP second factor.
type MFAService struct {
	Store  store.Store
	Cipher *fieldcrypt.Cipher
	OTP    *otpx.Engine
	Issuer string
}

// Setup generates a new secret and stores it without enabling 2FA. The
// operator confirms with Verify once the authenticator app is set up.
func (s *MFAService) Setup(ctx context.Context, userID string) (Enrollment, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Enrollment{}, ErrUserNotFound
		}
		return Enrollment{}, fmt.Errorf("failed to load user: %w", err)
	}
	if u.TwoFAEnabled {
		return Enrollment{}, ErrMFAAlreadyEnabled
	}

	key, err := s.OTP.GenerateKey(s.Issuer, u.Username)
	if err != nil {
		return Enrollment{}, err
	}

	qr, err := otpx.QRCodeDataURI(key.URL(), qrSize)
	if err != nil {
		return Enrollment{}, fmt.Errorf("failed to render QR code: %w", err)
	}

	sealed, err := s.Cipher.EncryptString(key.Secret())
	if err != nil {
		return Enrollment{}, fmt.Errorf("failed to encrypt 2FA secret: %w", err)
	}
	if err := s.Store.Users().UpdateTwoFASecret(ctx, userID, sealed); err != nil {
		return Enrollment{}, fmt.Errorf("failed to store 2FA secret: %w", err)
	}

	return Enrollment{
		Secret:     key.Secret(),
		OTPAuthURL: key.URL(),
		QRCode:     qr,
	}, nil
}

// Verify checks code against the pending secret and enables 2FA.
func (s *MFAService) Verify(ctx context.Context, userID, code string) error {
	secret, enabled, err := s.secret(ctx, userID)
	if err != nil {
		return err
	}
	if secret == "" {
		return ErrMFANotEnrolled
	}
	if enabled {
		return ErrMFAAlreadyEnabled
	}
	if !s.OTP.VerifyCode(secret, code) {
		return ErrInvalidTOTPCode
	}

	if err := s.Store.Users().EnableTwoFA(ctx, userID); err != nil {
		return fmt.Errorf("failed to enable 2FA: %w", err)
	}
	return nil
}

// Disable turns 2FA off after checking a current code.
func (s *MFAService) Disable(ctx context.Context, userID, code string) error {
	secret, enabled, err := s.secret(ctx, userID)
	if err != nil {
		return err
	}
	if !enabled {
		return ErrMFANotEnabled
	}
	if !s.OTP.VerifyCode(secret, code) {
		return ErrInvalidTOTPCode
	}

	if err := s.Store.Users().DisableTwoFA(ctx, userID); err != nil {
		return fmt.Errorf("failed to disable 2FA: %w", err)
	}
	return nil
}

func (s *MFAService) secret(ctx context.Context, userID string) (string, bool, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", false, ErrUserNotFound
		}
		return "", false, fmt.Errorf("failed to load user: %w", err)
	}
	if u.TwoFASecret == nil {
		return "", u.TwoFAEnabled, nil
	}
	return s.Cipher.DecryptString(*u.TwoFASecret), u.TwoFAEnabled, nil
}
