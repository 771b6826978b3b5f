// Package adminauth implements the back-office authentication path:
// bcrypt passwords, optional TOTP second factor, short-lived JWTs and
// account lockout, with an audit trail for every administrative action.
package adminauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/reweara/api/internal/events"
	"github.com/reweara/api/internal/hash"
	"github.com/reweara/api/internal/logging"
	"github.com/reweara/api/internal/models"
	"github.com/reweara/api/internal/store"
)

const (
	maxFailedAttempts = 5
	lockoutDuration   = 30 * time.Minute
	tokenTTL          = time.Hour
	totpPeriod        = 30
	totpSkew          = 2
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account is locked")
	ErrTOTPRequired       = errors.New("totp code required")
	ErrTOTPInvalid        = errors.New("invalid totp code")
	ErrTOTPNotProvisioned = errors.New("totp secret has not been provisioned")
)

type Service struct {
	Store     *store.Store
	JWTSecret []byte
	Producer  *events.Producer
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Admin     *models.AdminUser
}

// Login validates credentials and, when 2FA is enabled, the TOTP code.
// Five consecutive failures lock the account for thirty minutes; the lock
// rejects even a correct password until it elapses.
func (s *Service) Login(ctx context.Context, email, password, totpCode string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "adminauth.login", "email", email)

	admin, err := s.Store.GetAdminByEmail(ctx, email)
	if err != nil {
		l.Warn("login_failed", "reason", "unknown_email")
		return nil, ErrInvalidCredentials
	}

	if admin.LockedUntil != nil && admin.LockedUntil.After(time.Now()) {
		l.Warn("login_rejected", "reason", "locked", "until", admin.LockedUntil)
		return nil, ErrAccountLocked
	}

	if !hash.CheckPassword(admin.PasswordHash, password) {
		if err := s.recordFailure(ctx, admin); err != nil {
			l.Error("lockout_update_failed", "error", err)
		}
		l.Warn("login_failed", "reason", "bad_password", "failed_attempts", admin.FailedAttempts)
		return nil, ErrInvalidCredentials
	}

	if admin.TOTPEnabled {
		if totpCode == "" {
			return nil, ErrTOTPRequired
		}
		if !validateTOTP(totpCode, admin.TOTPSecret) {
			if err := s.recordFailure(ctx, admin); err != nil {
				l.Error("lockout_update_failed", "error", err)
			}
			l.Warn("login_failed", "reason", "bad_totp")
			return nil, ErrTOTPInvalid
		}
	}

	now := time.Now()
	admin.FailedAttempts = 0
	admin.LockedUntil = nil
	admin.LastLoginAt = &now
	if err := s.Store.UpdateAdmin(ctx, admin); err != nil {
		return nil, err
	}

	exp := now.Add(tokenTTL)
	token, err := s.sign(admin, exp)
	if err != nil {
		return nil, err
	}

	if err := s.Producer.Publish(ctx, events.TopicAdmin, fmt.Sprint(admin.ID), map[string]any{
		"type":    "admin_login",
		"adminID": admin.ID,
		"email":   admin.Email,
	}); err != nil {
		l.Warn("event_publish_failed", "error", err)
	}

	l.Info("login_success", "admin_id", admin.ID)
	return &LoginResult{Token: token, ExpiresAt: exp, Admin: admin}, nil
}

// recordFailure bumps the counter and sets the lock once the threshold is
// crossed. The counter resets only on successful login.
func (s *Service) recordFailure(ctx context.Context, admin *models.AdminUser) error {
	admin.FailedAttempts++
	if admin.FailedAttempts >= maxFailedAttempts {
		until := time.Now().Add(lockoutDuration)
		admin.LockedUntil = &until
	}
	return s.Store.UpdateAdmin(ctx, admin)
}

func (s *Service) sign(admin *models.AdminUser, exp time.Time) (string, error) {
	claims := Claims{
		Role: admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(admin.ID),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.JWTSecret)
}

// ParseToken verifies an admin JWT and returns its claims.
func (s *Service) ParseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.JWTSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// TOTPSetup provisions a new secret. 2FA stays off until the admin proves
// possession via EnableTOTP.
type TOTPSetup struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

func (s *Service) SetupTOTP(ctx context.Context, adminID uint) (*TOTPSetup, error) {
	admin, err := s.Store.GetAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "ReWeara Admin",
		AccountName: admin.Email,
		Period:      totpPeriod,
	})
	if err != nil {
		return nil, err
	}

	admin.TOTPSecret = key.Secret()
	admin.TOTPEnabled = false
	if err := s.Store.UpdateAdmin(ctx, admin); err != nil {
		return nil, err
	}
	return &TOTPSetup{Secret: key.Secret(), URL: key.URL()}, nil
}

func (s *Service) EnableTOTP(ctx context.Context, adminID uint, code string) error {
	admin, err := s.Store.GetAdmin(ctx, adminID)
	if err != nil {
		return err
	}
	if admin.TOTPSecret == "" {
		return ErrTOTPNotProvisioned
	}
	if !validateTOTP(code, admin.TOTPSecret) {
		return ErrTOTPInvalid
	}
	admin.TOTPEnabled = true
	return s.Store.UpdateAdmin(ctx, admin)
}

func (s *Service) DisableTOTP(ctx context.Context, adminID uint, code string) error {
	admin, err := s.Store.GetAdmin(ctx, adminID)
	if err != nil {
		return err
	}
	if admin.TOTPEnabled && !validateTOTP(code, admin.TOTPSecret) {
		return ErrTOTPInvalid
	}
	admin.TOTPEnabled = false
	admin.TOTPSecret = ""
	return s.Store.UpdateAdmin(ctx, admin)
}

func validateTOTP(code, secret string) bool {
	ok, err := totp.ValidateCustom(code, secret, time.Now(), totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}

// Audit records an administrative action. Failures are logged, never
// surfaced: losing one audit row must not fail the mutation it describes.
func (s *Service) Audit(ctx context.Context, admin *Claims, action, entityType string, entityID uint, details any, ip, userAgent string) {
	l := logging.FromContext(ctx)

	payload := ""
	if details != nil {
		if data, err := json.Marshal(details); err == nil {
			payload = string(data)
		}
	}

	var adminID uint
	if id, err := strconv.ParseUint(admin.Subject, 10, 64); err == nil {
		adminID = uint(id)
	} else {
		l.Warn("audit_bad_subject", "subject", admin.Subject, "error", err)
	}

	entry := &models.AuditLog{
		AdminID:    adminID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    payload,
		IP:         ip,
		UserAgent:  userAgent,
	}
	if a, err := s.Store.GetAdmin(ctx, adminID); err == nil {
		entry.AdminEmail = a.Email
	}
	if err := s.Store.CreateAuditLog(ctx, entry); err != nil {
		l.Error("audit_write_failed", "action", action, "error", err)
	}
}
