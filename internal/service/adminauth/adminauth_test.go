package adminauth

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/reweara/api/internal/events"
	"github.com/reweara/api/internal/hash"
	"github.com/reweara/api/internal/models"
	"github.com/reweara/api/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return &Service{
		Store:     store.New(db),
		JWTSecret: []byte("test-secret"),
		Producer:  events.NewProducer(""),
	}
}

func createAdmin(t *testing.T, s *Service, email, password string) *models.AdminUser {
	t.Helper()
	pw, err := hash.HashPassword(password)
	require.NoError(t, err)
	admin := &models.AdminUser{Email: email, PasswordHash: pw, Role: "admin"}
	require.NoError(t, s.Store.CreateAdmin(context.Background(), admin))
	return admin
}

func TestLoginSuccess(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	createAdmin(t, s, "ops@reweara.example", "correct horse")

	res, err := s.Login(ctx, "ops@reweara.example", "correct horse", "")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.True(t, res.ExpiresAt.After(time.Now()))
	require.NotNil(t, res.Admin.LastLoginAt)

	claims, err := s.ParseToken(res.Token)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	s := newTestService(t)
	createAdmin(t, s, "ops@reweara.example", "correct horse")

	_, err := s.Login(context.Background(), "ops@reweara.example", "wrong", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(context.Background(), "nobody@reweara.example", "whatever", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	admin := createAdmin(t, s, "ops@reweara.example", "correct horse")

	for i := 0; i < maxFailedAttempts; i++ {
		_, err := s.Login(ctx, admin.Email, "wrong", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// even the correct password is rejected while the lock holds
	_, err := s.Login(ctx, admin.Email, "correct horse", "")
	require.ErrorIs(t, err, ErrAccountLocked)

	// an elapsed lock clears on the next good login
	past := time.Now().Add(-time.Minute)
	require.NoError(t, s.Store.DB.Model(&models.AdminUser{}).Where("id = ?", admin.ID).
		Update("locked_until", &past).Error)

	res, err := s.Login(ctx, admin.Email, "correct horse", "")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	stored, err := s.Store.GetAdmin(ctx, admin.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, stored.FailedAttempts)
	require.Nil(t, stored.LockedUntil)
}

func TestLoginWithTOTP(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	admin := createAdmin(t, s, "ops@reweara.example", "correct horse")

	setup, err := s.SetupTOTP(ctx, admin.ID)
	require.NoError(t, err)
	require.NotEmpty(t, setup.Secret)

	// provisioning alone does not turn 2FA on
	res, err := s.Login(ctx, admin.Email, "correct horse", "")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	code, err := totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, s.EnableTOTP(ctx, admin.ID, code))

	_, err = s.Login(ctx, admin.Email, "correct horse", "")
	require.ErrorIs(t, err, ErrTOTPRequired)

	_, err = s.Login(ctx, admin.Email, "correct horse", "000000")
	require.ErrorIs(t, err, ErrTOTPInvalid)

	code, err = totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)
	res, err = s.Login(ctx, admin.Email, "correct horse", code)
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
}

func TestEnableTOTPWithoutProvisioning(t *testing.T) {
	s := newTestService(t)
	admin := createAdmin(t, s, "ops@reweara.example", "correct horse")

	err := s.EnableTOTP(context.Background(), admin.ID, "123456")
	require.ErrorIs(t, err, ErrTOTPNotProvisioned)
}

func TestDisableTOTPRequiresValidCode(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	admin := createAdmin(t, s, "ops@reweara.example", "correct horse")

	setup, err := s.SetupTOTP(ctx, admin.ID)
	require.NoError(t, err)
	code, err := totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, s.EnableTOTP(ctx, admin.ID, code))

	require.ErrorIs(t, s.DisableTOTP(ctx, admin.ID, "000000"), ErrTOTPInvalid)

	code, err = totp.GenerateCode(setup.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, s.DisableTOTP(ctx, admin.ID, code))

	stored, err := s.Store.GetAdmin(ctx, admin.ID)
	require.NoError(t, err)
	require.False(t, stored.TOTPEnabled)
	require.Empty(t, stored.TOTPSecret)
}

func TestParseTokenRejectsForgedToken(t *testing.T) {
	s := newTestService(t)
	other := &Service{Store: s.Store, JWTSecret: []byte("other-secret"), Producer: events.NewProducer("")}

	createAdmin(t, s, "ops@reweara.example", "correct horse")
	res, err := s.Login(context.Background(), "ops@reweara.example", "correct horse", "")
	require.NoError(t, err)

	_, err = other.ParseToken(res.Token)
	require.Error(t, err)
}

func TestAuditWritesEntry(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	admin := createAdmin(t, s, "ops@reweara.example", "correct horse")
	res, err := s.Login(ctx, admin.Email, "correct horse", "")
	require.NoError(t, err)

	claims, err := s.ParseToken(res.Token)
	require.NoError(t, err)

	s.Audit(ctx, claims, "product_updated", "product", 7, map[string]any{"field": "price"}, "10.0.0.1", "test-agent")

	logs, total, err := s.Store.ListAuditLogs(ctx, 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "product_updated", logs[0].Action)
	require.Equal(t, admin.Email, logs[0].AdminEmail)
	require.Contains(t, logs[0].Details, "price")
}

func TestAuditMalformedSubjectStillRecorded(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	claims := &Claims{
		Role:             "admin",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "not-a-number"},
	}
	s.Audit(ctx, claims, "export", "product", 0, nil, "10.0.0.1", "test-agent")

	// The entry still lands, attributed to admin 0 with no email.
	logs, total, err := s.Store.ListAuditLogs(ctx, 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Zero(t, logs[0].AdminID)
	require.Empty(t, logs[0].AdminEmail)
	require.Equal(t, "export", logs[0].Action)
}
