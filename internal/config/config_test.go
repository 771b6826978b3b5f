package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateRequiresDatabaseURL(t *testing.T) {
	cfg := &Config{Env: "development"}
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "DATABASE_URL")
}

func TestValidateRejectsDevSecretsInProduction(t *testing.T) {
	cfg := &Config{
		Env:           "production",
		DatabaseURL:   "postgres://localhost/reweara",
		JWTSecret:     defaultDevSecret,
		SessionSecret: defaultDevSecret,
	}
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_SECRET")
	require.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestValidateAcceptsProperProductionConfig(t *testing.T) {
	cfg := &Config{
		Env:           "production",
		DatabaseURL:   "postgres://localhost/reweara",
		JWTSecret:     "a-real-secret",
		SessionSecret: "another-real-secret",
	}
	require.NoError(t, cfg.Validate())
}

func TestDevSecretsAllowedOutsideProduction(t *testing.T) {
	cfg := &Config{
		Env:           "development",
		DatabaseURL:   "postgres://localhost/reweara",
		JWTSecret:     defaultDevSecret,
		SessionSecret: defaultDevSecret,
	}
	require.NoError(t, cfg.Validate())
}
