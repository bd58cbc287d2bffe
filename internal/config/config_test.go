package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "admin123")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "")
	t.Setenv("DEFAULT_VAT_PERCENTAGE", "")
	t.Setenv("PAYMENT_TERM_DAYS", "")
	t.Setenv("BACKUP_INTERVAL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15.0, cfg.DefaultVATPercentage)
	assert.Equal(t, 30, cfg.PaymentTermDays)
	assert.Equal(t, "dev-secret-change-in-production", cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.BackupInterval)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "sql driver without url",
			env:     map[string]string{"STORE_DRIVER": "postgres", "DATABASE_URL": "", "ADMIN_PASSWORD": "x"},
			wantErr: "DATABASE_URL is required",
		},
		{
			name:    "unknown driver",
			env:     map[string]string{"STORE_DRIVER": "cassandra", "ADMIN_PASSWORD": "x"},
			wantErr: "unknown STORE_DRIVER",
		},
		{
			name:    "production needs hash",
			env:     map[string]string{"ENVIRONMENT": "production", "JWT_SECRET": "s", "ADMIN_PASSWORD_HASH": "", "ADMIN_PASSWORD": "x", "STORE_DRIVER": "memory"},
			wantErr: "ADMIN_PASSWORD_HASH is required in production",
		},
		{
			name:    "no admin secret",
			env:     map[string]string{"ADMIN_PASSWORD": "", "ADMIN_PASSWORD_HASH": "", "STORE_DRIVER": "memory", "ENVIRONMENT": "development"},
			wantErr: "ADMIN_PASSWORD_HASH or ADMIN_PASSWORD must be set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetEnvAsSlice_TrimsEntries(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, getEnvAsSlice("ALLOWED_ORIGINS", nil))
}
