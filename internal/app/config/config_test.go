package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInternalConfig(t *testing.T) {
	t.Setenv("CLERK_JWT_KEY", "-----BEGIN PUBLIC KEY-----")
	t.Setenv("DAILY_API_KEY", "daily-key")
	t.Setenv("APP_REMINDER_CRON_SPEC", "@every 30s")
	t.Setenv("APP_STORAGE_DRIVER", "minio")

	internalConfig, err := NewInternalConfig()
	require.NoError(t, err)

	assert.Equal(t, "daily-key", internalConfig.Daily.APIKey)
	assert.Equal(t, "@every 30s", internalConfig.Reminder.CronSpec)
	assert.Equal(t, "minio", internalConfig.App.StorageDriver)
	assert.Equal(t, 15, internalConfig.Reminder.LeadMinutes)
	assert.Equal(t, "/api", internalConfig.App.EndpointPrefix)
	assert.Equal(t, 2.0, internalConfig.Daily.RequestsPerSecond)
	assert.True(t, internalConfig.Reminder.Enabled)
}

func TestNewInternalConfigRequiresSecrets(t *testing.T) {
	t.Setenv("CLERK_JWT_KEY", "")
	t.Setenv("DAILY_API_KEY", "")
	t.Setenv("APP_STORAGE_DRIVER", "s3")

	_, err := NewInternalConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLERK_JWT_KEY")
	assert.Contains(t, err.Error(), "DAILY_API_KEY")
	assert.Contains(t, err.Error(), "APP_STORAGE_DRIVER")
}
