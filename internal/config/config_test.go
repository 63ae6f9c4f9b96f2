package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.NotEmpty(t, cfg.DBConn)
	assert.Equal(t, int64(100_000), cfg.SchedulePaymentWarning)
	assert.Equal(t, int64(200_000), cfg.SchedulePaymentDanger)
	assert.Equal(t, int64(80), cfg.ExpenseRatioWarning)
}

func TestNewConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SCHEDULE_PAYMENT_WARNING", "150000")
	t.Setenv("SCHEDULE_PAYMENT_DANGER", "300000")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, int64(150_000), cfg.SchedulePaymentWarning)
	assert.Equal(t, int64(300_000), cfg.SchedulePaymentDanger)
}

func TestNewConfigRejectsInvertedBands(t *testing.T) {
	t.Setenv("SCHEDULE_PAYMENT_WARNING", "300000")
	t.Setenv("SCHEDULE_PAYMENT_DANGER", "200000")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestNewConfigIgnoresUnparsableInt(t *testing.T) {
	t.Setenv("LOW_BALANCE_WARNING", "lots")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, int64(100_000), cfg.LowBalanceWarning)
}

func TestThresholds(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	th := cfg.Thresholds()
	assert.Equal(t, cfg.SchedulePaymentWarning, th.SchedulePaymentWarning)
	assert.Equal(t, cfg.DebtRatioDanger, th.DebtRatioDanger)
	assert.Equal(t, cfg.LiquidityRatioWarn, th.LiquidityRatioWarn)
}
