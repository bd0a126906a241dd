package scheduler

import (
	"testing"

	"findabode-backend/internal/config"
	"findabode-backend/internal/featured"
	"findabode-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestParseDailyRunTime(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"02:00", "0 2 * * *"},
		{"14:30", "30 14 * * *"},
		{"00:00", "0 0 * * *"},
		{"23:59", "59 23 * * *"},
		{"25:00", "0 2 * * *"},
		{"12:75", "0 2 * * *"},
		{"garbage", "0 2 * * *"},
		{"", "0 2 * * *"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, parseDailyRunTime(tc.in), "input %q", tc.in)
	}
}

func TestStartDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Featured.DailyRunEnabled = false

	s := NewScheduler(featured.NewService(nil), cfg)
	assert.NoError(t, s.Start())
	assert.False(t, s.isRunning)
	s.Stop()
}

func TestRunNow(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Property{}))

	s := NewScheduler(featured.NewService(db), config.DefaultConfig())

	result, err := s.RunNow()
	require.NoError(t, err)
	assert.Zero(t, result.Checked)
	assert.Zero(t, result.Errors)
}

func TestStartAndStop(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Featured.DailyRunEnabled = true
	cfg.Featured.DailyRunTime = "03:15"

	s := NewScheduler(featured.NewService(nil), cfg)
	assert.NoError(t, s.Start())
	assert.True(t, s.isRunning)
	s.Stop()
	assert.False(t, s.isRunning)
}
