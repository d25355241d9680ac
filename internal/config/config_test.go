package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"clinic-scheduler-server/internal/config"
)

func TestLoadConfig_DefaultSlots(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	require.Len(t, cfg.SlotLabels, 12)
	require.Equal(t, "09:00 AM", cfg.SlotLabels[0])
	require.Equal(t, "04:30 PM", cfg.SlotLabels[len(cfg.SlotLabels)-1])

	// The lunch window is not offered.
	require.NotContains(t, cfg.SlotLabels, "12:00 PM")
	require.NotContains(t, cfg.SlotLabels, "12:30 PM")
	require.NotContains(t, cfg.SlotLabels, "01:00 PM")
	require.NotContains(t, cfg.SlotLabels, "01:30 PM")
}

func TestLoadConfig_SlotOverride(t *testing.T) {
	t.Setenv("CLINIC_SLOTS", "08:00 AM, 08:30 AM ,09:00 AM")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	require.Equal(t, []string{"08:00 AM", "08:30 AM", "09:00 AM"}, cfg.SlotLabels)
}

func TestLoadConfig_EmptySlotsRejected(t *testing.T) {
	t.Setenv("CLINIC_SLOTS", " , ,")

	_, err := config.LoadConfig()
	require.Error(t, err)
}
