package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobadragon/storefront/internal/server/models"
)

type fakeSettingsRepo struct {
	settings models.StoreSettings
	set      []string
}

func (f *fakeSettingsRepo) Get(_ context.Context) (*models.StoreSettings, error) {
	s := f.settings
	return &s, nil
}

func (f *fakeSettingsRepo) SetManualStatus(_ context.Context, status string) error {
	f.set = append(f.set, status)
	return nil
}

func at(hour int) func() time.Time {
	return func() time.Time {
		return time.Date(2025, 6, 3, hour, 30, 0, 0, time.UTC)
	}
}

func TestStatus_ManualOverrideWins(t *testing.T) {
	repo := &fakeSettingsRepo{settings: models.StoreSettings{ManualStatus: "closed", OpenHour: 11, CloseHour: 21}}
	s := NewService(repo)
	s.now = at(12)

	st, err := s.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, st.Open, "closed override wins even during opening hours")

	repo.settings.ManualStatus = "open"
	s.now = at(3)
	st, err = s.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Open, "open override wins even at night")
}

func TestStatus_AutoFollowsHours(t *testing.T) {
	repo := &fakeSettingsRepo{settings: models.StoreSettings{ManualStatus: "auto", OpenHour: 11, CloseHour: 21}}
	s := NewService(repo)

	tests := []struct {
		hour int
		open bool
	}{
		{10, false},
		{11, true},
		{20, true},
		{21, false},
	}
	for _, tt := range tests {
		s.now = at(tt.hour)
		st, err := s.Status(context.Background())
		require.NoError(t, err)
		assert.Equal(t, tt.open, st.Open, "hour %d", tt.hour)
	}
}

func TestSetManualStatus_Validation(t *testing.T) {
	repo := &fakeSettingsRepo{}
	s := NewService(repo)

	require.NoError(t, s.SetManualStatus(context.Background(), "open"))
	require.NoError(t, s.SetManualStatus(context.Background(), "auto"))
	assert.Error(t, s.SetManualStatus(context.Background(), "maybe"))
	assert.Equal(t, []string{"open", "auto"}, repo.set)
}
