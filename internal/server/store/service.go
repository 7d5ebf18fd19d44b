// Package store derives the open/closed status from the settings row.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/bobadragon/storefront/internal/server/repositories/storesettings"
)

// Status is what the client polls: the manual override plus the derived
// open flag.
type Status struct {
	ManualStatus string
	Open         bool
}

type Service struct {
	repo storesettings.Repository
	now  func() time.Time
}

func NewService(repo storesettings.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Status resolves the current state. A manual "open" or "closed" override
// wins; in auto mode the opening hours decide.
func (s *Service) Status(ctx context.Context) (*Status, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading store settings: %w", err)
	}

	st := &Status{ManualStatus: settings.ManualStatus}
	switch settings.ManualStatus {
	case "open":
		st.Open = true
	case "closed":
		st.Open = false
	default:
		hour := s.now().Hour()
		st.Open = hour >= settings.OpenHour && hour < settings.CloseHour
	}
	return st, nil
}

// SetManualStatus updates the override. Valid values are "open", "closed"
// and "auto".
func (s *Service) SetManualStatus(ctx context.Context, status string) error {
	switch status {
	case "open", "closed", "auto":
	default:
		return fmt.Errorf("invalid manual status %q", status)
	}
	return s.repo.SetManualStatus(ctx, status)
}
