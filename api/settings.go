package api

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/jrsteele09/callwa-dashboard/internal/errors"
	"github.com/rs/zerolog/log"
)

const RouteAutomationSettings = "/settings/automation"

// AutomationSettingsUpdate is a partial update. Only non-nil fields are sent.
type AutomationSettingsUpdate struct {
	Enabled                *bool   `json:"enabled,omitempty"`
	MinCallDurationSeconds *int    `json:"min_call_duration_seconds,omitempty"`
	DelaySeconds           *int    `json:"delay_seconds,omitempty"`
	SendMode               *string `json:"send_mode,omitempty"`
	IncludeCategories      *string `json:"include_categories,omitempty"`
	ExcludeCategories      *string `json:"exclude_categories,omitempty"`
}

var validSendModes = map[string]struct{}{
	SendModeThankYouOnly:            {},
	SendModeThankYouFullCatalog:     {},
	SendModeThankYouFilteredCatalog: {},
}

// Validate checks the update before it is transmitted.
func (u AutomationSettingsUpdate) Validate() error {
	if u.IsEmpty() {
		return fmt.Errorf("%w: no settings to update", apperrors.ErrValidation)
	}
	if u.MinCallDurationSeconds != nil && *u.MinCallDurationSeconds < 0 {
		return fmt.Errorf("%w: min_call_duration_seconds must be >= 0", apperrors.ErrValidation)
	}
	if u.DelaySeconds != nil && *u.DelaySeconds < 0 {
		return fmt.Errorf("%w: delay_seconds must be >= 0", apperrors.ErrValidation)
	}
	if u.SendMode != nil {
		if _, ok := validSendModes[*u.SendMode]; !ok {
			modes := []string{SendModeThankYouOnly, SendModeThankYouFullCatalog, SendModeThankYouFilteredCatalog}
			return fmt.Errorf("%w: send_mode must be one of %s", apperrors.ErrValidation, strings.Join(modes, ", "))
		}
	}
	return nil
}

// IsEmpty reports whether no field is set.
func (u AutomationSettingsUpdate) IsEmpty() bool {
	return u.Enabled == nil &&
		u.MinCallDurationSeconds == nil &&
		u.DelaySeconds == nil &&
		u.SendMode == nil &&
		u.IncludeCategories == nil &&
		u.ExcludeCategories == nil
}

// GetAutomationSettings returns the tenant's automation settings.
func (c *Client) GetAutomationSettings(ctx context.Context) (*AutomationSettings, error) {
	var settings AutomationSettings
	if err := c.get(ctx, RouteAutomationSettings, &settings); err != nil {
		log.Err(err).Msg("Error fetching automation settings")
		return nil, err
	}
	return &settings, nil
}

// UpdateAutomationSettings sends the set fields of update and returns the
// full object echoed by the backend.
func (c *Client) UpdateAutomationSettings(ctx context.Context, update AutomationSettingsUpdate) (*AutomationSettings, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	var settings AutomationSettings
	if err := c.put(ctx, RouteAutomationSettings, update, &settings); err != nil {
		log.Err(err).Msg("Error updating automation settings")
		return nil, err
	}
	return &settings, nil
}
