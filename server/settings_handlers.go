package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/callwa-dashboard/api"
	apperrors "github.com/jrsteele09/callwa-dashboard/internal/errors"
	"github.com/jrsteele09/callwa-dashboard/internal/utils"
	"github.com/rs/zerolog/log"
)

const (
	settingsLoadFailed  = "Failed to load automation settings."
	settingsSaveFailed  = "Failed to save settings. Try again."
	settingsSaved       = "Settings saved successfully."
	settingsBadDuration = "Minimum call duration must be a whole number of seconds, zero or more."
)

// AutomationSettingsHandler renders the automation form (GET /settings/automation)
func (s *Server) AutomationSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := AutomationSettingsPageData{basePage: s.basePage(s.session.Snapshot(), "Automation", pageAutomation)}

		settings, err := s.api.GetAutomationSettings(r.Context())
		if err != nil {
			log.Err(err).Msg("Failed to load automation settings")
			data.Error = settingsLoadFailed
		}
		data.Settings = settings

		render(w, s.views.automationSettings, data)
	}
}

// AutomationSettingsSaveHandler sends the submitted form as a partial update
// and renders whatever the backend echoes back (POST /settings/automation)
func (s *Server) AutomationSettingsSaveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := AutomationSettingsPageData{basePage: s.basePage(s.session.Snapshot(), "Automation", pageAutomation)}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		update, err := automationUpdateFromForm(r)
		if err != nil {
			data.Error = settingsBadDuration
			data.Settings = echoForm(r)
			renderStatus(w, http.StatusUnprocessableEntity, s.views.automationSettings, data)
			return
		}

		saved, err := s.api.UpdateAutomationSettings(r.Context(), update)
		if err != nil {
			log.Err(err).Msg("Failed to save automation settings")
			data.Error = settingsSaveFailed
			data.Settings = echoForm(r)
			render(w, s.views.automationSettings, data)
			return
		}

		data.Success = settingsSaved
		data.Settings = saved
		render(w, s.views.automationSettings, data)
	}
}

// automationUpdateFromForm builds the update the form represents. The form
// always carries the enabled flag and the minimum duration.
func automationUpdateFromForm(r *http.Request) (api.AutomationSettingsUpdate, error) {
	enabled := r.FormValue("enabled") != ""

	minDuration, err := strconv.Atoi(strings.TrimSpace(r.FormValue("min_call_duration_seconds")))
	if err != nil {
		return api.AutomationSettingsUpdate{}, apperrors.Wrapf(apperrors.ErrValidation, "min_call_duration_seconds %q", r.FormValue("min_call_duration_seconds"))
	}

	update := api.AutomationSettingsUpdate{
		Enabled:                utils.Ptr(enabled),
		MinCallDurationSeconds: utils.Ptr(minDuration),
	}
	if err := update.Validate(); err != nil {
		return api.AutomationSettingsUpdate{}, err
	}
	return update, nil
}

// echoForm keeps the user's input on the page after a failed save.
func echoForm(r *http.Request) *api.AutomationSettings {
	minDuration, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("min_call_duration_seconds")))
	return &api.AutomationSettings{
		Enabled:                r.FormValue("enabled") != "",
		MinCallDurationSeconds: minDuration,
	}
}
