package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	apiBaseURLVar = "API_BASE_URL"
	apiTimeoutVar = "API_TIMEOUT"
)

type APIConfig interface {
	GetAPIBaseURL() string
	GetAPITimeout() time.Duration
}

type API struct {
	file FileValues
}

var _ APIConfig = API{}

// GetAPIBaseURL returns the backend base address including the API version
// prefix, without a trailing slash (e.g. "http://127.0.0.1:8000/api/v1").
func (a API) GetAPIBaseURL() string {
	return strings.TrimRight(GetEnv(apiBaseURLVar, orDefault(a.file.APIBaseURL, "http://127.0.0.1:8000/api/v1")), "/")
}

// GetAPITimeout returns the per-request timeout. Zero means no timeout.
func (a API) GetAPITimeout() time.Duration {
	raw := GetEnv(apiTimeoutVar, a.file.APITimeout)
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		log.Warn().Str("value", raw).Msg("Ignoring invalid API timeout")
		return 0
	}
	return d
}
