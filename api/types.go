package api

import "time"

// TokenResponse is the body returned by the credential exchange endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Identity is the authenticated dealer-owner returned by /users/me.
type Identity struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name,omitempty"`
	TenantID *int64  `json:"tenant_id,omitempty"`
	IsActive bool    `json:"is_active"`
	Role     *string `json:"role,omitempty"`
}

// Call is an inbound or outbound call recorded by the telephony webhook.
type Call struct {
	ID                      int64      `json:"id"`
	TenantID                int64      `json:"tenant_id"`
	Direction               string     `json:"direction"`
	FromNumber              string     `json:"from_number"`
	ToNumber                string     `json:"to_number"`
	CustomerNumber          string     `json:"customer_number"`
	Status                  string     `json:"status"`
	Provider                *string    `json:"provider,omitempty"`
	ProviderCallID          *string    `json:"provider_call_id,omitempty"`
	DurationSeconds         *int       `json:"duration_seconds,omitempty"`
	StartedAt               *time.Time `json:"started_at,omitempty"`
	EndedAt                 *time.Time `json:"ended_at,omitempty"`
	ShouldTriggerAutomation bool       `json:"should_trigger_automation"`
	CreatedAt               *time.Time `json:"created_at,omitempty"`
	UpdatedAt               *time.Time `json:"updated_at,omitempty"`
}

// Product is a catalog entry that can be sent to a caller over WhatsApp.
type Product struct {
	ID          int64    `json:"id"`
	TenantID    int64    `json:"tenant_id"`
	Name        string   `json:"name"`
	Category    *string  `json:"category,omitempty"`
	Gender      *string  `json:"gender,omitempty"`
	Tags        *string  `json:"tags,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	IsActive    bool     `json:"is_active"`
}

// Send modes accepted by the backend for automation messages.
const (
	SendModeThankYouOnly            = "thank_you_only"
	SendModeThankYouFullCatalog     = "thank_you_and_full_catalog"
	SendModeThankYouFilteredCatalog = "thank_you_and_filtered_catalog"
)

// AutomationSettings controls when follow-up WhatsApp messages are sent.
type AutomationSettings struct {
	Enabled                bool    `json:"enabled"`
	MinCallDurationSeconds int     `json:"min_call_duration_seconds"`
	DelaySeconds           *int    `json:"delay_seconds,omitempty"`
	SendMode               *string `json:"send_mode,omitempty"`
	IncludeCategories      *string `json:"include_categories,omitempty"`
	ExcludeCategories      *string `json:"exclude_categories,omitempty"`
}
