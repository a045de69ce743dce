package server

import (
	"testing"
	"time"

	"github.com/jrsteele09/callwa-dashboard/api"
	"github.com/jrsteele09/callwa-dashboard/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestNewCallRow(t *testing.T) {
	started := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	row := newCallRow(api.Call{
		Direction:       "inbound",
		FromNumber:      "+91111",
		Status:          "Answered",
		DurationSeconds: utils.Ptr(0),
		StartedAt:       &started,
	})

	require.Equal(t, "inbound", row.Direction)
	require.Equal(t, placeholder, row.To)
	require.Equal(t, "ok", row.StatusClass)
	require.Equal(t, "0s", row.Duration)
	require.Equal(t, started.Local().Format(time.DateTime), row.StartedAt)

	empty := newCallRow(api.Call{})
	require.Equal(t, "unknown", empty.Status)
	require.Equal(t, "unknown", empty.StatusClass)
	require.Equal(t, placeholder, empty.Duration)
	require.Equal(t, placeholder, empty.StartedAt)
}

func TestStatusClass(t *testing.T) {
	cases := map[string]string{
		"completed": "ok",
		"answered":  "ok",
		"FAILED":    "failed",
		"ringing":   "ringing",
		"queued":    "unknown",
		"":          "unknown",
	}
	for status, want := range cases {
		require.Equal(t, want, statusClass(status), status)
	}
}

func TestNewProductRow(t *testing.T) {
	row := newProductRow(api.Product{Name: "Kurta", Price: utils.Ptr(99.0), Tags: utils.Ptr("  ")})
	require.Equal(t, "₹99.00", row.Price)
	require.Equal(t, placeholder, row.Category)
	require.Equal(t, placeholder, row.Tags)
	require.False(t, row.Active)
}

func TestOverviewLabels(t *testing.T) {
	require.Equal(t, "Dealer owner", welcomeName(nil))
	require.Equal(t, placeholder, tenantLabel(nil))

	user := &api.Identity{Email: "owner@gmail.com", TenantID: utils.Ptr(int64(7))}
	require.Equal(t, "owner@gmail.com", welcomeName(user))
	require.Equal(t, "7", tenantLabel(user))
}
