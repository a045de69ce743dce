package server

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/callwa-dashboard/api"
	"github.com/jrsteele09/callwa-dashboard/internal/utils"
	"github.com/jrsteele09/callwa-dashboard/session"
)

const placeholder = "—"

// basePage carries what the layout needs on every authenticated page.
type basePage struct {
	AppName string
	Title   string
	Active  string
	User    *api.Identity
}

func (s *Server) basePage(snapshot session.Session, title, active string) basePage {
	return basePage{
		AppName: s.appName,
		Title:   title,
		Active:  active,
		User:    snapshot.User,
	}
}

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName string
	Error   string
	Email   string // Preserve email on error
}

type OverviewPageData struct {
	basePage
	WelcomeName string
	TenantID    string
}

type CallsPageData struct {
	basePage
	Calls []CallRow
	Error string
}

type ProductsPageData struct {
	basePage
	Products []ProductRow
	Error    string
}

type AutomationSettingsPageData struct {
	basePage
	Settings *api.AutomationSettings
	Error    string
	Success  string
}

// CallRow is a call preformatted for the calls table.
type CallRow struct {
	Direction   string
	From        string
	To          string
	Status      string
	StatusClass string
	Duration    string
	StartedAt   string
	Automation  bool
}

// ProductRow is a product preformatted for the catalog table.
type ProductRow struct {
	Name        string
	Description string
	Category    string
	Tags        string
	Price       string
	Active      bool
}

func newCallRow(c api.Call) CallRow {
	row := CallRow{
		Direction:   orPlaceholder(c.Direction),
		From:        orPlaceholder(c.FromNumber),
		To:          orPlaceholder(c.ToNumber),
		Status:      c.Status,
		StatusClass: statusClass(c.Status),
		Duration:    placeholder,
		StartedAt:   placeholder,
		Automation:  c.ShouldTriggerAutomation,
	}
	if c.Status == "" {
		row.Status = "unknown"
	}
	if c.DurationSeconds != nil {
		row.Duration = strconv.Itoa(*c.DurationSeconds) + "s"
	}
	switch {
	case c.StartedAt != nil:
		row.StartedAt = c.StartedAt.Local().Format(time.DateTime)
	case c.CreatedAt != nil:
		row.StartedAt = c.CreatedAt.Local().Format(time.DateTime)
	}
	return row
}

func newProductRow(p api.Product) ProductRow {
	row := ProductRow{
		Name:        p.Name,
		Description: utils.Value(p.Description),
		Category:    orPlaceholder(utils.Value(p.Category)),
		Tags:        orPlaceholder(utils.Value(p.Tags)),
		Price:       placeholder,
		Active:      p.IsActive,
	}
	if p.Price != nil {
		row.Price = fmt.Sprintf("₹%.2f", *p.Price)
	}
	return row
}

func statusClass(status string) string {
	switch strings.ToLower(status) {
	case "completed", "answered":
		return "ok"
	case "failed", "busy", "no-answer":
		return "failed"
	case "ringing", "initiated", "in-progress":
		return "ringing"
	}
	return "unknown"
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

func welcomeName(user *api.Identity) string {
	if user == nil || user.Email == "" {
		return "Dealer owner"
	}
	return user.Email
}

func tenantLabel(user *api.Identity) string {
	if user == nil || user.TenantID == nil {
		return placeholder
	}
	return strconv.FormatInt(*user.TenantID, 10)
}
