package server

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*
var templateFiles embed.FS

const layoutTemplate = "layout.html"

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// ParseTemplate parses a page from the embedded filesystem together with the
// shared layout. Pages define a "content" block the layout renders.
func ParseTemplate(name string) (*template.Template, error) {
	return template.New(name).Funcs(templateFuncs).ParseFS(TemplateFilesFS(), layoutTemplate, name)
}

// ParseStandaloneTemplate parses a page that does not use the layout.
func ParseStandaloneTemplate(name string) (*template.Template, error) {
	return template.New(name).Funcs(templateFuncs).ParseFS(TemplateFilesFS(), name)
}

var templateFuncs = template.FuncMap{
	"isActive": func(active, page string) bool { return active == page },
}

type views struct {
	login              *template.Template
	overview           *template.Template
	calls              *template.Template
	products           *template.Template
	automationSettings *template.Template
	whatsAppSettings   *template.Template
}

func parseViews() (*views, error) {
	var (
		v   views
		err error
	)
	if v.login, err = ParseStandaloneTemplate("login.html"); err != nil {
		return nil, err
	}
	pages := []struct {
		dst  **template.Template
		name string
	}{
		{&v.overview, "overview.html"},
		{&v.calls, "calls.html"},
		{&v.products, "products.html"},
		{&v.automationSettings, "automation_settings.html"},
		{&v.whatsAppSettings, "whatsapp_settings.html"},
	}
	for _, p := range pages {
		if *p.dst, err = ParseTemplate(p.name); err != nil {
			return nil, err
		}
	}
	return &v, nil
}

// render writes a parsed page. Layout pages execute through the layout.
func render(w http.ResponseWriter, tmpl *template.Template, data any) {
	renderStatus(w, http.StatusOK, tmpl, data)
}

func renderStatus(w http.ResponseWriter, status int, tmpl *template.Template, data any) {
	name := tmpl.Name()
	if tmpl.Lookup(layoutTemplate) != nil {
		name = layoutTemplate
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Err(err).Str("template", tmpl.Name()).Msg("Failed to render template")
	}
}
