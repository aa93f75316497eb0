// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/campaign-signup/flash"
	"github.com/danielhkuo/campaign-signup/models"
)

// Page names
const (
	PageIndex          = "index"
	PageRegister       = "register"
	PageSuccess        = "success"
	PageLogin          = "login"
	PageAdmin          = "admin"
	PageCampaignDetail = "campaign_detail"
	PageShowLinks      = "show_links"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"ago":  humanize.Time,
	"date": func(t time.Time) string { return t.Local().Format("02/01/2006 15:04") },
	"day":  func(t time.Time) string { return t.Format("02/01/2006") },
}

// Page is the data every template receives; fields a page does not use stay zero
type Page struct {
	Flash        *flash.Message
	Admin        bool
	Campaign     models.Campaign
	Campaigns    []models.Campaign
	Participants []models.Participant
	Links        []models.NotificationLink
}

// Renderer holds one parsed template set per page
type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	layout, err := template.New("layout").Funcs(funcs).ParseFS(files, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	r := &Renderer{pages: map[string]*template.Template{}}
	for _, name := range []string{
		PageIndex, PageRegister, PageSuccess, PageLogin,
		PageAdmin, PageCampaignDetail, PageShowLinks,
	} {
		base, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout: %w", err)
		}
		page, err := base.ParseFS(files, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = page
	}

	return r, nil
}

// Render writes the page with the given status.
// Output is buffered so a template error never leaves a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	tmpl, ok := r.pages[name]
	if !ok {
		slog.Error("unknown page", "page", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		slog.Error("failed to render page", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write page", "page", name, "error", err)
	}
}
