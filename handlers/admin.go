// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/campaign-signup/auth"
	"github.com/danielhkuo/campaign-signup/cliparse"
	"github.com/danielhkuo/campaign-signup/flash"
	"github.com/danielhkuo/campaign-signup/metrics"
	"github.com/danielhkuo/campaign-signup/middleware"
	"github.com/danielhkuo/campaign-signup/notify"
	"github.com/danielhkuo/campaign-signup/store"
	"github.com/danielhkuo/campaign-signup/views"
)

const (
	MsgCampaignCreated = "Campanha '%s' criada com sucesso!"
	MsgCampaignExists  = "Uma campanha com o nome '%s' já existe."
	MsgCampaignToggled = "A campanha '%s' foi %s."
	MsgApproved        = "Participante '%s' foi aprovado."
	MsgEmptyTemplate   = "O modelo da mensagem não pode estar vazio."
	MsgNoneToNotify    = "Não há participantes aprovados para notificar."
)

// AdminHandler serves the routes behind middleware.RequireAdmin
type AdminHandler struct {
	store    *store.Store
	cfg      cliparse.Config
	views    *views.Renderer
	sessions *auth.Sessions
	metrics  *metrics.Metrics
}

func NewAdminHandler(st *store.Store, cfg cliparse.Config, v *views.Renderer, sessions *auth.Sessions, m *metrics.Metrics) *AdminHandler {
	return &AdminHandler{store: st, cfg: cfg, views: v, sessions: sessions, metrics: m}
}

func detailPath(campaignID int64) string {
	return "/admin/campaign/" + strconv.FormatInt(campaignID, 10)
}

// Panel handles GET /admin
func (h *AdminHandler) Panel(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.store.ListCampaigns(r.Context())
	if err != nil {
		slog.Error("failed to list campaigns", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	page := newPage(w, r, h.sessions)
	page.Campaigns = campaigns
	h.views.Render(w, http.StatusOK, views.PageAdmin, page)
}

// CreateCampaign handles POST /admin
func (h *AdminHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.PostForm.Get("campaign_name"))
	if name == "" {
		middleware.Redirect(w, r, "/admin")
		return
	}

	campaign, err := h.store.CreateCampaign(r.Context(), name, time.Now())
	switch {
	case errors.Is(err, store.ErrDuplicate):
		redirectWith(w, r, "/admin", flash.Warning(fmt.Sprintf(MsgCampaignExists, name)))
		return
	case err != nil:
		slog.Error("failed to create campaign", "name", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	slog.Info("campaign created",
		"campaign_id", campaign.ID,
		"name", campaign.Name,
		"admin", middleware.GetAdmin(r.Context()),
	)
	h.metrics.CampaignsCreated.Inc()
	redirectWith(w, r, "/admin", flash.Success(fmt.Sprintf(MsgCampaignCreated, name)))
}

// ToggleStatus handles POST /admin/campaign/{id}/toggle_status
func (h *AdminHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		middleware.NotFound(w)
		return
	}

	campaign, err := h.store.ToggleCampaign(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.NotFound(w)
		return
	}
	if err != nil {
		slog.Error("failed to toggle campaign", "campaign_id", id, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	slog.Info("campaign toggled", "campaign_id", id, "is_open", campaign.IsOpen)
	redirectWith(w, r, "/admin", flash.Info(fmt.Sprintf(MsgCampaignToggled, campaign.Name, campaign.Status())))
}

// CampaignDetail handles GET /admin/campaign/{id}
func (h *AdminHandler) CampaignDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		middleware.NotFound(w)
		return
	}

	detail, err := h.store.GetCampaignWithParticipants(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.NotFound(w)
		return
	}
	if err != nil {
		slog.Error("failed to load campaign detail", "campaign_id", id, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	page := newPage(w, r, h.sessions)
	page.Campaign = detail.Campaign
	page.Participants = detail.Participants
	h.views.Render(w, http.StatusOK, views.PageCampaignDetail, page)
}

// Approve handles POST /admin/participant/{id}/approve
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		middleware.NotFound(w)
		return
	}

	participant, err := h.store.ApproveParticipant(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.NotFound(w)
		return
	}
	if err != nil {
		slog.Error("failed to approve participant", "participant_id", id, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	slog.Info("participant approved", "participant_id", id, "campaign_id", participant.CampaignID)
	h.metrics.Approvals.Inc()
	redirectWith(w, r, detailPath(participant.CampaignID), flash.Success(fmt.Sprintf(MsgApproved, participant.FullName)))
}

// Notify handles POST /admin/campaign/{id}/notify
func (h *AdminHandler) Notify(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		middleware.NotFound(w)
		return
	}

	campaign, err := h.store.GetCampaign(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.NotFound(w)
		return
	}
	if err != nil {
		slog.Error("failed to load campaign", "campaign_id", id, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	template := r.PostForm.Get("message")
	if template == "" {
		redirectWith(w, r, detailPath(id), flash.Warning(MsgEmptyTemplate))
		return
	}

	approved, err := h.store.ListParticipants(r.Context(), id, true)
	if err != nil {
		slog.Error("failed to list approved participants", "campaign_id", id, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	links, err := notify.BuildLinks(h.cfg.CountryCode, template, approved)
	switch {
	case errors.Is(err, notify.ErrNoApproved):
		redirectWith(w, r, detailPath(id), flash.Info(MsgNoneToNotify))
		return
	case errors.Is(err, notify.ErrEmptyTemplate):
		redirectWith(w, r, detailPath(id), flash.Warning(MsgEmptyTemplate))
		return
	case err != nil:
		slog.Error("failed to build notification links", "campaign_id", id, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	slog.Info("notification links generated", "campaign_id", id, "count", len(links))
	h.metrics.NotificationLinks.Add(float64(len(links)))

	page := newPage(w, r, h.sessions)
	page.Campaign = campaign
	page.Links = links
	h.views.Render(w, http.StatusOK, views.PageShowLinks, page)
}
