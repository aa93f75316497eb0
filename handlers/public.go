// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/campaign-signup/auth"
	"github.com/danielhkuo/campaign-signup/cliparse"
	"github.com/danielhkuo/campaign-signup/flash"
	"github.com/danielhkuo/campaign-signup/metrics"
	"github.com/danielhkuo/campaign-signup/middleware"
	"github.com/danielhkuo/campaign-signup/registration"
	"github.com/danielhkuo/campaign-signup/store"
	"github.com/danielhkuo/campaign-signup/views"
)

type PublicHandler struct {
	store    *store.Store
	cfg      cliparse.Config
	views    *views.Renderer
	sessions *auth.Sessions
	metrics  *metrics.Metrics
}

func NewPublicHandler(st *store.Store, cfg cliparse.Config, v *views.Renderer, sessions *auth.Sessions, m *metrics.Metrics) *PublicHandler {
	return &PublicHandler{store: st, cfg: cfg, views: v, sessions: sessions, metrics: m}
}

// Home handles GET /
func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	// The root pattern matches every unrouted path
	if r.URL.Path != "/" {
		middleware.NotFound(w)
		return
	}

	campaigns, err := h.store.ListOpenCampaigns(r.Context())
	if err != nil {
		slog.Error("failed to list open campaigns", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	page := newPage(w, r, h.sessions)
	page.Campaigns = campaigns
	h.views.Render(w, http.StatusOK, views.PageIndex, page)
}

// RegisterForm handles GET /register/{campaign_id}
func (h *PublicHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "campaign_id")
	if !ok {
		middleware.NotFound(w)
		return
	}

	campaign, err := h.store.GetOpenCampaign(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		middleware.NotFound(w)
		return
	}
	if err != nil {
		slog.Error("failed to load campaign", "campaign_id", id, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	page := newPage(w, r, h.sessions)
	page.Campaign = campaign
	h.views.Render(w, http.StatusOK, views.PageRegister, page)
}

// Register handles POST /register/{campaign_id}
func (h *PublicHandler) Register(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "campaign_id")
	if !ok {
		middleware.NotFound(w)
		return
	}

	// Closed campaigns are rejected before the form is looked at
	if _, err := h.store.GetOpenCampaign(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.NotFound(w)
			return
		}
		slog.Error("failed to load campaign", "campaign_id", id, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	formPath := "/register/" + strconv.FormatInt(id, 10)

	if err := r.ParseForm(); err != nil {
		h.metrics.ObserveRegistration(metrics.OutcomeInvalid)
		redirectWith(w, r, formPath, flash.Danger(registration.MsgGenericFailure))
		return
	}

	participant, err := registration.Parse(r.PostForm, id, time.Now())
	switch {
	case errors.Is(err, registration.ErrInvalidHousehold):
		h.metrics.ObserveRegistration(metrics.OutcomeInvalid)
		redirectWith(w, r, formPath, flash.Danger(registration.MsgInvalidHousehold))
		return
	case err != nil:
		slog.Warn("registration rejected", "campaign_id", id, "error", err)
		h.metrics.ObserveRegistration(metrics.OutcomeInvalid)
		redirectWith(w, r, formPath, flash.Danger(registration.MsgGenericFailure))
		return
	}

	participantID, err := h.store.CreateParticipant(r.Context(), participant)
	switch {
	case errors.Is(err, store.ErrDuplicate):
		h.metrics.ObserveRegistration(metrics.OutcomeDuplicate)
		redirectWith(w, r, formPath, flash.Danger(registration.MsgAlreadyRegistered))
		return
	case err != nil:
		slog.Error("failed to register participant", "campaign_id", id, "error", err)
		h.metrics.ObserveRegistration(metrics.OutcomeError)
		redirectWith(w, r, formPath, flash.Danger(registration.MsgGenericFailure))
		return
	}

	slog.Info("participant registered", "participant_id", participantID, "campaign_id", id)
	h.metrics.ObserveRegistration(metrics.OutcomeSuccess)
	redirectWith(w, r, "/success", flash.Success(registration.MsgSuccess))
}

// Success handles GET /success
func (h *PublicHandler) Success(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, http.StatusOK, views.PageSuccess, newPage(w, r, h.sessions))
}
