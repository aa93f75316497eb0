// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/campaign-signup/auth"
	"github.com/danielhkuo/campaign-signup/cliparse"
	"github.com/danielhkuo/campaign-signup/flash"
	"github.com/danielhkuo/campaign-signup/metrics"
	"github.com/danielhkuo/campaign-signup/middleware"
	"github.com/danielhkuo/campaign-signup/views"
)

const (
	MsgLoginSuccess = "Login bem-sucedido!"
	MsgLoginFailed  = "Usuário ou senha inválidos."
	MsgLoggedOut    = "Você foi desconectado."
)

type AuthHandler struct {
	cfg      cliparse.Config
	views    *views.Renderer
	sessions *auth.Sessions
	metrics  *metrics.Metrics
}

func NewAuthHandler(cfg cliparse.Config, v *views.Renderer, sessions *auth.Sessions, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{cfg: cfg, views: v, sessions: sessions, metrics: m}
}

// LoginForm handles GET /login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, http.StatusOK, views.PageLogin, newPage(w, r, h.sessions))
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	username := r.PostForm.Get("username")

	err := auth.CheckCredentials(username, r.PostForm.Get("password"), h.cfg.AdminUsername, h.cfg.AdminPasswordHash)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Error("failed to check credentials", "error", err)
		}
		slog.Warn("admin login failed", "username", username, "remote", middleware.GetClientIP(r))
		h.metrics.ObserveLogin(false)

		page := newPage(w, r, h.sessions)
		msg := flash.Danger(MsgLoginFailed)
		page.Flash = &msg
		h.views.Render(w, http.StatusUnauthorized, views.PageLogin, page)
		return
	}

	token, err := h.sessions.Issue(username)
	if err != nil {
		slog.Error("failed to issue session", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	slog.Info("admin logged in", "username", username)
	h.metrics.ObserveLogin(true)
	middleware.SetSession(w, r, token, h.sessions.TTL())
	redirectWith(w, r, "/admin", flash.Success(MsgLoginSuccess))
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSession(w, r)
	redirectWith(w, r, "/", flash.Info(MsgLoggedOut))
}
