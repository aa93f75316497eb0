// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/campaign-signup/auth"
	"github.com/danielhkuo/campaign-signup/cliparse"
	"github.com/danielhkuo/campaign-signup/handlers"
	"github.com/danielhkuo/campaign-signup/metrics"
	"github.com/danielhkuo/campaign-signup/middleware"
	"github.com/danielhkuo/campaign-signup/store"
	"github.com/danielhkuo/campaign-signup/views"
)

const healthTimeout = 2 * time.Second

func NewRouter(conn *sqlx.DB, cfg cliparse.Config, reg *prometheus.Registry) (*http.ServeMux, error) {
	renderer, err := views.New()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	mux := http.NewServeMux()
	st := store.New(conn)
	m := metrics.New(reg)
	sessions := auth.NewSessions(cfg.SecretKey, cfg.SessionTTL)

	// Initialize handlers
	publicHandler := handlers.NewPublicHandler(st, cfg, renderer, sessions, m)
	authHandler := handlers.NewAuthHandler(cfg, renderer, sessions, m)
	adminHandler := handlers.NewAdminHandler(st, cfg, renderer, sessions, m)

	// handle registers a logged and instrumented route
	handle := func(pattern string, h http.HandlerFunc) {
		_, route, _ := strings.Cut(pattern, " ")
		mux.HandleFunc(pattern, middleware.WithLogging(middleware.Instrument(m, route, h)))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireAdmin(sessions, h)
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := st.Ping(ctx); err != nil {
			slog.Error("health check failed", "error", err)
			middleware.JSONResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		middleware.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// Public pages
	handle("GET /", publicHandler.Home)
	handle("GET /register/{campaign_id}", publicHandler.RegisterForm)
	handle("POST /register/{campaign_id}", publicHandler.Register)
	handle("GET /success", publicHandler.Success)

	// Session
	handle("GET /login", authHandler.LoginForm)
	handle("POST /login", authHandler.Login)
	handle("GET /logout", authHandler.Logout)

	// Admin operations (session required)
	handle("GET /admin", admin(adminHandler.Panel))
	handle("POST /admin", admin(adminHandler.CreateCampaign))
	handle("POST /admin/campaign/{id}/toggle_status", admin(adminHandler.ToggleStatus))
	handle("GET /admin/campaign/{id}", admin(adminHandler.CampaignDetail))
	handle("POST /admin/participant/{id}/approve", admin(adminHandler.Approve))
	handle("POST /admin/campaign/{id}/notify", admin(adminHandler.Notify))

	return mux, nil
}
