// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the campaign signup site.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux, err := router.NewRouter(db, cfg, prometheus.NewRegistry())

It fails only when the embedded templates do not parse.

# Endpoints

Operational:

	GET /health  - JSON liveness, pings the database
	GET /metrics - Prometheus exposition for the given registry

Public:

	GET  /                        - Open campaigns
	GET  /register/{campaign_id}  - Registration form
	POST /register/{campaign_id}  - Submit registration
	GET  /success                 - Confirmation page
	GET  /login, POST /login      - Admin login
	GET  /logout                  - Clear the admin session

Admin (session required, anonymous requests go to /login):

	GET  /admin                             - Campaign list
	POST /admin                             - Create campaign
	POST /admin/campaign/{id}/toggle_status - Open or close
	GET  /admin/campaign/{id}               - Participants
	POST /admin/participant/{id}/approve    - Approve participant
	POST /admin/campaign/{id}/notify        - WhatsApp links

Every routed handler is wrapped with request logging and latency
metrics. /health and /metrics are not.
*/
package router
