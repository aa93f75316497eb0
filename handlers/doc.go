// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers for the campaign signup site.

# Handler Types

Each handler is a struct holding the store, config and rendering dependencies:

  - PublicHandler: open campaign list and participant registration
  - AuthHandler: admin login and logout
  - AdminHandler: campaign management, approval and WhatsApp links

Handlers are created via constructor functions:

	public := handlers.NewPublicHandler(st, cfg, renderer, sessions, m)

# Registration Flow

	GET  /register/{campaign_id} → RegisterForm
	POST /register/{campaign_id} → Register

The campaign must exist and be open, otherwise the response is 404.
Validation failures and duplicate CPFs redirect back to the form with a
danger flash. A successful registration redirects to /success.

# Admin Operations

	GET  /admin                            → Panel
	POST /admin                            → CreateCampaign
	POST /admin/campaign/{id}/toggle_status → ToggleStatus
	GET  /admin/campaign/{id}              → CampaignDetail
	POST /admin/participant/{id}/approve   → Approve
	POST /admin/campaign/{id}/notify       → Notify

AdminHandler does not check the session itself; the router wraps every
method with middleware.RequireAdmin.

Every mutation answers with a 303 redirect and a flash message, except
Notify which renders the generated links directly.
*/
package handlers
