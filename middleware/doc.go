// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms). Each request gets a uuid, returned in X-Request-ID and
available through GetRequestID.

# Metrics

Instrument observes request latency under the route pattern rather than
the raw path, so ids do not explode label cardinality:

	middleware.Instrument(m, "/admin/campaign/{id}", handler)

# Admin Guard

RequireAdmin checks the signed session cookie. Anonymous requests get a
warning flash and a 303 to /login; the wrapped handler never runs.

	mux.HandleFunc("GET /admin", middleware.RequireAdmin(sessions, admin.Panel))

SetSession and ClearSession manage the cookie on login and logout.

# Response Helpers

	middleware.Redirect(w, r, "/admin")
	middleware.NotFound(w)
	middleware.JSONResponse(w, http.StatusOK, data)

# Client IP Extraction

Get the client IP behind proxies (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
