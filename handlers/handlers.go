// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/campaign-signup/auth"
	"github.com/danielhkuo/campaign-signup/flash"
	"github.com/danielhkuo/campaign-signup/middleware"
	"github.com/danielhkuo/campaign-signup/views"
)

// pathID parses a numeric path segment. Anything else is treated as missing.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// newPage consumes the pending flash and fills in the session state
func newPage(w http.ResponseWriter, r *http.Request, sessions *auth.Sessions) views.Page {
	var page views.Page
	if msg, ok := flash.ReadAndClear(w, r); ok {
		page.Flash = &msg
	}
	page.Admin = middleware.SessionStatus(sessions, r) == auth.StatusAuthenticated
	return page
}

// redirectWith stores msg for the next page and redirects there
func redirectWith(w http.ResponseWriter, r *http.Request, path string, msg flash.Message) {
	flash.Write(w, r, msg)
	middleware.Redirect(w, r, path)
}
