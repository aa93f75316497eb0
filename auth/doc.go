// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin credential checks and session tokens.

# Credentials

The admin password is only ever held as a bcrypt hash:

	hash, err := auth.HashPassword(password)
	err := auth.CheckCredentials(username, password, cfg.AdminUsername, cfg.AdminPasswordHash)

CheckCredentials returns ErrInvalidCredentials on any mismatch.

# Sessions

A browser session is either StatusAnonymous or StatusAuthenticated. Logging in
issues an HS256 JWT carrying the admin username, an expiry, and a random ID:

	sessions := auth.NewSessions(cfg.SecretKey, cfg.SessionTTL)
	token, err := sessions.Issue(username)
	claims, err := sessions.Validate(token)

Expired, tampered, or unsigned tokens fail with ErrInvalidSession.
*/
package auth
