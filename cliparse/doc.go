// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Sources are applied in order, later ones winning:

 1. .env in the working directory, when present
 2. Environment variables
 3. CLI flags

# CLI Flags

	-p           Server port
	-d           Database URL
	-secret      Session signing key
	-admin-user  Admin username
	-init-db     Create the schema and exit

# Environment Variables

	PORT, DATABASE_URL, SECRET_KEY, ADMIN_USERNAME,
	ADMIN_PASSWORD_HASH, ADMIN_PASSWORD, SESSION_TTL,
	WHATSAPP_COUNTRY_CODE

# Validation

ParseFlags returns an error if required values are missing:

  - SECRET_KEY must be provided
  - ADMIN_PASSWORD_HASH or ADMIN_PASSWORD must be provided
  - SESSION_TTL must be positive

A plaintext ADMIN_PASSWORD is hashed with bcrypt and then dropped from
the Config. With -init-db none of the secrets are required.

DatabaseType is derived from the URL scheme, see NormalizeDatabaseURL.
*/
package cliparse
