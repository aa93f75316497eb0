// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the campaign signup server.

Administrators create campaigns and open them for registration. The
public registers participants in open campaigns, admins approve them and
generate personalized WhatsApp links to reach the approved ones.

# Starting the Server

The server reads a .env file, environment variables and CLI flags:

	SECRET_KEY=... ADMIN_PASSWORD=... go run .

Or with flags:

	go run . -p 3318 -d "postgres://..." -secret ...

Without DATABASE_URL the server uses a local SQLite file, project.db.

Create the schema and exit:

	go run . -init-db

# Configuration

Required settings:

  - SECRET_KEY (-secret): Session signing key
  - ADMIN_PASSWORD_HASH or ADMIN_PASSWORD: Admin credential

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_URL (-d): postgres:// URL or SQLite path (default: file:project.db)
  - ADMIN_USERNAME (-admin-user): Admin login (default: admin)
  - SESSION_TTL: Session lifetime (default: 12h)
  - WHATSAPP_COUNTRY_CODE: Prefix for wa.me links (default: 55)

# Architecture

  - handlers: HTTP request handlers (public, auth, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Logging, admin guard, response helpers
  - registration: Form parsing and validation
  - notify: WhatsApp link generation
  - store: Campaign and participant persistence
  - db: Connection and schema creation
  - auth: Password check and session tokens
  - flash: One-time messages across redirects
  - views: Embedded HTML templates
  - metrics: Prometheus collectors
  - cliparse: Configuration parsing

SIGINT and SIGTERM trigger a graceful shutdown.
*/
package main
