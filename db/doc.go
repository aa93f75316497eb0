// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and manages its schema.

# Drivers

PostgreSQL (lib/pq) is used for deployments and SQLite (modernc.org/sqlite,
pure Go) for local runs and tests:

	conn, err := db.Open(db.DriverPostgres, "postgres://...")
	conn, err := db.Open(db.DriverSQLite, "file:project.db")

SQLite connections enable foreign keys so cascading deletes work the same on
both drivers.

# Tables

	campaign     id, name (UNIQUE), is_open, creation_date
	participant  id, full_name, birth_date, cpf (UNIQUE), address,
	             address_complement, neighborhood, responsible_full_name,
	             whatsapp_contact, how_heard, profession, household_members,
	             registration_date, is_approved,
	             campaign_id → campaign(id) ON DELETE CASCADE

Schema creation is idempotent:

	err := db.CreateSchema(conn)

# Constraint Errors

Uniqueness is enforced by the database. IsUniqueViolation recognizes the
conflict error from either driver (PostgreSQL SQLSTATE 23505, SQLite
SQLITE_CONSTRAINT_UNIQUE) so callers can treat it as a rejection.
*/
package db
