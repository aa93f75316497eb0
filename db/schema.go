// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sqlx.DB) error {
	ddl := sqliteSchema
	if db.DriverName() == DriverPostgres {
		ddl = postgresSchema
	}

	_, err := db.Exec(ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const postgresSchema = `
-- Campaigns
CREATE TABLE IF NOT EXISTS campaign (
    id SERIAL PRIMARY KEY,
    name VARCHAR(100) NOT NULL UNIQUE,
    is_open BOOLEAN NOT NULL DEFAULT FALSE,
    creation_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_campaign_is_open ON campaign(is_open);

-- Participants
CREATE TABLE IF NOT EXISTS participant (
    id SERIAL PRIMARY KEY,
    full_name VARCHAR(150) NOT NULL,
    birth_date DATE NOT NULL,
    cpf VARCHAR(14) NOT NULL UNIQUE,
    address VARCHAR(250) NOT NULL,
    address_complement VARCHAR(100) NOT NULL DEFAULT '',
    neighborhood VARCHAR(100) NOT NULL DEFAULT '',
    responsible_full_name VARCHAR(150) NOT NULL,
    whatsapp_contact VARCHAR(20) NOT NULL,
    how_heard VARCHAR(100) NOT NULL DEFAULT 'Outros',
    profession VARCHAR(100) NOT NULL DEFAULT 'Não Informado',
    household_members INTEGER NOT NULL DEFAULT 1,
    registration_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    is_approved BOOLEAN NOT NULL DEFAULT FALSE,
    campaign_id INTEGER NOT NULL REFERENCES campaign(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_participant_campaign_id ON participant(campaign_id);
`

const sqliteSchema = `
-- Campaigns
CREATE TABLE IF NOT EXISTS campaign (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name VARCHAR(100) NOT NULL UNIQUE,
    is_open BOOLEAN NOT NULL DEFAULT FALSE,
    creation_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_campaign_is_open ON campaign(is_open);

-- Participants
CREATE TABLE IF NOT EXISTS participant (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    full_name VARCHAR(150) NOT NULL,
    birth_date DATE NOT NULL,
    cpf VARCHAR(14) NOT NULL UNIQUE,
    address VARCHAR(250) NOT NULL,
    address_complement VARCHAR(100) NOT NULL DEFAULT '',
    neighborhood VARCHAR(100) NOT NULL DEFAULT '',
    responsible_full_name VARCHAR(150) NOT NULL,
    whatsapp_contact VARCHAR(20) NOT NULL,
    how_heard VARCHAR(100) NOT NULL DEFAULT 'Outros',
    profession VARCHAR(100) NOT NULL DEFAULT 'Não Informado',
    household_members INTEGER NOT NULL DEFAULT 1,
    registration_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    is_approved BOOLEAN NOT NULL DEFAULT FALSE,
    campaign_id INTEGER NOT NULL REFERENCES campaign(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_participant_campaign_id ON participant(campaign_id);
`
