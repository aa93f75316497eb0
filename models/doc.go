// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain types shared by the store, handlers, and views.

# Domain Types

  - Campaign: a named registration drive with an open/closed gate
  - Participant: a registrant attached to exactly one campaign
  - CampaignWithParticipants: campaign detail for the admin view
  - NotificationLink: participant name and generated WhatsApp link

Struct fields carry `db` tags so sqlx can scan rows directly.

# Defaults

Optional registration fields fall back to:

	DefaultHowHeard         = "Outros"
	DefaultProfession       = "Não Informado"
	DefaultHouseholdMembers = 1

Birth dates are submitted as BirthDateLayout ("2006-01-02").
*/
package models
