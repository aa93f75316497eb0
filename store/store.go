// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/campaign-signup/db"
	"github.com/danielhkuo/campaign-signup/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

const campaignColumns = `id, name, is_open, creation_date`

const participantColumns = `id, full_name, birth_date, cpf, address, address_complement,
	neighborhood, responsible_full_name, whatsapp_contact, how_heard, profession,
	household_members, registration_date, is_approved, campaign_id`

// queryer is satisfied by both *sqlx.DB and *sqlx.Tx
type queryer interface {
	sqlx.QueryerContext
	Rebind(query string) string
}

// Store persists campaigns and participants
type Store struct {
	db *sqlx.DB
}

func New(conn *sqlx.DB) *Store {
	return &Store{db: conn}
}

// Ping checks the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateCampaign inserts a closed campaign. A name already in use returns ErrDuplicate.
func (s *Store) CreateCampaign(ctx context.Context, name string, now time.Time) (models.Campaign, error) {
	campaign := models.Campaign{Name: name, IsOpen: false, CreationDate: now.UTC()}

	err := s.db.QueryRowxContext(ctx, s.db.Rebind(`
		INSERT INTO campaign (name, is_open, creation_date)
		VALUES (?, ?, ?)
		RETURNING id
	`), campaign.Name, campaign.IsOpen, campaign.CreationDate).Scan(&campaign.ID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return models.Campaign{}, ErrDuplicate
		}
		return models.Campaign{}, fmt.Errorf("insert campaign: %w", err)
	}

	return campaign, nil
}

// ListCampaigns returns every campaign, newest first
func (s *Store) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	campaigns := []models.Campaign{}
	err := s.db.SelectContext(ctx, &campaigns, `
		SELECT `+campaignColumns+`
		FROM campaign
		ORDER BY creation_date DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, nil
}

// ListOpenCampaigns returns campaigns accepting registrations, newest first
func (s *Store) ListOpenCampaigns(ctx context.Context) ([]models.Campaign, error) {
	campaigns := []models.Campaign{}
	err := s.db.SelectContext(ctx, &campaigns, s.db.Rebind(`
		SELECT `+campaignColumns+`
		FROM campaign
		WHERE is_open = ?
		ORDER BY creation_date DESC, id DESC
	`), true)
	if err != nil {
		return nil, fmt.Errorf("list open campaigns: %w", err)
	}
	return campaigns, nil
}

// GetCampaign returns ErrNotFound for unknown ids
func (s *Store) GetCampaign(ctx context.Context, id int64) (models.Campaign, error) {
	return getCampaign(ctx, s.db, id)
}

// GetOpenCampaign treats a closed campaign the same as a missing one
func (s *Store) GetOpenCampaign(ctx context.Context, id int64) (models.Campaign, error) {
	campaign, err := s.GetCampaign(ctx, id)
	if err != nil {
		return models.Campaign{}, err
	}
	if !campaign.IsOpen {
		return models.Campaign{}, ErrNotFound
	}
	return campaign, nil
}

// ToggleCampaign flips the open flag and returns the updated campaign
func (s *Store) ToggleCampaign(ctx context.Context, id int64) (models.Campaign, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Campaign{}, fmt.Errorf("begin toggle: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, tx.Rebind(`UPDATE campaign SET is_open = NOT is_open WHERE id = ?`), id)
	if err != nil {
		return models.Campaign{}, fmt.Errorf("toggle campaign: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return models.Campaign{}, fmt.Errorf("toggle campaign: %w", err)
	} else if n == 0 {
		return models.Campaign{}, ErrNotFound
	}

	campaign, err := getCampaign(ctx, tx, id)
	if err != nil {
		return models.Campaign{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Campaign{}, fmt.Errorf("commit toggle: %w", err)
	}
	return campaign, nil
}

// CreateParticipant inserts a participant in its own transaction.
// A CPF already registered in any campaign returns ErrDuplicate and nothing is written.
func (s *Store) CreateParticipant(ctx context.Context, p models.Participant) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin registration: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowxContext(ctx, tx.Rebind(`
		INSERT INTO participant (
			full_name, birth_date, cpf, address, address_complement, neighborhood,
			responsible_full_name, whatsapp_contact, how_heard, profession,
			household_members, registration_date, is_approved, campaign_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`),
		p.FullName, p.BirthDate, p.CPF, p.Address, p.AddressComplement, p.Neighborhood,
		p.ResponsibleFullName, p.WhatsAppContact, p.HowHeard, p.Profession,
		p.HouseholdMembers, p.RegistrationDate.UTC(), p.IsApproved, p.CampaignID,
	).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("insert participant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if db.IsUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("commit participant: %w", err)
	}
	return id, nil
}

// GetParticipant returns ErrNotFound for unknown ids
func (s *Store) GetParticipant(ctx context.Context, id int64) (models.Participant, error) {
	return getParticipant(ctx, s.db, id)
}

// ApproveParticipant marks a participant approved. Approving twice is not an error.
func (s *Store) ApproveParticipant(ctx context.Context, id int64) (models.Participant, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE participant SET is_approved = ? WHERE id = ?`), true, id)
	if err != nil {
		return models.Participant{}, fmt.Errorf("approve participant: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return models.Participant{}, fmt.Errorf("approve participant: %w", err)
	} else if n == 0 {
		return models.Participant{}, ErrNotFound
	}

	return s.GetParticipant(ctx, id)
}

// ListParticipants returns a campaign's participants in registration order.
// With approvedOnly set, unapproved participants are left out.
func (s *Store) ListParticipants(ctx context.Context, campaignID int64, approvedOnly bool) ([]models.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participant WHERE campaign_id = ?`
	args := []any{campaignID}
	if approvedOnly {
		query += ` AND is_approved = ?`
		args = append(args, true)
	}
	query += ` ORDER BY registration_date, id`

	participants := []models.Participant{}
	if err := s.db.SelectContext(ctx, &participants, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return participants, nil
}

// GetCampaignWithParticipants loads the admin detail view for a campaign
func (s *Store) GetCampaignWithParticipants(ctx context.Context, id int64) (models.CampaignWithParticipants, error) {
	campaign, err := s.GetCampaign(ctx, id)
	if err != nil {
		return models.CampaignWithParticipants{}, err
	}

	participants, err := s.ListParticipants(ctx, id, false)
	if err != nil {
		return models.CampaignWithParticipants{}, err
	}

	return models.CampaignWithParticipants{Campaign: campaign, Participants: participants}, nil
}

func getCampaign(ctx context.Context, q queryer, id int64) (models.Campaign, error) {
	var campaign models.Campaign
	err := sqlx.GetContext(ctx, q, &campaign, q.Rebind(`SELECT `+campaignColumns+` FROM campaign WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Campaign{}, ErrNotFound
	}
	if err != nil {
		return models.Campaign{}, fmt.Errorf("get campaign: %w", err)
	}
	return campaign, nil
}

func getParticipant(ctx context.Context, q queryer, id int64) (models.Participant, error) {
	var participant models.Participant
	err := sqlx.GetContext(ctx, q, &participant, q.Rebind(`SELECT `+participantColumns+` FROM participant WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Participant{}, ErrNotFound
	}
	if err != nil {
		return models.Participant{}, fmt.Errorf("get participant: %w", err)
	}
	return participant, nil
}
