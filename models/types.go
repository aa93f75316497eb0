package models

import "time"

// Field defaults applied when the registration form leaves them out
const (
	DefaultHowHeard         = "Outros"
	DefaultProfession       = "Não Informado"
	DefaultHouseholdMembers = 1
)

// BirthDateLayout is the format the registration form submits birth dates in
const BirthDateLayout = "2006-01-02"

// Domain types

type Campaign struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	IsOpen       bool      `db:"is_open"`
	CreationDate time.Time `db:"creation_date"`
}

// Status returns the Portuguese label shown to admins
func (c Campaign) Status() string {
	if c.IsOpen {
		return "aberta"
	}
	return "fechada"
}

type Participant struct {
	ID                  int64     `db:"id"`
	FullName            string    `db:"full_name"`
	BirthDate           time.Time `db:"birth_date"`
	CPF                 string    `db:"cpf"`
	Address             string    `db:"address"`
	AddressComplement   string    `db:"address_complement"`
	Neighborhood        string    `db:"neighborhood"`
	ResponsibleFullName string    `db:"responsible_full_name"`
	WhatsAppContact     string    `db:"whatsapp_contact"`
	HowHeard            string    `db:"how_heard"`
	Profession          string    `db:"profession"`
	HouseholdMembers    int       `db:"household_members"`
	RegistrationDate    time.Time `db:"registration_date"`
	IsApproved          bool      `db:"is_approved"`
	CampaignID          int64     `db:"campaign_id"`
}

type CampaignWithParticipants struct {
	Campaign     Campaign
	Participants []Participant
}

// NotificationLink pairs an approved participant with their WhatsApp deep link
type NotificationLink struct {
	Name string
	Link string
}
