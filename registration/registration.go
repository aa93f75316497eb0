// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registration

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/campaign-signup/models"
)

var (
	ErrInvalidBirthDate = errors.New("invalid birth date")
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidHousehold = errors.New("invalid household member count")
)

// User-facing messages, in the order the form is checked
const (
	MsgSuccess           = "Inscrição realizada com sucesso! Entraremos em contato."
	MsgGenericFailure    = "Ocorreu um erro ao processar sua inscrição. Verifique os dados e tente novamente."
	MsgAlreadyRegistered = "Este CPF já foi cadastrado em uma de nossas campanhas."
	MsgInvalidHousehold  = "Número de pessoas na casa inválido. Por favor, insira um número inteiro."
)

var requiredFields = []string{
	"full_name",
	"cpf",
	"address",
	"responsible_full_name",
	"whatsapp_contact",
}

// Parse turns a submitted registration form into a participant of campaignID.
// Checks run in a fixed order: birth date, required fields, household count.
// CPF uniqueness is left to the database constraint.
func Parse(form url.Values, campaignID int64, now time.Time) (models.Participant, error) {
	birthDate, err := time.Parse(models.BirthDateLayout, strings.TrimSpace(form.Get("birth_date")))
	if err != nil {
		return models.Participant{}, fmt.Errorf("%w: %v", ErrInvalidBirthDate, err)
	}

	for _, field := range requiredFields {
		if _, ok := form[field]; !ok {
			return models.Participant{}, fmt.Errorf("%w: %s", ErrMissingField, field)
		}
	}

	household, err := parseHousehold(form)
	if err != nil {
		return models.Participant{}, err
	}

	return models.Participant{
		FullName:            strings.TrimSpace(form.Get("full_name")),
		BirthDate:           birthDate,
		CPF:                 strings.TrimSpace(form.Get("cpf")),
		Address:             strings.TrimSpace(form.Get("address")),
		AddressComplement:   valueOr(form, "address_complement", ""),
		Neighborhood:        valueOr(form, "neighborhood", ""),
		ResponsibleFullName: strings.TrimSpace(form.Get("responsible_full_name")),
		WhatsAppContact:     strings.TrimSpace(form.Get("whatsapp_contact")),
		HowHeard:            valueOr(form, "how_heard", models.DefaultHowHeard),
		Profession:          valueOr(form, "profession", models.DefaultProfession),
		HouseholdMembers:    household,
		RegistrationDate:    now.UTC(),
		IsApproved:          false,
		CampaignID:          campaignID,
	}, nil
}

func parseHousehold(form url.Values) (int, error) {
	if _, ok := form["household_members"]; !ok {
		return models.DefaultHouseholdMembers, nil
	}

	raw := strings.TrimSpace(form.Get("household_members"))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHousehold, raw)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidHousehold, n)
	}
	return n, nil
}

func valueOr(form url.Values, field, fallback string) string {
	v := strings.TrimSpace(form.Get(field))
	if v == "" {
		return fallback
	}
	return v
}
