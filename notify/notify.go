// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"errors"
	"net/url"
	"strings"

	"github.com/danielhkuo/campaign-signup/models"
)

var (
	ErrEmptyTemplate = errors.New("message template is empty")
	ErrNoApproved    = errors.New("no approved participants")
)

// Template placeholders
const (
	PlaceholderName        = "{nome}"
	PlaceholderResponsible = "{nome_responsavel}"
)

// WhatsAppBaseURL is the click-to-chat endpoint
const WhatsAppBaseURL = "https://wa.me/"

// Personalize fills in the placeholders for one participant.
// Replacement is literal; anything that is not an exact placeholder is kept as typed.
func Personalize(template string, p models.Participant) string {
	responsible := p.ResponsibleFullName
	if strings.TrimSpace(responsible) == "" {
		responsible = p.FullName
	}
	msg := strings.ReplaceAll(template, PlaceholderName, p.FullName)
	return strings.ReplaceAll(msg, PlaceholderResponsible, responsible)
}

// Digits keeps only the decimal digits of a phone number
func Digits(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EncodeText percent-encodes a message for the text query parameter.
// Spaces become %20 rather than '+', which WhatsApp shows literally.
func EncodeText(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// Link builds the WhatsApp deep link for one participant
func Link(countryCode, template string, p models.Participant) string {
	return WhatsAppBaseURL + countryCode + Digits(p.WhatsAppContact) + "?text=" + EncodeText(Personalize(template, p))
}

// BuildLinks returns one link per approved participant, keeping their order.
// Unapproved participants are skipped.
func BuildLinks(countryCode, template string, participants []models.Participant) ([]models.NotificationLink, error) {
	if template == "" {
		return nil, ErrEmptyTemplate
	}

	links := []models.NotificationLink{}
	for _, p := range participants {
		if !p.IsApproved {
			continue
		}
		links = append(links, models.NotificationLink{
			Name: p.FullName,
			Link: Link(countryCode, template, p),
		})
	}

	if len(links) == 0 {
		return nil, ErrNoApproved
	}
	return links, nil
}
