// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package registration validates public registration forms.

	participant, err := registration.Parse(r.PostForm, campaign.ID, time.Now())

Fields are checked in order: birth date (YYYY-MM-DD), presence of the required
fields, then the household member count. Optional fields fall back to the
defaults in package models. The first failure wins:

  - ErrInvalidBirthDate, ErrMissingField: shown as MsgGenericFailure
  - ErrInvalidHousehold: shown as MsgInvalidHousehold

Duplicate CPFs are rejected by the database on insert (MsgAlreadyRegistered).
*/
package registration
