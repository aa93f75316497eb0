// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify builds personalized WhatsApp links for approved participants.

A message template may contain {nome} (participant name) and
{nome_responsavel} (responsible person, or the participant name when none is
recorded). Each link has the form:

	https://wa.me/<country code><phone digits>?text=<percent-encoded message>

BuildLinks is pure: the same template and participants always give the same
links, in the participants' order.
*/
package notify
