// Package flash carries one-time user messages across redirects.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
)

// CookieName is the cookie holding the pending message
const CookieName = "flash"

// Kind selects how a message is presented
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindDanger  Kind = "danger"
)

// Message is one pending notice
type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

func Success(text string) Message { return Message{Kind: KindSuccess, Text: text} }
func Info(text string) Message    { return Message{Kind: KindInfo, Text: text} }
func Warning(text string) Message { return Message{Kind: KindWarning, Text: text} }
func Danger(text string) Message  { return Message{Kind: KindDanger, Text: text} }

// Write stores msg for the next page render
func Write(w http.ResponseWriter, r *http.Request, msg Message) {
	normalized, ok := normalize(msg)
	if !ok {
		return
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   r != nil && r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadAndClear returns the pending message, if any, and expires the cookie
func ReadAndClear(w http.ResponseWriter, r *http.Request) (Message, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Message{}, false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	return Decode(cookie.Value)
}

// Decode parses a cookie value written by Write
func Decode(raw string) (Message, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Message{}, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return Message{}, false
	}
	var msg Message
	if err := json.Unmarshal(decoded, &msg); err != nil {
		return Message{}, false
	}
	return normalize(msg)
}

func normalize(msg Message) (Message, bool) {
	msg.Text = strings.TrimSpace(msg.Text)
	if msg.Text == "" {
		return Message{}, false
	}
	switch msg.Kind {
	case KindSuccess, KindInfo, KindWarning, KindDanger:
		return msg, true
	default:
		return Message{}, false
	}
}
