package web

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
)

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot outcome message carried to the next rendered view
// through a short-lived cookie. Reading it clears it.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

type FlashCodec struct {
	CookieName string
	Secure     bool
}

func NewFlashCodec(secure bool) *FlashCodec {
	return &FlashCodec{CookieName: "backoffice_flash", Secure: secure}
}

func (c *FlashCodec) Encode(f Flash) (string, error) {
	raw, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("failed to encode flash: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func (c *FlashCodec) Decode(value string) (*Flash, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("failed to decode flash: %w", err)
	}
	var f Flash
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to decode flash: %w", err)
	}
	return &f, nil
}

// Set attaches the flash to the response for the next request.
func (c *FlashCodec) Set(w http.ResponseWriter, f Flash) {
	value, err := c.Encode(f)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop reads the pending flash, if any, and clears the cookie either way so
// a stale or invalid value is never redelivered.
func (c *FlashCodec) Pop(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(c.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     c.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	f, err := c.Decode(cookie.Value)
	if err != nil {
		return nil
	}
	return f
}
