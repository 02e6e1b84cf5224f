// Package prefs persists the client's session and display preferences:
// auth token, cached user profile, theme, and preferred currency.
//
// Reads are defensive: a corrupt stored profile is discarded and purged
// rather than surfaced, so one bad write can never wedge the client.
package prefs

import (
	"encoding/json"
	"errors"

	"fintrack/internal/core"
	"fintrack/internal/kv"
	"fintrack/internal/log"
)

// Storage keys. These match the browser-profile keys the backend's web
// client uses, so the two can share naming in documentation and support.
const (
	KeyToken             = "token"
	KeyUserData          = "userData"
	KeyTheme             = "theme"
	KeyPreferredCurrency = "preferredCurrency"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	DefaultTheme = ThemeLight
)

var ErrUnknownTheme = errors.New("unknown theme")

// sentinel sometimes written by buggy clients; treated as absent on read.
const literalUndefined = "undefined"

type Prefs struct {
	store  kv.Store
	logger *log.Logger
}

func New(store kv.Store, logger *log.Logger) *Prefs {
	return &Prefs{
		store:  store,
		logger: logger.WithComponent(log.ComponentPrefs),
	}
}

// SaveToken stores the session token as-is. No client-side validation is
// performed; the backend owns token semantics.
func (p *Prefs) SaveToken(token string) {
	if err := p.store.Set(KeyToken, token); err != nil {
		p.logger.Error("failed to save token", log.FieldError, err)
	}
}

// Token returns the stored session token, or "" when absent.
func (p *Prefs) Token() string {
	v, ok, err := p.store.Get(KeyToken)
	if err != nil {
		p.logger.Error("failed to read token", log.FieldError, err)
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

// RemoveToken deletes the session token.
func (p *Prefs) RemoveToken() {
	if err := p.store.Remove(KeyToken); err != nil {
		p.logger.Error("failed to remove token", log.FieldError, err)
	}
}

// IsAuthenticated reports whether a token is present. Validity and expiry
// are not checked client-side; a stale token simply fails at the backend.
func (p *Prefs) IsAuthenticated() bool {
	return p.Token() != ""
}

// SaveUser caches the user profile. A nil profile is logged and ignored
// rather than rejected with an error.
func (p *Prefs) SaveUser(profile *core.UserProfile) {
	if profile == nil {
		p.logger.Warn("refusing to save nil user profile")
		return
	}
	data, err := json.Marshal(profile)
	if err != nil {
		p.logger.Error("failed to encode user profile", log.FieldError, err)
		return
	}
	if err := p.store.Set(KeyUserData, string(data)); err != nil {
		p.logger.Error("failed to save user profile", log.FieldError, err)
	}
}

// User returns the cached profile, or nil when absent or unreadable.
// A value that fails to decode is purged so the corruption does not recur.
func (p *Prefs) User() *core.UserProfile {
	v, ok, err := p.store.Get(KeyUserData)
	if err != nil {
		p.logger.Error("failed to read user profile", log.FieldError, err)
		return nil
	}
	if !ok || v == "" || v == literalUndefined {
		return nil
	}
	var profile core.UserProfile
	if err := json.Unmarshal([]byte(v), &profile); err != nil {
		p.logger.Warn("discarding corrupt user profile",
			log.FieldError, err, log.FieldKey, KeyUserData)
		if rmErr := p.store.Remove(KeyUserData); rmErr != nil {
			p.logger.Error("failed to purge corrupt user profile", log.FieldError, rmErr)
		}
		return nil
	}
	return &profile
}

// RemoveUser deletes the cached profile.
func (p *Prefs) RemoveUser() {
	if err := p.store.Remove(KeyUserData); err != nil {
		p.logger.Error("failed to remove user profile", log.FieldError, err)
	}
}

// Logout clears the session: token and cached profile. Safe to call when
// no session exists.
func (p *Prefs) Logout() {
	p.RemoveToken()
	p.RemoveUser()
	p.logger.Info("session cleared", log.FieldOperation, log.OpLogout)
}

// Theme returns the persisted theme. Anything other than the two
// recognized variants is treated as absent and resolves to the default.
func (p *Prefs) Theme() string {
	v, ok, err := p.store.Get(KeyTheme)
	if err != nil {
		p.logger.Error("failed to read theme", log.FieldError, err)
		return DefaultTheme
	}
	if !ok {
		return DefaultTheme
	}
	if v != ThemeLight && v != ThemeDark {
		p.logger.Warn("discarding unrecognized theme", log.FieldKey, KeyTheme, "value", v)
		if rmErr := p.store.Remove(KeyTheme); rmErr != nil {
			p.logger.Error("failed to purge unrecognized theme", log.FieldError, rmErr)
		}
		return DefaultTheme
	}
	return v
}

// SaveTheme persists a theme choice. Only the two recognized variants are
// accepted.
func (p *Prefs) SaveTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return ErrUnknownTheme
	}
	if err := p.store.Set(KeyTheme, theme); err != nil {
		p.logger.Error("failed to save theme", log.FieldError, err)
		return err
	}
	return nil
}

// PreferredCurrency returns the persisted currency code, defaulting to USD.
func (p *Prefs) PreferredCurrency() string {
	v, ok, err := p.store.Get(KeyPreferredCurrency)
	if err != nil {
		p.logger.Error("failed to read preferred currency", log.FieldError, err)
		return core.DefaultCurrency
	}
	if !ok || v == "" {
		return core.DefaultCurrency
	}
	if !core.IsSupportedCurrency(v) {
		p.logger.Warn("discarding unsupported currency", log.FieldKey, KeyPreferredCurrency, "value", v)
		if rmErr := p.store.Remove(KeyPreferredCurrency); rmErr != nil {
			p.logger.Error("failed to purge unsupported currency", log.FieldError, rmErr)
		}
		return core.DefaultCurrency
	}
	return v
}

// SavePreferredCurrency persists a currency choice from the supported set.
func (p *Prefs) SavePreferredCurrency(code string) error {
	if !core.IsSupportedCurrency(code) {
		return core.ErrInvalidCurrency
	}
	if err := p.store.Set(KeyPreferredCurrency, code); err != nil {
		p.logger.Error("failed to save preferred currency", log.FieldError, err)
		return err
	}
	return nil
}
