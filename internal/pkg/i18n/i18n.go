package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var locales embed.FS

// Message IDs used outside form validation.
const (
	MsgQuotaExceeded      = "product.quota_exceeded"
	MsgProductCreated     = "product.created"
	MsgProductUpdated     = "product.updated"
	MsgProductDeleted     = "product.deleted"
	MsgProfileUpdated     = "vendor.profile_updated"
	MsgForbidden          = "error.forbidden"
	MsgNotFound           = "error.not_found"
	MsgInternal           = "error.internal"
	MsgInvalidCredentials = "auth.invalid_credentials"
	MsgLoginRequired      = "auth.login_required"
)

// Bundle holds the translations for every supported language.
type Bundle struct {
	bundle   *goi18n.Bundle
	fallback language.Tag
}

func New(defaultLang string) (*Bundle, error) {
	fallback, err := language.Parse(defaultLang)
	if err != nil {
		fallback = language.French
	}

	b := goi18n.NewBundle(fallback)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, file := range []string{"locales/active.en.json", "locales/active.fr.json"} {
		if _, err := b.LoadMessageFileFS(locales, file); err != nil {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
	}

	return &Bundle{bundle: b, fallback: fallback}, nil
}

// Localize translates messageID for the given languages (most preferred first, usually the
// raw Accept-Language header). Unknown IDs are returned unchanged.
func (b *Bundle) Localize(messageID string, langs ...string) string {
	langs = append(langs, b.fallback.String())
	loc := goi18n.NewLocalizer(b.bundle, langs...)

	msg, err := loc.Localize(&goi18n.LocalizeConfig{MessageID: messageID})
	if err != nil {
		return messageID
	}
	return msg
}

// LocalizeAll translates every value of a field -> message ID map.
func (b *Bundle) LocalizeAll(fields map[string]string, langs ...string) map[string]string {
	out := make(map[string]string, len(fields))
	for field, id := range fields {
		out[field] = b.Localize(id, langs...)
	}
	return out
}
