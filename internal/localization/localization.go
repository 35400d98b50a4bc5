// Package localization resolves message keys to display strings for the
// configured locale.
//
// Message files are embedded TOML catalogs loaded into a go-i18n bundle with
// English as the default language. Catalogs may be partial: a key missing
// from the requested language falls back to English, and a key missing
// everywhere resolves to itself.
package localization

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Translator resolves a message key to display text. Implementations return
// the key itself when no translation exists.
type Translator interface {
	Translate(key string) string
}

// TranslatorFunc adapts a plain function to Translator.
type TranslatorFunc func(key string) string

// Translate calls f(key).
func (f TranslatorFunc) Translate(key string) string { return f(key) }

// Identity returns every key unchanged.
var Identity Translator = TranslatorFunc(func(key string) string { return key })

// Bundle holds every embedded message catalog.
type Bundle struct {
	bundle *i18n.Bundle
}

// NewBundle loads the embedded catalogs.
func NewBundle() (*Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := path.Join("locales", entry.Name())
		data, err := localeFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	}
	return &Bundle{bundle: bundle}, nil
}

// Languages lists the languages with an embedded catalog.
func (b *Bundle) Languages() []string {
	tags := b.bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	sort.Strings(out)
	return out
}

// Localizer translates keys for one requested language.
type Localizer struct {
	localizer *i18n.Localizer
	tag       language.Tag
}

// Localizer returns a Translator for lang, a BCP 47 tag such as "ja-JP".
func (b *Bundle) Localizer(lang string) (*Localizer, error) {
	lang = strings.TrimSpace(lang)
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parse language %q: %w", lang, err)
	}
	return &Localizer{
		localizer: i18n.NewLocalizer(b.bundle, tag.String()),
		tag:       tag,
	}, nil
}

// Tag returns the requested language, which also drives collation.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// Translate resolves key, returning key when no catalog defines it.
func (l *Localizer) Translate(key string) string {
	if key == "" {
		return ""
	}
	// A not-found error still carries the default message, so only the text matters.
	text, _ := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:      key,
		DefaultMessage: &i18n.Message{ID: key, Other: key},
	})
	if text == "" {
		return key
	}
	return text
}
