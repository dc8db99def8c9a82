package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Message identifiers used by the selector page and the CLI prompt.
const (
	MsgPageTitle   = "page.title"
	MsgLabel       = "timezone.label"
	MsgPlaceholder = "timezone.placeholder"
	MsgSearch      = "timezone.search"
	MsgEmpty       = "timezone.empty"
)

// defaultMessages back every identifier so a missing catalog entry still
// renders English text.
var defaultMessages = map[string]*i18n.Message{
	MsgPageTitle:   {ID: MsgPageTitle, Other: "Choose your timezone"},
	MsgLabel:       {ID: MsgLabel, Other: "Timezone"},
	MsgPlaceholder: {ID: MsgPlaceholder, Other: "Select a timezone"},
	MsgSearch:      {ID: MsgSearch, Other: "Search timezones"},
	MsgEmpty:       {ID: MsgEmpty, Other: "No timezones match"},
}

// DefaultText returns the English text for id, or "" when id is unknown.
func DefaultText(id string) string {
	if msg, ok := defaultMessages[id]; ok {
		return msg.Other
	}
	return ""
}

// MissingTranslationHandler is notified when a message falls back to the
// default language or to its identifier.
type MissingTranslationHandler func(tag language.Tag, id string, err error)

// Translator resolves selector strings for a language tag.
type Translator struct {
	bundle  *i18n.Bundle
	matcher language.Matcher
	tags    []language.Tag

	mu         sync.RWMutex
	localizers map[string]*i18n.Localizer

	OnMissing MissingTranslationHandler
}

// NewTranslator loads the embedded message files.
func NewTranslator() (*Translator, error) {
	return NewTranslatorFS(localeFS, "locales")
}

// NewTranslatorFS loads every *.json file in dir. File names are language
// tags ("de.json", "pt-BR.json"). English is always the fallback language.
func NewTranslatorFS(fsys fs.FS, dir string) (*Translator, error) {
	if fsys == nil {
		return nil, fmt.Errorf("locale: missing message filesystem")
	}

	bundle := i18n.NewBundle(DefaultTag)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("locale: read %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		name := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("locale: read %s: %w", name, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, name); err != nil {
			return nil, fmt.Errorf("locale: parse %s: %w", name, err)
		}
	}

	tags := bundle.LanguageTags()
	return &Translator{
		bundle:     bundle,
		matcher:    language.NewMatcher(tags),
		tags:       tags,
		localizers: make(map[string]*i18n.Localizer),
	}, nil
}

// Languages lists the tags with a message file, English first.
func (t *Translator) Languages() []language.Tag {
	out := make([]language.Tag, len(t.tags))
	copy(out, t.tags)
	return out
}

// Match returns the best supported tag for the preferred tags, or English.
func (t *Translator) Match(preferred ...language.Tag) language.Tag {
	if len(preferred) == 0 {
		return t.tags[0]
	}
	_, index, confidence := t.matcher.Match(preferred...)
	if confidence == language.No {
		return t.tags[0]
	}
	return t.tags[index]
}

// Negotiate matches an Accept-Language header value.
func (t *Translator) Negotiate(acceptLanguage string) language.Tag {
	preferred, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(preferred) == 0 {
		return t.tags[0]
	}
	return t.Match(preferred...)
}

// Translate returns the message id in the language best matching tag. Unknown
// identifiers come back unchanged.
func (t *Translator) Translate(tag language.Tag, id string) string {
	localizer := t.localizer(t.Match(tag))
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:      id,
		DefaultMessage: defaultMessages[id],
	})
	if err != nil && t.OnMissing != nil {
		t.OnMissing(tag, id, err)
	}
	if strings.TrimSpace(msg) == "" {
		return id
	}
	return msg
}

// Messages translates every known identifier for tag.
func (t *Translator) Messages(tag language.Tag) map[string]string {
	out := make(map[string]string, len(defaultMessages))
	for id := range defaultMessages {
		out[id] = t.Translate(tag, id)
	}
	return out
}

func (t *Translator) localizer(tag language.Tag) *i18n.Localizer {
	key := tag.String()
	t.mu.RLock()
	l, ok := t.localizers[key]
	t.mu.RUnlock()
	if ok {
		return l
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if l, ok := t.localizers[key]; ok {
		return l
	}
	l = i18n.NewLocalizer(t.bundle, key)
	t.localizers[key] = l
	return l
}
