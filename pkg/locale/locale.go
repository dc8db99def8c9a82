package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Direction is the writing direction of a locale, rendered verbatim as the
// HTML dir attribute.
type Direction string

const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// DefaultTag is used whenever no usable locale can be determined.
var DefaultTag = language.English

// Provider exposes the active locale.
type Provider interface {
	CurrentLocale() language.Tag
	Direction() Direction
}

// rtlScripts lists ISO 15924 codes of scripts written right to left.
var rtlScripts = map[string]struct{}{
	"Arab": {},
	"Hebr": {},
	"Thaa": {},
	"Syrc": {},
	"Nkoo": {},
	"Adlm": {},
	"Mand": {},
	"Samr": {},
	"Rohg": {},
	"Yezi": {},
}

// DirectionOf reports the writing direction of tag. The script is taken from
// the tag when explicit and otherwise inferred from the language, so "ar",
// "fa" and "az-Arab" resolve to RTL while "az" stays LTR.
func DirectionOf(tag language.Tag) Direction {
	script, confidence := tag.Script()
	if confidence == language.No {
		return LTR
	}
	if _, ok := rtlScripts[script.String()]; ok {
		return RTL
	}
	return LTR
}

// Static is a Provider that always reports the same tag.
type Static struct {
	tag language.Tag
}

// NewStatic parses raw as a BCP 47 tag. POSIX spellings such as "de_DE" are
// accepted. An empty value yields DefaultTag.
func NewStatic(raw string) (Static, error) {
	raw = normalizePOSIX(raw)
	if raw == "" {
		return Static{tag: DefaultTag}, nil
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return Static{}, fmt.Errorf("locale: parse %q: %w", raw, err)
	}
	return Static{tag: tag}, nil
}

// StaticTag wraps an already parsed tag.
func StaticTag(tag language.Tag) Static {
	return Static{tag: tag}
}

func (s Static) CurrentLocale() language.Tag {
	if s.tag == language.Und {
		return DefaultTag
	}
	return s.tag
}

func (s Static) Direction() Direction {
	return DirectionOf(s.CurrentLocale())
}

// envKeys are consulted in POSIX precedence order.
var envKeys = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// FromEnv builds a Provider from the POSIX locale variables using lookup,
// which usually is os.LookupEnv. "C", "POSIX" and unparsable values fall
// through to the next variable; when none is usable DefaultTag is returned.
func FromEnv(lookup func(string) (string, bool)) Static {
	if lookup == nil {
		return Static{tag: DefaultTag}
	}
	for _, key := range envKeys {
		value, ok := lookup(key)
		if !ok {
			continue
		}
		value = normalizePOSIX(value)
		if value == "" {
			continue
		}
		tag, err := language.Parse(value)
		if err != nil {
			continue
		}
		return Static{tag: tag}
	}
	return Static{tag: DefaultTag}
}

// normalizePOSIX turns "en_US.UTF-8@euro" into "en-US". "C" and "POSIX"
// map to the empty string.
func normalizePOSIX(value string) string {
	value = strings.TrimSpace(value)
	if i := strings.IndexByte(value, '@'); i >= 0 {
		value = value[:i]
	}
	if i := strings.IndexByte(value, '.'); i >= 0 {
		value = value[:i]
	}
	switch value {
	case "C", "POSIX":
		return ""
	}
	return strings.ReplaceAll(value, "_", "-")
}
