package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestDirectionOf(t *testing.T) {
	cases := map[string]Direction{
		"ar":      RTL,
		"ar-EG":   RTL,
		"he":      RTL,
		"fa":      RTL,
		"ur":      RTL,
		"dv":      RTL,
		"yi":      RTL,
		"az-Arab": RTL,
		"en":      LTR,
		"en-US":   LTR,
		"ja":      LTR,
		"de":      LTR,
		"az":      LTR,
		"sr-Cyrl": LTR,
	}
	for raw, want := range cases {
		tag := language.MustParse(raw)
		assert.Equal(t, want, DirectionOf(tag), raw)
	}
}

func TestNewStatic(t *testing.T) {
	p, err := NewStatic("he_IL")
	require.NoError(t, err)
	assert.Equal(t, "he-IL", p.CurrentLocale().String())
	assert.Equal(t, RTL, p.Direction())

	p, err = NewStatic("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTag, p.CurrentLocale())
	assert.Equal(t, LTR, p.Direction())

	_, err = NewStatic("not a locale!")
	require.Error(t, err)
}

func TestStatic_ZeroValueFallsBack(t *testing.T) {
	var p Static
	assert.Equal(t, DefaultTag, p.CurrentLocale())
	assert.Equal(t, LTR, p.Direction())
}

func TestFromEnv(t *testing.T) {
	env := func(values map[string]string) func(string) (string, bool) {
		return func(key string) (string, bool) {
			v, ok := values[key]
			return v, ok
		}
	}

	cases := []struct {
		name   string
		values map[string]string
		want   string
	}{
		{name: "lang", values: map[string]string{"LANG": "de_DE.UTF-8"}, want: "de-DE"},
		{name: "lc_all wins", values: map[string]string{"LANG": "de_DE.UTF-8", "LC_ALL": "ar_SA.UTF-8"}, want: "ar-SA"},
		{name: "lc_messages before lang", values: map[string]string{"LANG": "en_US", "LC_MESSAGES": "ja_JP"}, want: "ja-JP"},
		{name: "modifier stripped", values: map[string]string{"LANG": "fr_FR.UTF-8@euro"}, want: "fr-FR"},
		{name: "posix falls through", values: map[string]string{"LC_ALL": "C", "LANG": "he_IL"}, want: "he-IL"},
		{name: "empty", values: map[string]string{}, want: "en"},
		{name: "only posix", values: map[string]string{"LANG": "POSIX"}, want: "en"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FromEnv(env(tc.values))
			assert.Equal(t, tc.want, got.CurrentLocale().String())
		})
	}

	assert.Equal(t, DefaultTag, FromEnv(nil).CurrentLocale())
}

type recordingElement struct {
	calls [][2]string
}

func (r *recordingElement) SetAttribute(name, value string) {
	r.calls = append(r.calls, [2]string{name, value})
}

func TestApplyPageLocale(t *testing.T) {
	el := &recordingElement{}
	ApplyPageLocale(el, StaticTag(language.Arabic))

	require.Len(t, el.calls, 2)
	assert.Equal(t, [2]string{"lang", "ar"}, el.calls[0])
	assert.Equal(t, [2]string{"dir", "rtl"}, el.calls[1])
}

func TestAttributes_NilProvider(t *testing.T) {
	attrs := Attributes(nil)
	assert.Equal(t, PageAttributes{Lang: "en", Dir: LTR}, attrs)

	// nil setter is ignored
	attrs.Apply(nil)
}
