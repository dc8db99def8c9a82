package page

import (
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-tzcatalog/components/timezones"
	"github.com/goliatone/go-tzcatalog/pkg/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

var summer = time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC)

func testCatalog() timezones.Catalog {
	return timezones.BuildCatalog(
		timezones.WithZones([]string{"UTC", "Asia/Tokyo", "America/New_York", "Asia/Kolkata"}),
		timezones.WithInstant(summer),
	)
}

func TestRender_DefaultTemplate(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	html, err := r.RenderString(Input{
		Catalog:  testCatalog(),
		Selected: "Asia/Tokyo",
		Locale:   locale.StaticTag(language.Arabic),
		BaseURL:  "http://localhost:3001",
		Endpoint: timezones.Endpoint("http://localhost:3001", "/admin"),
	})
	require.NoError(t, err)

	assert.Contains(t, html, `<html lang="ar" dir="rtl">`)
	assert.Contains(t, html, `data-api-base="http://localhost:3001"`)
	assert.Contains(t, html, `data-endpoint="http://localhost:3001/admin/api/timezones"`)
	assert.Contains(t, html, `data-search-param="q"`)
	assert.Contains(t, html, `<option value="Asia/Tokyo" data-hour-offset="9" selected>(UTC+09:00) Asia/Tokyo</option>`)
	assert.Contains(t, html, `<option value="Asia/Kolkata" data-hour-offset="5.5">(UTC+05:30) Asia/Kolkata</option>`)
	assert.Contains(t, html, "<title>Choose your timezone</title>")
	assert.NotContains(t, html, "tz-help")

	// options follow catalog order
	ny := strings.Index(html, `value="America/New_York"`)
	utc := strings.Index(html, `value="UTC"`)
	tokyo := strings.Index(html, `value="Asia/Tokyo"`)
	assert.True(t, ny < utc && utc < tokyo, "unexpected option order")
}

func TestRender_TranslatedMessages(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	tr, err := locale.NewTranslator()
	require.NoError(t, err)

	html, err := r.RenderString(Input{
		Catalog:  testCatalog(),
		Locale:   locale.StaticTag(language.German),
		Messages: tr.Messages(language.German),
	})
	require.NoError(t, err)

	assert.Contains(t, html, `<html lang="de" dir="ltr">`)
	assert.Contains(t, html, "<title>Zeitzone auswählen</title>")
	assert.Contains(t, html, `<label for="tz-select">Zeitzone</label>`)
}

func TestRender_EmptyCatalog(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	html, err := r.RenderString(Input{})
	require.NoError(t, err)
	assert.Contains(t, html, `<option value="" disabled>No timezones match</option>`)
	assert.Contains(t, html, `<html lang="en" dir="ltr">`)
	assert.Contains(t, html, `name="timezone"`)
}

func TestRender_SanitizesHelp(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	html, err := r.RenderString(Input{
		HelpHTML: `<p>See <a href="https://www.iana.org/time-zones" onclick="steal()">IANA</a></p><script>alert(1)</script>`,
	})
	require.NoError(t, err)

	assert.Contains(t, html, `<div class="tz-help">`)
	assert.Contains(t, html, `href="https://www.iana.org/time-zones"`)
	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "onclick")
}

func TestRender_EscapesValues(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	html, err := r.RenderString(Input{
		Catalog: timezones.Catalog{{Name: `<b>x</b>`, Value: `a"b`, HourOffset: 0}},
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<b>x</b>")
	assert.NotContains(t, html, `value="a"b"`)
}

func TestRender_CustomTemplates(t *testing.T) {
	fsys := fstest.MapFS{
		"custom.tpl": {Data: []byte(`{{ messages.label }}|{% for a in html_attrs %}{{ a.name }}={{ a.value }};{% endfor %}|{{ entries|length }}`)},
	}
	r, err := New(WithFS(fsys))
	require.NoError(t, err)

	out, err := r.RenderString(Input{
		Template: "custom",
		Catalog:  testCatalog(),
		Locale:   locale.StaticTag(language.Hebrew),
	})
	require.NoError(t, err)
	assert.Equal(t, "Timezone|lang=he;dir=rtl;|4", out)

	_, err = r.RenderString(Input{Template: "missing"})
	require.Error(t, err)
}

func TestRender_NilRenderer(t *testing.T) {
	var r *Renderer
	_, err := r.RenderString(Input{})
	require.Error(t, err)
}

func TestSanitizeHelp(t *testing.T) {
	assert.Equal(t, "", SanitizeHelp("   "))
	assert.Equal(t, "<strong>bold</strong>", SanitizeHelp("<strong>bold</strong><iframe src=x></iframe>"))
}

func TestElement_SetAttributeReplacesInPlace(t *testing.T) {
	el := &Element{}
	el.SetAttribute("lang", "en")
	el.SetAttribute("dir", "ltr")
	el.SetAttribute("lang", "ar")

	assert.Equal(t, []Attr{{Name: "lang", Value: "ar"}, {Name: "dir", Value: "ltr"}}, el.Attrs())
	v, ok := el.Attribute("dir")
	assert.True(t, ok)
	assert.Equal(t, "ltr", v)
	_, ok = el.Attribute("class")
	assert.False(t, ok)
}
