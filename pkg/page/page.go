// Package page renders the server-side timezone selector: a localized HTML
// document whose root carries lang and dir, listing the catalog in a select
// element wired to the catalog search endpoint.
package page

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/goliatone/go-tzcatalog/components/timezones"
	"github.com/goliatone/go-tzcatalog/pkg/locale"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// DefaultTemplate is rendered when Input.Template is empty.
const DefaultTemplate = "selector"

// Templates exposes the embedded templates rooted at their directory.
func Templates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// Option configures the renderer before construction.
type Option func(*config)

type config struct {
	baseDir   string
	templates fs.FS
	extension string
}

// WithBaseDir loads templates from a directory on disk, ahead of the
// embedded set.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS replaces the embedded templates.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the ".tpl" template extension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// Renderer renders selector pages with pongo2.
type Renderer struct {
	mu sync.RWMutex

	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	ext       string
}

// New builds a Renderer. Without options it serves the embedded templates.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{extension: ".tpl"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if cfg.templates == nil {
		cfg.templates = Templates()
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("page: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))

	return &Renderer{
		set:       pongo2.NewSet("tzcatalog", loaders...),
		templates: make(map[string]*pongo2.Template),
		ext:       cfg.extension,
	}, nil
}

// Input is everything a selector page needs.
type Input struct {
	Template string
	Catalog  timezones.Catalog
	Selected string
	// FieldName is the form field name of the select element.
	FieldName string
	Locale    locale.Provider
	// Messages are translated strings keyed by locale message id. Missing
	// ids render in English.
	Messages map[string]string
	// BaseURL prefixes API calls; empty means same origin.
	BaseURL  string
	Endpoint timezones.EndpointConfig
	// HelpHTML is sanitized before rendering.
	HelpHTML string
}

// Render writes the page to w.
func (r *Renderer) Render(w io.Writer, in Input) error {
	if r == nil || r.set == nil {
		return errors.New("page: renderer is nil")
	}
	if w == nil {
		return errors.New("page: missing writer")
	}

	name := strings.TrimSpace(in.Template)
	if name == "" {
		name = DefaultTemplate
	}
	if !strings.HasSuffix(name, r.ext) {
		name += r.ext
	}
	tmpl, err := r.template(name)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(buildContext(in), &buf); err != nil {
		return fmt.Errorf("page: execute template %q: %w", name, err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// RenderString is Render into a string.
func (r *Renderer) RenderString(in Input) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, in); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) template(name string) (*pongo2.Template, error) {
	r.mu.RLock()
	if tmpl, ok := r.templates[name]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tmpl, ok := r.templates[name]; ok {
		return tmpl, nil
	}
	tmpl, err := r.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("page: load template %q: %w", name, err)
	}
	r.templates[name] = tmpl
	return tmpl, nil
}

var messageKeys = map[string]string{
	"title":       locale.MsgPageTitle,
	"label":       locale.MsgLabel,
	"placeholder": locale.MsgPlaceholder,
	"search":      locale.MsgSearch,
	"empty":       locale.MsgEmpty,
}

func buildContext(in Input) pongo2.Context {
	root := &Element{}
	locale.ApplyPageLocale(root, in.Locale)

	htmlAttrs := make([]map[string]any, 0, len(root.attrs))
	for _, attr := range root.Attrs() {
		htmlAttrs = append(htmlAttrs, map[string]any{"name": attr.Name, "value": attr.Value})
	}

	messages := make(map[string]any, len(messageKeys))
	for key, id := range messageKeys {
		text := strings.TrimSpace(in.Messages[id])
		if text == "" {
			text = locale.DefaultText(id)
		}
		messages[key] = text
	}

	entries := make([]map[string]any, 0, len(in.Catalog))
	for _, entry := range in.Catalog {
		entries = append(entries, map[string]any{
			"name":   entry.Name,
			"value":  entry.Value,
			"offset": strconv.FormatFloat(entry.HourOffset, 'f', -1, 64),
		})
	}

	fieldName := strings.TrimSpace(in.FieldName)
	if fieldName == "" {
		fieldName = "timezone"
	}

	searchParam := ""
	for param, value := range in.Endpoint.DynamicParams {
		if value == timezones.SelfPlaceholder {
			searchParam = param
			break
		}
	}

	return pongo2.Context{
		"html_attrs":   htmlAttrs,
		"messages":     messages,
		"entries":      entries,
		"selected":     in.Selected,
		"field_name":   fieldName,
		"api_base":     in.BaseURL,
		"endpoint_url": in.Endpoint.URL,
		"request_url":  in.Endpoint.RequestURL(""),
		"search_param": searchParam,
		"results_path": in.Endpoint.ResultsPath,
		"help_html":    SanitizeHelp(in.HelpHTML),
	}
}
