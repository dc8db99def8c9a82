package page

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-tzcatalog/components/timezones"
	"github.com/goliatone/go-tzcatalog/pkg/baseurl"
	"github.com/goliatone/go-tzcatalog/pkg/locale"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// LangParam overrides Accept-Language when present in the query string.
const LangParam = "lang"

// HandlerConfig wires the selector page to a catalog component.
type HandlerConfig struct {
	Component *timezones.Component
	Renderer  *Renderer
	// Translator is optional; without it the page renders in English with
	// the attributes of Locale.
	Translator *locale.Translator
	// Locale is used when the request states no preference.
	Locale   locale.Provider
	BaseURL  baseurl.Resolver
	BasePath string
	HelpHTML string
	Logger   *zap.Logger
}

type handler struct {
	cfg HandlerConfig
}

// NewHandler serves the selector page on GET and HEAD.
func NewHandler(cfg HandlerConfig) (http.Handler, error) {
	if cfg.Renderer == nil {
		return nil, errors.New("page: missing renderer")
	}
	if cfg.Component == nil {
		cfg.Component = timezones.New()
	}
	if cfg.Locale == nil {
		cfg.Locale = locale.StaticTag(locale.DefaultTag)
	}
	cfg.Logger = orNop(cfg.Logger)
	return &handler{cfg: cfg}, nil
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	provider, messages := h.localize(r)
	baseURL := h.cfg.BaseURL.ForRequest(r)

	in := Input{
		Catalog:  h.cfg.Component.Catalog(),
		Selected: strings.TrimSpace(r.URL.Query().Get("timezone")),
		Locale:   provider,
		Messages: messages,
		BaseURL:  baseURL,
		Endpoint: h.cfg.Component.Endpoint(baseURL, h.cfg.BasePath),
		HelpHTML: h.cfg.HelpHTML,
	}

	var buf bytes.Buffer
	if err := h.cfg.Renderer.Render(&buf, in); err != nil {
		h.cfg.Logger.Error("render selector page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", provider.CurrentLocale().String())
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = buf.WriteTo(w)
}

func (h *handler) localize(r *http.Request) (locale.Provider, map[string]string) {
	tr := h.cfg.Translator
	if tr == nil {
		return h.cfg.Locale, nil
	}

	var tag language.Tag
	switch {
	case strings.TrimSpace(r.URL.Query().Get(LangParam)) != "":
		tag = tr.Negotiate(r.URL.Query().Get(LangParam))
	case r.Header.Get("Accept-Language") != "":
		tag = tr.Negotiate(r.Header.Get("Accept-Language"))
	default:
		tag = tr.Match(h.cfg.Locale.CurrentLocale())
	}
	return locale.StaticTag(tag), tr.Messages(tag)
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
