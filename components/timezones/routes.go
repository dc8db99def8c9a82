package timezones

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Routes lists the patterns registered for the component.
type Routes struct {
	Catalog string
	OpenAPI string
}

// MountPath returns the full mount path for the component route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RegisterRoutes registers the catalog handler and its OpenAPI document under
// basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (Routes, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers the handlers using a pre-built Options value.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (Routes, error) {
	if mux == nil {
		return Routes{}, fmt.Errorf("timezones: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })

	routes := Routes{
		Catalog: mountPath(basePath, opts.RoutePath),
	}
	routes.OpenAPI = strings.TrimRight(routes.Catalog, "/") + "/openapi.json"

	mux.Handle(routes.Catalog, HandlerWithOptions(opts))
	mux.Handle(routes.OpenAPI, OpenAPIHandler(basePath, opts))
	return routes, nil
}

// OpenAPIHandler serves the OpenAPI document for the catalog route.
func OpenAPIHandler(basePath string, opts Options) http.Handler {
	doc := OpenAPIDocumentWithOptions(basePath, opts)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		payload, err := json.Marshal(doc)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(payload)
	})
}

func mountPath(basePath, routePath string) string {
	basePath = strings.Trim(strings.TrimSpace(basePath), "/")
	routePath = strings.Trim(strings.TrimSpace(routePath), "/")

	switch {
	case basePath == "" && routePath == "":
		return "/"
	case basePath == "":
		return "/" + routePath
	case routePath == "":
		return "/" + basePath
	}
	return "/" + basePath + "/" + routePath
}
