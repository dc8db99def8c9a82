package timezones

import "net/http"

// Component bundles the catalog options with the handler, routing, and the
// client endpoint descriptor.
type Component struct {
	opts Options
}

// New constructs a new component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	return &Component{opts: opts}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns a net/http handler for timezone queries.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return HandlerWithOptions(c.opts)
}

// Catalog builds a fresh catalog with the component options.
func (c *Component) Catalog() Catalog {
	return c.Report().Catalog
}

// Report builds a fresh catalog and reports skipped identifiers.
func (c *Component) Report() Report {
	if c == nil {
		return BuildReport()
	}
	return BuildReportWithOptions(c.opts)
}

// Endpoint describes how a browser selector should query this component.
func (c *Component) Endpoint(baseURL, basePath string) EndpointConfig {
	return EndpointWithOptions(baseURL, basePath, c.Options())
}

// RegisterRoutes registers the component handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (Routes, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}
