package timezones

import (
	"net/url"
	"strconv"
	"strings"
)

// EndpointConfig is the fetch contract a browser selector uses to populate
// itself from the catalog handler.
type EndpointConfig struct {
	URL           string            `json:"url"`
	Method        string            `json:"method"`
	ResultsPath   string            `json:"resultsPath"`
	Params        map[string]string `json:"params,omitempty"`
	DynamicParams map[string]string `json:"dynamicParams,omitempty"`
	Mapping       EndpointMapping   `json:"mapping"`
}

// EndpointMapping names the payload fields used for option value and label.
type EndpointMapping struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SelfPlaceholder is replaced client side by the current input value.
const SelfPlaceholder = "{{self}}"

// Endpoint returns the endpoint descriptor for the handler mounted under
// basePath. baseURL is prepended as-is; an empty baseURL means same origin.
//
// The descriptor:
// - points at <baseURL><basePath><RoutePath> (default: <basePath>/api/timezones)
// - uses resultsPath "data" with value/label mapping
// - includes "format=options" and a default limit param
// - includes a dynamic search param mapped to "{{self}}"
func Endpoint(baseURL, basePath string, fns ...OptionFn) EndpointConfig {
	return EndpointWithOptions(baseURL, basePath, NewOptions(fns...))
}

// EndpointWithOptions is Endpoint for a pre-built Options value.
func EndpointWithOptions(baseURL, basePath string, opts Options) EndpointConfig {
	opts = NewOptions(func(o *Options) { *o = opts })

	params := map[string]string{
		opts.FormatParam: FormatOptions,
		opts.LimitParam:  strconv.Itoa(opts.DefaultLimit),
	}

	return EndpointConfig{
		URL:         joinBaseURL(baseURL, mountPath(basePath, opts.RoutePath)),
		Method:      "GET",
		ResultsPath: "data",
		Params:      params,
		DynamicParams: map[string]string{
			opts.SearchParam: SelfPlaceholder,
		},
		Mapping: EndpointMapping{
			Value: "value",
			Label: "label",
		},
	}
}

// RequestURL expands the descriptor into a concrete URL for query.
func (e EndpointConfig) RequestURL(query string) string {
	values := url.Values{}
	for key, value := range e.Params {
		values.Set(key, value)
	}
	for key, value := range e.DynamicParams {
		if value == SelfPlaceholder {
			value = query
		}
		if value == "" {
			continue
		}
		values.Set(key, value)
	}
	encoded := values.Encode()
	if encoded == "" {
		return e.URL
	}
	return e.URL + "?" + encoded
}

func joinBaseURL(baseURL, path string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return path
	}
	return baseURL + path
}
