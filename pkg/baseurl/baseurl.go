// Package baseurl decides where API calls made by the selector page should
// go. In development the API runs on a separate port of the same host; in
// every other environment the page talks to its own origin.
package baseurl

import (
	"net"
	"net/http"
	"strconv"
	"strings"
)

const (
	// DefaultDevPort is the port the development API listens on.
	DefaultDevPort = 3001
	// DevelopmentEnv is the environment name that enables development mode.
	DevelopmentEnv = "development"
	// DevFlagValue is the developer override value, read from config or the
	// DevCookie cookie.
	DevFlagValue = "dev"
	// DevCookie names the per-browser override cookie.
	DevCookie = "dev"
)

// Origin is the scheme and host a page was served from. Host may carry a
// port, which is ignored.
type Origin struct {
	Scheme string
	Host   string
}

// Resolver computes the API base URL.
type Resolver struct {
	Env     string
	DevFlag string
	DevPort int
}

// IsDevelopment reports whether development mode is active.
func (r Resolver) IsDevelopment() bool {
	return r.Env == DevelopmentEnv || r.DevFlag == DevFlagValue
}

// BaseURL returns "scheme://hostname:port" in development and "" otherwise,
// meaning same origin.
func (r Resolver) BaseURL(origin Origin) string {
	if !r.IsDevelopment() {
		return ""
	}
	return r.devURL(origin)
}

// ForRequest resolves the base URL for an incoming request. A DevCookie with
// value DevFlagValue enables development mode for that request only.
func (r Resolver) ForRequest(req *http.Request) string {
	if req == nil {
		return r.BaseURL(Origin{})
	}
	if cookie, err := req.Cookie(DevCookie); err == nil && cookie.Value == DevFlagValue {
		r.DevFlag = DevFlagValue
	}
	return r.BaseURL(FromRequest(req))
}

func (r Resolver) devURL(origin Origin) string {
	scheme := strings.TrimSuffix(strings.TrimSpace(origin.Scheme), ":")
	if scheme == "" {
		scheme = "http"
	}
	host := Hostname(origin.Host)
	if host == "" {
		host = "localhost"
	}
	port := r.DevPort
	if port <= 0 {
		port = DefaultDevPort
	}
	return scheme + "://" + net.JoinHostPort(host, strconv.Itoa(port))
}

// FromRequest derives the origin of req. X-Forwarded-Proto takes precedence
// over the TLS state of the connection.
func FromRequest(req *http.Request) Origin {
	if req == nil {
		return Origin{}
	}
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	if proto := req.Header.Get("X-Forwarded-Proto"); proto != "" {
		if i := strings.IndexByte(proto, ','); i >= 0 {
			proto = proto[:i]
		}
		scheme = strings.ToLower(strings.TrimSpace(proto))
	}
	return Origin{Scheme: scheme, Host: req.Host}
}

// Hostname strips the port and IPv6 brackets from host.
func Hostname(host string) string {
	host = strings.TrimSpace(host)
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
}
