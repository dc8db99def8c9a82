// Package tzcatalog builds a list of IANA timezones labelled with their
// current UTC offset and ordered west to east, for use in timezone pickers.
//
// The work happens in components/timezones; this package re-exports the
// pieces most callers need.
//
//	catalog := tzcatalog.BuildCatalog()
//	for _, entry := range catalog {
//		fmt.Println(entry.Name) // "(UTC+09:00) Asia/Tokyo"
//	}
package tzcatalog

import (
	"net/http"

	"github.com/goliatone/go-tzcatalog/components/timezones"
)

// Entry is a single catalog row.
type Entry = timezones.Entry

// Catalog is an ordered list of entries.
type Catalog = timezones.Catalog

// Report is a catalog plus the identifiers that were skipped.
type Report = timezones.Report

// OptionFn configures a build.
type OptionFn = timezones.OptionFn

// EndpointConfig describes how a browser selector queries the catalog API.
type EndpointConfig = timezones.EndpointConfig

var (
	WithZones    = timezones.WithZones
	WithInstant  = timezones.WithInstant
	WithNow      = timezones.WithNow
	WithResolver = timezones.WithResolver
	WithObserver = timezones.WithObserver
)

// BuildCatalog returns every supported identifier of the reference list,
// sorted by current UTC offset. Unsupported identifiers are left out.
func BuildCatalog(fns ...OptionFn) Catalog {
	return timezones.BuildCatalog(fns...)
}

// BuildReport is BuildCatalog with the skipped identifiers reported.
func BuildReport(fns ...OptionFn) Report {
	return timezones.BuildReport(fns...)
}

// Handler serves the catalog search API.
func Handler(fns ...OptionFn) http.Handler {
	return timezones.NewHandler(fns...)
}
