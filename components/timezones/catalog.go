package timezones

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Entry is one selectable timezone. Name and HourOffset are derived from the
// same offset lookup.
type Entry struct {
	Name       string  `json:"name"`
	Value      string  `json:"value"`
	HourOffset float64 `json:"hourOffset"`
}

// Catalog is ordered by HourOffset, ascending. Entries with equal offsets keep
// the order of the reference list.
type Catalog []Entry

// Values returns the identifiers in catalog order.
func (c Catalog) Values() []string {
	out := make([]string, 0, len(c))
	for _, entry := range c {
		out = append(out, entry.Value)
	}
	return out
}

// Lookup finds the entry for an identifier.
func (c Catalog) Lookup(value string) (Entry, bool) {
	for _, entry := range c {
		if entry.Value == value {
			return entry, true
		}
	}
	return Entry{}, false
}

// Label formats the display name for zone at the given offset.
func Label(zone string, offsetSeconds int) string {
	return "(UTC" + FormatOffset(offsetSeconds) + ") " + zone
}

// Report is the outcome of a build, including what was left out.
type Report struct {
	Catalog Catalog
	Skipped []*UnsupportedZoneError
	BuiltAt time.Time
	// ListErr is set when the default reference list could not be read.
	ListErr error
}

// Err aggregates the skipped identifiers, or returns nil when none were.
func (r Report) Err() error {
	var result *multierror.Error
	if r.ListErr != nil {
		result = multierror.Append(result, r.ListErr)
	}
	for _, skipped := range r.Skipped {
		result = multierror.Append(result, skipped)
	}
	return result.ErrorOrNil()
}

// SkippedZones lists the identifiers that were dropped.
func (r Report) SkippedZones() []string {
	out := make([]string, 0, len(r.Skipped))
	for _, skipped := range r.Skipped {
		out = append(out, skipped.Zone)
	}
	return out
}

// Observer is notified after each build.
type Observer interface {
	CatalogBuilt(report Report, elapsed time.Duration)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(report Report, elapsed time.Duration)

func (fn ObserverFunc) CatalogBuilt(report Report, elapsed time.Duration) { fn(report, elapsed) }

// BuildCatalog evaluates every reference identifier at the configured
// instant and returns the sorted catalog. Identifiers that cannot be resolved
// are left out; the build itself never fails.
func BuildCatalog(fns ...OptionFn) Catalog {
	return BuildReport(fns...).Catalog
}

// BuildReport is BuildCatalog plus the identifiers that were skipped.
func BuildReport(fns ...OptionFn) Report {
	return BuildReportWithOptions(NewOptions(fns...))
}

// BuildReportWithOptions builds from a pre-constructed Options value.
func BuildReportWithOptions(opts Options) Report {
	opts = NewOptions(func(o *Options) { *o = opts })
	started := time.Now()

	report := Report{BuiltAt: opts.Now()}

	zones := opts.Zones
	if zones == nil {
		loaded, err := DefaultZones()
		if err != nil {
			report.ListErr = fmt.Errorf("timezones: load default zones: %w", err)
		}
		zones = loaded
	}

	catalog := make(Catalog, 0, len(zones))
	seen := make(map[string]struct{}, len(zones))
	for _, zone := range zones {
		if _, ok := seen[zone]; ok {
			continue
		}
		seen[zone] = struct{}{}

		loc, err := resolveZone(opts.Resolver, zone)
		if err != nil {
			report.Skipped = append(report.Skipped, err)
			continue
		}

		offset := ZoneOffset(loc, report.BuiltAt)
		catalog = append(catalog, Entry{
			Name:       Label(zone, offset),
			Value:      zone,
			HourOffset: HourOffset(offset),
		})
	}

	slices.SortStableFunc(catalog, func(a, b Entry) int {
		return cmp.Compare(a.HourOffset, b.HourOffset)
	})
	report.Catalog = catalog

	if opts.Observer != nil {
		opts.Observer.CatalogBuilt(report, time.Since(started))
	}
	return report
}

func resolveZone(resolver Resolver, zone string) (loc *time.Location, err *UnsupportedZoneError) {
	defer func() {
		if r := recover(); r != nil {
			loc = nil
			err = &UnsupportedZoneError{Zone: zone, Err: fmt.Errorf("resolver panic: %v", r)}
		}
	}()

	resolved, resolveErr := resolver.Resolve(zone)
	if resolveErr != nil {
		var unsupported *UnsupportedZoneError
		if errors.As(resolveErr, &unsupported) {
			return nil, unsupported
		}
		return nil, &UnsupportedZoneError{Zone: zone, Err: resolveErr}
	}
	if resolved == nil {
		return nil, &UnsupportedZoneError{Zone: zone}
	}
	return resolved, nil
}
