package timezones

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var (
	summerInstant = time.Date(2024, time.July, 15, 12, 0, 0, 0, time.UTC)
	winterInstant = time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
)

func TestBuildCatalog_OrdersByOffset(t *testing.T) {
	catalog := BuildCatalog(
		WithZones([]string{"UTC", "Asia/Tokyo", "America/New_York"}),
		WithInstant(summerInstant),
	)

	want := Catalog{
		{Name: "(UTC-04:00) America/New_York", Value: "America/New_York", HourOffset: -4},
		{Name: "(UTC+00:00) UTC", Value: "UTC", HourOffset: 0},
		{Name: "(UTC+09:00) Asia/Tokyo", Value: "Asia/Tokyo", HourOffset: 9},
	}
	if diff := cmp.Diff(want, catalog); diff != "" {
		t.Fatalf("unexpected catalog (-want +got):\n%s", diff)
	}
}

func TestBuildCatalog_FollowsDaylightRules(t *testing.T) {
	catalog := BuildCatalog(
		WithZones([]string{"America/New_York", "Australia/Sydney"}),
		WithInstant(winterInstant),
	)

	want := Catalog{
		{Name: "(UTC-05:00) America/New_York", Value: "America/New_York", HourOffset: -5},
		{Name: "(UTC+11:00) Australia/Sydney", Value: "Australia/Sydney", HourOffset: 11},
	}
	if diff := cmp.Diff(want, catalog); diff != "" {
		t.Fatalf("unexpected catalog (-want +got):\n%s", diff)
	}
}

func TestBuildCatalog_FractionalOffsets(t *testing.T) {
	catalog := BuildCatalog(
		WithZones([]string{"Asia/Kathmandu", "America/St_Johns", "Asia/Kolkata"}),
		WithInstant(winterInstant),
	)

	want := Catalog{
		{Name: "(UTC-03:30) America/St_Johns", Value: "America/St_Johns", HourOffset: -3.5},
		{Name: "(UTC+05:30) Asia/Kolkata", Value: "Asia/Kolkata", HourOffset: 5.5},
		{Name: "(UTC+05:45) Asia/Kathmandu", Value: "Asia/Kathmandu", HourOffset: 5.75},
	}
	if diff := cmp.Diff(want, catalog); diff != "" {
		t.Fatalf("unexpected catalog (-want +got):\n%s", diff)
	}
}

func TestBuildCatalog_TiesKeepInputOrder(t *testing.T) {
	catalog := BuildCatalog(
		WithZones([]string{"Europe/Paris", "Africa/Lagos", "UTC", "Europe/Berlin"}),
		WithInstant(winterInstant),
	)

	want := []string{"UTC", "Europe/Paris", "Africa/Lagos", "Europe/Berlin"}
	if diff := cmp.Diff(want, catalog.Values()); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestBuildCatalog_SkipsUnsupportedZones(t *testing.T) {
	zones := []string{"UTC", "Mars/Olympus_Mons", "Asia/Tokyo", "", "Local"}

	report := BuildReport(WithZones(zones), WithInstant(summerInstant))

	if len(report.Catalog) != 2 {
		t.Fatalf("expected 2 entries, got %d: %#v", len(report.Catalog), report.Catalog)
	}
	if _, ok := report.Catalog.Lookup("Mars/Olympus_Mons"); ok {
		t.Fatalf("expected unsupported zone to be omitted")
	}
	if diff := cmp.Diff([]string{"Mars/Olympus_Mons", "", "Local"}, report.SkippedZones()); diff != "" {
		t.Fatalf("unexpected skipped zones (-want +got):\n%s", diff)
	}

	err := report.Err()
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
	if !errors.Is(err, ErrUnsupportedZone) {
		t.Fatalf("expected ErrUnsupportedZone, got %v", err)
	}
	if !strings.Contains(err.Error(), "Mars/Olympus_Mons") {
		t.Fatalf("expected error to name the zone, got %q", err.Error())
	}
}

func TestBuildCatalog_CleanReportHasNoError(t *testing.T) {
	report := BuildReport(WithZones([]string{"UTC"}), WithInstant(summerInstant))
	if err := report.Err(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !report.BuiltAt.Equal(summerInstant) {
		t.Fatalf("expected BuiltAt %v, got %v", summerInstant, report.BuiltAt)
	}
}

func TestBuildCatalog_DropsRepeatedIdentifiers(t *testing.T) {
	catalog := BuildCatalog(
		WithZones([]string{"UTC", "Asia/Tokyo", "UTC"}),
		WithInstant(summerInstant),
	)
	if diff := cmp.Diff([]string{"UTC", "Asia/Tokyo"}, catalog.Values()); diff != "" {
		t.Fatalf("unexpected values (-want +got):\n%s", diff)
	}
}

func TestBuildCatalog_IsDeterministicWithinAnInstant(t *testing.T) {
	first := BuildCatalog(WithInstant(summerInstant))
	second := BuildCatalog(WithInstant(summerInstant))

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("expected identical catalogs (-first +second):\n%s", diff)
	}
}

func TestBuildCatalog_DefaultListProperties(t *testing.T) {
	zones, err := DefaultZones()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, instant := range []time.Time{summerInstant, winterInstant} {
		report := BuildReport(WithInstant(instant))
		if len(report.Skipped) != 0 {
			t.Fatalf("expected every default zone to resolve, skipped: %v", report.SkippedZones())
		}
		if len(report.Catalog) != len(zones) {
			t.Fatalf("expected %d entries, got %d", len(zones), len(report.Catalog))
		}

		seen := map[string]struct{}{}
		for i, entry := range report.Catalog {
			if i > 0 && report.Catalog[i-1].HourOffset > entry.HourOffset {
				t.Fatalf("catalog not sorted at %d: %v > %v", i, report.Catalog[i-1], entry)
			}
			if _, dup := seen[entry.Value]; dup {
				t.Fatalf("zone %q listed twice", entry.Value)
			}
			seen[entry.Value] = struct{}{}

			if !containsString(zones, entry.Value) {
				t.Fatalf("zone %q is not in the reference list", entry.Value)
			}
			assertLabelMatchesOffset(t, entry)
		}
	}
}

func TestBuildCatalog_UsesInjectedResolver(t *testing.T) {
	fixed := time.FixedZone("fixed", 3*3600+1800)
	resolver := ResolverFunc(func(zone string) (*time.Location, error) {
		if zone == "Custom/Zone" {
			return fixed, nil
		}
		return nil, fmt.Errorf("unknown zone %q", zone)
	})

	report := BuildReport(
		WithZones([]string{"Custom/Zone", "UTC"}),
		WithResolver(resolver),
		WithInstant(summerInstant),
	)

	want := Catalog{{Name: "(UTC+03:30) Custom/Zone", Value: "Custom/Zone", HourOffset: 3.5}}
	if diff := cmp.Diff(want, report.Catalog); diff != "" {
		t.Fatalf("unexpected catalog (-want +got):\n%s", diff)
	}
	if len(report.Skipped) != 1 || report.Skipped[0].Zone != "UTC" {
		t.Fatalf("expected UTC to be skipped, got %#v", report.Skipped)
	}
	if !errors.Is(report.Skipped[0], ErrUnsupportedZone) {
		t.Fatalf("expected skipped error to match ErrUnsupportedZone")
	}
}

func TestBuildCatalog_RecoversFromResolverPanic(t *testing.T) {
	resolver := ResolverFunc(func(zone string) (*time.Location, error) {
		if zone == "Boom" {
			panic("resolver exploded")
		}
		return IANAResolver{}.Resolve(zone)
	})

	catalog := BuildCatalog(
		WithZones([]string{"Boom", "UTC"}),
		WithResolver(resolver),
		WithInstant(summerInstant),
	)
	if diff := cmp.Diff([]string{"UTC"}, catalog.Values()); diff != "" {
		t.Fatalf("unexpected values (-want +got):\n%s", diff)
	}
}

func TestBuildCatalog_NotifiesObserver(t *testing.T) {
	var calls int
	var observed Report
	observer := ObserverFunc(func(report Report, elapsed time.Duration) {
		calls++
		observed = report
		if elapsed < 0 {
			t.Fatalf("expected non-negative elapsed time, got %v", elapsed)
		}
	})

	BuildCatalog(
		WithZones([]string{"UTC", "Nowhere/Special"}),
		WithInstant(summerInstant),
		WithObserver(observer),
	)

	if calls != 1 {
		t.Fatalf("expected 1 observer call, got %d", calls)
	}
	if len(observed.Catalog) != 1 || len(observed.Skipped) != 1 {
		t.Fatalf("unexpected observed report: %#v", observed)
	}
}

func TestCatalog_Lookup(t *testing.T) {
	catalog := BuildCatalog(WithZones([]string{"UTC", "Asia/Tokyo"}), WithInstant(summerInstant))

	entry, ok := catalog.Lookup("Asia/Tokyo")
	if !ok {
		t.Fatalf("expected Asia/Tokyo to be found")
	}
	if entry.HourOffset != 9 {
		t.Fatalf("expected offset 9, got %v", entry.HourOffset)
	}
	if _, ok := catalog.Lookup("Europe/Paris"); ok {
		t.Fatalf("did not expect Europe/Paris to be found")
	}
}

// assertLabelMatchesOffset parses the "(UTC±HH:MM)" prefix and compares it
// with HourOffset truncated to whole minutes.
func assertLabelMatchesOffset(t *testing.T, entry Entry) {
	t.Helper()

	prefix := "(UTC"
	if !strings.HasPrefix(entry.Name, prefix) {
		t.Fatalf("unexpected label %q", entry.Name)
	}
	rest := entry.Name[len(prefix):]
	end := strings.Index(rest, ") ")
	if end != 6 {
		t.Fatalf("unexpected label %q", entry.Name)
	}
	if rest[end+2:] != entry.Value {
		t.Fatalf("label %q does not end with %q", entry.Name, entry.Value)
	}

	offset := rest[:end]
	hours, err := strconv.Atoi(offset[1:3])
	if err != nil {
		t.Fatalf("bad hours in %q: %v", entry.Name, err)
	}
	minutes, err := strconv.Atoi(offset[4:6])
	if err != nil {
		t.Fatalf("bad minutes in %q: %v", entry.Name, err)
	}
	labelled := hours*60 + minutes
	if offset[0] == '-' {
		labelled = -labelled
	}

	actual := int(math.Trunc(entry.HourOffset * 60))
	if labelled != actual {
		t.Fatalf("label %q disagrees with hour offset %v", entry.Name, entry.HourOffset)
	}
}
