package timezones

import (
	"errors"
	"fmt"
	"strings"
	"time"

	// Embedded zone database so resolution does not depend on the host.
	_ "time/tzdata"
)

// ErrUnsupportedZone matches every *UnsupportedZoneError via errors.Is.
var ErrUnsupportedZone = errors.New("timezones: unsupported zone")

// UnsupportedZoneError reports an identifier the resolver could not load.
type UnsupportedZoneError struct {
	Zone string
	Err  error
}

func (e *UnsupportedZoneError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("timezones: unsupported zone %q: %v", e.Zone, e.Err)
	}
	return fmt.Sprintf("timezones: unsupported zone %q", e.Zone)
}

func (e *UnsupportedZoneError) Unwrap() error { return e.Err }

func (e *UnsupportedZoneError) Is(target error) bool { return target == ErrUnsupportedZone }

// Resolver turns an identifier into a location.
type Resolver interface {
	Resolve(zone string) (*time.Location, error)
}

// ResolverFunc adapts a plain function to Resolver.
type ResolverFunc func(zone string) (*time.Location, error)

func (fn ResolverFunc) Resolve(zone string) (*time.Location, error) { return fn(zone) }

// IANAResolver loads identifiers from the IANA database. The empty name and
// "Local" are rejected: they describe the host, not a zone.
type IANAResolver struct{}

func (IANAResolver) Resolve(zone string) (*time.Location, error) {
	name := strings.TrimSpace(zone)
	if name == "" || name == "Local" {
		return nil, &UnsupportedZoneError{Zone: zone}
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &UnsupportedZoneError{Zone: zone, Err: err}
	}
	return loc, nil
}

// FormatOffset renders an offset in seconds east of UTC as ±HH:MM.
func FormatOffset(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return fmt.Sprintf("%c%02d:%02d", sign, seconds/3600, (seconds%3600)/60)
}

// HourOffset converts an offset in seconds east of UTC to hours.
func HourOffset(seconds int) float64 {
	return float64(seconds) / 3600
}

// ZoneOffset returns the offset of loc at instant, in seconds east of UTC.
func ZoneOffset(loc *time.Location, instant time.Time) int {
	_, offset := instant.In(loc).Zone()
	return offset
}
