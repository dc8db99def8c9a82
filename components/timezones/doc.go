// Package timezones builds an offset-sorted catalog of IANA timezones for
// selector inputs, plus search helpers and a small net/http handler that
// serves the catalog as JSON.
//
// Every entry is labelled "(UTC±HH:MM) Zone/Name" and carries its current
// offset in hours. Identifiers the resolver rejects are left out of the
// catalog; BuildReport exposes them for diagnostics. The reference list is
// embedded from data/iana_timezones.txt.
package timezones
