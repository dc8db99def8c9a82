package timezones

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"strings"
	"sync"
)

//go:embed data/iana_timezones.txt
var dataFS embed.FS

const defaultListPath = "data/iana_timezones.txt"

var (
	defaultOnce  sync.Once
	defaultZones []string
	defaultErr   error
)

// DefaultZones returns a copy of the embedded reference list, in file order.
func DefaultZones() ([]string, error) {
	defaultOnce.Do(func() {
		f, err := OpenDefaultZones()
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		zones, err := LoadZones(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultZones = zones
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]string{}, defaultZones...), nil
}

// OpenDefaultZones opens the raw embedded reference list.
func OpenDefaultZones() (io.ReadCloser, error) {
	return dataFS.Open(defaultListPath)
}

// ZoneLine is a single identifier read from a reference list.
type ZoneLine struct {
	Line int
	Zone string
}

// ScanZones returns every identifier line in r, duplicates included.
func ScanZones(r io.Reader) ([]ZoneLine, error) {
	if r == nil {
		return nil, fmt.Errorf("timezones: missing reader")
	}

	scanner := bufio.NewScanner(r)
	lines := make([]ZoneLine, 0, 512)
	n := 0

	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, ZoneLine{Line: n, Zone: line})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// LoadZones reads a reference list, dropping comments, blank lines and
// repeated identifiers. Input order is kept: it is the catalog tie-break.
func LoadZones(r io.Reader) ([]string, error) {
	lines, err := ScanZones(r)
	if err != nil {
		return nil, err
	}

	zones := make([]string, 0, len(lines))
	seen := map[string]struct{}{}
	for _, line := range lines {
		if _, ok := seen[line.Zone]; ok {
			continue
		}
		seen[line.Zone] = struct{}{}
		zones = append(zones, line.Zone)
	}
	return zones, nil
}
