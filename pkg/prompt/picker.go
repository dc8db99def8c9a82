// Package prompt picks a timezone interactively from a catalog.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-tzcatalog/components/timezones"
	"github.com/goliatone/go-tzcatalog/pkg/locale"
)

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoMatch is returned when every search attempt came back empty.
	ErrNoMatch = errors.New("prompt: no matching timezone")
	// ErrEmptyCatalog is returned when there is nothing to pick from.
	ErrEmptyCatalog = errors.New("prompt: empty catalog")
)

const (
	defaultAttempts = 3
	defaultPageSize = 15
)

// Picker narrows a catalog with a search prompt, then offers the matches in
// a select prompt.
type Picker struct {
	Driver  Driver
	Catalog timezones.Catalog
	Options timezones.Options
	// Messages holds translated prompt strings keyed by locale message id.
	Messages map[string]string
	// Default preselects this identifier when it is among the matches.
	Default  string
	Attempts int
	PageSize int
}

// PickZone runs the prompts and returns the chosen entry. An empty search
// offers the whole catalog.
func (p Picker) PickZone(ctx context.Context) (timezones.Entry, error) {
	if p.Driver == nil {
		return timezones.Entry{}, errors.New("prompt: missing driver")
	}
	if len(p.Catalog) == 0 {
		return timezones.Entry{}, ErrEmptyCatalog
	}

	attempts := p.Attempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	opts := timezones.NewOptions(func(o *timezones.Options) { *o = p.Options })

	for i := 0; i < attempts; i++ {
		query, err := p.Driver.Input(ctx, InputConfig{
			Message: p.text(locale.MsgSearch),
			Help:    "Matches names and offsets, e.g. tokyo or +05:30",
		})
		if err != nil {
			return timezones.Entry{}, err
		}

		matches := p.Catalog
		if strings.TrimSpace(query) != "" {
			matches = timezones.Search(p.Catalog, query, len(p.Catalog), opts)
		}
		if len(matches) == 0 {
			if err := p.Driver.Info(ctx, fmt.Sprintf("%s: %q", p.text(locale.MsgEmpty), query)); err != nil {
				return timezones.Entry{}, err
			}
			continue
		}
		return p.choose(ctx, matches)
	}
	return timezones.Entry{}, ErrNoMatch
}

func (p Picker) choose(ctx context.Context, matches timezones.Catalog) (timezones.Entry, error) {
	labels := make([]string, len(matches))
	defaultIndex := 0
	for i, entry := range matches {
		labels[i] = entry.Name
		if entry.Value == p.Default {
			defaultIndex = i
		}
	}

	pageSize := p.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	idx, err := p.Driver.Select(ctx, SelectConfig{
		Message:      p.text(locale.MsgLabel),
		Options:      labels,
		DefaultIndex: defaultIndex,
		PageSize:     pageSize,
	})
	if err != nil {
		return timezones.Entry{}, err
	}
	if idx < 0 || idx >= len(matches) {
		return timezones.Entry{}, fmt.Errorf("prompt: selection %d out of range", idx)
	}
	return matches[idx], nil
}

func (p Picker) text(id string) string {
	if msg := strings.TrimSpace(p.Messages[id]); msg != "" {
		return msg
	}
	return locale.DefaultText(id)
}
