package timezones

import (
	"sort"
	"strings"
)

// Option is the value/label pair a select input consumes.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Search filters catalog entries whose name contains query (case-insensitive).
// Entries whose identifier starts with the query come first; catalog order is
// kept otherwise.
func Search(catalog Catalog, query string, limit int, opts Options) Catalog {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			if len(catalog) <= limit {
				return append(Catalog{}, catalog...)
			}
			return append(Catalog{}, catalog[:limit]...)
		}
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]matchedEntry, 0, 32)
	for _, entry := range catalog {
		if !strings.Contains(strings.ToLower(entry.Name), q) {
			continue
		}
		matches = append(matches, matchedEntry{
			entry:    entry,
			isPrefix: strings.HasPrefix(strings.ToLower(entry.Value), q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].isPrefix && !matches[j].isPrefix
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make(Catalog, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.entry)
	}
	return out
}

func SearchOptions(catalog Catalog, query string, limit int, opts Options) []Option {
	results := Search(catalog, query, limit, opts)
	if len(results) == 0 {
		return nil
	}
	return results.Options()
}

// Options maps entries to select options, labelled with the entry name.
func (c Catalog) Options() []Option {
	out := make([]Option, 0, len(c))
	for _, entry := range c {
		out = append(out, Option{Value: entry.Value, Label: entry.Name})
	}
	return out
}

type matchedEntry struct {
	entry    Entry
	isPrefix bool
}
