package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-tzcatalog/components/timezones"
)

func runList(ctx context.Context, env *environment, args []string) error {
	fs := env.flagSet("list")
	asJSON := fs.Bool("json", false, "print JSON instead of a table")
	query := fs.String("q", "", "only list entries matching this search")
	limit := fs.Int("limit", 0, "maximum entries when searching (default from config)")
	strict := fs.Bool("strict", false, "fail when identifiers were skipped")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := env.load()
	if err != nil {
		return err
	}
	fns, err := env.catalogOptions(cfg)
	if err != nil {
		return err
	}

	opts := timezones.NewOptions(fns...)
	report := timezones.BuildReportWithOptions(opts)
	if *strict {
		if err := report.Err(); err != nil {
			return err
		}
	}

	catalog := report.Catalog
	if *query != "" {
		catalog = timezones.Search(catalog, *query, *limit, opts)
	}

	if *asJSON {
		if catalog == nil {
			catalog = timezones.Catalog{}
		}
		enc := json.NewEncoder(env.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(catalog)
	}

	tw := tabwriter.NewWriter(env.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OFFSET\tHOURS\tZONE")
	for _, entry := range catalog {
		offset, _, _ := strings.Cut(strings.TrimPrefix(entry.Name, "("), ")")
		fmt.Fprintf(tw, "%s\t%g\t%s\n", offset, entry.HourOffset, entry.Value)
	}
	return tw.Flush()
}
