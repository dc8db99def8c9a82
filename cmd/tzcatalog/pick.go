package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-tzcatalog/components/timezones"
	"github.com/goliatone/go-tzcatalog/pkg/locale"
	"github.com/goliatone/go-tzcatalog/pkg/prompt"
)

func runPick(ctx context.Context, env *environment, args []string) error {
	fs := env.flagSet("pick")
	def := fs.String("default", "", "preselect this identifier")
	verbose := fs.Bool("v", false, "print the full label instead of the identifier")
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
	provider, err := env.localeProvider(cfg)
	if err != nil {
		return err
	}
	tr, err := locale.NewTranslator()
	if err != nil {
		return err
	}

	driver := env.driver
	if driver == nil {
		driver = prompt.NewSurveyDriver(env.stderr)
	}

	opts := timezones.NewOptions(fns...)
	picker := prompt.Picker{
		Driver:   driver,
		Catalog:  timezones.BuildReportWithOptions(opts).Catalog,
		Options:  opts,
		Messages: tr.Messages(provider.CurrentLocale()),
		Default:  *def,
	}

	entry, err := picker.PickZone(ctx)
	if errors.Is(err, prompt.ErrAborted) {
		return nil
	}
	if err != nil {
		return err
	}

	if *verbose {
		_, err = fmt.Fprintln(env.stdout, entry.Name)
		return err
	}
	_, err = fmt.Fprintln(env.stdout, entry.Value)
	return err
}
