// Command tzcatalog lists, picks and serves the timezone catalog.
//
//	tzcatalog list  [-json] [-q query] [-limit n]
//	tzcatalog pick  [-default zone]
//	tzcatalog serve
//
// Every subcommand accepts -config, -env-file, -zones and -at.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goliatone/go-tzcatalog/components/timezones"
	"github.com/goliatone/go-tzcatalog/pkg/config"
	"github.com/goliatone/go-tzcatalog/pkg/locale"
	"github.com/goliatone/go-tzcatalog/pkg/prompt"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type command func(ctx context.Context, env *environment, args []string) error

var commands = map[string]command{
	"list":  runList,
	"pick":  runPick,
	"serve": runServe,
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		usage(stderr)
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "tzcatalog: unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}

	env := &environment{stdout: stdout, stderr: stderr, lookupEnv: os.LookupEnv}
	if err := cmd(ctx, env, args[1:]); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintf(stderr, "tzcatalog %s: %v\n", args[0], err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tzcatalog <list|pick|serve> [flags]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  list   print the catalog ordered by UTC offset")
	fmt.Fprintln(w, "  pick   choose a timezone interactively")
	fmt.Fprintln(w, "  serve  run the catalog API and selector page")
}

// environment carries what every subcommand shares.
type environment struct {
	stdout    io.Writer
	stderr    io.Writer
	lookupEnv func(string) (string, bool)
	// driver overrides the terminal prompt driver.
	driver prompt.Driver

	configPath string
	envFiles   stringList
	zonesFile  string
	at         string
}

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func (e *environment) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("tzcatalog "+name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fs.StringVar(&e.configPath, "config", "", "YAML configuration file")
	fs.Var(&e.envFiles, "env-file", "dotenv file, repeatable (default .env)")
	fs.StringVar(&e.zonesFile, "zones", "", "reference list overriding the embedded one")
	fs.StringVar(&e.at, "at", "", "evaluate offsets at this RFC 3339 instant instead of now")
	return fs
}

// load reads configuration and validates it.
func (e *environment) load() (config.Config, error) {
	files := []string(e.envFiles)
	if len(files) == 0 {
		files = []string{".env"}
	}
	cfg, err := config.LoadWith(e.configPath, e.lookupEnv, files...)
	if err != nil {
		return config.Config{}, err
	}
	if e.zonesFile != "" {
		cfg.ZonesFile = e.zonesFile
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// catalogOptions turns configuration and flags into catalog options.
func (e *environment) catalogOptions(cfg config.Config) ([]timezones.OptionFn, error) {
	fns, err := cfg.TimezoneOptions()
	if err != nil {
		return nil, err
	}
	if e.at != "" {
		instant, err := time.Parse(time.RFC3339, e.at)
		if err != nil {
			return nil, fmt.Errorf("parse -at: %w", err)
		}
		fns = append(fns, timezones.WithInstant(instant))
	}
	return fns, nil
}

// localeProvider prefers the configured locale over the POSIX variables.
func (e *environment) localeProvider(cfg config.Config) (locale.Provider, error) {
	if strings.TrimSpace(cfg.Locale) != "" {
		return locale.NewStatic(cfg.Locale)
	}
	return locale.FromEnv(e.lookupEnv), nil
}
