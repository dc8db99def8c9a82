// Command tzcatalog-lint checks timezone reference lists for repeated and
// unresolvable identifiers. With no arguments it checks the embedded list.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-tzcatalog/components/timezones"
)

const embeddedName = "<embedded>"

type violation struct {
	file    string
	line    int
	message string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [paths...]\n", fs.Name())
		fmt.Fprintf(fs.Output(), "\nLint timezone reference lists for duplicate and unknown identifiers.\n")
	}
	quiet := fs.Bool("q", false, "print nothing when the lists are clean")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{embeddedName}
	}

	var (
		violations []violation
		checked    int
	)
	for _, path := range paths {
		linted, n, err := lintFile(path, timezones.IANAResolver{})
		if err != nil {
			fmt.Fprintf(stderr, "lint %s: %v\n", path, err)
			return 1
		}
		checked += n
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.SliceStable(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				return violations[i].line < violations[j].line
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(stderr, "%s:%d: %s\n", v.file, v.line, v.message)
		}
		return 1
	}

	if !*quiet {
		fmt.Fprintf(stdout, "%d identifiers in %d file(s), no problems found\n", checked, len(paths))
	}
	return 0
}

func lintFile(path string, resolver timezones.Resolver) ([]violation, int, error) {
	var (
		r   io.ReadCloser
		err error
	)
	if path == embeddedName {
		r, err = timezones.OpenDefaultZones()
	} else {
		r, err = os.Open(path)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = r.Close() }()

	lines, err := timezones.ScanZones(r)
	if err != nil {
		return nil, 0, fmt.Errorf("scan: %w", err)
	}
	return lintLines(path, lines, resolver), len(lines), nil
}

func lintLines(file string, lines []timezones.ZoneLine, resolver timezones.Resolver) []violation {
	var result []violation
	firstSeen := make(map[string]int, len(lines))
	for _, line := range lines {
		if first, ok := firstSeen[line.Zone]; ok {
			result = append(result, violation{
				file:    file,
				line:    line.Line,
				message: fmt.Sprintf("duplicate identifier %q (first on line %d)", line.Zone, first),
			})
			continue
		}
		firstSeen[line.Zone] = line.Line

		if _, err := resolver.Resolve(line.Zone); err != nil {
			result = append(result, violation{
				file:    file,
				line:    line.Line,
				message: fmt.Sprintf("unresolvable identifier %q: %v", line.Zone, err),
			})
		}
	}
	return result
}
