package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"

	"github.com/drebelsky/xdr-ls/index"
)

// styles holds the color formatters for human-readable output. The
// --no-color flag and the NO_COLOR environment variable disable them
// globally.
type styles struct {
	name    *color.Color
	loc     *color.Color
	heading *color.Color
	count   *color.Color
}

func newStyles() *styles {
	return &styles{
		name:    color.New(color.Bold, color.FgHiBlue),
		loc:     color.New(color.FgHiGreen),
		heading: color.New(color.Bold),
		count:   color.New(color.FgYellow),
	}
}

func writeHumanReport(w io.Writer, stats index.Stats, snap index.Snapshot, elapsed time.Duration) error {
	s := newStyles()

	s.heading.Fprintln(w, "Indexed workspace")
	fmt.Fprintf(w, "  files: %d (%d indexed, %d skipped)\n", stats.Files, stats.Indexed, stats.Skipped)
	fmt.Fprintf(w, "  names: %d defined, %d references\n", stats.Definitions, stats.References)
	fmt.Fprintf(w, "  elapsed: %s\n", elapsed.Round(time.Millisecond))

	names := make([]string, 0, len(snap.Definitions))
	for name := range snap.Definitions {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) > 0 {
		fmt.Fprintln(w)
		s.heading.Fprintln(w, "Definitions")
	}
	for _, name := range names {
		loc := snap.Definitions[name]
		fmt.Fprintf(w, "  %s %s (%s)\n",
			s.name.Sprint(name),
			s.loc.Sprint(loc),
			s.count.Sprintf("%d refs", len(snap.References[name])))
	}
	return nil
}

type jsonReport struct {
	Stats     index.Stats    `json:"stats"`
	ElapsedMS int64          `json:"elapsed_ms"`
	Index     index.Snapshot `json:"index"`
}

func writeJSONReport(w io.Writer, stats index.Stats, snap index.Snapshot, elapsed time.Duration) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{Stats: stats, ElapsedMS: elapsed.Milliseconds(), Index: snap})
}

func writeQueryResult(w io.Writer, name string, def index.Location, hasDef bool, refs []index.Location, hasRefs bool) error {
	if !hasDef && !hasRefs {
		return fmt.Errorf("name not found: %s", name)
	}
	s := newStyles()

	if hasDef {
		fmt.Fprintf(w, "%s defined at %s\n", s.name.Sprint(name), s.loc.Sprint(def))
	} else {
		fmt.Fprintf(w, "%s has no definition\n", s.name.Sprint(name))
	}
	if hasRefs {
		fmt.Fprintf(w, "%s:\n", s.heading.Sprintf("%d references", len(refs)))
		for _, loc := range refs {
			fmt.Fprintf(w, "  %s\n", s.loc.Sprint(loc))
		}
	} else {
		fmt.Fprintln(w, "no references")
	}
	return nil
}
