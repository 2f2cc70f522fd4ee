// Package render produces the plain-text console output of plz: the task
// listing, per-task help boxes, and environment variable listings. It writes
// to a caller-supplied io.Writer and has no knowledge of tasks or the
// registry beyond the row data handed to it.
package render

import (
	"fmt"
	"io"
	"sort"
)

// ListRow is one line of the task listing.
type ListRow struct {
	Name        string
	Description string
	Default     bool
}

// TaskList renders the aligned name/description table of registered tasks.
func TaskList(w io.Writer, rows []ListRow) {
	width := 0
	for _, r := range rows {
		if len(r.Name) > width {
			width = len(r.Name)
		}
	}

	fmt.Fprintln(w, "Tasks:")
	for _, r := range rows {
		desc := r.Description
		if r.Default {
			if desc != "" {
				desc += " "
			}
			desc += "(default)"
		}
		fmt.Fprintf(w, "  %-*s  %s\n", width, r.Name, desc)
	}
}

// Box renders a titled section of key/value rows, optionally sorted by key.
// Empty sections still render their title so the user sees the section was
// consulted.
func Box(w io.Writer, title string, rows [][2]string, sortRows bool) {
	if sortRows {
		sorted := make([][2]string, len(rows))
		copy(sorted, rows)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i][0] < sorted[j][0] })
		rows = sorted
	}

	fmt.Fprintf(w, "%s:\n", title)
	if len(rows) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	width := 0
	for _, r := range rows {
		if len(r[0]) > width {
			width = len(r[0])
		}
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %-*s  %s\n", width, r[0], r[1])
	}
}
