package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/temirkanov/avito-watch/internal/avito"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printItemsTable(items []avito.Item) error {
	if len(items) == 0 {
		fmt.Println("No listings found.")
		return nil
	}

	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tTITLE\tPRICE\tLOCATION\n")
	for i := range items {
		tw.writef("%s\t%s\t%.2f\t%s\n",
			items[i].ID,
			truncate(items[i].Title, 40),
			items[i].Price,
			items[i].Location,
		)
	}
	return tw.finish()
}

func printCategoriesTable(categories []avito.Category) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\n")
	for i := range categories {
		tw.writef("%d\t%s\n", categories[i].ID, categories[i].Name)
	}
	return tw.finish()
}

func printLocationsTable(locations []avito.Location) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\n")
	for i := range locations {
		tw.writef("%d\t%s\n", locations[i].ID, locations[i].Name)
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
