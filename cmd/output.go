package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

// resultPrinter writes command results as an aligned table or as JSON
type resultPrinter struct {
	out  io.Writer
	json bool
}

func newResultPrinter(out io.Writer, format string) (*resultPrinter, error) {
	switch strings.ToLower(format) {
	case "", "table":
		return &resultPrinter{out: out}, nil
	case "json":
		return &resultPrinter{out: out, json: true}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (want table or json)", format)
}

// print renders v as JSON, or as a table with the given header and rows
func (p *resultPrinter) print(v any, header []string, rows [][]string) error {
	if p.json {
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	if len(rows) == 0 {
		_, err := fmt.Fprintln(p.out, "No results.")
		return err
	}

	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// printCount prints a single record count
func (p *resultPrinter) printCount(count int) error {
	if p.json {
		return p.print(map[string]int{"record_count": count}, nil, nil)
	}
	_, err := fmt.Fprintf(p.out, "%d records\n", count)
	return err
}

func str(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func timeStr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func floatStr(f *float64, precision int) string {
	if f == nil {
		return "-"
	}
	return strconv.FormatFloat(*f, 'f', precision, 64)
}

func coord(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}
