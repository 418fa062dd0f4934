// Package outwriter renders rankings, leaderboards and table rows as text
// tables, JSON, CSV or Parquet.
package outwriter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Format is an output encoding.
type Format string

const (
	TextOut    Format = "text"
	JSONOut    Format = "json"
	CSVOut     Format = "csv"
	ParquetOut Format = "parquet"
)

// ParseFormat validates a user-supplied output format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case TextOut, JSONOut, CSVOut, ParquetOut:
		return f, nil
	case "":
		return TextOut, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s. Must be text, json, csv, or parquet", s)
	}
}

// Options controls a single write.
type Options struct {
	Format     Format
	OutputFile string
	// Limit bounds the number of entries written; 0 means all.
	Limit int
}

var errParquetRows = errors.New("parquet output is only available for metric rankings and the leaderboard")

// LeaderColor highlights the first-ranked shop in text tables.
var LeaderColor = color.New(color.FgGreen, color.Bold)

// ConfigureColor applies a color mode of auto, yes or no.
func ConfigureColor(mode string) {
	switch strings.ToLower(mode) {
	case "yes", "always", "true":
		color.NoColor = false
	case "no", "never", "false":
		color.NoColor = true
	default:
		color.NoColor = !IsTerminal(os.Stdout)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// selectOutputFile returns stdout for an empty path, otherwise a new file.
func selectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := selectOutputFile(outputFile)
	if err != nil {
		return err
	}
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "✓ %s to %s\n", successMsg, outputFile)
	}
	return nil
}

func limit[T any](items []T, n int) []T {
	if n <= 0 || n >= len(items) {
		return items
	}
	return items[:n]
}
