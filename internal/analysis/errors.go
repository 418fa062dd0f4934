package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedFormat is returned when the file extension is not one of .csv, .xlsx or .xls.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// LoadError indicates that a file with a supported extension could not be read.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e == nil {
		return "load failed"
	}
	if e.Err == nil {
		return fmt.Sprintf("load %s failed", e.Path)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// CleaningError lists required columns absent from the input table.
type CleaningError struct {
	Missing []string
}

func (e *CleaningError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}
