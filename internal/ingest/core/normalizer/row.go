package normalizer

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

type row struct {
	index map[string]int
	cells []string
}

// get reports the cell under column and whether the row carries it at all.
// A header the export lacks and a row cut short both read as absent.
func (r row) get(column string) (string, bool) {
	i, ok := r.index[column]
	if !ok || i >= len(r.cells) {
		return "", false
	}
	return r.cells[i], true
}

func (r row) required(column string) (string, error) {
	v, ok := r.get(column)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingColumn, column)
	}
	return v, nil
}

// requireAll fails on the first absent column, in argument order.
func (r row) requireAll(columns ...string) error {
	for _, c := range columns {
		if _, err := r.required(c); err != nil {
			return err
		}
	}
	return nil
}

// optional returns the trimmed cell, empty when absent.
func (r row) optional(column string) string {
	v, _ := r.get(column)
	return strings.TrimSpace(v)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseDate accepts the ISO-8601 shapes seen in channel exports. Values
// without an offset are read as UTC.
func parseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

// truncate cuts s to at most n characters without splitting a rune.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
