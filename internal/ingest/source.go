package ingest

import (
	"fmt"

	"martcli/internal/config"
)

// DateFormat is the Go time layout used to parse a source's date column.
// The set is closed: a source is either month-first or day-first, selected
// by configuration, never sniffed per row.
type DateFormat string

const (
	// FormatMDY parses dates like 6/14/2023 (month/day/year, store 1 convention)
	FormatMDY DateFormat = "1/2/2006"
	// FormatDMY parses dates like 14/6/2023 (day/month/year, store 2 convention)
	FormatDMY DateFormat = "2/1/2006"
)

// Source describes one store export: where it lives and how its date
// column is encoded.
type Source struct {
	Name   string
	Path   string
	Format DateFormat
}

// SourceFromConfig builds a Source from its configuration entry.
func SourceFromConfig(sc config.SourceConfig) (Source, error) {
	var format DateFormat
	switch sc.DateLayout {
	case "mdy":
		format = FormatMDY
	case "dmy":
		format = FormatDMY
	default:
		return Source{}, fmt.Errorf("unknown date layout %q for source %s", sc.DateLayout, sc.Name)
	}

	return Source{
		Name:   sc.Name,
		Path:   sc.Path,
		Format: format,
	}, nil
}

// SourcesFromConfig builds the ordered source list. Store 1 always precedes
// store 2 so the unified sequence keeps a stable order across runs.
func SourcesFromConfig(sc config.SourcesConfig) ([]Source, error) {
	store1, err := SourceFromConfig(sc.Store1)
	if err != nil {
		return nil, err
	}
	store2, err := SourceFromConfig(sc.Store2)
	if err != nil {
		return nil, err
	}
	return []Source{store1, store2}, nil
}
