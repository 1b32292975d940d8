package extract

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Record is one benchmark row attributed to the version it was reported under.
// Percentiles are kept exactly as they appeared in the table.
type Record struct {
	Version   string `json:"version"`
	Benchmark string `json:"benchmark"`
	P50       string `json:"eFPS p50"`
	P75       string `json:"eFPS p75"`
	P90       string `json:"eFPS p90"`
}

// Columns is the fixed output column order.
var Columns = []string{"version", "benchmark", "eFPS p50", "eFPS p75", "eFPS p90"}

func (r Record) fields() []string {
	return []string{r.Version, r.Benchmark, r.P50, r.P75, r.P90}
}

// RecordWriter persists records in input order.
type RecordWriter interface {
	WriteRecord(Record) error
	RecordCount() int
	Close() error
}

// Format selects the output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat resolves a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("invalid format '%s'. Valid formats: csv, json", s)
}

// Label is the human readable name used in the completion message.
func (f Format) Label() string {
	return strings.ToUpper(string(f))
}

// Stats summarises a single extraction run.
type Stats struct {
	Lines   int
	Records int
	// Versions counts marker lines that changed the current version.
	Versions         int
	SkippedHeader    int
	SkippedSynthetic int
	SkippedNoVersion int
}
