// Package extract pulls eFPS benchmark tables out of colored log output and
// writes them as flat records.
package extract

import (
	"io"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// DefaultOutputFile is where results land when no path is configured.
const DefaultOutputFile = "benchmark_results.csv"

// Options holds the extraction options
type Options struct {
	Format Format
	Logger *zap.Logger
}

// ExtractToFile reads all of r, extracts benchmark records and writes them to
// outputPath, replacing any existing file.
func ExtractToFile(r io.Reader, outputPath string, opts Options) (stats *Stats, err error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	format := opts.Format
	if format == "" {
		format = FormatCSV
	}

	reader, err := NewLineReader(r)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	if reader.Compressed() {
		logger.Debug("Input is zstd compressed")
	}

	lines, err := reader.ReadAllLines()
	if err != nil {
		return nil, err
	}

	records, s := parse(lines, logger)

	writer, err := NewWriter(format, outputPath)
	if err != nil {
		return nil, err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(writer))

	if err := WriteRecords(writer, records); err != nil {
		return nil, err
	}

	return &s, nil
}

// WriteRecords writes records to w in order.
func WriteRecords(w RecordWriter, records []Record) error {
	for _, record := range records {
		if err := w.WriteRecord(record); err != nil {
			return err
		}
	}
	return nil
}
