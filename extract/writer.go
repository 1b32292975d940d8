package extract

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"

	"go.uber.org/multierr"
)

// CSVWriter writes records to a .csv file
type CSVWriter struct {
	filename string
	file     *os.File
	csv      *csv.Writer
	count    int
}

// NewCSVWriter creates (or truncates) filename and writes the header row.
func NewCSVWriter(filename string) (*CSVWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create file %s: %w", filename, err)
	}

	w := &CSVWriter{
		filename: filename,
		file:     file,
		csv:      csv.NewWriter(file),
	}
	if err := w.csv.Write(Columns); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	return w, nil
}

// WriteRecord appends one row
func (w *CSVWriter) WriteRecord(r Record) error {
	if err := w.csv.Write(r.fields()); err != nil {
		return fmt.Errorf("failed to write record %d: %w", w.count+1, err)
	}
	w.count++
	return nil
}

// RecordCount returns the number of records written
func (w *CSVWriter) RecordCount() int {
	return w.count
}

// Close flushes buffered rows and closes the file.
func (w *CSVWriter) Close() (err error) {
	if w.file == nil {
		return nil
	}
	w.csv.Flush()
	if ferr := w.csv.Error(); ferr != nil {
		err = fmt.Errorf("failed to flush %s: %w", w.filename, ferr)
	}
	if cerr := w.file.Close(); cerr != nil {
		err = multierr.Append(err, fmt.Errorf("failed to close %s: %w", w.filename, cerr))
	}
	w.file = nil
	return err
}

// JSONWriter collects records and writes them as a JSON array on Close
type JSONWriter struct {
	filename string
	records  []Record
}

// NewJSONWriter creates a new writer for .json files
func NewJSONWriter(filename string) *JSONWriter {
	return &JSONWriter{
		filename: filename,
		records:  make([]Record, 0),
	}
}

// WriteRecord adds a record to the output
func (w *JSONWriter) WriteRecord(r Record) error {
	w.records = append(w.records, r)
	return nil
}

// RecordCount returns the number of records written
func (w *JSONWriter) RecordCount() int {
	return len(w.records)
}

// Close writes all records to the file
func (w *JSONWriter) Close() (err error) {
	file, err := os.Create(w.filename)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", w.filename, err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(file))

	bw := bufio.NewWriter(file)
	encoder := json.NewEncoder(bw)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(w.records); err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", w.filename, err)
	}
	return nil
}

// NewWriter opens a RecordWriter for the given format.
func NewWriter(format Format, filename string) (RecordWriter, error) {
	switch format {
	case FormatCSV:
		w, err := NewCSVWriter(filename)
		if err != nil {
			return nil, err
		}
		return w, nil
	case FormatJSON:
		return NewJSONWriter(filename), nil
	}
	return nil, fmt.Errorf("unsupported output format: %s", format)
}
