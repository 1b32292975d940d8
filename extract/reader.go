package extract

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

const maxLineSize = 16 * 1024 * 1024

var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// LineReader reads log text line by line, decompressing zstd input transparently.
type LineReader struct {
	decoder *zstd.Decoder
	scanner *bufio.Scanner
}

// NewLineReader creates a new reader over r
func NewLineReader(r io.Reader) (*LineReader, error) {
	br := bufio.NewReader(r)

	var src io.Reader = br
	var decoder *zstd.Decoder
	magic, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if bytes.Equal(magic, zstdMagic) {
		decoder, err = zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		src = decoder
	}

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &LineReader{
		decoder: decoder,
		scanner: scanner,
	}, nil
}

// Compressed reports whether the input was zstd encoded.
func (r *LineReader) Compressed() bool {
	return r.decoder != nil
}

// ReadLine returns the next line without its terminator, or io.EOF.
func (r *LineReader) ReadLine() (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

// ReadAllLines reads every remaining line
func (r *LineReader) ReadAllLines() ([]string, error) {
	var lines []string
	for {
		line, err := r.ReadLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Close releases the decoder, if any. The underlying reader is not closed.
func (r *LineReader) Close() error {
	if r.decoder != nil {
		r.decoder.Close()
		r.decoder = nil
	}
	return nil
}
