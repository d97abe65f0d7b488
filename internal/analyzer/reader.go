package analyzer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/nglogan/nglogan/internal/models"
)

// ErrErrorRateExceeded is returned by RecordReader.Err when the fraction of
// unparseable lines in a fully scanned file is over the configured
// threshold. It usually means the file is in a different log format.
var ErrErrorRateExceeded = errors.New("parse error rate exceeds threshold")

const (
	// progressInterval is how many lines are read between parse_progress
	// events.
	progressInterval = 100_000

	// maxLineSize caps a single log line at 1MB.
	maxLineSize = 1024 * 1024

	gzipSuffix = ".gz"
)

// RecordReader streams parsed records out of a single access log file,
// plain or gzipped. It is a single-pass, forward-only reader in the shape
// of bufio.Scanner: call Scan until it returns false, then check Err.
// Unparseable lines are counted and skipped; the error-rate check runs
// once the file is exhausted, so Err reports ErrErrorRateExceeded only
// with complete counts.
type RecordReader struct {
	path      string
	threshold float64

	file    *os.File
	gz      *gzip.Reader
	scanner *bufio.Scanner

	record     models.LogRecord
	totalLines int
	errorLines int
	err        error
	done       bool
}

// NewRecordReader opens the log file at path. The caller must call Close.
// errorThreshold is the tolerated fraction of unparseable lines in [0, 1].
func NewRecordReader(path string, errorThreshold float64) (*RecordReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	var src io.Reader = file
	var gz *gzip.Reader
	if strings.HasSuffix(path, gzipSuffix) {
		gz, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to open gzip log file %s: %w", path, err)
		}
		src = gz
	}

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	return &RecordReader{
		path:      path,
		threshold: errorThreshold,
		file:      file,
		gz:        gz,
		scanner:   scanner,
	}, nil
}

// Scan advances to the next parseable record. It returns false when the
// file is exhausted or a read error occurred; the caller must then check
// Err.
func (r *RecordReader) Scan() bool {
	if r.done {
		return false
	}

	for r.scanner.Scan() {
		r.totalLines++

		record, ok := ParseLine(r.scanner.Text())
		if !ok {
			r.errorLines++
		}

		if r.totalLines%progressInterval == 0 {
			slog.Info("parse_progress",
				"total_lines", r.totalLines,
				"error_lines", r.errorLines,
			)
		}

		if ok {
			r.record = record
			return true
		}
	}

	r.finish()
	return false
}

// Record returns the record produced by the last successful Scan.
func (r *RecordReader) Record() models.LogRecord {
	return r.record
}

// Err returns the first error encountered while streaming: a read failure,
// or ErrErrorRateExceeded after a fully scanned file with too many
// unparseable lines.
func (r *RecordReader) Err() error {
	return r.err
}

// TotalLines returns the number of lines read so far.
func (r *RecordReader) TotalLines() int {
	return r.totalLines
}

// ErrorLines returns the number of unparseable lines seen so far.
func (r *RecordReader) ErrorLines() int {
	return r.errorLines
}

// Close releases the underlying file handle. It is safe to call after a
// failed Scan.
func (r *RecordReader) Close() error {
	if r.gz != nil {
		r.gz.Close()
	}
	return r.file.Close()
}

func (r *RecordReader) finish() {
	r.done = true

	if err := r.scanner.Err(); err != nil {
		slog.Error("parse_error", "error", err.Error(), "file", r.path)
		r.err = fmt.Errorf("failed to read log file %s: %w", r.path, err)
		return
	}

	if r.totalLines > 0 {
		errorRate := float64(r.errorLines) / float64(r.totalLines)
		if errorRate > r.threshold {
			slog.Error("error_threshold_exceeded",
				"error_rate", errorRate,
				"threshold", r.threshold,
				"total_lines", r.totalLines,
				"error_lines", r.errorLines,
			)
			r.err = fmt.Errorf("%w: error rate %.2f over threshold %.2f in %s",
				ErrErrorRateExceeded, errorRate, r.threshold, r.path)
			return
		}
	}

	successRate := 1.0
	if r.totalLines > 0 {
		successRate = 1 - float64(r.errorLines)/float64(r.totalLines)
	}
	slog.Info("parse_complete",
		"total_lines", r.totalLines,
		"error_lines", r.errorLines,
		"success_rate", successRate,
	)
}
