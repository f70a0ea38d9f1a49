// Package trend persists watcher counts as an append-only CSV with one dated
// row per run. The header grows as new symbols appear and never shrinks:
// once a symbol has a column it keeps it, blank on runs that don't observe it.
package trend

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"watchertracker/internal/fetcher"
)

// dateColumn is always the first header column.
const dateColumn = "date"

// IOError reports a filesystem failure on the trend file. It is fatal for
// the run; no partial row is ever left behind.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("trend file %s: %s: %v", e.Path, e.Op, e.Err)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *IOError) Unwrap() error {
	return e.Err
}

// Recorder merges one run's observations into the trend CSV at Path.
type Recorder struct {
	Path string

	// Now supplies the clock for the row's date column. Tests pin it.
	Now func() time.Time
}

// NewRecorder creates a Recorder writing to path, dated by the system clock.
func NewRecorder(path string) *Recorder {
	return &Recorder{Path: path, Now: time.Now}
}

// Record appends exactly one dated row for this run.
//
// If the trend file does not exist it is created with a header of "date"
// plus the observed symbols in order. If it exists, the header is read back
// and unioned with any symbols not seen before; when the header grows, the
// new contents (new header, prior data rows byte for byte, new row) land via
// a same-directory temp file and rename, so prior rows are never modified
// and a crash never leaves a torn line. When the header is unchanged the
// row is built in full and appended with a single write.
func (r *Recorder) Record(observations []fetcher.Observation) error {
	date := r.Now().Format("2006-01-02")

	data, err := os.ReadFile(r.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			return &IOError{Op: "read", Path: r.Path, Err: err}
		}
		header := reconcileHeader([]string{dateColumn}, observations)
		contents, err := marshalRecords(header, buildRow(header, date, observations))
		if err != nil {
			return &IOError{Op: "encode", Path: r.Path, Err: err}
		}
		if err := os.WriteFile(r.Path, contents, 0644); err != nil {
			return &IOError{Op: "create", Path: r.Path, Err: err}
		}
		return nil
	}

	headerLine, rest := splitHeader(data)
	existing, err := parseHeader(headerLine)
	if err != nil {
		return &IOError{Op: "parse header", Path: r.Path, Err: err}
	}

	header := reconcileHeader(existing, observations)
	rowLine, err := marshalRecords(buildRow(header, date, observations))
	if err != nil {
		return &IOError{Op: "encode", Path: r.Path, Err: err}
	}

	if len(header) == len(existing) {
		return r.appendRow(data, rowLine)
	}

	newHeaderLine, err := marshalRecords(header)
	if err != nil {
		return &IOError{Op: "encode", Path: r.Path, Err: err}
	}
	var out bytes.Buffer
	out.Write(newHeaderLine)
	out.Write(rest)
	if n := len(rest); n > 0 && rest[n-1] != '\n' {
		out.WriteByte('\n')
	}
	out.Write(rowLine)
	return r.replace(out.Bytes())
}

// appendRow adds the fully-built row line with one write call, so a failure
// cannot leave a truncated row on disk.
func (r *Recorder) appendRow(existing, rowLine []byte) error {
	buf := rowLine
	if n := len(existing); n > 0 && existing[n-1] != '\n' {
		buf = append([]byte{'\n'}, rowLine...)
	}

	f, err := os.OpenFile(r.Path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return &IOError{Op: "open", Path: r.Path, Err: err}
	}
	if _, err := f.Write(buf); err != nil {
		f.Close()
		return &IOError{Op: "append", Path: r.Path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "close", Path: r.Path, Err: err}
	}
	return nil
}

// replace atomically swaps in new file contents via a temp file and rename.
func (r *Recorder) replace(contents []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(r.Path), filepath.Base(r.Path)+".*")
	if err != nil {
		return &IOError{Op: "create temp", Path: r.Path, Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(contents); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &IOError{Op: "write temp", Path: r.Path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "close temp", Path: r.Path, Err: err}
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "chmod temp", Path: r.Path, Err: err}
	}
	if err := os.Rename(tmpName, r.Path); err != nil {
		os.Remove(tmpName)
		return &IOError{Op: "rename", Path: r.Path, Err: err}
	}
	return nil
}

// Load reads the trend file back as header plus data rows. Rows written
// before the header grew are shorter than the current header; missing
// trailing fields read as absent, equivalent to blank.
func Load(path string) (header []string, rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, &IOError{Op: "read", Path: path, Err: err}
	}
	if len(records) == 0 {
		return nil, nil, &IOError{Op: "read", Path: path, Err: fmt.Errorf("empty trend file")}
	}
	return records[0], records[1:], nil
}

// reconcileHeader returns the union of the existing header columns and this
// run's symbols. Existing columns keep their positions; unseen symbols are
// appended in first-seen run order. Columns are never removed.
func reconcileHeader(existing []string, observations []fetcher.Observation) []string {
	seen := make(map[string]bool, len(existing))
	for _, col := range existing {
		seen[col] = true
	}

	header := append([]string(nil), existing...)
	for _, obs := range observations {
		if !seen[obs.Symbol] {
			seen[obs.Symbol] = true
			header = append(header, obs.Symbol)
		}
	}
	return header
}

// buildRow constructs one run row aligned to header: the date first, then
// per symbol column the observed count, or an empty field when the symbol
// was absent this run or its fetch failed.
func buildRow(header []string, date string, observations []fetcher.Observation) []string {
	counts := make(map[string]int64, len(observations))
	for _, obs := range observations {
		if !obs.Present {
			continue
		}
		if _, ok := counts[obs.Symbol]; !ok {
			counts[obs.Symbol] = obs.Count
		}
	}

	row := make([]string, len(header))
	row[0] = date
	for i, col := range header[1:] {
		if count, ok := counts[col]; ok {
			row[i+1] = strconv.FormatInt(count, 10)
		}
	}
	return row
}

// splitHeader separates the header line (newline included, if present)
// from the data rows that follow it.
func splitHeader(data []byte) (line, rest []byte) {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return data[:i+1], data[i+1:]
	}
	return data, nil
}

// parseHeader decodes the header line and checks the date column leads it.
func parseHeader(line []byte) ([]string, error) {
	record, err := csv.NewReader(bytes.NewReader(line)).Read()
	if err != nil {
		return nil, fmt.Errorf("unreadable header: %w", err)
	}
	if record[0] != dateColumn {
		return nil, fmt.Errorf("first header column is %q, want %q", record[0], dateColumn)
	}
	return record, nil
}

// marshalRecords encodes records as CSV lines, each newline-terminated.
func marshalRecords(records ...[]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
