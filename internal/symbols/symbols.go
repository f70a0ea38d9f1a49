// Package symbols loads the list of ticker symbols to track from a
// newline-delimited text file.
package symbols

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ConfigError reports a missing or unreadable symbols file. It is fatal for
// the run: no fetch happens and the trend file is left untouched.
type ConfigError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("symbols file %s: %v", e.Path, e.Err)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Load reads ticker symbols from the file at path, one per line.
// Blank lines are skipped, `#` starts a comment (whole line or suffix),
// surrounding whitespace is trimmed and entries are uppercased.
// Order is preserved and duplicates are kept as listed; fetching a symbol
// twice is idempotent, so callers need not deduplicate.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	defer f.Close()

	var syms []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		syms = append(syms, strings.ToUpper(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	return syms, nil
}
