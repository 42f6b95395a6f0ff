package output

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/namelens/mcname/internal/core"
)

// SaveAvailable writes every name whose code is Available to path, one per
// line, creating missing parent directories. It returns the number of names written.
func SaveAvailable(path string, names []string, codes []core.Availability) (int, error) {
	if path == "" {
		return 0, errors.New("output path is required")
	}
	if len(names) != len(codes) {
		return 0, fmt.Errorf("names and codes differ in length: %d != %d", len(names), len(codes))
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer file.Close() // nolint:errcheck

	writer := bufio.NewWriter(file)
	written := 0
	for i, name := range names {
		if codes[i] != core.AvailabilityAvailable {
			continue
		}
		if _, err := writer.WriteString(name + "\n"); err != nil {
			return written, err
		}
		written++
	}
	if err := writer.Flush(); err != nil {
		return written, err
	}
	return written, file.Sync()
}
