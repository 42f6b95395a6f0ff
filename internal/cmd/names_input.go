package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/namelens/mcname/internal/core/checker"
)

// ErrNamesFileNotFound is returned when a list file exists neither at the
// given path nor next to the executable.
var ErrNamesFileNotFound = errors.New("names file not found")

// executableDir is swapped in tests.
var executableDir = func() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// loadNames resolves path and reads its names.
func loadNames(path string, logger checker.Logger) ([]string, error) {
	resolved, err := resolveNamesPath(path, logger)
	if err != nil {
		return nil, err
	}
	return readNamesFile(resolved)
}

// resolveNamesPath returns path when it exists, otherwise the same relative
// path under the executable's directory.
func resolveNamesPath(path string, logger checker.Logger) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty path", ErrNamesFileNotFound)
	}
	if trimmed == "-" || fileExists(trimmed) {
		return trimmed, nil
	}
	if filepath.IsAbs(trimmed) {
		return "", fmt.Errorf("%w: %s", ErrNamesFileNotFound, trimmed)
	}

	dir, err := executableDir()
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNamesFileNotFound, trimmed)
	}
	candidate := filepath.Join(dir, trimmed)
	if !fileExists(candidate) {
		return "", fmt.Errorf("%w: %s", ErrNamesFileNotFound, trimmed)
	}

	if logger != nil {
		logger.Warn("Names file not found in working directory, using executable directory",
			zap.String("requested", trimmed),
			zap.String("path", candidate))
	}
	return candidate, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// readNamesFile reads one name per line. Lines are kept verbatim, blank and
// padded ones included, so results line up with the file; the checkers report
// anything that is not a valid name as illegal.
func readNamesFile(path string) ([]string, error) {
	var reader io.Reader
	if path == "-" {
		reader = os.Stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrNamesFileNotFound, path)
			}
			return nil, err
		}
		defer file.Close() // nolint:errcheck
		reader = file
	}
	return scanNames(reader)
}

func scanNames(reader io.Reader) ([]string, error) {
	names := make([]string, 0)
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		names = append(names, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
