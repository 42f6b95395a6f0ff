package checker

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	maxLoggedBody = 512

	// maxRetryAfter caps server wait hints.
	maxRetryAfter = time.Hour
)

// retryAfterHeader returns the server-provided wait hint of a throttled response.
// Both delay-seconds (fractions allowed) and HTTP-date forms are accepted.
func retryAfterHeader(resp *http.Response) (time.Duration, bool) {
	if resp == nil || resp.Header == nil {
		return 0, false
	}

	retry := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if retry == "" {
		return 0, false
	}

	if seconds, err := strconv.ParseFloat(retry, 64); err == nil && seconds >= 0 {
		if seconds >= maxRetryAfter.Seconds() {
			return maxRetryAfter, true
		}
		return time.Duration(seconds * float64(time.Second)), true
	}
	if parsed, err := http.ParseTime(retry); err == nil {
		return min(max(time.Until(parsed), 0), maxRetryAfter), true
	}

	return 0, false
}

func readBodySnippet(resp *http.Response) string {
	if resp == nil || resp.Body == nil {
		return ""
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))
	return strings.TrimSpace(string(data))
}

func drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close() // nolint:errcheck // best-effort cleanup on HTTP response body
}
