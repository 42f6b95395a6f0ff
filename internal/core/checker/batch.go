package checker

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/namelens/mcname/internal/core"
)

const (
	kindBatch = "batch"

	// StrategyBatch names the grouped-request strategy.
	StrategyBatch = "batch"
)

// BatchConfig controls chunking, retries and pacing of batch lookups.
type BatchConfig struct {
	// Size is the maximum number of names per request.
	Size int
	// MaxRetries bounds the retries that follow the first request of a chunk.
	MaxRetries int
	// BaseWait is the first exponential backoff step.
	BaseWait time.Duration
	// MaxJitter bounds the random delay added to every backoff.
	MaxJitter time.Duration
	// Delay is the pause between chunks.
	Delay time.Duration
}

// DefaultBatchConfig returns the pacing the profile API tolerates.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		Size:       10,
		MaxRetries: 5,
		BaseWait:   time.Second,
		MaxJitter:  500 * time.Millisecond,
		Delay:      100 * time.Millisecond,
	}
}

// BatchChecker groups legal names into chunks and resolves each chunk with one
// request, retrying throttled and failed transports with exponential backoff.
type BatchChecker struct {
	Client   *Client
	Config   BatchConfig
	Logger   Logger
	Metrics  *Metrics
	Progress Progress

	// Sleep waits between attempts and chunks. Defaults to a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
	// Jitter returns a random duration in [0, max). Defaults to math/rand.
	Jitter func(max time.Duration) time.Duration
}

// Name implements Strategy.
func (c *BatchChecker) Name() string {
	return StrategyBatch
}

// CheckAll implements Strategy.
func (c *BatchChecker) CheckAll(ctx context.Context, names []string) []core.Availability {
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]core.Availability, len(names))
	size := c.config().Size
	pending := false

	for start := 0; start < len(names); start += size {
		end := min(start+size, len(names))
		chunk := names[start:end]

		legal := make([]string, 0, len(chunk))
		for i, name := range chunk {
			if !core.IsLegal(name) {
				results[start+i] = core.AvailabilityIllegal
				advance(c.Progress, 1)
				continue
			}
			legal = append(legal, name)
		}
		if len(legal) == 0 {
			continue
		}

		if pending {
			_ = c.sleep(ctx, c.config().Delay)
		}
		pending = true

		profiles, ok := c.resolveChunk(ctx, legal)
		if !ok {
			for i := range chunk {
				if results[start+i] != core.AvailabilityIllegal {
					results[start+i] = core.AvailabilityUnknown
				}
			}
			advance(c.Progress, len(legal))
			continue
		}

		found := make(map[string]struct{}, len(profiles))
		for _, profile := range profiles {
			found[strings.ToLower(profile.Name)] = struct{}{}
		}
		for i, name := range chunk {
			if results[start+i] == core.AvailabilityIllegal {
				continue
			}
			if _, taken := found[strings.ToLower(name)]; taken {
				results[start+i] = core.AvailabilityUnavailable
			} else {
				results[start+i] = core.AvailabilityAvailable
			}
		}
		advance(c.Progress, len(legal))
	}

	c.Metrics.ObserveResults(results...)
	return results
}

type retryAction int

const (
	actionSucceed retryAction = iota
	actionRetry
	actionAbandon
)

// attemptOutcome is the decision taken after one request of a chunk.
type attemptOutcome struct {
	action   retryAction
	reason   string
	status   int
	wait     time.Duration
	hinted   bool
	err      error
	body     string
	profiles []Profile
}

// resolveChunk sends legal names until the API answers, a non-retryable
// status arrives or retries run out. It reports whether profiles are valid.
func (c *BatchChecker) resolveChunk(ctx context.Context, legal []string) ([]Profile, bool) {
	maxRetries := c.config().MaxRetries

	for attempt := 0; attempt <= maxRetries; attempt++ {
		outcome := c.attempt(ctx, legal, attempt)
		c.observe(legal, attempt, outcome)

		switch outcome.action {
		case actionSucceed:
			return outcome.profiles, true
		case actionAbandon:
			return nil, false
		}

		if attempt == maxRetries {
			break
		}
		if err := c.sleep(ctx, outcome.wait); err != nil {
			loggerOrNop(c.Logger).Warn("Batch backoff interrupted", zap.Strings("names", legal), zap.Error(err))
			return nil, false
		}
	}

	c.Metrics.observeExhausted()
	loggerOrNop(c.Logger).Error("Batch retries exhausted",
		zap.Strings("names", legal),
		zap.Int("max_retries", maxRetries))
	return nil, false
}

// attempt performs one request and decides what to do next.
func (c *BatchChecker) attempt(ctx context.Context, legal []string, attempt int) attemptOutcome {
	if err := ctx.Err(); err != nil {
		return attemptOutcome{action: actionAbandon, reason: "cancelled", err: err}
	}

	resp, err := c.Client.LookupProfiles(ctx, legal)
	if err != nil {
		if ctx.Err() != nil {
			return attemptOutcome{action: actionAbandon, reason: "cancelled", err: err}
		}
		return attemptOutcome{action: actionRetry, reason: "transport", err: err, wait: c.backoff(attempt)}
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		var profiles []Profile
		if err := json.NewDecoder(resp.Body).Decode(&profiles); err != nil {
			return attemptOutcome{action: actionAbandon, reason: "decode", status: resp.StatusCode, err: fmt.Errorf("decode profiles: %w", err)}
		}
		return attemptOutcome{action: actionSucceed, status: resp.StatusCode, profiles: profiles}
	case http.StatusTooManyRequests:
		if wait, ok := retryAfterHeader(resp); ok {
			return attemptOutcome{action: actionRetry, reason: "throttled", status: resp.StatusCode, wait: wait, hinted: true}
		}
		return attemptOutcome{action: actionRetry, reason: "throttled", status: resp.StatusCode, wait: c.backoff(attempt)}
	case http.StatusBadRequest:
		return attemptOutcome{action: actionAbandon, reason: "bad_request", status: resp.StatusCode}
	default:
		return attemptOutcome{action: actionAbandon, reason: "unexpected_status", status: resp.StatusCode, body: readBodySnippet(resp)}
	}
}

// observe logs and counts an attempt outcome without influencing the decision.
func (c *BatchChecker) observe(legal []string, attempt int, outcome attemptOutcome) {
	logger := loggerOrNop(c.Logger)
	c.Metrics.observeLookup(kindBatch, outcome.status)

	switch outcome.action {
	case actionSucceed:
		logger.Debug("Batch resolved",
			zap.Int("attempt", attempt),
			zap.Int("requested", len(legal)),
			zap.Int("found", len(outcome.profiles)))
	case actionRetry:
		c.Metrics.observeRetry(outcome.reason, outcome.wait.Seconds())
		fields := []zap.Field{
			zap.String("reason", outcome.reason),
			zap.Int("attempt", attempt),
			zap.Duration("wait", outcome.wait),
			zap.Bool("retry_after", outcome.hinted),
			zap.Strings("names", legal),
		}
		if outcome.err != nil {
			fields = append(fields, zap.Error(outcome.err))
		}
		logger.Warn("Batch request throttled or failed, backing off", fields...)
	case actionAbandon:
		c.Metrics.observeAbandoned(outcome.reason)
		fields := []zap.Field{
			zap.String("reason", outcome.reason),
			zap.Int("status", outcome.status),
			zap.Strings("names", legal),
		}
		if outcome.body != "" {
			fields = append(fields, zap.String("body", outcome.body))
		}
		if outcome.err != nil {
			fields = append(fields, zap.Error(outcome.err))
		}
		logger.Error("Batch request abandoned", fields...)
	}
}

// maxBackoff caps the exponential part of a backoff.
const maxBackoff = time.Hour

// backoff returns BaseWait * 2^attempt plus jitter, the exponential part capped at maxBackoff.
func (c *BatchChecker) backoff(attempt int) time.Duration {
	cfg := c.config()
	wait := maxBackoff
	if attempt >= 0 && attempt < 32 && cfg.BaseWait <= maxBackoff>>attempt {
		wait = cfg.BaseWait << attempt
	}
	return wait + c.jitter(cfg.MaxJitter)
}

func (c *BatchChecker) jitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	if c.Jitter != nil {
		return c.Jitter(max)
	}
	return rand.N(max)
}

func (c *BatchChecker) sleep(ctx context.Context, d time.Duration) error {
	if c.Sleep != nil {
		return c.Sleep(ctx, d)
	}
	return sleepContext(ctx, d)
}

func (c *BatchChecker) config() BatchConfig {
	cfg := c.Config
	defaults := DefaultBatchConfig()
	if cfg == (BatchConfig{}) {
		return defaults
	}
	if cfg.Size <= 0 {
		cfg.Size = defaults.Size
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return cfg
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
