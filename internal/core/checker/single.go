package checker

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/namelens/mcname/internal/core"
)

const (
	// StrategySingle names a one-name check in reports.
	StrategySingle = "single"

	kindSingle = StrategySingle
)

// SingleChecker resolves one name with one lookup request. It never retries:
// a throttled lookup is reported as unknown.
type SingleChecker struct {
	Client  *Client
	Logger  Logger
	Metrics *Metrics
}

// Check returns the availability of name.
func (c *SingleChecker) Check(ctx context.Context, name string) core.Availability {
	if !core.IsLegal(name) {
		return core.AvailabilityIllegal
	}
	if ctx == nil {
		ctx = context.Background()
	}

	logger := loggerOrNop(c.Logger)

	resp, err := c.Client.LookupProfile(ctx, name)
	if err != nil {
		c.Metrics.observeLookup(kindSingle, 0)
		logger.Error("Profile lookup failed", zap.String("name", name), zap.Error(err))
		return core.AvailabilityUnknown
	}
	defer drain(resp)

	c.Metrics.observeLookup(kindSingle, resp.StatusCode)

	switch resp.StatusCode {
	case http.StatusOK:
		var profile Profile
		_ = json.NewDecoder(resp.Body).Decode(&profile)
		logger.Debug("Profile found",
			zap.String("name", name),
			zap.Int("status", resp.StatusCode),
			zap.String("profile_id", profile.ID),
			zap.String("profile_name", profile.Name))
		return core.AvailabilityUnavailable
	case http.StatusNotFound, http.StatusPaymentRequired:
		logger.Debug("Profile not found", zap.String("name", name), zap.Int("status", resp.StatusCode))
		return core.AvailabilityAvailable
	case http.StatusTooManyRequests:
		logger.Error("API rate limit exceeded", zap.String("name", name), zap.Int("status", resp.StatusCode))
		return core.AvailabilityUnknown
	default:
		logger.Error("Unexpected lookup status",
			zap.String("name", name),
			zap.Int("status", resp.StatusCode),
			zap.String("body", readBodySnippet(resp)))
		return core.AvailabilityUnknown
	}
}

// CheckOne is a convenience wrapper recording the result metric for a single check.
func (c *SingleChecker) CheckOne(ctx context.Context, name string) core.Availability {
	result := c.Check(ctx, name)
	c.Metrics.ObserveResults(result)
	return result
}
