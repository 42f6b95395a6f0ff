package checker

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/namelens/mcname/internal/core"
)

func TestConcurrentCheckerPreservesInputOrder(t *testing.T) {
	const total = 50

	// Later names answer first so completion order is the reverse of submission order.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		index, err := strconv.Atoi(strings.TrimPrefix(name, "user_"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		time.Sleep(time.Duration(total-index) * time.Millisecond)
		switch index % 3 {
		case 0:
			w.WriteHeader(http.StatusOK)
			_, _ = fmt.Fprintf(w, `{"id":"%d","name":%q}`, index, name)
		case 1:
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusTooManyRequests)
		}
	}))
	defer server.Close()

	names := make([]string, total)
	want := make([]core.Availability, total)
	for i := range names {
		names[i] = fmt.Sprintf("user_%d", i)
		switch i % 3 {
		case 0:
			want[i] = core.AvailabilityUnavailable
		case 1:
			want[i] = core.AvailabilityAvailable
		default:
			want[i] = core.AvailabilityUnknown
		}
	}

	progress := &countingProgress{}
	checker := &ConcurrentChecker{
		Single:   &SingleChecker{Client: &Client{HTTP: server.Client(), LookupURL: server.URL}},
		Workers:  total,
		Progress: progress,
	}

	results := checker.CheckAll(context.Background(), names)
	require.Equal(t, want, results)
	require.Equal(t, int64(total), progress.total)
}

func TestConcurrentCheckerIllegalNamesSkipNetwork(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	checker := &ConcurrentChecker{
		Single: &SingleChecker{Client: &Client{HTTP: server.Client(), LookupURL: server.URL}},
	}

	results := checker.CheckAll(context.Background(), []string{"no", "valid_name", "in valid", strings.Repeat("z", 17)})
	require.Equal(t, []core.Availability{
		core.AvailabilityIllegal,
		core.AvailabilityAvailable,
		core.AvailabilityIllegal,
		core.AvailabilityIllegal,
	}, results)
	require.Equal(t, int32(1), calls.Load())
}

func TestConcurrentCheckerBoundsWorkers(t *testing.T) {
	var inFlight, peak atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current := inFlight.Add(1)
		for {
			old := peak.Load()
			if current <= old || peak.CompareAndSwap(old, current) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	names := make([]string, 20)
	for i := range names {
		names[i] = fmt.Sprintf("bounded_%d", i)
	}

	checker := &ConcurrentChecker{
		Single:  &SingleChecker{Client: &Client{HTTP: server.Client(), LookupURL: server.URL}},
		Workers: 2,
	}
	results := checker.CheckAll(context.Background(), names)
	require.Len(t, results, len(names))
	require.LessOrEqual(t, peak.Load(), int32(2))
}

func TestConcurrentCheckerEmptyInput(t *testing.T) {
	checker := &ConcurrentChecker{Single: &SingleChecker{}}
	require.Empty(t, checker.CheckAll(context.Background(), nil))
}

func TestStrategiesShareContract(t *testing.T) {
	strategies := []Strategy{
		&BatchChecker{},
		&ConcurrentChecker{Single: &SingleChecker{}},
	}
	require.Equal(t, StrategyBatch, strategies[0].Name())
	require.Equal(t, StrategyConcurrent, strategies[1].Name())

	for _, strategy := range strategies {
		names := []string{"!", "?", "x"}
		results := strategy.CheckAll(context.Background(), names)
		require.Len(t, results, len(names))
		for _, result := range results {
			require.Equal(t, core.AvailabilityIllegal, result)
		}
	}
}
