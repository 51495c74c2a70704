package vision

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"veridoc/internal/port"
)

// circuitState tracks rate-limit backoff for a single gateway.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackGateway tries gateways in order, advancing to the next one only
// when the current one is rate limited. Any other failure is returned to the
// caller as is. It implements port.ModelGateway.
type FallbackGateway struct {
	gateways []port.ModelGateway
	circuits []*circuitState
	names    []string
}

// NewFallbackGateway creates a FallbackGateway from an ordered list of gateways and their names.
func NewFallbackGateway(gateways []port.ModelGateway, names []string) *FallbackGateway {
	circuits := make([]*circuitState, len(gateways))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackGateway{
		gateways: gateways,
		circuits: circuits,
		names:    names,
	}
}

func (f *FallbackGateway) Classify(ctx context.Context, input port.ClassifyInput) (*port.ClassifyOutput, error) {
	return runFallback(ctx, f, func(gw port.ModelGateway) (*port.ClassifyOutput, error) {
		return gw.Classify(ctx, input)
	})
}

func (f *FallbackGateway) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	return runFallback(ctx, f, func(gw port.ModelGateway) (*port.ExtractOutput, error) {
		return gw.Extract(ctx, input)
	})
}

// runFallback walks the gateway list, skipping open circuits, opening
// circuits on rate limits, and bailing out on any other error.
func runFallback[T any](ctx context.Context, f *FallbackGateway, call func(port.ModelGateway) (*T, error)) (*T, error) {
	now := time.Now()
	var earliestReset time.Time

	for i, gw := range f.gateways {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			log.Printf("vision.FallbackGateway: skipping %s (circuit open until %s)", f.names[i], resetAt.Format(time.RFC3339))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		out, err := call(gw)
		if err == nil {
			return out, nil
		}

		var rlErr *RateLimitError
		if !errors.As(err, &rlErr) {
			// Only rate limits justify burning tokens on another provider.
			return nil, err
		}

		log.Printf("vision.FallbackGateway: %s rate limited, retry after %s", f.names[i], rlErr.RetryAfter)
		resetAt := now.Add(rlErr.RetryAfter)
		f.circuits[i].open(resetAt)
		if earliestReset.IsZero() || resetAt.Before(earliestReset) {
			earliestReset = resetAt
		}
	}

	// Every gateway was rate limited or skipped with an open circuit.
	retryAfter := time.Until(earliestReset)
	if retryAfter < 0 {
		retryAfter = time.Second
	}
	return nil, NewRateLimitError("all", fmt.Errorf("all providers rate limited"), int(retryAfter.Seconds()))
}
