package refresh

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/docidx"
	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond is the default per-domain request rate.
const DefaultRequestsPerSecond = 1

var _ docidx.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-domain rate limiting using token buckets.
// It creates a separate rate limiter for each domain, allowing concurrent
// requests to different domains while enforcing rate limits within each domain.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a new DomainLimiter with the specified requests per second limit.
// Each domain gets its own limiter with a burst of 1 (no bursting allowed).
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// Ensure LimitedFetcher implements docidx.Fetcher at compile time.
var _ docidx.Fetcher = (*LimitedFetcher)(nil)

// LimitedFetcher waits on a DomainLimiter before every remote fetch.
// Local paths are fetched without waiting.
type LimitedFetcher struct {
	fetcher docidx.Fetcher
	limiter docidx.DomainLimiter
}

// NewLimitedFetcher wraps fetcher with limiter.
func NewLimitedFetcher(fetcher docidx.Fetcher, limiter docidx.DomainLimiter) *LimitedFetcher {
	return &LimitedFetcher{fetcher: fetcher, limiter: limiter}
}

// Fetch waits for the domain of rawURL, then fetches it.
func (f *LimitedFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if domain := Domain(rawURL); domain != "" {
		if err := f.limiter.Wait(ctx, domain); err != nil {
			return "", err
		}
	}
	return f.fetcher.Fetch(ctx, rawURL)
}

// Close closes the wrapped fetcher.
func (f *LimitedFetcher) Close() error {
	return f.fetcher.Close()
}

// Domain returns the host of an http(s) URL, or "" for anything else.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return u.Host
}
