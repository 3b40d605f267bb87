package outreach

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Throttled is a Copywriter that shares one request rate across every call,
// for callers such as HTTP handlers that generate copy concurrently.
type Throttled struct {
	writer  Copywriter
	limiter *rate.Limiter
}

var _ Copywriter = (*Throttled)(nil)

// NewThrottled wraps writer. requestsPerSecond <= 0 disables throttling.
func NewThrottled(writer Copywriter, requestsPerSecond float64) *Throttled {
	return &Throttled{writer: writer, limiter: newLimiter(requestsPerSecond)}
}

func (t *Throttled) Opener(ctx context.Context, in OpenerInput) (string, error) {
	if err := t.wait(ctx); err != nil {
		return "", err
	}
	return t.writer.Opener(ctx, in)
}

func (t *Throttled) DeepDiveOpener(ctx context.Context, in DeepDiveInput) (string, error) {
	if err := t.wait(ctx); err != nil {
		return "", err
	}
	return t.writer.DeepDiveOpener(ctx, in)
}

func (t *Throttled) Subject(ctx context.Context, in SubjectInput) (string, error) {
	if err := t.wait(ctx); err != nil {
		return "", err
	}
	return t.writer.Subject(ctx, in)
}

func (t *Throttled) wait(ctx context.Context) error {
	return eris.Wrap(t.limiter.Wait(ctx), "outreach: rate limit")
}

func newLimiter(requestsPerSecond float64) *rate.Limiter {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return rate.NewLimiter(limit, 1)
}
