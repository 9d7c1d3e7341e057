package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
)

// RetryProvider resends failed completions with capped exponential
// backoff. Only failures that might go away are retried: rate limits,
// unavailable providers, and a single unreadable reply.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	log    logrus.FieldLogger
}

// WithRetry wraps p. log may be nil.
func WithRetry(p Provider, cfg RetryConfig, log logrus.FieldLogger) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 1
	}
	if log == nil {
		log = discardLogger()
	}
	return &RetryProvider{inner: p, config: cfg, log: log}
}

type retryVerdict int

const (
	giveUp retryVerdict = iota
	retryAgain
	retryOnce
)

func classify(err error) retryVerdict {
	var (
		rejected *ErrRejected
		invalid  *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return giveUp
	case errors.As(err, &rejected):
		return giveUp
	case errors.As(err, &invalid):
		return retryOnce
	default:
		return retryAgain
	}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		err          error
		resp         *Response
		invalidSeen  bool
		lastAttempt  = r.config.MaxAttempts - 1
		purposeField = PurposeFrom(ctx)
	)
	for attempt := 0; attempt <= lastAttempt; attempt++ {
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch classify(err) {
		case giveUp:
			return nil, err
		case retryOnce:
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		}
		if attempt == lastAttempt {
			break
		}

		wait := r.wait(attempt, err)
		r.log.WithError(err).WithFields(logrus.Fields{
			"purpose": purposeField,
			"attempt": attempt + 1,
			"wait":    wait.String(),
		}).Debug("Retrying completion")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, err
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// wait honors a server Retry-After, otherwise backs off from InitialWait
// by Multiplier per attempt up to MaxWait, with ±20% jitter.
func (r *RetryProvider) wait(attempt int, err error) time.Duration {
	var limited *ErrRateLimit
	if errors.As(err, &limited) && limited.RetryAfter > 0 {
		return limited.RetryAfter
	}

	d := float64(r.config.InitialWait)
	for range attempt {
		d *= r.config.Multiplier
		if r.config.MaxWait > 0 && d >= float64(r.config.MaxWait) {
			d = float64(r.config.MaxWait)
			break
		}
	}
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(d)
}
