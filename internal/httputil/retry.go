// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for the figshare client.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// RetryBaseDelay is the first backoff after an HTTP 429. Tests override it
// to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// MaxRetryDelay caps any single wait, including one requested by the
// server through Retry-After.
var MaxRetryDelay = 60 * time.Second

const defaultMaxRetries = 3

// DoWithRetry sends req and resends it while the server answers HTTP 429
// (Too Many Requests). Other statuses and transport errors are returned
// immediately; only rate-limit responses are retried.
//
// The wait before attempt n is RetryBaseDelay * 2^n, unless the response
// carries a Retry-After header in seconds, which takes precedence. Both are
// capped at MaxRetryDelay. When maxRetries is 0 the default (3) is used.
// If ctx ends during a wait the function returns ctx.Err(). After the last
// retry the final 429 response is returned for the caller to inspect.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, log logrus.FieldLogger) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		wait := backoff(attempt, resp.Header.Get("Retry-After"))
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if log != nil {
			log.WithFields(logrus.Fields{
				"url":     req.URL.Redacted(),
				"attempt": attempt + 1,
				"max":     maxRetries,
				"wait":    wait.String(),
			}).Warn("rate limited by search API, retrying")
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// backoff returns the wait before the next attempt.
func backoff(attempt int, retryAfter string) time.Duration {
	wait := RetryBaseDelay << attempt
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
		wait = time.Duration(secs) * time.Second
	}
	if wait > MaxRetryDelay {
		wait = MaxRetryDelay
	}
	return wait
}
