// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"
)

// RateLimitPause is how long DoOnce waits after an HTTP 429 response before
// handing control back. Tests override this to avoid real sleeps.
var RateLimitPause = 1 * time.Second

// ErrRateLimited is returned by DoOnce when the server answered HTTP 429.
var ErrRateLimited = errors.New("rate limited (HTTP 429)")

// DoOnce executes an HTTP request exactly once. On HTTP 429 (Too Many
// Requests) the body is drained and closed, the caller is held for
// RateLimitPause, and ErrRateLimited is returned. The request is never
// retried; callers decide how to degrade.
//
// If the context is cancelled during the pause the function returns
// ctx.Err(). Any other status is returned to the caller unchanged.
func DoOnce(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusTooManyRequests {
		return resp, nil
	}

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(RateLimitPause):
	}
	return nil, ErrRateLimited
}
