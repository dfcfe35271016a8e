// Coursematch - Remedial Course Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursematch

package courseinfo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/coursematch/internal/cache"
	"github.com/tomtom215/coursematch/internal/config"
	"github.com/tomtom215/coursematch/internal/metrics"
)

// ErrNotFound is returned by Fetch when the service has no such course.
var ErrNotFound = errors.New("course info not found")

// maxBodyBytes caps the response body read from the service.
const maxBodyBytes = 1 << 20

// cacheCapacity bounds the number of cached course IDs.
const cacheCapacity = 10000

// defaultRetryDelay is the first backoff when course_info.retry_delay is unset.
const defaultRetryDelay = 200 * time.Millisecond

// Fetch results recorded in course_info_fetches_total.
const (
	resultSuccess  = "success"
	resultNotFound = "not_found"
	resultError    = "error"
	resultRejected = "rejected"
)

// Fetcher looks up course details by ID. The catalog enricher depends on
// this interface so tests can substitute a fake.
type Fetcher interface {
	Lookup(ctx context.Context, courseID string) Info
}

var _ Fetcher = (*Client)(nil)

// statusError is a non-200, non-404 reply from the service.
type statusError struct {
	StatusCode int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("course info returned status %d", e.StatusCode)
}

// Client talks to the course-info service.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	limiter       *rate.Limiter
	breaker       *gobreaker.CircuitBreaker[Info]
	cache         *cache.Cache[Info]
	retryAttempts int
	retryDelay    time.Duration
	logger        zerolog.Logger
}

// NewClient builds a client from the course_info config section.
func NewClient(cfg config.CourseInfoConfig, logger zerolog.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("course info base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid course info base URL: %w", err)
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}

	logger = logger.With().Str("component", "courseinfo").Logger()

	return &Client{
		baseURL:       base,
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		limiter:       rate.NewLimiter(limit, burst),
		breaker:       newBreaker(logger),
		cache:         cache.New[Info](cacheCapacity, cfg.CacheTTL),
		retryAttempts: max(cfg.RetryAttempts, 0),
		retryDelay:    retryDelay,
		logger:        logger,
	}, nil
}

// Cache exposes the response cache so its cleanup loop can be supervised.
func (c *Client) Cache() *cache.Cache[Info] {
	return c.cache
}

// Lookup returns the details of courseID, or an empty Info when the course
// is unknown or the service cannot be reached. Failures are logged.
func (c *Client) Lookup(ctx context.Context, courseID string) Info {
	info, err := c.Fetch(ctx, courseID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		c.logger.Warn().Err(err).Str("course_id", courseID).Msg("Course info lookup failed")
	}
	return info
}

// Fetch returns the details of courseID. A missing course yields
// ErrNotFound and is cached as empty so it is not requested again until
// the entry expires.
func (c *Client) Fetch(ctx context.Context, courseID string) (Info, error) {
	courseID = strings.TrimSpace(courseID)
	if courseID == "" {
		return Info{}, errors.New("course id is required")
	}

	if info, ok := c.cache.Get(courseID); ok {
		metrics.RecordCourseInfoCache(true)
		if info.IsEmpty() {
			return info, ErrNotFound
		}
		return info, nil
	}
	metrics.RecordCourseInfoCache(false)

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.RecordCourseInfoFetch(resultRejected, 0)
		return Info{}, fmt.Errorf("course info rate limit: %w", err)
	}

	start := time.Now()
	info, err := c.fetchWithRetry(ctx, courseID)

	switch {
	case err == nil:
		metrics.RecordCourseInfoFetch(resultSuccess, time.Since(start))
		c.cache.Set(courseID, info)
		return info, nil
	case errors.Is(err, ErrNotFound):
		metrics.RecordCourseInfoFetch(resultNotFound, time.Since(start))
		c.cache.Set(courseID, Info{})
		return Info{}, err
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordCourseInfoFetch(resultRejected, 0)
		return Info{}, err
	default:
		metrics.RecordCourseInfoFetch(resultError, time.Since(start))
		return Info{}, err
	}
}

// fetchWithRetry runs get through the breaker, retrying transient failures
// with exponential backoff. Every attempt counts towards the breaker.
func (c *Client) fetchWithRetry(ctx context.Context, courseID string) (Info, error) {
	delay := c.retryDelay
	var lastErr error

	for attempt := 0; attempt <= c.retryAttempts; attempt++ {
		if attempt > 0 {
			c.logger.Debug().
				Err(lastErr).
				Str("course_id", courseID).
				Int("attempt", attempt).
				Dur("delay", delay).
				Msg("Retrying course info fetch")
			select {
			case <-ctx.Done():
				return Info{}, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		info, err := c.breaker.Execute(func() (Info, error) {
			return c.get(ctx, courseID)
		})
		recordBreakerResult(err)
		if err == nil || !retryable(ctx, err) {
			return info, err
		}
		lastErr = err
	}

	return Info{}, fmt.Errorf("all %d attempts failed: %w", c.retryAttempts+1, lastErr)
}

// retryable reports whether err may succeed on a later attempt: transport
// failures, 429 and 5xx replies.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, gobreaker.ErrOpenState),
		errors.Is(err, gobreaker.ErrTooManyRequests):
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusTooManyRequests || se.StatusCode >= 500
	}
	var de *decodeError
	return !errors.As(err, &de)
}

func (c *Client) get(ctx context.Context, courseID string) (Info, error) {
	endpoint := c.baseURL + "/v1/course-info/" + url.PathEscape(courseID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return Info{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Info{}, fmt.Errorf("course info request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Info{}, fmt.Errorf("failed to read course info response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Info{}, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return Info{}, &statusError{StatusCode: resp.StatusCode}
	}

	info, err := decodeInfo(body)
	if err != nil {
		return Info{}, err
	}
	if info.IsEmpty() {
		return Info{}, ErrNotFound
	}
	return info, nil
}
