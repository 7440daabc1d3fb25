// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pollclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sethgrid/pester"

	"github.com/danielhkuo/quickly-poll/models"
)

// MaxAttempts is the initial request plus three retries
const MaxAttempts = 4

// DefaultBackoff waits 1s, 2s, then 4s between attempts
func DefaultBackoff(retry int) time.Duration {
	return time.Second << (retry - 1)
}

// StatusError is a non-2xx response from the API
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("poll API returned %d", e.StatusCode)
	}
	return fmt.Sprintf("poll API returned %d: %s", e.StatusCode, e.Message)
}

// Client reads polls from the API, retrying network failures and 5xx
// responses
type Client struct {
	baseURL string
	token   string
	http    *pester.Client
}

type Option func(*Client)

// WithBackoff replaces the delay between attempts
func WithBackoff(b pester.BackoffStrategy) Option {
	return func(c *Client) { c.http.Backoff = b }
}

// WithToken sends a session token as a Bearer header
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout bounds each attempt
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func New(baseURL string, opts ...Option) *Client {
	hc := pester.New()
	hc.MaxRetries = MaxAttempts
	hc.Backoff = DefaultBackoff

	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    hc,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListPolls returns one page of public polls, newest first
func (c *Client) ListPolls(ctx context.Context, skip, limit int) ([]models.PollWithOptions, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	var resp models.ListPollsResponse
	if err := c.get(ctx, "/polls?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Polls, nil
}

func (c *Client) GetPoll(ctx context.Context, id string) (models.PollWithOptions, error) {
	var resp models.PollResponse
	if err := c.get(ctx, "/polls/"+url.PathEscape(id), &resp); err != nil {
		return models.PollWithOptions{}, err
	}
	return resp.Poll, nil
}

func (c *Client) GetResults(ctx context.Context, id string) (models.ResultsResponse, error) {
	var resp models.ResultsResponse
	if err := c.get(ctx, "/polls/"+url.PathEscape(id)+"/results", &resp); err != nil {
		return models.ResultsResponse{}, err
	}
	return resp, nil
}

func (c *Client) get(ctx context.Context, path string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return errors.Wrapf(err, "GET %s failed", path)
	}
	defer resp.Body.Close()

	// The last 5xx comes back without an error once retries run out
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &StatusError{StatusCode: resp.StatusCode}
		var body models.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&body) == nil {
			serr.Message = body.Message
			if serr.Message == "" {
				serr.Message = body.Error
			}
		}
		return serr
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrapf(err, "failed to decode %s", path)
	}
	return nil
}
