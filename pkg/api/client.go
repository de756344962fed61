// Package api is a thin client for the portal's REST endpoints: jobs,
// bookmarks and the learner's job profile.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Dicklesworthstone/skillport/pkg/model"
)

// DefaultTimeout bounds every request.
const DefaultTimeout = 5 * time.Second

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 4 << 10

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
}

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// Client talks to the portal API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client. token may be empty for anonymous access.
func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// Authenticated reports whether the client carries a token.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// Jobs returns the job listing.
func (c *Client) Jobs(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	if err := c.do(ctx, http.MethodGet, "/jobs", nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// Bookmarks returns the authenticated user's bookmarks.
func (c *Client) Bookmarks(ctx context.Context) ([]model.Bookmark, error) {
	var bms []model.Bookmark
	if err := c.do(ctx, http.MethodGet, "/bookmarks", nil, &bms); err != nil {
		return nil, err
	}
	return bms, nil
}

// AddBookmark creates a bookmark.
func (c *Client) AddBookmark(ctx context.Context, bm model.Bookmark) error {
	return c.do(ctx, http.MethodPost, "/bookmarks", bm, nil)
}

// RemoveBookmark deletes a bookmark. Removing a missing bookmark succeeds.
func (c *Client) RemoveBookmark(ctx context.Context, bm model.Bookmark) error {
	path := "/bookmarks/" + url.PathEscape(string(bm.Type)) + "/" + url.PathEscape(bm.TargetID)
	err := c.do(ctx, http.MethodDelete, path, nil, nil)
	if IsNotFound(err) {
		return nil
	}
	return err
}

// JobProfile fetches the profile. A 404 means no profile exists yet and is
// returned as (nil, nil).
func (c *Client) JobProfile(ctx context.Context) (*model.JobProfile, error) {
	var p model.JobProfile
	err := c.do(ctx, http.MethodGet, "/job-profile", nil, &p)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveJobProfile creates or updates the profile and returns the stored copy.
func (c *Client) SaveJobProfile(ctx context.Context, p model.JobProfile) (*model.JobProfile, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var saved model.JobProfile
	if err := c.do(ctx, http.MethodPut, "/job-profile", p, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteJobProfile removes the profile. Deleting a missing profile succeeds.
func (c *Client) DeleteJobProfile(ctx context.Context) error {
	err := c.do(ctx, http.MethodDelete, "/job-profile", nil, nil)
	if IsNotFound(err) {
		return nil
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: string(msg)}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
