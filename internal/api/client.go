package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	logrus "github.com/sirupsen/logrus"

	"traveling_help/internal/middleware"
)

// Client calls the backend REST API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for baseURL (e.g. http://localhost:5000/api).
// A zero timeout keeps the transport default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Register creates a driver account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) Result[AuthData] {
	return call[AuthData](ctx, c, http.MethodPost, "/auth/register", "", req)
}

// Login authenticates a driver by email or mobile.
func (c *Client) Login(ctx context.Context, req LoginRequest) Result[AuthData] {
	return call[AuthData](ctx, c, http.MethodPost, "/auth/login", "", req)
}

// ListPosts fetches one page of the public listing.
func (c *Client) ListPosts(ctx context.Context, q ListQuery) Result[PostPage] {
	params := url.Values{}
	params.Set("page", strconv.Itoa(max(q.Page, 1)))
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.From != "" {
		params.Set("from", q.From)
	}
	if q.To != "" {
		params.Set("to", q.To)
	}
	return call[PostPage](ctx, c, http.MethodGet, "/posts?"+params.Encode(), "", nil)
}

// MyPosts lists the posts owned by the token's driver.
func (c *Client) MyPosts(ctx context.Context, token string) Result[[]Post] {
	return call[[]Post](ctx, c, http.MethodGet, "/posts/driver/my-posts", token, nil)
}

// CreatePost publishes a new ride.
func (c *Client) CreatePost(ctx context.Context, token string, in PostInput) Result[Post] {
	return call[Post](ctx, c, http.MethodPost, "/posts", token, in)
}

// UpdatePost replaces the ride with the given id.
func (c *Client) UpdatePost(ctx context.Context, token, id string, in PostInput) Result[Post] {
	return call[Post](ctx, c, http.MethodPut, "/posts/"+url.PathEscape(id), token, in)
}

// DeletePost removes the ride with the given id.
func (c *Client) DeletePost(ctx context.Context, token, id string) Result[struct{}] {
	return call[struct{}](ctx, c, http.MethodDelete, "/posts/"+url.PathEscape(id), token, nil)
}

func call[T any](ctx context.Context, c *Client, method, path, token string, body any) Result[T] {
	start := time.Now()
	log := logrus.WithFields(logrus.Fields{"method": method, "path": path, "request_id": middleware.RequestIDFrom(ctx)})

	req, err := c.newRequest(ctx, method, path, token, body)
	if err != nil {
		log.WithError(err).Error("api: could not build request")
		return Unreachable[T](0)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("api: backend unreachable")
		return Unreachable[T](0)
	}
	defer resp.Body.Close()

	log = log.WithFields(logrus.Fields{"status": resp.StatusCode, "took": time.Since(start)})

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).Warn("api: failed reading response")
		return Unreachable[T](resp.StatusCode)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.WithError(err).Warn("api: malformed response envelope")
		return Unreachable[T](resp.StatusCode)
	}
	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		log.WithField("message", env.Message).Info("api: call rejected")
		return Rejected[T](resp.StatusCode, env.Message)
	}

	var v T
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &v); err != nil {
			log.WithError(err).Warn("api: malformed response data")
			return Unreachable[T](resp.StatusCode)
		}
	}
	log.Debug("api: call succeeded")
	r := Ok(v)
	r.Status = resp.StatusCode
	return r
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body any) (*http.Request, error) {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if rid := middleware.RequestIDFrom(ctx); rid != "" {
		req.Header.Set(middleware.HeaderXRequestID, rid)
	}
	return req, nil
}
