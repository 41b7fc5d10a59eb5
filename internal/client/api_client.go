// Package client talks to the moments HTTP API and keeps a local mirror of
// the activity list for interactive front ends.
package client

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

	"moments/internal/models/request_models"
	"moments/internal/models/response_models"
	"moments/pkg/utils"
)

// API is the activity surface State depends on.
type API interface {
	List(ctx context.Context) ([]response_models.ActivityResponse, error)
	Create(ctx context.Context, req request_models.ActivityRequest) (*response_models.ActivityResponse, error)
	Update(ctx context.Context, req request_models.ActivityRequest) (*response_models.ActivityResponse, error)
	Delete(ctx context.Context, id uint) error
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	TraceID string
}

func (e *APIError) Error() string {
	if e.TraceID != "" {
		return fmt.Sprintf("api error %d: %s (trace %s)", e.Status, e.Message, e.TraceID)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// WithToken sets the bearer token sent on every request.
func (c *HTTPClient) WithToken(token string) *HTTPClient {
	c.token = token
	return c
}

func (c *HTTPClient) List(ctx context.Context) ([]response_models.ActivityResponse, error) {
	var out []response_models.ActivityResponse
	if err := c.do(ctx, http.MethodGet, "/api/activities", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Create(ctx context.Context, req request_models.ActivityRequest) (*response_models.ActivityResponse, error) {
	var out response_models.ActivityResponse
	if err := c.do(ctx, http.MethodPost, "/api/activities", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Update(ctx context.Context, req request_models.ActivityRequest) (*response_models.ActivityResponse, error) {
	var out response_models.ActivityResponse
	if err := c.do(ctx, http.MethodPut, "/api/activities", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Delete(ctx context.Context, id uint) error {
	var out response_models.DeleteResponse
	path := "/api/activities?id=" + strconv.FormatUint(uint64(id), 10)
	if err := c.do(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return err
	}
	if !out.Success {
		return fmt.Errorf("delete %d: server did not confirm", id)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, user, password string) (*response_models.LoginResponse, error) {
	var out response_models.LoginResponse
	body := request_models.LoginRequest{User: user, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Calendar(ctx context.Context, view, date string) (*response_models.CalendarView, error) {
	q := url.Values{}
	if view != "" {
		q.Set("view", view)
	}
	if date != "" {
		q.Set("date", date)
	}
	path := "/api/calendar"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out response_models.CalendarView
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var env utils.APIResponse
		if json.Unmarshal(raw, &env) == nil && env.Message != "" {
			apiErr.Message = env.Message
			apiErr.TraceID = env.TraceID
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
