// Package client is a REST client for the camera registry API.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"

	"surveillance-map/be/models"
	"surveillance-map/be/services"
)

// APIError carries the status and the server's {"error": ...} message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

type errorBody struct {
	Error string `json:"error"`
}

type LoginResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	User    models.User `json:"user"`
}

type VerifyResponse struct {
	Valid bool        `json:"valid"`
	User  models.User `json:"user"`
}

type cameraResponse struct {
	Success bool          `json:"success"`
	Camera  models.Camera `json:"camera"`
}

type Client struct {
	HTTP *resty.Client
}

func New(baseURL string) *Client {
	r := resty.New()
	r.SetBaseURL(strings.TrimRight(baseURL, "/"))
	r.SetHeader("Accept", "application/json")
	r.SetTimeout(30 * time.Second)
	r.SetJSONMarshaler(json.Marshal)
	r.SetJSONUnmarshaler(json.Unmarshal)
	r.SetError(&errorBody{})

	return &Client{HTTP: r}
}

// SetToken attaches a bearer token to every subsequent request.
func (c *Client) SetToken(token string) {
	c.HTTP.SetAuthToken(token)
}

// Login authenticates and keeps the returned token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var out LoginResponse
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(&out).
		Post("/api/auth/login")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, errors.New("login succeeded but no token was returned")
	}

	c.SetToken(out.Token)
	return &out, nil
}

func (c *Client) Verify(ctx context.Context) (*VerifyResponse, error) {
	var out VerifyResponse
	resp, err := c.HTTP.R().SetContext(ctx).SetResult(&out).Get("/api/auth/verify")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCameras(ctx context.Context) (*models.CameraListResponse, error) {
	var out models.CameraListResponse
	resp, err := c.HTTP.R().SetContext(ctx).SetResult(&out).Get("/api/cameras")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCamera(ctx context.Context, id string) (*models.Camera, error) {
	var out models.Camera
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&out).
		Get("/api/cameras/{id}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCamera(ctx context.Context, in services.CameraInput) (*models.Camera, error) {
	var out cameraResponse
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&out).
		Post("/api/cameras")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out.Camera, nil
}

// UpdateCamera sends fields as a partial update.
func (c *Client) UpdateCamera(ctx context.Context, id string, fields map[string]any) (*models.Camera, error) {
	var out cameraResponse
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetBody(fields).
		SetResult(&out).
		Put("/api/cameras/{id}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out.Camera, nil
}

func (c *Client) DeleteCamera(ctx context.Context, id string) error {
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Delete("/api/cameras/{id}")
	return check(resp, err)
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if !resp.IsError() {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode()}
	if body, ok := resp.Error().(*errorBody); ok && body != nil {
		apiErr.Message = body.Error
	}
	return apiErr
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
