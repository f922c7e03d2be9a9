// ABOUTME: Authentication endpoints: login, register and profile
// ABOUTME: Profile is the only call here that carries the bearer token

package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login calls POST /api/login
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   authPrefix + "/login",
		body:   loginRequest{Email: strings.TrimSpace(email), Password: password},
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, fmt.Errorf("invalid response from backend: missing access_token")
	}
	return &out, nil
}

// Register calls POST /api/register
func (c *Client) Register(ctx context.Context, payload RegisterPayload) (*RegisterResponse, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	var out RegisterResponse
	if err := c.do(ctx, request{
		method: http.MethodPost,
		path:   authPrefix + "/register",
		body:   payload,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile calls GET /api/profile with the current credential
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, request{
		method: http.MethodGet,
		path:   authPrefix + "/profile",
		auth:   true,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
