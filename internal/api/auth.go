package api

import (
	"context"
	"net/http"

	"craveboard-cli/internal/model"
)

// LoginResult is the /admin/login envelope.
type LoginResult struct {
	Message string     `json:"message"`
	User    model.User `json:"user"`
	Token   string     `json:"token"`
}

// Login authenticates the admin and returns the issued credential.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	payload := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/admin/login", nil, payload, &out); err != nil {
		return LoginResult{}, err
	}
	return out, nil
}

// UpdateAdmin updates the admin profile (name, optional avatar image).
// imagePath == "" leaves the avatar untouched.
func (c *Client) UpdateAdmin(ctx context.Context, name, imagePath string) (model.User, error) {
	var out struct {
		Message string     `json:"message"`
		User    model.User `json:"user"`
	}
	fields := map[string]string{"name": name}
	if err := c.doMultipart(ctx, http.MethodPatch, "/admin", fields, imagePath, &out); err != nil {
		return model.User{}, err
	}
	return out.User, nil
}
