package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"craveboard-cli/internal/model"
)

// FoodsPage is the /foods list envelope.
type FoodsPage struct {
	Success    bool             `json:"success"`
	Data       []model.Food     `json:"data"`
	Pagination model.Pagination `json:"pagination"`
}

// ListFoods fetches one catalog page. category == "" lists all categories.
func (c *Client) ListFoods(ctx context.Context, page, limit int, category string) (FoodsPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if category != "" {
		q.Set("category", category)
	}
	var out FoodsPage
	if err := c.doJSON(ctx, http.MethodGet, "/foods", q, nil, &out); err != nil {
		return FoodsPage{}, err
	}
	return out, nil
}

// CreateFood uploads a new catalog entry. imagePath is optional.
func (c *Client) CreateFood(ctx context.Context, name, category, imagePath string) (model.Food, error) {
	var out struct {
		Message string     `json:"message"`
		Food    model.Food `json:"food"`
	}
	fields := map[string]string{"name": name, "category": category}
	if err := c.doMultipart(ctx, http.MethodPost, "/foods", fields, imagePath, &out); err != nil {
		return model.Food{}, err
	}
	return out.Food, nil
}

// UpdateFood edits an existing catalog entry; same shape as CreateFood.
// Note the update envelope carries the food under "data", not "food".
func (c *Client) UpdateFood(ctx context.Context, id, name, category, imagePath string) (model.Food, error) {
	var out struct {
		Message string     `json:"message"`
		Data    model.Food `json:"data"`
	}
	fields := map[string]string{"name": name, "category": category}
	if err := c.doMultipart(ctx, http.MethodPatch, "/foods/"+url.PathEscape(id), fields, imagePath, &out); err != nil {
		return model.Food{}, err
	}
	return out.Data, nil
}

// DeleteFood removes a catalog entry.
func (c *Client) DeleteFood(ctx context.Context, id string) error {
	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	return c.doJSON(ctx, http.MethodDelete, "/foods/"+url.PathEscape(id), nil, nil, &out)
}
