package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"craveboard-cli/internal/model"
)

// FeedbackPage is the /feedback list envelope. Unlike /foods, pagination
// metadata is flat and totalPages is not reported; the store derives it.
type FeedbackPage struct {
	Success bool             `json:"success"`
	Total   int              `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
	Data    []model.Feedback `json:"data"`
}

// ListFeedback fetches one feedback page with the given ordering.
func (c *Client) ListFeedback(ctx context.Context, page, limit int, sort model.SortSpec) (FeedbackPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("sortBy", sort.SortBy)
	q.Set("order", sort.Order)
	var out FeedbackPage
	if err := c.doJSON(ctx, http.MethodGet, "/feedback", q, nil, &out); err != nil {
		return FeedbackPage{}, err
	}
	return out, nil
}

// CreateFeedback submits feedback through the public (unauthenticated)
// endpoint. The dashboard never calls this; it exists for seeding dev
// backends from the CLI.
func (c *Client) CreateFeedback(ctx context.Context, name, email, description string) (model.Feedback, error) {
	payload := map[string]string{"name": name, "email": email, "description": description}
	var out struct {
		Message string         `json:"message"`
		Data    model.Feedback `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/feedback", nil, payload, &out); err != nil {
		return model.Feedback{}, err
	}
	return out.Data, nil
}

// DeleteFeedback removes one feedback entry.
func (c *Client) DeleteFeedback(ctx context.Context, id string) error {
	var out struct {
		Message string `json:"message"`
	}
	return c.doJSON(ctx, http.MethodDelete, "/feedback/"+url.PathEscape(id), nil, nil, &out)
}
