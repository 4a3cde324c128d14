package api

import (
	"context"
	"net/http"

	"craveboard-cli/internal/model"
)

// LegalResult is the /legal-documents envelope.
type LegalResult struct {
	Success bool                 `json:"success"`
	Message string               `json:"message,omitempty"`
	Data    model.LegalDocuments `json:"data"`
}

// GetLegalDocuments fetches the current privacy policy and terms.
func (c *Client) GetLegalDocuments(ctx context.Context) (model.LegalDocuments, error) {
	var out LegalResult
	if err := c.doJSON(ctx, http.MethodGet, "/legal-documents", nil, nil, &out); err != nil {
		return model.LegalDocuments{}, err
	}
	return out.Data, nil
}

// SaveLegalDocuments sends a partial update: nil fields are omitted from the
// body and keep their server-side value. Callers must refetch afterwards to
// reconcile the untouched field (the server response only echoes what was
// sent).
func (c *Client) SaveLegalDocuments(ctx context.Context, docs model.LegalDocuments) (LegalResult, error) {
	payload := map[string]*string{}
	if docs.PrivacyPolicy != nil {
		payload["privacyPolicy"] = docs.PrivacyPolicy
	}
	if docs.TermsConditions != nil {
		payload["termsConditions"] = docs.TermsConditions
	}
	var out LegalResult
	if err := c.doJSON(ctx, http.MethodPut, "/legal-documents", nil, payload, &out); err != nil {
		return LegalResult{}, err
	}
	return out, nil
}
