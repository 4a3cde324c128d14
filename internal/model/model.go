package model

import "regexp"

// Client-side entities for the Craveboard admin dashboard. All of these are
// reconstructed from API responses on each fetch; only the session (user +
// token) has durable local storage.

// Permissive on purpose: real validation belongs to the backend, this only
// catches obvious typos before a network round trip.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether e looks like an email address. Login forms
// check this before any network call.
func ValidEmail(e string) bool {
	return emailRe.MatchString(e)
}

// User is the authenticated admin identity.
type User struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Image *string `json:"image"`
	Role  string  `json:"role"`
}

// Food categories accepted by the backend.
const (
	CategoryCravings = "CRAVINGS"
	CategoryMood     = "MOOD"
)

// Categories lists the valid food categories in display order.
func Categories() []string {
	return []string{CategoryCravings, CategoryMood}
}

// ValidCategory reports whether c is an accepted food category.
func ValidCategory(c string) bool {
	return c == CategoryCravings || c == CategoryMood
}

// Food is one catalog entry (an image + category pair).
type Food struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Image     *string `json:"image"`
	CreatedAt string  `json:"createdAt"`
}

// Feedback is an end-user submission. Admin clients read and delete these;
// creation happens in the consumer app.
type Feedback struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

// LegalDocuments holds the two long-form documents edited from the dashboard.
// Both fields are markdown. A partial save may carry only one of them.
type LegalDocuments struct {
	ID              string  `json:"id,omitempty"`
	PrivacyPolicy   *string `json:"privacyPolicy,omitempty"`
	TermsConditions *string `json:"termsConditions,omitempty"`
	CreatedAt       string  `json:"createdAt,omitempty"`
	UpdatedAt       string  `json:"updatedAt,omitempty"`
}

// Pagination is server-reported list metadata.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Feedback sort fields accepted by the backend.
const (
	SortByCreatedAt = "createdAt"
	SortByName      = "name"
	SortByEmail     = "email"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// SortSpec is the feedback list ordering.
type SortSpec struct {
	SortBy string `json:"sortBy"`
	Order  string `json:"order"`
}

// ValidSortBy reports whether f is a sortable feedback field.
func ValidSortBy(f string) bool {
	return f == SortByCreatedAt || f == SortByName || f == SortByEmail
}
