package domain

import (
	"strings"
	"time"
)

// User is the identity handed to us by the external identity provider.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// DisplayName is the name shown next to reviews.
func (u User) DisplayName() string {
	if n := strings.TrimSpace(u.FullName); n != "" {
		return n
	}
	if local, _, ok := strings.Cut(u.Email, "@"); ok && local != "" {
		return local
	}
	return "Anonymous"
}

// Address stores a shipping address in the user's address book.
type Address struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Line renders the address as the free-text form stored on orders.
func (a Address) Line() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.City, a.State, a.PostalCode} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
