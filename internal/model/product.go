package model

import (
	"strings"
	"time"
	"unicode"
)

// Product represents a catalogue entry shared by all wholesalers.
type Product struct {
	ID          string    `json:"productId" db:"id"`
	Name        string    `json:"name" db:"name"`
	Category    string    `json:"category" db:"category"`
	Unit        string    `json:"unit" db:"unit"`
	Description string    `json:"description" db:"description"`
	SearchName  string    `json:"searchName" db:"search_name"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ProductRequest represents the request payload for upserting a product.
type ProductRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
}

// ProductFilter narrows a catalogue listing.
type ProductFilter struct {
	Query    string
	Category string
	Limit    int
	Offset   int
}

// NormalizeProductID derives the stable product identifier from a product name:
// lower case, letters and digits kept, every other run collapsed to a single "_".
func NormalizeProductID(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// SearchName returns the lower-cased, space-collapsed form used for catalogue search.
func SearchName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
