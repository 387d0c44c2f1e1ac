package entity

import "strings"

// Address is a shipping address snapshot, either chosen for checkout or
// returned by the remote address service.
type Address struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Street      string `json:"street"`
	City        string `json:"city"`
	Region      string `json:"region"`
	PostalCode  string `json:"postalCode,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryID   int64  `json:"countryId,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
	IsDefault   bool   `json:"isDefault"`
}

// Clone returns a copy that shares no memory with a.
func (a *Address) Clone() *Address {
	if a == nil {
		return nil
	}
	cloned := *a

	return &cloned
}

// Format renders the address on one line, skipping empty parts.
func (a *Address) Format() string {
	parts := make([]string, 0, 5)
	for _, part := range []string{a.Street, a.City, a.Region, a.PostalCode, a.Country} {
		if s := strings.TrimSpace(part); s != "" {
			parts = append(parts, s)
		}
	}

	return strings.Join(parts, ", ")
}
