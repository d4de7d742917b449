package models

import "time"

// ContactRole classifies a support-network contact. Roles are plaintext so
// lists can be grouped without decryption.
type ContactRole string

const (
	RoleSponsor    ContactRole = "sponsor"
	RoleFellowship ContactRole = "fellowship"
	RoleFamily     ContactRole = "family"
	RoleProfessional ContactRole = "professional"
)

// Contact is a support-network contact. Name, Phone and Notes are sensitive
// and stored encrypted. IsSponsor is a singleton role: at most one contact
// holds it at any time.
type Contact struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone,omitempty"`
	Notes     string      `json:"notes,omitempty"`
	Role      ContactRole `json:"role"`
	IsSponsor bool        `json:"is_sponsor"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
