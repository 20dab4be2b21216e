package models

// PlayerIdentity is the canonical identity a free-text name resolves to
type PlayerIdentity struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	IsActive bool   `json:"is_active"`
}

// IsZero reports whether the identity is unset
func (p PlayerIdentity) IsZero() bool {
	return p.ID == 0 && p.FullName == ""
}
