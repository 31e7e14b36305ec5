package models

import "time"

// Identity is an identity-provider record: credentials, display metadata and
// custom claims, keyed by a generated uid.
type Identity struct {
	UID          string                 `bson:"_id" json:"uid"`
	Email        string                 `bson:"email" json:"email"`
	PasswordHash string                 `bson:"passwordHash,omitempty" json:"-"`
	DisplayName  string                 `bson:"displayName" json:"displayName"`
	Disabled     bool                   `bson:"disabled" json:"disabled"`
	CustomClaims map[string]interface{} `bson:"customClaims,omitempty" json:"customClaims,omitempty"`
	CreatedAt    time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// IsAdmin reports whether the custom claims carry admin == true.
func (i *Identity) IsAdmin() bool {
	if i == nil {
		return false
	}
	v, ok := i.CustomClaims["admin"].(bool)
	return ok && v
}
