package models

import "time"

// Profile is the per-user document mirroring an Identity, keyed by the same uid.
type Profile struct {
	UID       string    `bson:"_id" json:"-"`
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone" json:"phone"`
	Role      string    `bson:"role" json:"role"`
	IsActive  bool      `bson:"isActive" json:"isActive"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// ProfileUpdate lists the mutable profile fields. Nil fields are left untouched.
type ProfileUpdate struct {
	Name     *string
	Phone    *string
	Role     *string
	IsActive *bool
}

// Empty reports whether the update changes nothing.
func (u ProfileUpdate) Empty() bool {
	return u.Name == nil && u.Phone == nil && u.Role == nil && u.IsActive == nil
}
