package user

import "time"

// Role partitions the marketplace audience. Guests carry no account at
// all and never appear in this table.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// User is a marketplace account. Authentication is handled by the
// platform's identity service; this table stores the profile data the
// marketplace itself needs.
type User struct {
	ID          int64     `db:"id" json:"id"`
	Email       string    `db:"email" json:"email"`
	Password    string    `db:"password" json:"-"`
	DisplayName string    `db:"display_name" json:"display_name"`
	Role        Role      `db:"role" json:"role"`
	StoreName   string    `db:"store_name" json:"store_name,omitempty"`
	Bio         string    `db:"bio" json:"bio,omitempty"`
	AvatarURL   string    `db:"avatar_url" json:"avatar_url,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// UpdateProfileRequest is the profile edit payload.
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
	StoreName   string `json:"store_name"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
}
