package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the identity record. Email is the natural lookup key for
// user scoped operations and must be unique across all records.
type User struct {
	bun.BaseModel    `bun:"table:users,alias:usr"`
	ID               uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email            string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash     string     `bun:"password_hash,notnull" json:"-"`
	FirstName        string     `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName         string     `bun:"last_name,notnull" json:"last_name,omitempty"`
	Phone            string     `bun:"phone_number" json:"phone_number,omitempty"`
	IsVerified       bool       `bun:"is_verified,notnull,default:false" json:"is_verified,omitempty"`
	RefreshTokenHash *string    `bun:"refresh_token_hash,nullzero" json:"-"`
	CreatedAt        *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt        *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Profile returns the non-sensitive fields handed back by login and
// the who-am-i endpoint. The password and refresh token hashes never
// leave the store layer.
func (u *User) Profile() map[string]any {
	return map[string]any{
		"email":     u.Email,
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"phone":     u.Phone,
	}
}

// NormalizeEmail lowercases and trims an email so lookups and the
// unique index agree on a single canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
