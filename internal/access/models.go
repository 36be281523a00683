package access

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Account wraps one externally-authenticated identity. Rows are materialized
// lazily on first sight of an external id; the identity provider remains the
// source of truth for authentication itself.
type Account struct {
	bun.BaseModel `bun:"table:access_accounts,alias:aa"`

	ID         uuid.UUID `bun:",pk,type:uuid" json:"id"`
	ExternalID string    `bun:"external_id,notnull,unique" json:"external_id"`
	Name       string    `bun:"name" json:"name"`
	Email      string    `bun:"email" json:"email"`
	AvatarURL  *string   `bun:"avatar_url" json:"avatar_url,omitempty"`
	CreatedAt  time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Role is a named permission bundle. The id is a stable string key so seeds
// and checks can reference roles without lookups.
type Role struct {
	bun.BaseModel `bun:"table:access_roles,alias:ar"`

	ID        string    `bun:"id,pk" json:"id"`
	NameEn    string    `bun:"name_en,notnull" json:"name_en"`
	NameAr    string    `bun:"name_ar,notnull" json:"name_ar"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// Permission is one fine-grained capability, keyed "<entity>.<verb>".
type Permission struct {
	bun.BaseModel `bun:"table:access_permissions,alias:ap"`

	Key       string    `bun:"key,pk" json:"key"`
	LabelEn   string    `bun:"label_en,notnull" json:"label_en"`
	LabelAr   string    `bun:"label_ar,notnull" json:"label_ar"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// AccountRole links an account to a role.
type AccountRole struct {
	bun.BaseModel `bun:"table:access_account_roles,alias:aar"`

	AccountID uuid.UUID `bun:"account_id,pk,type:uuid" json:"account_id"`
	RoleID    string    `bun:"role_id,pk" json:"role_id"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// RolePermission links a role to a permission.
type RolePermission struct {
	bun.BaseModel `bun:"table:access_role_permissions,alias:arp"`

	RoleID        string    `bun:"role_id,pk" json:"role_id"`
	PermissionKey string    `bun:"permission_key,pk" json:"permission_key"`
	CreatedAt     time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}
