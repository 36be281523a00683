package access

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// AccountRepository persists accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) (*Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetByExternalID(ctx context.Context, externalID string) (*Account, error)
	Update(ctx context.Context, account *Account) (*Account, error)
	List(ctx context.Context) ([]*Account, error)
}

// RoleRepository persists roles. Upsert converges on rerun so seeds stay
// idempotent.
type RoleRepository interface {
	Upsert(ctx context.Context, role *Role) (*Role, error)
	GetByID(ctx context.Context, id string) (*Role, error)
	List(ctx context.Context) ([]*Role, error)
}

// PermissionRepository persists the permission catalog.
type PermissionRepository interface {
	Upsert(ctx context.Context, permission *Permission) (*Permission, error)
	GetByKey(ctx context.Context, key string) (*Permission, error)
	List(ctx context.Context) ([]*Permission, error)
}

// MembershipRepository persists the two join relations. Assign and Grant
// are insert-or-ignore so repeated seeding cannot fail on duplicates.
type MembershipRepository interface {
	AssignRole(ctx context.Context, accountID uuid.UUID, roleID string) error
	RemoveRole(ctx context.Context, accountID uuid.UUID, roleID string) error
	RolesForAccount(ctx context.Context, accountID uuid.UUID) ([]string, error)

	GrantPermission(ctx context.Context, roleID, permissionKey string) error
	RevokePermission(ctx context.Context, roleID, permissionKey string) error
	PermissionsForRoles(ctx context.Context, roleIDs []string) ([]string, error)
}

// NotFoundError is returned when an access resource cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
