package access

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunAccountRepository implements AccountRepository with optional caching.
type BunAccountRepository struct {
	repo repository.Repository[*Account]
}

// NewBunAccountRepository creates an account repository without caching.
func NewBunAccountRepository(db *bun.DB) *BunAccountRepository {
	return NewBunAccountRepositoryWithCache(db, nil, nil)
}

// NewBunAccountRepositoryWithCache creates an account repository with caching.
func NewBunAccountRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunAccountRepository {
	base := NewAccountRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunAccountRepository{repo: base}
}

func (r *BunAccountRepository) Create(ctx context.Context, account *Account) (*Account, error) {
	return r.repo.Create(ctx, account)
}

func (r *BunAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "account", id.String())
	}
	return record, nil
}

func (r *BunAccountRepository) GetByExternalID(ctx context.Context, externalID string) (*Account, error) {
	record, err := r.repo.GetByIdentifier(ctx, externalID)
	if err != nil {
		return nil, mapRepositoryError(err, "account", externalID)
	}
	return record, nil
}

func (r *BunAccountRepository) Update(ctx context.Context, account *Account) (*Account, error) {
	updated, err := r.repo.Update(ctx, account,
		repository.UpdateByID(account.ID.String()),
		repository.UpdateColumns(
			"name",
			"email",
			"avatar_url",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "account", account.ID.String())
	}
	return updated, nil
}

func (r *BunAccountRepository) List(ctx context.Context) ([]*Account, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at ASC")
		}),
	)
	return records, err
}

// BunRoleRepository implements RoleRepository on raw bun queries. Roles use
// string primary keys, which the generic repository layer does not model.
type BunRoleRepository struct {
	db *bun.DB
}

// NewBunRoleRepository creates a role repository.
func NewBunRoleRepository(db *bun.DB) *BunRoleRepository {
	return &BunRoleRepository{db: db}
}

func (r *BunRoleRepository) Upsert(ctx context.Context, role *Role) (*Role, error) {
	_, err := r.db.NewInsert().
		Model(role).
		On("CONFLICT (id) DO UPDATE").
		Set("name_en = EXCLUDED.name_en").
		Set("name_ar = EXCLUDED.name_ar").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("upsert role %q: %w", role.ID, err)
	}
	return role, nil
}

func (r *BunRoleRepository) GetByID(ctx context.Context, id string) (*Role, error) {
	role := new(Role)
	err := r.db.NewSelect().Model(role).Where("?TableAlias.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "role", Key: id}
		}
		return nil, fmt.Errorf("get role %q: %w", id, err)
	}
	return role, nil
}

func (r *BunRoleRepository) List(ctx context.Context) ([]*Role, error) {
	var roles []*Role
	err := r.db.NewSelect().Model(&roles).OrderExpr("?TableAlias.id ASC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

// BunPermissionRepository implements PermissionRepository on raw bun queries.
type BunPermissionRepository struct {
	db *bun.DB
}

// NewBunPermissionRepository creates a permission repository.
func NewBunPermissionRepository(db *bun.DB) *BunPermissionRepository {
	return &BunPermissionRepository{db: db}
}

func (r *BunPermissionRepository) Upsert(ctx context.Context, permission *Permission) (*Permission, error) {
	_, err := r.db.NewInsert().
		Model(permission).
		On("CONFLICT (key) DO UPDATE").
		Set("label_en = EXCLUDED.label_en").
		Set("label_ar = EXCLUDED.label_ar").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("upsert permission %q: %w", permission.Key, err)
	}
	return permission, nil
}

func (r *BunPermissionRepository) GetByKey(ctx context.Context, key string) (*Permission, error) {
	permission := new(Permission)
	err := r.db.NewSelect().Model(permission).Where("?TableAlias.key = ?", key).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "permission", Key: key}
		}
		return nil, fmt.Errorf("get permission %q: %w", key, err)
	}
	return permission, nil
}

func (r *BunPermissionRepository) List(ctx context.Context) ([]*Permission, error) {
	var permissions []*Permission
	err := r.db.NewSelect().Model(&permissions).OrderExpr("?TableAlias.key ASC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	return permissions, nil
}

// BunMembershipRepository implements MembershipRepository on the two join
// tables. Inserts are insert-or-ignore so seeding and repeated assignment
// converge instead of failing on duplicates.
type BunMembershipRepository struct {
	db *bun.DB
}

// NewBunMembershipRepository creates a membership repository.
func NewBunMembershipRepository(db *bun.DB) *BunMembershipRepository {
	return &BunMembershipRepository{db: db}
}

func (r *BunMembershipRepository) AssignRole(ctx context.Context, accountID uuid.UUID, roleID string) error {
	link := &AccountRole{AccountID: accountID, RoleID: roleID}
	_, err := r.db.NewInsert().
		Model(link).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("assign role %q: %w", roleID, err)
	}
	return nil
}

func (r *BunMembershipRepository) RemoveRole(ctx context.Context, accountID uuid.UUID, roleID string) error {
	_, err := r.db.NewDelete().
		Model((*AccountRole)(nil)).
		Where("?TableAlias.account_id = ? AND ?TableAlias.role_id = ?", accountID, roleID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("remove role %q: %w", roleID, err)
	}
	return nil
}

func (r *BunMembershipRepository) RolesForAccount(ctx context.Context, accountID uuid.UUID) ([]string, error) {
	var roleIDs []string
	err := r.db.NewSelect().
		Model((*AccountRole)(nil)).
		Column("role_id").
		Where("?TableAlias.account_id = ?", accountID).
		OrderExpr("?TableAlias.role_id ASC").
		Scan(ctx, &roleIDs)
	if err != nil {
		return nil, fmt.Errorf("roles for account: %w", err)
	}
	return roleIDs, nil
}

func (r *BunMembershipRepository) GrantPermission(ctx context.Context, roleID, permissionKey string) error {
	link := &RolePermission{RoleID: roleID, PermissionKey: permissionKey}
	_, err := r.db.NewInsert().
		Model(link).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("grant permission %q: %w", permissionKey, err)
	}
	return nil
}

func (r *BunMembershipRepository) RevokePermission(ctx context.Context, roleID, permissionKey string) error {
	_, err := r.db.NewDelete().
		Model((*RolePermission)(nil)).
		Where("?TableAlias.role_id = ? AND ?TableAlias.permission_key = ?", roleID, permissionKey).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("revoke permission %q: %w", permissionKey, err)
	}
	return nil
}

func (r *BunMembershipRepository) PermissionsForRoles(ctx context.Context, roleIDs []string) ([]string, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}
	var keys []string
	err := r.db.NewSelect().
		Model((*RolePermission)(nil)).
		ColumnExpr("DISTINCT ?TableAlias.permission_key").
		Where("?TableAlias.role_id IN (?)", bun.In(roleIDs)).
		Scan(ctx, &keys)
	if err != nil {
		return nil, fmt.Errorf("permissions for roles: %w", err)
	}
	return keys, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
