package access

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryAccountRepository struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]*Account
	byExternal map[string]uuid.UUID
}

// NewMemoryAccountRepository creates an in-memory account repository.
func NewMemoryAccountRepository() AccountRepository {
	return &memoryAccountRepository{
		byID:       map[uuid.UUID]*Account{},
		byExternal: map[string]uuid.UUID{},
	}
}

func (r *memoryAccountRepository) Create(_ context.Context, account *Account) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := cloneAccount(account)
	r.byID[stored.ID] = stored
	r.byExternal[stored.ExternalID] = stored.ID
	return cloneAccount(stored), nil
}

func (r *memoryAccountRepository) GetByID(_ context.Context, id uuid.UUID) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "account", Key: id.String()}
	}
	return cloneAccount(account), nil
}

func (r *memoryAccountRepository) GetByExternalID(_ context.Context, externalID string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byExternal[externalID]
	if !ok {
		return nil, &NotFoundError{Resource: "account", Key: externalID}
	}
	return cloneAccount(r.byID[id]), nil
}

func (r *memoryAccountRepository) Update(_ context.Context, account *Account) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[account.ID]; !ok {
		return nil, &NotFoundError{Resource: "account", Key: account.ID.String()}
	}
	stored := cloneAccount(account)
	r.byID[stored.ID] = stored
	r.byExternal[stored.ExternalID] = stored.ID
	return cloneAccount(stored), nil
}

func (r *memoryAccountRepository) List(_ context.Context) ([]*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Account, 0, len(r.byID))
	for _, account := range r.byID {
		out = append(out, cloneAccount(account))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

type memoryRoleRepository struct {
	mu   sync.RWMutex
	byID map[string]*Role
}

// NewMemoryRoleRepository creates an in-memory role repository.
func NewMemoryRoleRepository() RoleRepository {
	return &memoryRoleRepository{byID: map[string]*Role{}}
}

func (r *memoryRoleRepository) Upsert(_ context.Context, role *Role) (*Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *role
	r.byID[role.ID] = &stored
	dup := stored
	return &dup, nil
}

func (r *memoryRoleRepository) GetByID(_ context.Context, id string) (*Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	role, ok := r.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "role", Key: id}
	}
	dup := *role
	return &dup, nil
}

func (r *memoryRoleRepository) List(_ context.Context) ([]*Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Role, 0, len(r.byID))
	for _, role := range r.byID {
		dup := *role
		out = append(out, &dup)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memoryPermissionRepository struct {
	mu    sync.RWMutex
	byKey map[string]*Permission
}

// NewMemoryPermissionRepository creates an in-memory permission repository.
func NewMemoryPermissionRepository() PermissionRepository {
	return &memoryPermissionRepository{byKey: map[string]*Permission{}}
}

func (r *memoryPermissionRepository) Upsert(_ context.Context, permission *Permission) (*Permission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *permission
	r.byKey[permission.Key] = &stored
	dup := stored
	return &dup, nil
}

func (r *memoryPermissionRepository) GetByKey(_ context.Context, key string) (*Permission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	permission, ok := r.byKey[key]
	if !ok {
		return nil, &NotFoundError{Resource: "permission", Key: key}
	}
	dup := *permission
	return &dup, nil
}

func (r *memoryPermissionRepository) List(_ context.Context) ([]*Permission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Permission, 0, len(r.byKey))
	for _, permission := range r.byKey {
		dup := *permission
		out = append(out, &dup)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

type memoryMembershipRepository struct {
	mu          sync.RWMutex
	roles       map[uuid.UUID]map[string]struct{}
	permissions map[string]map[string]struct{}
}

// NewMemoryMembershipRepository creates an in-memory membership repository.
func NewMemoryMembershipRepository() MembershipRepository {
	return &memoryMembershipRepository{
		roles:       map[uuid.UUID]map[string]struct{}{},
		permissions: map[string]map[string]struct{}{},
	}
}

func (r *memoryMembershipRepository) AssignRole(_ context.Context, accountID uuid.UUID, roleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.roles[accountID] == nil {
		r.roles[accountID] = map[string]struct{}{}
	}
	r.roles[accountID][roleID] = struct{}{}
	return nil
}

func (r *memoryMembershipRepository) RemoveRole(_ context.Context, accountID uuid.UUID, roleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.roles[accountID], roleID)
	return nil
}

func (r *memoryMembershipRepository) RolesForAccount(_ context.Context, accountID uuid.UUID) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.roles[accountID]))
	for roleID := range r.roles[accountID] {
		out = append(out, roleID)
	}
	sort.Strings(out)
	return out, nil
}

func (r *memoryMembershipRepository) GrantPermission(_ context.Context, roleID, permissionKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.permissions[roleID] == nil {
		r.permissions[roleID] = map[string]struct{}{}
	}
	r.permissions[roleID][permissionKey] = struct{}{}
	return nil
}

func (r *memoryMembershipRepository) RevokePermission(_ context.Context, roleID, permissionKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.permissions[roleID], permissionKey)
	return nil
}

func (r *memoryMembershipRepository) PermissionsForRoles(_ context.Context, roleIDs []string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := map[string]struct{}{}
	for _, roleID := range roleIDs {
		for key := range r.permissions[roleID] {
			seen[key] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for key := range seen {
		out = append(out, key)
	}
	sort.Strings(out)
	return out, nil
}

func cloneAccount(account *Account) *Account {
	if account == nil {
		return nil
	}
	dup := *account
	if account.AvatarURL != nil {
		avatar := *account.AvatarURL
		dup.AvatarURL = &avatar
	}
	return &dup
}
