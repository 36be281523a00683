package access

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hamzeh-dev/binaa-cms/internal/logging"
	"github.com/hamzeh-dev/binaa-cms/pkg/interfaces"
)

var (
	ErrAccessDenied       = errors.New("access: denied")
	ErrExternalIDRequired = errors.New("access: identity external id required")
)

// DeniedError carries the permission a check failed on. It unwraps to
// ErrAccessDenied so callers can branch without inspecting the key.
type DeniedError struct {
	Permission string
}

func (e DeniedError) Error() string {
	if strings.TrimSpace(e.Permission) == "" {
		return "access denied"
	}
	return "access denied: " + e.Permission
}

func (e DeniedError) Unwrap() error {
	return ErrAccessDenied
}

// Grant is a request-scoped snapshot of what one account may do: held roles
// and the union of their permission sets. The admin sentinel is evaluated
// before set membership so role_admin keeps granting everything as the
// permission catalog grows.
type Grant struct {
	AccountID   uuid.UUID
	Roles       []string
	Permissions Set

	admin bool
}

// EmptyGrant is the deny-everything grant used for anonymous visitors and
// for any failure while resolving a real one.
func EmptyGrant() *Grant {
	return &Grant{Permissions: Set{}}
}

// IsAdmin reports whether the grant holds the admin sentinel role.
func (g *Grant) IsAdmin() bool {
	return g != nil && g.admin
}

// HasPermission reports whether the grant allows the permission key.
func (g *Grant) HasPermission(key string) bool {
	if g == nil {
		return false
	}
	if g.admin {
		return normalizeKey(key) != ""
	}
	return g.Permissions.Allowed(key)
}

// HasDashboardAccess reports whether the grant opens the dashboard at all.
// Any held role qualifies; what the account can do inside is per-permission.
func (g *Grant) HasDashboardAccess() bool {
	if g == nil {
		return false
	}
	return g.admin || len(g.Roles) > 0
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// GateWithClock overrides the time source.
func GateWithClock(clock func() time.Time) GateOption {
	return func(g *Gate) {
		if clock != nil {
			g.now = clock
		}
	}
}

// GateWithIDGenerator overrides the account id generator.
func GateWithIDGenerator(generator func() uuid.UUID) GateOption {
	return func(g *Gate) {
		if generator != nil {
			g.id = generator
		}
	}
}

// GateWithLogger attaches a module logger.
func GateWithLogger(logger interfaces.Logger) GateOption {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Gate resolves the current identity into a Grant and answers allow/deny
// checks for page guards. It fails closed: any provider or repository error
// resolves to the empty grant and is logged, never surfaced to rendering.
type Gate struct {
	identity   interfaces.IdentityProvider
	accounts   AccountRepository
	membership MembershipRepository
	logger     interfaces.Logger
	now        func() time.Time
	id         func() uuid.UUID
}

// NewGate constructs an access gate.
func NewGate(identity interfaces.IdentityProvider, accounts AccountRepository, membership MembershipRepository, opts ...GateOption) *Gate {
	g := &Gate{
		identity:   identity,
		accounts:   accounts,
		membership: membership,
		logger:     logging.NoOp(),
		now:        time.Now,
		id:         uuid.New,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// EnsureAccount materializes the account row for an external identity,
// creating it on first sight and refreshing profile fields afterwards.
func (g *Gate) EnsureAccount(ctx context.Context, identity *interfaces.Identity) (*Account, error) {
	if identity == nil || strings.TrimSpace(identity.ExternalID) == "" {
		return nil, ErrExternalIDRequired
	}

	account, err := g.accounts.GetByExternalID(ctx, identity.ExternalID)
	if err == nil {
		if account.Name != identity.Name || account.Email != identity.Email || avatarChanged(account.AvatarURL, identity.AvatarURL) {
			account.Name = identity.Name
			account.Email = identity.Email
			account.AvatarURL = avatarPtr(identity.AvatarURL)
			account.UpdatedAt = g.now()
			return g.accounts.Update(ctx, account)
		}
		return account, nil
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		return nil, err
	}

	now := g.now()
	return g.accounts.Create(ctx, &Account{
		ID:         g.id(),
		ExternalID: identity.ExternalID,
		Name:       identity.Name,
		Email:      identity.Email,
		AvatarURL:  avatarPtr(identity.AvatarURL),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

// Resolve produces the grant for the current request. Anonymous visitors
// and every failure mode resolve to the empty grant. Resolve is read-only:
// an identity whose account row does not exist yet simply holds no roles,
// and the row is materialized on the sign-in callback via EnsureAccount.
func (g *Gate) Resolve(ctx context.Context) *Grant {
	if g.identity == nil {
		return EmptyGrant()
	}

	identity, err := g.identity.CurrentIdentity(ctx)
	if err != nil {
		g.logger.Error("identity resolution failed", "error", err)
		return EmptyGrant()
	}
	if identity == nil || strings.TrimSpace(identity.ExternalID) == "" {
		return EmptyGrant()
	}

	account, err := g.accounts.GetByExternalID(ctx, identity.ExternalID)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return EmptyGrant()
		}
		g.logger.Error("account lookup failed", "external_id", identity.ExternalID, "error", err)
		return EmptyGrant()
	}

	grant, err := g.GrantForAccount(ctx, account.ID)
	if err != nil {
		g.logger.Error("grant resolution failed", "account_id", account.ID.String(), "error", err)
		return EmptyGrant()
	}
	return grant
}

// GrantForAccount builds the grant for a known account id.
func (g *Gate) GrantForAccount(ctx context.Context, accountID uuid.UUID) (*Grant, error) {
	roles, err := g.membership.RolesForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	grant := &Grant{
		AccountID:   accountID,
		Roles:       roles,
		Permissions: Set{},
		admin:       slices.Contains(roles, RoleAdmin),
	}
	if len(roles) == 0 || grant.admin {
		return grant, nil
	}

	keys, err := g.membership.PermissionsForRoles(ctx, roles)
	if err != nil {
		return nil, err
	}
	grant.Permissions = NewSet(keys...)
	return grant, nil
}

// Require enforces a permission for the current request, preferring a grant
// already memoized on the context over a fresh resolution.
func (g *Gate) Require(ctx context.Context, key string) error {
	grant := GrantFromContext(ctx)
	if grant == nil {
		grant = g.Resolve(ctx)
	}
	if grant.HasPermission(key) {
		return nil
	}
	return DeniedError{Permission: normalizeKey(key)}
}

func avatarPtr(url string) *string {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func avatarChanged(current *string, incoming string) bool {
	trimmed := strings.TrimSpace(incoming)
	if current == nil {
		return trimmed != ""
	}
	return *current != trimmed
}
