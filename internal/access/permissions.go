package access

import "strings"

// Verb is the action half of a permission key.
type Verb string

const (
	VerbView   Verb = "view"
	VerbCreate Verb = "create"
	VerbUpdate Verb = "update"
	VerbDelete Verb = "delete"
)

// Entity names the dashboard surfaces permissions attach to.
const (
	EntityHero     = "hero"
	EntityArticles = "articles"
	EntityProducts = "products"
	EntityProjects = "projects"
	EntityServices = "services"
	EntityMedia    = "media"
	EntityAccounts = "accounts"
)

// RoleAdmin is the sentinel role that implicitly grants every permission.
// It is checked before set membership so the grant stays correct as the
// permission catalog grows, rather than relying on seeded rows per key.
const RoleAdmin = "role_admin"

// RoleEditor is the default non-privileged content role.
const RoleEditor = "role_editor"

// Key builds a permission key from entity and verb.
func Key(entity string, verb Verb) string {
	e := normalizeToken(entity)
	v := normalizeToken(string(verb))
	if e == "" || v == "" {
		return ""
	}
	return e + "." + v
}

// EntityKeys returns the full verb set for one entity.
func EntityKeys(entity string) []string {
	verbs := []Verb{VerbView, VerbCreate, VerbUpdate, VerbDelete}
	out := make([]string, 0, len(verbs))
	for _, verb := range verbs {
		if key := Key(entity, verb); key != "" {
			out = append(out, key)
		}
	}
	return out
}

// Entities lists every permission-bearing entity.
func Entities() []string {
	return []string{
		EntityHero,
		EntityArticles,
		EntityProducts,
		EntityProjects,
		EntityServices,
		EntityMedia,
		EntityAccounts,
	}
}

// Set is an exact-membership permission set. The admin bypass lives on the
// Grant, not in here, so the set stays a faithful picture of what was
// explicitly assigned.
type Set map[string]struct{}

// NewSet builds a set from permission keys, dropping empty entries.
func NewSet(keys ...string) Set {
	set := Set{}
	for _, key := range keys {
		normalized := normalizeKey(key)
		if normalized == "" {
			continue
		}
		set[normalized] = struct{}{}
	}
	return set
}

// Allowed reports whether the key is a member of the set.
func (s Set) Allowed(key string) bool {
	if len(s) == 0 {
		return false
	}
	normalized := normalizeKey(key)
	if normalized == "" {
		return false
	}
	_, ok := s[normalized]
	return ok
}

// List returns the member keys in unspecified order.
func (s Set) List() []string {
	out := make([]string, 0, len(s))
	for key := range s {
		out = append(out, key)
	}
	return out
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func normalizeToken(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
