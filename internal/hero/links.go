package hero

import (
	"context"
	"fmt"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"
)

// LinkResolverOptions configures the go-urlkit backed link resolver.
type LinkResolverOptions struct {
	Manager      *urlkit.RouteManager
	DefaultGroup string
	LocaleGroups map[string]string
	SlugParam    string
	LocaleParam  string
	// Routes maps a slide kind to the route name inside the group. Kinds
	// without an entry fall back to the kind string itself.
	Routes map[SlideType]string
}

// LinkResolver builds localized public URLs for resolved slide references
// using a go-urlkit RouteManager.
type LinkResolver struct {
	manager *urlkit.RouteManager

	defaultGroup string
	localeGroups map[string]string
	slugParam    string
	localeParam  string
	routes       map[SlideType]string

	groupCache map[string]*urlkit.Group
	mu         sync.RWMutex
}

// NewLinkResolver constructs a resolver backed by go-urlkit.
func NewLinkResolver(opts LinkResolverOptions) *LinkResolver {
	if opts.SlugParam == "" {
		opts.SlugParam = "slug"
	}

	return &LinkResolver{
		manager:      opts.Manager,
		defaultGroup: strings.TrimSpace(opts.DefaultGroup),
		localeGroups: opts.LocaleGroups,
		slugParam:    opts.SlugParam,
		localeParam:  strings.TrimSpace(opts.LocaleParam),
		routes:       opts.Routes,
		groupCache:   make(map[string]*urlkit.Group),
	}
}

// ResolveLink builds the public URL for a reference in the given locale.
// An unresolvable link returns an empty string without error so the caller
// can fall back to the slide's stored CTA href.
func (r *LinkResolver) ResolveLink(ctx context.Context, ref *Reference, locale string) (string, error) {
	if r == nil || r.manager == nil || ref == nil {
		return "", nil
	}

	groupPath := r.defaultGroup
	localeKey := strings.ToLower(strings.TrimSpace(locale))
	if r.localeGroups != nil {
		if path, ok := r.localeGroups[localeKey]; ok && strings.TrimSpace(path) != "" {
			groupPath = strings.TrimSpace(path)
		}
	}
	if groupPath == "" {
		return "", nil
	}

	group, err := r.groupForPath(groupPath)
	if err != nil || group == nil {
		return "", err
	}

	routeName := string(ref.Kind)
	if r.routes != nil {
		if name, ok := r.routes[ref.Kind]; ok && strings.TrimSpace(name) != "" {
			routeName = strings.TrimSpace(name)
		}
	}

	builder, err := r.safeBuilder(group, routeName)
	if err != nil {
		return "", err
	}

	slugValue := ref.SlugEn
	if localeKey == "ar" && ref.SlugAr != "" {
		slugValue = ref.SlugAr
	}
	builder.WithParam(r.slugParam, slugValue)
	if r.localeParam != "" && localeKey != "" {
		builder.WithParam(r.localeParam, localeKey)
	}

	url, err := builder.Build()
	if err != nil {
		return "", err
	}
	return url, nil
}

func (r *LinkResolver) groupForPath(path string) (*urlkit.Group, error) {
	r.mu.RLock()
	group, ok := r.groupCache[path]
	r.mu.RUnlock()
	if ok {
		return group, nil
	}

	parts := strings.Split(path, ".")
	if len(parts) == 0 {
		return nil, fmt.Errorf("hero: invalid route group path %q", path)
	}

	root, err := lookupGroup(r.manager, parts[0])
	if err != nil {
		return nil, err
	}
	current := root
	for _, part := range parts[1:] {
		current, err = lookupChildGroup(current, part)
		if err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	r.groupCache[path] = current
	r.mu.Unlock()
	return current, nil
}

// safeBuilder wraps go-urlkit's panic on unknown route names into an error.
func (r *LinkResolver) safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("hero: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			builder = nil
			err = fmt.Errorf("hero: urlkit route %q: %v", route, rec)
		}
	}()
	builder = group.Builder(route)
	return builder, nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("hero: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("hero: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, nil
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	if parent == nil {
		return nil, fmt.Errorf("hero: parent group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("hero: child group %q not found", name)
		}
	}()
	group = parent.Group(name)
	return group, nil
}
