package roles

import (
	"context"
	"fmt"
	"slices"
)

// Authorizer answers permission questions for resolved role names. The
// permission sets, including everything inherited, are precomputed at
// construction and treated as immutable afterwards, so all methods are safe
// for concurrent use without locking.
type Authorizer interface {
	// Can returns nil if the role holds the permission, directly or via
	// inheritance.
	Can(role, permission string) error

	// CanAny returns nil if the role holds at least one of the permissions.
	CanAny(role string, permissions ...string) error

	// CanAll returns nil if the role holds every one of the permissions.
	CanAll(role string, permissions ...string) error

	// VerifyRole returns ErrUnknownRole if the role is not defined.
	VerifyRole(role string) error

	// Roles returns all defined role names, sorted.
	Roles() []string
}

// Source provides role definitions.
type Source interface {
	Load(ctx context.Context) (map[string]Role, error)
}

type authorizer struct {
	perms map[string][]string
	names []string
}

// NewAuthorizer builds an Authorizer from the given source, flattening
// inheritance. Returns ErrCircularInheritance if the definitions cycle.
func NewAuthorizer(ctx context.Context, source Source) (Authorizer, error) {
	defs, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}

	perms := make(map[string][]string, len(defs))
	for name := range defs {
		flat, err := flatten(name, defs, nil)
		if err != nil {
			return nil, err
		}
		slices.Sort(flat)
		perms[name] = slices.Compact(flat)
	}

	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	slices.Sort(names)

	return &authorizer{perms: perms, names: names}, nil
}

// NewDefaultAuthorizer builds an Authorizer over the built-in role hierarchy.
func NewDefaultAuthorizer() Authorizer {
	a, err := NewAuthorizer(context.Background(), NewMapSource(Defaults()))
	if err != nil {
		// Defaults are static and acyclic; failing here is a programming error.
		panic(err)
	}
	return a
}

func (a *authorizer) Can(role, permission string) error {
	perms, ok := a.perms[role]
	if !ok {
		return ErrUnknownRole
	}
	if !granted(perms, permission) {
		return ErrPermissionDenied
	}
	return nil
}

func (a *authorizer) CanAny(role string, permissions ...string) error {
	perms, ok := a.perms[role]
	if !ok {
		return ErrUnknownRole
	}
	for _, p := range permissions {
		if granted(perms, p) {
			return nil
		}
	}
	if len(permissions) == 0 {
		return nil
	}
	return ErrPermissionDenied
}

func (a *authorizer) CanAll(role string, permissions ...string) error {
	perms, ok := a.perms[role]
	if !ok {
		return ErrUnknownRole
	}
	for _, p := range permissions {
		if !granted(perms, p) {
			return ErrPermissionDenied
		}
	}
	return nil
}

func (a *authorizer) VerifyRole(role string) error {
	if _, ok := a.perms[role]; !ok {
		return ErrUnknownRole
	}
	return nil
}

func (a *authorizer) Roles() []string {
	return a.names
}

// flatten collects a role's permissions including inherited ones, failing on
// inheritance cycles. path carries the chain being expanded.
func flatten(name string, defs map[string]Role, path []string) ([]string, error) {
	if slices.Contains(path, name) {
		return nil, fmt.Errorf("%w: %v -> %s", ErrCircularInheritance, path, name)
	}

	def, ok := defs[name]
	if !ok {
		// Inheriting an undefined role grants nothing rather than failing:
		// definitions may be partially rolled out across environments.
		return nil, nil
	}

	result := slices.Clone(def.Permissions)
	path = append(path, name)
	for _, parent := range def.Inherits {
		inherited, err := flatten(parent, defs, path)
		if err != nil {
			return nil, err
		}
		result = append(result, inherited...)
	}

	return result, nil
}
