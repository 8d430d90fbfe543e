package roles

import "errors"

var (
	// ErrUnknownRole is returned when a role name is not defined.
	ErrUnknownRole = errors.New("roles.unknown_role")

	// ErrPermissionDenied is returned when a role lacks a required permission.
	ErrPermissionDenied = errors.New("roles.permission_denied")

	// ErrCircularInheritance is returned when role definitions inherit in a cycle.
	ErrCircularInheritance = errors.New("roles.circular_inheritance")

	// ErrRoleNotInContext is returned when no role is carried in the context.
	ErrRoleNotInContext = errors.New("roles.role_not_in_context")

	// ErrNoAuthorizer is returned when permission checking was requested but
	// no authorizer is configured.
	ErrNoAuthorizer = errors.New("roles.no_authorizer")
)
