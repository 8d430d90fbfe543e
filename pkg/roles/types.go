package roles

import "strings"

// Role is a named set of permissions with optional inheritance.
type Role struct {
	// Permissions directly granted to this role. Hierarchical names use
	// dots ("inspections.review") and a trailing wildcard grants a whole
	// subtree ("properties.*"). A bare "*" grants everything.
	Permissions []string `yaml:"permissions"`

	// Inherits lists role names whose permissions this role also receives.
	Inherits []string `yaml:"inherits,omitempty"`
}

// Built-in role names for the inspection platform.
const (
	// Inspector is the baseline role and the platform-wide fallback default.
	Inspector = "inspector"
	// Auditor reviews submitted inspections.
	Auditor = "auditor"
	// Admin manages users and caches.
	Admin = "admin"
)

// Defaults returns the built-in role hierarchy: admin inherits auditor,
// auditor inherits inspector.
func Defaults() map[string]Role {
	return map[string]Role{
		Inspector: {
			Permissions: []string{
				"properties.read",
				"inspections.read",
				"inspections.submit",
			},
		},
		Auditor: {
			Inherits: []string{Inspector},
			Permissions: []string{
				"inspections.review",
				"reports.read",
			},
		},
		Admin: {
			Inherits: []string{Auditor},
			Permissions: []string{
				"users.*",
				"cache.*",
				"reports.*",
			},
		},
	}
}

// granted reports whether any permission in perms covers p. Matching rules:
// exact match, global wildcard "*", or a "prefix.*" subtree wildcard.
func granted(perms []string, p string) bool {
	for _, have := range perms {
		if have == p || have == "*" {
			return true
		}
		if prefix, ok := strings.CutSuffix(have, ".*"); ok {
			if p == prefix || strings.HasPrefix(p, prefix+".") {
				return true
			}
		}
	}
	return false
}
