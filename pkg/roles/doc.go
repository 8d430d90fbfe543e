// Package roles defines the inspection platform's role and permission model.
//
// Three built-in roles form an inheritance chain — admin inherits auditor
// inherits inspector — and deployments can override or extend them from a
// YAML file. Permission names are dotted hierarchies with optional subtree
// wildcards ("reports.*"). The Authorizer precomputes the flattened
// permission set per role at construction, so checks are lock-free reads.
package roles
