package roles

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

// mapSource serves role definitions from memory.
type mapSource struct {
	mu   sync.RWMutex
	defs map[string]Role
}

// NewMapSource creates a Source over an in-memory role map. The input is
// deep-copied so later mutations by the caller have no effect.
func NewMapSource(defs map[string]Role) Source {
	cp := make(map[string]Role, len(defs))
	for name, def := range defs {
		cp[name] = Role{
			Permissions: slices.Clone(def.Permissions),
			Inherits:    slices.Clone(def.Inherits),
		}
	}
	return &mapSource{defs: cp}
}

func (s *mapSource) Load(ctx context.Context) (map[string]Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defs, nil
}

// fileSource loads role definitions from a YAML file of the form:
//
//	roles:
//	  inspector:
//	    permissions: [properties.read, inspections.read]
//	  auditor:
//	    inherits: [inspector]
//	    permissions: [inspections.review]
type fileSource struct {
	path string
}

// NewFileSource creates a Source that reads role definitions from the YAML
// file at path on every Load.
func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

func (s *fileSource) Load(ctx context.Context) (map[string]Role, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("roles: reading %s: %w", s.path, err)
	}

	var doc struct {
		Roles map[string]Role `yaml:"roles"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Join(fmt.Errorf("roles: parsing %s", s.path), err)
	}

	if doc.Roles == nil {
		doc.Roles = make(map[string]Role)
	}
	return doc.Roles, nil
}
