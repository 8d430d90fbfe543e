package roles_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayinspect/inspectkit/pkg/roles"
)

func TestDefaultAuthorizer(t *testing.T) {
	t.Parallel()

	a := roles.NewDefaultAuthorizer()

	t.Run("inspector has direct permissions", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, a.Can(roles.Inspector, "inspections.submit"))
		assert.NoError(t, a.Can(roles.Inspector, "properties.read"))
	})

	t.Run("inspector lacks auditor permissions", func(t *testing.T) {
		t.Parallel()

		assert.ErrorIs(t, a.Can(roles.Inspector, "inspections.review"), roles.ErrPermissionDenied)
	})

	t.Run("auditor inherits inspector transitively", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, a.Can(roles.Auditor, "inspections.submit"))
		assert.NoError(t, a.Can(roles.Auditor, "inspections.review"))
	})

	t.Run("admin inherits the whole chain", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, a.Can(roles.Admin, "inspections.submit"))
		assert.NoError(t, a.Can(roles.Admin, "inspections.review"))
	})

	t.Run("wildcard grants a subtree", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, a.Can(roles.Admin, "users.delete"))
		assert.NoError(t, a.Can(roles.Admin, "cache.invalidate"))
		assert.ErrorIs(t, a.Can(roles.Auditor, "users.delete"), roles.ErrPermissionDenied)
	})

	t.Run("unknown role", func(t *testing.T) {
		t.Parallel()

		assert.ErrorIs(t, a.Can("superuser", "anything"), roles.ErrUnknownRole)
		assert.ErrorIs(t, a.VerifyRole("superuser"), roles.ErrUnknownRole)
		assert.NoError(t, a.VerifyRole(roles.Inspector))
	})

	t.Run("roles are sorted", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{roles.Admin, roles.Auditor, roles.Inspector}, a.Roles())
	})
}

func TestAuthorizer_CanAnyCanAll(t *testing.T) {
	t.Parallel()

	a := roles.NewDefaultAuthorizer()

	assert.NoError(t, a.CanAny(roles.Inspector, "inspections.review", "inspections.submit"))
	assert.ErrorIs(t, a.CanAny(roles.Inspector, "inspections.review", "users.delete"), roles.ErrPermissionDenied)

	assert.NoError(t, a.CanAll(roles.Auditor, "inspections.review", "inspections.submit"))
	assert.ErrorIs(t, a.CanAll(roles.Auditor, "inspections.review", "users.delete"), roles.ErrPermissionDenied)

	// Empty permission lists are vacuously satisfied.
	assert.NoError(t, a.CanAny(roles.Inspector))
	assert.NoError(t, a.CanAll(roles.Inspector))
}

func TestNewAuthorizer_CircularInheritance(t *testing.T) {
	t.Parallel()

	src := roles.NewMapSource(map[string]roles.Role{
		"a": {Inherits: []string{"b"}},
		"b": {Inherits: []string{"a"}},
	})

	_, err := roles.NewAuthorizer(context.Background(), src)
	assert.ErrorIs(t, err, roles.ErrCircularInheritance)
}

func TestNewAuthorizer_UndefinedParentGrantsNothing(t *testing.T) {
	t.Parallel()

	src := roles.NewMapSource(map[string]roles.Role{
		"viewer": {Inherits: []string{"ghost"}, Permissions: []string{"reports.read"}},
	})

	a, err := roles.NewAuthorizer(context.Background(), src)
	require.NoError(t, err)
	assert.NoError(t, a.Can("viewer", "reports.read"))
	assert.ErrorIs(t, a.Can("viewer", "anything.else"), roles.ErrPermissionDenied)
}

func TestFileSource(t *testing.T) {
	t.Parallel()

	t.Run("loads role definitions from yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "roles.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
roles:
  inspector:
    permissions: [inspections.read, inspections.submit]
  auditor:
    inherits: [inspector]
    permissions: [inspections.review]
`), 0o600))

		a, err := roles.NewAuthorizer(context.Background(), roles.NewFileSource(path))
		require.NoError(t, err)

		assert.NoError(t, a.Can("auditor", "inspections.submit"))
		assert.NoError(t, a.Can("auditor", "inspections.review"))
		assert.ErrorIs(t, a.Can("inspector", "inspections.review"), roles.ErrPermissionDenied)
	})

	t.Run("missing file fails", func(t *testing.T) {
		t.Parallel()

		_, err := roles.NewFileSource("/nonexistent/roles.yaml").Load(context.Background())
		assert.Error(t, err)
	})

	t.Run("invalid yaml fails", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "roles.yaml")
		require.NoError(t, os.WriteFile(path, []byte("roles: ["), 0o600))

		_, err := roles.NewFileSource(path).Load(context.Background())
		assert.Error(t, err)
	})
}

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	ctx := roles.WithRole(context.Background(), roles.Auditor)
	role, ok := roles.FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, roles.Auditor, role)

	_, ok = roles.FromContext(context.Background())
	assert.False(t, ok)
}
