package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbusmart/commerce-api/models"
)

func TestDefaultTable(t *testing.T) {
	table := Default()

	// Shoppers and guests hold no privileged capability.
	for _, action := range []Action{ActionProductWrite, ActionOrderManage, ActionTicketManage, ActionUserList, ActionStatsView, ActionAdminManage} {
		assert.False(t, table.Allow(models.RoleUser, action), "USER holds %s", action)
		assert.False(t, table.Allow(models.RoleGuest, action), "GUEST holds %s", action)
	}

	assert.True(t, table.Allow(models.RoleAdmin, ActionProductWrite))
	assert.True(t, table.Allow(models.RoleAdmin, ActionOrderManage))
	assert.True(t, table.Allow(models.RoleAdmin, ActionTicketManage))
	assert.True(t, table.Allow(models.RoleAdmin, ActionStatsView))

	// Role management stays with the super admin.
	assert.False(t, table.Allow(models.RoleAdmin, ActionAdminManage))
	assert.True(t, table.Allow(models.RoleSuperAdmin, ActionAdminManage))
}

func TestLoadFileReplacesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "permissions.yaml")
	content := `roles:
  - name: ADMIN
    actions:
      - ticket:manage
  - name: SUPPORT
    actions:
      - ticket:manage
      - stats:view
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	table, err := LoadFile(path)
	require.NoError(t, err)

	assert.True(t, table.Allow(models.RoleAdmin, ActionTicketManage))
	assert.False(t, table.Allow(models.RoleAdmin, ActionProductWrite), "file grants replace the built-ins")
	assert.True(t, table.Allow(models.Role("SUPPORT"), ActionStatsView))
	assert.False(t, table.Allow(models.RoleSuperAdmin, ActionAdminManage))
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roles: {not: a list}"), 0o600))
	_, err = LoadFile(path)
	assert.Error(t, err)
}
