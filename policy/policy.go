package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nimbusmart/commerce-api/models"
)

// Action names a privileged capability checked by the authorization
// middleware. Role-based dispatch goes through one table instead of
// per-endpoint role conditionals.
type Action string

const (
	ActionProductWrite Action = "product:write"
	ActionOrderManage  Action = "order:manage"
	ActionTicketManage Action = "ticket:manage"
	ActionUserList     Action = "user:list"
	ActionStatsView    Action = "stats:view"
	ActionAdminManage  Action = "admin:manage"
)

type Table struct {
	grants map[models.Role]map[Action]struct{}
}

type fileRole struct {
	Name    string   `yaml:"name"`
	Actions []string `yaml:"actions"`
}

type fileConfig struct {
	Roles []fileRole `yaml:"roles"`
}

// Default returns the compiled-in capability table.
func Default() *Table {
	t := &Table{grants: map[models.Role]map[Action]struct{}{}}
	for _, a := range []Action{ActionProductWrite, ActionOrderManage, ActionTicketManage, ActionUserList, ActionStatsView} {
		t.grant(models.RoleAdmin, a)
	}
	for _, a := range []Action{ActionProductWrite, ActionOrderManage, ActionTicketManage, ActionUserList, ActionStatsView, ActionAdminManage} {
		t.grant(models.RoleSuperAdmin, a)
	}
	return t
}

// LoadFile reads a capability table from a YAML file. The file replaces
// the defaults entirely.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse policy file: %w", err)
	}
	t := &Table{grants: map[models.Role]map[Action]struct{}{}}
	for _, r := range cfg.Roles {
		for _, a := range r.Actions {
			t.grant(models.Role(r.Name), Action(a))
		}
	}
	return t, nil
}

func (t *Table) grant(role models.Role, action Action) {
	if t.grants[role] == nil {
		t.grants[role] = map[Action]struct{}{}
	}
	t.grants[role][action] = struct{}{}
}

// Allow reports whether role may perform action.
func (t *Table) Allow(role models.Role, action Action) bool {
	_, ok := t.grants[role][action]
	return ok
}
