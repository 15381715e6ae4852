package role

import (
	"sort"

	"github.com/hypideas/identity-api/internal/domain"
)

// Evaluator answers permission checks against a fixed role table.
type Evaluator interface {
	HasPermission(roleName, permission string) bool
	Permissions(roleName string) []string
	List() []domain.Role
}

type evaluator struct {
	table map[string]map[string]struct{}
	names []string
}

// NewEvaluator copies the given role table so later mutation of the input map
// cannot change evaluation results. Unknown roles and permissions deny.
func NewEvaluator(table map[string][]string) Evaluator {
	e := &evaluator{table: make(map[string]map[string]struct{}, len(table))}
	for name, perms := range table {
		set := make(map[string]struct{}, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		e.table[name] = set
		e.names = append(e.names, name)
	}
	sort.Strings(e.names)
	return e
}

func (e *evaluator) HasPermission(roleName, permission string) bool {
	perms, ok := e.table[roleName]
	if !ok {
		return false
	}
	_, ok = perms[permission]
	return ok
}

// Permissions returns a sorted copy of the role's permission set.
// Returns nil for unknown roles.
func (e *evaluator) Permissions(roleName string) []string {
	set, ok := e.table[roleName]
	if !ok {
		return nil
	}
	perms := make([]string, 0, len(set))
	for p := range set {
		perms = append(perms, p)
	}
	sort.Strings(perms)
	return perms
}

func (e *evaluator) List() []domain.Role {
	roles := make([]domain.Role, 0, len(e.names))
	for _, name := range e.names {
		roles = append(roles, domain.Role{Name: name, Permissions: e.Permissions(name)})
	}
	return roles
}
