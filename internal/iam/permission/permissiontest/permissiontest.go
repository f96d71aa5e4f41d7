// Package permissiontest reproduz em memória o recorte de Filter.Predicate,
// para os repositórios falsos dos testes.
package permissiontest

import (
	"case-management-system/internal/iam/permission"

	"github.com/google/uuid"
)

// Allows diz se um registro com o dono e a equipe informados passaria pelo
// predicado de f, inclusive no recuo de team para own.
func Allows(f permission.Filter, owner uuid.UUID, team *uuid.UUID) bool {
	switch f.Scope {
	case permission.ScopeAll:
		return true
	case permission.ScopeTeam:
		if f.TeamUUID != nil && *f.TeamUUID != uuid.Nil {
			return team != nil && *team == *f.TeamUUID
		}
		return owner == f.UserUUID
	case permission.ScopeOwn:
		return owner == f.UserUUID
	default:
		return false
	}
}
