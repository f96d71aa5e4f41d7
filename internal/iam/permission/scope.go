// Package permission resolve o escopo de visibilidade (own/team/all) concedido
// por um conjunto de permissões de um papel.
package permission

import "strings"

type Scope string

const (
	ScopeNone Scope = ""
	ScopeOwn  Scope = "own"
	ScopeTeam Scope = "team"
	ScopeAll  Scope = "all"
)

// scopeWeight define a ordem total own < team < all.
var scopeWeight = map[Scope]int{
	ScopeOwn:  1,
	ScopeTeam: 2,
	ScopeAll:  3,
}

type Permission struct {
	Module string `json:"module"`
	Action string `json:"action"`
	Scope  Scope  `json:"scope"`
}

// Name retorna o identificador "module:action", independente do escopo.
func (p Permission) Name() string {
	return Name(p.Module, p.Action)
}

func Name(module, action string) string {
	return module + ":" + action
}

func IsValidScope(s Scope) bool {
	_, ok := scopeWeight[s]
	return ok
}

// Wider informa se a é mais amplo que b.
func Wider(a, b Scope) bool {
	return scopeWeight[a] > scopeWeight[b]
}

// HighestScope retorna o maior escopo concedido para (module, action).
// O segundo retorno é false quando nenhuma permissão corresponde.
func HighestScope(perms []Permission, module, action string) (Scope, bool) {
	highest := ScopeNone
	for _, p := range perms {
		if !strings.EqualFold(p.Module, module) || !strings.EqualFold(p.Action, action) {
			continue
		}
		if !IsValidScope(p.Scope) {
			continue
		}
		if Wider(p.Scope, highest) {
			highest = p.Scope
		}
	}
	return highest, highest != ScopeNone
}

// HasAny passa se ao menos uma das permissões nomeadas estiver concedida.
func HasAny(perms []Permission, names ...string) bool {
	granted := grantedNames(perms)
	for _, n := range names {
		if granted[strings.ToLower(n)] {
			return true
		}
	}
	return false
}

// HasAll passa somente se todas as permissões nomeadas estiverem concedidas.
func HasAll(perms []Permission, names ...string) bool {
	granted := grantedNames(perms)
	for _, n := range names {
		if !granted[strings.ToLower(n)] {
			return false
		}
	}
	return true
}

func grantedNames(perms []Permission) map[string]bool {
	granted := make(map[string]bool, len(perms))
	for _, p := range perms {
		if !IsValidScope(p.Scope) {
			continue
		}
		granted[strings.ToLower(p.Name())] = true
	}
	return granted
}
