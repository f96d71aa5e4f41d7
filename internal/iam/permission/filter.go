package permission

import "github.com/google/uuid"

// Filter é o resultado da autorização aplicado às consultas de um módulo.
type Filter struct {
	Scope    Scope
	UserUUID uuid.UUID
	TeamUUID *uuid.UUID
}

// Columns indica as colunas de dono e de equipe da tabela consultada.
// Uma coluna vazia significa que a tabela não possui esse vínculo.
type Columns struct {
	Owner string
	Team  string
}

const denyAll = "1 = 0"

// Predicate traduz o escopo em um fragmento WHERE. Um fragmento vazio significa
// sem restrição. Escopo team sem equipe (ou sem coluna de equipe) reduz para own;
// own sem coluna de dono usa a equipe.
func (f Filter) Predicate(cols Columns) (string, []any) {
	switch f.Scope {
	case ScopeAll:
		return "", nil

	case ScopeTeam:
		if cols.Team != "" && f.hasTeam() {
			return cols.Team + " = ?", []any{*f.TeamUUID}
		}
		return f.ownPredicate(cols)

	case ScopeOwn:
		return f.ownPredicate(cols)

	default:
		return denyAll, nil
	}
}

func (f Filter) ownPredicate(cols Columns) (string, []any) {
	if cols.Owner != "" {
		return cols.Owner + " = ?", []any{f.UserUUID}
	}
	if cols.Team != "" && f.hasTeam() {
		return cols.Team + " = ?", []any{*f.TeamUUID}
	}
	return denyAll, nil
}

func (f Filter) hasTeam() bool {
	return f.TeamUUID != nil && *f.TeamUUID != uuid.Nil
}
