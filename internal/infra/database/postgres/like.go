package postgres

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike neutraliza os curingas de LIKE/ILIKE; o Postgres usa '\' como
// escape padrão.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Contains monta o padrão "contém" para ILIKE a partir de texto livre.
func Contains(s string) string {
	return "%" + EscapeLike(s) + "%"
}
