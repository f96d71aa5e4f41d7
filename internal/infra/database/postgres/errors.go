package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE tratados pelos repositórios.
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
	CheckViolation      = "23514"
)

// PgError extrai o *pgconn.PgError de err, se houver.
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func IsUniqueViolation(err error) bool {
	pgErr, ok := PgError(err)
	return ok && pgErr.Code == UniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	pgErr, ok := PgError(err)
	return ok && pgErr.Code == ForeignKeyViolation
}

// Constraint devolve o nome da constraint violada (vazio se não for PgError).
func Constraint(err error) string {
	if pgErr, ok := PgError(err); ok {
		return pgErr.ConstraintName
	}
	return ""
}
