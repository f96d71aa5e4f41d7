package archive

import (
	"context"
	"errors"

	"case-management-system/internal/casework/domain/model"
	"case-management-system/internal/iam/permission"
	"case-management-system/internal/infra/database/postgres"
	"case-management-system/internal/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// O escopo do arquivo usa o dono e a equipe do caso original.
var (
	scopeColumns     = permission.Columns{Owner: "archived_cases.owner_uuid", Team: "archived_cases.team_uuid"}
	caseScopeColumns = permission.Columns{Owner: "cases.owner_uuid", Team: "cases.team_uuid"}
)

type ListFilter struct {
	Search string
	Page   pagination.Request
}

type Repository interface {
	Archive(ctx context.Context, caseUUID, archivedBy uuid.UUID, reason string, scope permission.Filter) (model.ArchivedCase, model.Case, error)
	Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.ArchivedCase, error)
	List(ctx context.Context, filter ListFilter, scope permission.Filter) ([]model.ArchivedCase, int64, error)
	Restore(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.ArchivedCase, model.Case, error)
	Delete(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.ArchivedCase, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func scoped(tx *gorm.DB, cols permission.Columns, scope permission.Filter) *gorm.DB {
	if where, args := scope.Predicate(cols); where != "" {
		return tx.Where(where, args...)
	}
	return tx
}

// Archive grava o snapshot e remove o caso na mesma transação.
func (r *repositoryImpl) Archive(ctx context.Context, caseUUID, archivedBy uuid.UUID, reason string, scope permission.Filter) (model.ArchivedCase, model.Case, error) {
	var (
		archived model.ArchivedCase
		original model.Case
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := scoped(tx.Clauses(clause.Locking{Strength: "UPDATE"}), caseScopeColumns, scope)
		if err := query.Where("cases.uuid = ?", caseUUID).First(&original).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCaseNotFound
			}
			return err
		}

		var err error
		archived, err = snapshotOf(original, archivedBy, reason)
		if err != nil {
			return err
		}
		if err := tx.Create(&archived).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Case{}, "uuid = ?", original.UUID).Error
	})
	if err != nil {
		return model.ArchivedCase{}, model.Case{}, err
	}
	return archived, original, nil
}

func (r *repositoryImpl) Read(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.ArchivedCase, error) {
	var a model.ArchivedCase
	query := scoped(r.db.WithContext(ctx), scopeColumns, scope)
	if err := query.Where("archived_cases.uuid = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ArchivedCase{}, ErrNotFound
		}
		return model.ArchivedCase{}, err
	}
	return a, nil
}

func (r *repositoryImpl) List(ctx context.Context, f ListFilter, scope permission.Filter) ([]model.ArchivedCase, int64, error) {
	query := scoped(r.db.WithContext(ctx).Model(&model.ArchivedCase{}), scopeColumns, scope)
	if f.Search != "" {
		like := postgres.Contains(f.Search)
		query = query.Where("(archived_cases.numero_caso ILIKE ? OR archived_cases.reason ILIKE ?)", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []model.ArchivedCase
	err := query.Order("archived_cases.archived_at DESC").
		Limit(f.Page.Size).Offset(f.Page.Offset()).Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Restore recria o caso com o UUID original e apaga o arquivo. Se o número
// do caso já foi reutilizado a transação é desfeita.
func (r *repositoryImpl) Restore(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.ArchivedCase, model.Case, error) {
	var (
		archived model.ArchivedCase
		restored model.Case
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := scoped(tx.Clauses(clause.Locking{Strength: "UPDATE"}), scopeColumns, scope)
		if err := query.Where("archived_cases.uuid = ?", id).First(&archived).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var err error
		restored, err = restoreFrom(archived)
		if err != nil {
			return err
		}
		if err := tx.Create(&restored).Error; err != nil {
			if postgres.IsUniqueViolation(err) {
				return ErrNumeroReused
			}
			return err
		}
		return tx.Delete(&model.ArchivedCase{}, "uuid = ?", archived.UUID).Error
	})
	if err != nil {
		return model.ArchivedCase{}, model.Case{}, err
	}
	return archived, restored, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID, scope permission.Filter) (model.ArchivedCase, error) {
	var archived model.ArchivedCase
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := scoped(tx, scopeColumns, scope)
		if err := query.Where("archived_cases.uuid = ?", id).First(&archived).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Delete(&model.ArchivedCase{}, "uuid = ?", archived.UUID).Error
	})
	if err != nil {
		return model.ArchivedCase{}, err
	}
	return archived, nil
}
