package role

import (
	"context"
	"errors"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/infra/database/postgres"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Catalogue(ctx context.Context) ([]model.Permission, error)
	List(ctx context.Context) ([]model.Role, error)
	Read(ctx context.Context, id uuid.UUID) (model.Role, error)
	Create(ctx context.Context, role model.Role, permissionUUIDs []uuid.UUID) (model.Role, error)
	Update(ctx context.Context, role model.Role) (model.Role, error)
	ReplacePermissions(ctx context.Context, id uuid.UUID, permissionUUIDs []uuid.UUID) (model.Role, error)
	CountUsers(ctx context.Context, id uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type rolePermission struct {
	RoleUUID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PermissionUUID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (rolePermission) TableName() string {
	return "role_permissions"
}

func (r *repositoryImpl) Catalogue(ctx context.Context) ([]model.Permission, error) {
	var perms []model.Permission
	err := r.db.WithContext(ctx).Order("module ASC, action ASC, scope ASC").Find(&perms).Error
	return perms, err
}

func (r *repositoryImpl) List(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	err := r.db.WithContext(ctx).Preload("Permissions").Order("name ASC").Find(&roles).Error
	return roles, err
}

func (r *repositoryImpl) Read(ctx context.Context, id uuid.UUID) (model.Role, error) {
	return read(ctx, r.db, id)
}

func read(ctx context.Context, db *gorm.DB, id uuid.UUID) (model.Role, error) {
	var role model.Role
	if err := db.WithContext(ctx).Preload("Permissions").Where("uuid = ?", id).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Role{}, ErrNotFound
		}
		return model.Role{}, err
	}
	return role, nil
}

func (r *repositoryImpl) Create(ctx context.Context, role model.Role, permissionUUIDs []uuid.UUID) (model.Role, error) {
	var created model.Role
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		role.Permissions = nil
		if err := tx.Omit(clause.Associations).Create(&role).Error; err != nil {
			if postgres.IsUniqueViolation(err) {
				return ErrNameDuplicated
			}
			return err
		}
		if err := replaceGrants(ctx, tx, role.UUID, permissionUUIDs); err != nil {
			return err
		}
		var err error
		created, err = read(ctx, tx, role.UUID)
		return err
	})
	return created, err
}

func (r *repositoryImpl) Update(ctx context.Context, role model.Role) (model.Role, error) {
	err := r.db.WithContext(ctx).Model(&model.Role{UUID: role.UUID}).
		Updates(map[string]interface{}{"name": role.Name, "description": role.Description}).Error
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return model.Role{}, ErrNameDuplicated
		}
		return model.Role{}, err
	}
	return r.Read(ctx, role.UUID)
}

func (r *repositoryImpl) ReplacePermissions(ctx context.Context, id uuid.UUID, permissionUUIDs []uuid.UUID) (model.Role, error) {
	var updated model.Role
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_uuid = ?", id).Delete(&rolePermission{}).Error; err != nil {
			return err
		}
		if err := replaceGrants(ctx, tx, id, permissionUUIDs); err != nil {
			return err
		}
		if err := tx.Model(&model.Role{UUID: id}).UpdateColumn("update_at", gorm.Expr("NOW()")).Error; err != nil {
			return err
		}
		var err error
		updated, err = read(ctx, tx, id)
		return err
	})
	return updated, err
}

// replaceGrants insere os vínculos após confirmar que todas as permissões existem.
func replaceGrants(ctx context.Context, tx *gorm.DB, roleUUID uuid.UUID, permissionUUIDs []uuid.UUID) error {
	if len(permissionUUIDs) == 0 {
		return nil
	}

	var found int64
	if err := tx.WithContext(ctx).Model(&model.Permission{}).Where("uuid IN ?", permissionUUIDs).Count(&found).Error; err != nil {
		return err
	}
	if found != int64(len(permissionUUIDs)) {
		return ErrPermissionNotFound
	}

	rows := make([]rolePermission, len(permissionUUIDs))
	for i, p := range permissionUUIDs {
		rows[i] = rolePermission{RoleUUID: roleUUID, PermissionUUID: p}
	}
	return tx.WithContext(ctx).Create(&rows).Error
}

func (r *repositoryImpl) CountUsers(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("role_uuid = ?", id).Count(&n).Error
	return n, err
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Role{}, "uuid = ?", id)
	if result.Error != nil {
		if postgres.IsForeignKeyViolation(result.Error) {
			return ErrHasUsers
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
