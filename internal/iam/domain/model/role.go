package model

import (
	"time"

	"case-management-system/internal/iam/permission"

	"github.com/google/uuid"
)

// Nomes dos papéis criados pelo seed.
const (
	RoleAdministrador = "administrador"
	RoleSupervisor    = "supervisor"
	RoleAnalista      = "analista"
)

// Permission é uma linha do catálogo: (module, action, scope).
type Permission struct {
	UUID        uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"uuid"`
	Module      string           `gorm:"type:varchar(50);not null" json:"module"`
	Action      string           `gorm:"type:varchar(50);not null" json:"action"`
	Scope       permission.Scope `gorm:"type:varchar(10);not null" json:"scope"`
	Description string           `gorm:"type:text" json:"description"`
}

func (Permission) TableName() string {
	return "permissions"
}

func (p Permission) Grant() permission.Permission {
	return permission.Permission{Module: p.Module, Action: p.Action, Scope: p.Scope}
}

type Role struct {
	UUID        uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"uuid"`
	Name        string       `gorm:"type:varchar(100);not null;unique" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	System      bool         `gorm:"not null;default:false" json:"system"`
	Permissions []Permission `gorm:"many2many:role_permissions;foreignKey:UUID;joinForeignKey:RoleUUID;references:UUID;joinReferences:PermissionUUID" json:"permissions,omitempty"`
	CreateAt    time.Time    `gorm:"column:create_at;not null;autoCreateTime" json:"create_at"`
	UpdateAt    time.Time    `gorm:"column:update_at;not null;autoUpdateTime" json:"update_at"`
}

func (Role) TableName() string {
	return "roles"
}

// Grants converte as permissões carregadas para o formato do resolvedor.
func (r Role) Grants() []permission.Permission {
	grants := make([]permission.Permission, len(r.Permissions))
	for i, p := range r.Permissions {
		grants[i] = p.Grant()
	}
	return grants
}
