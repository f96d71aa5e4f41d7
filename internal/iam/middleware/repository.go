package middleware

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/permission"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetLogin(ctx context.Context, token string) (*Login, error)
	RolePermissions(ctx context.Context, roleUUID uuid.UUID) ([]permission.Permission, error)
	TouchSession(ctx context.Context, sessionUUID uuid.UUID, at time.Time) error
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type loginQueryResult struct {
	SessionUUID     uuid.UUID      `gorm:"column:session_uuid"`
	Token           string         `gorm:"column:token"`
	SessionIP       string         `gorm:"column:ip"`
	SessionAgent    string         `gorm:"column:user_agent"`
	ExpiresAt       time.Time      `gorm:"column:expires_at"`
	LastActivity    time.Time      `gorm:"column:last_activity"`
	RevokedAt       *time.Time     `gorm:"column:revoked_at"`
	SessionCreateAt time.Time      `gorm:"column:session_create_at"`
	UserUUID        uuid.UUID      `gorm:"column:user_uuid"`
	RoleUUID        uuid.UUID      `gorm:"column:role_uuid"`
	UserTeamUUID    *uuid.UUID     `gorm:"column:team_uuid"`
	UserName        string         `gorm:"column:user_name"`
	UserEmail       string         `gorm:"column:user_email"`
	UserLive        bool           `gorm:"column:user_live"`
	LastLoginAt     *time.Time     `gorm:"column:last_login_at"`
	UserCreateAt    time.Time      `gorm:"column:user_create_at"`
	UserUpdateAt    time.Time      `gorm:"column:user_update_at"`
	RoleName        string         `gorm:"column:role_name"`
	TeamCode        sql.NullString `gorm:"column:team_code"`
	TeamName        sql.NullString `gorm:"column:team_name"`
	TeamLive        sql.NullBool   `gorm:"column:team_live"`
}

const loginQuery = `
SELECT
        s.uuid AS session_uuid,
        s.token,
        s.ip,
        s.user_agent,
        s.expires_at,
        s.last_activity,
        s.revoked_at,
        s.create_at AS session_create_at,
        u.uuid AS user_uuid,
        u.role_uuid,
        u.team_uuid,
        u.name AS user_name,
        u.email AS user_email,
        u.live AS user_live,
        u.last_login_at,
        u.create_at AS user_create_at,
        u.update_at AS user_update_at,
        r.name AS role_name,
        t.code AS team_code,
        t.name AS team_name,
        t.live AS team_live
FROM user_sessions AS s
INNER JOIN users AS u ON u.uuid = s.user_uuid
INNER JOIN roles AS r ON r.uuid = u.role_uuid
LEFT JOIN teams AS t ON t.uuid = u.team_uuid
WHERE s.token = ?
LIMIT 1`

func (r *repositoryImpl) GetLogin(ctx context.Context, token string) (*Login, error) {
	if token == "" {
		return nil, errors.New("token cannot be empty")
	}

	var result loginQueryResult
	query := r.db.WithContext(ctx).Raw(loginQuery, token).Scan(&result)
	if query.Error != nil {
		return nil, query.Error
	}
	if query.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	login := &Login{
		User: model.User{
			UUID:        result.UserUUID,
			RoleUUID:    result.RoleUUID,
			TeamUUID:    result.UserTeamUUID,
			Name:        result.UserName,
			Email:       result.UserEmail,
			Live:        result.UserLive,
			LastLoginAt: result.LastLoginAt,
			CreateAt:    result.UserCreateAt,
			UpdateAt:    result.UserUpdateAt,
			Role:        model.Role{UUID: result.RoleUUID, Name: result.RoleName},
		},
		Session: model.Session{
			UUID:         result.SessionUUID,
			UserUUID:     result.UserUUID,
			Token:        result.Token,
			IP:           result.SessionIP,
			UserAgent:    result.SessionAgent,
			ExpiresAt:    result.ExpiresAt,
			LastActivity: result.LastActivity,
			RevokedAt:    result.RevokedAt,
			CreateAt:     result.SessionCreateAt,
		},
	}

	if result.UserTeamUUID != nil {
		login.User.Team = &model.Team{
			UUID: *result.UserTeamUUID,
			Code: result.TeamCode.String,
			Name: result.TeamName.String,
			Live: result.TeamLive.Bool,
		}
	}

	return login, nil
}

func (r *repositoryImpl) RolePermissions(ctx context.Context, roleUUID uuid.UUID) ([]permission.Permission, error) {
	var rows []model.Permission
	err := r.db.WithContext(ctx).
		Joins("INNER JOIN role_permissions AS rp ON rp.permission_uuid = permissions.uuid").
		Where("rp.role_uuid = ?", roleUUID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	grants := make([]permission.Permission, len(rows))
	for i, p := range rows {
		grants[i] = p.Grant()
	}
	return grants, nil
}

func (r *repositoryImpl) TouchSession(ctx context.Context, sessionUUID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("uuid = ?", sessionUUID).
		Update("last_activity", at).Error
}
