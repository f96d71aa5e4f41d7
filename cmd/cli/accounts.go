package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"case-management-system/internal/iam/domain/model"
)

var ErrAdminRoleMissing = errors.New("papel administrador não encontrado; rode --migration-seed antes")

type roleLister interface {
	List(ctx context.Context) ([]model.Role, error)
}

type userCreator interface {
	Create(ctx context.Context, u model.User) (model.User, error)
}

type sessionPurger interface {
	PurgeExpired(ctx context.Context, retention time.Duration) (int64, error)
}

type adminInput struct {
	Name     string
	Email    string
	Password string
}

func (in adminInput) validate() error {
	switch {
	case in.Email == "":
		return errors.New("informe --admin-email")
	case len(in.Password) < 8:
		return errors.New("--admin-password precisa de ao menos 8 caracteres")
	}
	return nil
}

// createAdmin cria um usuário com o papel semeado administrador, sem equipe.
func createAdmin(ctx context.Context, roles roleLister, users userCreator, in adminInput) (model.User, error) {
	if err := in.validate(); err != nil {
		return model.User{}, err
	}
	if in.Name == "" {
		in.Name = "Administrador"
	}

	list, err := roles.List(ctx)
	if err != nil {
		return model.User{}, fmt.Errorf("falha ao listar papéis: %w", err)
	}
	var adminRole *model.Role
	for i := range list {
		if list[i].Name == model.RoleAdministrador {
			adminRole = &list[i]
			break
		}
	}
	if adminRole == nil {
		return model.User{}, ErrAdminRoleMissing
	}

	return users.Create(ctx, model.User{
		RoleUUID: adminRole.UUID,
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	})
}

func purgeSessions(ctx context.Context, sessions sessionPurger, retention time.Duration) (int64, error) {
	n, err := sessions.PurgeExpired(ctx, retention)
	if err != nil {
		return 0, fmt.Errorf("falha ao remover sessões expiradas: %w", err)
	}
	return n, nil
}
