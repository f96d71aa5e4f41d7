package user

import (
	"errors"
	"sync"

	"case-management-system/internal/iam/middleware"

	"gorm.io/gorm"
)

var (
	controllerInstance Controller
	serviceInstance    Service
	repositoryInstance Repository
	once               sync.Once
	initErr            error
	ErrNotInitialized  = errors.New("user controller not initialized")
)

type UseUser struct {
	Repository Repository
	Service    Service
	Controller Controller
}

// New usa hasher para as senhas; nil cai no argon2 padrão de util.
func New(db *gorm.DB, mw middleware.Middleware, hasher PasswordHasher) (Controller, error) {
	once.Do(func() {
		if db == nil {
			initErr = errors.New("database connection cannot be nil")
			return
		}
		if mw == nil {
			initErr = errors.New("middleware cannot be nil")
			return
		}

		repositoryInstance = NewRepository(db)
		serviceInstance = NewService(repositoryInstance, hasher)
		controllerInstance = NewController(serviceInstance, mw)
	})

	return controllerInstance, initErr
}

func Use() (Controller, error) {
	if controllerInstance == nil {
		return nil, ErrNotInitialized
	}
	return controllerInstance, nil
}

// MustUse expõe o Service para o fluxo de autenticação.
func MustUse() *UseUser {
	if serviceInstance == nil {
		panic(ErrNotInitialized)
	}
	return &UseUser{
		Repository: repositoryInstance,
		Service:    serviceInstance,
		Controller: controllerInstance,
	}
}
