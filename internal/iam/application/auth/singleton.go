package auth

import (
	"errors"
	"sync"

	"case-management-system/internal/iam/middleware"
)

var (
	controllerInstance Controller
	serviceInstance    Service
	once               sync.Once
	initErr            error
	ErrNotInitialized  = errors.New("auth controller not initialized")
)

type UseAuth struct {
	Service    Service
	Controller Controller
}

func New(deps Dependencies, mw middleware.Middleware) (Controller, error) {
	once.Do(func() {
		if deps.Users == nil || deps.Tokens == nil || deps.Passwords == nil || deps.Sessions == nil {
			initErr = errors.New("auth dependencies cannot be nil")
			return
		}
		if mw == nil {
			initErr = errors.New("middleware cannot be nil")
			return
		}

		serviceInstance = NewService(deps)
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

func MustUse() *UseAuth {
	if controllerInstance == nil || serviceInstance == nil {
		panic(ErrNotInitialized)
	}
	return &UseAuth{Service: serviceInstance, Controller: controllerInstance}
}
