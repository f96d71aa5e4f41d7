package middleware

import (
	"errors"
	"sync"

	"gorm.io/gorm"
)

var (
	middlewareInstance Middleware
	once               sync.Once
	initErr            error
	ErrNotInitialized  = errors.New("middleware not initialized")
)

// New monta o middleware uma única vez. Sem cookies a sessão só chega
// pelo header Authorization.
func New(db *gorm.DB, tokens TokenValidator, cookies *CookieSession) (Middleware, error) {
	once.Do(func() {
		switch {
		case db == nil:
			initErr = errors.New("database connection cannot be nil")
		case tokens == nil:
			initErr = errors.New("token validator cannot be nil")
		default:
			middlewareInstance = NewMiddleware(NewRepository(db), tokens, cookies)
		}
	})

	return middlewareInstance, initErr
}

func Use() (Middleware, error) {
	if middlewareInstance == nil {
		return nil, ErrNotInitialized
	}
	return middlewareInstance, nil
}
