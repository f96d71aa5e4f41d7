package audit

import (
	"errors"
	"sync"

	"case-management-system/internal/iam/middleware"
	"case-management-system/internal/pkg/log/auditoria_log"
)

var (
	controllerInstance Controller
	once               sync.Once
	initErr            error
	ErrNotInitialized  = errors.New("audit controller not initialized")
)

// New depende do auditoria_log já inicializado; a consulta funciona mesmo com a gravação desligada.
func New(mw middleware.Middleware) (Controller, error) {
	once.Do(func() {
		if mw == nil {
			initErr = errors.New("middleware cannot be nil")
			return
		}
		reader, err := auditoria_log.UseReader()
		if err != nil {
			initErr = err
			return
		}
		controllerInstance = NewController(reader, mw)
	})

	return controllerInstance, initErr
}

func Use() (Controller, error) {
	if controllerInstance == nil {
		return nil, ErrNotInitialized
	}
	return controllerInstance, nil
}
