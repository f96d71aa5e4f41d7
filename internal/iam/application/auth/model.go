package auth

import (
	"time"

	"case-management-system/internal/iam/domain/model"
)

// Login é o resultado de uma autenticação bem-sucedida.
type Login struct {
	User    model.User
	Session model.Session
	Token   string
	Expiry  time.Time
}

// Client identifica a origem do login gravada na sessão.
type Client struct {
	IP        string
	UserAgent string
}
