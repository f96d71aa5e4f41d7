package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"case-management-system/internal/iam/application/auth/cache"
	"case-management-system/internal/iam/domain/model"
	"case-management-system/internal/iam/domain/user"
	"case-management-system/internal/pkg/mailer"

	"github.com/google/uuid"
)

const otpDigits = 6

// UserFinder é satisfeito por user.Service.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	ChangePassword(ctx context.Context, id uuid.UUID, password string) error
	TouchLogin(ctx context.Context, id uuid.UUID) error
}

// TokenIssuer é satisfeito por *jwt.TokenGenerator.
type TokenIssuer interface {
	GenerateAccessToken(userID, roleID uuid.UUID, teamID *uuid.UUID) (string, time.Time, error)
}

// PasswordComparer é satisfeito por util.UsePassword().
type PasswordComparer interface {
	Compare(encodedHash, password string) error
}

// SessionStore é satisfeito por session.Service.
type SessionStore interface {
	Open(ctx context.Context, s model.Session) (model.Session, error)
	Close(ctx context.Context, token string) error
	RevokeAll(ctx context.Context, userUUID uuid.UUID) (int64, error)
}

type Dependencies struct {
	Users     UserFinder
	Tokens    TokenIssuer
	Passwords PasswordComparer
	Sessions  SessionStore
	Mailer    func() mailer.Service
	OTP       *cache.OTPStore
}

type Service interface {
	Login(ctx context.Context, email, pwd string, client Client) (Login, error)
	Logout(ctx context.Context, token string) error
	CreateOTPCode(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otpCode, pwd string) error
}

type implService struct {
	deps Dependencies
}

func NewService(deps Dependencies) Service {
	if deps.OTP == nil {
		deps.OTP = cache.NewOTPStore(5 * time.Minute)
	}
	if deps.Mailer == nil {
		deps.Mailer = mailer.Use
	}
	return &implService{deps: deps}
}

func (s *implService) Login(ctx context.Context, email, pwd string, client Client) (Login, error) {
	u, err := s.deps.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) || errors.Is(err, user.ErrInvalidInput) {
			return Login{}, ErrInvalidCredentials
		}
		return Login{}, err
	}
	if err := s.deps.Passwords.Compare(u.Password, pwd); err != nil {
		return Login{}, ErrInvalidCredentials
	}
	if !u.Live {
		return Login{}, ErrUserInactive
	}

	token, expiry, err := s.deps.Tokens.GenerateAccessToken(u.UUID, u.RoleUUID, u.TeamUUID)
	if err != nil {
		return Login{}, fmt.Errorf("generate access token: %w", err)
	}

	// sessão única: logins anteriores deixam de valer
	if _, err := s.deps.Sessions.RevokeAll(ctx, u.UUID); err != nil {
		return Login{}, fmt.Errorf("revoke previous sessions: %w", err)
	}

	sess, err := s.deps.Sessions.Open(ctx, model.Session{
		UserUUID:  u.UUID,
		Token:     token,
		IP:        client.IP,
		UserAgent: client.UserAgent,
		ExpiresAt: expiry,
	})
	if err != nil {
		return Login{}, fmt.Errorf("open session: %w", err)
	}

	if err := s.deps.Users.TouchLogin(ctx, u.UUID); err != nil {
		slog.Warn("falha ao atualizar last_login_at", slog.String("component", "AUTH"), slog.Any("error", err))
	}

	return Login{User: u, Session: sess, Token: token, Expiry: expiry}, nil
}

func (s *implService) Logout(ctx context.Context, token string) error {
	return s.deps.Sessions.Close(ctx, token)
}

// CreateOTPCode não revela se o e-mail existe: e-mail desconhecido ou usuário
// inativo termina sem erro e sem envio.
func (s *implService) CreateOTPCode(ctx context.Context, email string) error {
	u, err := s.deps.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			slog.Info("otp solicitado para e-mail desconhecido", slog.String("component", "AUTH"))
			return nil
		}
		return err
	}
	if !u.Live {
		return nil
	}
	mailService := s.deps.Mailer()
	if mailService == nil {
		return mailer.ErrMailerNotInitialized
	}

	otpCode, err := GenerateOTP(otpDigits)
	if err != nil {
		return err
	}
	if err := s.deps.OTP.Reserve(u.Email, otpCode); err != nil {
		return ErrOTPPending
	}

	err = mailService.SendTemplate(u.Email, "Código de verificação", mailer.OTPTemplate, map[string]interface{}{
		"Code":       otpCode,
		"TTLMinutes": int(s.deps.OTP.TTL().Minutes()),
	})
	if err != nil {
		s.deps.OTP.Delete(u.Email)
		return fmt.Errorf("send otp: %w", err)
	}
	return nil
}

func (s *implService) ResetPassword(ctx context.Context, email, otpCode, pwd string) error {
	u, err := s.deps.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrOTPWrong
		}
		return err
	}
	if !s.deps.OTP.Verify(u.Email, otpCode) {
		return ErrOTPWrong
	}

	if err := s.deps.Users.ChangePassword(ctx, u.UUID, pwd); err != nil {
		return err
	}
	if _, err := s.deps.Sessions.RevokeAll(ctx, u.UUID); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	return nil
}
