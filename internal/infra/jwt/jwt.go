package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var singleton *TokenGenerator

var ErrInvalidToken = errors.New("invalid access token")

type AccessTokenClaims struct {
	TeamID string `json:"team,omitempty"`
	RoleID string `json:"role"`
	jwt.RegisteredClaims
}

type RefreshTokenClaims struct {
	jwt.RegisteredClaims
}

type TokenGenerator struct {
	accessSecretKey  []byte
	refreshSecretKey []byte
	issuer           string
	accessExpiry     time.Duration
}

type Config struct {
	AccessSecret  string
	RefreshSecret string
	Issuer        string
	AccessExpiry  time.Duration
}

func NewGenerator(cfg Config) (*TokenGenerator, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("segredos JWT não podem estar vazios")
	}
	if cfg.Issuer == "" {
		return nil, fmt.Errorf("emissor (issuer) JWT não pode estar vazio")
	}
	if cfg.AccessExpiry <= 0 {
		return nil, fmt.Errorf("expiração do token deve ser positiva")
	}

	return &TokenGenerator{
		accessSecretKey:  []byte(cfg.AccessSecret),
		refreshSecretKey: []byte(cfg.RefreshSecret),
		issuer:           cfg.Issuer,
		accessExpiry:     cfg.AccessExpiry,
	}, nil
}

// Init inicializa o singleton (chamar apenas uma vez, no bootstrap).
func Init(cfg Config) error {
	tg, err := NewGenerator(cfg)
	if err != nil {
		return err
	}
	singleton = tg
	return nil
}

func Use() *TokenGenerator {
	if singleton == nil {
		panic("JWT package não foi inicializado. Chame jwt.Init(cfg) no startup da aplicação.")
	}
	return singleton
}

// GenerateAccessToken emite um token com jti aleatório, de modo que dois
// logins no mesmo segundo nunca geram o mesmo valor.
func (tg *TokenGenerator) GenerateAccessToken(userID, roleID uuid.UUID, teamID *uuid.UUID) (string, time.Time, error) {
	now := time.Now().UTC()
	expirationTime := now.Add(tg.accessExpiry)

	claims := &AccessTokenClaims{
		RoleID: roleID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tg.issuer,
		},
	}
	if teamID != nil {
		claims.TeamID = teamID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tg.accessSecretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("erro ao assinar o access token: %w", err)
	}

	return tokenString, expirationTime, nil
}

// ValidateAccessToken confere assinatura, algoritmo, emissor e expiração.
func (tg *TokenGenerator) ValidateAccessToken(tokenString string) (*AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return tg.accessSecretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tg.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, fmt.Errorf("%w: subject inválido", ErrInvalidToken)
	}
	return claims, nil
}

func (tg *TokenGenerator) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	claims := &RefreshTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Subject:  userID.String(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
			Issuer:   tg.issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tg.refreshSecretKey)
	if err != nil {
		return "", fmt.Errorf("erro ao assinar o refresh token: %w", err)
	}
	return tokenString, nil
}
