package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testConfig() Config {
	return Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		Issuer:        "cms-test",
		AccessExpiry:  time.Hour,
	}
}

func TestNewGeneratorValidation(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"no access secret", func(c *Config) { c.AccessSecret = "" }},
		{"no refresh secret", func(c *Config) { c.RefreshSecret = "" }},
		{"no issuer", func(c *Config) { c.Issuer = "" }},
		{"no expiry", func(c *Config) { c.AccessExpiry = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mod(&cfg)
			if _, err := NewGenerator(cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tg, err := NewGenerator(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	userID, roleID, teamID := uuid.New(), uuid.New(), uuid.New()

	token, exp, err := tg.GenerateAccessToken(userID, roleID, &teamID)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Errorf("expiry in the past: %v", exp)
	}

	claims, err := tg.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if claims.Subject != userID.String() || claims.RoleID != roleID.String() || claims.TeamID != teamID.String() {
		t.Errorf("claims = %+v", claims)
	}

	other, _, _ := tg.GenerateAccessToken(userID, roleID, nil)
	if other == token {
		t.Error("two tokens for the same user must differ")
	}
}

func TestValidateRejects(t *testing.T) {
	tg, _ := NewGenerator(testConfig())

	otherCfg := testConfig()
	otherCfg.AccessSecret = "another"
	forger, _ := NewGenerator(otherCfg)
	forged, _, _ := forger.GenerateAccessToken(uuid.New(), uuid.New(), nil)

	expiredCfg := testConfig()
	expiredCfg.AccessExpiry = time.Nanosecond
	short, _ := NewGenerator(expiredCfg)
	expired, _, _ := short.GenerateAccessToken(uuid.New(), uuid.New(), nil)
	time.Sleep(1100 * time.Millisecond)

	for name, token := range map[string]string{"garbage": "abc.def.ghi", "forged": forged, "expired": expired} {
		if _, err := tg.ValidateAccessToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: err = %v, want ErrInvalidToken", name, err)
		}
	}
}
