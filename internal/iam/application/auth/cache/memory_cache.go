package cache

import (
	"crypto/subtle"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

const DefaultMaxAttempts = 5

var ErrPending = errors.New("otp already pending")

type otpEntry struct {
	code     string
	attempts int
}

// OTPStore guarda códigos OTP por e-mail com expiração. Após MaxAttempts
// tentativas erradas o código é descartado.
type OTPStore struct {
	mu          sync.Mutex
	entries     *cache.Cache
	ttl         time.Duration
	MaxAttempts int
}

func NewOTPStore(ttl time.Duration) *OTPStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &OTPStore{
		entries:     cache.New(ttl, 2*ttl),
		ttl:         ttl,
		MaxAttempts: DefaultMaxAttempts,
	}
}

func (s *OTPStore) TTL() time.Duration {
	return s.ttl
}

// Reserve grava o código só se não houver outro válido para o e-mail; a
// checagem e a escrita são uma única operação do go-cache.
func (s *OTPStore) Reserve(email, code string) error {
	if err := s.entries.Add(key(email), &otpEntry{code: code}, cache.DefaultExpiration); err != nil {
		return ErrPending
	}
	return nil
}

// Verify consome o código quando ele confere.
func (s *OTPStore) Verify(email, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(email)
	v, found := s.entries.Get(k)
	if !found {
		return false
	}
	entry := v.(*otpEntry)

	if subtle.ConstantTimeCompare([]byte(entry.code), []byte(code)) == 1 {
		s.entries.Delete(k)
		return true
	}

	entry.attempts++
	if entry.attempts >= s.MaxAttempts {
		s.entries.Delete(k)
	}
	return false
}

func (s *OTPStore) Delete(email string) {
	s.entries.Delete(key(email))
}

func key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
