package cache

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestOTPStoreVerifyConsumes(t *testing.T) {
	s := NewOTPStore(time.Minute)
	_ = s.Reserve("Ana@CMS.local", "123456")

	if !pending(s, "ana@cms.local") {
		t.Fatal("code should be pending, key is case-insensitive")
	}
	if s.Verify("ana@cms.local", "000000") {
		t.Error("wrong code accepted")
	}
	if !s.Verify("ana@cms.local", "123456") {
		t.Error("right code rejected")
	}
	if pending(s, "ana@cms.local") || s.Verify("ana@cms.local", "123456") {
		t.Error("code must be single use")
	}
}

func TestOTPStoreDropsAfterMaxAttempts(t *testing.T) {
	s := NewOTPStore(time.Minute)
	s.MaxAttempts = 2
	_ = s.Reserve("ana@cms.local", "123456")

	s.Verify("ana@cms.local", "1")
	s.Verify("ana@cms.local", "2")
	if s.Verify("ana@cms.local", "123456") {
		t.Error("code must be dropped after max attempts")
	}
}

func TestOTPStoreExpires(t *testing.T) {
	s := NewOTPStore(20 * time.Millisecond)
	_ = s.Reserve("ana@cms.local", "123456")
	time.Sleep(40 * time.Millisecond)
	if pending(s, "ana@cms.local") {
		t.Error("code should have expired")
	}
}

func TestOTPStoreReserveIsExclusive(t *testing.T) {
	s := NewOTPStore(time.Minute)

	var wg sync.WaitGroup
	var won atomic.Int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if s.Reserve("ana@cms.local", fmt.Sprintf("%06d", i)) == nil {
				won.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if won.Load() != 1 {
		t.Fatalf("reservations = %d, want 1", won.Load())
	}
	if err := s.Reserve("ANA@cms.local", "999999"); !errors.Is(err, ErrPending) {
		t.Errorf("Reserve() = %v, want ErrPending", err)
	}
}

func pending(s *OTPStore, email string) bool {
	_, found := s.entries.Get(key(email))
	return found
}
