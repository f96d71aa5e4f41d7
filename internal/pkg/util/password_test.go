package util

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndCompare(t *testing.T) {
	pwd := UsePassword()

	hash, err := pwd.Hash("s3nh@-forte")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Errorf("unexpected hash prefix: %s", hash)
	}
	if err := pwd.Compare(hash, "s3nh@-forte"); err != nil {
		t.Errorf("Compare(correct) = %v", err)
	}
	if err := pwd.Compare(hash, "errada"); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("Compare(wrong) = %v, want ErrInvalidPassword", err)
	}

	again, _ := pwd.Hash("s3nh@-forte")
	if again == hash {
		t.Error("salt must make hashes differ")
	}
}

func TestCompareInvalidHash(t *testing.T) {
	for _, h := range []string{"", "plain", "$bcrypt$x$y$z$w", "$argon2id$v=19$m=x$a$b"} {
		if err := UsePassword().Compare(h, "x"); !errors.Is(err, ErrInvalidHash) {
			t.Errorf("Compare(%q) = %v, want ErrInvalidHash", h, err)
		}
	}
}
