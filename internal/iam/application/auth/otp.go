package auth

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// GenerateOTP devolve um código numérico de digits dígitos (zeros à esquerda preservados).
func GenerateOTP(digits int) (string, error) {
	if digits <= 0 {
		return "", errors.New("otp length must be positive")
	}
	var sb strings.Builder
	sb.Grow(digits)
	ten := big.NewInt(10)
	for i := 0; i < digits; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}
	return sb.String(), nil
}
