package jwtstring

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Claims — структура утверждений токена доступа: только стандартные поля,
// субъект — имя администратора.
type Claims struct {
	jwt.RegisteredClaims
}

// Signer параметры подписи токенов.
type Signer struct {
	Key       []byte
	Algorithm string
	TTL       time.Duration
}

// BuildJWTString создаёт токен для subject и возвращает его в виде строки.
func (s Signer) BuildJWTString(subject string) (string, error) {
	method := jwt.GetSigningMethod(s.Algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return "", fmt.Errorf("unsupported signing method %q", s.Algorithm)
	}

	now := time.Now()
	token := jwt.NewWithClaims(method, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	})

	tokenString, err := token.SignedString(s.Key)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
