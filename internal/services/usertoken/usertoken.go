package usertoken

import (
	"errors"
	"fmt"

	"github.com/GevorkovG/go-qrcodes/internal/services/jwtstring"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// ErrInvalidToken токен не прошёл проверку подписи, срока действия или формата.
var ErrInvalidToken = errors.New("could not validate credentials")

// Verifier проверяет токены, подписанные ключом Key алгоритмом Algorithm.
type Verifier struct {
	Key       []byte
	Algorithm string
}

func (v Verifier) parse(tokenString string) (*jwtstring.Claims, error) {
	claims := &jwtstring.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			if t.Method.Alg() != v.Algorithm {
				return nil, fmt.Errorf("unexpected algorithm: %v", t.Method.Alg())
			}
			return v.Key, nil
		})
	if err != nil {
		zap.L().Debug("token rejected", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GetSubject возвращает субъект (имя пользователя) из валидного токена.
func (v Verifier) GetSubject(tokenString string) (string, error) {
	claims, err := v.parse(tokenString)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	return claims.Subject, nil
}

func (v Verifier) ValidationToken(tokenString string) bool {
	_, err := v.GetSubject(tokenString)
	return err == nil
}
