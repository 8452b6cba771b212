// Package admin проверяет учётные данные единственного администратора сервиса.
package admin

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials неверное имя пользователя или пароль.
var ErrBadCredentials = errors.New("incorrect username or password")

// Credentials учётная запись из конфигурации. Password может быть как
// открытым текстом, так и bcrypt-хешем ($2a$, $2b$, $2y$).
type Credentials struct {
	User     string
	Password string
}

// Authenticate сверяет пару имя/пароль с учётной записью.
func (c Credentials) Authenticate(user, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(c.User)) == 1

	var passOK bool
	if isBcryptHash(c.Password) {
		passOK = bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
	}

	if !userOK || !passOK || user == "" {
		return ErrBadCredentials
	}
	return nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2") && len(s) == 60
}
