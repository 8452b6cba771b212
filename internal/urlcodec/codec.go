// Package urlcodec переводит URL в безопасные для файловой системы идентификаторы и обратно.
//
// Идентификатор — это URL-safe base64 (алфавит с '-' и '_' вместо '+' и '/')
// от UTF-8 байтов нормализованного URL без завершающих символов '='.
// Имя файла артефакта — идентификатор плюс расширение ".png".
package urlcodec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Ext расширение файла артефакта.
const Ext = ".png"

var (
	// ErrInvalidURL строка не является корректным URL.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrMalformedIdentifier идентификатор или имя файла не декодируется обратно в URL.
	ErrMalformedIdentifier = errors.New("malformed identifier")
)

// Encode кодирует нормализованный URL в идентификатор.
func Encode(normalized string) string {
	return strings.TrimRight(base64.URLEncoding.EncodeToString([]byte(normalized)), "=")
}

// padding возвращает количество '=' для выравнивания длины до кратной 4.
// Для длины, уже кратной 4, возвращает 0.
func padding(n int) int {
	return (4 - n%4) % 4
}

// Decode восстанавливает URL из идентификатора без паддинга.
//
// Возвращает ErrMalformedIdentifier, если:
//   - идентификатор пустой или содержит символы вне алфавита base64url (в т.ч. '=')
//   - длина по модулю 4 равна 1 (такой длины у base64 не бывает)
//   - данные не декодируются или не являются корректным UTF-8
func Decode(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w: empty", ErrMalformedIdentifier)
	}
	for i := 0; i < len(id); i++ {
		if !isAlphabet(id[i]) {
			return "", fmt.Errorf("%w: unexpected byte %q at %d", ErrMalformedIdentifier, id[i], i)
		}
	}
	if len(id)%4 == 1 {
		return "", fmt.Errorf("%w: impossible length %d", ErrMalformedIdentifier, len(id))
	}

	padded := id + strings.Repeat("=", padding(len(id)))
	data, err := base64.URLEncoding.Strict().DecodeString(padded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedIdentifier, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: not UTF-8", ErrMalformedIdentifier)
	}

	return string(data), nil
}

func isAlphabet(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	}
	return false
}

// Filename возвращает имя файла артефакта для идентификатора.
func Filename(id string) string {
	return id + Ext
}

// IdentifierFromFilename отрезает расширение ".png" от имени файла.
func IdentifierFromFilename(name string) (string, error) {
	id, ok := strings.CutSuffix(name, Ext)
	if !ok {
		return "", fmt.Errorf("%w: %q has no %s suffix", ErrMalformedIdentifier, name, Ext)
	}
	return id, nil
}

// URLFromFilename декодирует имя файла артефакта в исходный URL.
func URLFromFilename(name string) (string, error) {
	id, err := IdentifierFromFilename(name)
	if err != nil {
		return "", err
	}
	return Decode(id)
}

// FilenameForURL проверяет и нормализует URL и возвращает имя файла артефакта
// вместе с нормализованным URL.
func FilenameForURL(raw string) (filename, normalized string, err error) {
	normalized, err = Sanitize(raw)
	if err != nil {
		return "", "", err
	}
	return Filename(Encode(normalized)), normalized, nil
}
