package urlcodec

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/asaskevich/govalidator"
	"go.uber.org/zap"
)

// allowedSchemes схемы, которые принимает общее правило проверки URL.
var allowedSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ftp":   true,
}

// Sanitize проверяет строку и приводит URL к каноничному виду.
//
// Нормализация детерминирована, но может менять байты исходной строки
// (регистр схемы, экранирование пути). Сеть не используется.
func Sanitize(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidURL)
	}

	// url.Parse приводит схему к нижнему регистру, govalidator проверяет
	// уже каноничную запись: схема нечувствительна к регистру.
	u, err := url.Parse(raw)
	if err != nil {
		zap.L().Debug("invalid URL provided", zap.String("url", raw), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	if !allowedSchemes[u.Scheme] || u.Host == "" {
		zap.L().Debug("URL without scheme or host", zap.String("url", raw))
		return "", fmt.Errorf("%w: %q: scheme and host are required", ErrInvalidURL, raw)
	}

	normalized := u.String()
	if !govalidator.IsURL(normalized) {
		zap.L().Debug("invalid URL provided", zap.String("url", raw))
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	return normalized, nil
}
