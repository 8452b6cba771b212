// Package config содержит конфигурацию приложения
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"go.uber.org/zap"
)

// AppConfig содержит конфигурационные параметры приложения.
// Поля структуры:
//   - Host: адрес сервера (env:"SERVER_ADDRESS")
//   - BaseURL: внешний адрес API, из него строятся ссылки (env:"SERVER_BASE_URL")
//   - DownloadFolder: сегмент пути для скачивания PNG (env:"SERVER_DOWNLOAD_FOLDER")
//   - QRDirectory: каталог хранилища QR-кодов (env:"QR_CODE_DIR")
//   - FillColor, BackColor: цвета QR-кода по умолчанию (env:"FILL_COLOR", env:"BACK_COLOR")
//   - SecretKey, Algorithm, TokenExpireMinutes: подпись JWT
//   - AdminUser, AdminPassword: единственная учётная запись администратора
//   - TrustedSubnet: подсеть, которой доступна статистика (env:"TRUSTED_SUBNET")
type AppConfig struct {
	Host               string `env:"SERVER_ADDRESS" json:"server_address"`
	BaseURL            string `env:"SERVER_BASE_URL" json:"server_base_url"`
	DownloadFolder     string `env:"SERVER_DOWNLOAD_FOLDER" json:"server_download_folder"`
	QRDirectory        string `env:"QR_CODE_DIR" json:"qr_code_dir"`
	FillColor          string `env:"FILL_COLOR" json:"fill_color"`
	BackColor          string `env:"BACK_COLOR" json:"back_color"`
	SecretKey          string `env:"SECRET_KEY" json:"-"`
	Algorithm          string `env:"ALGORITHM" json:"algorithm"`
	TokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" json:"access_token_expire_minutes"`
	AdminUser          string `env:"ADMIN_USER" json:"admin_user"`
	AdminPassword      string `env:"ADMIN_PASSWORD" json:"-"`
	TrustedSubnet      string `env:"TRUSTED_SUBNET" json:"trusted_subnet"`
	LogLevel           string `env:"LOG_LEVEL" json:"log_level"`
	TokenRateLimit     int    `env:"TOKEN_RATE_LIMIT" json:"token_rate_limit"`
	TokenRateBurst     int    `env:"TOKEN_RATE_BURST" json:"token_rate_burst"`
	ConfigJSON         string `env:"CONFIG" json:"-"`
}

const (
	defaultServerAddress  = "localhost:8000"
	defaultBaseURL        = "http://localhost:8000"
	defaultDownloadFolder = "downloads"
	defaultQRDirectory    = "./qr_codes"
	defaultFillColor      = "red"
	defaultBackColor      = "white"
	defaultSecretKey      = "secret-getenvkey"
	defaultAlgorithm      = "HS256"
	defaultExpireMinutes  = 30
	defaultAdminUser      = "admin"
	defaultAdminPassword  = "secret"
	defaultLogLevel       = "info"
	defaultTokenRateLimit = 5
	defaultTokenRateBurst = 10
)

// reservedSegments первые сегменты путей API, которые не может занимать DownloadFolder.
var reservedSegments = map[string]bool{
	"qr-codes": true,
	"token":    true,
	"ping":     true,
	"metrics":  true,
	"api":      true,
}

var supportedAlgorithms = map[string]bool{
	"HS256": true,
	"HS384": true,
	"HS512": true,
}

// Default возвращает конфигурацию со значениями по умолчанию.
func Default() *AppConfig {
	return &AppConfig{
		Host:               defaultServerAddress,
		BaseURL:            defaultBaseURL,
		DownloadFolder:     defaultDownloadFolder,
		QRDirectory:        defaultQRDirectory,
		FillColor:          defaultFillColor,
		BackColor:          defaultBackColor,
		SecretKey:          defaultSecretKey,
		Algorithm:          defaultAlgorithm,
		TokenExpireMinutes: defaultExpireMinutes,
		AdminUser:          defaultAdminUser,
		AdminPassword:      defaultAdminPassword,
		LogLevel:           defaultLogLevel,
		TokenRateLimit:     defaultTokenRateLimit,
		TokenRateBurst:     defaultTokenRateBurst,
	}
}

// loadConfigFromFile загружает конфигурацию приложения из файла.
// Значения из файла применяются только к полям, оставшимся по умолчанию.
func (a *AppConfig) loadConfigFromFile() error {
	if a.ConfigJSON == "" {
		return nil
	}

	data, err := os.ReadFile(a.ConfigJSON)
	if err != nil {
		return err
	}

	var fileConfig AppConfig
	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return err
	}

	def := Default()
	fromFile := func(cur *string, defVal, fileVal string) {
		if *cur == defVal && fileVal != "" {
			*cur = fileVal
		}
	}
	fromFile(&a.Host, def.Host, fileConfig.Host)
	fromFile(&a.BaseURL, def.BaseURL, fileConfig.BaseURL)
	fromFile(&a.DownloadFolder, def.DownloadFolder, fileConfig.DownloadFolder)
	fromFile(&a.QRDirectory, def.QRDirectory, fileConfig.QRDirectory)
	fromFile(&a.FillColor, def.FillColor, fileConfig.FillColor)
	fromFile(&a.BackColor, def.BackColor, fileConfig.BackColor)
	fromFile(&a.Algorithm, def.Algorithm, fileConfig.Algorithm)
	fromFile(&a.AdminUser, def.AdminUser, fileConfig.AdminUser)
	fromFile(&a.TrustedSubnet, def.TrustedSubnet, fileConfig.TrustedSubnet)
	fromFile(&a.LogLevel, def.LogLevel, fileConfig.LogLevel)

	if a.TokenExpireMinutes == def.TokenExpireMinutes && fileConfig.TokenExpireMinutes > 0 {
		a.TokenExpireMinutes = fileConfig.TokenExpireMinutes
	}
	if a.TokenRateLimit == def.TokenRateLimit && fileConfig.TokenRateLimit > 0 {
		a.TokenRateLimit = fileConfig.TokenRateLimit
	}
	if a.TokenRateBurst == def.TokenRateBurst && fileConfig.TokenRateBurst > 0 {
		a.TokenRateBurst = fileConfig.TokenRateBurst
	}

	return nil
}

// NewCfg создает и инициализирует конфигурацию приложения.
// Приоритеты источников конфигурации (от высшего к низшему):
// 1. Флаги командной строки
// 2. Переменные окружения
// 3. JSON-файл конфигурации
// 4. Значения по умолчанию
func NewCfg() (*AppConfig, error) {
	return Parse(os.Args[1:])
}

// Parse разбирает конфигурацию из переданных аргументов командной строки и окружения.
func Parse(args []string) (*AppConfig, error) {
	a := Default()

	// окружение читаем раньше флагов, чтобы флаги его перекрывали
	if err := env.Parse(a); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("qrcodes", flag.ContinueOnError)
	fs.StringVar(&a.Host, "a", a.Host, "server address")
	fs.StringVar(&a.BaseURL, "b", a.BaseURL, "server base URL used in links")
	fs.StringVar(&a.DownloadFolder, "dl", a.DownloadFolder, "download path segment")
	fs.StringVar(&a.QRDirectory, "f", a.QRDirectory, "QR code directory")
	fs.StringVar(&a.SecretKey, "k", a.SecretKey, "JWT signing key")
	fs.StringVar(&a.TrustedSubnet, "t", a.TrustedSubnet, "trusted subnet (CIDR)")
	fs.StringVar(&a.LogLevel, "l", a.LogLevel, "log level")
	fs.StringVar(&a.ConfigJSON, "c", a.ConfigJSON, "JSON config file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if a.ConfigJSON != "" {
		if err := a.loadConfigFromFile(); err != nil {
			zap.L().Warn("failed to load config file", zap.String("path", a.ConfigJSON), zap.Error(err))
		}
	}

	a.BaseURL = strings.TrimRight(a.BaseURL, "/")
	a.DownloadFolder = strings.Trim(a.DownloadFolder, "/")

	return a, a.Validate()
}

// Validate проверяет согласованность конфигурации.
func (a *AppConfig) Validate() error {
	var errs []error

	if u, err := url.Parse(a.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid SERVER_BASE_URL %q", a.BaseURL))
	}
	if a.DownloadFolder == "" || strings.Contains(a.DownloadFolder, "/") || reservedSegments[a.DownloadFolder] {
		errs = append(errs, fmt.Errorf("invalid SERVER_DOWNLOAD_FOLDER %q", a.DownloadFolder))
	}
	if !supportedAlgorithms[a.Algorithm] {
		errs = append(errs, fmt.Errorf("unsupported ALGORITHM %q", a.Algorithm))
	}
	if a.SecretKey == "" {
		errs = append(errs, errors.New("SECRET_KEY is required"))
	}
	if a.TokenExpireMinutes <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive"))
	}
	if a.AdminUser == "" || a.AdminPassword == "" {
		errs = append(errs, errors.New("ADMIN_USER and ADMIN_PASSWORD are required"))
	}

	return errors.Join(errs...)
}

// TokenTTL возвращает время жизни токена доступа.
func (a *AppConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenExpireMinutes) * time.Minute
}

// DownloadURL возвращает адрес скачивания PNG-файла.
func (a *AppConfig) DownloadURL(filename string) string {
	return a.BaseURL + "/" + a.DownloadFolder + "/" + filename
}
