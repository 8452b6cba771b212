package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, "localhost:8000", cfg.Host)
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Equal(t, "downloads", cfg.DownloadFolder)
	assert.Equal(t, "./qr_codes", cfg.QRDirectory)
	assert.Equal(t, "red", cfg.FillColor)
	assert.Equal(t, "white", cfg.BackColor)
	assert.Equal(t, "HS256", cfg.Algorithm)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL())
}

func TestParse_Priority(t *testing.T) {
	t.Setenv("SERVER_BASE_URL", "https://qr.example.com/")
	t.Setenv("QR_CODE_DIR", "/from/env")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "15")

	cfg, err := Parse([]string{"-f", "/from/flag"})
	require.NoError(t, err)

	assert.Equal(t, "https://qr.example.com", cfg.BaseURL, "хвостовой слеш должен обрезаться")
	assert.Equal(t, "/from/flag", cfg.QRDirectory, "флаг важнее окружения")
	assert.Equal(t, 15, cfg.TokenExpireMinutes)
}

func TestParse_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(path, []byte(`{"fill_color":"black","server_address":"0.0.0.0:9000"}`), 0o600)
	require.NoError(t, err)

	t.Setenv("SERVER_ADDRESS", "127.0.0.1:7000")

	cfg, err := Parse([]string{"-c", path})
	require.NoError(t, err)

	assert.Equal(t, "black", cfg.FillColor)
	assert.Equal(t, "127.0.0.1:7000", cfg.Host, "окружение важнее файла")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *AppConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *AppConfig) {}, wantErr: false},
		{name: "bad base url", mutate: func(c *AppConfig) { c.BaseURL = "localhost" }, wantErr: true},
		{name: "nested download folder", mutate: func(c *AppConfig) { c.DownloadFolder = "a/b" }, wantErr: true},
		{name: "download folder shadows api", mutate: func(c *AppConfig) { c.DownloadFolder = "qr-codes" }, wantErr: true},
		{name: "rsa algorithm", mutate: func(c *AppConfig) { c.Algorithm = "RS256" }, wantErr: true},
		{name: "empty secret", mutate: func(c *AppConfig) { c.SecretKey = "" }, wantErr: true},
		{name: "zero expiry", mutate: func(c *AppConfig) { c.TokenExpireMinutes = 0 }, wantErr: true},
		{name: "no admin", mutate: func(c *AppConfig) { c.AdminUser = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDownloadURL(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "http://localhost:8000/downloads/abc.png", cfg.DownloadURL("abc.png"))
}
