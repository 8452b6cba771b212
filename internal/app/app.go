package app

import (
	"github.com/GevorkovG/go-qrcodes/config"
	"github.com/GevorkovG/go-qrcodes/internal/objects"
	"github.com/GevorkovG/go-qrcodes/internal/qrimage"
	"github.com/GevorkovG/go-qrcodes/internal/services/admin"
	"github.com/GevorkovG/go-qrcodes/internal/services/jwtstring"
	"github.com/GevorkovG/go-qrcodes/internal/services/usertoken"
	"github.com/GevorkovG/go-qrcodes/internal/storage"
	"go.uber.org/zap"
)

type App struct {
	cfg      *config.AppConfig
	Storage  objects.Storage
	Renderer objects.Renderer

	signer   jwtstring.Signer
	verifier usertoken.Verifier
	admin    admin.Credentials
}

func NewApp(cfg *config.AppConfig) *App {
	key := []byte(cfg.SecretKey)

	return &App{
		cfg:      cfg,
		Renderer: qrimage.NewPNGRenderer(),
		signer: jwtstring.Signer{
			Key:       key,
			Algorithm: cfg.Algorithm,
			TTL:       cfg.TokenTTL(),
		},
		verifier: usertoken.Verifier{
			Key:       key,
			Algorithm: cfg.Algorithm,
		},
		admin: admin.Credentials{
			User:     cfg.AdminUser,
			Password: cfg.AdminPassword,
		},
	}
}

func (a *App) GetConfig() *config.AppConfig {
	return a.cfg
}

// Verifier возвращает проверку токенов доступа для middleware.BearerAuth.
func (a *App) Verifier() usertoken.Verifier {
	return a.verifier
}

// ConfigureStorage выбирает хранилище: каталог QRDirectory
// или память процесса, если каталог не задан.
func (a *App) ConfigureStorage() error {
	if a.cfg.QRDirectory == "" {
		zap.L().Info("QR_CODE_DIR is empty, using in-memory storage")
		a.Storage = storage.NewInMemoryStorage()
		return nil
	}

	s, err := storage.NewDirStorage(a.cfg.QRDirectory)
	if err != nil {
		return err
	}
	zap.L().Info("using directory storage", zap.String("dir", s.Root()))
	a.Storage = s
	return nil
}
