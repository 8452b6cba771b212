package routes

import (
	"context"
	"net/http"

	"github.com/GevorkovG/go-qrcodes/internal/app"
	"github.com/GevorkovG/go-qrcodes/internal/logger"
	"github.com/GevorkovG/go-qrcodes/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router - http роутер. ctx ограничивает время жизни фоновой очистки ограничителя запросов.
func Router(ctx context.Context, a *app.App) http.Handler {
	cfg := a.GetConfig()
	r := chi.NewRouter()

	r.Use(chimw.RequestID,
		logger.LoggerMiddleware,
		chimw.Recoverer,
	)

	limiter := middleware.NewRateLimiter(ctx, cfg.TokenRateLimit, cfg.TokenRateBurst)
	r.With(limiter.Middleware).Post("/token", a.Token)

	r.Route("/qr-codes", func(r chi.Router) {
		r.Use(middleware.BearerAuth(a.Verifier()))
		r.Post("/", a.CreateQRCode)
		r.Get("/", a.ListQRCodes)
		r.Delete("/{filename}", a.DeleteQRCode)
	})

	r.Get("/"+cfg.DownloadFolder+"/{filename}", a.Download)
	r.Get("/ping", a.Ping)
	r.With(middleware.TrustedSubnet(cfg.TrustedSubnet)).Get("/api/internal/stats", a.GetStats)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
