package app

import (
	"context"
	"fmt"
	"time"

	"github.com/GevorkovG/go-qrcodes/internal/hateoas"
	"github.com/GevorkovG/go-qrcodes/internal/metrics"
	"github.com/GevorkovG/go-qrcodes/internal/objects"
	"github.com/GevorkovG/go-qrcodes/internal/qrimage"
	"github.com/GevorkovG/go-qrcodes/internal/urlcodec"
	"go.uber.org/zap"
)

const (
	msgCreated   = "QR code created successfully."
	msgExists    = "QR code already exists."
	msgAvailable = "QR code available"
	msgCorrupt   = "QR code entry is corrupt"
)

// Create создаёт QR-код для rawURL с размером модуля size.
// Если артефакт уже существует, он не перерисовывается: created == false.
func (a *App) Create(ctx context.Context, rawURL string, size int) (qr objects.QRCode, created bool, err error) {
	if size < qrimage.MinSize || size > qrimage.MaxSize {
		metrics.CreateTotal.WithLabelValues("invalid").Inc()
		return objects.QRCode{}, false, qrimage.ErrInvalidSize
	}

	filename, normalized, err := urlcodec.FilenameForURL(rawURL)
	if err != nil {
		metrics.CreateTotal.WithLabelValues("invalid").Inc()
		return objects.QRCode{}, false, err
	}

	downloadURL := a.cfg.DownloadURL(filename)
	links, err := hateoas.BuildLinks(hateoas.Create, filename, a.cfg.BaseURL, downloadURL)
	if err != nil {
		metrics.CreateTotal.WithLabelValues("error").Inc()
		return objects.QRCode{}, false, err
	}

	exists, err := a.Storage.Exists(ctx, filename)
	if err != nil {
		metrics.CreateTotal.WithLabelValues("error").Inc()
		return objects.QRCode{}, false, err
	}
	if exists {
		zap.L().Info("QR code already exists", zap.String("filename", filename))
		metrics.CreateTotal.WithLabelValues("existing").Inc()
		return objects.QRCode{Message: msgExists, QRCodeURL: downloadURL, Links: links}, false, nil
	}

	start := time.Now()
	png, err := a.Renderer.Render(normalized, objects.RenderOptions{
		Size:      size,
		FillColor: a.cfg.FillColor,
		BackColor: a.cfg.BackColor,
	})
	metrics.RenderDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CreateTotal.WithLabelValues("error").Inc()
		return objects.QRCode{}, false, fmt.Errorf("render qr code: %w", err)
	}

	if err = a.Storage.Save(ctx, filename, png); err != nil {
		metrics.CreateTotal.WithLabelValues("error").Inc()
		return objects.QRCode{}, false, err
	}

	zap.L().Info("QR code created", zap.String("filename", filename))
	metrics.CreateTotal.WithLabelValues("created").Inc()
	return objects.QRCode{Message: msgCreated, QRCodeURL: downloadURL, Links: links}, true, nil
}

// List перечисляет артефакты хранилища. Запись, имя которой не декодируется,
// возвращается с заполненным Err и не прерывает перечисление.
func (a *App) List(ctx context.Context) ([]objects.Entry, error) {
	names, err := a.Storage.List(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]objects.Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, a.entry(name))
	}
	metrics.StoredTotal.Set(float64(len(names)))

	return entries, nil
}

func (a *App) entry(name string) objects.Entry {
	e := objects.Entry{Filename: name}

	u, err := urlcodec.URLFromFilename(name)
	if err == nil {
		e.URL = u
		e.Links, err = hateoas.BuildLinks(hateoas.List, name, a.cfg.BaseURL, a.cfg.DownloadURL(name))
	}
	if err != nil {
		zap.L().Error("corrupt QR code entry in store", zap.String("filename", name), zap.Error(err))
		metrics.CorruptEntriesTotal.Inc()

		// ссылка на удаление строится без декодирования
		e.URL = ""
		e.Links, _ = hateoas.BuildLinks(hateoas.Delete, name, a.cfg.BaseURL, "")
		e.Err = err
	}

	return e
}

// Delete удаляет артефакт filename; storage.ErrNotFound, если его нет.
func (a *App) Delete(ctx context.Context, filename string) error {
	if err := a.Storage.Delete(ctx, filename); err != nil {
		return err
	}

	zap.L().Info("QR code deleted", zap.String("filename", filename))
	metrics.DeletedTotal.Inc()
	return nil
}

// Count возвращает число артефактов в хранилище.
func (a *App) Count(ctx context.Context) (int, error) {
	names, err := a.Storage.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(names), nil
}
