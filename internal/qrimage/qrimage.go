// Package qrimage отрисовывает QR-коды в PNG.
package qrimage

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/GevorkovG/go-qrcodes/internal/objects"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

const (
	DefaultSize = 10
	MinSize     = 1
	MaxSize     = 50
)

var (
	// ErrUnknownColor цвет не распознан ни как имя CSS, ни как #rrggbb.
	ErrUnknownColor = errors.New("unknown color")

	// ErrInvalidSize размер модуля вне допустимого диапазона.
	ErrInvalidSize = fmt.Errorf("size must be between %d and %d", MinSize, MaxSize)
)

// PNGRenderer рисует QR-код с уровнем коррекции Medium.
type PNGRenderer struct {
	Level qrcode.RecoveryLevel
}

func NewPNGRenderer() *PNGRenderer {
	return &PNGRenderer{Level: qrcode.Medium}
}

// Render возвращает PNG, где каждый модуль — квадрат opts.Size×opts.Size пикселей.
func (r *PNGRenderer) Render(data string, opts objects.RenderOptions) ([]byte, error) {
	zap.L().Debug("QR code generation started", zap.Int("size", opts.Size))

	if opts.Size < MinSize || opts.Size > MaxSize {
		return nil, ErrInvalidSize
	}
	fill, err := ParseColor(opts.FillColor)
	if err != nil {
		return nil, err
	}
	back, err := ParseColor(opts.BackColor)
	if err != nil {
		return nil, err
	}

	q, err := qrcode.New(data, r.Level)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	q.ForegroundColor = fill
	q.BackgroundColor = back

	// отрицательный размер задаёт размер модуля, а не всего изображения
	png, err := q.PNG(-opts.Size)
	if err != nil {
		return nil, fmt.Errorf("render png: %w", err)
	}
	return png, nil
}

// ParseColor разбирает имя цвета (red, white, ...) или запись #rrggbb.
func ParseColor(s string) (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}

	if h, ok := strings.CutPrefix(name, "#"); ok && len(h) == 6 {
		b, err := hex.DecodeString(h)
		if err == nil {
			return color.RGBA{R: b[0], G: b[1], B: b[2], A: 0xff}, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}
