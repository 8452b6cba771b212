package app_test

import (
	"context"
	"fmt"

	"github.com/GevorkovG/go-qrcodes/config"
	"github.com/GevorkovG/go-qrcodes/internal/app"
)

func ExampleApp_Create() {
	// Инициализация конфигурации: пустой каталог включает хранилище в памяти
	cfg := config.Default()
	cfg.QRDirectory = ""

	a := app.NewApp(cfg)
	if err := a.ConfigureStorage(); err != nil {
		fmt.Println("storage error:", err)
		return
	}

	ctx := context.Background()
	qr, created, err := a.Create(ctx, "https://example.com", 2)
	if err != nil {
		fmt.Println("create error:", err)
		return
	}
	fmt.Println(created, qr.Message)
	fmt.Println(qr.QRCodeURL)

	// повторный вызов возвращает существующий QR-код
	qr, created, _ = a.Create(ctx, "https://example.com", 2)
	fmt.Println(created, qr.Message)

	// Output:
	// true QR code created successfully.
	// http://localhost:8000/downloads/aHR0cHM6Ly9leGFtcGxlLmNvbQ.png
	// false QR code already exists.
}
