// Package objects определяет основные структуры данных и интерфейсы хранилища
// для сервиса QR-кодов
package objects

import "context"

// Link гипермедиа-ссылка (HATEOAS) на действие над ресурсом.
type Link struct {
	Rel    string `json:"rel"`    //Отношение: view, delete
	Href   string `json:"href"`   //Адрес действия
	Action string `json:"action"` //HTTP-метод
	Type   string `json:"type"`   //Content-Type ответа
}

// QRCode ответ API для одного QR-кода.
type QRCode struct {
	Message   string `json:"message"`
	QRCodeURL string `json:"qr_code_url"`
	Links     []Link `json:"links"`
	Error     string `json:"error,omitempty"` //Заполняется только для повреждённых записей списка
}

// Entry элемент перечисления хранилища: либо готовый ответ, либо ошибка записи.
type Entry struct {
	Filename string
	URL      string
	Links    []Link
	Err      error
}

// RenderOptions параметры отрисовки QR-кода.
type RenderOptions struct {
	Size      int    //Размер модуля в пикселях
	FillColor string //Цвет модулей
	BackColor string //Цвет фона
}

// Storage определяет интерфейс хранилища артефактов.
// Имя файла — идентификатор с расширением .png, хранилище имеет один корень.
type Storage interface {
	Exists(ctx context.Context, filename string) (bool, error)
	Save(ctx context.Context, filename string, data []byte) error
	Read(ctx context.Context, filename string) ([]byte, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, filename string) error
	Ping() error
}

// Renderer внешняя возможность отрисовки QR-кода в PNG.
type Renderer interface {
	Render(data string, opts RenderOptions) ([]byte, error)
}
