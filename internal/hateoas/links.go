// Package hateoas строит набор гипермедиа-ссылок для ответов API.
package hateoas

import (
	"errors"
	"fmt"

	"github.com/GevorkovG/go-qrcodes/internal/objects"
	"github.com/GevorkovG/go-qrcodes/internal/urlcodec"
)

// Action действие, для ответа на которое строятся ссылки.
type Action string

const (
	Create Action = "create"
	List   Action = "list"
	Delete Action = "delete"
)

// ErrUnknownAction неизвестное действие.
var ErrUnknownAction = errors.New("unknown action")

// BuildLinks возвращает ссылки для действия над файлом filename.
//
// Для create и list имя файла сначала декодируется: повреждённое имя
// возвращает urlcodec.ErrMalformedIdentifier, ссылки при этом не строятся.
// Ссылка view идёт перед delete.
func BuildLinks(action Action, filename, baseURL, downloadURL string) ([]objects.Link, error) {
	links := make([]objects.Link, 0, 2)

	switch action {
	case Create, List:
		if _, err := urlcodec.URLFromFilename(filename); err != nil {
			return nil, err
		}
		links = append(links, objects.Link{
			Rel:    "view",
			Href:   downloadURL,
			Action: "GET",
			Type:   "image/png",
		})
	case Delete:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	links = append(links, objects.Link{
		Rel:    "delete",
		Href:   baseURL + "/qr-codes/" + filename,
		Action: "DELETE",
		Type:   "application/json",
	})

	return links, nil
}
