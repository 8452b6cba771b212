// Package storage предоставляет хранилище артефактов QR-кодов:
// каталог на диске (DirStorage) и in-memory реализацию (InMemoryStorage).
// Обе адресуют файлы только по имени внутри одного корня.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

var (
	// ErrNotFound артефакт с таким именем отсутствует.
	ErrNotFound = errors.New("qr code not found")

	// ErrInvalidName имя не является простым именем файла внутри хранилища.
	ErrInvalidName = errors.New("invalid artifact name")

	// ErrStoreIO ошибка чтения или записи каталога хранилища.
	ErrStoreIO = errors.New("store i/o error")
)

const fileExt = ".png"

// validName проверяет, что имя не выходит за пределы корня хранилища.
func validName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.HasPrefix(name, ".") ||
		strings.ContainsAny(name, `/\`) ||
		filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// isArtifactName отбирает для перечисления имена, которые хранилище может удалить.
func isArtifactName(name string) bool {
	return strings.HasSuffix(name, fileExt) && validName(name) == nil
}

// DirStorage хранит по одному PNG-файлу на идентификатор в каталоге root.
type DirStorage struct {
	root string
}

// NewDirStorage создает хранилище и сам каталог, если его еще нет.
//
// Параметры:
//   - root: путь к каталогу хранилища
//
// Возвращает:
//   - *DirStorage: инициализированное хранилище
//   - error: ErrStoreIO, если каталог нельзя создать
func NewDirStorage(root string) (*DirStorage, error) {
	zap.L().Debug("creating QR code directory", zap.String("dir", root))
	if err := os.MkdirAll(root, 0o755); err != nil {
		zap.L().Error("failed to create QR code directory", zap.String("dir", root), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrStoreIO, err)
	}
	return &DirStorage{root: root}, nil
}

// Root возвращает корень хранилища.
func (s *DirStorage) Root() string {
	return s.root
}

func (s *DirStorage) path(name string) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.root, name), nil
}

// Exists сообщает, есть ли обычный файл с таким именем.
func (s *DirStorage) Exists(ctx context.Context, filename string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	p, err := s.path(filename)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(p)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrStoreIO, err)
	}
	return info.Mode().IsRegular(), nil
}

// Save атомарно записывает артефакт: временный файл в том же каталоге и rename.
// Повторная запись того же имени заменяет файл целиком.
func (s *DirStorage) Save(ctx context.Context, filename string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(filename)
	if err != nil {
		return err
	}

	if err := atomicWriteFile(p, data, 0o644); err != nil {
		zap.L().Error("failed to save QR code", zap.String("path", p), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrStoreIO, err)
	}

	zap.L().Info("QR code successfully saved", zap.String("path", p))
	return nil
}

// Read возвращает содержимое артефакта.
func (s *DirStorage) Read(ctx context.Context, filename string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := s.path(filename)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreIO, err)
	}
	return data, nil
}

// List возвращает имена всех *.png файлов в порядке возрастания.
func (s *DirStorage) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		zap.L().Error("failed to list QR codes", zap.String("dir", s.root), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrStoreIO, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		// скрытые файлы нельзя ни сохранить, ни удалить через хранилище
		if !e.Type().IsRegular() || !isArtifactName(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Delete удаляет артефакт. Отсутствующий файл — ErrNotFound.
func (s *DirStorage) Delete(ctx context.Context, filename string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(filename)
	if err != nil {
		return err
	}

	info, err := os.Stat(p)
	if errors.Is(err, os.ErrNotExist) || (err == nil && !info.Mode().IsRegular()) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreIO, err)
	}

	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %w", ErrStoreIO, err)
	}

	zap.L().Info("QR code deleted", zap.String("path", p))
	return nil
}

// Ping проверяет доступность каталога хранилища
func (s *DirStorage) Ping() error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreIO, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrStoreIO, s.root)
	}
	return nil
}

func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	// временный файл в том же каталоге, чтобы rename был атомарным
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
