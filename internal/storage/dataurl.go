package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotDataURL      = errors.New("value is not a data URL")
	ErrInvalidDataURL  = errors.New("malformed data URL")
	ErrFileTooLarge    = errors.New("file exceeds the allowed size")
	ErrUnsupportedType = errors.New("file type is not allowed")
)

var extensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"application/pdf": ".pdf",
}

// DataURL - разобранное значение data:<mime>;base64,<payload>
type DataURL struct {
	ContentType string
	Data        []byte
}

// IsDataURL - фронтенд присылает файлы как data URL, уже загруженные - как обычные ссылки
func IsDataURL(value string) bool {
	return strings.HasPrefix(value, "data:")
}

// ParseDataURL декодирует base64 data URL
func ParseDataURL(value string) (*DataURL, error) {
	if !IsDataURL(value) {
		return nil, ErrNotDataURL
	}

	header, payload, ok := strings.Cut(strings.TrimPrefix(value, "data:"), ",")
	if !ok {
		return nil, ErrInvalidDataURL
	}

	params := strings.Split(header, ";")
	contentType := strings.ToLower(strings.TrimSpace(params[0]))
	isBase64 := false
	for _, p := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			isBase64 = true
		}
	}
	if contentType == "" || !isBase64 {
		return nil, ErrInvalidDataURL
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return &DataURL{ContentType: contentType, Data: data}, nil
}

// ImageResizer уменьшает изображение перед сохранением
type ImageResizer interface {
	Fit(data []byte, contentType string) ([]byte, error)
}

// Uploader сохраняет data URL в хранилище и возвращает публичную ссылку
type Uploader struct {
	storage       Storage
	maxSize       int64
	allowedTypes  map[string]struct{}
	resizer       ImageResizer
	resizeFolders map[string]struct{}
	now           func() time.Time
}

func NewUploader(s Storage, maxSize int64, allowedTypes []string) *Uploader {
	allowed := make(map[string]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(t)] = struct{}{}
	}
	return &Uploader{storage: s, maxSize: maxSize, allowedTypes: allowed, now: time.Now}
}

// WithResizer включает уменьшение изображений для перечисленных папок
func (u *Uploader) WithResizer(r ImageResizer, folders ...string) *Uploader {
	u.resizer = r
	u.resizeFolders = make(map[string]struct{}, len(folders))
	for _, f := range folders {
		u.resizeFolders[f] = struct{}{}
	}
	return u
}

// Upload - data URL сохраняется в <folder>/<yyyy>/<mm>/<uuid><ext>.
// Обычная ссылка возвращается как есть, path тогда пустой.
func (u *Uploader) Upload(ctx context.Context, folder, value string) (url string, path string, err error) {
	if value == "" || !IsDataURL(value) {
		return value, "", nil
	}

	parsed, err := ParseDataURL(value)
	if err != nil {
		return "", "", err
	}
	if _, ok := u.allowedTypes[parsed.ContentType]; !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedType, parsed.ContentType)
	}
	if u.maxSize > 0 && int64(len(parsed.Data)) > u.maxSize {
		return "", "", ErrFileTooLarge
	}

	if _, ok := u.resizeFolders[folder]; ok && u.resizer != nil {
		data, err := u.resizer.Fit(parsed.Data, parsed.ContentType)
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
		}
		parsed.Data = data
	}

	ext := extensions[parsed.ContentType]
	now := u.now()
	path = fmt.Sprintf("%s/%04d/%02d/%s%s", folder, now.Year(), int(now.Month()), uuid.NewString(), ext)

	if err := u.storage.Save(ctx, path, bytes.NewReader(parsed.Data), parsed.ContentType); err != nil {
		return "", "", err
	}

	url, err = u.storage.GetURL(ctx, path)
	if err != nil {
		return "", "", err
	}
	return url, path, nil
}

// Remove удаляет ранее загруженный файл (откат при ошибке сохранения сотрудника)
func (u *Uploader) Remove(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	return u.storage.Delete(ctx, path)
}
