package services

import (
	"context"

	"hrportal_backend/internal/logger"
	"hrportal_backend/internal/storage"
)

// Папки в хранилище. Фото профиля уменьшаются перед сохранением.
const (
	FolderProfilePictures = "profile-pictures"
	folderDocuments       = "documents"
	folderResumes         = "resumes"
)

// uploadBatch - файлы, сохраненные в рамках одного запроса.
// При ошибке записи в БД загруженное удаляется.
type uploadBatch struct {
	uploader *storage.Uploader
	paths    []string
}

func newUploadBatch(uploader *storage.Uploader) *uploadBatch {
	return &uploadBatch{uploader: uploader}
}

// put заменяет data URL на ссылку; обычные ссылки возвращаются как есть
func (b *uploadBatch) put(ctx context.Context, field, folder, value string) (string, error) {
	if b.uploader == nil || !storage.IsDataURL(value) {
		return value, nil
	}
	url, path, err := b.uploader.Upload(ctx, folder, value)
	if err != nil {
		return "", handleUploadError(field, err)
	}
	if path != "" {
		b.paths = append(b.paths, path)
	}
	return url, nil
}

func (b *uploadBatch) rollback(ctx context.Context) {
	for _, path := range b.paths {
		if err := b.uploader.Remove(ctx, path); err != nil {
			logger.CtxWithError(ctx, "failed to remove orphaned upload", err, "path", path)
		}
	}
	b.paths = nil
}
