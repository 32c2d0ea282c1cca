package services

import (
	"errors"

	"hrportal_backend/internal/repositories"
	"hrportal_backend/internal/storage"
	"hrportal_backend/pkg/apperrors"
)

// handleEmployeeError переводит ошибки репозитория в ошибки API
func handleEmployeeError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrEmployeeNotFound):
		return apperrors.ErrEmployeeNotFound
	case errors.Is(err, repositories.ErrEmployeeAlreadyExists):
		return apperrors.ErrEmployeeAlreadyExists
	default:
		return apperrors.InternalError(err)
	}
}

func handleUploadError(field string, err error) error {
	switch {
	case errors.Is(err, storage.ErrFileTooLarge):
		return apperrors.ErrFileTooLarge.WithDetails(map[string]string{field: "File is too large"})
	case errors.Is(err, storage.ErrUnsupportedType):
		return apperrors.ErrInvalidFileType.WithDetails(map[string]string{field: "File type is not allowed"})
	case errors.Is(err, storage.ErrInvalidDataURL):
		return apperrors.ValidationError(map[string]string{field: "Must be a valid file"})
	default:
		return apperrors.InternalError(err)
	}
}
