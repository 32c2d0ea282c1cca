package services

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrportal_backend/internal/models"
	"hrportal_backend/internal/services/dto"
	"hrportal_backend/pkg/apperrors"
)

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	env.seedPolicy(t)
	ctx := context.Background()

	id := env.createEmployee(t, "E001", "asha@corp.com")
	before, err := env.employees.GetByID(ctx, env.db, id)
	require.NoError(t, err)

	updated, err := env.employees.UpdateProfile(ctx, env.db, id, &dto.UpdateProfileRequest{
		City:          strPtr("Pune"),
		WorkEmail:     strPtr("Asha.Rao@corp.com"),
		BloodGroup:    strPtr("o+"),
		MaritalStatus: (*models.MaritalStatus)(strPtr("Married")),
		NoticePeriod:  intPtr(60),
	})
	require.NoError(t, err)

	assert.Equal(t, "Pune", updated.City)
	assert.Equal(t, "asha.rao@corp.com", updated.WorkEmail)
	assert.Equal(t, "O+", updated.BloodGroup)
	assert.Equal(t, models.MaritalStatusMarried, updated.MaritalStatus)
	assert.Equal(t, 60, updated.NoticePeriod)

	// защищенные поля не тронуты
	assert.Equal(t, before.PasswordHash, updated.PasswordHash)
	assert.Equal(t, before.EmployeeCode, updated.EmployeeCode)
	assert.Equal(t, before.LeaveBalance, updated.LeaveBalance)
	assert.False(t, updated.Admin)
	assert.Equal(t, before.FirstName, updated.FirstName)
}

func TestUpdateProfile_EmailConflict(t *testing.T) {
	env := newTestEnv(t)
	env.seedPolicy(t)
	ctx := context.Background()

	env.createEmployee(t, "E001", "asha@corp.com")
	id := env.createEmployee(t, "E002", "ravi@corp.com")

	_, err := env.employees.UpdateProfile(ctx, env.db, id, &dto.UpdateProfileRequest{WorkEmail: strPtr("asha@corp.com")})
	assert.ErrorIs(t, err, apperrors.ErrEmployeeAlreadyExists)

	// собственный адрес не считается конфликтом
	_, err = env.employees.UpdateProfile(ctx, env.db, id, &dto.UpdateProfileRequest{WorkEmail: strPtr("ravi@corp.com")})
	assert.NoError(t, err)
}

func TestUpdateProfile_Validation(t *testing.T) {
	env := newTestEnv(t)
	env.seedPolicy(t)
	ctx := context.Background()

	id := env.createEmployee(t, "E001", "asha@corp.com")

	_, err := env.employees.UpdateProfile(ctx, env.db, id, &dto.UpdateProfileRequest{FirstName: strPtr("<i></i>")})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	_, err = env.employees.UpdateProfile(ctx, env.db, "00000000-0000-0000-0000-000000000000", &dto.UpdateProfileRequest{City: strPtr("Pune")})
	assert.ErrorIs(t, err, apperrors.ErrEmployeeNotFound)
}

func TestUpdateProfile_ProfilePictureUpload(t *testing.T) {
	env := newTestEnv(t)
	env.seedPolicy(t)
	ctx := context.Background()

	id := env.createEmployee(t, "E001", "asha@corp.com")
	picture := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("\xff\xd8\xffjpeg"))

	updated, err := env.employees.UpdateProfile(ctx, env.db, id, &dto.UpdateProfileRequest{ProfilePicture: &picture})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(updated.ProfilePicture, "/files/profile-pictures/"))
	assert.True(t, strings.HasSuffix(updated.ProfilePicture, ".jpg"))
}

func TestListEmployees(t *testing.T) {
	env := newTestEnv(t)
	env.seedPolicy(t)
	ctx := context.Background()

	env.createEmployee(t, "E001", "a@corp.com")
	env.createEmployee(t, "E002", "b@corp.com")
	env.createEmployee(t, "E003", "c@corp.com")

	employees, total, err := env.employees.List(ctx, env.db, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, employees, 2)

	employees, _, err = env.employees.List(ctx, env.db, 2, 2)
	require.NoError(t, err)
	assert.Len(t, employees, 1)
}

func TestNormalizePage(t *testing.T) {
	page, size := NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPageSize, size)

	_, size = NormalizePage(3, 1000)
	assert.Equal(t, maxPageSize, size)
}
