package services

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrportal_backend/internal/auth"
	"hrportal_backend/internal/email"
	"hrportal_backend/internal/models"
	"hrportal_backend/internal/services/dto"
	"hrportal_backend/pkg/apperrors"
)

func TestCreateAccount_RequiresLeavePolicy(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.CreateAccount(context.Background(), env.db, validCreateRequest("E001", "asha@corp.com"), false)
	assert.ErrorIs(t, err, apperrors.ErrLeavePolicyNotConfigured)

	var count int64
	env.db.Model(&models.Employee{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateAccount_Success(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.policies.Create(context.Background(), env.db, &dto.LeavePolicyRequest{Casual: intPtr(15)})
	require.NoError(t, err)

	req := validCreateRequest("E001", "  Asha@Corp.com ")
	req.FirstName = "<b>Asha</b>"
	req.Admin = true

	employee, err := env.auth.CreateAccount(context.Background(), env.db, req, false)
	require.NoError(t, err)

	assert.NotEmpty(t, employee.ID)
	assert.Equal(t, "asha@corp.com", employee.WorkEmail)
	assert.Equal(t, "Asha", employee.FirstName)
	assert.False(t, employee.IsVerified)
	assert.False(t, employee.Admin, "admin flag requires an admin caller")
	assert.Equal(t, models.EmployeeStatusActive, employee.Status)
	assert.Equal(t, models.DefaultCity, employee.City)
	assert.Equal(t, 15, employee.LeaveBalance.Casual)
	assert.Equal(t, models.UnlimitedLeave, employee.LeaveBalance.UnpaidLeave)
	assert.Zero(t, employee.LeaveBalance.CompOffs)

	require.NotNil(t, employee.VerificationToken)
	require.NotNil(t, employee.VerificationTokenExpiresAt)
	assert.Len(t, *employee.VerificationToken, 6)
	assert.Equal(t, env.clock.Now().Add(24*time.Hour), *employee.VerificationTokenExpiresAt)

	assert.NotEqual(t, req.Password, employee.PasswordHash)
	assert.True(t, strings.HasPrefix(employee.PasswordHash, "$2a$"))

	sent := env.mail.last(email.TemplateVerification)
	require.NotNil(t, sent)
	assert.Equal(t, []string{"asha@corp.com"}, sent.To)
	assert.Equal(t, *employee.VerificationToken, sent.Data["Code"])
	assert.Equal(t, "24 hours", sent.Data["ExpiresIn"])
}

func TestCreateAccount_AdminGrantedByAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.seedPolicy(t)

	req := validCreateRequest("E001", "boss@corp.com")
	req.Admin = true

	employee, err := env.auth.CreateAccount(context.Background(), env.db, req, true)
	require.NoError(t, err)
	assert.True(t, employee.Admin)
	assert.Equal(t, models.RoleAdmin, employee.Role())
}

func TestCreateAccount_Conflicts(t *testing.T) {
	env := newTestEnv(t)
	env.seedPolicy(t)
	ctx := context.Background()

	env.createEmployee(t, "E001", "asha@corp.com")

	tests := []struct {
		name string
		req  *dto.CreateEmployeeRequest
	}{
		{"same code", validCreateRequest("E001", "other@corp.com")},
		{"same work email", validCreateRequest("E002", "ASHA@corp.com")},
		{"work email used as personal email", func() *dto.CreateEmployeeRequest {
			r := validCreateRequest("E003", "new@corp.com")
			r.PersonalEmail = "asha@corp.com"
			return r
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.CreateAccount(ctx, env.db, tt.req, false)
			assert.ErrorIs(t, err, apperrors.ErrEmployeeAlreadyExists)
		})
	}
}

func TestCreateAccount_UploadsDataURLs(t *testing.T) {
	env := newTestEnv(t)
	env.seedPolicy(t)

	req := validCreateRequest("E001", "asha@corp.com")
	req.AadharCardImage = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("\x89PNGdata"))

	employee, err := env.auth.CreateAccount(context.Background(), env.db, req, false)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(employee.AadharCardImage, "/files/documents/"))
	assert.Equal(t, "https://cdn.example.com/pan.png", employee.PanCardImage)

	req = validCreateRequest("E002", "ravi@corp.com")
	req.Resume = "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte("<html>"))
	_, err = env.auth.CreateAccount(context.Background(), env.db, req, false)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
}

func TestVerifyEmail(t *testing.T) {
	env := newTestEnv(t)
	env.seedPolicy(t)
	ctx := context.Background()

	env.createEmployee(t, "E001", "asha@corp.com")
	code := env.mail.last(email.TemplateVerification).Data["Code"].(string)

	_, err := env.auth.VerifyEmail(ctx, env.db, "000000")
	if code != "000000" {
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	}

	employee, err := env.auth.VerifyEmail(ctx, env.db, code)
	require.NoError(t, err)
	assert.True(t, employee.IsVerified)
	assert.Nil(t, employee.VerificationToken)
	assert.Equal(t, 1, env.mail.count(email.TemplateWelcome))

	var stored models.Employee
	require.NoError(t, env.db.First(&stored, "id = ?", employee.ID).Error)
	assert.True(t, stored.IsVerified)
	assert.Nil(t, stored.VerificationToken)
	assert.Nil(t, stored.VerificationTokenExpiresAt)

	// код одноразовый
	_, err = env.auth.VerifyEmail(ctx, env.db, code)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestVerifyEmail_Expired(t *testing.T) {
	env := newTestEnv(t)
	env.seedPolicy(t)

	env.createEmployee(t, "E001", "asha@corp.com")
	code := env.mail.last(email.TemplateVerification).Data["Code"].(string)

	env.clock.Advance(24*time.Hour + time.Second)
	_, err := env.auth.VerifyEmail(context.Background(), env.db, code)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestVerifyEmail_EmailFailureDoesNotRollBack(t *testing.T) {
	env := newTestEnv(t)
	env.seedPolicy(t)

	env.createEmployee(t, "E001", "asha@corp.com")
	code := env.mail.last(email.TemplateVerification).Data["Code"].(string)

	env.mail.err = errors.New("smtp down")
	employee, err := env.auth.VerifyEmail(context.Background(), env.db, code)
	require.NoError(t, err)
	assert.True(t, employee.IsVerified)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.seedPolicy(t)
	ctx := context.Background()

	id := env.createEmployee(t, "E001", "asha@corp.com")

	result, err := env.auth.Login(ctx, env.db, &dto.LoginRequest{WorkEmail: "ASHA@corp.com", Password: "s3cret-pass"}, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, id, result.Employee.ID)
	require.NotNil(t, result.Employee.LastLogin)
	assert.Equal(t, env.clock.Now(), *result.Employee.LastLogin)

	claims, err := env.sessions.Validate(result.Token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, models.RoleEmployee, claims.Role)

	var stored models.Employee
	require.NoError(t, env.db.First(&stored, "id = ?", id).Error)
	require.NotNil(t, stored.LastLogin)
}

func TestLogin_UniformFailure(t *testing.T) {
	env := newTestEnv(t)
	env.seedPolicy(t)
	ctx := context.Background()

	env.createEmployee(t, "E001", "asha@corp.com")

	_, wrongPassword := env.auth.Login(ctx, env.db, &dto.LoginRequest{WorkEmail: "asha@corp.com", Password: "wrong-password"}, "")
	_, unknownEmail := env.auth.Login(ctx, env.db, &dto.LoginRequest{WorkEmail: "nobody@corp.com", Password: "s3cret-pass"}, "")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.ErrorIs(t, wrongPassword, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, apperrors.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestForgotAndResetPassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedPolicy(t)
	ctx := context.Background()

	id := env.createEmployee(t, "E001", "asha@corp.com")

	require.NoError(t, env.auth.ForgotPassword(ctx, env.db, "asha@corp.com", ""))
	sent := env.mail.last(email.TemplatePasswordReset)
	require.NotNil(t, sent)
	resetURL := sent.Data["ResetURL"].(string)
	require.True(t, strings.HasPrefix(resetURL, "https://hr.example.com/resetpassword/"))
	token := strings.TrimPrefix(resetURL, "https://hr.example.com/resetpassword/")
	assert.Len(t, token, 80)

	// в базе хранится только хеш
	var stored models.Employee
	require.NoError(t, env.db.First(&stored, "id = ?", id).Error)
	require.NotNil(t, stored.ResetPasswordToken)
	assert.Equal(t, auth.HashToken(token), *stored.ResetPasswordToken)

	require.NoError(t, env.auth.ResetPasswordWithToken(ctx, env.db, token, &dto.ResetPasswordRequest{NewPassword: "brand-new-pass"}))
	assert.Equal(t, 1, env.mail.count(email.TemplatePasswordResetSuccess))

	_, err := env.auth.Login(ctx, env.db, &dto.LoginRequest{WorkEmail: "asha@corp.com", Password: "brand-new-pass"}, "")
	assert.NoError(t, err)

	// токен одноразовый
	err = env.auth.ResetPasswordWithToken(ctx, env.db, token, &dto.ResetPasswordRequest{NewPassword: "another-pass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	// читаем в новую структуру: GORM не обнуляет указатели для NULL-колонок
	var after models.Employee
	require.NoError(t, env.db.First(&after, "id = ?", id).Error)
	assert.Nil(t, after.ResetPasswordToken)
	assert.Nil(t, after.ResetPasswordTokenExpiresAt)
}

func TestResetPassword_Expired(t *testing.T) {
	env := newTestEnv(t)
	env.seedPolicy(t)
	ctx := context.Background()

	env.createEmployee(t, "E001", "asha@corp.com")
	require.NoError(t, env.auth.ForgotPassword(ctx, env.db, "asha@corp.com", ""))
	token := strings.TrimPrefix(env.mail.last(email.TemplatePasswordReset).Data["ResetURL"].(string), "https://hr.example.com/resetpassword/")

	env.clock.Advance(time.Hour + time.Second)
	err := env.auth.ResetPasswordWithToken(ctx, env.db, token, &dto.ResetPasswordRequest{NewPassword: "brand-new-pass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestForgotPassword_UnknownEmailLooksTheSame(t *testing.T) {
	env := newTestEnv(t)
	env.seedPolicy(t)

	err := env.auth.ForgotPassword(context.Background(), env.db, "nobody@corp.com", "")
	assert.NoError(t, err)
	assert.Zero(t, env.mail.count(email.TemplatePasswordReset))
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedPolicy(t)
	ctx := context.Background()

	id := env.createEmployee(t, "E001", "asha@corp.com")
	require.NoError(t, env.auth.ForgotPassword(ctx, env.db, "asha@corp.com", ""))

	err := env.auth.ChangePassword(ctx, env.db, id, &dto.ChangePasswordRequest{OldPassword: "wrong-password", NewPassword: "brand-new-pass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	err = env.auth.ChangePassword(ctx, env.db, id, &dto.ChangePasswordRequest{OldPassword: "s3cret-pass", NewPassword: "short"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	require.NoError(t, env.auth.ChangePassword(ctx, env.db, id, &dto.ChangePasswordRequest{OldPassword: "s3cret-pass", NewPassword: "brand-new-pass"}))
	assert.Equal(t, 1, env.mail.count(email.TemplatePasswordResetSuccess))

	// незавершенный сброс пароля погашен
	var stored models.Employee
	require.NoError(t, env.db.First(&stored, "id = ?", id).Error)
	assert.Nil(t, stored.ResetPasswordToken)

	_, err = env.auth.Login(ctx, env.db, &dto.LoginRequest{WorkEmail: "asha@corp.com", Password: "brand-new-pass"}, "")
	assert.NoError(t, err)
}

func TestCheckAuth(t *testing.T) {
	env := newTestEnv(t)
	env.seedPolicy(t)
	ctx := context.Background()

	id := env.createEmployee(t, "E001", "asha@corp.com")

	employee, err := env.auth.CheckAuth(ctx, env.db, id)
	require.NoError(t, err)
	assert.Equal(t, "asha@corp.com", employee.WorkEmail)

	_, err = env.auth.CheckAuth(ctx, env.db, "")
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)

	_, err = env.auth.CheckAuth(ctx, env.db, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, apperrors.ErrEmployeeNotFound)
}

func TestHumanizeDuration(t *testing.T) {
	assert.Equal(t, "24 hours", humanizeDuration(24*time.Hour))
	assert.Equal(t, "1 hour", humanizeDuration(time.Hour))
	assert.Equal(t, "90 minutes", humanizeDuration(90*time.Minute))
	assert.Equal(t, "30 seconds", humanizeDuration(30*time.Second))
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Asha", sanitizeText(" <b>Asha</b> "))
	assert.Equal(t, "O'Brien & Sons", sanitizeText("O'Brien & Sons"))
	assert.Equal(t, "", sanitizeText("<script>alert(1)</script>"))
	assert.Equal(t, "scriptx/script", sanitizeText("&lt;script&gt;x&lt;/script&gt;"))
}
