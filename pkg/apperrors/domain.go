package apperrors

import (
	"net/http"
)

/*
Предопределенные ошибки домена.
Сервисы возвращают их напрямую, хендлеры только рендерят.
*/

// --- Auth ---

// ErrInvalidCredentials - неизвестный email или неверный пароль.
// Оба случая отдают одинаковый ответ, чтобы нельзя было перебирать адреса.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusBadRequest,
)

// ErrInvalidToken - код верификации или токен сброса не найден или истек.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusBadRequest,
)

// ErrNotAuthenticated - нет валидной сессии.
var ErrNotAuthenticated = New(
	CodeUnauthorized,
	"auth",
	"Not authenticated",
	http.StatusUnauthorized,
)

// ErrInsufficientPermissions - не-админ пытается выполнить админ-действие.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrTooManyRequests - превышен лимит попыток.
var ErrTooManyRequests = New(
	CodeRateLimited,
	"auth",
	"Too many attempts, please try again later",
	http.StatusTooManyRequests,
)

// --- Employees ---

// ErrEmployeeNotFound - сотрудник не найден.
var ErrEmployeeNotFound = New(
	CodeNotFound,
	"employee",
	"Employee not found",
	http.StatusNotFound,
)

// ErrEmployeeAlreadyExists - employeeCode, workEmail или personalEmail уже заняты.
var ErrEmployeeAlreadyExists = New(
	CodeConflict,
	"employee",
	"Employee with this code or email already exists",
	http.StatusConflict,
)

// --- Leave policy ---

// ErrLeavePolicyNotConfigured - нельзя создать сотрудника без политики отпусков.
var ErrLeavePolicyNotConfigured = New(
	CodeUnconfigured,
	"leave_policy",
	"Company leave policy not configured",
	http.StatusBadRequest,
)

// ErrLeavePolicyNotFound - политика отпусков еще не создана.
var ErrLeavePolicyNotFound = New(
	CodeNotFound,
	"leave_policy",
	"Leave policy not found",
	http.StatusNotFound,
)

// --- Uploads ---

// ErrFileTooLarge - файл превышает максимальный размер.
var ErrFileTooLarge = New(
	CodeValidationFailed,
	"upload",
	"File size exceeds the allowed limit",
	http.StatusBadRequest,
)

// ErrInvalidFileType - MIME-тип файла не разрешен.
var ErrInvalidFileType = New(
	CodeValidationFailed,
	"upload",
	"The provided file type is not allowed",
	http.StatusBadRequest,
)
