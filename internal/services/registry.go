package services

import (
	"hrportal_backend/internal/auth"
	"hrportal_backend/internal/ratelimit"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService        AuthService
	EmployeeService    EmployeeService
	LeavePolicyService LeavePolicyService
	EmailService       *EmailService
	// Sessions нужен middleware для проверки cookie
	Sessions *auth.SessionIssuer
	// Limiter равен nil, если redis не настроен
	Limiter *ratelimit.Limiter
}
