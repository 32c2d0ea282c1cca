package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hrportal_backend/internal/email"
	"hrportal_backend/internal/logger"
	"hrportal_backend/internal/models"
)

// EmailService - письма жизненного цикла учетной записи.
// Ошибки доставки логируются и не возвращаются: изменение состояния уже произошло.
type EmailService struct {
	provider        email.Provider
	frontendURL     string
	verificationTTL time.Duration
	resetTTL        time.Duration
}

// NewEmailService создает новый экземпляр EmailService
func NewEmailService(provider email.Provider, frontendURL string, verificationTTL, resetTTL time.Duration) *EmailService {
	return &EmailService{
		provider:        provider,
		frontendURL:     strings.TrimSuffix(frontendURL, "/"),
		verificationTTL: verificationTTL,
		resetTTL:        resetTTL,
	}
}

// ResetURL - ссылка на страницу сброса пароля фронтенда
func (s *EmailService) ResetURL(token string) string {
	return s.frontendURL + "/resetpassword/" + token
}

func (s *EmailService) SendVerification(ctx context.Context, employee *models.Employee, code string) {
	s.send(ctx, employee.WorkEmail, "Verify your email", email.TemplateVerification, email.TemplateData{
		"Name":      employee.FirstName,
		"Code":      code,
		"ExpiresIn": humanizeDuration(s.verificationTTL),
	})
}

func (s *EmailService) SendWelcome(ctx context.Context, employee *models.Employee) {
	s.send(ctx, employee.WorkEmail, "Welcome to HR Portal", email.TemplateWelcome, email.TemplateData{
		"Name":     employee.FirstName,
		"LoginURL": s.frontendURL + "/login",
	})
}

func (s *EmailService) SendPasswordReset(ctx context.Context, employee *models.Employee, token string) {
	s.send(ctx, employee.WorkEmail, "HR Portal : Forgot Password", email.TemplatePasswordReset, email.TemplateData{
		"Name":      employee.FirstName,
		"ResetURL":  s.ResetURL(token),
		"ExpiresIn": humanizeDuration(s.resetTTL),
	})
}

func (s *EmailService) SendPasswordResetSuccess(ctx context.Context, employee *models.Employee) {
	s.send(ctx, employee.WorkEmail, "Password Reset Successfully", email.TemplatePasswordResetSuccess, email.TemplateData{
		"Name": employee.FirstName,
	})
}

func (s *EmailService) send(ctx context.Context, to, subject, templateName string, data email.TemplateData) {
	if s == nil || s.provider == nil {
		return
	}
	if err := s.provider.SendTemplate(ctx, []string{to}, subject, templateName, data); err != nil {
		logger.CtxWithError(ctx, "failed to send email", err, "template", templateName)
	}
}

// humanizeDuration: 24h -> "24 hours", 1h -> "1 hour", 30m -> "30 minutes"
func humanizeDuration(d time.Duration) string {
	plural := func(n int64, unit string) string {
		if n == 1 {
			return fmt.Sprintf("1 %s", unit)
		}
		return fmt.Sprintf("%d %ss", n, unit)
	}
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int64(d/time.Hour), "hour")
	case d >= time.Minute:
		return plural(int64(d/time.Minute), "minute")
	default:
		return plural(int64(d/time.Second), "second")
	}
}
