package email

import (
	"context"

	"hrportal_backend/internal/logger"
)

// LogProvider используется, когда SMTP не настроен: письма рендерятся, но только логируются.
// Содержимое не логируется, в нем коды и ссылки сброса.
type LogProvider struct {
	renderer TemplateRenderer
}

func NewLogProvider(renderer TemplateRenderer) *LogProvider {
	return &LogProvider{renderer: renderer}
}

func (p *LogProvider) Send(ctx context.Context, email *Email) error {
	logger.CtxInfo(ctx, "email delivery skipped (SMTP not configured)",
		"to", email.To,
		"subject", email.Subject,
	)
	return nil
}

func (p *LogProvider) SendTemplate(ctx context.Context, to []string, subject string, templateName string, data TemplateData) error {
	if p.renderer != nil {
		// рендерим, чтобы ошибки в шаблонах всплывали и без SMTP
		if _, err := p.renderer.Render(templateName, data); err != nil {
			return err
		}
	}
	logger.CtxInfo(ctx, "email delivery skipped (SMTP not configured)",
		"to", to,
		"subject", subject,
		"template", templateName,
	)
	return nil
}

func (p *LogProvider) Validate() error { return nil }
