package email

// Email представляет структуру email сообщения
type Email struct {
	From     string
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData представляет данные для шаблонов писем
type TemplateData map[string]interface{}

// Имена шаблонов (файлы templates/<name>.html)
const (
	TemplateVerification         = "verification"
	TemplateWelcome              = "welcome"
	TemplatePasswordReset        = "password_reset"
	TemplatePasswordResetSuccess = "password_reset_success"
)
