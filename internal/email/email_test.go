package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManager_LoadsEmbeddedTemplates(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		TemplateVerification,
		TemplateWelcome,
		TemplatePasswordReset,
		TemplatePasswordResetSuccess,
	}, tm.TemplateNames())
}

func TestTemplateManager_Render(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	out, err := tm.Render(TemplatePasswordReset, TemplateData{
		"Name":      "Asha",
		"ResetURL":  "https://hr.example.com/resetpassword/abc",
		"ExpiresIn": "1 hour",
	})
	require.NoError(t, err)
	assert.Contains(t, out, `href="https://hr.example.com/resetpassword/abc"`)
	assert.Contains(t, out, "Hi Asha")
}

func TestTemplateManager_EscapesData(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	out, err := tm.Render(TemplateWelcome, TemplateData{
		"Name":     "<script>alert(1)</script>",
		"LoginURL": "https://hr.example.com/login",
	})
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}

func TestTemplateManager_Errors(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)

	_, err = tm.Render("missing", nil)
	assert.Error(t, err)

	// отсутствующий ключ - ошибка, а не "<no value>" в письме
	_, err = tm.Render(TemplateVerification, TemplateData{"Name": "Asha"})
	assert.Error(t, err)
}

func TestSMTPProvider_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FromEmail = "no-reply@corp.com"
	assert.NoError(t, NewSMTPProvider(cfg, nil).Validate())

	cfg.Host = ""
	assert.Error(t, NewSMTPProvider(cfg, nil).Validate())

	cfg = DefaultConfig()
	assert.Error(t, NewSMTPProvider(cfg, nil).Validate(), "sender is required")
}

func TestSMTPProvider_TextFromHTML(t *testing.T) {
	p := NewSMTPProvider(DefaultConfig(), nil)
	text := p.textFromHTML("<h2>Hello &amp; welcome</h2>\n  <p>Code: <b>123456</b></p>\n")
	assert.Equal(t, "Hello & welcome\nCode: 123456", text)
}

func TestLogProvider_RendersTemplate(t *testing.T) {
	tm, err := NewTemplateManager()
	require.NoError(t, err)
	p := NewLogProvider(tm)

	err = p.SendTemplate(context.Background(), []string{"a@corp.com"}, "Verify", TemplateVerification, TemplateData{
		"Name": "Asha", "Code": "123456", "ExpiresIn": "24 hours",
	})
	assert.NoError(t, err)

	err = p.SendTemplate(context.Background(), []string{"a@corp.com"}, "Verify", "unknown", nil)
	assert.Error(t, err)
}
