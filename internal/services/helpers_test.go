package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hrportal_backend/internal/auth"
	"hrportal_backend/internal/email"
	"hrportal_backend/internal/repositories"
	"hrportal_backend/internal/services/dto"
	"hrportal_backend/internal/storage"
	"hrportal_backend/internal/testhelpers"
)

type sentEmail struct {
	To       []string
	Subject  string
	Template string
	Data     email.TemplateData
}

// recordingProvider запоминает письма вместо отправки
type recordingProvider struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (p *recordingProvider) Send(ctx context.Context, e *email.Email) error {
	return p.err
}

func (p *recordingProvider) SendTemplate(ctx context.Context, to []string, subject, templateName string, data email.TemplateData) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, sentEmail{To: to, Subject: subject, Template: templateName, Data: data})
	return p.err
}

func (p *recordingProvider) Validate() error { return nil }

func (p *recordingProvider) last(template string) *sentEmail {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.sent) - 1; i >= 0; i-- {
		if p.sent[i].Template == template {
			return &p.sent[i]
		}
	}
	return nil
}

func (p *recordingProvider) count(template string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, s := range p.sent {
		if s.Template == template {
			n++
		}
	}
	return n
}

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type testEnv struct {
	db         *gorm.DB
	clock      *testClock
	mail       *recordingProvider
	sessions   *auth.SessionIssuer
	auth       *AuthServiceImpl
	employees  EmployeeService
	policies   LeavePolicyService
	storageDir string
}

const testSecret = "test-secret-that-is-long-enough-for-hs256"

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testhelpers.NewTestDB(t)
	clock := &testClock{t: time.Now().UTC().Truncate(time.Second)}
	mail := &recordingProvider{}

	sessions, err := auth.NewSessionIssuer(testSecret, 7*24*time.Hour, "hrportal")
	require.NoError(t, err)
	sessions.WithClock(clock.Now)

	tokens := auth.NewTokenIssuer(24*time.Hour, time.Hour).WithClock(clock.Now)

	dir := t.TempDir()
	local, err := storage.NewLocalStorage(storage.Config{BasePath: dir, BaseURL: "/files"})
	require.NoError(t, err)
	uploader := storage.NewUploader(local, 1<<20, []string{"image/png", "image/jpeg", "application/pdf"})

	employeeRepo := repositories.NewEmployeeRepository()
	policies := NewLeavePolicyService(repositories.NewLeavePolicyRepository())
	emails := NewEmailService(mail, "https://hr.example.com/", 24*time.Hour, time.Hour)

	authSvc := NewAuthService(
		employeeRepo,
		policies,
		auth.NewPasswordHasher(auth.MinBcryptCost),
		tokens,
		sessions,
		emails,
		uploader,
		nil,
		"IN",
	).WithClock(clock.Now)

	return &testEnv{
		db:         db,
		clock:      clock,
		mail:       mail,
		sessions:   sessions,
		auth:       authSvc,
		employees:  NewEmployeeService(employeeRepo, uploader, "IN"),
		policies:   policies,
		storageDir: dir,
	}
}

func (e *testEnv) seedPolicy(t *testing.T) {
	t.Helper()
	_, err := e.policies.Create(context.Background(), e.db, &dto.LeavePolicyRequest{})
	require.NoError(t, err)
}

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func datePtr(s string) *dto.Date {
	d := &dto.Date{}
	_ = d.UnmarshalJSON([]byte(`"` + s + `"`))
	return d
}

func validCreateRequest(code, workEmail string) *dto.CreateEmployeeRequest {
	return &dto.CreateEmployeeRequest{
		EmployeeCode:     code,
		FirstName:        "Asha",
		LastName:         "Rao",
		PersonalEmail:    code + "@gmail.com",
		WorkEmail:        workEmail,
		Password:         "s3cret-pass",
		ContactNumber:    "+442071838750",
		DateOfJoining:    datePtr("2024-01-15"),
		Designation:      "Engineer",
		EmploymentType:   "Full-time",
		WorkLocation:     "Bengaluru",
		AadharCardNumber: "123412341234",
		AadharCardImage:  "https://cdn.example.com/aadhar.png",
		PanCardNumber:    "ABCDE1234F",
		PanCardImage:     "https://cdn.example.com/pan.png",
	}
}

func (e *testEnv) createEmployee(t *testing.T, code, workEmail string) string {
	t.Helper()
	employee, err := e.auth.CreateAccount(context.Background(), e.db, validCreateRequest(code, workEmail), false)
	require.NoError(t, err)
	return employee.ID
}
