package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hrportal_backend/internal/auth"
	"hrportal_backend/internal/email"
	"hrportal_backend/internal/middleware"
	"hrportal_backend/internal/models"
	"hrportal_backend/internal/repositories"
	"hrportal_backend/internal/services"
	"hrportal_backend/internal/services/dto"
	"hrportal_backend/internal/storage"
	"hrportal_backend/internal/testhelpers"
	"hrportal_backend/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mailbox запоминает данные шаблонов, чтобы тест мог достать ссылку сброса
type mailbox struct {
	mu   sync.Mutex
	data map[string]email.TemplateData
}

func (m *mailbox) Send(ctx context.Context, e *email.Email) error { return nil }

func (m *mailbox) SendTemplate(ctx context.Context, to []string, subject, templateName string, data email.TemplateData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[templateName] = data
	return nil
}

func (m *mailbox) Validate() error { return nil }

func (m *mailbox) last(templateName string) email.TemplateData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[templateName]
}

type testServer struct {
	router   *gin.Engine
	db       *gorm.DB
	mail     *mailbox
	sessions *auth.SessionIssuer
	authSvc  services.AuthService
	policies services.LeavePolicyService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := testhelpers.NewTestDB(t)
	mail := &mailbox{data: map[string]email.TemplateData{}}

	sessions, err := auth.NewSessionIssuer("test-secret-that-is-long-enough-for-hs256", 7*24*time.Hour, "hrportal")
	require.NoError(t, err)

	local, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir(), BaseURL: "/files"})
	require.NoError(t, err)
	uploader := storage.NewUploader(local, 1<<20, []string{"image/png", "application/pdf"})

	employeeRepo := repositories.NewEmployeeRepository()
	policies := services.NewLeavePolicyService(repositories.NewLeavePolicyRepository())
	authSvc := services.NewAuthService(
		employeeRepo,
		policies,
		auth.NewPasswordHasher(auth.MinBcryptCost),
		auth.NewTokenIssuer(24*time.Hour, time.Hour),
		sessions,
		services.NewEmailService(mail, "https://hr.example.com", 24*time.Hour, time.Hour),
		uploader,
		nil,
		"IN",
	)
	employeeSvc := services.NewEmployeeService(employeeRepo, uploader, "IN")

	base := NewBaseHandler(validator.New("IN"))
	guards := RouteGuards{
		Auth:         middleware.AuthMiddleware(sessions, "token"),
		OptionalAuth: middleware.OptionalAuthMiddleware(sessions, "token"),
		Admin:        middleware.RequireAdmin(),
	}

	router := gin.New()
	router.Use(middleware.DBMiddleware(db))
	api := router.Group("/api/v1")
	NewAuthHandler(base, authSvc, SessionCookie{Name: "token"}).RegisterRoutes(api, guards)
	NewUserHandler(base, employeeSvc).RegisterRoutes(api, guards)
	NewLeavePolicyHandler(base, policies).RegisterRoutes(api, guards)
	api.GET("/health", NewHealthHandler(base).Health)

	return &testServer{
		router:   router,
		db:       db,
		mail:     mail,
		sessions: sessions,
		authSvc:  authSvc,
		policies: policies,
	}
}

func (s *testServer) seedPolicy(t *testing.T) {
	t.Helper()
	_, err := s.policies.Create(context.Background(), s.db, &dto.LeavePolicyRequest{})
	require.NoError(t, err)
}

// createEmployee создает сотрудника через сервис и возвращает его id
func (s *testServer) createEmployee(t *testing.T, code, workEmail string, admin bool) string {
	t.Helper()
	req := employeePayload(code, workEmail)
	req.Admin = admin
	employee, err := s.authSvc.CreateAccount(context.Background(), s.db, req, admin)
	require.NoError(t, err)
	return employee.ID
}

func (s *testServer) bearer(t *testing.T, userID, role string) string {
	t.Helper()
	token, _, err := s.sessions.Issue(userID, role)
	require.NoError(t, err)
	return "Bearer " + token
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, authHeader string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func employeePayload(code, workEmail string) *dto.CreateEmployeeRequest {
	joined := dto.Date{Time: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}
	return &dto.CreateEmployeeRequest{
		EmployeeCode:     code,
		FirstName:        "Asha",
		LastName:         "Rao",
		PersonalEmail:    code + "@gmail.com",
		WorkEmail:        workEmail,
		Password:         "s3cret-pass",
		ContactNumber:    "+442071838750",
		DateOfJoining:    &joined,
		Designation:      "Engineer",
		EmploymentType:   models.EmploymentType("Full-time"),
		WorkLocation:     "Bengaluru",
		AadharCardNumber: "123412341234",
		AadharCardImage:  "https://cdn.example.com/aadhar.png",
		PanCardNumber:    "ABCDE1234F",
		PanCardImage:     "https://cdn.example.com/pan.png",
	}
}

type userBody struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	User    models.Employee `json:"user"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	return nil
}
