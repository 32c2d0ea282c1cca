package handlers

import (
	"net/http"
	"time"

	"hrportal_backend/internal/auth"
	"hrportal_backend/internal/middleware"
	"hrportal_backend/internal/services"
	"hrportal_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// Ответ на forgot-password одинаковый для известных и неизвестных адресов
const forgotPasswordMessage = "Password reset link sent to your email"

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	cookie      SessionCookie
	now         func() time.Time
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, cookie SessionCookie) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		cookie:      cookie,
		now:         time.Now,
	}
}

// RegisterRoutes регистрирует маршруты учетной записи под /users
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, guards RouteGuards) {
	users := rg.Group("/users")
	{
		users.POST("", guards.OptionalAuth, h.CreateUser)
		users.POST("/login", h.Login)
		users.POST("/logout", h.Logout)
		users.POST("/verify-email", h.VerifyEmail)
		users.POST("/forgot-password", h.ForgotPassword)
		users.POST("/reset-password", guards.Auth, h.ChangePassword)
		users.POST("/reset-password/:token", h.ResetPassword)
		users.GET("/check-auth", guards.Auth, h.CheckAuth)
	}
}

// CreateUser godoc
// @Summary Создать сотрудника
// @Description Создает сотрудника (не подтвержден), снимок политики отпусков и отправляет код подтверждения
// @Tags users
// @Accept json
// @Produce json
// @Param employee body dto.CreateEmployeeRequest true "Данные сотрудника"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} apperrors.ErrorResponse "Ошибка валидации или нет политики отпусков"
// @Failure 409 {object} apperrors.ErrorResponse "Код или email уже заняты"
// @Router /users [post]
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	// флаги admin/superAdmin учитываются только от администратора
	grantAdmin := auth.IsAdminRole(middleware.GetRole(c))

	employee, err := h.authService.CreateAccount(c.Request.Context(), h.GetDB(c), &req, grantAdmin)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.UserResponse{
		Success: true,
		Message: "Employee created successfully.",
		User:    employee,
	})
}

// Login godoc
// @Summary Вход
// @Description Проверяет рабочий email и пароль, ставит cookie сессии
// @Tags users
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Учетные данные"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} apperrors.ErrorResponse "Неверный email или пароль"
// @Failure 429 {object} apperrors.ErrorResponse "Слишком много попыток"
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), h.GetDB(c), &req, c.ClientIP())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.cookie.Set(c, result.Token, result.ExpiresAt, h.now())

	c.JSON(http.StatusOK, dto.UserResponse{
		Success: true,
		Message: "Welcome back " + result.Employee.FirstName,
		User:    result.Employee,
	})
}

// Logout godoc
// @Summary Выход
// @Tags users
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /users/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookie.Clear(c)
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Logged Out Successfully."})
}

// VerifyEmail godoc
// @Summary Подтвердить email
// @Tags users
// @Accept json
// @Produce json
// @Param code body dto.VerifyEmailRequest true "Код из письма"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} apperrors.ErrorResponse "Неверный или истекший код"
// @Router /users/verify-email [post]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	employee, err := h.authService.VerifyEmail(c.Request.Context(), h.GetDB(c), req.VerificationCode)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{
		Success: true,
		Message: "Email Verified Successfully.",
		User:    employee,
	})
}

// ForgotPassword godoc
// @Summary Запросить сброс пароля
// @Description Всегда отвечает одинаково, чтобы не раскрывать наличие адреса
// @Tags users
// @Accept json
// @Produce json
// @Param email body dto.ForgotPasswordRequest true "Рабочий email"
// @Success 200 {object} dto.MessageResponse
// @Failure 429 {object} apperrors.ErrorResponse "Слишком много попыток"
// @Router /users/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), h.GetDB(c), req.Email, c.ClientIP()); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: forgotPasswordMessage})
}

// ChangePassword godoc
// @Summary Сменить пароль (в сессии)
// @Tags users
// @Accept json
// @Produce json
// @Param passwords body dto.ChangePasswordRequest true "Старый и новый пароль"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} apperrors.ErrorResponse "Неверный старый пароль"
// @Failure 401 {object} apperrors.ErrorResponse "Нет сессии"
// @Router /users/reset-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), h.GetDB(c), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Password Reset Successfully."})
}

// ResetPassword godoc
// @Summary Сбросить пароль по ссылке из письма
// @Tags users
// @Accept json
// @Produce json
// @Param token path string true "Токен сброса"
// @Param password body dto.ResetPasswordRequest true "Новый пароль"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} apperrors.ErrorResponse "Неверный или истекший токен"
// @Router /users/reset-password/{token} [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ResetPasswordWithToken(c.Request.Context(), h.GetDB(c), c.Param("token"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Password Reset Successfully."})
}

// CheckAuth godoc
// @Summary Текущий пользователь
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} apperrors.ErrorResponse "Нет сессии"
// @Failure 404 {object} apperrors.ErrorResponse "Сотрудник не найден"
// @Router /users/check-auth [get]
func (h *AuthHandler) CheckAuth(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	employee, err := h.authService.CheckAuth(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{Success: true, User: employee})
}
