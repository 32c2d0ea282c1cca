package handlers

import (
	"net/http"

	"hrportal_backend/internal/auth"
	"hrportal_backend/internal/middleware"
	"hrportal_backend/internal/services"
	"hrportal_backend/internal/services/dto"
	"hrportal_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	employeeService services.EmployeeService
}

func NewUserHandler(base *BaseHandler, employeeService services.EmployeeService) *UserHandler {
	return &UserHandler{
		BaseHandler:     base,
		employeeService: employeeService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, guards RouteGuards) {
	users := rg.Group("/users", guards.Auth)
	{
		users.PUT("/profile", h.UpdateProfile)
		users.GET("", guards.Admin, h.ListUsers)
		users.GET("/:id", h.GetUserByID)
	}
}

// UpdateProfile godoc
// @Summary Обновить свой профиль
// @Description Меняются только разрешенные поля; пароль, флаги админа и баланс отпусков не меняются
// @Tags users
// @Accept json
// @Produce json
// @Param profile body dto.UpdateProfileRequest true "Изменяемые поля"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} apperrors.ErrorResponse "Ошибка валидации"
// @Failure 409 {object} apperrors.ErrorResponse "Email уже занят"
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	employee, err := h.employeeService.UpdateProfile(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{
		Success: true,
		Message: "User profile updated successfully.",
		User:    employee,
	})
}

// ListUsers godoc
// @Summary Все сотрудники (админ)
// @Tags users
// @Produce json
// @Param page query int false "Страница" default(1)
// @Param page_size query int false "Размер страницы" default(20)
// @Success 200 {object} dto.UsersListResponse
// @Failure 403 {object} apperrors.ErrorResponse "Нужны права администратора"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var query dto.ListEmployeesQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	page, pageSize := services.NormalizePage(query.Page, query.PageSize)

	employees, total, err := h.employeeService.List(c.Request.Context(), h.GetDB(c), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UsersListResponse{
		Success:  true,
		Message:  "All Users Fetched Successfully.",
		AllUsers: employees,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetUserByID godoc
// @Summary Сотрудник по ID
// @Description Админ видит всех, сотрудник только себя
// @Tags users
// @Produce json
// @Param id path string true "ID сотрудника"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} apperrors.ErrorResponse "Нет доступа"
// @Failure 404 {object} apperrors.ErrorResponse "Сотрудник не найден"
// @Router /users/{id} [get]
func (h *UserHandler) GetUserByID(c *gin.Context) {
	id := c.Param("id")
	claims := &auth.Claims{UserID: middleware.GetUserID(c), Role: middleware.GetRole(c)}
	if !auth.CanViewEmployee(claims, id) {
		h.HandleServiceError(c, apperrors.ErrInsufficientPermissions)
		return
	}

	employee, err := h.employeeService.GetByID(c.Request.Context(), h.GetDB(c), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{Success: true, User: employee})
}
