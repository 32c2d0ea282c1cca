package handlers

import (
	"net/http"

	"hrportal_backend/internal/services"
	"hrportal_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type LeavePolicyHandler struct {
	*BaseHandler
	policyService services.LeavePolicyService
}

func NewLeavePolicyHandler(base *BaseHandler, policyService services.LeavePolicyService) *LeavePolicyHandler {
	return &LeavePolicyHandler{
		BaseHandler:   base,
		policyService: policyService,
	}
}

func (h *LeavePolicyHandler) RegisterRoutes(rg *gin.RouterGroup, guards RouteGuards) {
	policies := rg.Group("/leave-policies", guards.Auth)
	{
		policies.POST("", guards.Admin, h.Create)
		policies.GET("/latest", h.GetLatest)
		policies.PUT("/latest", guards.Admin, h.UpdateLatest)
	}
}

// Create godoc
// @Summary Создать политику отпусков (админ)
// @Description compOffs всегда 0; не переданные поля получают значения по умолчанию
// @Tags leave-policies
// @Accept json
// @Produce json
// @Param policy body dto.LeavePolicyRequest true "Политика"
// @Success 201 {object} dto.LeavePolicyResponse
// @Failure 403 {object} apperrors.ErrorResponse "Нужны права администратора"
// @Router /leave-policies [post]
func (h *LeavePolicyHandler) Create(c *gin.Context) {
	var req dto.LeavePolicyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	policy, err := h.policyService.Create(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.LeavePolicyResponse{
		Success: true,
		Message: "Company leave policy created successfully",
		Data:    policy,
	})
}

// GetLatest godoc
// @Summary Текущая политика отпусков
// @Tags leave-policies
// @Produce json
// @Success 200 {object} dto.LeavePolicyResponse
// @Failure 404 {object} apperrors.ErrorResponse "Политика не создана"
// @Router /leave-policies/latest [get]
func (h *LeavePolicyHandler) GetLatest(c *gin.Context) {
	policy, err := h.policyService.Latest(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LeavePolicyResponse{
		Success: true,
		Message: "Company leave policies fetched successfully",
		Data:    policy,
	})
}

// UpdateLatest godoc
// @Summary Новая ревизия политики (админ)
// @Description Копирует текущую политику, применяет переданные поля и сохраняет новой записью
// @Tags leave-policies
// @Accept json
// @Produce json
// @Param policy body dto.LeavePolicyRequest true "Изменяемые поля"
// @Success 200 {object} dto.LeavePolicyResponse
// @Failure 404 {object} apperrors.ErrorResponse "Политика не создана"
// @Router /leave-policies/latest [put]
func (h *LeavePolicyHandler) UpdateLatest(c *gin.Context) {
	var req dto.LeavePolicyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	policy, err := h.policyService.Revise(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LeavePolicyResponse{
		Success: true,
		Message: "Company leave policy updated successfully",
		Data:    policy,
	})
}
