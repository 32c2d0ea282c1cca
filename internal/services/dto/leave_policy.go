package dto

import "hrportal_backend/internal/models"

// LeavePolicyRequest - создание и ревизия политики отпусков.
// compOffs намеренно отсутствует: сервер всегда выставляет 0.
type LeavePolicyRequest struct {
	Casual            *int  `json:"casual" validate:"omitempty,min=0,max=365"`
	Sick              *int  `json:"sick" validate:"omitempty,min=0,max=365"`
	Earned            *int  `json:"earned" validate:"omitempty,min=0,max=365"`
	Bereavement       *int  `json:"bereavement" validate:"omitempty,min=0,max=365"`
	ExamLeave         *int  `json:"examLeave" validate:"omitempty,min=0,max=365"`
	MarriageLeave     *int  `json:"marriageLeave" validate:"omitempty,min=0,max=365"`
	UnpaidLeave       *int  `json:"unpaidLeave" validate:"omitempty,min=-1,max=365"`
	CarryForward      *bool `json:"carryForward"`
	MaxCarryForward   *int  `json:"maxCarryForward" validate:"omitempty,min=0,max=365"`
	EncashmentAllowed *bool `json:"encashmentAllowed"`
	Year              *int  `json:"year" validate:"omitempty,min=2000,max=2100"`
}

type LeavePolicyResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    *models.LeavePolicy `json:"data"`
}
