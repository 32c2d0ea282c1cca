package dto

import (
	"hrportal_backend/internal/models"
)

// UpdateProfileRequest - частичное обновление профиля.
// nil означает "не менять"; поля вне этого списка изменить нельзя.
type UpdateProfileRequest struct {
	FirstName          *string                `json:"firstName" validate:"omitempty,min=1,max=100"`
	MiddleName         *string                `json:"middleName" validate:"omitempty,max=100"`
	LastName           *string                `json:"lastName" validate:"omitempty,min=1,max=100"`
	PersonalEmail      *string                `json:"personalEmail" validate:"omitempty,email,max=255"`
	WorkEmail          *string                `json:"workEmail" validate:"omitempty,email,max=255"`
	ContactNumber      *string                `json:"contactNumber" validate:"omitempty,phone"`
	WorkPhone          *string                `json:"workPhone" validate:"omitempty,phone"`
	Address            *string                `json:"address" validate:"omitempty,max=500"`
	City               *string                `json:"city" validate:"omitempty,max=100"`
	Country            *string                `json:"country" validate:"omitempty,max=100"`
	Department         *string                `json:"department" validate:"omitempty,max=100"`
	Designation        *string                `json:"designation" validate:"omitempty,min=1,max=100"`
	EmploymentType     *models.EmploymentType `json:"employmentType" validate:"omitempty,employment-type"`
	WorkLocation       *string                `json:"workLocation" validate:"omitempty,max=100"`
	ReportingManagerID *string                `json:"reportingManagerId" validate:"omitempty,uuid"`
	BloodGroup         *string                `json:"bloodGroup" validate:"omitempty,blood-group"`
	MaritalStatus      *models.MaritalStatus  `json:"maritalStatus" validate:"omitempty,marital-status"`
	NoticePeriod       *int                   `json:"noticePeriod" validate:"omitempty,min=0,max=365"`
	ProfilePicture     *string                `json:"profilePicture"`
}

// ListEmployeesQuery - пагинация списка сотрудников
type ListEmployeesQuery struct {
	Page     int `form:"page" validate:"omitempty,min=1"`
	PageSize int `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// UserResponse - стандартный ответ с записью сотрудника
type UserResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	User    *models.Employee `json:"user"`
}

// UsersListResponse - список сотрудников для админа
type UsersListResponse struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message"`
	AllUsers []models.Employee `json:"allUsers"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
}

// MessageResponse - ответ без данных
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
