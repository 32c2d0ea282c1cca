package dto

import (
	"hrportal_backend/internal/models"
)

// CreateEmployeeRequest - создание сотрудника (учетная запись + HR-данные).
// Изображения документов и резюме принимаются как data URL или готовые ссылки.
type CreateEmployeeRequest struct {
	EmployeeCode  string `json:"employeeCode" validate:"required,max=64"`
	FirstName     string `json:"firstName" validate:"required,max=100"`
	MiddleName    string `json:"middleName" validate:"omitempty,max=100"`
	LastName      string `json:"lastName" validate:"required,max=100"`
	PersonalEmail string `json:"personalEmail" validate:"required,email,max=255"`
	WorkEmail     string `json:"workEmail" validate:"required,email,max=255"`
	Password      string `json:"password" validate:"required,min=8,max=72"`
	ContactNumber string `json:"contactNumber" validate:"required,phone"`
	WorkPhone     string `json:"workPhone" validate:"omitempty,phone"`
	Address       string `json:"address" validate:"omitempty,max=500"`
	City          string `json:"city" validate:"omitempty,max=100"`
	Country       string `json:"country" validate:"omitempty,max=100"`

	DateOfJoining      *Date                 `json:"dateOfJoining" validate:"required"`
	DateOfBirth        *Date                 `json:"dateOfBirth"`
	Department         string                `json:"department" validate:"omitempty,max=100"`
	Designation        string                `json:"designation" validate:"required,max=100"`
	EmploymentType     models.EmploymentType `json:"employmentType" validate:"required,employment-type"`
	WorkLocation       string                `json:"workLocation" validate:"required,max=100"`
	ReportingManagerID *string               `json:"reportingManagerId" validate:"omitempty,uuid"`

	AadharCardNumber     string `json:"aadharCardNumber" validate:"required,min=12,max=20"`
	AadharCardImage      string `json:"aadharCardImage" validate:"required"`
	PanCardNumber        string `json:"panCardNumber" validate:"required,min=10,max=20"`
	PanCardImage         string `json:"panCardImage" validate:"required"`
	PassportNumber       string `json:"passportNumber" validate:"omitempty,max=20"`
	PassportExpiry       *Date  `json:"passportExpiry"`
	DrivingLicenseNumber string `json:"drivingLicenseNumber" validate:"omitempty,max=30"`

	ProfilePicture string                `json:"profilePicture"`
	Resume         string                `json:"resume"`
	Admin          bool                  `json:"admin"`
	SuperAdmin     bool                  `json:"superAdmin"`
	BloodGroup     string                `json:"bloodGroup" validate:"omitempty,blood-group"`
	MaritalStatus  models.MaritalStatus  `json:"maritalStatus" validate:"omitempty,marital-status"`
	NoticePeriod   int                   `json:"noticePeriod" validate:"min=0,max=365"`
	ExitDate       *Date                 `json:"exitDate"`
	Status         models.EmployeeStatus `json:"status" validate:"omitempty,employee-status"`

	EducationalDetails   []EducationalDetailInput     `json:"educationalDetails" validate:"omitempty,dive"`
	EmploymentHistory    *models.EmploymentHistory    `json:"employmentHistory"`
	SalaryAccountDetails *models.SalaryAccountDetails `json:"salaryAccountDetails"`
	DependentDetails     *DependentDetailsInput       `json:"dependentDetails"`
}

type EducationalDetailInput struct {
	Qualification     string `json:"qualification" validate:"omitempty,max=100"`
	Degree            string `json:"degree" validate:"omitempty,max=100"`
	College           string `json:"college" validate:"omitempty,max=200"`
	PassingYear       int    `json:"passingYear" validate:"omitempty,min=1950,max=2100"`
	GradeOrPercentage string `json:"gradeOrPercentage" validate:"omitempty,max=20"`
	Marksheet10       string `json:"marksheet10"`
	Marksheet12       string `json:"marksheet12"`
	Graduation        string `json:"graduation"`
	Masters           string `json:"masters"`
	Highest           string `json:"highest"`
}

type DependentDetailsInput struct {
	SpouseName               string       `json:"spouseName" validate:"omitempty,max=100"`
	SpouseDOB                *Date        `json:"spouseDob"`
	Children                 []ChildInput `json:"children" validate:"omitempty,dive"`
	EmergencyContactName     string       `json:"emergencyContactName" validate:"omitempty,max=100"`
	EmergencyContactRelation string       `json:"emergencyContactRelation" validate:"omitempty,max=50"`
	EmergencyContactPhone    string       `json:"emergencyContactPhone" validate:"omitempty,phone"`
}

// LoginRequest - вход по рабочему email
type LoginRequest struct {
	WorkEmail string `json:"workEmail" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
}

// VerifyEmailRequest - 6-значный код из письма
type VerifyEmailRequest struct {
	VerificationCode string `json:"verificationCode" validate:"required,len=6,numeric"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ChangePasswordRequest - смена пароля в рамках сессии
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

// ResetPasswordRequest - сброс пароля по ссылке из письма (токен в пути)
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

type ChildInput struct {
	ChildrenName string `json:"childrenName" validate:"omitempty,max=100"`
	DOB          *Date  `json:"dob"`
	Gender       string `json:"gender" validate:"omitempty,max=20"`
	Relationship string `json:"relationship" validate:"omitempty,max=50"`
}
