package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DefaultAddress = "Update your address"
	DefaultCity    = "Update your city"
	DefaultCountry = "Update your country"
)

// Employee - сотрудник и одновременно учетная запись для входа (логин по workEmail)
type Employee struct {
	BaseModel

	EmployeeCode  string `gorm:"uniqueIndex;size:64;not null" json:"employeeCode"`
	FirstName     string `gorm:"size:100;not null" json:"firstName"`
	MiddleName    string `gorm:"size:100" json:"middleName,omitempty"`
	LastName      string `gorm:"size:100;not null" json:"lastName"`
	PersonalEmail string `gorm:"uniqueIndex;size:255;not null" json:"personalEmail"`
	WorkEmail     string `gorm:"uniqueIndex;size:255;not null" json:"workEmail"`
	ContactNumber string `gorm:"size:32;not null" json:"contactNumber"`
	WorkPhone     string `gorm:"size:32" json:"workPhone,omitempty"`
	Address       string `json:"address"`
	City          string `gorm:"size:100" json:"city"`
	Country       string `gorm:"size:100" json:"country"`

	DateOfJoining      time.Time      `gorm:"not null" json:"dateOfJoining"`
	DateOfBirth        *time.Time     `json:"dateOfBirth,omitempty"`
	Department         string         `gorm:"size:100" json:"department"`
	Designation        string         `gorm:"size:100;not null" json:"designation"`
	EmploymentType     EmploymentType `gorm:"size:20;not null" json:"employmentType"`
	WorkLocation       string         `gorm:"size:100" json:"workLocation"`
	ReportingManagerID *string        `gorm:"size:36;index" json:"reportingManagerId,omitempty"`

	// Документы
	AadharCardNumber     string     `gorm:"size:20" json:"aadharCardNumber"`
	AadharCardImage      string     `json:"aadharCardImage"`
	PanCardNumber        string     `gorm:"size:20" json:"panCardNumber"`
	PanCardImage         string     `json:"panCardImage"`
	PassportNumber       string     `gorm:"size:20" json:"passportNumber,omitempty"`
	PassportExpiry       *time.Time `json:"passportExpiry,omitempty"`
	DrivingLicenseNumber string     `gorm:"size:30" json:"drivingLicenseNumber,omitempty"`

	ProfilePicture string         `json:"profilePicture,omitempty"`
	Resume         string         `json:"resume,omitempty"`
	SuperAdmin     bool           `json:"superAdmin"`
	Admin          bool           `json:"admin"`
	BloodGroup     string         `gorm:"size:5" json:"bloodGroup,omitempty"`
	MaritalStatus  MaritalStatus  `gorm:"size:20" json:"maritalStatus,omitempty"`
	NoticePeriod   int            `json:"noticePeriod"`
	ExitDate       *time.Time     `json:"exitDate,omitempty"`
	Status         EmployeeStatus `gorm:"size:20;not null" json:"status"`

	// Вложенные документы хранятся JSON-колонками
	EducationalDetails   datatypes.JSONType[[]EducationalDetail]  `json:"educationalDetails"`
	EmploymentHistory    datatypes.JSONType[EmploymentHistory]    `json:"employmentHistory"`
	SalaryAccountDetails datatypes.JSONType[SalaryAccountDetails] `json:"salaryAccountDetails"`
	DependentDetails     datatypes.JSONType[DependentDetails]     `json:"dependentDetails"`

	// Снимок политики отпусков на момент создания
	LeaveBalance LeaveBalance `gorm:"embedded;embeddedPrefix:leave_" json:"leaveBalance"`

	// Учетные данные. Никогда не сериализуются.
	PasswordHash                string     `gorm:"not null" json:"-"`
	IsVerified                  bool       `gorm:"not null" json:"isVerified"`
	VerificationToken           *string    `gorm:"size:16;index" json:"-"`
	VerificationTokenExpiresAt  *time.Time `json:"-"`
	ResetPasswordToken          *string    `gorm:"size:64;index" json:"-"`
	ResetPasswordTokenExpiresAt *time.Time `json:"-"`
	LastLogin                   *time.Time `json:"lastLogin,omitempty"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if err := e.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	e.WorkEmail = NormalizeEmail(e.WorkEmail)
	e.PersonalEmail = NormalizeEmail(e.PersonalEmail)
	if e.Address == "" {
		e.Address = DefaultAddress
	}
	if e.City == "" {
		e.City = DefaultCity
	}
	if e.Country == "" {
		e.Country = DefaultCountry
	}
	if e.Status == "" {
		e.Status = EmployeeStatusActive
	}
	return nil
}

// Role - роль для сессии
func (e *Employee) Role() string {
	switch {
	case e.SuperAdmin:
		return RoleSuperAdmin
	case e.Admin:
		return RoleAdmin
	default:
		return RoleEmployee
	}
}

// FullName - имя для писем
func (e *Employee) FullName() string {
	parts := []string{e.FirstName, e.MiddleName, e.LastName}
	var nonEmpty []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// NormalizeEmail - email сравниваются без учета регистра и пробелов по краям
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type EducationalDetail struct {
	Qualification     string `json:"qualification,omitempty"`
	Degree            string `json:"degree,omitempty"`
	College           string `json:"college,omitempty"`
	PassingYear       int    `json:"passingYear,omitempty"`
	GradeOrPercentage string `json:"gradeOrPercentage,omitempty"`
	Marksheet10       string `json:"marksheet10,omitempty"`
	Marksheet12       string `json:"marksheet12,omitempty"`
	Graduation        string `json:"graduation,omitempty"`
	Masters           string `json:"masters,omitempty"`
	Highest           string `json:"highest,omitempty"`
}

type PastEmployment struct {
	OrganizationName string     `json:"organizationName,omitempty"`
	Designation      string     `json:"designation,omitempty"`
	FromDate         *time.Time `json:"fromDate,omitempty"`
	ToDate           *time.Time `json:"toDate,omitempty"`
	Location         string     `json:"location,omitempty"`
	Skills           []string   `json:"skills,omitempty"`
}

type EmploymentHistory struct {
	TotalExperience string           `json:"totalExperience,omitempty"`
	PastEmployments []PastEmployment `json:"pastEmployments,omitempty"`
}

type SalaryStructure struct {
	Basic      float64 `json:"basic"`
	HRA        float64 `json:"hra"`
	Allowances float64 `json:"allowances"`
	Deductions float64 `json:"deductions"`
}

type SalaryAccountDetails struct {
	BankName        string           `json:"bankName,omitempty"`
	AccountNumber   string           `json:"accountNumber,omitempty"`
	IFSCCode        string           `json:"ifscCode,omitempty"`
	BranchName      string           `json:"branchName,omitempty"`
	UAN             string           `json:"uan,omitempty"`
	PFAccountNumber string           `json:"pfAccountNumber,omitempty"`
	ESICNumber      string           `json:"esicNumber,omitempty"`
	SalaryStructure *SalaryStructure `json:"salaryStructure,omitempty"`
	TaxDeclaration  string           `json:"taxDeclaration,omitempty"`
}

type Child struct {
	ChildrenName string     `json:"childrenName,omitempty"`
	DOB          *time.Time `json:"dob,omitempty"`
	Gender       string     `json:"gender,omitempty"`
	Relationship string     `json:"relationship,omitempty"`
}

type DependentDetails struct {
	SpouseName               string     `json:"spouseName,omitempty"`
	SpouseDOB                *time.Time `json:"spouseDob,omitempty"`
	Children                 []Child    `json:"children,omitempty"`
	EmergencyContactName     string     `json:"emergencyContactName,omitempty"`
	EmergencyContactRelation string     `json:"emergencyContactRelation,omitempty"`
	EmergencyContactPhone    string     `json:"emergencyContactPhone,omitempty"`
}
