package models

type EmploymentType string
type MaritalStatus string
type EmployeeStatus string

const (
	EmploymentTypeFullTime EmploymentType = "Full-time"
	EmploymentTypePartTime EmploymentType = "Part-time"
	EmploymentTypeIntern   EmploymentType = "Intern"
	EmploymentTypeContract EmploymentType = "Contract"

	MaritalStatusSingle   MaritalStatus = "Single"
	MaritalStatusMarried  MaritalStatus = "Married"
	MaritalStatusDivorced MaritalStatus = "Divorced"
	MaritalStatusWidowed  MaritalStatus = "Widowed"

	EmployeeStatusActive     EmployeeStatus = "Active"
	EmployeeStatusOnNotice   EmployeeStatus = "On Notice"
	EmployeeStatusResigned   EmployeeStatus = "Resigned"
	EmployeeStatusTerminated EmployeeStatus = "Terminated"
)

// Роли сессии. Хранятся в JWT, выводятся из флагов сотрудника.
const (
	RoleEmployee   = "employee"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

func (t EmploymentType) IsValid() bool {
	switch t {
	case EmploymentTypeFullTime, EmploymentTypePartTime, EmploymentTypeIntern, EmploymentTypeContract:
		return true
	}
	return false
}

func (s MaritalStatus) IsValid() bool {
	switch s {
	case MaritalStatusSingle, MaritalStatusMarried, MaritalStatusDivorced, MaritalStatusWidowed:
		return true
	}
	return false
}

func (s EmployeeStatus) IsValid() bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusOnNotice, EmployeeStatusResigned, EmployeeStatusTerminated:
		return true
	}
	return false
}
