package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"hrportal_backend/internal/logger"
	"hrportal_backend/internal/models"
	"hrportal_backend/internal/repositories"
	"hrportal_backend/internal/services/dto"
	"hrportal_backend/internal/storage"
	"hrportal_backend/internal/validator"
	"hrportal_backend/pkg/apperrors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type EmployeeService interface {
	UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*models.Employee, error)
	List(ctx context.Context, db *gorm.DB, page, pageSize int) ([]models.Employee, int64, error)
	GetByID(ctx context.Context, db *gorm.DB, id string) (*models.Employee, error)
}

type EmployeeServiceImpl struct {
	employeeRepo repositories.EmployeeRepository
	uploader     *storage.Uploader
	phoneRegion  string
}

func NewEmployeeService(employeeRepo repositories.EmployeeRepository, uploader *storage.Uploader, phoneRegion string) EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		uploader:     uploader,
		phoneRegion:  phoneRegion,
	}
}

// UpdateProfile - частичное обновление разрешенных полей.
// Пароль, токены, флаги админа, баланс отпусков и табельный номер здесь не меняются.
func (s *EmployeeServiceImpl) UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*models.Employee, error) {
	db = db.WithContext(ctx)

	if _, err := s.employeeRepo.FindByID(db, userID); err != nil {
		return nil, handleEmployeeError(err)
	}

	fields := map[string]interface{}{}
	setText := func(column string, value *string) {
		if value != nil {
			fields[column] = sanitizeText(*value)
		}
	}
	setRequiredText := func(column, field string, value *string) error {
		if value == nil {
			return nil
		}
		v := sanitizeText(*value)
		if v == "" {
			return apperrors.ValidationError(map[string]string{field: "This field is required"})
		}
		fields[column] = v
		return nil
	}

	for _, f := range []struct {
		column, field string
		value         *string
	}{
		{"first_name", "firstName", req.FirstName},
		{"last_name", "lastName", req.LastName},
		{"designation", "designation", req.Designation},
	} {
		if err := setRequiredText(f.column, f.field, f.value); err != nil {
			return nil, err
		}
	}
	setText("middle_name", req.MiddleName)
	setText("address", req.Address)
	setText("city", req.City)
	setText("country", req.Country)
	setText("department", req.Department)
	setText("work_location", req.WorkLocation)

	var workEmail, personalEmail string
	if req.WorkEmail != nil {
		workEmail = models.NormalizeEmail(*req.WorkEmail)
		fields["work_email"] = workEmail
	}
	if req.PersonalEmail != nil {
		personalEmail = models.NormalizeEmail(*req.PersonalEmail)
		fields["personal_email"] = personalEmail
	}
	if workEmail != "" || personalEmail != "" {
		taken, err := s.employeeRepo.ExistsByIdentity(db, "", workEmail, personalEmail, userID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if taken {
			return nil, apperrors.ErrEmployeeAlreadyExists
		}
	}

	if req.ContactNumber != nil {
		fields["contact_number"] = validator.NormalizePhone(*req.ContactNumber, s.phoneRegion)
	}
	if req.WorkPhone != nil {
		fields["work_phone"] = validator.NormalizePhone(*req.WorkPhone, s.phoneRegion)
	}
	if req.EmploymentType != nil {
		fields["employment_type"] = *req.EmploymentType
	}
	if req.ReportingManagerID != nil {
		if *req.ReportingManagerID == "" {
			fields["reporting_manager_id"] = nil
		} else {
			fields["reporting_manager_id"] = *req.ReportingManagerID
		}
	}
	if req.BloodGroup != nil {
		fields["blood_group"] = strings.ToUpper(*req.BloodGroup)
	}
	if req.MaritalStatus != nil {
		fields["marital_status"] = *req.MaritalStatus
	}
	if req.NoticePeriod != nil {
		fields["notice_period"] = *req.NoticePeriod
	}

	uploads := newUploadBatch(s.uploader)
	if req.ProfilePicture != nil && *req.ProfilePicture != "" {
		url, err := uploads.put(ctx, "profilePicture", FolderProfilePictures, *req.ProfilePicture)
		if err != nil {
			return nil, err
		}
		fields["profile_picture"] = url
	}

	if len(fields) > 0 {
		if err := s.employeeRepo.UpdateFields(db, userID, fields); err != nil {
			uploads.rollback(ctx)
			return nil, handleEmployeeError(err)
		}
		logger.CtxInfo(ctx, "employee profile updated", "employee_id", userID, "fields", len(fields))
	}

	employee, err := s.employeeRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleEmployeeError(err)
	}
	return employee, nil
}

// List - сотрудники от новых к старым
func (s *EmployeeServiceImpl) List(ctx context.Context, db *gorm.DB, page, pageSize int) ([]models.Employee, int64, error) {
	page, pageSize = NormalizePage(page, pageSize)

	employees, total, err := s.employeeRepo.List(db.WithContext(ctx), pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return employees, total, nil
}

func (s *EmployeeServiceImpl) GetByID(ctx context.Context, db *gorm.DB, id string) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(db.WithContext(ctx), id)
	if err != nil {
		return nil, handleEmployeeError(err)
	}
	return employee, nil
}

// NormalizePage - номер страницы с 1, размер по умолчанию 20, не больше 100
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
