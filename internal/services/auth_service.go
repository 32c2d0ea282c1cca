package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hrportal_backend/internal/auth"
	"hrportal_backend/internal/logger"
	"hrportal_backend/internal/models"
	"hrportal_backend/internal/ratelimit"
	"hrportal_backend/internal/repositories"
	"hrportal_backend/internal/services/dto"
	"hrportal_backend/internal/storage"
	"hrportal_backend/internal/validator"
	"hrportal_backend/pkg/apperrors"
)

// maxCodeAttempts - сколько раз перевыпускать код верификации при совпадении
const maxCodeAttempts = 5

type AuthService interface {
	// CreateAccount создает сотрудника в состоянии "не подтвержден".
	// grantAdmin разрешает флаги admin/superAdmin (только если запрос от админа).
	CreateAccount(ctx context.Context, db *gorm.DB, req *dto.CreateEmployeeRequest, grantAdmin bool) (*models.Employee, error)
	VerifyEmail(ctx context.Context, db *gorm.DB, code string) (*models.Employee, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest, clientIP string) (*LoginResult, error)
	// ForgotPassword не сообщает, существует ли адрес
	ForgotPassword(ctx context.Context, db *gorm.DB, emailAddr, clientIP string) error
	ChangePassword(ctx context.Context, db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error
	ResetPasswordWithToken(ctx context.Context, db *gorm.DB, token string, req *dto.ResetPasswordRequest) error
	CheckAuth(ctx context.Context, db *gorm.DB, userID string) (*models.Employee, error)
}

// LoginResult - сотрудник и выпущенная сессия
type LoginResult struct {
	Employee  *models.Employee
	Token     string
	ExpiresAt time.Time
}

type AuthServiceImpl struct {
	employeeRepo  repositories.EmployeeRepository
	leavePolicies LeavePolicyService
	hasher        *auth.PasswordHasher
	tokens        *auth.TokenIssuer
	sessions      *auth.SessionIssuer
	emails        *EmailService
	uploader      *storage.Uploader
	limiter       *ratelimit.Limiter
	phoneRegion   string
	now           func() time.Time

	dummyHashOnce sync.Once
	dummyHash     string
}

func NewAuthService(
	employeeRepo repositories.EmployeeRepository,
	leavePolicies LeavePolicyService,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenIssuer,
	sessions *auth.SessionIssuer,
	emails *EmailService,
	uploader *storage.Uploader,
	limiter *ratelimit.Limiter,
	phoneRegion string,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		employeeRepo:  employeeRepo,
		leavePolicies: leavePolicies,
		hasher:        hasher,
		tokens:        tokens,
		sessions:      sessions,
		emails:        emails,
		uploader:      uploader,
		limiter:       limiter,
		phoneRegion:   phoneRegion,
		now:           utcNow,
	}
}

// WithClock подменяет часы (для тестов)
func (s *AuthServiceImpl) WithClock(now func() time.Time) *AuthServiceImpl {
	s.now = now
	return s
}

// CreateAccount - регистрация сотрудника
func (s *AuthServiceImpl) CreateAccount(ctx context.Context, db *gorm.DB, req *dto.CreateEmployeeRequest, grantAdmin bool) (*models.Employee, error) {
	db = db.WithContext(ctx)

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ValidationError(map[string]string{"password": err.Error()})
	}
	if req.DateOfJoining == nil || req.DateOfJoining.IsZero() {
		return nil, apperrors.ValidationError(map[string]string{"dateOfJoining": "This field is required"})
	}

	snapshot, err := s.leavePolicies.LatestSnapshot(ctx, db)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, apperrors.ErrLeavePolicyNotConfigured
	}

	workEmail := models.NormalizeEmail(req.WorkEmail)
	personalEmail := models.NormalizeEmail(req.PersonalEmail)
	employeeCode := strings.TrimSpace(req.EmployeeCode)

	exists, err := s.employeeRepo.ExistsByIdentity(db, employeeCode, workEmail, personalEmail, "")
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrEmployeeAlreadyExists
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	code, codeExpiresAt, err := s.issueUniqueVerificationCode(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	employee := s.buildEmployee(req, employeeCode, workEmail, personalEmail)
	employee.PasswordHash = passwordHash
	employee.VerificationToken = &code
	employee.VerificationTokenExpiresAt = &codeExpiresAt
	employee.LeaveBalance = *snapshot
	if grantAdmin {
		employee.Admin = req.Admin
		employee.SuperAdmin = req.SuperAdmin
	}

	uploads := newUploadBatch(s.uploader)
	if err := s.uploadEmployeeFiles(ctx, uploads, employee); err != nil {
		uploads.rollback(ctx)
		return nil, err
	}

	if err := s.employeeRepo.Create(db, employee); err != nil {
		uploads.rollback(ctx)
		return nil, handleEmployeeError(err)
	}

	logger.CtxInfo(ctx, "employee created", "employee_id", employee.ID, "employee_code", employee.EmployeeCode)

	s.emails.SendVerification(ctx, employee, code)

	return employee, nil
}

// VerifyEmail - подтверждение email кодом из письма
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, db *gorm.DB, code string) (*models.Employee, error) {
	db = db.WithContext(ctx)
	now := s.now()

	employee, err := s.employeeRepo.FindByVerificationToken(db, code, now)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	consumed, err := s.employeeRepo.ConsumeVerificationToken(db, employee.ID, code, now)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !consumed {
		return nil, apperrors.ErrInvalidToken
	}

	employee.IsVerified = true
	employee.VerificationToken = nil
	employee.VerificationTokenExpiresAt = nil

	logger.CtxInfo(ctx, "email verified", "employee_id", employee.ID)

	s.emails.SendWelcome(ctx, employee)

	return employee, nil
}

// Login - аутентификация по рабочему email и паролю
func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest, clientIP string) (*LoginResult, error) {
	db = db.WithContext(ctx)
	workEmail := models.NormalizeEmail(req.WorkEmail)
	limitKey := workEmail + "|" + clientIP

	if err := s.limiter.Allow(ctx, ratelimit.ScopeLogin, limitKey); err != nil {
		return nil, apperrors.ErrTooManyRequests
	}

	employee, err := s.employeeRepo.FindByWorkEmail(db, workEmail)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			// сравнение с фиктивным хешем, чтобы время ответа не выдавало наличие адреса
			s.hasher.Compare(s.getDummyHash(), req.Password)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !s.hasher.Compare(employee.PasswordHash, req.Password) {
		logger.CtxInfo(ctx, "login failed", "employee_id", employee.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.sessions.Issue(employee.ID, employee.Role())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := s.now()
	if err := s.employeeRepo.UpdateLastLogin(db, employee.ID, now); err != nil {
		return nil, handleEmployeeError(err)
	}
	employee.LastLogin = &now

	s.limiter.Reset(ctx, ratelimit.ScopeLogin, limitKey)
	logger.CtxInfo(ctx, "login succeeded", "employee_id", employee.ID)

	return &LoginResult{Employee: employee, Token: token, ExpiresAt: expiresAt}, nil
}

// ForgotPassword - выпуск токена сброса и письмо со ссылкой
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, db *gorm.DB, emailAddr, clientIP string) error {
	db = db.WithContext(ctx)
	workEmail := models.NormalizeEmail(emailAddr)

	if err := s.limiter.Allow(ctx, ratelimit.ScopeForgotPassword, workEmail+"|"+clientIP); err != nil {
		return apperrors.ErrTooManyRequests
	}

	employee, err := s.employeeRepo.FindByWorkEmail(db, workEmail)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			logger.CtxInfo(ctx, "password reset requested for unknown email")
			return nil
		}
		return apperrors.InternalError(err)
	}

	token, expiresAt, err := s.tokens.IssueResetToken()
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.employeeRepo.SetResetToken(db, employee.ID, auth.HashToken(token), expiresAt); err != nil {
		return handleEmployeeError(err)
	}

	logger.CtxInfo(ctx, "password reset requested", "employee_id", employee.ID)

	s.emails.SendPasswordReset(ctx, employee, token)
	return nil
}

// ChangePassword - смена пароля в рамках сессии, нужен старый пароль
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error {
	db = db.WithContext(ctx)

	employee, err := s.employeeRepo.FindByID(db, userID)
	if err != nil {
		return handleEmployeeError(err)
	}

	if !s.hasher.Compare(employee.PasswordHash, req.OldPassword) {
		return apperrors.ErrInvalidCredentials
	}

	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ValidationError(map[string]string{"newPassword": err.Error()})
	}

	passwordHash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.employeeRepo.UpdatePassword(db, employee.ID, passwordHash); err != nil {
		return handleEmployeeError(err)
	}

	logger.CtxInfo(ctx, "password changed", "employee_id", employee.ID)

	s.emails.SendPasswordResetSuccess(ctx, employee)
	return nil
}

// ResetPasswordWithToken - сброс пароля по ссылке из письма. Токен одноразовый.
func (s *AuthServiceImpl) ResetPasswordWithToken(ctx context.Context, db *gorm.DB, token string, req *dto.ResetPasswordRequest) error {
	db = db.WithContext(ctx)
	now := s.now()

	if strings.TrimSpace(token) == "" {
		return apperrors.ErrInvalidToken
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ValidationError(map[string]string{"newPassword": err.Error()})
	}

	digest := auth.HashToken(token)
	employee, err := s.employeeRepo.FindByResetToken(db, digest, now)
	if err != nil {
		if errors.Is(err, repositories.ErrEmployeeNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}

	passwordHash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	consumed, err := s.employeeRepo.ConsumeResetToken(db, employee.ID, digest, passwordHash, now)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !consumed {
		return apperrors.ErrInvalidToken
	}

	logger.CtxInfo(ctx, "password reset completed", "employee_id", employee.ID)

	s.emails.SendPasswordResetSuccess(ctx, employee)
	return nil
}

// CheckAuth - запись текущего пользователя сессии
func (s *AuthServiceImpl) CheckAuth(ctx context.Context, db *gorm.DB, userID string) (*models.Employee, error) {
	if userID == "" {
		return nil, apperrors.ErrNotAuthenticated
	}
	employee, err := s.employeeRepo.FindByID(db.WithContext(ctx), userID)
	if err != nil {
		return nil, handleEmployeeError(err)
	}
	return employee, nil
}

func (s *AuthServiceImpl) issueUniqueVerificationCode(db *gorm.DB) (string, time.Time, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, expiresAt, err := s.tokens.IssueVerificationToken()
		if err != nil {
			return "", time.Time{}, err
		}
		taken, err := s.employeeRepo.VerificationTokenExists(db, code)
		if err != nil {
			return "", time.Time{}, err
		}
		if !taken {
			return code, expiresAt, nil
		}
	}
	return "", time.Time{}, errors.New("could not issue a unique verification code")
}

func (s *AuthServiceImpl) getDummyHash() string {
	s.dummyHashOnce.Do(func() {
		hash, err := s.hasher.Hash("not-a-real-password-0000")
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}

func (s *AuthServiceImpl) buildEmployee(req *dto.CreateEmployeeRequest, employeeCode, workEmail, personalEmail string) *models.Employee {
	employee := &models.Employee{
		EmployeeCode:       employeeCode,
		FirstName:          sanitizeText(req.FirstName),
		MiddleName:         sanitizeText(req.MiddleName),
		LastName:           sanitizeText(req.LastName),
		PersonalEmail:      personalEmail,
		WorkEmail:          workEmail,
		ContactNumber:      validator.NormalizePhone(req.ContactNumber, s.phoneRegion),
		WorkPhone:          validator.NormalizePhone(req.WorkPhone, s.phoneRegion),
		Address:            sanitizeText(req.Address),
		City:               sanitizeText(req.City),
		Country:            sanitizeText(req.Country),
		DateOfJoining:      req.DateOfJoining.Time,
		DateOfBirth:        req.DateOfBirth.Ptr(),
		Department:         sanitizeText(req.Department),
		Designation:        sanitizeText(req.Designation),
		EmploymentType:     req.EmploymentType,
		WorkLocation:       sanitizeText(req.WorkLocation),
		ReportingManagerID: req.ReportingManagerID,

		AadharCardNumber:     strings.TrimSpace(req.AadharCardNumber),
		AadharCardImage:      req.AadharCardImage,
		PanCardNumber:        strings.ToUpper(strings.TrimSpace(req.PanCardNumber)),
		PanCardImage:         req.PanCardImage,
		PassportNumber:       strings.TrimSpace(req.PassportNumber),
		PassportExpiry:       req.PassportExpiry.Ptr(),
		DrivingLicenseNumber: strings.TrimSpace(req.DrivingLicenseNumber),

		ProfilePicture: req.ProfilePicture,
		Resume:         req.Resume,
		BloodGroup:     strings.ToUpper(req.BloodGroup),
		MaritalStatus:  req.MaritalStatus,
		NoticePeriod:   req.NoticePeriod,
		ExitDate:       req.ExitDate.Ptr(),
		Status:         req.Status,
	}

	education := make([]models.EducationalDetail, 0, len(req.EducationalDetails))
	for _, ed := range req.EducationalDetails {
		education = append(education, models.EducationalDetail{
			Qualification:     sanitizeText(ed.Qualification),
			Degree:            sanitizeText(ed.Degree),
			College:           sanitizeText(ed.College),
			PassingYear:       ed.PassingYear,
			GradeOrPercentage: sanitizeText(ed.GradeOrPercentage),
			Marksheet10:       ed.Marksheet10,
			Marksheet12:       ed.Marksheet12,
			Graduation:        ed.Graduation,
			Masters:           ed.Masters,
			Highest:           ed.Highest,
		})
	}
	employee.EducationalDetails = datatypes.NewJSONType(education)

	if req.EmploymentHistory != nil {
		employee.EmploymentHistory = datatypes.NewJSONType(*req.EmploymentHistory)
	}
	if req.SalaryAccountDetails != nil {
		employee.SalaryAccountDetails = datatypes.NewJSONType(*req.SalaryAccountDetails)
	}
	if req.DependentDetails != nil {
		employee.DependentDetails = datatypes.NewJSONType(s.buildDependents(req.DependentDetails))
	}

	return employee
}

func (s *AuthServiceImpl) buildDependents(in *dto.DependentDetailsInput) models.DependentDetails {
	out := models.DependentDetails{
		SpouseName:               sanitizeText(in.SpouseName),
		SpouseDOB:                in.SpouseDOB.Ptr(),
		EmergencyContactName:     sanitizeText(in.EmergencyContactName),
		EmergencyContactRelation: sanitizeText(in.EmergencyContactRelation),
		EmergencyContactPhone:    validator.NormalizePhone(in.EmergencyContactPhone, s.phoneRegion),
	}
	for _, c := range in.Children {
		out.Children = append(out.Children, models.Child{
			ChildrenName: sanitizeText(c.ChildrenName),
			DOB:          c.DOB.Ptr(),
			Gender:       sanitizeText(c.Gender),
			Relationship: sanitizeText(c.Relationship),
		})
	}
	return out
}

// uploadEmployeeFiles сохраняет документы, присланные как data URL
func (s *AuthServiceImpl) uploadEmployeeFiles(ctx context.Context, uploads *uploadBatch, e *models.Employee) error {
	var err error
	if e.AadharCardImage, err = uploads.put(ctx, "aadharCardImage", folderDocuments, e.AadharCardImage); err != nil {
		return err
	}
	if e.PanCardImage, err = uploads.put(ctx, "panCardImage", folderDocuments, e.PanCardImage); err != nil {
		return err
	}
	if e.ProfilePicture, err = uploads.put(ctx, "profilePicture", FolderProfilePictures, e.ProfilePicture); err != nil {
		return err
	}
	if e.Resume, err = uploads.put(ctx, "resume", folderResumes, e.Resume); err != nil {
		return err
	}
	return nil
}
