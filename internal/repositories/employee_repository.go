package repositories

import (
	"errors"
	"time"

	"hrportal_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmployeeAlreadyExists = errors.New("employee already exists")
)

// EmployeeRepository - операции с сотрудниками и их учетными данными.
// Все методы принимают *gorm.DB, чтобы работать и с пулом, и с транзакцией.
type EmployeeRepository interface {
	Create(db *gorm.DB, employee *models.Employee) error
	FindByID(db *gorm.DB, id string) (*models.Employee, error)
	FindByWorkEmail(db *gorm.DB, email string) (*models.Employee, error)
	// ExistsByIdentity проверяет занятость employeeCode / workEmail / personalEmail.
	// excludeID исключает самого сотрудника при обновлении профиля.
	ExistsByIdentity(db *gorm.DB, employeeCode, workEmail, personalEmail, excludeID string) (bool, error)
	List(db *gorm.DB, limit, offset int) ([]models.Employee, int64, error)
	UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error
	UpdateLastLogin(db *gorm.DB, id string, at time.Time) error

	// Верификация email
	VerificationTokenExists(db *gorm.DB, code string) (bool, error)
	FindByVerificationToken(db *gorm.DB, code string, now time.Time) (*models.Employee, error)
	ConsumeVerificationToken(db *gorm.DB, id, code string, now time.Time) (bool, error)

	// Сброс пароля
	SetResetToken(db *gorm.DB, id, tokenHash string, expiresAt time.Time) error
	FindByResetToken(db *gorm.DB, tokenHash string, now time.Time) (*models.Employee, error)
	ConsumeResetToken(db *gorm.DB, id, tokenHash, passwordHash string, now time.Time) (bool, error)
	UpdatePassword(db *gorm.DB, id, passwordHash string) error

	// ClearExpiredTokens обнуляет просроченные коды верификации и токены сброса
	ClearExpiredTokens(db *gorm.DB, now time.Time) (int64, error)
}

type employeeRepository struct{}

func NewEmployeeRepository() EmployeeRepository {
	return &employeeRepository{}
}

func (r *employeeRepository) Create(db *gorm.DB, employee *models.Employee) error {
	if err := db.Create(employee).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmployeeAlreadyExists
		}
		return err
	}
	return nil
}

func (r *employeeRepository) FindByID(db *gorm.DB, id string) (*models.Employee, error) {
	var employee models.Employee
	if err := db.First(&employee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindByWorkEmail(db *gorm.DB, email string) (*models.Employee, error) {
	var employee models.Employee
	if err := db.First(&employee, "work_email = ?", models.NormalizeEmail(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) ExistsByIdentity(db *gorm.DB, employeeCode, workEmail, personalEmail, excludeID string) (bool, error) {
	var conds []string
	var args []interface{}
	if employeeCode != "" {
		conds = append(conds, "employee_code = ?")
		args = append(args, employeeCode)
	}
	// email может совпасть с любым из двух полей другого сотрудника
	for _, email := range []string{workEmail, personalEmail} {
		if email == "" {
			continue
		}
		email = models.NormalizeEmail(email)
		conds = append(conds, "work_email = ?", "personal_email = ?")
		args = append(args, email, email)
	}
	if len(conds) == 0 {
		return false, nil
	}

	query := db.Model(&models.Employee{}).Where(joinOr(conds), args...)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *employeeRepository) List(db *gorm.DB, limit, offset int) ([]models.Employee, int64, error) {
	var total int64
	if err := db.Model(&models.Employee{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []models.Employee
	err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

func (r *employeeRepository) UpdateFields(db *gorm.DB, id string, fields map[string]interface{}) error {
	result := db.Model(&models.Employee{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrEmployeeAlreadyExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) UpdateLastLogin(db *gorm.DB, id string, at time.Time) error {
	return r.UpdateFields(db, id, map[string]interface{}{"last_login": at})
}

func (r *employeeRepository) VerificationTokenExists(db *gorm.DB, code string) (bool, error) {
	var count int64
	err := db.Model(&models.Employee{}).Where("verification_token = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *employeeRepository) FindByVerificationToken(db *gorm.DB, code string, now time.Time) (*models.Employee, error) {
	var employee models.Employee
	err := db.Where("verification_token = ? AND verification_token_expires_at > ?", code, now).
		First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// ConsumeVerificationToken - условный UPDATE: из двух одновременных запросов с одним кодом
// успешным будет только один.
func (r *employeeRepository) ConsumeVerificationToken(db *gorm.DB, id, code string, now time.Time) (bool, error) {
	result := db.Model(&models.Employee{}).
		Where("id = ? AND verification_token = ? AND verification_token_expires_at > ?", id, code, now).
		Updates(map[string]interface{}{
			"is_verified":                   true,
			"verification_token":            nil,
			"verification_token_expires_at": nil,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *employeeRepository) SetResetToken(db *gorm.DB, id, tokenHash string, expiresAt time.Time) error {
	return r.UpdateFields(db, id, map[string]interface{}{
		"reset_password_token":            tokenHash,
		"reset_password_token_expires_at": expiresAt,
	})
}

func (r *employeeRepository) FindByResetToken(db *gorm.DB, tokenHash string, now time.Time) (*models.Employee, error) {
	var employee models.Employee
	err := db.Where("reset_password_token = ? AND reset_password_token_expires_at > ?", tokenHash, now).
		First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// ConsumeResetToken меняет пароль и гасит токен одним UPDATE, токен одноразовый.
func (r *employeeRepository) ConsumeResetToken(db *gorm.DB, id, tokenHash, passwordHash string, now time.Time) (bool, error) {
	result := db.Model(&models.Employee{}).
		Where("id = ? AND reset_password_token = ? AND reset_password_token_expires_at > ?", id, tokenHash, now).
		Updates(map[string]interface{}{
			"password_hash":                   passwordHash,
			"reset_password_token":            nil,
			"reset_password_token_expires_at": nil,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// UpdatePassword также гасит незавершенный сброс пароля
func (r *employeeRepository) UpdatePassword(db *gorm.DB, id, passwordHash string) error {
	return r.UpdateFields(db, id, map[string]interface{}{
		"password_hash":                   passwordHash,
		"reset_password_token":            nil,
		"reset_password_token_expires_at": nil,
	})
}

func (r *employeeRepository) ClearExpiredTokens(db *gorm.DB, now time.Time) (int64, error) {
	verification := db.Model(&models.Employee{}).
		Where("verification_token IS NOT NULL AND verification_token_expires_at <= ?", now).
		Updates(map[string]interface{}{
			"verification_token":            nil,
			"verification_token_expires_at": nil,
		})
	if verification.Error != nil {
		return 0, verification.Error
	}

	reset := db.Model(&models.Employee{}).
		Where("reset_password_token IS NOT NULL AND reset_password_token_expires_at <= ?", now).
		Updates(map[string]interface{}{
			"reset_password_token":            nil,
			"reset_password_token_expires_at": nil,
		})
	if reset.Error != nil {
		return verification.RowsAffected, reset.Error
	}
	return verification.RowsAffected + reset.RowsAffected, nil
}

func joinOr(conds []string) string {
	out := "(" + conds[0]
	for _, c := range conds[1:] {
		out += " OR " + c
	}
	return out + ")"
}
