package repositories

import (
	"errors"

	"hrportal_backend/internal/models"

	"gorm.io/gorm"
)

var ErrLeavePolicyNotFound = errors.New("leave policy not found")

type LeavePolicyRepository interface {
	Create(db *gorm.DB, policy *models.LeavePolicy) error
	// FindLatest возвращает последнюю созданную ревизию политики
	FindLatest(db *gorm.DB) (*models.LeavePolicy, error)
	Count(db *gorm.DB) (int64, error)
}

type leavePolicyRepository struct{}

func NewLeavePolicyRepository() LeavePolicyRepository {
	return &leavePolicyRepository{}
}

func (r *leavePolicyRepository) Create(db *gorm.DB, policy *models.LeavePolicy) error {
	return db.Create(policy).Error
}

func (r *leavePolicyRepository) FindLatest(db *gorm.DB) (*models.LeavePolicy, error) {
	var policy models.LeavePolicy
	err := db.Order("created_at DESC").Order("id DESC").First(&policy).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeavePolicyNotFound
		}
		return nil, err
	}
	return &policy, nil
}

func (r *leavePolicyRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.LeavePolicy{}).Count(&count).Error
	return count, err
}
