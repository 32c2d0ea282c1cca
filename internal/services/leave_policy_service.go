package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"hrportal_backend/internal/logger"
	"hrportal_backend/internal/models"
	"hrportal_backend/internal/repositories"
	"hrportal_backend/internal/services/dto"
	"hrportal_backend/pkg/apperrors"
)

// LeavePolicyService - политика отпусков компании.
// Каждое изменение добавляет новую ревизию; балансы уже созданных сотрудников не меняются.
type LeavePolicyService interface {
	// LatestSnapshot - категории отпусков последней политики, nil если политики нет
	LatestSnapshot(ctx context.Context, db *gorm.DB) (*models.LeaveBalance, error)
	Latest(ctx context.Context, db *gorm.DB) (*models.LeavePolicy, error)
	Create(ctx context.Context, db *gorm.DB, req *dto.LeavePolicyRequest) (*models.LeavePolicy, error)
	Revise(ctx context.Context, db *gorm.DB, req *dto.LeavePolicyRequest) (*models.LeavePolicy, error)
	// EnsureDefault создает политику, если таблица пуста (сидирование при старте)
	EnsureDefault(ctx context.Context, db *gorm.DB, req *dto.LeavePolicyRequest) (bool, error)
}

type LeavePolicyServiceImpl struct {
	policyRepo repositories.LeavePolicyRepository
	now        func() time.Time
}

func NewLeavePolicyService(policyRepo repositories.LeavePolicyRepository) LeavePolicyService {
	return &LeavePolicyServiceImpl{
		policyRepo: policyRepo,
		now:        utcNow,
	}
}

func (s *LeavePolicyServiceImpl) LatestSnapshot(ctx context.Context, db *gorm.DB) (*models.LeaveBalance, error) {
	policy, err := s.policyRepo.FindLatest(db.WithContext(ctx))
	if err != nil {
		if errors.Is(err, repositories.ErrLeavePolicyNotFound) {
			return nil, nil
		}
		return nil, apperrors.InternalError(err)
	}
	snapshot := policy.Snapshot()
	return &snapshot, nil
}

func (s *LeavePolicyServiceImpl) Latest(ctx context.Context, db *gorm.DB) (*models.LeavePolicy, error) {
	policy, err := s.policyRepo.FindLatest(db.WithContext(ctx))
	if err != nil {
		if errors.Is(err, repositories.ErrLeavePolicyNotFound) {
			return nil, apperrors.ErrLeavePolicyNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return policy, nil
}

func (s *LeavePolicyServiceImpl) Create(ctx context.Context, db *gorm.DB, req *dto.LeavePolicyRequest) (*models.LeavePolicy, error) {
	policy := models.DefaultLeavePolicy(s.now())
	applyLeavePolicyRequest(&policy, req)

	if err := s.policyRepo.Create(db.WithContext(ctx), &policy); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "leave policy created", "policy_id", policy.ID, "year", policy.Year)
	return &policy, nil
}

func (s *LeavePolicyServiceImpl) Revise(ctx context.Context, db *gorm.DB, req *dto.LeavePolicyRequest) (*models.LeavePolicy, error) {
	latest, err := s.Latest(ctx, db)
	if err != nil {
		return nil, err
	}

	revision := *latest
	revision.ID = 0
	revision.CreatedAt = time.Time{}
	revision.UpdatedAt = time.Time{}
	applyLeavePolicyRequest(&revision, req)

	if err := s.policyRepo.Create(db.WithContext(ctx), &revision); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "leave policy revised", "previous_id", latest.ID, "policy_id", revision.ID)
	return &revision, nil
}

func (s *LeavePolicyServiceImpl) EnsureDefault(ctx context.Context, db *gorm.DB, req *dto.LeavePolicyRequest) (bool, error) {
	count, err := s.policyRepo.Count(db.WithContext(ctx))
	if err != nil {
		return false, apperrors.InternalError(err)
	}
	if count > 0 {
		return false, nil
	}
	if req == nil {
		req = &dto.LeavePolicyRequest{}
	}
	if _, err := s.Create(ctx, db, req); err != nil {
		return false, err
	}
	return true, nil
}

// applyLeavePolicyRequest - только явно переданные поля; compOffs всегда 0
func applyLeavePolicyRequest(p *models.LeavePolicy, req *dto.LeavePolicyRequest) {
	if req != nil {
		setInt(&p.Casual, req.Casual)
		setInt(&p.Sick, req.Sick)
		setInt(&p.Earned, req.Earned)
		setInt(&p.Bereavement, req.Bereavement)
		setInt(&p.ExamLeave, req.ExamLeave)
		setInt(&p.MarriageLeave, req.MarriageLeave)
		setInt(&p.UnpaidLeave, req.UnpaidLeave)
		setInt(&p.MaxCarryForward, req.MaxCarryForward)
		setInt(&p.Year, req.Year)
		if req.CarryForward != nil {
			p.CarryForward = *req.CarryForward
		}
		if req.EncashmentAllowed != nil {
			p.EncashmentAllowed = *req.EncashmentAllowed
		}
	}
	p.CompOffs = 0
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}
