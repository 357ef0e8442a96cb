package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealsmith/v2/internal/domain/plan"
	"github.com/mealsmith/v2/internal/ports/outbound"
)

// JobRepository persists generation jobs using GORM
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *gorm.DB) outbound.JobRepository {
	return &JobRepository{db: db}
}

// Create stores a new job
func (r *JobRepository) Create(ctx context.Context, job *plan.Job) error {
	return r.db.WithContext(ctx).Create(JobToModel(job)).Error
}

// Update persists the job's current state
func (r *JobRepository) Update(ctx context.Context, job *plan.Job) error {
	result := r.db.WithContext(ctx).Save(JobToModel(job))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("job not found")
	}
	return nil
}

// FindByID loads one job. A missing row returns nil, nil.
func (r *JobRepository) FindByID(ctx context.Context, id uuid.UUID) (*plan.Job, error) {
	var model JobModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return ModelToJob(&model), nil
}

// FindRunning returns the newest running job for the exact target and
// scope, or nil when there is none.
func (r *JobRepository) FindRunning(ctx context.Context, userID uuid.UUID, memberID *uuid.UUID, scope plan.JobScope) (*plan.Job, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("scope = ?", string(scope)).
		Where("status = ?", string(plan.JobRunning))
	if memberID != nil {
		query = query.Where("member_id = ?", *memberID)
	} else {
		query = query.Where("member_id IS NULL")
	}

	var model JobModel
	result := query.Order("created_at DESC").First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return ModelToJob(&model), nil
}
