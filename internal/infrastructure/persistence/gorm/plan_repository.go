package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealsmith/v2/internal/domain/plan"
	"github.com/mealsmith/v2/internal/ports/outbound"
)

// PlanRepository implements the per-day plan document store using GORM
type PlanRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *gorm.DB) outbound.PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) targetScope(query *gorm.DB, userID uuid.UUID, memberID *uuid.UUID) *gorm.DB {
	query = query.Where("user_id = ?", userID)
	if memberID != nil {
		return query.Where("member_id = ?", *memberID)
	}
	return query.Where("member_id IS NULL")
}

// GetDay loads one day document. A missing row returns nil, nil.
func (r *PlanRepository) GetDay(ctx context.Context, userID uuid.UUID, memberID *uuid.UUID, dayKey string) (*plan.Day, error) {
	var model PlanDayModel

	result := r.targetScope(r.db.WithContext(ctx), userID, memberID).
		Where("day_key = ?", dayKey).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return ModelToDay(&model), nil
}

// GetDays loads the day documents present for the given keys. Missing
// days are simply absent from the result.
func (r *PlanRepository) GetDays(ctx context.Context, userID uuid.UUID, memberID *uuid.UUID, dayKeys []string) ([]*plan.Day, error) {
	if len(dayKeys) == 0 {
		return nil, nil
	}

	var models []PlanDayModel
	result := r.targetScope(r.db.WithContext(ctx), userID, memberID).
		Where("day_key IN ?", dayKeys).
		Order("day_key ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	days := make([]*plan.Day, len(models))
	for i := range models {
		days[i] = ModelToDay(&models[i])
	}
	return days, nil
}

// SaveSlot merges one slot into the day document inside a transaction:
// the row is created if absent, and slots other than the one written
// are left exactly as stored.
func (r *PlanRepository) SaveSlot(ctx context.Context, userID uuid.UUID, memberID *uuid.UUID, dayKey string, mealType plan.MealType, slot plan.SlotValue) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model PlanDayModel

		result := r.targetScope(tx, userID, memberID).
			Where("day_key = ?", dayKey).
			First(&model)
		if result.Error != nil {
			if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return result.Error
			}
			model = PlanDayModel{
				UserID:   userID,
				MemberID: memberID,
				DayKey:   dayKey,
				Meals:    MealMap{},
			}
		}

		if model.Meals == nil {
			model.Meals = MealMap{}
		}
		model.Meals[string(mealType)] = SlotToRecord(slot)

		return tx.Save(&model).Error
	})
}
