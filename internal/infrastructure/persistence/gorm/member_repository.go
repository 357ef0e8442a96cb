package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealsmith/v2/internal/domain/member"
	"github.com/mealsmith/v2/internal/ports/outbound"
)

// MemberRepository resolves household members using GORM
type MemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) outbound.MemberRepository {
	return &MemberRepository{db: db}
}

// FindByID loads one member. A missing row returns nil, nil.
func (r *MemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*member.Member, error) {
	var model MemberModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	m := ModelToMember(&model)
	return &m, nil
}

// ListByUser loads the whole household, oldest member first
func (r *MemberRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]member.Member, error) {
	var models []MemberModel

	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	members := make([]member.Member, len(models))
	for i := range models {
		members[i] = ModelToMember(&models[i])
	}
	return members, nil
}
