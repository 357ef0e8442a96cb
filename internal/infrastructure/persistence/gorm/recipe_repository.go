// Package gorm provides GORM-based repository implementations
package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealsmith/v2/internal/domain/recipe"
	"github.com/mealsmith/v2/internal/ports/outbound"
)

// RecipeRepository implements the candidate pool interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// FetchPool loads the candidate batch for one target: admissible
// sources only, newest first, bounded by the query limit. Member
// recipes and family-level recipes are both admissible for a member
// target; a family target sees only family-level recipes.
func (r *RecipeRepository) FetchPool(ctx context.Context, q outbound.PoolQuery) ([]*recipe.Candidate, error) {
	query := r.db.WithContext(ctx).Model(&RecipeModel{}).
		Where("user_id = ?", q.UserID).
		Where("source IN ?", recipe.PoolSources())

	if q.MemberID != nil {
		query = query.Where("member_id = ? OR member_id IS NULL", *q.MemberID)
	} else {
		query = query.Where("member_id IS NULL")
	}

	var models []RecipeModel
	result := query.
		Order("created_at DESC").
		Limit(q.Limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	candidates := make([]*recipe.Candidate, len(models))
	for i := range models {
		candidates[i] = ModelToCandidate(&models[i])
	}
	return candidates, nil
}

// FindByID finds a candidate by ID. A missing row returns nil, nil.
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Candidate, error) {
	var model RecipeModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return ModelToCandidate(&model), nil
}
