// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"

	"github.com/google/uuid"

	"github.com/mealsmith/v2/internal/domain/member"
	"github.com/mealsmith/v2/internal/domain/plan"
	"github.com/mealsmith/v2/internal/domain/recipe"
)

// PoolQuery bounds one candidate pool fetch
type PoolQuery struct {
	UserID   uuid.UUID
	MemberID *uuid.UUID // nil restricts to family-level recipes
	Limit    int
}

// RecipeRepository is the read-only candidate pool boundary.
// Recipes are fetched in bulk, newest first, restricted to admissible
// sources; the engine never writes them.
type RecipeRepository interface {
	FetchPool(ctx context.Context, q PoolQuery) ([]*recipe.Candidate, error)
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Candidate, error)
}

// PlanRepository is the per-day plan document store. Slot writes merge
// into the existing day, never overwriting unrelated slots.
type PlanRepository interface {
	GetDay(ctx context.Context, userID uuid.UUID, memberID *uuid.UUID, dayKey string) (*plan.Day, error)
	GetDays(ctx context.Context, userID uuid.UUID, memberID *uuid.UUID, dayKeys []string) ([]*plan.Day, error)
	SaveSlot(ctx context.Context, userID uuid.UUID, memberID *uuid.UUID, dayKey string, mealType plan.MealType, slot plan.SlotValue) error
}

// JobRepository persists generation jobs
type JobRepository interface {
	Create(ctx context.Context, job *plan.Job) error
	Update(ctx context.Context, job *plan.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*plan.Job, error)
	FindRunning(ctx context.Context, userID uuid.UUID, memberID *uuid.UUID, scope plan.JobScope) (*plan.Job, error)
}

// MemberRepository resolves household members
type MemberRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*member.Member, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]member.Member, error)
}

// DailyUsage reports quota consumption for one user and day
type DailyUsage struct {
	Limit     int
	Used      int
	Unlimited bool
}

// Remaining returns how many fills are left today
func (u DailyUsage) Remaining() int {
	if u.Unlimited {
		return int(^uint(0) >> 1)
	}
	if u.Used >= u.Limit {
		return 0
	}
	return u.Limit - u.Used
}

// UsageService is the entitlement boundary: whether the free-tier
// daily fill quota still has room, checked before any filtering.
type UsageService interface {
	DailyUsage(ctx context.Context, userID uuid.UUID, dayKey string) (DailyUsage, error)
	RecordFills(ctx context.Context, userID uuid.UUID, dayKey string, count int) error
}

// CacheRepository is the injected lookup cache for generated content.
// The default wiring always misses; it exists so a future cache is an
// explicit dependency rather than a module-level singleton.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}
