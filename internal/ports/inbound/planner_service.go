// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the use-case interfaces exposed to the HTTP layer.
package inbound

import (
	"context"

	"github.com/google/uuid"

	"github.com/mealsmith/v2/internal/domain/member"
	"github.com/mealsmith/v2/internal/domain/plan"
)

// StartCommand asks for a running job for the target and window
type StartCommand struct {
	UserID   uuid.UUID
	MemberID *uuid.UUID // nil means family target
	Scope    plan.JobScope
	DayKeys  []string
}

// StartResult reports the (possibly pre-existing) running job
type StartResult struct {
	JobID    uuid.UUID
	Status   plan.JobStatus
	Existing bool
}

// RunCommand executes the day/slot assignment loop for a job
type RunCommand struct {
	UserID     uuid.UUID
	JobID      uuid.UUID
	MemberID   *uuid.UUID
	MemberData *member.Constraints // caller-supplied constraints override storage
	DayKeys    []string
}

// RunResult summarizes one run over the requested window
type RunResult struct {
	JobID            uuid.UUID
	Status           plan.JobStatus
	TotalSlots       int
	FilledSlotsCount int
	EmptySlotsCount  int
	FilledDaysCount  int
	Partial          bool
}

// UpgradeCommand runs the identical pipeline without a job record:
// existing filled slots stay, empty slots are filled synchronously.
type UpgradeCommand struct {
	UserID     uuid.UUID
	MemberID   *uuid.UUID
	MemberData *member.Constraints
	DayKeys    []string
}

// UpgradeResult counts replaced versus unchanged slots
type UpgradeResult struct {
	ReplacedCount  int
	UnchangedCount int
	Partial        bool
}

// ReplaceSlotCommand replaces exactly one slot
type ReplaceSlotCommand struct {
	UserID           uuid.UUID
	MemberID         *uuid.UUID
	MemberData       *member.Constraints
	DayKey           string
	MealType         plan.MealType
	ExcludeRecipeIDs []uuid.UUID
	ExcludeTitleKeys []string
}

// Replacement outcome reasons
const (
	ReasonPool          = "pool"
	ReasonPoolExhausted = "pool_exhausted"
)

// ReplaceSlotResult is the tagged outcome of a replacement
type ReplaceSlotResult struct {
	PickedSource string
	NewRecipeID  *uuid.UUID
	Title        string
	Reason       string
}

// CancelCommand cancels a running job owned by the caller
type CancelCommand struct {
	UserID uuid.UUID
	JobID  uuid.UUID
}

// CancelResult reports the job state after cancellation
type CancelResult struct {
	JobID  uuid.UUID
	Status plan.JobStatus
}

// PlannerService is the meal-plan assignment engine use-case interface
type PlannerService interface {
	Start(ctx context.Context, cmd StartCommand) (*StartResult, error)
	Run(ctx context.Context, cmd RunCommand) (*RunResult, error)
	Upgrade(ctx context.Context, cmd UpgradeCommand) (*UpgradeResult, error)
	ReplaceSlot(ctx context.Context, cmd ReplaceSlotCommand) (*ReplaceSlotResult, error)
	Cancel(ctx context.Context, cmd CancelCommand) (*CancelResult, error)
}
