package planner

import (
	"context"

	"go.uber.org/zap"

	"github.com/mealsmith/v2/internal/domain/plan"
	"github.com/mealsmith/v2/internal/domain/recipe"
	"github.com/mealsmith/v2/internal/ports/inbound"
	"github.com/mealsmith/v2/internal/ports/outbound"
	"github.com/mealsmith/v2/pkg/errors"
)

// ReplaceSlot replaces exactly one slot: a one-week history exclusion
// set, the caller's exclusion lists, the current occupant, and the
// same filter pipeline restricted to the slot. Pool exhaustion is a
// tagged outcome, not an error; the caller decides whether to fall
// back to a non-pool generation path.
func (s *Service) ReplaceSlot(ctx context.Context, cmd inbound.ReplaceSlotCommand) (*inbound.ReplaceSlotResult, error) {
	start, err := plan.ParseDayKey(cmd.DayKey)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if !cmd.MealType.IsValid() {
		return nil, errors.NewValidationError("unknown meal type")
	}
	if err := s.checkQuota(ctx, cmd.UserID); err != nil {
		return nil, err
	}

	constraints, _, err := s.resolveConstraints(ctx, cmd.UserID, cmd.MemberID, cmd.MemberData)
	if err != nil {
		return nil, err
	}
	familyMode := cmd.MemberID == nil

	pool, err := s.recipes.FetchPool(ctx, outbound.PoolQuery{
		UserID:   cmd.UserID,
		MemberID: cmd.MemberID,
		Limit:    s.cfg.ReplacePoolLimit,
	})
	if err != nil {
		return nil, errors.NewDatabaseError("fetch recipe pool", err)
	}

	hist := NewHistory()
	lookback := plan.LookbackWindow(start, s.cfg.HistoryDays)
	days, err := s.plans.GetDays(ctx, cmd.UserID, cmd.MemberID, append(lookback, cmd.DayKey))
	if err != nil {
		s.logger.Warn("History lookback failed, continuing without it", zap.Error(err))
	} else {
		hist.SeedFromDays(days)
	}

	// the slot's current occupant must never come back, and neither
	// may anything the caller explicitly excluded
	if current, derr := s.plans.GetDay(ctx, cmd.UserID, cmd.MemberID, cmd.DayKey); derr == nil && current != nil {
		if slot, ok := current.Slot(cmd.MealType); ok && !slot.IsEmpty() {
			hist.AddID(slot.RecipeID)
			hist.AddTitleKey(recipe.NormalizeTitleKey(slot.Title))
		}
	}
	for _, id := range cmd.ExcludeRecipeIDs {
		hist.AddID(id)
	}
	for _, key := range cmd.ExcludeTitleKeys {
		hist.AddTitleKey(recipe.NormalizeTitleKey(key))
	}

	pipeline := NewPipeline(constraints, familyMode)
	survivors := pipeline.Filter(pool, cmd.MealType, hist)
	pick := pickCandidate(survivors, cmd.MealType, hist, false)
	if pick == nil {
		s.logger.Info("Replacement pool exhausted",
			zap.String("day_key", cmd.DayKey),
			zap.String("meal_type", string(cmd.MealType)),
		)
		return &inbound.ReplaceSlotResult{Reason: inbound.ReasonPoolExhausted}, nil
	}

	slot := plan.SlotValue{RecipeID: pick.ID, Title: pick.Title, PlanSource: plan.SourcePool}
	slot, err = slot.Normalize()
	if err != nil {
		return nil, errors.Wrap(err, "normalize replacement slot")
	}
	if err := s.plans.SaveSlot(ctx, cmd.UserID, cmd.MemberID, cmd.DayKey, cmd.MealType, slot); err != nil {
		return nil, errors.NewDatabaseError("save replacement slot", err)
	}

	s.recordFills(ctx, cmd.UserID, 1)

	pickID := pick.ID
	return &inbound.ReplaceSlotResult{
		PickedSource: string(plan.SourcePool),
		NewRecipeID:  &pickID,
		Title:        pick.Title,
		Reason:       inbound.ReasonPool,
	}, nil
}
