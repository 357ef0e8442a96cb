// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mealsmith/v2/internal/domain/member"
	"github.com/mealsmith/v2/internal/domain/plan"
	"github.com/mealsmith/v2/internal/infrastructure/http/middleware"
	"github.com/mealsmith/v2/internal/ports/inbound"
	"github.com/mealsmith/v2/pkg/errors"
)

// DefaultWindowDays is the rolling window length used when the caller
// asks for a week without naming the days.
const DefaultWindowDays = 7

// PlanAPIHandlers handles the plan generation endpoint
type PlanAPIHandlers struct {
	planner  inbound.PlannerService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewPlanAPIHandlers creates a new plan API handlers instance
func NewPlanAPIHandlers(planner inbound.PlannerService, logger *zap.Logger) *PlanAPIHandlers {
	return &PlanAPIHandlers{
		planner:  planner,
		validate: validator.New(),
		logger:   logger,
	}
}

// planRequest is the single dispatch payload for POST /api/v1/plan
type planRequest struct {
	Action           string             `json:"action" validate:"required,oneof=start run replace_slot cancel"`
	Mode             string             `json:"mode" validate:"omitempty,oneof=default upgrade"`
	Type             string             `json:"type" validate:"omitempty,oneof=day week"`
	JobID            string             `json:"job_id" validate:"omitempty,uuid"`
	MemberID         string             `json:"member_id" validate:"omitempty,uuid"`
	MemberData       *memberDataPayload `json:"member_data"`
	DayKey           string             `json:"day_key"`
	DayKeys          []string           `json:"day_keys"`
	StartKey         string             `json:"start_key"`
	MealType         string             `json:"meal_type"`
	ExcludeRecipeIDs []string           `json:"exclude_recipe_ids" validate:"omitempty,dive,uuid"`
	ExcludeTitleKeys []string           `json:"exclude_title_keys"`
}

// memberDataPayload lets callers supply constraints inline instead of
// resolving the member record from storage
type memberDataPayload struct {
	AgeMonths   *int     `json:"age_months" validate:"omitempty,min=0,max=1440"`
	Type        string   `json:"type" validate:"omitempty,oneof=adult child family"`
	Allergies   []string `json:"allergies"`
	Dislikes    []string `json:"dislikes"`
	Preferences []string `json:"preferences"`
	Likes       []string `json:"likes"`
}

func (p *memberDataPayload) toConstraints() *member.Constraints {
	if p == nil {
		return nil
	}
	return &member.Constraints{
		AgeMonths:   p.AgeMonths,
		Type:        member.Type(p.Type),
		Allergies:   p.Allergies,
		Dislikes:    p.Dislikes,
		Preferences: p.Preferences,
		Likes:       p.Likes,
	}
}

// HandlePlan handles POST /api/v1/plan
func (h *PlanAPIHandlers) HandlePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, r, errors.NewUnauthorizedError(""))
		return
	}

	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, errors.NewValidationError("request body is not valid JSON"))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.writeError(w, r, errors.NewValidationError(err.Error()))
		return
	}

	switch req.Action {
	case "start":
		h.handleStart(w, r, userID, req)
	case "run":
		if req.Mode == "upgrade" {
			h.handleUpgrade(w, r, userID, req)
			return
		}
		h.handleRun(w, r, userID, req)
	case "replace_slot":
		h.handleReplaceSlot(w, r, userID, req)
	case "cancel":
		h.handleCancel(w, r, userID, req)
	default:
		h.writeError(w, r, errors.NewInvalidActionError(req.Action))
	}
}

func (h *PlanAPIHandlers) handleStart(w http.ResponseWriter, r *http.Request, userID uuid.UUID, req planRequest) {
	memberID, err := parseOptionalUUID(req.MemberID)
	if err != nil {
		h.writeError(w, r, errors.NewValidationError("member_id is not a valid uuid"))
		return
	}
	dayKeys := resolveWindow(req)

	result, err := h.planner.Start(r.Context(), inbound.StartCommand{
		UserID:   userID,
		MemberID: memberID,
		Scope:    resolveScope(req, dayKeys),
		DayKeys:  dayKeys,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"job_id":   result.JobID,
		"status":   result.Status,
		"existing": result.Existing,
	})
}

func (h *PlanAPIHandlers) handleRun(w http.ResponseWriter, r *http.Request, userID uuid.UUID, req planRequest) {
	if req.JobID == "" {
		h.writeError(w, r, errors.NewValidationError("job_id is required for run"))
		return
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		h.writeError(w, r, errors.NewValidationError("job_id is not a valid uuid"))
		return
	}
	memberID, err := parseOptionalUUID(req.MemberID)
	if err != nil {
		h.writeError(w, r, errors.NewValidationError("member_id is not a valid uuid"))
		return
	}

	result, err := h.planner.Run(r.Context(), inbound.RunCommand{
		UserID:     userID,
		JobID:      jobID,
		MemberID:   memberID,
		MemberData: req.MemberData.toConstraints(),
		DayKeys:    resolveWindow(req),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"job_id":           result.JobID,
		"status":           result.Status,
		"totalSlots":       result.TotalSlots,
		"filledSlotsCount": result.FilledSlotsCount,
		"emptySlotsCount":  result.EmptySlotsCount,
		"filledDaysCount":  result.FilledDaysCount,
		"partial":          result.Partial,
	})
}

func (h *PlanAPIHandlers) handleUpgrade(w http.ResponseWriter, r *http.Request, userID uuid.UUID, req planRequest) {
	memberID, err := parseOptionalUUID(req.MemberID)
	if err != nil {
		h.writeError(w, r, errors.NewValidationError("member_id is not a valid uuid"))
		return
	}

	result, err := h.planner.Upgrade(r.Context(), inbound.UpgradeCommand{
		UserID:     userID,
		MemberID:   memberID,
		MemberData: req.MemberData.toConstraints(),
		DayKeys:    resolveWindow(req),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"replacedCount":  result.ReplacedCount,
		"unchangedCount": result.UnchangedCount,
		"partial":        result.Partial,
	})
}

func (h *PlanAPIHandlers) handleReplaceSlot(w http.ResponseWriter, r *http.Request, userID uuid.UUID, req planRequest) {
	if req.DayKey == "" {
		h.writeError(w, r, errors.NewValidationError("day_key is required for replace_slot"))
		return
	}
	mealType, ok := plan.ParseMealType(req.MealType)
	if !ok {
		h.writeError(w, r, errors.NewValidationError("meal_type must be one of breakfast, lunch, snack, dinner"))
		return
	}
	memberID, err := parseOptionalUUID(req.MemberID)
	if err != nil {
		h.writeError(w, r, errors.NewValidationError("member_id is not a valid uuid"))
		return
	}
	excludeIDs := make([]uuid.UUID, 0, len(req.ExcludeRecipeIDs))
	for _, raw := range req.ExcludeRecipeIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.writeError(w, r, errors.NewValidationError("exclude_recipe_ids contains an invalid uuid"))
			return
		}
		excludeIDs = append(excludeIDs, id)
	}

	result, err := h.planner.ReplaceSlot(r.Context(), inbound.ReplaceSlotCommand{
		UserID:           userID,
		MemberID:         memberID,
		MemberData:       req.MemberData.toConstraints(),
		DayKey:           req.DayKey,
		MealType:         mealType,
		ExcludeRecipeIDs: excludeIDs,
		ExcludeTitleKeys: req.ExcludeTitleKeys,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"pickedSource": result.PickedSource,
		"newRecipeId":  result.NewRecipeID,
		"title":        result.Title,
		"reason":       result.Reason,
	})
}

func (h *PlanAPIHandlers) handleCancel(w http.ResponseWriter, r *http.Request, userID uuid.UUID, req planRequest) {
	if req.JobID == "" {
		h.writeError(w, r, errors.NewValidationError("job_id is required for cancel"))
		return
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		h.writeError(w, r, errors.NewValidationError("job_id is not a valid uuid"))
		return
	}

	result, err := h.planner.Cancel(r.Context(), inbound.CancelCommand{
		UserID: userID,
		JobID:  jobID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"job_id": result.JobID,
		"status": result.Status,
	})
}

// resolveWindow picks the day keys for the request: explicit day_keys
// win, then a single day_key, then a rolling window from start_key or
// today.
func resolveWindow(req planRequest) []string {
	if len(req.DayKeys) > 0 {
		return req.DayKeys
	}
	if req.DayKey != "" {
		return []string{req.DayKey}
	}
	start := time.Now()
	if req.StartKey != "" {
		if parsed, err := plan.ParseDayKey(req.StartKey); err == nil {
			start = parsed
		}
	}
	if req.Type == "day" {
		return plan.RollingWindow(start, 1)
	}
	return plan.RollingWindow(start, DefaultWindowDays)
}

func resolveScope(req planRequest, dayKeys []string) plan.JobScope {
	if req.Type != "" {
		return plan.JobScope(req.Type)
	}
	if len(dayKeys) == 1 {
		return plan.ScopeDay
	}
	return plan.ScopeWeek
}

func parseOptionalUUID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// writeJSON writes a JSON response
func (h *PlanAPIHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeError maps application errors to the HTTP error envelope
func (h *PlanAPIHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		h.logger.Error("Unhandled error on plan endpoint", zap.Error(err))
		appErr = errors.NewInternalError("")
	}

	requestID := chimiddleware.GetReqID(r.Context())
	h.writeJSON(w, appErr.StatusCode(), errors.ToErrorResponse(appErr, requestID))
}
