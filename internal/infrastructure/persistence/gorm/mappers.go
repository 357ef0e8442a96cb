// Package gorm provides mapping between domain entities and GORM models
package gorm

import (
	"github.com/google/uuid"

	"github.com/mealsmith/v2/internal/domain/member"
	"github.com/mealsmith/v2/internal/domain/plan"
	"github.com/mealsmith/v2/internal/domain/recipe"
)

// ModelToCandidate converts a GORM model to a domain pool candidate
func ModelToCandidate(model *RecipeModel) *recipe.Candidate {
	c := &recipe.Candidate{
		ID:           model.ID,
		Title:        model.Title,
		Description:  model.Description,
		Tags:         model.Tags,
		MinAgeMonths: model.MinAgeMonths,
		MaxAgeMonths: model.MaxAgeMonths,
		Source:       model.Source,
		CreatedAt:    model.CreatedAt,
	}
	if model.MealType != nil {
		if mt, ok := plan.ParseMealType(*model.MealType); ok {
			c.MealType = &mt
		}
	}
	for _, ing := range model.Ingredients {
		c.Ingredients = append(c.Ingredients, recipe.Ingredient{
			Name:        ing.Name,
			DisplayText: ing.DisplayText,
		})
	}
	return c
}

// CandidateToModel converts a domain pool candidate to a GORM model
func CandidateToModel(c *recipe.Candidate, userID uuid.UUID, memberID *uuid.UUID) *RecipeModel {
	model := &RecipeModel{
		ID:           c.ID,
		UserID:       userID,
		MemberID:     memberID,
		Title:        c.Title,
		Description:  c.Description,
		Tags:         StringSlice(c.Tags),
		MinAgeMonths: c.MinAgeMonths,
		MaxAgeMonths: c.MaxAgeMonths,
		Source:       c.Source,
		CreatedAt:    c.CreatedAt,
	}
	if c.MealType != nil {
		mt := string(*c.MealType)
		model.MealType = &mt
	}
	for _, ing := range c.Ingredients {
		model.Ingredients = append(model.Ingredients, IngredientRecord{
			Name:        ing.Name,
			DisplayText: ing.DisplayText,
		})
	}
	return model
}

// ModelToDay converts a GORM model to a domain plan day. Stored keys
// that are not meal types are dropped rather than failing the read.
func ModelToDay(model *PlanDayModel) *plan.Day {
	day := &plan.Day{
		UserID:    model.UserID,
		MemberID:  model.MemberID,
		DayKey:    model.DayKey,
		Meals:     make(map[plan.MealType]plan.SlotValue, len(model.Meals)),
		UpdatedAt: model.UpdatedAt,
	}
	for raw, rec := range model.Meals {
		mt, ok := plan.ParseMealType(raw)
		if !ok {
			continue
		}
		day.Meals[mt] = recordToSlot(rec)
	}
	return day
}

func recordToSlot(rec SlotRecord) plan.SlotValue {
	slot := plan.SlotValue{
		RecipeID:   rec.RecipeID,
		Title:      rec.Title,
		PlanSource: plan.PlanSource(rec.PlanSource),
		Servings:   rec.Servings,
	}
	for _, o := range rec.IngredientOverrides {
		slot.IngredientOverrides = append(slot.IngredientOverrides, plan.IngredientOverride{
			Name:   o.Name,
			Amount: o.Amount,
			Action: o.Action,
		})
	}
	if rec.Infant != nil {
		slot.Infant = &plan.InfantAdaptation{
			MemberID:    rec.Infant.MemberID,
			Mode:        plan.InfantMode(rec.Infant.Mode),
			Adaptation:  rec.Infant.Adaptation,
			AltRecipeID: rec.Infant.AltRecipeID,
		}
	}
	return slot
}

// SlotToRecord converts a domain slot value to its stored shape
func SlotToRecord(slot plan.SlotValue) SlotRecord {
	rec := SlotRecord{
		RecipeID:   slot.RecipeID,
		Title:      slot.Title,
		PlanSource: string(slot.PlanSource),
		Servings:   slot.Servings,
	}
	for _, o := range slot.IngredientOverrides {
		rec.IngredientOverrides = append(rec.IngredientOverrides, IngredientOverrideRecord{
			Name:   o.Name,
			Amount: o.Amount,
			Action: o.Action,
		})
	}
	if slot.Infant != nil {
		rec.Infant = &InfantRecord{
			MemberID:    slot.Infant.MemberID,
			Mode:        string(slot.Infant.Mode),
			Adaptation:  slot.Infant.Adaptation,
			AltRecipeID: slot.Infant.AltRecipeID,
		}
	}
	return rec
}

// JobToModel converts a domain job to a GORM model
func JobToModel(j *plan.Job) *JobModel {
	return &JobModel{
		ID:            j.ID,
		UserID:        j.UserID,
		MemberID:      j.MemberID,
		Scope:         string(j.Scope),
		Status:        string(j.Status),
		ProgressTotal: j.ProgressTotal,
		ProgressDone:  j.ProgressDone,
		LastDayKey:    j.LastDayKey,
		ErrorText:     j.ErrorText,
		CreatedAt:     j.CreatedAt,
		UpdatedAt:     j.UpdatedAt,
		CompletedAt:   j.CompletedAt,
	}
}

// ModelToJob converts a GORM model to a domain job
func ModelToJob(model *JobModel) *plan.Job {
	return &plan.Job{
		ID:            model.ID,
		UserID:        model.UserID,
		MemberID:      model.MemberID,
		Scope:         plan.JobScope(model.Scope),
		Status:        plan.JobStatus(model.Status),
		ProgressTotal: model.ProgressTotal,
		ProgressDone:  model.ProgressDone,
		LastDayKey:    model.LastDayKey,
		ErrorText:     model.ErrorText,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
		CompletedAt:   model.CompletedAt,
	}
}

// ModelToMember converts a GORM model to a domain member
func ModelToMember(model *MemberModel) member.Member {
	return member.Member{
		ID:          model.ID,
		UserID:      model.UserID,
		Name:        model.Name,
		AgeMonths:   model.AgeMonths,
		Type:        member.Type(model.Type),
		Allergies:   model.Allergies,
		Dislikes:    model.Dislikes,
		Preferences: model.Preferences,
		Likes:       model.Likes,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// MemberToModel converts a domain member to a GORM model
func MemberToModel(m member.Member) *MemberModel {
	return &MemberModel{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		AgeMonths:   m.AgeMonths,
		Type:        string(m.Type),
		Allergies:   StringSlice(m.Allergies),
		Dislikes:    StringSlice(m.Dislikes),
		Preferences: StringSlice(m.Preferences),
		Likes:       StringSlice(m.Likes),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
