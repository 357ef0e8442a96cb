// Package gorm provides GORM model definitions for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeModel represents the GORM model for pool recipes
type RecipeModel struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID  `gorm:"type:char(36);not null;index"`
	MemberID    *uuid.UUID `gorm:"type:char(36);index"` // Nullable: family-level recipes
	Title       string     `gorm:"type:varchar(255);not null;index"`
	Description string     `gorm:"type:text"`

	// Categorization
	Tags        StringSlice    `gorm:"type:json"`
	Ingredients IngredientList `gorm:"type:json"`
	MealType    *string        `gorm:"type:varchar(20);index"`

	// Age suitability window, open-ended on either side
	MinAgeMonths *int `gorm:"column:min_age_months"`
	MaxAgeMonths *int `gorm:"column:max_age_months"`

	// Provenance
	Source string `gorm:"type:varchar(20);not null;default:'seed';index"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// PlanDayModel represents the GORM model for per-day plan documents.
// One row per (user, member, day); the four slots live in a JSON map.
type PlanDayModel struct {
	ID       uuid.UUID  `gorm:"type:char(36);primaryKey"`
	UserID   uuid.UUID  `gorm:"type:char(36);not null;uniqueIndex:idx_plan_target_day"`
	MemberID *uuid.UUID `gorm:"type:char(36);uniqueIndex:idx_plan_target_day"` // Nullable: family plan
	DayKey   string     `gorm:"type:varchar(10);not null;uniqueIndex:idx_plan_target_day"`
	Meals    MealMap    `gorm:"type:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// JobModel represents the GORM model for generation jobs
type JobModel struct {
	ID            uuid.UUID  `gorm:"type:char(36);primaryKey"`
	UserID        uuid.UUID  `gorm:"type:char(36);not null;index"`
	MemberID      *uuid.UUID `gorm:"type:char(36);index"`
	Scope         string     `gorm:"type:varchar(10);not null"`
	Status        string     `gorm:"type:varchar(10);not null;index"`
	ProgressTotal int        `gorm:"default:0"`
	ProgressDone  int        `gorm:"default:0"`
	LastDayKey    string     `gorm:"type:varchar(10)"`
	ErrorText     string     `gorm:"type:text"`
	CreatedAt     time.Time  `gorm:"index"`
	UpdatedAt     time.Time
	CompletedAt   *time.Time
}

// MemberModel represents the GORM model for household members
type MemberModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID `gorm:"type:char(36);not null;index"`
	Name        string    `gorm:"type:varchar(255);not null"`
	AgeMonths   *int      `gorm:"column:age_months"`
	Type        string    `gorm:"type:varchar(20);not null;default:'adult'"`
	Allergies   StringSlice `gorm:"type:json"`
	Dislikes    StringSlice `gorm:"type:json"`
	Preferences StringSlice `gorm:"type:json"`
	Likes       StringSlice `gorm:"type:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// IngredientRecord is the stored shape of one recipe ingredient
type IngredientRecord struct {
	Name        string `json:"name"`
	DisplayText string `json:"display_text,omitempty"`
}

// IngredientList custom type for handling ingredient lists in JSON
type IngredientList []IngredientRecord

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into IngredientList", value)
	}
}

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// SlotRecord is the stored shape of one filled slot
type SlotRecord struct {
	RecipeID            uuid.UUID                `json:"recipe_id"`
	Title               string                   `json:"title"`
	PlanSource          string                   `json:"plan_source"`
	Servings            *int                     `json:"servings,omitempty"`
	IngredientOverrides []IngredientOverrideRecord `json:"ingredient_overrides,omitempty"`
	Infant              *InfantRecord            `json:"infant,omitempty"`
}

// IngredientOverrideRecord is the stored shape of one per-slot ingredient tweak
type IngredientOverrideRecord struct {
	Name   string `json:"name"`
	Amount string `json:"amount,omitempty"`
	Action string `json:"action,omitempty"`
}

// InfantRecord is the stored shape of the infant sub-record
type InfantRecord struct {
	MemberID    uuid.UUID  `json:"member_id"`
	Mode        string     `json:"mode"`
	Adaptation  string     `json:"adaptation,omitempty"`
	AltRecipeID *uuid.UUID `json:"alt_recipe_id,omitempty"`
}

// MealMap custom type for handling the meal-type → slot JSON map
type MealMap map[string]SlotRecord

// Scan implements the sql.Scanner interface
func (m *MealMap) Scan(value interface{}) error {
	if value == nil {
		*m = MealMap{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into MealMap", value)
	}
}

// Value implements the driver.Valuer interface
func (m MealMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for PlanDayModel
func (p *PlanDayModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for JobModel
func (j *JobModel) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for MemberModel
func (m *MemberModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName methods for custom table names
func (RecipeModel) TableName() string {
	return "recipes"
}

func (PlanDayModel) TableName() string {
	return "plan_days"
}

func (JobModel) TableName() string {
	return "generation_jobs"
}

func (MemberModel) TableName() string {
	return "members"
}
