// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/mealsmith/v2/internal/domain/member"
	"github.com/mealsmith/v2/internal/domain/plan"
	"github.com/mealsmith/v2/internal/domain/recipe"
)

// CandidateBuilder provides a fluent interface for building test recipe candidates
type CandidateBuilder struct {
	id           uuid.UUID
	title        string
	description  string
	tags         []string
	ingredients  []recipe.Ingredient
	mealType     *plan.MealType
	minAgeMonths *int
	maxAgeMonths *int
	source       string
	createdAt    time.Time
}

// NewCandidateBuilder creates a new candidate builder with default values
func NewCandidateBuilder() *CandidateBuilder {
	faker := gofakeit.New(time.Now().UnixNano())

	return &CandidateBuilder{
		id:          uuid.New(),
		title:       faker.Dinner(),
		description: faker.Sentence(8),
		tags:        []string{"test"},
		ingredients: []recipe.Ingredient{},
		source:      recipe.SourceSeed,
		createdAt:   time.Now(),
	}
}

// WithID sets the candidate id
func (cb *CandidateBuilder) WithID(id uuid.UUID) *CandidateBuilder {
	cb.id = id
	return cb
}

// WithTitle sets the candidate title
func (cb *CandidateBuilder) WithTitle(title string) *CandidateBuilder {
	cb.title = title
	return cb
}

// WithDescription sets the candidate description
func (cb *CandidateBuilder) WithDescription(description string) *CandidateBuilder {
	cb.description = description
	return cb
}

// WithTags sets the candidate tags
func (cb *CandidateBuilder) WithTags(tags ...string) *CandidateBuilder {
	cb.tags = tags
	return cb
}

// WithIngredients sets ingredient names, each doubling as display text
func (cb *CandidateBuilder) WithIngredients(names ...string) *CandidateBuilder {
	cb.ingredients = make([]recipe.Ingredient, 0, len(names))
	for _, name := range names {
		cb.ingredients = append(cb.ingredients, recipe.Ingredient{
			Name:        name,
			DisplayText: name,
		})
	}
	return cb
}

// WithMealType pins the candidate to a meal slot
func (cb *CandidateBuilder) WithMealType(mt plan.MealType) *CandidateBuilder {
	cb.mealType = &mt
	return cb
}

// WithAgeRange sets the declared age range in months
func (cb *CandidateBuilder) WithAgeRange(minMonths, maxMonths int) *CandidateBuilder {
	cb.minAgeMonths = &minMonths
	cb.maxAgeMonths = &maxMonths
	return cb
}

// WithSource sets the recipe source
func (cb *CandidateBuilder) WithSource(source string) *CandidateBuilder {
	cb.source = source
	return cb
}

// WithCreatedAt sets the creation timestamp
func (cb *CandidateBuilder) WithCreatedAt(t time.Time) *CandidateBuilder {
	cb.createdAt = t
	return cb
}

// Build creates the candidate
func (cb *CandidateBuilder) Build() *recipe.Candidate {
	return &recipe.Candidate{
		ID:           cb.id,
		Title:        cb.title,
		Description:  cb.description,
		Tags:         cb.tags,
		Ingredients:  cb.ingredients,
		MealType:     cb.mealType,
		MinAgeMonths: cb.minAgeMonths,
		MaxAgeMonths: cb.maxAgeMonths,
		Source:       cb.source,
		CreatedAt:    cb.createdAt,
	}
}

// MemberBuilder provides a fluent interface for building test members
type MemberBuilder struct {
	id          uuid.UUID
	userID      uuid.UUID
	name        string
	ageMonths   *int
	memberType  member.Type
	allergies   []string
	dislikes    []string
	preferences []string
	likes       []string
}

// NewMemberBuilder creates a new member builder with adult defaults
func NewMemberBuilder() *MemberBuilder {
	faker := gofakeit.New(time.Now().UnixNano())

	return &MemberBuilder{
		id:         uuid.New(),
		userID:     uuid.New(),
		name:       faker.FirstName(),
		memberType: member.TypeAdult,
	}
}

// WithID sets the member id
func (mb *MemberBuilder) WithID(id uuid.UUID) *MemberBuilder {
	mb.id = id
	return mb
}

// WithUserID sets the owning user
func (mb *MemberBuilder) WithUserID(userID uuid.UUID) *MemberBuilder {
	mb.userID = userID
	return mb
}

// WithName sets the member name
func (mb *MemberBuilder) WithName(name string) *MemberBuilder {
	mb.name = name
	return mb
}

// WithAgeMonths sets the age and adjusts the member type to match
func (mb *MemberBuilder) WithAgeMonths(months int) *MemberBuilder {
	mb.ageMonths = &months
	if months < member.AdultAgeMonths {
		mb.memberType = member.TypeChild
	}
	return mb
}

// WithType sets the member type
func (mb *MemberBuilder) WithType(t member.Type) *MemberBuilder {
	mb.memberType = t
	return mb
}

// WithAllergies sets the allergy list
func (mb *MemberBuilder) WithAllergies(allergies ...string) *MemberBuilder {
	mb.allergies = allergies
	return mb
}

// WithDislikes sets the dislike list
func (mb *MemberBuilder) WithDislikes(dislikes ...string) *MemberBuilder {
	mb.dislikes = dislikes
	return mb
}

// WithLikes sets the likes list
func (mb *MemberBuilder) WithLikes(likes ...string) *MemberBuilder {
	mb.likes = likes
	return mb
}

// WithPreferences sets the preference list
func (mb *MemberBuilder) WithPreferences(preferences ...string) *MemberBuilder {
	mb.preferences = preferences
	return mb
}

// Build creates the member
func (mb *MemberBuilder) Build() member.Member {
	return member.Member{
		ID:          mb.id,
		UserID:      mb.userID,
		Name:        mb.name,
		AgeMonths:   mb.ageMonths,
		Type:        mb.memberType,
		Allergies:   mb.allergies,
		Dislikes:    mb.dislikes,
		Preferences: mb.preferences,
		Likes:       mb.likes,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// WeekPool builds n distinct candidates per meal type, suitable for
// multi-day runs that need variety headroom
func WeekPool(perMeal int) []*recipe.Candidate {
	pool := make([]*recipe.Candidate, 0, perMeal*4)
	for _, mt := range plan.MealTypes() {
		for i := 0; i < perMeal; i++ {
			pool = append(pool, NewCandidateBuilder().
				WithTitle(fmt.Sprintf("%s dish %d", mt, i)).
				WithDescription("").
				WithMealType(mt).
				Build())
		}
	}
	return pool
}
