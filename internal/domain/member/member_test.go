package member

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func intPtr(v int) *int { return &v }

// AgeContextTestSuite covers age-context resolution
type AgeContextTestSuite struct {
	suite.Suite
}

func (suite *AgeContextTestSuite) TestResolveAgeContext() {
	suite.Run("Child_ShouldGetAgeFilter", func() {
		ctx := ResolveAgeContext(Constraints{Type: TypeChild, AgeMonths: intPtr(8)})

		require.True(suite.T(), ctx.ApplyFilter)
		require.NotNil(suite.T(), ctx.AgeMonths)
		assert.Equal(suite.T(), 8, *ctx.AgeMonths)
	})

	suite.Run("AdultType_ShouldGetNoFilterEvenWithChildAge", func() {
		ctx := ResolveAgeContext(Constraints{Type: TypeAdult, AgeMonths: intPtr(30)})
		assert.False(suite.T(), ctx.ApplyFilter)
		assert.Nil(suite.T(), ctx.AgeMonths)
	})

	suite.Run("FamilyType_ShouldGetNoFilter", func() {
		ctx := ResolveAgeContext(Constraints{Type: TypeFamily})
		assert.False(suite.T(), ctx.ApplyFilter)
	})

	suite.Run("UnknownAge_ShouldGetNoFilter", func() {
		ctx := ResolveAgeContext(Constraints{Type: TypeChild})
		assert.False(suite.T(), ctx.ApplyFilter)
	})

	suite.Run("EighteenYears_ShouldGetNoFilter", func() {
		ctx := ResolveAgeContext(Constraints{Type: TypeChild, AgeMonths: intPtr(216)})
		assert.False(suite.T(), ctx.ApplyFilter)
	})

	suite.Run("NegativeAge_ShouldClampToZero", func() {
		ctx := ResolveAgeContext(Constraints{Type: TypeChild, AgeMonths: intPtr(-3)})
		require.True(suite.T(), ctx.ApplyFilter)
		assert.Equal(suite.T(), 0, *ctx.AgeMonths)
	})
}

func (suite *AgeContextTestSuite) TestIsAdultContext() {
	// the two predicates are distinct: an adult target keeps
	// IsAdultContext true even though ApplyFilter is false
	assert.True(suite.T(), IsAdultContext(Constraints{Type: TypeAdult}))
	assert.True(suite.T(), IsAdultContext(Constraints{Type: TypeFamily}))
	assert.True(suite.T(), IsAdultContext(Constraints{Type: TypeChild, AgeMonths: intPtr(240)}))
	assert.False(suite.T(), IsAdultContext(Constraints{Type: TypeChild, AgeMonths: intPtr(30)}))
	assert.False(suite.T(), IsAdultContext(Constraints{Type: TypeChild}))
}

func TestAgeContextTestSuite(t *testing.T) {
	suite.Run(t, new(AgeContextTestSuite))
}

func TestCategoryForAge(t *testing.T) {
	assert.Equal(t, CategoryInfant, CategoryForAge(8))
	assert.Equal(t, CategoryInfant, CategoryForAge(12))
	assert.Equal(t, CategoryToddler, CategoryForAge(30))
	assert.Equal(t, CategorySchool, CategoryForAge(120))
	assert.Equal(t, CategoryAdult, CategoryForAge(360))
}

func TestFamilyConstraints(t *testing.T) {
	members := []Member{
		{
			ID:        uuid.New(),
			Name:      "Mia",
			AgeMonths: intPtr(8),
			Type:      TypeChild,
			Allergies: []string{"cmpa", " eggs "},
			Dislikes:  []string{"broccoli"},
			Likes:     []string{"berries"},
		},
		{
			ID:          uuid.New(),
			Name:        "Anna",
			AgeMonths:   intPtr(360),
			Type:        TypeAdult,
			Allergies:   []string{"eggs", ""},
			Dislikes:    []string{"cilantro", "broccoli"},
			Preferences: []string{"quick meals"},
		},
	}

	got := FamilyConstraints(members)

	assert.Equal(t, TypeFamily, got.Type)
	assert.Nil(t, got.AgeMonths, "no per-member age carries into family constraints")
	assert.Equal(t, []string{"cmpa", "eggs"}, got.Allergies)
	assert.Equal(t, []string{"broccoli", "cilantro"}, got.Dislikes)
	assert.Equal(t, []string{"quick meals"}, got.Preferences)
	assert.Equal(t, []string{"berries"}, got.Likes)
}

func TestYoungestInfant(t *testing.T) {
	infant := Member{ID: uuid.New(), Name: "Mia", AgeMonths: intPtr(8), Type: TypeChild}
	toddler := Member{ID: uuid.New(), Name: "Leo", AgeMonths: intPtr(30), Type: TypeChild}
	newborn := Member{ID: uuid.New(), Name: "Ida", AgeMonths: intPtr(5), Type: TypeChild}

	got := YoungestInfant([]Member{toddler, infant, newborn})
	require.NotNil(t, got)
	assert.Equal(t, newborn.ID, got.ID)

	assert.Nil(t, YoungestInfant([]Member{toddler}))
	assert.Nil(t, YoungestInfant(nil))
}
