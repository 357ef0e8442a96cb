package recipe

import "github.com/mealsmith/v2/internal/domain/plan"

// Age/texture safety keyword tables, applied on top of the declared
// min/max age range when age filtering is active for a target.

// under36Keywords: seasoning and ingredients unsuitable under three years
var under36Keywords = []string{"spicy", "chili", "coffee", "mushroom"}

// under24Keywords: choking-hazard textures unsuitable under two years
var under24Keywords = []string{"whole nut", "popcorn", "hard candy", "crouton"}

// under12Keywords: adult protein preparations and forbidden foods for
// the first year
var under12Keywords = []string{"steak", "rare", "smoked", "honey", "fried"}

// AgeSafe reports whether the candidate's text is free of age-unsafe
// keywords for the target age bracket. Brackets stack: an infant target
// is also checked against the toddler tables.
func AgeSafe(c *Candidate, ageMonths int) bool {
	text := c.SearchText()
	if ageMonths < 36 && containsAny(text, under36Keywords) {
		return false
	}
	if ageMonths < 24 && containsAny(text, under24Keywords) {
		return false
	}
	if ageMonths <= 12 && containsAny(text, under12Keywords) {
		return false
	}
	return true
}

// altForcingKeywords force a separate infant alternative instead of
// adapting the family dish.
var altForcingKeywords = []string{
	"spicy", "pepper", "fried", "smoked", "mushroom", "nut", "honey",
}

// InfantAdaptable reports whether the family dish can be adapted for an
// infant (portioned before seasoning and blended) rather than replaced.
func InfantAdaptable(c *Candidate) bool {
	return !containsAny(c.SearchText(), altForcingKeywords)
}

// InfantAdaptationText is the standing no-AI adaptation instruction
const InfantAdaptationText = "Set a portion aside before adding salt and spices, then blend to the right consistency."

// DecideInfantMode picks adapt or alt for a family slot: adaptable
// dishes are adapted, anything with alt-forcing keywords gets a
// separate infant recipe.
func DecideInfantMode(c *Candidate) plan.InfantMode {
	if InfantAdaptable(c) {
		return plan.InfantAdapt
	}
	return plan.InfantAlt
}
