package recipe

import "sort"

// Family-mode dinner rule: the one place age-derived texture safety
// re-enters family mode. Dinner must be shareable with a toddler at
// the table, so adult-only whole-cut preparations are excluded and
// braised/stewed textures are preferred.

var familyDinnerExclude = []string{
	"steak", "rare", "seared", "roast beef", "kebab", "medium-rare",
}

var familyDinnerPrefer = []string{
	"stew", "brais", "casserole", "meatball", "goulash", "souffle", "ragout",
}

// FamilyDinnerCandidate reports whether the recipe may be offered as a
// family dinner at all.
func FamilyDinnerCandidate(c *Candidate) bool {
	return !containsAny(c.SearchText(), familyDinnerExclude)
}

// FamilyDinnerScore counts toddler-friendly technique hits. Excluded
// candidates score -1; higher is better.
func FamilyDinnerScore(c *Candidate) int {
	if !FamilyDinnerCandidate(c) {
		return -1
	}
	text := c.SearchText()
	score := 0
	for _, tok := range familyDinnerPrefer {
		if containsAny(text, []string{tok}) {
			score++
		}
	}
	return score
}

// OrderForFamilyDinner stable-sorts candidates by descending family
// dinner score, pool order breaking ties. The input is not mutated.
func OrderForFamilyDinner(pool []*Candidate) []*Candidate {
	out := append([]*Candidate(nil), pool...)
	sort.SliceStable(out, func(i, j int) bool {
		return FamilyDinnerScore(out[i]) > FamilyDinnerScore(out[j])
	})
	return out
}
