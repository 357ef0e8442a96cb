package member

import "strings"

// FamilyConstraints merges the constraint lists of every household
// member into one union. Family-mode plans are cooked once for the
// whole table: any single member's allergy or dislike excludes a dish
// universally, but no individual age restriction carries forward.
func FamilyConstraints(members []Member) Constraints {
	out := Constraints{Type: TypeFamily}
	out.Allergies = unionTrimmed(members, func(m Member) []string { return m.Allergies })
	out.Dislikes = unionTrimmed(members, func(m Member) []string { return m.Dislikes })
	out.Preferences = unionTrimmed(members, func(m Member) []string { return m.Preferences })
	out.Likes = unionTrimmed(members, func(m Member) []string { return m.Likes })
	return out
}

// YoungestInfant returns the youngest member strictly under twelve
// months, if the household has one. Drives the infant adaptation layer
// on family slots.
func YoungestInfant(members []Member) *Member {
	var youngest *Member
	for i := range members {
		m := &members[i]
		if !m.IsInfant() {
			continue
		}
		if youngest == nil || *m.AgeMonths < *youngest.AgeMonths {
			youngest = m
		}
	}
	return youngest
}

// unionTrimmed collects trimmed, non-empty values across members,
// deduplicated with first-appearance order preserved.
func unionTrimmed(members []Member, pick func(Member) []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range members {
		for _, v := range pick(m) {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
