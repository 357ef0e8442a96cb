// Package allergen holds the static allergy alias dictionary and the
// blocked-token expansion used by the plan filtering pipeline.
// Berries and similar dislikes are not allergens in this dictionary.
package allergen

// Alias is one canonical allergy entry with its curated token list.
// Tokens are lexical stems matched as substrings against recipe text.
type Alias struct {
	Canonical string
	Display   string
	Aliases   []string
	Tokens    []string
}

// Aliases is the reference table, looked up by normalized free-text
// match. The cow-milk-protein entry deliberately excludes "lactose":
// milk protein allergy and lactose intolerance are medically distinct
// and must never trigger each other.
var Aliases = []Alias{
	{
		Canonical: "cow milk protein",
		Display:   "CMPA",
		Aliases:   []string{"cmpa", "cow milk protein allergy", "milk protein", "milk protein allergy", "cow's milk protein"},
		Tokens:    []string{"milk", "dairy", "cream", "cheese", "yogurt", "yoghurt", "kefir", "curd", "cottage", "butter", "casein", "whey", "lactalbum"},
	},
	{
		Canonical: "lactose",
		Display:   "lactose",
		Aliases:   []string{"lactose", "lactose intolerance"},
		Tokens:    []string{"lactose"},
	},
	{
		Canonical: "gluten",
		Display:   "gluten",
		Aliases:   []string{"gluten", "celiac", "coeliac", "celiac disease"},
		Tokens:    []string{"gluten", "wheat", "rye", "barley", "oats", "semolina", "bulgur", "couscous", "flour", "bread", "pasta", "pastry"},
	},
	{
		Canonical: "eggs",
		Display:   "eggs",
		Aliases:   []string{"egg", "eggs", "egg white", "egg yolk"},
		Tokens:    []string{"egg", "eggs", "yolk", "albumen"},
	},
	{
		Canonical: "fish",
		Display:   "fish",
		Aliases:   []string{"fish", "fish allergy"},
		Tokens:    []string{"fish", "salmon", "cod", "tuna", "trout", "herring", "mackerel", "pollock", "anchov"},
	},
	{
		Canonical: "seafood",
		Display:   "seafood",
		Aliases:   []string{"seafood", "shellfish", "crustacean"},
		Tokens:    []string{"seafood", "shrimp", "prawn", "mussel", "squid", "octopus", "crab", "lobster", "oyster", "caviar", "scallop"},
	},
	{
		Canonical: "tree nuts",
		Display:   "tree nuts",
		Aliases:   []string{"nuts", "tree nuts", "nut allergy"},
		Tokens:    []string{"hazelnut", "almond", "cashew", "pistachio", "walnut", "pecan", "macadamia", "pine nut", "brazil nut", "nut"},
	},
	{
		Canonical: "peanut",
		Display:   "peanut",
		Aliases:   []string{"peanut", "peanuts", "groundnut"},
		Tokens:    []string{"peanut", "groundnut"},
	},
	{
		Canonical: "soy",
		Display:   "soy",
		Aliases:   []string{"soy", "soya", "soybean"},
		Tokens:    []string{"soy", "soya", "tofu", "edamame", "tempeh"},
	},
	{
		Canonical: "sesame",
		Display:   "sesame",
		Aliases:   []string{"sesame", "tahini"},
		Tokens:    []string{"sesame", "tahini"},
	},
	{
		Canonical: "honey",
		Display:   "honey",
		Aliases:   []string{"honey"},
		Tokens:    []string{"honey"},
	},
	{
		Canonical: "mustard",
		Display:   "mustard",
		Aliases:   []string{"mustard"},
		Tokens:    []string{"mustard"},
	},
	{
		Canonical: "celery",
		Display:   "celery",
		Aliases:   []string{"celery", "celeriac"},
		Tokens:    []string{"celery", "celeriac"},
	},
	{
		Canonical: "lupin",
		Display:   "lupin",
		Aliases:   []string{"lupin", "lupine"},
		Tokens:    []string{"lupin"},
	},
	{
		Canonical: "sulfites",
		Display:   "sulfites",
		Aliases:   []string{"sulfites", "sulphites", "e220", "e-220"},
		Tokens:    []string{"sulfite", "sulphite", "e220", "e-220"},
	},
}
