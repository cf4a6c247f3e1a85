package transform

import (
	"github.com/Ramsey-B/sprout/pkg/models"
)

// Rule turns the records of one topic document into canonical cards. Rules
// must be pure: same records in, same cards out, and records left untouched.
type Rule func(records []any) []models.Card

// registry holds the rule for every known topic slug
var registry = make(map[string]Rule)

func init() {
	Register("general", General)
	Register("culture", Culture)
	Register("guide", Guide)
	Register("cuisine", Cuisine)
	Register("adventures", Adventures)
	Register("history", DecodeCards)
	Register("nature", DecodeCards)
	Register("health", DecodeCards)
	Register("nightlife", DecodeCards)
	Register("wine", DecodeCards)
}

// Register adds a rule to the registry
func Register(slug string, rule Rule) {
	registry[slug] = rule
}

// Get retrieves a rule by slug
func Get(slug string) (Rule, bool) {
	rule, ok := registry[slug]
	return rule, ok
}

// Identity decodes records as canonical cards without restructuring them. It
// handles slugs that have no rule of their own.
func Identity(records []any) []models.Card {
	return DecodeCards(records)
}
