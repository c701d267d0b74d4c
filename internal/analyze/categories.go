package analyze

import "strings"

// DefaultBaseScore applies when no category keyword matches the product name.
const DefaultBaseScore = 5.0

type categoryWeight struct {
	keyword string
	weight  float64
}

// categoryWeights is checked in order; the first keyword found in the product
// name selects the base score handed to the impact prompt.
var categoryWeights = []categoryWeight{
	{"meat", 8.0},
	{"poultry", 7.5},
	{"seafood", 8.5},
	{"dairy", 7.0},
	{"produce", 6.5},
	{"baked goods", 5.0},
	{"snacks", 4.0},
	{"beverages", 6.0},
	{"prepared foods", 5.5},
	{"supplements", 4.5},
	{"infant formula", 9.5},
	{"other", 5.0},
}

// BaseScore returns the category base impact score for a product name.
func BaseScore(productName string) float64 {
	name := strings.ToLower(productName)
	for _, c := range categoryWeights {
		if strings.Contains(name, c.keyword) {
			return c.weight
		}
	}
	return DefaultBaseScore
}
