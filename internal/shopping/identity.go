package shopping

import (
	"strconv"
	"strings"
)

// Item keys are the stable identity of a purchasable item. Recipe
// ingredients are keyed by ingredient id plus unit so that amounts in
// different units are never summed together; custom entries are keyed by
// their normalized name and category so re-adding the same item picks up
// its previous checked state.

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IngredientKey returns the item key for a catalog ingredient in a given unit.
func IngredientKey(ingredientID int, unit string) string {
	return "ingredient:" + strconv.Itoa(ingredientID) + "|" + normalize(unit)
}

// CustomKey returns the item key for an ad hoc shopping item.
func CustomKey(name string, category *string) string {
	cat := ""
	if category != nil {
		cat = normalize(*category)
	}
	return "custom:" + normalize(name) + "|" + cat
}
