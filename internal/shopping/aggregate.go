package shopping

import (
	"log"
	"sort"
	"time"

	"meal-planner/internal/models"
)

const (
	SourceRecipe = "recipe"
	SourceCustom = "custom"
)

// Input is the read-only snapshot Aggregate works over. The aggregator
// never reaches back into storage; everything it needs is loaded up front.
type Input struct {
	Today   time.Time
	Until   time.Time
	Plans   []models.MealPlan
	Recipes map[int]models.Recipe
	Custom  []models.CustomItem
	Checked map[string]bool
}

type lineTotal struct {
	name     string
	category *string
	quantity *float64
	unit     *string
	source   string
}

// Aggregate scales every planned recipe's ingredients to its people count
// and merges them with the standing custom items into one deduplicated set
// of shopping list lines. Meals outside [today, until] or with invalid
// servings are skipped; custom items are standing entries unaffected by
// the date window. The result is sorted by item key; presentation order is
// applied separately with SortItems.
func Aggregate(in Input) []models.ShoppingListItem {
	totals := make(map[string]*lineTotal)

	for _, plan := range in.Plans {
		day := dateOnly(plan.Date)
		if day.Before(dateOnly(in.Today)) || day.After(dateOnly(in.Until)) {
			continue
		}
		recipe, ok := in.Recipes[plan.RecipeID]
		if !ok {
			continue
		}
		factor, err := Scale(1, recipe.PeopleAmount, plan.PeopleCount)
		if err != nil {
			log.Printf("skipping meal plan %d (%s): %v", plan.ID, recipe.Name, err)
			continue
		}
		for _, link := range recipe.Ingredients {
			amount := link.Amount * factor
			key := IngredientKey(link.IngredientID, link.Unit)
			entry, ok := totals[key]
			if !ok {
				unit := link.Unit
				category := link.IngredientCategory
				qty := 0.0
				entry = &lineTotal{
					name:     link.IngredientName,
					category: &category,
					quantity: &qty,
					unit:     &unit,
					source:   SourceRecipe,
				}
				totals[key] = entry
			}
			*entry.quantity += amount
		}
	}

	for _, custom := range in.Custom {
		key := CustomKey(custom.Name, custom.Category)
		entry, ok := totals[key]
		if !ok {
			totals[key] = &lineTotal{
				name:     custom.Name,
				category: custom.Category,
				quantity: custom.Quantity,
				unit:     custom.Unit,
				source:   SourceCustom,
			}
			continue
		}
		// Two custom entries with the same identity: sum only when the
		// units are unambiguously the same, otherwise flag with a nil
		// quantity rather than guessing.
		if entry.quantity != nil && custom.Quantity != nil &&
			entry.unit != nil && custom.Unit != nil &&
			normalize(*entry.unit) == normalize(*custom.Unit) {
			sum := *entry.quantity + *custom.Quantity
			entry.quantity = &sum
		} else {
			entry.quantity = nil
		}
	}

	items := make([]models.ShoppingListItem, 0, len(totals))
	for key, entry := range totals {
		items = append(items, models.ShoppingListItem{
			ItemKey:  key,
			Name:     entry.name,
			Category: entry.category,
			Quantity: entry.quantity,
			Unit:     entry.unit,
			Checked:  in.Checked[key],
			Source:   entry.source,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ItemKey < items[j].ItemKey })
	return items
}

// SortItems orders lines for presentation. With a learned order, ranked
// items come first in learned position and the rest follow sorted by name;
// without one the list falls back to category then name.
func SortItems(items []models.ShoppingListItem, order map[string]int) {
	if len(order) == 0 {
		sort.SliceStable(items, func(i, j int) bool {
			ci, cj := derefOr(items[i].Category, ""), derefOr(items[j].Category, "")
			if ci != cj {
				return ci < cj
			}
			if items[i].Name != items[j].Name {
				return items[i].Name < items[j].Name
			}
			return items[i].ItemKey < items[j].ItemKey
		})
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		pi, ranked1 := order[items[i].ItemKey]
		pj, ranked2 := order[items[j].ItemKey]
		if ranked1 != ranked2 {
			return ranked1
		}
		if ranked1 {
			return pi < pj
		}
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ItemKey < items[j].ItemKey
	})
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
