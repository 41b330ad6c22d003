package shopping

import (
	"testing"
	"time"

	"meal-planner/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	today    = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	tomorrow = today.AddDate(0, 0, 1)
	nextWeek = today.AddDate(0, 0, 7)
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func carrotRecipes() map[int]models.Recipe {
	return map[int]models.Recipe{
		1: {
			ID: 1, Name: "Soup", PeopleAmount: 4,
			Ingredients: []models.RecipeIngredient{
				{IngredientID: 10, Amount: 2, Unit: "pcs", IngredientName: "Carrot", IngredientCategory: "Vegetables"},
			},
		},
		2: {
			ID: 2, Name: "Stew", PeopleAmount: 2,
			Ingredients: []models.RecipeIngredient{
				{IngredientID: 10, Amount: 1, Unit: "pcs", IngredientName: "Carrot", IngredientCategory: "Vegetables"},
			},
		},
	}
}

func TestAggregateScalesAndMergesAcrossMeals(t *testing.T) {
	in := Input{
		Today:   today,
		Until:   nextWeek,
		Recipes: carrotRecipes(),
		Plans: []models.MealPlan{
			{ID: 1, Date: today, RecipeID: 1, PeopleCount: 8},
			{ID: 2, Date: tomorrow, RecipeID: 2, PeopleCount: 2},
		},
		Checked: map[string]bool{},
	}

	items := Aggregate(in)
	require.Len(t, items, 1)

	carrot := items[0]
	assert.Equal(t, IngredientKey(10, "pcs"), carrot.ItemKey)
	assert.Equal(t, "Carrot", carrot.Name)
	require.NotNil(t, carrot.Quantity)
	assert.InDelta(t, 5, *carrot.Quantity, 1e-12)
	assert.Equal(t, SourceRecipe, carrot.Source)
	assert.False(t, carrot.Checked)
}

func TestAggregateIsOrderIndependent(t *testing.T) {
	plans := []models.MealPlan{
		{ID: 1, Date: today, RecipeID: 1, PeopleCount: 8},
		{ID: 2, Date: tomorrow, RecipeID: 2, PeopleCount: 2},
		{ID: 3, Date: tomorrow, RecipeID: 1, PeopleCount: 4},
	}
	reversed := []models.MealPlan{plans[2], plans[1], plans[0]}

	in := Input{Today: today, Until: nextWeek, Recipes: carrotRecipes(), Plans: plans}
	permuted := Input{Today: today, Until: nextWeek, Recipes: carrotRecipes(), Plans: reversed}

	assert.Equal(t, Aggregate(in), Aggregate(permuted))
}

func TestAggregateKeepsUnitsSeparate(t *testing.T) {
	recipes := map[int]models.Recipe{
		1: {
			ID: 1, Name: "Cake", PeopleAmount: 2,
			Ingredients: []models.RecipeIngredient{
				{IngredientID: 20, Amount: 500, Unit: "g", IngredientName: "Flour", IngredientCategory: "Baking"},
			},
		},
		2: {
			ID: 2, Name: "Bread", PeopleAmount: 2,
			Ingredients: []models.RecipeIngredient{
				{IngredientID: 20, Amount: 1, Unit: "kg", IngredientName: "Flour", IngredientCategory: "Baking"},
			},
		},
	}
	in := Input{
		Today:   today,
		Until:   nextWeek,
		Recipes: recipes,
		Plans: []models.MealPlan{
			{ID: 1, Date: today, RecipeID: 1, PeopleCount: 2},
			{ID: 2, Date: today, RecipeID: 2, PeopleCount: 2},
		},
	}

	items := Aggregate(in)
	require.Len(t, items, 2, "different units must never be summed")
}

func TestAggregateDateWindow(t *testing.T) {
	in := Input{
		Today:   today,
		Until:   today,
		Recipes: carrotRecipes(),
		Plans: []models.MealPlan{
			{ID: 1, Date: today.AddDate(0, 0, -1), RecipeID: 1, PeopleCount: 4}, // yesterday: excluded
			{ID: 2, Date: today, RecipeID: 1, PeopleCount: 4},                   // today: included
			{ID: 3, Date: tomorrow, RecipeID: 1, PeopleCount: 4},                // after until: excluded
		},
	}

	items := Aggregate(in)
	require.Len(t, items, 1)
	assert.InDelta(t, 2, *items[0].Quantity, 1e-12)
}

func TestAggregateWindowBeforeTodayKeepsCustomItems(t *testing.T) {
	in := Input{
		Today:   today,
		Until:   today.AddDate(0, 0, -3),
		Recipes: carrotRecipes(),
		Plans: []models.MealPlan{
			{ID: 1, Date: today, RecipeID: 1, PeopleCount: 4},
		},
		Custom: []models.CustomItem{
			{ID: 1, Name: "Napkins", Category: strPtr("Household")},
		},
	}

	items := Aggregate(in)
	require.Len(t, items, 1)
	assert.Equal(t, SourceCustom, items[0].Source)
}

func TestAggregateSkipsInvalidServings(t *testing.T) {
	recipes := carrotRecipes()
	broken := recipes[1]
	broken.PeopleAmount = 0
	recipes[1] = broken

	in := Input{
		Today:   today,
		Until:   nextWeek,
		Recipes: recipes,
		Plans: []models.MealPlan{
			{ID: 1, Date: today, RecipeID: 1, PeopleCount: 4},
			{ID: 2, Date: today, RecipeID: 2, PeopleCount: 2},
		},
	}

	items := Aggregate(in)
	require.Len(t, items, 1, "broken meal is skipped, not fatal")
	assert.InDelta(t, 1, *items[0].Quantity, 1e-12)
}

func TestAggregateCustomItemWithoutQuantity(t *testing.T) {
	in := Input{
		Today: today,
		Until: nextWeek,
		Custom: []models.CustomItem{
			{ID: 1, Name: "Napkins", Category: strPtr("Household")},
		},
	}

	items := Aggregate(in)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Quantity)
	assert.Nil(t, items[0].Unit)
	assert.Equal(t, "custom:napkins|household", items[0].ItemKey)
}

func TestAggregateMergesCustomDuplicates(t *testing.T) {
	in := Input{
		Today: today,
		Until: nextWeek,
		Custom: []models.CustomItem{
			{ID: 1, Name: "Milk", Category: strPtr("Dairy"), Quantity: f64Ptr(1), Unit: strPtr("l")},
			{ID: 2, Name: "milk", Category: strPtr("dairy"), Quantity: f64Ptr(2), Unit: strPtr("L")},
		},
	}

	items := Aggregate(in)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Quantity)
	assert.InDelta(t, 3, *items[0].Quantity, 1e-12)
}

func TestAggregateAmbiguousCustomMergeDropsQuantity(t *testing.T) {
	in := Input{
		Today: today,
		Until: nextWeek,
		Custom: []models.CustomItem{
			{ID: 1, Name: "Milk", Category: strPtr("Dairy"), Quantity: f64Ptr(1), Unit: strPtr("l")},
			{ID: 2, Name: "Milk", Category: strPtr("Dairy"), Quantity: f64Ptr(500), Unit: strPtr("ml")},
		},
	}

	items := Aggregate(in)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Quantity, "mismatched units must be flagged, not summed")
}

func TestAggregateAnnotatesCheckedState(t *testing.T) {
	key := IngredientKey(10, "pcs")
	in := Input{
		Today:   today,
		Until:   nextWeek,
		Recipes: carrotRecipes(),
		Plans: []models.MealPlan{
			{ID: 1, Date: today, RecipeID: 1, PeopleCount: 4},
		},
		Checked: map[string]bool{key: true},
	}

	items := Aggregate(in)
	require.Len(t, items, 1)
	assert.True(t, items[0].Checked)

	// Checked state survives list regeneration with different plans as
	// long as the key still appears
	in.Plans = []models.MealPlan{{ID: 9, Date: tomorrow, RecipeID: 2, PeopleCount: 2}}
	items = Aggregate(in)
	require.Len(t, items, 1)
	assert.True(t, items[0].Checked)
}

func TestAggregateIsIdempotent(t *testing.T) {
	in := Input{
		Today:   today,
		Until:   nextWeek,
		Recipes: carrotRecipes(),
		Plans: []models.MealPlan{
			{ID: 1, Date: today, RecipeID: 1, PeopleCount: 8},
		},
		Custom: []models.CustomItem{
			{ID: 1, Name: "Napkins"},
		},
	}

	assert.Equal(t, Aggregate(in), Aggregate(in))
}

func TestSortItemsWithLearnedOrder(t *testing.T) {
	items := []models.ShoppingListItem{
		{ItemKey: "a", Name: "Zucchini"},
		{ItemKey: "b", Name: "Apples"},
		{ItemKey: "c", Name: "Milk"},
		{ItemKey: "d", Name: "Bread"},
	}
	order := map[string]int{"c": 1, "a": 2}

	SortItems(items, order)

	keys := []string{items[0].ItemKey, items[1].ItemKey, items[2].ItemKey, items[3].ItemKey}
	// Ranked items first in learned position, the rest appended by name
	assert.Equal(t, []string{"c", "a", "b", "d"}, keys)
}

func TestSortItemsFallsBackToCategoryThenName(t *testing.T) {
	items := []models.ShoppingListItem{
		{ItemKey: "a", Name: "Yogurt", Category: strPtr("Dairy")},
		{ItemKey: "b", Name: "Apples", Category: strPtr("Fruit")},
		{ItemKey: "c", Name: "Milk", Category: strPtr("Dairy")},
		{ItemKey: "d", Name: "Napkins"},
	}

	SortItems(items, nil)

	keys := []string{items[0].ItemKey, items[1].ItemKey, items[2].ItemKey, items[3].ItemKey}
	// Nil category sorts as empty string, ahead of named categories
	assert.Equal(t, []string{"d", "c", "a", "b"}, keys)
}
