package models

import "time"

type Ingredient struct {
	ID       int    `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Category string `json:"category" db:"category"`
}

type RecipeIngredient struct {
	IngredientID       int     `json:"ingredient_id" db:"ingredient_id"`
	Amount             float64 `json:"amount" db:"amount"`
	Unit               string  `json:"unit" db:"unit"`
	SortOrder          int     `json:"sort_order" db:"sort_order"`
	IngredientName     string  `json:"ingredient_name,omitempty"`
	IngredientCategory string  `json:"ingredient_category,omitempty"`
}

type Recipe struct {
	ID           int                `json:"id" db:"id"`
	Name         string             `json:"name" db:"name"`
	Description  string             `json:"description" db:"description"`
	PeopleAmount int                `json:"peopleAmount" db:"people_amount"`
	Steps        []string           `json:"steps" db:"steps"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
}

type MealType struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type MealPlan struct {
	ID          int       `json:"id" db:"id"`
	Date        time.Time `json:"date" db:"date"`
	MealTypeID  int       `json:"mealTypeId" db:"meal_type_id"`
	RecipeID    int       `json:"recipeId" db:"recipe_id"`
	PeopleCount int       `json:"peopleCount" db:"people_count"`

	// Joined fields
	MealTypeName string `json:"meal_type_name,omitempty"`
	RecipeName   string `json:"recipe_name,omitempty"`
}

type Shop struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type CreateIngredientRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Category string `json:"category" validate:"required,min=1,max=100"`
}

type CreateRecipeRequest struct {
	Name         string                  `json:"name" validate:"required,min=1,max=200"`
	Description  string                  `json:"description" validate:"required"`
	PeopleAmount int                     `json:"peopleAmount" validate:"required,min=1"`
	Steps        []string                `json:"steps" validate:"required"`
	Ingredients  []RecipeIngredientInput `json:"ingredients" validate:"required,dive"`
}

type RecipeIngredientInput struct {
	IngredientID int     `json:"ingredient_id" validate:"required,min=1"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	Unit         string  `json:"unit" validate:"required,min=1,max=50"`
	SortOrder    int     `json:"sort_order" validate:"min=0"`
}

type CreateMealTypeRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type CreateMealPlanRequest struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	MealTypeID  int    `json:"mealTypeId" validate:"required,min=1"`
	RecipeID    int    `json:"recipeId" validate:"required,min=1"`
	PeopleCount int    `json:"peopleCount" validate:"required,min=1"`
}

type UpdateMealPlanRequest struct {
	PeopleCount int `json:"peopleCount" validate:"required,min=1"`
}

type CreateShopRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}
