package handlers

import (
	"context"
	"net/http"
	"strconv"

	"meal-planner/internal/database"
	"meal-planner/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
)

const maxRecipeIngredients = 10

type RecipeHandler struct {
	db        *database.DB
	validator *validator.Validate
}

func NewRecipeHandler(db *database.DB) *RecipeHandler {
	return &RecipeHandler{
		db:        db,
		validator: validator.New(),
	}
}

func (h *RecipeHandler) GetRecipes(c *gin.Context) {
	rows, err := h.db.Query(context.Background(),
		"SELECT id, name, description, people_amount, steps FROM recipes ORDER BY name")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}
	defer rows.Close()

	recipes := []models.Recipe{}
	for rows.Next() {
		var recipe models.Recipe
		if err := rows.Scan(&recipe.ID, &recipe.Name, &recipe.Description,
			&recipe.PeopleAmount, &recipe.Steps); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan recipe"})
			return
		}
		recipes = append(recipes, recipe)
	}
	rows.Close()

	for i := range recipes {
		ingredients, err := h.loadIngredients(context.Background(), recipes[i].ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe ingredients"})
			return
		}
		recipes[i].Ingredients = ingredients
	}

	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	recipe, err := h.loadRecipe(context.Background(), recipeID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req models.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Ingredients) > maxRecipeIngredients {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Recipes can have at most 10 ingredients"})
		return
	}

	ctx := c.Request.Context()
	if ok, err := h.ingredientsExist(ctx, req.Ingredients); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify ingredients"})
		return
	} else if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "One or more ingredients do not exist"})
		return
	}

	tx, err := h.db.Begin(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}
	defer tx.Rollback(ctx)

	var recipeID int
	err = tx.QueryRow(ctx,
		"INSERT INTO recipes (name, description, people_amount, steps) VALUES ($1, $2, $3, $4) RETURNING id",
		req.Name, req.Description, req.PeopleAmount, req.Steps).Scan(&recipeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	if err := insertRecipeIngredients(ctx, tx, recipeID, req.Ingredients); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe ingredients"})
		return
	}

	if err := tx.Commit(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	recipe, err := h.loadRecipe(ctx, recipeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	recipeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	var req models.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Ingredients) > maxRecipeIngredients {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Recipes can have at most 10 ingredients"})
		return
	}

	ctx := c.Request.Context()
	if ok, err := h.ingredientsExist(ctx, req.Ingredients); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify ingredients"})
		return
	} else if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "One or more ingredients do not exist"})
		return
	}

	tx, err := h.db.Begin(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		"UPDATE recipes SET name = $1, description = $2, people_amount = $3, steps = $4 WHERE id = $5",
		req.Name, req.Description, req.PeopleAmount, req.Steps, recipeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}
	if result.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	// Ingredients are replaced wholesale on update
	if _, err := tx.Exec(ctx, "DELETE FROM recipe_ingredients WHERE recipe_id = $1", recipeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe ingredients"})
		return
	}
	if err := insertRecipeIngredients(ctx, tx, recipeID, req.Ingredients); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe ingredients"})
		return
	}

	if err := tx.Commit(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	recipe, err := h.loadRecipe(ctx, recipeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	recipeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	result, err := h.db.Exec(context.Background(),
		"DELETE FROM recipes WHERE id = $1", recipeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	if result.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *RecipeHandler) loadRecipe(ctx context.Context, recipeID int) (models.Recipe, error) {
	var recipe models.Recipe
	err := h.db.QueryRow(ctx,
		"SELECT id, name, description, people_amount, steps FROM recipes WHERE id = $1",
		recipeID).Scan(&recipe.ID, &recipe.Name, &recipe.Description, &recipe.PeopleAmount, &recipe.Steps)
	if err != nil {
		return recipe, err
	}

	recipe.Ingredients, err = h.loadIngredients(ctx, recipeID)
	return recipe, err
}

func (h *RecipeHandler) loadIngredients(ctx context.Context, recipeID int) ([]models.RecipeIngredient, error) {
	rows, err := h.db.Query(ctx,
		`SELECT ri.ingredient_id, ri.amount, ri.unit, ri.sort_order, i.name, i.category
		 FROM recipe_ingredients ri
		 JOIN ingredients i ON i.id = ri.ingredient_id
		 WHERE ri.recipe_id = $1
		 ORDER BY ri.sort_order`, recipeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ingredients := []models.RecipeIngredient{}
	for rows.Next() {
		var link models.RecipeIngredient
		if err := rows.Scan(&link.IngredientID, &link.Amount, &link.Unit, &link.SortOrder,
			&link.IngredientName, &link.IngredientCategory); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, link)
	}
	return ingredients, rows.Err()
}

func (h *RecipeHandler) ingredientsExist(ctx context.Context, links []models.RecipeIngredientInput) (bool, error) {
	ids := make([]int, 0, len(links))
	seen := make(map[int]bool)
	for _, link := range links {
		if !seen[link.IngredientID] {
			seen[link.IngredientID] = true
			ids = append(ids, link.IngredientID)
		}
	}
	if len(ids) == 0 {
		return true, nil
	}

	var count int
	err := h.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM ingredients WHERE id = ANY($1)", ids).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == len(ids), nil
}

func insertRecipeIngredients(ctx context.Context, tx pgx.Tx, recipeID int, links []models.RecipeIngredientInput) error {
	for _, link := range links {
		_, err := tx.Exec(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount, unit, sort_order)
			 VALUES ($1, $2, $3, $4, $5)`,
			recipeID, link.IngredientID, link.Amount, link.Unit, link.SortOrder)
		if err != nil {
			return err
		}
	}
	return nil
}
