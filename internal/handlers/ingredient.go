package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"meal-planner/internal/database"
	"meal-planner/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type IngredientHandler struct {
	db        *database.DB
	validator *validator.Validate
}

func NewIngredientHandler(db *database.DB) *IngredientHandler {
	return &IngredientHandler{
		db:        db,
		validator: validator.New(),
	}
}

func (h *IngredientHandler) GetIngredients(c *gin.Context) {
	rows, err := h.db.Query(context.Background(),
		"SELECT id, name, category FROM ingredients ORDER BY name")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ingredients"})
		return
	}
	defer rows.Close()

	ingredients := []models.Ingredient{}
	for rows.Next() {
		var ingredient models.Ingredient
		if err := rows.Scan(&ingredient.ID, &ingredient.Name, &ingredient.Category); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan ingredient"})
			return
		}
		ingredients = append(ingredients, ingredient)
	}

	c.JSON(http.StatusOK, ingredients)
}

func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	var req models.CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var ingredient models.Ingredient
	err := h.db.QueryRow(context.Background(),
		"INSERT INTO ingredients (name, category) VALUES ($1, $2) RETURNING id, name, category",
		req.Name, req.Category).Scan(&ingredient.ID, &ingredient.Name, &ingredient.Category)

	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ingredient name must be unique"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ingredient"})
		return
	}

	c.JSON(http.StatusCreated, ingredient)
}

func (h *IngredientHandler) UpdateIngredient(c *gin.Context) {
	ingredientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ingredient ID"})
		return
	}

	var req models.CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var ingredient models.Ingredient
	err = h.db.QueryRow(context.Background(),
		"UPDATE ingredients SET name = $1, category = $2 WHERE id = $3 RETURNING id, name, category",
		req.Name, req.Category, ingredientID).Scan(&ingredient.ID, &ingredient.Name, &ingredient.Category)

	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ingredient name must be unique"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		return
	}

	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) DeleteIngredient(c *gin.Context) {
	ingredientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ingredient ID"})
		return
	}

	result, err := h.db.Exec(context.Background(),
		"DELETE FROM ingredients WHERE id = $1", ingredientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete ingredient"})
		return
	}

	if result.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
