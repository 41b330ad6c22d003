package handlers

import (
	"context"
	"net/http"
	"strconv"

	"meal-planner/internal/database"
	"meal-planner/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type MealTypeHandler struct {
	db        *database.DB
	validator *validator.Validate
}

func NewMealTypeHandler(db *database.DB) *MealTypeHandler {
	return &MealTypeHandler{
		db:        db,
		validator: validator.New(),
	}
}

func (h *MealTypeHandler) GetMealTypes(c *gin.Context) {
	rows, err := h.db.Query(context.Background(),
		"SELECT id, name FROM meal_types ORDER BY name")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal types"})
		return
	}
	defer rows.Close()

	mealTypes := []models.MealType{}
	for rows.Next() {
		var mealType models.MealType
		if err := rows.Scan(&mealType.ID, &mealType.Name); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan meal type"})
			return
		}
		mealTypes = append(mealTypes, mealType)
	}

	c.JSON(http.StatusOK, mealTypes)
}

func (h *MealTypeHandler) CreateMealType(c *gin.Context) {
	var req models.CreateMealTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var mealType models.MealType
	err := h.db.QueryRow(context.Background(),
		"INSERT INTO meal_types (name) VALUES ($1) RETURNING id, name",
		req.Name).Scan(&mealType.ID, &mealType.Name)

	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Meal type name must be unique"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create meal type"})
		return
	}

	c.JSON(http.StatusCreated, mealType)
}

func (h *MealTypeHandler) UpdateMealType(c *gin.Context) {
	mealTypeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal type ID"})
		return
	}

	var req models.CreateMealTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var mealType models.MealType
	err = h.db.QueryRow(context.Background(),
		"UPDATE meal_types SET name = $1 WHERE id = $2 RETURNING id, name",
		req.Name, mealTypeID).Scan(&mealType.ID, &mealType.Name)

	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Meal type name must be unique"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal type not found"})
		return
	}

	c.JSON(http.StatusOK, mealType)
}

func (h *MealTypeHandler) DeleteMealType(c *gin.Context) {
	mealTypeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal type ID"})
		return
	}

	result, err := h.db.Exec(context.Background(),
		"DELETE FROM meal_types WHERE id = $1", mealTypeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete meal type"})
		return
	}

	if result.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal type not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
