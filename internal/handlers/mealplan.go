package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"meal-planner/internal/database"
	"meal-planner/internal/models"
	"meal-planner/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type MealPlanHandler struct {
	db        *database.DB
	hub       *websocket.Hub
	validator *validator.Validate
}

func NewMealPlanHandler(db *database.DB, hub *websocket.Hub) *MealPlanHandler {
	return &MealPlanHandler{
		db:        db,
		hub:       hub,
		validator: validator.New(),
	}
}

func (h *MealPlanHandler) GetMealPlans(c *gin.Context) {
	rows, err := h.db.Query(context.Background(),
		`SELECT mp.id, mp.date, mp.meal_type_id, mp.recipe_id, mp.people_count, mt.name, r.name
		 FROM meal_plans mp
		 JOIN meal_types mt ON mt.id = mp.meal_type_id
		 JOIN recipes r ON r.id = mp.recipe_id
		 ORDER BY mp.date, mt.name`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal plans"})
		return
	}
	defer rows.Close()

	plans := []gin.H{}
	for rows.Next() {
		var plan models.MealPlan
		if err := rows.Scan(&plan.ID, &plan.Date, &plan.MealTypeID, &plan.RecipeID,
			&plan.PeopleCount, &plan.MealTypeName, &plan.RecipeName); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan meal plan"})
			return
		}
		plans = append(plans, mealPlanResponse(plan))
	}

	c.JSON(http.StatusOK, plans)
}

func (h *MealPlanHandler) CreateMealPlan(c *gin.Context) {
	var req models.CreateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
		return
	}

	var mealTypeName string
	err = h.db.QueryRow(context.Background(),
		"SELECT name FROM meal_types WHERE id = $1", req.MealTypeID).Scan(&mealTypeName)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal type not found"})
		return
	}

	var recipeName string
	err = h.db.QueryRow(context.Background(),
		"SELECT name FROM recipes WHERE id = $1", req.RecipeID).Scan(&recipeName)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	var plan models.MealPlan
	err = h.db.QueryRow(context.Background(),
		`INSERT INTO meal_plans (date, meal_type_id, recipe_id, people_count)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, date, meal_type_id, recipe_id, people_count`,
		date, req.MealTypeID, req.RecipeID, req.PeopleCount).Scan(
		&plan.ID, &plan.Date, &plan.MealTypeID, &plan.RecipeID, &plan.PeopleCount)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create meal plan"})
		return
	}

	plan.MealTypeName = mealTypeName
	plan.RecipeName = recipeName

	h.hub.BroadcastListUpdate(gin.H{"meal_plan_id": plan.ID})

	c.JSON(http.StatusCreated, mealPlanResponse(plan))
}

func (h *MealPlanHandler) UpdateMealPlan(c *gin.Context) {
	planID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal plan ID"})
		return
	}

	var req models.UpdateMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var plan models.MealPlan
	err = h.db.QueryRow(context.Background(),
		`UPDATE meal_plans SET people_count = $1 WHERE id = $2
		 RETURNING id, date, meal_type_id, recipe_id, people_count`,
		req.PeopleCount, planID).Scan(
		&plan.ID, &plan.Date, &plan.MealTypeID, &plan.RecipeID, &plan.PeopleCount)

	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal plan not found"})
		return
	}

	h.db.QueryRow(context.Background(),
		"SELECT name FROM meal_types WHERE id = $1", plan.MealTypeID).Scan(&plan.MealTypeName)
	h.db.QueryRow(context.Background(),
		"SELECT name FROM recipes WHERE id = $1", plan.RecipeID).Scan(&plan.RecipeName)

	h.hub.BroadcastListUpdate(gin.H{"meal_plan_id": plan.ID})

	c.JSON(http.StatusOK, mealPlanResponse(plan))
}

func (h *MealPlanHandler) DeleteMealPlan(c *gin.Context) {
	planID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal plan ID"})
		return
	}

	result, err := h.db.Exec(context.Background(),
		"DELETE FROM meal_plans WHERE id = $1", planID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete meal plan"})
		return
	}

	if result.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal plan not found"})
		return
	}

	h.hub.BroadcastListUpdate(gin.H{"meal_plan_id": planID})

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Dates go over the wire as plain YYYY-MM-DD, matching the planner grid.
func mealPlanResponse(plan models.MealPlan) gin.H {
	return gin.H{
		"id":             plan.ID,
		"date":           plan.Date.Format("2006-01-02"),
		"mealTypeId":     plan.MealTypeID,
		"recipeId":       plan.RecipeID,
		"peopleCount":    plan.PeopleCount,
		"meal_type_name": plan.MealTypeName,
		"recipe_name":    plan.RecipeName,
	}
}
