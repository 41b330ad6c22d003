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

type ShopHandler struct {
	db        *database.DB
	validator *validator.Validate
}

func NewShopHandler(db *database.DB) *ShopHandler {
	return &ShopHandler{
		db:        db,
		validator: validator.New(),
	}
}

func (h *ShopHandler) GetShops(c *gin.Context) {
	rows, err := h.db.Query(context.Background(),
		"SELECT id, name FROM shops ORDER BY name")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shops"})
		return
	}
	defer rows.Close()

	shops := []models.Shop{}
	for rows.Next() {
		var shop models.Shop
		if err := rows.Scan(&shop.ID, &shop.Name); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan shop"})
			return
		}
		shops = append(shops, shop)
	}

	c.JSON(http.StatusOK, shops)
}

func (h *ShopHandler) CreateShop(c *gin.Context) {
	var req models.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var shop models.Shop
	err := h.db.QueryRow(context.Background(),
		"INSERT INTO shops (name) VALUES ($1) RETURNING id, name",
		req.Name).Scan(&shop.ID, &shop.Name)

	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Shop name must be unique"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shop"})
		return
	}

	c.JSON(http.StatusCreated, shop)
}

func (h *ShopHandler) DeleteShop(c *gin.Context) {
	shopID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop ID"})
		return
	}

	result, err := h.db.Exec(context.Background(),
		"DELETE FROM shops WHERE id = $1", shopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete shop"})
		return
	}

	if result.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
