package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"meal-planner/internal/database"
	"meal-planner/internal/models"
	"meal-planner/internal/shopping"
	"meal-planner/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ShoppingListHandler struct {
	db        *database.DB
	hub       *websocket.Hub
	validator *validator.Validate
}

func NewShoppingListHandler(db *database.DB, hub *websocket.Hub) *ShoppingListHandler {
	return &ShoppingListHandler{
		db:        db,
		hub:       hub,
		validator: validator.New(),
	}
}

// GetList recomputes the shopping list: every planned meal between today
// and untilDate is scaled to its people count, merged with the standing
// custom items and annotated with persisted checked state. With a shopId
// the learned order for that shop is applied; a shop without a learned
// order (or an unknown shop) falls back to category/name ordering.
func (h *ShoppingListHandler) GetList(c *gin.Context) {
	today := time.Now()
	until := today
	if raw := c.Query("untilDate"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			until = parsed
		}
	}

	shopID := 0
	if raw := c.Query("shopId"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			shopID = parsed
		}
	}

	plans, err := h.loadMealPlans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal plans"})
		return
	}

	recipes, err := h.loadRecipes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	custom, err := h.loadCustomItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch custom items"})
		return
	}

	checked, err := h.loadCheckedStates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item states"})
		return
	}

	var order map[string]int
	if shopID > 0 {
		order, err = h.loadShopOrder(c.Request.Context(), shopID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shop order"})
			return
		}
	}

	items := shopping.Aggregate(shopping.Input{
		Today:   today,
		Until:   until,
		Plans:   plans,
		Recipes: recipes,
		Custom:  custom,
		Checked: checked,
	})
	shopping.SortItems(items, order)

	c.JSON(http.StatusOK, models.ShoppingListResponse{
		UntilDate: until.Format("2006-01-02"),
		Items:     items,
	})
}

func (h *ShoppingListHandler) AddCustomItem(c *gin.Context) {
	var req models.CreateCustomItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var item models.CustomItem
	err := h.db.QueryRow(context.Background(),
		`INSERT INTO custom_shopping_items (name, category, quantity, unit)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, name, category, quantity, unit`,
		req.Name, req.Category, req.Quantity, req.Unit).Scan(
		&item.ID, &item.Name, &item.Category, &item.Quantity, &item.Unit)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create custom item"})
		return
	}

	key := shopping.CustomKey(item.Name, item.Category)
	h.hub.BroadcastListUpdate(gin.H{"item_key": key})

	c.JSON(http.StatusCreated, models.ShoppingListItem{
		ItemKey:  key,
		Name:     item.Name,
		Category: item.Category,
		Quantity: item.Quantity,
		Unit:     item.Unit,
		Checked:  false,
		Source:   shopping.SourceCustom,
	})
}

// ToggleItem persists the checked flag for one item key. State rows are
// created on first toggle and kept even when the key drops off the list,
// so re-adding the same item restores its prior state.
func (h *ShoppingListHandler) ToggleItem(c *gin.Context) {
	var req models.ToggleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.db.Exec(context.Background(),
		`INSERT INTO shopping_item_states (item_key, checked)
		 VALUES ($1, $2)
		 ON CONFLICT (item_key) DO UPDATE SET checked = EXCLUDED.checked`,
		req.ItemKey, *req.Checked)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item state"})
		return
	}

	h.hub.BroadcastItemUpdate(gin.H{"item_key": req.ItemKey, "checked": *req.Checked})

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// LearnOrder records one shopping trip's uncheck sequence for a shop and
// rebuilds that shop's learned order from the full trip history. The
// submission is all-or-nothing: an unknown shop or an unknown item key
// rejects it without touching stored state.
func (h *ShoppingListHandler) LearnOrder(c *gin.Context) {
	var req models.LearnOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	var shopExists bool
	err := h.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM shops WHERE id = $1)", req.ShopID).Scan(&shopExists)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify shop"})
		return
	}
	if !shopExists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}

	known, err := h.loadKnownItemKeys(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify item keys"})
		return
	}
	for _, key := range req.ItemKeys {
		if !known[key] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown item key: " + key})
			return
		}
	}

	tx, err := h.db.Begin(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record sequence"})
		return
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		"INSERT INTO shop_traversals (shop_id, sequence) VALUES ($1, $2)",
		req.ShopID, req.ItemKeys)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record sequence"})
		return
	}

	rows, err := tx.Query(ctx,
		"SELECT sequence FROM shop_traversals WHERE shop_id = $1 ORDER BY id", req.ShopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sequence history"})
		return
	}

	var history [][]string
	for rows.Next() {
		var sequence []string
		if err := rows.Scan(&sequence); err != nil {
			rows.Close()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan sequence"})
			return
		}
		history = append(history, sequence)
	}
	rows.Close()

	ranked := shopping.Rank(history)

	_, err = tx.Exec(ctx, "DELETE FROM shop_item_orders WHERE shop_id = $1", req.ShopID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rebuild order"})
		return
	}
	for idx, key := range ranked {
		_, err = tx.Exec(ctx,
			"INSERT INTO shop_item_orders (shop_id, item_key, sort_order) VALUES ($1, $2, $3)",
			req.ShopID, key, idx+1)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rebuild order"})
			return
		}
	}

	if err := tx.Commit(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rebuild order"})
		return
	}

	h.hub.BroadcastListUpdate(gin.H{"shop_id": req.ShopID})

	c.JSON(http.StatusOK, gin.H{"status": "learned"})
}

func (h *ShoppingListHandler) loadMealPlans(ctx context.Context) ([]models.MealPlan, error) {
	rows, err := h.db.Query(ctx,
		"SELECT id, date, meal_type_id, recipe_id, people_count FROM meal_plans")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []models.MealPlan
	for rows.Next() {
		var plan models.MealPlan
		if err := rows.Scan(&plan.ID, &plan.Date, &plan.MealTypeID, &plan.RecipeID, &plan.PeopleCount); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

func (h *ShoppingListHandler) loadRecipes(ctx context.Context) (map[int]models.Recipe, error) {
	rows, err := h.db.Query(ctx,
		`SELECT r.id, r.name, r.people_amount, ri.ingredient_id, ri.amount, ri.unit, i.name, i.category
		 FROM recipes r
		 JOIN recipe_ingredients ri ON ri.recipe_id = r.id
		 JOIN ingredients i ON i.id = ri.ingredient_id
		 ORDER BY r.id, ri.sort_order`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := make(map[int]models.Recipe)
	for rows.Next() {
		var (
			id, peopleAmount int
			name             string
			link             models.RecipeIngredient
		)
		if err := rows.Scan(&id, &name, &peopleAmount, &link.IngredientID, &link.Amount,
			&link.Unit, &link.IngredientName, &link.IngredientCategory); err != nil {
			return nil, err
		}
		recipe, ok := recipes[id]
		if !ok {
			recipe = models.Recipe{ID: id, Name: name, PeopleAmount: peopleAmount}
		}
		recipe.Ingredients = append(recipe.Ingredients, link)
		recipes[id] = recipe
	}
	return recipes, rows.Err()
}

func (h *ShoppingListHandler) loadCustomItems(ctx context.Context) ([]models.CustomItem, error) {
	rows, err := h.db.Query(ctx,
		"SELECT id, name, category, quantity, unit FROM custom_shopping_items ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.CustomItem
	for rows.Next() {
		var item models.CustomItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Quantity, &item.Unit); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (h *ShoppingListHandler) loadCheckedStates(ctx context.Context) (map[string]bool, error) {
	rows, err := h.db.Query(ctx, "SELECT item_key, checked FROM shopping_item_states")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	states := make(map[string]bool)
	for rows.Next() {
		var key string
		var checked bool
		if err := rows.Scan(&key, &checked); err != nil {
			return nil, err
		}
		states[key] = checked
	}
	return states, rows.Err()
}

func (h *ShoppingListHandler) loadShopOrder(ctx context.Context, shopID int) (map[string]int, error) {
	rows, err := h.db.Query(ctx,
		"SELECT item_key, sort_order FROM shop_item_orders WHERE shop_id = $1", shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	order := make(map[string]int)
	for rows.Next() {
		var key string
		var position int
		if err := rows.Scan(&key, &position); err != nil {
			return nil, err
		}
		order[key] = position
	}
	return order, rows.Err()
}

// loadKnownItemKeys collects every item key that appears in a current or
// historical list: keys derivable from the planned recipes, the standing
// custom items, persisted checked states and previously recorded trips.
func (h *ShoppingListHandler) loadKnownItemKeys(ctx context.Context) (map[string]bool, error) {
	known := make(map[string]bool)

	rows, err := h.db.Query(ctx,
		`SELECT DISTINCT ri.ingredient_id, ri.unit
		 FROM recipe_ingredients ri
		 JOIN meal_plans mp ON mp.recipe_id = ri.recipe_id`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var ingredientID int
		var unit string
		if err := rows.Scan(&ingredientID, &unit); err != nil {
			rows.Close()
			return nil, err
		}
		known[shopping.IngredientKey(ingredientID, unit)] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = h.db.Query(ctx, "SELECT name, category FROM custom_shopping_items")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var name string
		var category *string
		if err := rows.Scan(&name, &category); err != nil {
			rows.Close()
			return nil, err
		}
		known[shopping.CustomKey(name, category)] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = h.db.Query(ctx, "SELECT item_key FROM shopping_item_states")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			rows.Close()
			return nil, err
		}
		known[key] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = h.db.Query(ctx, "SELECT DISTINCT unnest(sequence) FROM shop_traversals")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			rows.Close()
			return nil, err
		}
		known[key] = true
	}
	rows.Close()
	return known, rows.Err()
}
