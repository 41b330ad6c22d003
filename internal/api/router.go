package api

import (
	"meal-planner/internal/config"
	"meal-planner/internal/database"
	"meal-planner/internal/handlers"
	"meal-planner/internal/websocket"

	"github.com/gin-gonic/gin"
)

func SetupRouter(db *database.DB, hub *websocket.Hub, cfg *config.Config) *gin.Engine {
	router := gin.Default()

	// Custom CORS middleware
	router.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Check if origin is allowed
		allowed := false
		for _, allowedOrigin := range cfg.CORS.AllowedOrigins {
			if origin == allowedOrigin {
				allowed = true
				break
			}
		}

		if allowed {
			c.Header("Access-Control-Allow-Origin", origin)
		}
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Length, Content-Type")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Initialize handlers
	ingredientHandler := handlers.NewIngredientHandler(db)
	recipeHandler := handlers.NewRecipeHandler(db)
	mealTypeHandler := handlers.NewMealTypeHandler(db)
	mealPlanHandler := handlers.NewMealPlanHandler(db, hub)
	shopHandler := handlers.NewShopHandler(db)
	shoppingListHandler := handlers.NewShoppingListHandler(db, hub)

	api := router.Group("/api")
	{
		// Ingredient catalog routes
		ingredients := api.Group("/ingredients")
		{
			ingredients.GET("", ingredientHandler.GetIngredients)
			ingredients.POST("", ingredientHandler.CreateIngredient)
			ingredients.PUT("/:id", ingredientHandler.UpdateIngredient)
			ingredients.DELETE("/:id", ingredientHandler.DeleteIngredient)
		}

		// Recipe routes
		recipes := api.Group("/recipes")
		{
			recipes.GET("", recipeHandler.GetRecipes)
			recipes.POST("", recipeHandler.CreateRecipe)
			recipes.GET("/:id", recipeHandler.GetRecipe)
			recipes.PUT("/:id", recipeHandler.UpdateRecipe)
			recipes.DELETE("/:id", recipeHandler.DeleteRecipe)
		}

		// Meal type routes
		mealTypes := api.Group("/meal-types")
		{
			mealTypes.GET("", mealTypeHandler.GetMealTypes)
			mealTypes.POST("", mealTypeHandler.CreateMealType)
			mealTypes.PUT("/:id", mealTypeHandler.UpdateMealType)
			mealTypes.DELETE("/:id", mealTypeHandler.DeleteMealType)
		}

		// Meal plan routes
		mealPlans := api.Group("/meal-plans")
		{
			mealPlans.GET("", mealPlanHandler.GetMealPlans)
			mealPlans.POST("", mealPlanHandler.CreateMealPlan)
			mealPlans.PUT("/:id", mealPlanHandler.UpdateMealPlan)
			mealPlans.DELETE("/:id", mealPlanHandler.DeleteMealPlan)
		}

		// Shop routes
		shops := api.Group("/shops")
		{
			shops.GET("", shopHandler.GetShops)
			shops.POST("", shopHandler.CreateShop)
			shops.DELETE("/:id", shopHandler.DeleteShop)
		}

		// Shopping list routes
		shoppingList := api.Group("/shopping-list")
		{
			shoppingList.GET("", shoppingListHandler.GetList)
			shoppingList.POST("/custom-item", shoppingListHandler.AddCustomItem)
			shoppingList.POST("/toggle", shoppingListHandler.ToggleItem)
			shoppingList.POST("/learn-order", shoppingListHandler.LearnOrder)
		}

		// WebSocket endpoint for live list updates
		api.GET("/ws", hub.ServeWS)
	}

	return router
}
