package models

type ShoppingListItem struct {
	ItemKey  string   `json:"item_key"`
	Name     string   `json:"name"`
	Category *string  `json:"category"`
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
	Checked  bool     `json:"checked"`
	Source   string   `json:"source"` // "recipe" or "custom"
}

type ShoppingListResponse struct {
	UntilDate string             `json:"untilDate"`
	Items     []ShoppingListItem `json:"items"`
}

type CustomItem struct {
	ID       int      `json:"id" db:"id"`
	Name     string   `json:"name" db:"name"`
	Category *string  `json:"category" db:"category"`
	Quantity *float64 `json:"quantity" db:"quantity"`
	Unit     *string  `json:"unit" db:"unit"`
}

type CreateCustomItemRequest struct {
	Name     string   `json:"name" validate:"required,min=1,max=200"`
	Category *string  `json:"category" validate:"omitempty,max=100"`
	Quantity *float64 `json:"quantity" validate:"omitempty,gt=0"`
	Unit     *string  `json:"unit" validate:"omitempty,max=50"`
}

type ToggleItemRequest struct {
	ItemKey string `json:"item_key" validate:"required"`
	Checked *bool  `json:"checked" validate:"required"`
}

type LearnOrderRequest struct {
	ShopID   int      `json:"shopId" validate:"required,min=1"`
	ItemKeys []string `json:"itemKeys" validate:"required,min=1,dive,required"`
}
