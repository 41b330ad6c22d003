package shopping

import "errors"

// ErrInvalidServings is returned when a recipe's base servings or a meal
// plan's people count is not positive.
var ErrInvalidServings = errors.New("servings must be positive")

// Scale converts a recipe ingredient amount declared for baseServings
// people into the amount needed for peopleCount people. The result is
// exact; rounding is left to presentation.
func Scale(amount float64, baseServings, peopleCount int) (float64, error) {
	if baseServings <= 0 || peopleCount <= 0 {
		return 0, ErrInvalidServings
	}
	return amount * float64(peopleCount) / float64(baseServings), nil
}
