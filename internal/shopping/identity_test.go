package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIngredientKey(t *testing.T) {
	assert.Equal(t, "ingredient:12|kg", IngredientKey(12, "kg"))

	// Unit is part of the identity so amounts in different units never merge
	assert.NotEqual(t, IngredientKey(12, "kg"), IngredientKey(12, "g"))

	// Unit casing and whitespace do not change the identity
	assert.Equal(t, IngredientKey(12, "kg"), IngredientKey(12, " KG "))
}

func TestCustomKey(t *testing.T) {
	category := "Household"

	assert.Equal(t, "custom:napkins|household", CustomKey("Napkins", &category))
	assert.Equal(t, "custom:napkins|", CustomKey("napkins", nil))
	assert.NotEqual(t, CustomKey("Napkins", &category), CustomKey("Napkins", nil))

	// Same real-world item always normalizes to the same key
	messy := " household "
	assert.Equal(t, CustomKey("Napkins", &category), CustomKey("  napkins", &messy))
}

func TestKeyNamespacesNeverCollide(t *testing.T) {
	name := "ingredient:1|kg"
	assert.NotEqual(t, IngredientKey(1, "kg"), CustomKey(name, nil))
}
