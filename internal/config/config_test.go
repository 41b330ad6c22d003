package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "meal_planner", cfg.Database.Name)
	assert.NotEmpty(t, cfg.CORS.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("CORS_ORIGINS", "https://planner.example.com, https://staging.example.com")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, []string{"https://planner.example.com", "https://staging.example.com"},
		cfg.CORS.AllowedOrigins)
}

func TestSplitOriginsSkipsEmptyEntries(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitOrigins("a,, b ,"))
	assert.Nil(t, splitOrigins(""))
}
