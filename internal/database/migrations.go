package database

import (
	"context"
	"fmt"
)

func Migrate(db *DB) error {
	var exists bool
	err := db.QueryRow(context.Background(),
		"SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = 'ingredients')").Scan(&exists)

	if err != nil {
		return fmt.Errorf("failed to check if tables exist: %w", err)
	}

	if !exists {
		_, err = db.Exec(context.Background(), `
			CREATE TABLE ingredients (
				id SERIAL PRIMARY KEY,
				name VARCHAR(200) NOT NULL UNIQUE,
				category VARCHAR(100) NOT NULL
			);

			CREATE TABLE recipes (
				id SERIAL PRIMARY KEY,
				name VARCHAR(200) NOT NULL,
				description TEXT NOT NULL,
				people_amount INTEGER NOT NULL,
				steps JSONB NOT NULL
			);

			CREATE TABLE recipe_ingredients (
				recipe_id INTEGER NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
				ingredient_id INTEGER NOT NULL REFERENCES ingredients(id) ON DELETE CASCADE,
				amount NUMERIC(10,2) NOT NULL,
				unit VARCHAR(50) NOT NULL,
				sort_order INTEGER NOT NULL,
				PRIMARY KEY (recipe_id, ingredient_id)
			);

			CREATE TABLE meal_types (
				id SERIAL PRIMARY KEY,
				name VARCHAR(100) NOT NULL UNIQUE
			);

			CREATE TABLE meal_plans (
				id SERIAL PRIMARY KEY,
				date DATE NOT NULL,
				meal_type_id INTEGER NOT NULL REFERENCES meal_types(id) ON DELETE CASCADE,
				recipe_id INTEGER NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
				people_count INTEGER NOT NULL
			);

			CREATE TABLE shops (
				id SERIAL PRIMARY KEY,
				name VARCHAR(120) NOT NULL UNIQUE
			);

			CREATE TABLE custom_shopping_items (
				id SERIAL PRIMARY KEY,
				name VARCHAR(200) NOT NULL,
				category VARCHAR(100),
				quantity NUMERIC(10,2),
				unit VARCHAR(50)
			);

			CREATE TABLE shopping_item_states (
				item_key VARCHAR(300) PRIMARY KEY,
				checked BOOLEAN NOT NULL DEFAULT FALSE
			);

			CREATE INDEX idx_meal_plans_date ON meal_plans(date);
		`)

		if err != nil {
			return fmt.Errorf("failed to create base tables: %w", err)
		}
	}

	// Check and create the shop ordering tables
	var traversalsExist bool
	err = db.QueryRow(context.Background(),
		"SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = 'shop_traversals')").Scan(&traversalsExist)

	if err != nil {
		return fmt.Errorf("failed to check shop_traversals table: %w", err)
	}

	if !traversalsExist {
		_, err = db.Exec(context.Background(), `
			CREATE TABLE shop_traversals (
				id SERIAL PRIMARY KEY,
				shop_id INTEGER NOT NULL REFERENCES shops(id) ON DELETE CASCADE,
				sequence TEXT[] NOT NULL,
				submitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);

			CREATE TABLE shop_item_orders (
				id SERIAL PRIMARY KEY,
				shop_id INTEGER NOT NULL REFERENCES shops(id) ON DELETE CASCADE,
				item_key VARCHAR(300) NOT NULL,
				sort_order INTEGER NOT NULL,
				UNIQUE(shop_id, item_key)
			);

			CREATE INDEX idx_shop_traversals_shop_id ON shop_traversals(shop_id);
			CREATE INDEX idx_shop_item_orders_shop_id ON shop_item_orders(shop_id);
		`)

		if err != nil {
			return fmt.Errorf("failed to create shop ordering tables: %w", err)
		}
	}

	return nil
}
