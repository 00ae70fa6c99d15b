package catalog

import (
	"context"
	"fmt"

	"nigela/internal/menu"
	"nigela/internal/pantry"
	"nigela/internal/planner"
)

// Seed loads the starter pantry, dish catalogue and variant notes so a fresh
// install can plan a full day before any ingestion has run.
func (s *Store) Seed(ctx context.Context) error {
	for _, e := range seedPantry {
		if err := s.UpsertPantry(ctx, e); err != nil {
			return fmt.Errorf("failed to seed pantry: %w", err)
		}
	}

	if _, err := s.MergeDishes(ctx, seedDishes); err != nil {
		return fmt.Errorf("failed to seed dishes: %w", err)
	}

	for _, v := range seedVariants {
		if err := s.UpsertVariant(ctx, v.group, v.slot, v.notes); err != nil {
			return fmt.Errorf("failed to seed variants: %w", err)
		}
	}
	return nil
}

var seedPantry = []pantry.Entry{
	{Ingredient: "rice", Unit: "g", QtyOnHand: 3000, MinPar: 600},
	{Ingredient: "moong dal", Unit: "g", QtyOnHand: 1500, MinPar: 300},
	{Ingredient: "paneer", Unit: "g", QtyOnHand: 1200, MinPar: 300},
	{Ingredient: "ragi flour", Unit: "g", QtyOnHand: 1000, MinPar: 200},
	{Ingredient: "banana", Unit: "pc", QtyOnHand: 10, MinPar: 4},
	{Ingredient: "spinach", Unit: "g", QtyOnHand: 800, MinPar: 200},
	{Ingredient: "wheat flour", Unit: "g", QtyOnHand: 2000, MinPar: 500},
	{Ingredient: "jowar flour", Unit: "g", QtyOnHand: 1000, MinPar: 300},
	{Ingredient: "bajra flour", Unit: "g", QtyOnHand: 1000, MinPar: 300},
	{Ingredient: "yogurt", Unit: "g", QtyOnHand: 600, MinPar: 200},
	{Ingredient: "papaya", Unit: "g", QtyOnHand: 500, MinPar: 0},
	{Ingredient: "water", Unit: "ml", QtyOnHand: 10000, MinPar: 0},
}

var seedDishes = []menu.Dish{
	{
		Name:        "Ragi Dosa",
		MealType:    menu.MealBreakfast,
		Tags:        menu.ParseTags([]string{"breakfast:main_starch", "cuisine:south", "jain"}),
		CookMinutes: 20,
		Difficulty:  2,
		Ingredients: []menu.Ingredient{
			{Item: "ragi flour", Qty: 120, Unit: "g"},
			{Item: "water", Qty: 200, Unit: "ml"},
		},
		Steps:      []string{"Mix batter", "Rest 10m", "Cook on tawa 2m/side"},
		FlavorText: "Sizzle till the edges lift.",
		Rarity:     "rare",
	},
	{
		Name:        "Sprout Salad",
		MealType:    menu.MealBreakfast,
		Tags:        menu.ParseTags([]string{"breakfast:protein", "cuisine:gujarati", "kid-friendly", "jain"}),
		CookMinutes: 10,
		Difficulty:  1,
		Ingredients: []menu.Ingredient{{Item: "moong dal", Qty: 100, Unit: "g"}},
		Steps:       []string{"Boil/steam lightly", "Toss with lemon, salt"},
		FlavorText:  "Lemon wakes it up.",
		Rarity:      "common",
	},
	{
		Name:        "Flax Curd",
		MealType:    menu.MealBreakfast,
		Tags:        menu.ParseTags([]string{"breakfast:yogurt", "jain"}),
		CookMinutes: 5,
		Difficulty:  1,
		Ingredients: []menu.Ingredient{
			{Item: "yogurt", Qty: 200, Unit: "g"},
			{Item: "flaxseed", Qty: 0, Unit: "g"},
		},
		Steps:      []string{"Mix and rest 5m"},
		FlavorText: "Creamy and kind.",
		Rarity:     "common",
	},
	{
		Name:        "Papaya Slices",
		MealType:    menu.MealBreakfast,
		Tags:        menu.ParseTags([]string{"breakfast:fruit", "jain"}),
		CookMinutes: 2,
		Difficulty:  1,
		Ingredients: []menu.Ingredient{{Item: "papaya", Qty: 200, Unit: "g"}},
		Steps:       []string{"Slice and serve"},
		FlavorText:  "Sunshine on a plate.",
		Rarity:      "common",
	},
	{
		Name:        "Moong Dal Khichdi",
		MealType:    menu.MealDinner,
		Tags:        menu.ParseTags([]string{"dinner:khichdi", "cuisine:north", "jain", "kid-friendly"}),
		CookMinutes: 30,
		Difficulty:  2,
		Ingredients: []menu.Ingredient{
			{Item: "rice", Qty: 120, Unit: "g"},
			{Item: "moong dal", Qty: 80, Unit: "g"},
		},
		Steps:      []string{"Rinse rice+dal", "Pressure cook 3 whistles", "Ghee tadka"},
		FlavorText: "Comfort in a bowl.",
		Rarity:     "epic",
	},
	{
		Name:        "Paneer Tikki",
		MealType:    menu.MealDinner,
		Tags:        menu.ParseTags([]string{"dinner:protein_farsan", "cuisine:north", "kid-friendly", "jain"}),
		CookMinutes: 20,
		Difficulty:  2,
		Ingredients: []menu.Ingredient{{Item: "paneer", Qty: 200, Unit: "g"}},
		Steps:       []string{"Mash paneer", "Pan-sear patties"},
		FlavorText:  "Golden and proud.",
		Rarity:      "rare",
	},
	{
		Name:        "Jeera Rice",
		MealType:    menu.MealLunch,
		Tags:        menu.ParseTags([]string{"lunch:rice", "cuisine:north", "jain"}),
		CookMinutes: 25,
		Difficulty:  1,
		Ingredients: []menu.Ingredient{{Item: "rice", Qty: 150, Unit: "g"}},
		Steps:       []string{"Rinse rice", "Temper cumin in ghee", "Cook till fluffy"},
		FlavorText:  "Cumin does the talking.",
		Rarity:      "common",
	},
	{
		Name:        "Gujarati Dal",
		MealType:    menu.MealLunch,
		Tags:        menu.ParseTags([]string{"lunch:dal", "cuisine:gujarati", "jain", "kid-friendly"}),
		CookMinutes: 30,
		Difficulty:  2,
		Ingredients: []menu.Ingredient{{Item: "moong dal", Qty: 100, Unit: "g"}},
		Steps:       []string{"Pressure cook dal", "Sweet-sour tempering", "Simmer 10m"},
		FlavorText:  "Sweet, sour, home.",
		Rarity:      "common",
	},
}

var seedVariants = []struct {
	group planner.PersonGroup
	slot  string
	notes string
}{
	{planner.GroupAdult, "rice", "red/brown rice or quinoa, 1/2 cup"},
	{planner.GroupKids, "rice", "white rice with ghee, 1 cup"},
	{planner.GroupAdult, "bread", "millet roti/thepla, 1 pc"},
	{planner.GroupKids, "bread", "wheat roti/thepla, 2 pc with ghee"},
	{planner.GroupAdult, "protein", "lean tofu/paneer portion"},
	{planner.GroupKids, "protein", "paneer cubes or daal with ghee"},
}
