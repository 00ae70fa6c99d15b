package planner

import "nigela/internal/menu"

// MealSlots is one meal occasion and its ordered slot list.
type MealSlots struct {
	Meal  menu.MealType
	Slots []string
}

// Template is the fixed meal-to-slots mapping a day's plan is built from.
// It is static configuration; changing it changes the shape of every plan.
type Template []MealSlots

// DefaultTemplate is the household's five-meal day.
func DefaultTemplate() Template {
	return Template{
		{Meal: menu.MealBreakfast, Slots: []string{"main_starch", "protein", "yogurt", "fruit"}},
		{Meal: menu.MealMorningSnack, Slots: []string{"fruit", "nuts", "beverage"}},
		{Meal: menu.MealLunch, Slots: []string{"salad", "dal", "rice", "roti", "vegetable", "farsan"}},
		{Meal: menu.MealEveningSnack, Slots: []string{"farsan", "tea", "light_bite"}},
		{Meal: menu.MealDinner, Slots: []string{"soup", "khichdi", "bread", "vegetable_west", "protein_farsan", "digestif"}},
	}
}
