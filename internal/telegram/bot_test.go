package telegram

import (
	"strings"
	"testing"
	"time"

	"nigela/internal/config"
	"nigela/internal/menu"
	"nigela/internal/planner"
)

func TestIsAllowed(t *testing.T) {
	b := &Bot{cfg: &config.Config{TelegramAllowedUserIDs: []int64{42, 99}}}

	if !b.isAllowed(42) {
		t.Error("42 should be allowed")
	}
	if b.isAllowed(7) {
		t.Error("7 should not be allowed")
	}

	empty := &Bot{cfg: &config.Config{}}
	if empty.isAllowed(42) {
		t.Error("nobody is allowed when the list is empty")
	}
}

func TestFormatPlanMarkdown(t *testing.T) {
	plan := planner.DayPlan{
		Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Meals: map[menu.MealType]map[string]menu.Dish{
			menu.MealBreakfast: {
				"main_starch": {Name: "Ragi Dosa", CookMinutes: 20},
			},
			menu.MealDinner: {
				"khichdi": {Name: "Moong Dal Khichdi", CookMinutes: 25},
			},
		},
	}

	got := formatPlanMarkdown(plan)
	if !strings.Contains(got, "*Menu for Monday, 02 Jun*") {
		t.Errorf("missing header:\n%s", got)
	}
	if !strings.Contains(got, "*Breakfast*") || !strings.Contains(got, "*Dinner*") {
		t.Errorf("missing meal sections:\n%s", got)
	}
	if !strings.Contains(got, "• khichdi: Moong Dal Khichdi (25m)") {
		t.Errorf("missing dish line:\n%s", got)
	}
	if strings.Index(got, "*Breakfast*") > strings.Index(got, "*Dinner*") {
		t.Error("meals must appear in day order")
	}
}

func TestMealTitle(t *testing.T) {
	if got := mealTitle(menu.MealMorningSnack); got != "Morning Snack" {
		t.Errorf("mealTitle = %q, want Morning Snack", got)
	}
}
