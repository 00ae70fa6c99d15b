package cards

import (
	"bytes"
	"testing"
	"time"

	"nigela/internal/menu"
	"nigela/internal/planner"
)

func TestNeedsCard(t *testing.T) {
	cases := []struct {
		name string
		dish menu.Dish
		want bool
	}{
		{
			name: "real cooking",
			dish: menu.Dish{Name: "Gujarati Dal", CookMinutes: 30, Difficulty: 2,
				Ingredients: []menu.Ingredient{{Item: "dal", Qty: 100, Unit: "g"}},
				Steps:       []string{"Pressure cook", "Add tempering"}},
			want: true,
		},
		{
			name: "sliced fruit by name",
			dish: menu.Dish{Name: "Papaya Slices", CookMinutes: 5, Difficulty: 1},
			want: false,
		},
		{
			name: "very quick item",
			dish: menu.Dish{Name: "Warm Milk", CookMinutes: 3, Difficulty: 1},
			want: false,
		},
		{
			name: "quick but tempering",
			dish: menu.Dish{Name: "Jeera Tadka", CookMinutes: 4, Difficulty: 1},
			want: true,
		},
		{
			name: "two trivial ingredients",
			dish: menu.Dish{Name: "Nimbu Pani", CookMinutes: 8,
				Ingredients: []menu.Ingredient{{Item: "lemon", Qty: 1}, {Item: "water", Qty: 200, Unit: "ml"}},
				Steps:       []string{"Squeeze", "Stir well", "Chill"}},
			want: false,
		},
		{
			name: "short steps that only arrange",
			dish: menu.Dish{Name: "Curd", CookMinutes: 10,
				Ingredients: []menu.Ingredient{{Item: "curd", Qty: 100, Unit: "g"}, {Item: "flax", Qty: 5, Unit: "g"}, {Item: "jaggery", Qty: 5, Unit: "g"}},
				Steps:       []string{"Mix and serve"}},
			want: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NeedsCard(tc.dish); got != tc.want {
				t.Errorf("NeedsCard(%s) = %v, want %v", tc.dish.Name, got, tc.want)
			}
		})
	}
}

func testPlan() planner.DayPlan {
	return planner.DayPlan{
		Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Meals: map[menu.MealType]map[string]menu.Dish{
			menu.MealBreakfast: {
				"fruit": {Name: "Papaya Slices", CookMinutes: 5},
				"main_starch": {Name: "Ragi Dosa", CookMinutes: 20, Difficulty: 2,
					Ingredients: []menu.Ingredient{{Item: "ragi flour", Qty: 120, Unit: "g"}},
					Steps:       []string{"Mix batter", "Rest", "Cook on tawa"}},
			},
			menu.MealLunch: {
				"dal": {Name: "Gujarati Dal", CookMinutes: 30, Difficulty: 2,
					Ingredients: []menu.Ingredient{{Item: "toor dal", Qty: 100, Unit: "g"}},
					Steps:       []string{"Pressure cook", "Temper", "Simmer"}},
			},
		},
	}
}

func TestFilterForCards(t *testing.T) {
	dishes := FilterForCards(testPlan())
	if len(dishes) != 2 {
		t.Fatalf("expected 2 card-worthy dishes, got %d", len(dishes))
	}
	if dishes[0].Name != "Ragi Dosa" || dishes[1].Name != "Gujarati Dal" {
		t.Errorf("expected day order [Ragi Dosa, Gujarati Dal], got [%s, %s]", dishes[0].Name, dishes[1].Name)
	}
}

func TestSimpleItems(t *testing.T) {
	simple := SimpleItems(testPlan())
	if got := simple[menu.MealBreakfast]; len(got) != 1 || got[0] != "Papaya Slices" {
		t.Errorf("expected breakfast simple item Papaya Slices, got %v", got)
	}
	if _, ok := simple[menu.MealLunch]; ok {
		t.Error("lunch has no simple items")
	}
}

func TestGenerateProducesPDF(t *testing.T) {
	var buf bytes.Buffer
	dishes := FilterForCards(testPlan())

	if err := Generate(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), dishes, &buf); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output does not look like a PDF: %q", buf.Bytes()[:16])
	}
}
