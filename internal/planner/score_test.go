package planner

import (
	"testing"

	"nigela/internal/menu"
	"nigela/internal/pantry"
)

func dish(name string, tags []string, cookMinutes int, ings ...menu.Ingredient) menu.Dish {
	return menu.Dish{
		Name:        name,
		MealType:    menu.MealLunch,
		Tags:        menu.ParseTags(tags),
		CookMinutes: cookMinutes,
		Difficulty:  2,
		Ingredients: ings,
	}
}

func TestScoreBonuses(t *testing.T) {
	stock := pantry.Snapshot{
		"rice": {Ingredient: "rice", QtyOnHand: 500},
	}
	none := map[string]bool{}

	cases := []struct {
		name string
		d    menu.Dish
		want float64
	}{
		{
			name: "jain quick dish",
			d:    dish("Jeera Rice", []string{"lunch:rice", "jain"}, 20, menu.Ingredient{Item: "rice", Qty: 150}),
			want: 13, // jain +10, quick +3
		},
		{
			name: "cuisine and kid-friendly",
			d:    dish("Curd Rice", []string{"lunch:rice", "cuisine:south", "kid-friendly"}, 30, menu.Ingredient{Item: "rice", Qty: 100}),
			want: 4, // cuisine +2, kid-friendly +2
		},
		{
			name: "no bonuses",
			d:    dish("Plain Rice", []string{"lunch:rice"}, 30, menu.Ingredient{Item: "rice", Qty: 100}),
			want: 0,
		},
		{
			name: "unavailable dish is disqualified",
			d:    dish("Veg Pulao", []string{"lunch:rice", "jain"}, 20, menu.Ingredient{Item: "mixed_veg", Qty: 200}),
			want: Disqualified,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Score(c.d, stock, none); got != c.want {
				t.Errorf("Score(%s): expected %v, got %v", c.d.Name, c.want, got)
			}
		})
	}
}

func TestScoreRepeatPenalty(t *testing.T) {
	stock := pantry.Snapshot{"rice": {Ingredient: "rice", QtyOnHand: 500}}
	d := dish("Jeera Rice", []string{"lunch:rice", "jain"}, 20, menu.Ingredient{Item: "rice", Qty: 150})

	fresh := Score(d, stock, map[string]bool{})
	repeated := Score(d, stock, map[string]bool{"jeera rice": true})
	if repeated != fresh-100 {
		t.Errorf("expected repeat penalty of 100, got fresh=%v repeated=%v", fresh, repeated)
	}
}

func TestScoreIsPure(t *testing.T) {
	stock := pantry.Snapshot{"rice": {Ingredient: "rice", QtyOnHand: 500}}
	used := map[string]bool{"something else": true}
	d := dish("Jeera Rice", []string{"lunch:rice", "jain"}, 20, menu.Ingredient{Item: "rice", Qty: 150})

	first := Score(d, stock, used)
	second := Score(d, stock, used)
	if first != second {
		t.Errorf("Score is not pure: %v vs %v", first, second)
	}
}
