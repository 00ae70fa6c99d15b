package pantry

import (
	"sort"
	"testing"

	"nigela/internal/menu"
)

func testSnapshot() Snapshot {
	return Snapshot{
		"rice":      {Ingredient: "rice", Unit: "g", QtyOnHand: 500, MinPar: 100},
		"moong dal": {Ingredient: "moong dal", Unit: "g", QtyOnHand: 50, MinPar: 300},
		"mixed_veg": {Ingredient: "mixed_veg", Unit: "g", QtyOnHand: 0, MinPar: 200},
	}
}

func TestCanCook(t *testing.T) {
	stock := testSnapshot()

	cases := []struct {
		name string
		dish menu.Dish
		want bool
	}{
		{
			name: "all ingredients covered",
			dish: menu.Dish{Name: "Jeera Rice", Ingredients: []menu.Ingredient{{Item: "rice", Qty: 150, Unit: "g"}}},
			want: true,
		},
		{
			name: "one ingredient short",
			dish: menu.Dish{Name: "Veg Pulao", Ingredients: []menu.Ingredient{
				{Item: "rice", Qty: 150, Unit: "g"},
				{Item: "mixed_veg", Qty: 200, Unit: "g"},
			}},
			want: false,
		},
		{
			name: "unknown ingredient treated as zero stock",
			dish: menu.Dish{Name: "Paneer Tikki", Ingredients: []menu.Ingredient{{Item: "paneer", Qty: 200, Unit: "g"}}},
			want: false,
		},
		{
			name: "zero quantity is exempt",
			dish: menu.Dish{Name: "Plain Rice", Ingredients: []menu.Ingredient{
				{Item: "rice", Qty: 150, Unit: "g"},
				{Item: "salt", Qty: 0, Unit: "tsp"},
			}},
			want: true,
		},
		{
			name: "no ingredients is always available",
			dish: menu.Dish{Name: "Water"},
			want: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := stock.CanCook(c.dish); got != c.want {
				t.Errorf("CanCook(%s): expected %v, got %v", c.dish.Name, c.want, got)
			}
		})
	}
}

func TestOnHandNormalizesNames(t *testing.T) {
	stock := testSnapshot()
	if got := stock.OnHand(" Rice "); got != 500 {
		t.Errorf("expected 500, got %v", got)
	}
	if got := stock.OnHand("ghee"); got != 0 {
		t.Errorf("expected 0 for absent ingredient, got %v", got)
	}
}

func TestBelowPar(t *testing.T) {
	low := testSnapshot().BelowPar()
	var names []string
	for _, e := range low {
		names = append(names, e.Ingredient)
	}
	sort.Strings(names)
	want := []string{"mixed_veg", "moong dal"}
	if len(names) != len(want) || names[0] != want[0] || names[1] != want[1] {
		t.Errorf("expected %v below par, got %v", want, names)
	}
}
