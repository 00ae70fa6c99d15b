package menu

import "strings"

// MealType is one of the fixed daily meal occasions.
type MealType string

const (
	MealBreakfast    MealType = "breakfast"
	MealMorningSnack MealType = "morning_snack"
	MealLunch        MealType = "lunch"
	MealEveningSnack MealType = "evening_snack"
	MealDinner       MealType = "dinner"
)

// MealOrder lists the meal types in the order they occur during the day.
var MealOrder = []MealType{MealBreakfast, MealMorningSnack, MealLunch, MealEveningSnack, MealDinner}

// TagKey returns the meal key used for slot tag lookups. Snack meals share
// the tags of their parent meal, so "morning_snack" looks up "morning:<slot>"
// tags. This is the normalization the planner relies on; keep it here so it
// stays a single testable function.
func (m MealType) TagKey() string {
	return strings.TrimSuffix(string(m), "_snack")
}

// IsSnack reports whether the meal is a snack occasion.
func (m MealType) IsSnack() bool {
	return strings.HasSuffix(string(m), "_snack")
}

// Ingredient is a single ingredient line of a dish. Qty of 0 means the
// quantity is unspecified ("salt to taste") and the pantry check skips it.
type Ingredient struct {
	Item string  `json:"item"`
	Qty  float64 `json:"qty"`
	Unit string  `json:"unit"`
}

// Dish represents one recipe in the catalogue.
type Dish struct {
	Name        string       `json:"name"`
	MealType    MealType     `json:"meal_type"`
	Tags        TagSet       `json:"tags"`
	CookMinutes int          `json:"cook_minutes"`
	Difficulty  int          `json:"difficulty"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
	FlavorText  string       `json:"flavor_text,omitempty"`
	Rarity      string       `json:"rarity,omitempty"`

	// Variant notes are attached at plan time, never persisted on the dish.
	VariantAdults string `json:"variant_adults,omitempty"`
	VariantKids   string `json:"variant_kids,omitempty"`
}

// Key identifies a dish in the catalogue. Dishes are de-duplicated by key.
type Key struct {
	Name     string
	MealType string
}

// Key returns the catalogue identity of the dish.
func (d Dish) Key() Key {
	return Key{
		Name:     strings.ToLower(strings.TrimSpace(d.Name)),
		MealType: strings.ToLower(strings.TrimSpace(string(d.MealType))),
	}
}
