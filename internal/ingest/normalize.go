package ingest

import (
	"regexp"
	"strings"

	"nigela/internal/menu"
)

var dishLine = regexp.MustCompile(`^\s*(?:-|•|\*)?\s*([A-Za-z0-9 ()/&,+.'-]{3,80})\s*$`)

// slotKeyword maps a meal:slot tag to the dish-name keywords that imply it.
// Order matters: the first matching slot decides the meal type when no hint
// is given.
type slotKeyword struct {
	tag      string
	keywords []string
}

var slotKeywords = []slotKeyword{
	{"breakfast:main_starch", []string{"dosa", "idli", "paratha", "thepla", "pancake", "upma", "poha"}},
	{"breakfast:protein", []string{"moong", "sprout", "paneer", "chilla", "dal pancake"}},
	{"breakfast:yogurt", []string{"curd", "yogurt", "lassi"}},
	{"breakfast:fruit", []string{"banana", "papaya", "mango", "fruit", "orange"}},
	{"lunch:salad", []string{"salad", "kachumber"}},
	{"lunch:dal", []string{"dal", "kadhi", "sambar", "rasam"}},
	{"lunch:rice", []string{"rice", "pulao", "biryani", "quinoa"}},
	{"lunch:roti", []string{"roti", "phulka", "chapati", "thepla", "bhakri"}},
	{"lunch:vegetable", []string{"sabzi", "bhindi", "aloo", "baingan", "gobi", "beans"}},
	{"lunch:farsan", []string{"dhokla", "khaman", "patra", "sev", "farsan"}},
	{"dinner:soup", []string{"soup", "broth", "ramen"}},
	{"dinner:khichdi", []string{"khichdi", "kichdi", "risotto"}},
	{"dinner:bread", []string{"paratha", "bhakri", "dosa", "thepla", "naan"}},
	{"dinner:vegetable_west", []string{"broccoli", "zucchini", "stir-fry", "bake", "grill"}},
	{"dinner:protein_farsan", []string{"tikki", "muthiya", "paneer", "tofu"}},
	{"dinner:digestif", []string{"ajwain", "fennel", "saunf", "haritaki"}},
}

// GuessTags infers slot tags from keywords in the dish name. Every ingested
// dish carries the household's baseline dietary flags; a dish whose name
// matches no slot for the hinted meal falls into that meal's misc slot.
func GuessTags(name, mealHint, cuisineHint string) []string {
	low := strings.ToLower(name)
	tags := []string{"jain", "vegetarian"}
	if cuisineHint != "" {
		tags = append(tags, "cuisine:"+strings.ToLower(cuisineHint))
	}
	for _, sk := range slotKeywords {
		for _, kw := range sk.keywords {
			if strings.Contains(low, kw) {
				tags = append(tags, sk.tag)
				break
			}
		}
	}
	if mealHint != "" {
		hinted := false
		for _, t := range tags {
			if strings.HasPrefix(t, mealHint+":") {
				hinted = true
				break
			}
		}
		if !hinted {
			tags = append(tags, mealHint+":misc")
		}
	}
	return tags
}

// TextToDishes turns a pasted list of dish names (one per line, optional
// bullets) into catalogue entries with guessed tags and placeholder recipe
// details. Lines that don't look like dish names are skipped.
func TextToDishes(rawText, mealHint, cuisineHint string) []menu.Dish {
	var out []menu.Dish
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := dishLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		tags := GuessTags(name, mealHint, cuisineHint)

		mealType := mealHint
		if mealType == "" {
			mealType = "dinner"
			for _, t := range tags {
				if i := strings.Index(t, ":"); i > 0 && !strings.HasPrefix(t, "cuisine:") {
					mealType = t[:i]
					break
				}
			}
		}

		out = append(out, menu.Dish{
			Name:        name,
			MealType:    menu.MealType(mealType),
			Tags:        menu.ParseTags(tags),
			CookMinutes: 20,
			Difficulty:  2,
			Ingredients: []menu.Ingredient{{Item: "salt", Qty: 1, Unit: "tsp"}},
			Steps:       []string{"Prep ingredients", "Cook to taste"},
			FlavorText:  "Nigela whispers: keep it gentle.",
			Rarity:      "common",
		})
	}
	return out
}
