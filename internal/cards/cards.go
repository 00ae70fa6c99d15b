// Package cards renders printable cook cards for a day plan. Each dish that
// needs real cooking instructions gets one collectible-style card; trivially
// simple items (sliced fruit, plain curd) are filtered out so the cook isn't
// handed a recipe for cutting a papaya.
package cards

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"nigela/internal/menu"
	"nigela/internal/planner"
)

var simpleNameKeywords = []string{
	"slice", "slices", "bowl", "fresh", "cut", "chopped",
	"raw", "plain", "simple", "basic",
}

var simpleStepKeywords = []string{
	"slice", "cut", "chop", "arrange", "serve", "mix and serve",
}

var trivialIngredients = map[string]bool{
	"salt": true, "water": true, "lemon": true, "honey": true, "sugar": true,
}

// NeedsCard reports whether a dish warrants a full cook card.
func NeedsCard(d menu.Dish) bool {
	name := strings.ToLower(d.Name)

	for _, kw := range simpleNameKeywords {
		if strings.Contains(name, kw) {
			return false
		}
	}

	if d.CookMinutes <= 5 {
		// Quick spice work still deserves instructions.
		for _, kw := range []string{"tadka", "tempering", "masala", "spice"} {
			if strings.Contains(name, kw) {
				return true
			}
		}
		return false
	}

	if len(d.Steps) <= 2 {
		steps := strings.ToLower(strings.Join(d.Steps, " "))
		for _, kw := range simpleStepKeywords {
			if strings.Contains(steps, kw) {
				return false
			}
		}
	}

	if len(d.Ingredients) <= 2 && len(d.Ingredients) > 0 {
		all := true
		for _, ing := range d.Ingredients {
			if !trivialIngredients[strings.ToLower(ing.Item)] {
				all = false
				break
			}
		}
		if all {
			return false
		}
	}

	if d.Difficulty <= 1 && d.CookMinutes <= 10 {
		for _, kw := range []string{"fruit", "banana"} {
			if strings.Contains(name, kw) {
				return false
			}
		}
	}

	return true
}

// FilterForCards returns the dishes of a plan that need cards, in day order.
func FilterForCards(plan planner.DayPlan) []menu.Dish {
	var out []menu.Dish
	for _, meal := range menu.MealOrder {
		slots := plan.Meals[meal]
		names := make([]string, 0, len(slots))
		for slot := range slots {
			names = append(names, slot)
		}
		sort.Strings(names)
		for _, slot := range names {
			if d := slots[slot]; NeedsCard(d) {
				out = append(out, d)
			}
		}
	}
	return out
}

// SimpleItems lists the dishes that were skipped, grouped by meal, so the
// menu overview can still mention them.
func SimpleItems(plan planner.DayPlan) map[menu.MealType][]string {
	out := make(map[menu.MealType][]string)
	for _, meal := range menu.MealOrder {
		for _, d := range plan.Meals[meal] {
			if !NeedsCard(d) {
				out[meal] = append(out[meal], d.Name)
			}
		}
		sort.Strings(out[meal])
		if len(out[meal]) == 0 {
			delete(out, meal)
		}
	}
	return out
}

var rarityColors = map[string][3]int{
	"common":    {46, 125, 50},
	"rare":      {21, 101, 192},
	"epic":      {106, 27, 154},
	"legendary": {255, 160, 0},
}

// Generate writes the cook-card PDF for the given dishes to w.
func Generate(day time.Time, dishes []menu.Dish, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(13, 71, 161)
	pdf.CellFormat(0, 12, fmt.Sprintf("Nigela Cook Cards - %s", day.Format("January 02, 2006")), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	for _, d := range dishes {
		drawCard(pdf, d)
		pdf.Ln(8)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render cook cards: %w", err)
	}
	return nil
}

func drawCard(pdf *gofpdf.Fpdf, d menu.Dish) {
	// Header: name on the left, rarity badge on the right.
	rarity := d.Rarity
	if rarity == "" {
		rarity = "common"
	}
	rgb, ok := rarityColors[rarity]
	if !ok {
		rgb = [3]int{0, 0, 0}
	}

	pdf.SetFillColor(187, 222, 251)
	pdf.SetTextColor(120, 0, 0)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(130, 10, d.Name, "LTR", 0, "L", true, 0, "")
	pdf.SetTextColor(rgb[0], rgb[1], rgb[2])
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 10, strings.ToUpper(rarity), "LTR", 1, "C", true, 0, "")

	pdf.SetTextColor(33, 33, 33)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetFillColor(245, 245, 220)

	stats := fmt.Sprintf("Cook time: %dmin | Difficulty: %s | Meal: %s",
		d.CookMinutes, strings.Repeat("*", d.Difficulty), titleMeal(d.MealType))
	cardLine(pdf, stats)

	if tags := d.Tags.Strings(); len(tags) > 0 {
		if len(tags) > 4 {
			tags = tags[:4]
		}
		for i, t := range tags {
			tags[i] = strings.ReplaceAll(t, ":", " ")
		}
		cardLine(pdf, "Tags: "+strings.Join(tags, " | "))
	}

	var ings []string
	for i, ing := range d.Ingredients {
		if i == 6 {
			ings = append(ings, "...")
			break
		}
		if ing.Qty > 0 {
			ings = append(ings, fmt.Sprintf("%s (%g%s)", ing.Item, ing.Qty, ing.Unit))
		} else {
			ings = append(ings, ing.Item)
		}
	}
	cardLine(pdf, "Ingredients: "+strings.Join(ings, ", "))

	if d.FlavorText != "" {
		pdf.SetFont("Helvetica", "I", 9)
		cardLine(pdf, `"`+d.FlavorText+`"`)
		pdf.SetFont("Helvetica", "", 9)
	}

	steps := d.Steps
	if len(steps) > 3 {
		steps = append(append([]string{}, steps[:3]...), "...")
	}
	cardLine(pdf, "Quick steps: "+strings.Join(steps, " / "))

	if d.VariantAdults != "" {
		cardLine(pdf, "Adult variant: "+d.VariantAdults)
	}
	if d.VariantKids != "" {
		cardLine(pdf, "Kids variant: "+d.VariantKids)
	}

	// Close the card bottom.
	pdf.CellFormat(0, 0, "", "T", 1, "", false, 0, "")
}

func cardLine(pdf *gofpdf.Fpdf, text string) {
	pdf.MultiCell(0, 6, text, "LR", "L", true)
}

func titleMeal(m menu.MealType) string {
	parts := strings.Split(string(m), "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
