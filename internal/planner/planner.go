package planner

import (
	"sort"
	"strings"
	"time"

	"nigela/internal/menu"
	"nigela/internal/pantry"
)

// DayPlan maps each meal occasion to the dishes chosen per slot. Slots with
// no eligible candidate are absent; a partial plan is a normal outcome.
type DayPlan struct {
	Date  time.Time
	Meals map[menu.MealType]map[string]menu.Dish
}

// Dish returns the dish picked for a meal/slot, if any.
func (p DayPlan) Dish(meal menu.MealType, slot string) (menu.Dish, bool) {
	d, ok := p.Meals[meal][slot]
	return d, ok
}

// SelectedNames returns the lowercased names of every selected dish.
func (p DayPlan) SelectedNames() []string {
	var names []string
	for _, slots := range p.Meals {
		for _, d := range slots {
			names = append(names, strings.ToLower(d.Name))
		}
	}
	sort.Strings(names)
	return names
}

// Planner selects one dish per template slot for a target date.
type Planner struct {
	template Template
	variants Variants
}

// New creates a Planner over a slot template and a variant lookup table.
func New(template Template, variants Variants) *Planner {
	return &Planner{template: template, variants: variants}
}

// PlanDay builds the plan for one day. It walks the template in declared
// order, scores candidates against the pantry snapshot and the running
// used-today set, and picks the top-scoring dish per slot. Planning is pure
// in-memory computation; the caller records the result in rotation history.
func (p *Planner) PlanDay(date time.Time, dishes []menu.Dish, stock pantry.Snapshot) DayPlan {
	plan := DayPlan{
		Date:  date,
		Meals: make(map[menu.MealType]map[string]menu.Dish, len(p.template)),
	}
	usedToday := make(map[string]bool)

	for _, ms := range p.template {
		courses := make(map[string]menu.Dish, len(ms.Slots))
		for _, slot := range ms.Slots {
			pick, ok := p.pickForSlot(ms.Meal, slot, dishes, stock, usedToday)
			if !ok {
				continue
			}
			usedToday[strings.ToLower(pick.Name)] = true
			pick.VariantAdults, pick.VariantKids = p.variants.Resolve(slot)
			courses[slot] = pick
		}
		plan.Meals[ms.Meal] = courses
	}
	return plan
}

// pickForSlot gathers candidates by exact slot tag, broadens to a substring
// match for snack meals with no exact hits, and returns the best-scoring
// candidate. Stable sort keeps catalogue order as the tie-break, so plans
// are deterministic for identical inputs.
func (p *Planner) pickForSlot(meal menu.MealType, slot string, dishes []menu.Dish, stock pantry.Snapshot, usedToday map[string]bool) (menu.Dish, bool) {
	mealKey := meal.TagKey()

	var cands []menu.Dish
	for _, d := range dishes {
		if d.Tags.HasSlot(mealKey, slot) {
			cands = append(cands, d)
		}
	}
	if len(cands) == 0 && meal.IsSnack() {
		for _, d := range dishes {
			if d.Tags.AnyContains(slot) {
				cands = append(cands, d)
			}
		}
	}
	if len(cands) == 0 {
		return menu.Dish{}, false
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return Score(cands[i], stock, usedToday) > Score(cands[j], stock, usedToday)
	})
	return cands[0], true
}
