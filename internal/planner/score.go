package planner

import (
	"strings"

	"nigela/internal/menu"
	"nigela/internal/pantry"
)

// Disqualified is returned for dishes the pantry cannot cover. It is low
// enough that a disqualified dish never beats any available one, but such a
// dish can still be picked when a slot has no better candidate.
const Disqualified = -999

const (
	jainBonus             = 10
	cuisineBonus          = 2
	kidFriendlyBonus      = 2
	quickBonus            = 3
	quickThresholdMinutes = 25
	repeatPenalty         = 100
)

// Score computes the desirability of a dish for a slot. Higher is better.
// usedToday holds lowercased dish names already assigned earlier in the same
// day's plan. The function is pure: identical inputs give identical output.
func Score(d menu.Dish, stock pantry.Snapshot, usedToday map[string]bool) float64 {
	if !stock.CanCook(d) {
		return Disqualified
	}

	var s float64
	if d.Tags.HasFlag("jain") {
		s += jainBonus
	}
	if d.Tags.HasCuisine() {
		s += cuisineBonus
	}
	if usedToday[strings.ToLower(d.Name)] {
		s -= repeatPenalty
	}
	if d.CookMinutes <= quickThresholdMinutes {
		s += quickBonus
	}
	if d.Tags.HasFlag("kid-friendly") {
		s += kidFriendlyBonus
	}
	return s
}
