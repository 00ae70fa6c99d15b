package enrich

import (
	"fmt"
	"strings"
	"time"
)

// Persona writes the email prose in the house voice: warm, a little dry,
// tuned to Mumbai's seasons. Lines are picked deterministically from the
// date so the same day always reads the same.
type Persona struct{}

type season struct {
	name       string
	commentary []string
	philosophy []string
	produce    string
}

var seasons = map[string]season{
	"winter": {
		name: "Winter",
		commentary: []string{
			"Mumbai's winter is rather like a gentle suggestion - present, but never insistent. Perfect weather for warming spices and comfort food that doesn't overwhelm.",
			"These pleasant Mumbai evenings call for food that's nourishing without being heavy.",
		},
		philosophy: []string{
			"This is the season for gentle heat - not aggressive spicing, but the warm embrace of ginger, cinnamon, and cardamom.",
			"Now is the time for slow-cooked dals and gentle khichdis - comfort food that comforts without overwhelming.",
		},
		produce: "The markets are particularly lovely now with cauliflower, peas, and fresh methi.",
	},
	"summer": {
		name: "Summer",
		commentary: []string{
			"Mumbai's summer arrives like an overeager dinner guest - earlier than expected and rather more intense than one might prefer.",
			"Summer in Mumbai teaches patience - with the heat, with the crowds, and with food that must be both cooling and satisfying.",
		},
		philosophy: []string{
			"This is the season for foods that cool from within - cucumber, coconut, and the blessed relief of fresh herbs.",
			"The heat calls for meals that refresh rather than restore - cooling chutneys and rice that doesn't ask much of your digestion.",
		},
		produce: "The markets are full of bottle gourd, cucumber, and the first of the mangoes.",
	},
	"monsoon": {
		name: "Monsoon",
		commentary: []string{
			"Mumbai's monsoon is pure theatre - dramatic, essential, and occasionally inconvenient, rather like a brilliant but temperamental chef.",
			"Monsoon season brings a particular kind of coziness - the pleasure of being warm and dry while the world outside gets thoroughly soaked.",
		},
		philosophy: []string{
			"Monsoon food should match the season's drama - warming spices, hearty dals, and the kind of comfort that comes from a steaming bowl on a grey day.",
			"This is the season for foods that fight dampness from within - turmeric, ginger, and the gentle heat that keeps the chill at bay.",
		},
		produce: "The markets lean on turai, bhindi, and jamun while the greens take their monsoon rest.",
	},
}

var dailyOpenings = map[time.Weekday][]string{
	time.Monday: {
		"Mondays, I've always thought, are rather like that first cup of tea in the morning - necessary, but requiring a certain gentle coaxing into existence.",
		"There's something deliciously defiant about cooking something lovely on a Monday, don't you think?",
	},
	time.Tuesday: {
		"Tuesdays are the middle child of weekdays - overlooked, but often the most interesting when you pay attention.",
		"I find Tuesdays rather like a good curry - they improve as they go along.",
	},
	time.Wednesday: {
		"Wednesday - that peculiar hump in the week's back, when one needs something both comforting and slightly adventurous.",
		"Midweek meals should be like good friends - reliable, but never boring.",
	},
	time.Thursday: {
		"Thursday has always struck me as the most hopeful day - close enough to the weekend to dream, far enough to still be practical.",
		"There's something rather thrilling about Thursday evening cooking - the promise of the weekend dancing just out of reach.",
	},
	time.Friday: {
		"Friday! When even the most sensible person allows themselves a small celebration, preferably involving something delicious.",
		"Friday cooking should be joyful, even if it's just the joy of knowing you don't have to think about tomorrow's lunch quite yet.",
	},
	time.Saturday: {
		"Saturdays are for indulgence, though I've never quite understood why indulgence can't also be nourishing.",
		"Saturday morning cooking has a different rhythm - more languid, like Mumbai's weekend pace.",
	},
	time.Sunday: {
		"Sunday cooking is a meditation, a gentle preparation for the week ahead, seasoned with just a hint of melancholy.",
		"There's something deeply satisfying about Sunday evening meals - they taste of both completion and possibility.",
	},
}

var closingThoughts = []string{
	"Remember, cooking is not about perfection - it's about the gentle act of caring for yourself and those you love, one meal at a time.",
	"The best meals are often the simplest ones, made with attention rather than anxiety, seasoned with contentment rather than stress.",
	"Cook with kindness - toward your ingredients, toward yourself, and toward the beautiful imperfection of daily life.",
	"In the end, the best meals are not about what you cook, but about the care with which you cook it.",
}

// SeasonFor maps a month onto Mumbai's three seasons.
func SeasonFor(month time.Month) string {
	switch month {
	case time.November, time.December, time.January, time.February:
		return "winter"
	case time.March, time.April, time.May:
		return "summer"
	default:
		return "monsoon"
	}
}

func pick(lines []string, date time.Time) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[date.YearDay()%len(lines)]
}

// EmailIntro produces the opening paragraphs for the daily email.
func (Persona) EmailIntro(date time.Time) string {
	s := seasons[SeasonFor(date.Month())]
	parts := []string{
		"Darlings,",
		pick(dailyOpenings[date.Weekday()], date),
		pick(s.commentary, date),
		pick(s.philosophy, date) + " " + s.produce,
		"Now, about today's menu...",
	}
	return strings.Join(parts, "\n\n")
}

// EmailClosing produces the sign-off for the daily email.
func (Persona) EmailClosing(date time.Time) string {
	s := seasons[SeasonFor(date.Month())]
	return fmt.Sprintf(
		"%s\n\nCook with love, eat with joy, and remember that even the simplest meal becomes special when made with care.\n\nWith warmth from Mumbai's %s,\n\nNigela",
		pick(closingThoughts, date), strings.ToLower(s.name))
}
