package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"nigela/internal/llm"
	"nigela/internal/menu"
	"nigela/internal/shared"
)

// Daily calorie targets the percentages are computed against.
const (
	adultDeficitCalories = 1800
	kidsGrowthCalories   = 1600
)

// Nutrition is the per-serving estimate attached to a dish.
type Nutrition struct {
	CaloriesPerServing int      `json:"calories_per_serving"`
	ProteinG           float64  `json:"protein_g"`
	CarbsG             float64  `json:"carbs_g"`
	FatsG              float64  `json:"fats_g"`
	FiberG             float64  `json:"fiber_g"`
	HealthScore        float64  `json:"health_score"`
	HealthBenefits     []string `json:"health_benefits"`
	DietaryNotes       string   `json:"dietary_notes"`
	ParentDailyPercent float64  `json:"parent_daily_percent"`
	KidsDailyPercent   float64  `json:"kids_daily_percent"`
}

// HealthLabel buckets the 0..1 health score for display.
func (n Nutrition) HealthLabel() string {
	switch {
	case n.HealthScore >= 0.9:
		return "EXCELLENT"
	case n.HealthScore >= 0.7:
		return "VERY GOOD"
	case n.HealthScore >= 0.5:
		return "GOOD"
	case n.HealthScore >= 0.3:
		return "MODERATE"
	default:
		return "BASIC"
	}
}

// NutritionAnalyzer estimates dish nutrition with an LLM, caching per dish
// and falling back to a heuristic estimate when the model is unavailable.
type NutritionAnalyzer struct {
	gen llm.TextGenerator

	mu    sync.Mutex
	cache map[menu.Key]Nutrition
}

// NewNutritionAnalyzer creates an analyzer. gen may be nil, in which case
// only the heuristic fallback is used.
func NewNutritionAnalyzer(gen llm.TextGenerator) *NutritionAnalyzer {
	return &NutritionAnalyzer{
		gen:   gen,
		cache: make(map[menu.Key]Nutrition),
	}
}

// Analyze returns the nutrition estimate for the dish. Model failures
// degrade to the heuristic estimate rather than surfacing an error; callers
// always get usable numbers.
func (a *NutritionAnalyzer) Analyze(ctx context.Context, dish menu.Dish) (Nutrition, shared.AgentMeta, error) {
	key := dish.Key()

	a.mu.Lock()
	cached, ok := a.cache[key]
	a.mu.Unlock()
	if ok {
		return cached, shared.AgentMeta{AgentName: "NutritionAnalyzer"}, nil
	}

	meta := shared.AgentMeta{AgentName: "NutritionAnalyzer"}
	n := EstimateNutrition(dish)

	if a.gen != nil {
		start := time.Now()
		resp, err := a.gen.GenerateContent(ctx, nutritionPrompt(dish))
		meta.Usage = resp.Usage
		meta.Latency = time.Since(start)
		if err == nil {
			var parsed Nutrition
			if jsonErr := json.Unmarshal([]byte(resp.Content), &parsed); jsonErr == nil && parsed.CaloriesPerServing > 0 {
				n = parsed
			}
		}
	}

	a.mu.Lock()
	a.cache[key] = n
	a.mu.Unlock()
	return n, meta, nil
}

func nutritionPrompt(dish menu.Dish) string {
	var ings []string
	for _, ing := range dish.Ingredients {
		if ing.Qty > 0 {
			ings = append(ings, fmt.Sprintf("%g %s %s", ing.Qty, ing.Unit, ing.Item))
		} else {
			ings = append(ings, ing.Item)
		}
	}
	steps := dish.Steps
	if len(steps) > 2 {
		steps = steps[:2]
	}
	return fmt.Sprintf(`You are a nutritionist analyzing Indian vegetarian dishes.
Return ONLY JSON with: calories_per_serving, protein_g, carbs_g, fats_g, fiber_g, health_score (0.0-1.0), health_benefits (array), dietary_notes, parent_daily_percent, kids_daily_percent (assuming %d cal deficit adults, %d cal growing kids).

Dish: %s
Cooking time: %d minutes
Ingredients: %s
Cuisine: %s
Cooking method: %s`,
		adultDeficitCalories, kidsGrowthCalories,
		dish.Name, dish.CookMinutes, strings.Join(ings, ", "),
		dish.Tags.Cuisine, strings.Join(steps, ", "))
}

// EstimateNutrition is the model-free heuristic: base calories adjusted by
// recognizable ingredients, health score adjusted by tags and cook time.
func EstimateNutrition(dish menu.Dish) Nutrition {
	calories := 200
	for _, ing := range dish.Ingredients {
		item := strings.ToLower(ing.Item)
		switch {
		case strings.Contains(item, "dal"):
			calories += 100
		case strings.Contains(item, "rice"):
			calories += 150
		case strings.Contains(item, "paneer"):
			calories += 120
		case strings.Contains(item, "oil"), strings.Contains(item, "ghee"):
			calories += 80
		}
	}

	score := 0.6
	if dish.Tags.HasFlag("jain") {
		score += 0.1
	}
	if dish.Tags.AnyContains("vegetable") || dish.Tags.AnyContains("fruit") {
		score += 0.1
	}
	if dish.CookMinutes > 0 && dish.CookMinutes <= 20 {
		score += 0.1
	}
	for _, step := range dish.Steps {
		if strings.Contains(strings.ToLower(step), "fried") {
			score -= 0.2
			break
		}
	}
	if score > 1.0 {
		score = 1.0
	}
	if score < 0.1 {
		score = 0.1
	}

	return Nutrition{
		CaloriesPerServing: calories,
		ProteinG:           float64(calories) * 0.08,
		CarbsG:             float64(calories) * 0.55,
		FatsG:              float64(calories) * 0.25,
		FiberG:             5,
		HealthScore:        score,
		HealthBenefits:     []string{"vegetarian", "traditional"},
		DietaryNotes:       "Estimated values",
		ParentDailyPercent: float64(calories) / adultDeficitCalories * 100,
		KidsDailyPercent:   float64(calories) / kidsGrowthCalories * 100,
	}
}
