package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"nigela/internal/llm"
	"nigela/internal/menu"
	"nigela/internal/planner"
	"nigela/internal/shared"
)

// FallbackFlavorText is attached to dishes when no model-written note exists.
const FallbackFlavorText = "Nigela note: bloom spices gently."

// Enricher generates the model-written extras for a plan: flavor notes per
// dish and the long-form email copy. All model calls go through a shared
// rate limiter so batch enrichment stays inside API quotas.
type Enricher struct {
	gen     llm.TextGenerator
	limiter *rate.Limiter
}

// NewEnricher wraps a text generator with a requests-per-second budget.
func NewEnricher(gen llm.TextGenerator, requestsPerSecond float64) *Enricher {
	return &Enricher{
		gen:     gen,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// FlavorText writes a one-line note for the dish in the house voice. On any
// failure the fallback note is returned with the error, so callers can keep
// the plan usable while still logging the problem.
func (e *Enricher) FlavorText(ctx context.Context, dish menu.Dish) (string, shared.AgentMeta, error) {
	meta := shared.AgentMeta{AgentName: "FlavorWriter"}
	if err := e.limiter.Wait(ctx); err != nil {
		return FallbackFlavorText, meta, err
	}

	prompt := fmt.Sprintf(
		"You are Nigela, warm and practical. Write ONE short, loving sentence about cooking %q (%s, %d minutes). Plain text, no quotes, no emoji.",
		dish.Name, dish.MealType, dish.CookMinutes)

	start := time.Now()
	resp, err := e.gen.GenerateContent(ctx, prompt)
	meta.Usage = resp.Usage
	meta.Latency = time.Since(start)
	if err != nil {
		return FallbackFlavorText, meta, fmt.Errorf("failed to generate flavor text: %w", err)
	}
	if resp.Content == "" {
		return FallbackFlavorText, meta, nil
	}
	return resp.Content, meta, nil
}

// EmailCopy writes the full nightly email body for a day plan. The plan is
// serialized to JSON so the model sees every meal and slot.
func (e *Enricher) EmailCopy(ctx context.Context, plan planner.DayPlan) (string, shared.AgentMeta, error) {
	meta := shared.AgentMeta{AgentName: "EmailWriter"}
	if err := e.limiter.Wait(ctx); err != nil {
		return "", meta, err
	}

	type dishSummary struct {
		Name        string   `json:"name"`
		CookMinutes int      `json:"cook_minutes"`
		Difficulty  int      `json:"difficulty"`
		Tags        []string `json:"tags"`
		FlavorText  string   `json:"flavor_text,omitempty"`
	}
	summary := make(map[string]map[string]dishSummary, len(plan.Meals))
	for meal, slots := range plan.Meals {
		courses := make(map[string]dishSummary, len(slots))
		for slot, d := range slots {
			courses[slot] = dishSummary{
				Name:        d.Name,
				CookMinutes: d.CookMinutes,
				Difficulty:  d.Difficulty,
				Tags:        d.Tags.Strings(),
				FlavorText:  d.FlavorText,
			}
		}
		summary[string(meal)] = courses
	}

	planJSON, err := json.Marshal(summary)
	if err != nil {
		return "", meta, fmt.Errorf("failed to marshal plan: %w", err)
	}

	prompt := fmt.Sprintf(
		"You are Nigela, warm and practical. Write a beautiful email for a complete 5-meal day plan (breakfast, morning snack, lunch, evening snack, dinner). Include cooking timeline and loving notes. Keep it Jain/vegetarian, family-friendly. Use Indian-English warmth.\n\nComplete 5-meal plan JSON:\n%s",
		planJSON)

	start := time.Now()
	resp, err := e.gen.GenerateContent(ctx, prompt)
	meta.Usage = resp.Usage
	meta.Latency = time.Since(start)
	if err != nil {
		return "", meta, fmt.Errorf("failed to generate email copy: %w", err)
	}
	return resp.Content, meta, nil
}
