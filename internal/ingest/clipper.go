package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"nigela/internal/llm"
	"nigela/internal/menu"
	"nigela/internal/shared"
)

// extractedDish is the JSON shape the extraction prompt asks the model for.
type extractedDish struct {
	Name        string   `json:"name"`
	MealType    string   `json:"meal_type"`
	Cuisine     string   `json:"cuisine"`
	Slot        string   `json:"slot"`
	Tags        []string `json:"tags"`
	CookMinutes int      `json:"cook_minutes"`
	Difficulty  int      `json:"difficulty"`
	Ingredients []struct {
		Item string  `json:"item"`
		Qty  float64 `json:"qty"`
		Unit string  `json:"unit"`
	} `json:"ingredients"`
	Steps         []string `json:"steps"`
	Notes         string   `json:"notes"`
	JainOK        bool     `json:"jain_ok"`
	Substitutions []string `json:"substitutions"`
}

// Clipper fetches recipe pages and extracts catalogue-ready dishes with an
// LLM.
type Clipper struct {
	textGen    llm.TextGenerator
	httpClient *http.Client
}

// NewClipper creates a new Clipper instance.
func NewClipper(textGen llm.TextGenerator) *Clipper {
	return &Clipper{
		textGen:    textGen,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ClipURL fetches the URL and extracts a structured dish from its content.
func (c *Clipper) ClipURL(ctx context.Context, url string) (menu.Dish, shared.AgentMeta, error) {
	content, err := c.fetchAndCleanHTML(ctx, url)
	if err != nil {
		return menu.Dish{}, shared.AgentMeta{AgentName: "Clipper"}, fmt.Errorf("failed to fetch content: %w", err)
	}
	return c.Extract(ctx, content, "", "")
}

// Extract converts raw recipe text into a catalogue dish. mealHint and
// cuisineHint, when non-empty, are passed to the model and fill in whatever
// it leaves blank.
func (c *Clipper) Extract(ctx context.Context, rawText, mealHint, cuisineHint string) (menu.Dish, shared.AgentMeta, error) {
	meta := shared.AgentMeta{AgentName: "Clipper"}

	prompt := fmt.Sprintf(`You are Nigela, a vegetarian/Jain chef-assistant. Extract the recipe from the content below.
Return ONLY a JSON object with: name, meal_type (one of breakfast/lunch/dinner/morning_snack/evening_snack), cuisine, slot (one of main_starch, protein, yogurt, fruit, salad, dal, rice, roti, vegetable, farsan, soup, khichdi, bread, vegetable_west, protein_farsan, digestif), tags (array), cook_minutes, difficulty (1-5), ingredients (array of {item, qty, unit}), steps (array), notes, jain_ok (boolean), substitutions (array).
If the dish violates Jain/vegetarian/eggless rules, provide Jain-compliant substitutions and set jain_ok=false; otherwise true.

Meal hint: %s | Cuisine hint: %s

Content:
%s`, orNone(mealHint), orNone(cuisineHint), rawText)

	start := time.Now()
	resp, err := c.textGen.GenerateContent(ctx, prompt)
	meta.Usage = resp.Usage
	meta.Latency = time.Since(start)
	if err != nil {
		return menu.Dish{}, meta, fmt.Errorf("ai extraction failed: %w", err)
	}

	var ex extractedDish
	if err := json.Unmarshal([]byte(resp.Content), &ex); err != nil {
		return menu.Dish{}, meta, fmt.Errorf("failed to parse AI response: %w", err)
	}
	if strings.TrimSpace(ex.Name) == "" {
		return menu.Dish{}, meta, fmt.Errorf("extraction returned no dish name")
	}

	return toDish(ex, mealHint, cuisineHint), meta, nil
}

// toDish maps the model output onto the catalogue shape, applying the same
// defaults and baseline tags as plain-text ingestion.
func toDish(ex extractedDish, mealHint, cuisineHint string) menu.Dish {
	mealType := strings.ToLower(ex.MealType)
	if mealType == "" {
		mealType = mealHint
	}
	if mealType == "" {
		mealType = "dinner"
	}

	cuisine := ex.Cuisine
	if cuisine == "" {
		cuisine = cuisineHint
	}

	tags := append([]string{}, ex.Tags...)
	tags = append(tags, "vegetarian", "jain")
	if cuisine != "" {
		tags = append(tags, "cuisine:"+strings.ToLower(cuisine))
	}
	if ex.Slot != "" {
		tags = append(tags, menu.MealType(mealType).TagKey()+":"+strings.ToLower(ex.Slot))
	}

	cookMinutes := ex.CookMinutes
	if cookMinutes == 0 {
		cookMinutes = 20
	}
	difficulty := ex.Difficulty
	if difficulty == 0 {
		difficulty = 2
	}

	var ings []menu.Ingredient
	for _, ing := range ex.Ingredients {
		ings = append(ings, menu.Ingredient{
			Item: strings.ToLower(ing.Item),
			Qty:  ing.Qty,
			Unit: ing.Unit,
		})
	}
	if len(ings) == 0 {
		ings = []menu.Ingredient{{Item: "salt", Qty: 1, Unit: "tsp"}}
	}

	steps := ex.Steps
	if len(steps) == 0 {
		steps = []string{"Follow recipe steps."}
	}

	flavor := ex.Notes
	if flavor == "" {
		flavor = "Nigela note: bloom spices gently."
	}
	if !ex.JainOK && len(ex.Substitutions) > 0 {
		flavor += " Jain swap: " + strings.Join(ex.Substitutions, "; ") + "."
	}

	return menu.Dish{
		Name:        strings.TrimSpace(ex.Name),
		MealType:    menu.MealType(mealType),
		Tags:        menu.ParseTags(tags),
		CookMinutes: cookMinutes,
		Difficulty:  difficulty,
		Ingredients: ings,
		Steps:       steps,
		FlavorText:  flavor,
		Rarity:      "common",
	}
}

// fetchAndCleanHTML downloads the page and strips markup noise so the model
// sees mostly recipe text.
func (c *Clipper) fetchAndCleanHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}

// FormatPostHTML renders an extracted dish as blog-post HTML for archiving.
func FormatPostHTML(d menu.Dish, sourceURL string) string {
	var sb strings.Builder
	if sourceURL != "" {
		sb.WriteString(fmt.Sprintf("<p><i>Imported from: <a href=\"%s\">%s</a></i></p>", sourceURL, sourceURL))
	}

	sb.WriteString("<h2>Ingredients</h2><ul>")
	for _, ing := range d.Ingredients {
		if ing.Qty > 0 {
			sb.WriteString(fmt.Sprintf("<li>%s (%g %s)</li>", ing.Item, ing.Qty, ing.Unit))
		} else {
			sb.WriteString(fmt.Sprintf("<li>%s</li>", ing.Item))
		}
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h2>Instructions</h2><ol>")
	for _, step := range d.Steps {
		sb.WriteString(fmt.Sprintf("<li>%s</li>", step))
	}
	sb.WriteString("</ol>")

	sb.WriteString("<hr>")
	sb.WriteString(fmt.Sprintf("<p><strong>Cook Time:</strong> %d mins | <strong>Difficulty:</strong> %d/5</p>", d.CookMinutes, d.Difficulty))

	return sb.String()
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
