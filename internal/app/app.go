// Package app wires the subsystems together and exposes the operations the
// CLI and the Telegram bot invoke.
package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"nigela/internal/cards"
	"nigela/internal/catalog"
	"nigela/internal/config"
	"nigela/internal/database"
	"nigela/internal/enrich"
	"nigela/internal/ingest"
	"nigela/internal/mailer"
	"nigela/internal/menu"
	"nigela/internal/metrics"
	"nigela/internal/planner"
	"nigela/internal/rotation"
	"nigela/internal/shared"
)

// App holds the application's dependencies.
type App struct {
	cfg          *config.Config
	db           *database.DB
	store        *catalog.Store
	history      *rotation.Manager
	metricsStore *metrics.Store

	// Optional: nil when no LLM key is configured. Planning, email and
	// cards all degrade gracefully without them.
	enricher  *enrich.Enricher
	nutrition *enrich.NutritionAnalyzer
	clipper   *ingest.Clipper
	blog      ingest.BlogClient

	sender  mailer.Sender
	persona enrich.Persona
}

// NewApp creates and initializes a new App instance.
func NewApp(
	cfg *config.Config,
	db *database.DB,
	store *catalog.Store,
	history *rotation.Manager,
	metricsStore *metrics.Store,
	enricher *enrich.Enricher,
	nutrition *enrich.NutritionAnalyzer,
	clipper *ingest.Clipper,
	blog ingest.BlogClient,
	sender mailer.Sender,
) *App {
	return &App{
		cfg:          cfg,
		db:           db,
		store:        store,
		history:      history,
		metricsStore: metricsStore,
		enricher:     enricher,
		nutrition:    nutrition,
		clipper:      clipper,
		blog:         blog,
		sender:       sender,
	}
}

// Bootstrap seeds the catalogue, pantry and variant notes with the family
// starter data. Seeding is idempotent; existing rows are left alone.
func (a *App) Bootstrap(ctx context.Context) error {
	fmt.Println("Seeding catalogue, pantry and variants...")
	if err := a.store.Seed(ctx); err != nil {
		return fmt.Errorf("failed to seed: %w", err)
	}
	count, err := a.store.CountDishes(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Bootstrap complete. Catalogue holds %d dishes.\n", count)
	return nil
}

// SuggestDay plans one day's meals and records the result in rotation
// history. Re-planning the same date replaces its history entry.
func (a *App) SuggestDay(ctx context.Context, date time.Time) (planner.DayPlan, error) {
	plan, err := a.planDay(ctx, date)
	if err != nil {
		return planner.DayPlan{}, err
	}
	if err := a.history.RecordDay(ctx, plan); err != nil {
		return planner.DayPlan{}, fmt.Errorf("failed to record plan in history: %w", err)
	}
	return plan, nil
}

// planDay runs one planning pass without touching history.
func (a *App) planDay(ctx context.Context, date time.Time) (planner.DayPlan, error) {
	dishes, err := a.store.ListDishes(ctx)
	if err != nil {
		return planner.DayPlan{}, err
	}
	if len(dishes) == 0 {
		return planner.DayPlan{}, fmt.Errorf("catalogue is empty; run bootstrap or ingest dishes first")
	}

	snapshot, err := a.store.PantrySnapshot(ctx)
	if err != nil {
		return planner.DayPlan{}, err
	}
	variants, err := a.store.Variants(ctx)
	if err != nil {
		return planner.DayPlan{}, err
	}

	p := planner.New(planner.DefaultTemplate(), variants)
	plan := p.PlanDay(date, dishes, snapshot)

	for _, ms := range planner.DefaultTemplate() {
		for _, slot := range ms.Slots {
			if _, ok := plan.Dish(ms.Meal, slot); !ok {
				log.Printf("Warning: no candidate for %s/%s; slot left empty", ms.Meal, slot)
			}
		}
	}
	return plan, nil
}

// EmailDay plans the date, enriches the dishes when an LLM is configured,
// and sends the menu email. Without recipients the rendered body is printed
// instead of sent.
func (a *App) EmailDay(ctx context.Context, date time.Time) error {
	plan, err := a.SuggestDay(ctx, date)
	if err != nil {
		return err
	}

	a.attachFlavorText(ctx, &plan)

	snapshot, err := a.store.PantrySnapshot(ctx)
	if err != nil {
		return err
	}
	lowStock := snapshot.BelowPar()

	intro := a.persona.EmailIntro(date)
	closing := a.persona.EmailClosing(date)

	textBody := ""
	if a.enricher != nil {
		copyText, meta, err := a.enricher.EmailCopy(ctx, plan)
		a.recordMeta(meta)
		if err != nil {
			log.Printf("Warning: email copy generation failed, using plain rendering: %v", err)
		} else {
			textBody = copyText
		}
	}
	if textBody == "" {
		textBody = mailer.RenderText(intro, plan, closing, lowStock)
	}

	htmlBody, err := mailer.RenderHTML(intro, plan, closing, lowStock)
	if err != nil {
		return err
	}

	recipients := a.cfg.Recipients()
	if len(recipients) == 0 {
		log.Println("Warning: EMAIL_TO not set; printing menu instead of sending.")
		fmt.Println(mailer.RenderText(intro, plan, closing, lowStock))
		return nil
	}
	if a.cfg.EmailSenderMode == "smtp" && !a.cfg.EmailConfigured() {
		log.Println("Warning: SMTP delivery not fully configured; printing menu instead of sending.")
		fmt.Println(mailer.RenderText(intro, plan, closing, lowStock))
		return nil
	}

	msg := mailer.Message{
		To:       recipients,
		Subject:  mailer.Subject(date),
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
	if err := a.sender.Send(msg); err != nil {
		return fmt.Errorf("failed to send menu email: %w", err)
	}
	fmt.Printf("Menu email sent to %v.\n", recipients)
	return nil
}

// CookCards plans the date and writes the printable cook-card PDF to
// outPath. Only dishes that need real instructions get a card.
func (a *App) CookCards(ctx context.Context, date time.Time, outPath string) error {
	plan, err := a.SuggestDay(ctx, date)
	if err != nil {
		return err
	}
	a.attachFlavorText(ctx, &plan)

	dishes := cards.FilterForCards(plan)
	if len(dishes) == 0 {
		return fmt.Errorf("no dishes in the plan need cook cards")
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer f.Close()

	if err := cards.Generate(date, dishes, f); err != nil {
		return err
	}
	fmt.Printf("Wrote %d cook cards to %s.\n", len(dishes), outPath)
	return nil
}

// IngestURL clips a recipe page into the catalogue. When a blog is
// configured the clipped recipe is also archived as a published post.
func (a *App) IngestURL(ctx context.Context, url string) error {
	if a.clipper == nil {
		return fmt.Errorf("URL ingestion needs an LLM; set GEMINI_API_KEY or GROQ_API_KEY")
	}

	dish, meta, err := a.clipper.ClipURL(ctx, url)
	a.recordMeta(meta)
	if err != nil {
		return err
	}

	added, err := a.store.MergeDishes(ctx, []menu.Dish{dish})
	if err != nil {
		return err
	}
	if added == 0 {
		fmt.Printf("%q is already in the catalogue.\n", dish.Name)
		return nil
	}
	fmt.Printf("Added %q (%s).\n", dish.Name, dish.MealType)

	if a.blog != nil && a.cfg.BlogURL != "" {
		if _, err := a.blog.CreatePost(dish.Name, ingest.FormatPostHTML(dish, url), true); err != nil {
			log.Printf("Warning: failed to archive %q to blog: %v", dish.Name, err)
		}
	}
	return nil
}

// IngestText parses a pasted list of dish names into catalogue entries.
func (a *App) IngestText(ctx context.Context, text, mealHint, cuisineHint string) error {
	dishes := ingest.TextToDishes(text, mealHint, cuisineHint)
	if len(dishes) == 0 {
		return fmt.Errorf("no dish names recognized in input")
	}
	added, err := a.store.MergeDishes(ctx, dishes)
	if err != nil {
		return err
	}
	fmt.Printf("Parsed %d dishes, added %d new.\n", len(dishes), added)
	return nil
}

// IngestBlog pulls every post from the recipe blog and extracts dishes from
// them. Individual post failures are logged and skipped.
func (a *App) IngestBlog(ctx context.Context) error {
	if a.blog == nil || a.cfg.BlogURL == "" {
		return fmt.Errorf("blog ingestion needs BLOG_API_URL and BLOG_CONTENT_API_KEY")
	}
	if a.clipper == nil {
		return fmt.Errorf("blog ingestion needs an LLM; set GEMINI_API_KEY or GROQ_API_KEY")
	}

	posts, err := a.blog.FetchPosts()
	if err != nil {
		return fmt.Errorf("failed to fetch posts from blog: %w", err)
	}
	fmt.Printf("Fetched %d posts from the blog.\n", len(posts))

	var collected []menu.Dish
	for _, post := range posts {
		log.Printf("Extracting %q...", post.Title)
		dish, meta, err := a.clipper.Extract(ctx, post.Title+"\n\n"+post.HTML, "", "")
		a.recordMeta(meta)
		if err != nil {
			log.Printf("Failed to extract %q: %v", post.Title, err)
			continue
		}
		collected = append(collected, dish)
	}

	added, err := a.store.MergeDishes(ctx, collected)
	if err != nil {
		return err
	}
	fmt.Printf("Ingestion complete. Added %d new dishes.\n", added)
	return nil
}

// DishNutrition estimates per-serving nutrition for a catalogue dish looked
// up by name. Without an LLM the heuristic estimate is returned.
func (a *App) DishNutrition(ctx context.Context, name string) (menu.Dish, enrich.Nutrition, error) {
	dishes, err := a.store.ListDishes(ctx)
	if err != nil {
		return menu.Dish{}, enrich.Nutrition{}, err
	}

	want := strings.ToLower(strings.TrimSpace(name))
	for _, d := range dishes {
		if strings.ToLower(d.Name) != want {
			continue
		}
		if a.nutrition == nil {
			return d, enrich.EstimateNutrition(d), nil
		}
		n, meta, err := a.nutrition.Analyze(ctx, d)
		a.recordMeta(meta)
		return d, n, err
	}
	return menu.Dish{}, enrich.Nutrition{}, fmt.Errorf("dish %q not found in catalogue", name)
}

// RotationSuggestions returns, per category, the items that haven't been
// cooked inside the recency window.
func (a *App) RotationSuggestions(ctx context.Context) (map[string][]string, error) {
	out := make(map[string][]string)
	for _, category := range rotation.Categories() {
		items, err := a.history.AvailableItems(ctx, category, 0)
		if err != nil {
			return nil, err
		}
		out[category] = items
	}
	return out, nil
}

// HistoryCleanup prunes rotation history beyond the window and drops
// execution metrics older than 90 days.
func (a *App) HistoryCleanup(ctx context.Context) error {
	if err := a.history.Prune(ctx); err != nil {
		return err
	}
	removed, err := a.metricsStore.Cleanup(90)
	if err != nil {
		return err
	}
	fmt.Printf("Cleanup complete. Removed %d old metric rows.\n", removed)
	return nil
}

// attachFlavorText fills in model-written notes for dishes that have none.
// Failures fall back to the stock note and planning continues.
func (a *App) attachFlavorText(ctx context.Context, plan *planner.DayPlan) {
	if a.enricher == nil {
		return
	}
	for meal, slots := range plan.Meals {
		for slot, d := range slots {
			if d.FlavorText != "" {
				continue
			}
			text, meta, err := a.enricher.FlavorText(ctx, d)
			a.recordMeta(meta)
			if err != nil {
				log.Printf("Warning: flavor text for %q failed: %v", d.Name, err)
			}
			d.FlavorText = text
			plan.Meals[meal][slot] = d
		}
	}
}

func (a *App) recordMeta(meta shared.AgentMeta) {
	if a.metricsStore == nil {
		return
	}
	if err := a.metricsStore.RecordMeta(meta); err != nil {
		log.Printf("Warning: failed to record metrics for %s: %v", meta.AgentName, err)
	}
}
