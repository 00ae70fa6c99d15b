package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"nigela/internal/catalog"
	"nigela/internal/config"
	"nigela/internal/database"
	"nigela/internal/mailer"
	"nigela/internal/menu"
	"nigela/internal/metrics"
	"nigela/internal/rotation"
)

// recordingSender captures sent messages so tests can assert on delivery.
type recordingSender struct {
	sent []mailer.Message
}

func (r *recordingSender) Send(msg mailer.Message) error {
	r.sent = append(r.sent, msg)
	return nil
}

func newTestApp(t *testing.T) (*App, context.Context) {
	t.Helper()
	cfg := &config.Config{HistoryWindowDays: 14, EmailSenderMode: "local"}
	return newTestAppWith(t, cfg, mailer.NewLocalSender(nil))
}

func newTestAppWith(t *testing.T, cfg *config.Config, sender mailer.Sender) (*App, context.Context) {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	a := NewApp(
		cfg,
		db,
		catalog.NewStore(db.SQL),
		rotation.NewManager(db.SQL, cfg.HistoryWindowDays),
		metrics.NewStore(db.SQL),
		nil, nil, nil, nil,
		sender,
	)
	return a, context.Background()
}

func TestSuggestDayEmptyCatalogue(t *testing.T) {
	a, ctx := newTestApp(t)
	if _, err := a.SuggestDay(ctx, time.Now()); err == nil {
		t.Fatal("expected an error for an empty catalogue")
	}
}

func TestBootstrapAndSuggestDay(t *testing.T) {
	a, ctx := newTestApp(t)

	if err := a.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	// Use the current day so the entry survives the prune that follows
	// every RecordDay.
	date := time.Now().UTC().Truncate(24 * time.Hour)
	plan, err := a.SuggestDay(ctx, date)
	if err != nil {
		t.Fatalf("SuggestDay failed: %v", err)
	}
	if len(plan.SelectedNames()) == 0 {
		t.Fatal("expected at least one selected dish")
	}
	if _, ok := plan.Dish(menu.MealLunch, "dal"); !ok {
		t.Error("seed data should fill the lunch dal slot")
	}

	// The run must land in rotation history.
	dates, err := a.history.RecentDates(ctx)
	if err != nil {
		t.Fatalf("RecentDates failed: %v", err)
	}
	if len(dates) != 1 || !dates[0].Equal(date) {
		t.Errorf("expected history for %s, got %v", date.Format("2006-01-02"), dates)
	}

	// Re-planning the same date must replace, not duplicate.
	if _, err := a.SuggestDay(ctx, date); err != nil {
		t.Fatalf("second SuggestDay failed: %v", err)
	}
	dates, _ = a.history.RecentDates(ctx)
	if len(dates) != 1 {
		t.Errorf("expected one history entry after re-planning, got %d", len(dates))
	}
}

func TestIngestText(t *testing.T) {
	a, ctx := newTestApp(t)

	if err := a.IngestText(ctx, "- Masala Dosa\n- Gujarati Dal", "", ""); err != nil {
		t.Fatalf("IngestText failed: %v", err)
	}
	count, err := a.store.CountDishes(ctx)
	if err != nil {
		t.Fatalf("CountDishes failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 dishes, got %d", count)
	}

	// Ingesting the same list again must not duplicate.
	if err := a.IngestText(ctx, "Masala Dosa", "", ""); err != nil {
		t.Fatalf("repeat IngestText failed: %v", err)
	}
	count, _ = a.store.CountDishes(ctx)
	if count != 2 {
		t.Errorf("expected 2 dishes after repeat ingest, got %d", count)
	}
}

func TestIngestTextRejectsEmptyInput(t *testing.T) {
	a, ctx := newTestApp(t)
	if err := a.IngestText(ctx, "!!!\n???", "", ""); err == nil {
		t.Fatal("expected an error for unparseable input")
	}
}

func TestRotationSuggestions(t *testing.T) {
	a, ctx := newTestApp(t)

	got, err := a.RotationSuggestions(ctx)
	if err != nil {
		t.Fatalf("RotationSuggestions failed: %v", err)
	}
	for _, category := range rotation.Categories() {
		if len(got[category]) == 0 {
			t.Errorf("category %s should have suggestions with empty history", category)
		}
	}
}

func TestEmailDaySkipsSendWhenSMTPUnconfigured(t *testing.T) {
	rec := &recordingSender{}
	cfg := &config.Config{
		HistoryWindowDays: 14,
		EmailSenderMode:   "smtp",
		EmailTo:           "family@example.com",
	}
	a, ctx := newTestAppWith(t, cfg, rec)
	if err := a.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	if err := a.EmailDay(ctx, time.Now().UTC().Truncate(24*time.Hour)); err != nil {
		t.Fatalf("EmailDay failed: %v", err)
	}
	if len(rec.sent) != 0 {
		t.Errorf("expected no send with incomplete SMTP settings, got %d", len(rec.sent))
	}
}

func TestEmailDaySendsInLocalMode(t *testing.T) {
	rec := &recordingSender{}
	cfg := &config.Config{
		HistoryWindowDays: 14,
		EmailSenderMode:   "local",
		EmailTo:           "family@example.com",
	}
	a, ctx := newTestAppWith(t, cfg, rec)
	if err := a.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	if err := a.EmailDay(ctx, time.Now().UTC().Truncate(24*time.Hour)); err != nil {
		t.Fatalf("EmailDay failed: %v", err)
	}
	if len(rec.sent) != 1 {
		t.Fatalf("expected one sent message, got %d", len(rec.sent))
	}
	msg := rec.sent[0]
	if len(msg.To) != 1 || msg.To[0] != "family@example.com" {
		t.Errorf("unexpected recipients %v", msg.To)
	}
	if msg.TextBody == "" || msg.HTMLBody == "" {
		t.Error("expected both text and HTML bodies")
	}
}

func TestDishNutritionFallsBackWithoutLLM(t *testing.T) {
	a, ctx := newTestApp(t)
	if err := a.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	dish, n, err := a.DishNutrition(ctx, "gujarati dal")
	if err != nil {
		t.Fatalf("DishNutrition failed: %v", err)
	}
	if dish.Name != "Gujarati Dal" {
		t.Errorf("unexpected dish %q", dish.Name)
	}
	if n.CaloriesPerServing == 0 {
		t.Error("heuristic estimate should produce calories")
	}

	if _, _, err := a.DishNutrition(ctx, "no such dish"); err == nil {
		t.Fatal("expected an error for an unknown dish")
	}
}

func TestHistoryCleanup(t *testing.T) {
	a, ctx := newTestApp(t)
	if err := a.HistoryCleanup(ctx); err != nil {
		t.Fatalf("HistoryCleanup failed: %v", err)
	}
}
