package acceptance_tests

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"nigela/internal/catalog"
	"nigela/internal/database"
	"nigela/internal/mailer"
	"nigela/internal/menu"
	"nigela/internal/planner"
	"nigela/internal/rotation"
)

// TestFullPlanningWorkflow exercises the pipeline end to end: seed the
// catalogue, plan a day against live pantry stock, record it in rotation
// history, and render the menu email bodies.
func TestFullPlanningWorkflow(t *testing.T) {
	ctx := context.Background()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "acceptance.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	store := catalog.NewStore(db.SQL)
	history := rotation.NewManager(db.SQL, rotation.DefaultWindowDays)

	// --- Step 1: Bootstrap ---
	t.Log("--- Step 1: Seeding catalogue ---")
	if err := store.Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	count, err := store.CountDishes(ctx)
	if err != nil {
		t.Fatalf("CountDishes failed: %v", err)
	}
	if count == 0 {
		t.Fatal("seed produced an empty catalogue")
	}

	// --- Step 2: Plan a day ---
	t.Log("--- Step 2: Planning a day ---")
	dishes, err := store.ListDishes(ctx)
	if err != nil {
		t.Fatalf("ListDishes failed: %v", err)
	}
	snapshot, err := store.PantrySnapshot(ctx)
	if err != nil {
		t.Fatalf("PantrySnapshot failed: %v", err)
	}
	variants, err := store.Variants(ctx)
	if err != nil {
		t.Fatalf("Variants failed: %v", err)
	}

	// Recording prunes anything outside the rolling window, so the plan
	// date must be current for the history assertions below.
	date := time.Now().UTC().Truncate(24 * time.Hour)
	p := planner.New(planner.DefaultTemplate(), variants)
	plan := p.PlanDay(date, dishes, snapshot)

	if len(plan.SelectedNames()) == 0 {
		t.Fatal("plan selected no dishes")
	}
	if _, ok := plan.Dish(menu.MealLunch, "dal"); !ok {
		t.Error("expected the seeded dal to fill lunch/dal")
	}

	// Every selected dish must be cookable from the snapshot or have been
	// a least-bad fill; the seed data is fully stocked, so all are cookable.
	for _, slots := range plan.Meals {
		for slot, d := range slots {
			if !snapshot.CanCook(d) {
				t.Errorf("selected dish %q for slot %s is not cookable from seed stock", d.Name, slot)
			}
		}
	}

	// --- Step 3: Record in rotation history ---
	t.Log("--- Step 3: Recording rotation history ---")
	if err := history.RecordDay(ctx, plan); err != nil {
		t.Fatalf("RecordDay failed: %v", err)
	}
	dates, err := history.RecentDates(ctx)
	if err != nil {
		t.Fatalf("RecentDates failed: %v", err)
	}
	if len(dates) != 1 || !dates[0].Equal(date) {
		t.Errorf("expected one history entry for %s, got %v", date.Format("2006-01-02"), dates)
	}

	// --- Step 4: Render the menu email ---
	t.Log("--- Step 4: Rendering menu email ---")
	low := snapshot.BelowPar()
	text := mailer.RenderText("Darlings,", plan, "With warmth,", low)
	if text == "" {
		t.Fatal("empty text body")
	}
	html, err := mailer.RenderHTML("Darlings,", plan, "With warmth,", low)
	if err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}
	if html == "" {
		t.Fatal("empty HTML body")
	}

	// --- Step 5: Determinism ---
	t.Log("--- Step 5: Re-planning determinism ---")
	again := p.PlanDay(date, dishes, snapshot)
	a, b := plan.SelectedNames(), again.SelectedNames()
	if len(a) != len(b) {
		t.Fatalf("re-plan changed selection size: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("re-plan differs at %d: %s vs %s", i, a[i], b[i])
		}
	}
}
