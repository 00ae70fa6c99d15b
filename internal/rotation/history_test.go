package rotation

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"nigela/internal/database"
	"nigela/internal/menu"
	"nigela/internal/planner"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db.SQL
}

func planWith(date time.Time, meal menu.MealType, slot, dishName string) planner.DayPlan {
	return planner.DayPlan{
		Date: date,
		Meals: map[menu.MealType]map[string]menu.Dish{
			meal: {slot: {Name: dishName, MealType: meal}},
		},
	}
}

func TestAvailableItemsExcludesRecentlyUsed(t *testing.T) {
	db := openTestDB(t)
	m := NewManager(db, DefaultWindowDays)
	ctx := context.Background()

	yesterday := time.Now().AddDate(0, 0, -1)
	plan := planWith(yesterday, menu.MealLunch, "dal", "toor_dal_gujarati")
	if err := m.RecordDay(ctx, plan); err != nil {
		t.Fatalf("RecordDay failed: %v", err)
	}

	available, err := m.AvailableItems(ctx, "dal", DefaultWindowDays)
	if err != nil {
		t.Fatalf("AvailableItems failed: %v", err)
	}

	for _, item := range available {
		if item == "toor_dal_gujarati" {
			t.Error("expected recently used dal to be excluded")
		}
	}
	found := false
	for _, item := range available {
		if item == "masoor_dal_tadka" {
			found = true
		}
	}
	if !found {
		t.Error("expected unused dal to stay available")
	}
}

func TestAvailableItemsFallback(t *testing.T) {
	db := openTestDB(t)
	m := NewManager(db, DefaultWindowDays)
	ctx := context.Background()

	// Use every khichdi inside the window so the filter leaves nothing.
	// Each on its own day: recording twice for one date replaces the entry.
	for i, name := range rotationItems["khichdi"] {
		date := time.Now().AddDate(0, 0, -i)
		plan := planWith(date, menu.MealDinner, "khichdi", name)
		if err := m.RecordDay(ctx, plan); err != nil {
			t.Fatalf("RecordDay failed: %v", err)
		}
	}

	available, err := m.AvailableItems(ctx, "khichdi", DefaultWindowDays)
	if err != nil {
		t.Fatalf("AvailableItems failed: %v", err)
	}
	if len(available) != fallbackSize {
		t.Fatalf("expected fallback of %d items, got %d", fallbackSize, len(available))
	}
	for i, item := range available {
		if item != rotationItems["khichdi"][i] {
			t.Errorf("fallback item %d: expected %s, got %s", i, rotationItems["khichdi"][i], item)
		}
	}
}

func TestAvailableItemsUnknownCategory(t *testing.T) {
	db := openTestDB(t)
	m := NewManager(db, DefaultWindowDays)

	if _, err := m.AvailableItems(context.Background(), "desserts", DefaultWindowDays); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestRecordDayPrunesOldEntries(t *testing.T) {
	db := openTestDB(t)
	m := NewManager(db, DefaultWindowDays)
	ctx := context.Background()

	old := planWith(time.Now().AddDate(0, 0, -30), menu.MealLunch, "rice", "jeera_rice")
	if err := m.RecordDay(ctx, old); err != nil {
		t.Fatalf("RecordDay failed: %v", err)
	}
	fresh := planWith(time.Now(), menu.MealLunch, "rice", "lemon_rice")
	if err := m.RecordDay(ctx, fresh); err != nil {
		t.Fatalf("RecordDay failed: %v", err)
	}

	dates, err := m.RecentDates(ctx)
	if err != nil {
		t.Fatalf("RecentDates failed: %v", err)
	}
	cutoff := time.Now().AddDate(0, 0, -DefaultWindowDays)
	for _, d := range dates {
		if d.Before(cutoff.AddDate(0, 0, -1)) {
			t.Errorf("entry dated %s survived pruning", d.Format("2006-01-02"))
		}
	}
	if len(dates) != 1 {
		t.Errorf("expected exactly one surviving entry, got %d", len(dates))
	}
}

func TestRecordDayReplacesSameDate(t *testing.T) {
	db := openTestDB(t)
	m := NewManager(db, DefaultWindowDays)
	ctx := context.Background()

	today := time.Now()
	if err := m.RecordDay(ctx, planWith(today, menu.MealLunch, "rice", "jeera_rice")); err != nil {
		t.Fatalf("RecordDay failed: %v", err)
	}
	if err := m.RecordDay(ctx, planWith(today, menu.MealLunch, "rice", "lemon_rice")); err != nil {
		t.Fatalf("second RecordDay failed: %v", err)
	}

	dates, err := m.RecentDates(ctx)
	if err != nil {
		t.Fatalf("RecentDates failed: %v", err)
	}
	if len(dates) != 1 {
		t.Errorf("expected one entry after re-recording the same date, got %d", len(dates))
	}
}

func TestCorruptedHistoryTreatedAsEmpty(t *testing.T) {
	db := openTestDB(t)
	m := NewManager(db, DefaultWindowDays)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO meal_history (id, plan_date, data, created_at) VALUES (?, ?, ?, ?)`,
		"bad-row", time.Now().Format("2006-01-02"), "{not json", time.Now())
	if err != nil {
		t.Fatalf("failed to insert corrupted row: %v", err)
	}

	available, err := m.AvailableItems(ctx, "dal", DefaultWindowDays)
	if err != nil {
		t.Fatalf("expected corruption to degrade, not fail: %v", err)
	}
	if len(available) != len(rotationItems["dal"]) {
		t.Errorf("expected full dal list with corrupted history, got %d items", len(available))
	}
}

func TestCategoryForSlot(t *testing.T) {
	cases := map[string]string{
		"dal":            "dal",
		"rice":           "rice",
		"khichdi":        "khichdi",
		"roti":           "roti_flour",
		"bread":          "roti_flour",
		"vegetable":      "vegetables",
		"vegetable_west": "vegetables",
		"soup":           "soup",
	}
	for slot, want := range cases {
		if got := CategoryForSlot(slot); got != want {
			t.Errorf("CategoryForSlot(%s): expected %s, got %s", slot, want, got)
		}
	}
}
