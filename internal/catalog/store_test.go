package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"nigela/internal/database"
	"nigela/internal/menu"
	"nigela/internal/pantry"
	"nigela/internal/planner"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db.SQL)
}

func TestMergeDishesDeduplicates(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := menu.Dish{Name: "Jeera Rice", MealType: menu.MealLunch, Tags: menu.ParseTags([]string{"lunch:rice"})}
	added, err := store.MergeDishes(ctx, []menu.Dish{first})
	if err != nil {
		t.Fatalf("MergeDishes failed: %v", err)
	}
	if added != 1 {
		t.Fatalf("expected 1 dish added, got %d", added)
	}

	// Same key, different case; the incoming record must be dropped.
	dup := menu.Dish{Name: "JEERA RICE", MealType: "Lunch", CookMinutes: 99}
	added, err = store.MergeDishes(ctx, []menu.Dish{dup})
	if err != nil {
		t.Fatalf("MergeDishes failed: %v", err)
	}
	if added != 0 {
		t.Errorf("expected duplicate to be dropped, added=%d", added)
	}

	dishes, err := store.ListDishes(ctx)
	if err != nil {
		t.Fatalf("ListDishes failed: %v", err)
	}
	if len(dishes) != 1 {
		t.Fatalf("expected 1 dish, got %d", len(dishes))
	}
	if dishes[0].CookMinutes == 99 {
		t.Error("duplicate record overwrote the original")
	}

	count, err := store.CountDishes(ctx)
	if err != nil {
		t.Fatalf("CountDishes failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
}

func TestListDishesKeepsInsertionOrder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	batch := []menu.Dish{
		{Name: "Lemon Rice", MealType: menu.MealLunch},
		{Name: "Curd Rice", MealType: menu.MealLunch},
	}
	if _, err := store.MergeDishes(ctx, batch); err != nil {
		t.Fatalf("MergeDishes failed: %v", err)
	}

	dishes, err := store.ListDishes(ctx)
	if err != nil {
		t.Fatalf("ListDishes failed: %v", err)
	}
	if len(dishes) != 2 {
		t.Fatalf("expected 2 dishes, got %d", len(dishes))
	}
}

func TestPantrySnapshotRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	e := pantry.Entry{Ingredient: "rice", Unit: "g", QtyOnHand: 500, MinPar: 100}
	if err := store.UpsertPantry(ctx, e); err != nil {
		t.Fatalf("UpsertPantry failed: %v", err)
	}
	// Upsert replaces in place.
	e.QtyOnHand = 350
	if err := store.UpsertPantry(ctx, e); err != nil {
		t.Fatalf("UpsertPantry update failed: %v", err)
	}

	snap, err := store.PantrySnapshot(ctx)
	if err != nil {
		t.Fatalf("PantrySnapshot failed: %v", err)
	}
	if got := snap.OnHand("rice"); got != 350 {
		t.Errorf("expected 350 on hand, got %v", got)
	}
}

func TestVariantsRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.UpsertVariant(ctx, planner.GroupAdult, "rice", "brown rice, 1/2 cup"); err != nil {
		t.Fatalf("UpsertVariant failed: %v", err)
	}

	v, err := store.Variants(ctx)
	if err != nil {
		t.Fatalf("Variants failed: %v", err)
	}
	adults, kids := v.Resolve("rice")
	if adults != "brown rice, 1/2 cup" {
		t.Errorf("unexpected adult note: %q", adults)
	}
	if kids != "" {
		t.Errorf("expected empty kids note, got %q", kids)
	}
}

func TestSeedProvidesPlannableCatalogue(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	count, err := store.CountDishes(ctx)
	if err != nil {
		t.Fatalf("CountDishes failed: %v", err)
	}
	if count == 0 {
		t.Fatal("expected seeded dishes")
	}

	snap, err := store.PantrySnapshot(ctx)
	if err != nil {
		t.Fatalf("PantrySnapshot failed: %v", err)
	}
	dishes, err := store.ListDishes(ctx)
	if err != nil {
		t.Fatalf("ListDishes failed: %v", err)
	}

	// The seed data must be self-consistent: every seeded dish is cookable
	// from the seeded pantry, so a fresh install never starts with a
	// disqualified flagship dish.
	for _, d := range dishes {
		if !snap.CanCook(d) {
			t.Errorf("seeded dish %q is not cookable from the seeded pantry", d.Name)
		}
	}

	// Seeding twice must not duplicate anything.
	if err := store.Seed(ctx); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}
	again, _ := store.CountDishes(ctx)
	if again != count {
		t.Errorf("re-seeding changed dish count from %d to %d", count, again)
	}
}
