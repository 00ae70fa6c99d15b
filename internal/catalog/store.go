package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"nigela/internal/menu"
	"nigela/internal/pantry"
	"nigela/internal/planner"
)

// Store is the database-backed catalogue: dishes, pantry stock and variant
// notes. It is the planner's only data source; an unreadable store is a
// fatal configuration error at planner start.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store over an open database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// MergeDishes inserts dishes into the catalogue, de-duplicated by
// (lower(name), lower(meal_type)). Records colliding with an existing key
// are dropped. Returns the number of dishes actually added.
func (s *Store) MergeDishes(ctx context.Context, dishes []menu.Dish) (int, error) {
	added := 0
	for _, d := range dishes {
		data, err := json.Marshal(d)
		if err != nil {
			return added, fmt.Errorf("failed to marshal dish %q: %w", d.Name, err)
		}

		key := d.Key()
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO dishes (name, meal_type, data, created_at)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT (name, meal_type) DO NOTHING`,
			key.Name, key.MealType, string(data), time.Now().UTC(),
		)
		if err != nil {
			return added, fmt.Errorf("failed to insert dish %q: %w", d.Name, err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			added++
		}
	}
	return added, nil
}

// ListDishes returns the full catalogue in insertion order. Catalogue order
// is the planner's tie-break, so the ordering here is part of the contract.
func (s *Store) ListDishes(ctx context.Context) ([]menu.Dish, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, data FROM dishes ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}
	defer rows.Close()

	var dishes []menu.Dish
	for rows.Next() {
		var name, data string
		if err := rows.Scan(&name, &data); err != nil {
			return nil, fmt.Errorf("failed to scan dish row: %w", err)
		}
		var d menu.Dish
		if err := json.Unmarshal([]byte(data), &d); err != nil {
			log.Printf("Warning: skipping unreadable dish record %q: %v", name, err)
			continue
		}
		dishes = append(dishes, d)
	}
	return dishes, rows.Err()
}

// CountDishes returns the number of dishes in the catalogue.
func (s *Store) CountDishes(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM dishes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count dishes: %w", err)
	}
	return count, nil
}

// UpsertPantry writes one pantry entry, replacing any existing entry for the
// same normalized ingredient name.
func (s *Store) UpsertPantry(ctx context.Context, e pantry.Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pantry (ingredient, unit, qty_on_hand, min_par)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (ingredient) DO UPDATE SET
		   unit = excluded.unit,
		   qty_on_hand = excluded.qty_on_hand,
		   min_par = excluded.min_par`,
		e.Ingredient, e.Unit, e.QtyOnHand, e.MinPar,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert pantry entry %q: %w", e.Ingredient, err)
	}
	return nil
}

// PantrySnapshot loads current stock as a read-only snapshot for one
// planning run.
func (s *Store) PantrySnapshot(ctx context.Context) (pantry.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT ingredient, unit, qty_on_hand, min_par FROM pantry`)
	if err != nil {
		return nil, fmt.Errorf("failed to load pantry: %w", err)
	}
	defer rows.Close()

	snap := make(pantry.Snapshot)
	for rows.Next() {
		var e pantry.Entry
		if err := rows.Scan(&e.Ingredient, &e.Unit, &e.QtyOnHand, &e.MinPar); err != nil {
			return nil, fmt.Errorf("failed to scan pantry row: %w", err)
		}
		snap[e.Ingredient] = e
	}
	return snap, rows.Err()
}

// UpsertVariant writes one serving note keyed by (person_group, slot_name).
func (s *Store) UpsertVariant(ctx context.Context, group planner.PersonGroup, slot, notes string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO variants (person_group, slot_name, notes)
		 VALUES (?, ?, ?)
		 ON CONFLICT (person_group, slot_name) DO UPDATE SET notes = excluded.notes`,
		string(group), slot, notes,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert variant (%s, %s): %w", group, slot, err)
	}
	return nil
}

// Variants loads the full serving-note lookup table.
func (s *Store) Variants(ctx context.Context) (planner.Variants, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT person_group, slot_name, notes FROM variants`)
	if err != nil {
		return nil, fmt.Errorf("failed to load variants: %w", err)
	}
	defer rows.Close()

	v := make(planner.Variants)
	for rows.Next() {
		var group, slot, notes string
		if err := rows.Scan(&group, &slot, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan variant row: %w", err)
		}
		v[planner.VariantKey{Group: planner.PersonGroup(group), Slot: slot}] = notes
	}
	return v, rows.Err()
}
