package rotation

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"nigela/internal/planner"
)

// DefaultWindowDays is the rolling repetition-avoidance window.
const DefaultWindowDays = 14

const dateLayout = "2006-01-02"

// UsedItem records one selected dish inside a day's history entry.
type UsedItem struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// DayRecord is one persisted history entry.
type DayRecord struct {
	Date  time.Time
	Meals map[string][]UsedItem
}

// Manager owns the durable rotation history: a rolling window of which dish
// was used on which day, pruned on every write. One planning run owns the
// whole read-modify-write cycle; concurrent planners must serialize access
// or updates are lost.
type Manager struct {
	db         *sql.DB
	windowDays int
	now        func() time.Time
}

// NewManager creates a Manager with the given window. A window of 0 uses
// DefaultWindowDays.
func NewManager(db *sql.DB, windowDays int) *Manager {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	return &Manager{db: db, windowDays: windowDays, now: time.Now}
}

// AvailableItems returns the items of a rotation category not used within
// the last excludeDays days. When the filter leaves nothing, the first few
// items of the static list are returned instead of failing.
func (m *Manager) AvailableItems(ctx context.Context, category string, excludeDays int) ([]string, error) {
	items, ok := rotationItems[category]
	if !ok {
		return nil, fmt.Errorf("unknown rotation category %q", category)
	}
	if excludeDays <= 0 {
		excludeDays = m.windowDays
	}

	recent := make(map[string]bool)
	for _, rec := range m.loadWindow(ctx, excludeDays) {
		for _, meal := range rec.Meals {
			for _, item := range meal {
				if item.Category == category {
					recent[item.Name] = true
				}
			}
		}
	}

	available := make([]string, 0, len(items))
	for _, item := range items {
		if !recent[item] {
			available = append(available, item)
		}
	}
	if len(available) == 0 {
		// Whole category exhausted inside the window; reuse the head of the
		// static list rather than returning nothing.
		available = append(available, items[:fallbackSize]...)
	}
	return available, nil
}

// RecordDay appends the day's selections to history and prunes entries that
// have fallen out of the window. Re-recording the same date replaces the
// earlier entry.
func (m *Manager) RecordDay(ctx context.Context, plan planner.DayPlan) error {
	rec := recordFromPlan(plan)

	data, err := json.Marshal(rec.Meals)
	if err != nil {
		return fmt.Errorf("failed to marshal history record: %w", err)
	}

	_, err = m.db.ExecContext(ctx,
		`INSERT INTO meal_history (id, plan_date, data, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (plan_date) DO UPDATE SET data = excluded.data, created_at = excluded.created_at`,
		uuid.NewString(), rec.Date.Format(dateLayout), string(data), m.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record day in history: %w", err)
	}

	return m.prune(ctx)
}

// RecentDates returns the dates currently held in the window, oldest first.
func (m *Manager) RecentDates(ctx context.Context) ([]time.Time, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT plan_date FROM meal_history ORDER BY plan_date`)
	if err != nil {
		return nil, fmt.Errorf("failed to list history dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			log.Printf("Warning: malformed history date %q: %v", raw, err)
			continue
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// Prune removes entries older than the configured window.
func (m *Manager) Prune(ctx context.Context) error {
	return m.prune(ctx)
}

func (m *Manager) prune(ctx context.Context) error {
	cutoff := m.now().AddDate(0, 0, -m.windowDays).Format(dateLayout)
	if _, err := m.db.ExecContext(ctx, `DELETE FROM meal_history WHERE plan_date < ?`, cutoff); err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	return nil
}

// loadWindow reads the history entries within the last excludeDays days.
// Unreadable or malformed history degrades to an empty window with a
// warning; planning proceeds with reduced anti-repetition quality.
func (m *Manager) loadWindow(ctx context.Context, excludeDays int) []DayRecord {
	cutoff := m.now().AddDate(0, 0, -excludeDays).Format(dateLayout)
	rows, err := m.db.QueryContext(ctx,
		`SELECT plan_date, data FROM meal_history WHERE plan_date > ?`, cutoff)
	if err != nil {
		log.Printf("Warning: rotation history unreadable, treating as empty: %v", err)
		return nil
	}
	defer rows.Close()

	var recs []DayRecord
	for rows.Next() {
		var rawDate, data string
		if err := rows.Scan(&rawDate, &data); err != nil {
			log.Printf("Warning: rotation history row unreadable, skipping: %v", err)
			continue
		}
		date, err := time.Parse(dateLayout, rawDate)
		if err != nil {
			log.Printf("Warning: malformed history date %q, skipping: %v", rawDate, err)
			continue
		}
		var meals map[string][]UsedItem
		if err := json.Unmarshal([]byte(data), &meals); err != nil {
			log.Printf("Warning: corrupted history entry for %s, skipping: %v", rawDate, err)
			continue
		}
		recs = append(recs, DayRecord{Date: date, Meals: meals})
	}
	return recs
}

func recordFromPlan(plan planner.DayPlan) DayRecord {
	rec := DayRecord{
		Date:  plan.Date,
		Meals: make(map[string][]UsedItem, len(plan.Meals)),
	}
	for meal, slots := range plan.Meals {
		for slot, d := range slots {
			rec.Meals[string(meal)] = append(rec.Meals[string(meal)], UsedItem{
				Name:     strings.ToLower(d.Name),
				Category: CategoryForSlot(slot),
			})
		}
	}
	return rec
}
