package pantry

import (
	"strings"

	"nigela/internal/menu"
)

// Entry is the stock record for one normalized ingredient name.
type Entry struct {
	Ingredient string  `json:"ingredient"`
	Unit       string  `json:"unit"`
	QtyOnHand  float64 `json:"qty_on_hand"`
	MinPar     float64 `json:"min_par"`
}

// Snapshot is the read-only stock state consulted during one planning run.
// Planning never decrements quantities; availability is a gating check only.
type Snapshot map[string]Entry

// OnHand returns the quantity on hand for an ingredient, 0 when absent.
func (s Snapshot) OnHand(item string) float64 {
	e, ok := s[strings.ToLower(strings.TrimSpace(item))]
	if !ok {
		return 0
	}
	return e.QtyOnHand
}

// CanCook reports whether every ingredient of the dish with a specified
// quantity is covered by current stock. Ingredients with Qty 0 ("to taste")
// are exempt.
func (s Snapshot) CanCook(d menu.Dish) bool {
	for _, ing := range d.Ingredients {
		if ing.Item == "" || ing.Qty == 0 {
			continue
		}
		if s.OnHand(ing.Item) < ing.Qty {
			return false
		}
	}
	return true
}

// BelowPar returns entries whose stock has dropped under their minimum par
// level, for the restock section of the menu email.
func (s Snapshot) BelowPar() []Entry {
	var low []Entry
	for _, e := range s {
		if e.MinPar > 0 && e.QtyOnHand < e.MinPar {
			low = append(low, e)
		}
	}
	return low
}
