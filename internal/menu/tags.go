package menu

import (
	"encoding/json"
	"strings"
)

const cuisinePrefix = "cuisine:"

// SlotRef ties a dish to a slot within a meal, e.g. {Meal: "lunch", Slot: "dal"}.
type SlotRef struct {
	Meal string
	Slot string
}

// TagSet is the structured form of a dish's tags. The catalogue historically
// encoded everything as flat strings ("lunch:dal", "cuisine:gujarati",
// "jain"); TagSet keeps the three kinds apart so queries are type-checked,
// and round-trips losslessly to the flat encoding for persistence.
type TagSet struct {
	Slots   []SlotRef
	Cuisine string
	Flags   []string
}

// ParseTags builds a TagSet from the flat string encoding. Tags are
// normalized to lowercase. A tag with a colon is either a cuisine tag or a
// meal:slot reference; anything else is a dietary/feature flag.
func ParseTags(raw []string) TagSet {
	var ts TagSet
	for _, t := range raw {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		switch {
		case strings.HasPrefix(t, cuisinePrefix):
			ts.Cuisine = strings.TrimPrefix(t, cuisinePrefix)
		case strings.Contains(t, ":"):
			parts := strings.SplitN(t, ":", 2)
			ts.Slots = append(ts.Slots, SlotRef{Meal: parts[0], Slot: parts[1]})
		default:
			ts.Flags = append(ts.Flags, t)
		}
	}
	return ts
}

// Strings reconstructs the flat encoding: slot refs first, then the cuisine
// tag, then flags, matching how catalogue rows are stored.
func (ts TagSet) Strings() []string {
	out := make([]string, 0, len(ts.Slots)+len(ts.Flags)+1)
	for _, s := range ts.Slots {
		out = append(out, s.Meal+":"+s.Slot)
	}
	if ts.Cuisine != "" {
		out = append(out, cuisinePrefix+ts.Cuisine)
	}
	out = append(out, ts.Flags...)
	return out
}

// HasSlot reports whether the dish is tagged into the exact meal/slot pair.
func (ts TagSet) HasSlot(meal, slot string) bool {
	for _, s := range ts.Slots {
		if s.Meal == meal && s.Slot == slot {
			return true
		}
	}
	return false
}

// HasFlag reports whether a dietary/feature flag like "jain" is present.
func (ts TagSet) HasFlag(flag string) bool {
	for _, f := range ts.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// HasCuisine reports whether the dish carries explicit cuisine metadata.
func (ts TagSet) HasCuisine() bool {
	return ts.Cuisine != ""
}

// AnyContains reports whether any tag, in its flat form, contains the given
// substring. The planner uses this to broaden snack-slot candidate searches.
func (ts TagSet) AnyContains(sub string) bool {
	for _, t := range ts.Strings() {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}

// MarshalJSON stores the flat encoding so catalogue rows stay readable and
// compatible with externally produced dish records.
func (ts TagSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.Strings())
}

// UnmarshalJSON accepts the flat encoding.
func (ts *TagSet) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*ts = ParseTags(raw)
	return nil
}
