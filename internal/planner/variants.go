package planner

// PersonGroup selects which household group a variant note targets.
type PersonGroup string

const (
	GroupAdult PersonGroup = "adult"
	GroupKids  PersonGroup = "kids"
)

// VariantKey addresses a serving note by person group and slot name.
type VariantKey struct {
	Group PersonGroup
	Slot  string
}

// Variants is the lookup table of per-group serving notes. Notes are looked
// up, never computed; a missing key simply leaves the dish note empty.
type Variants map[VariantKey]string

// Resolve returns the adult and kids notes for a slot.
func (v Variants) Resolve(slot string) (adults, kids string) {
	return v[VariantKey{Group: GroupAdult, Slot: slot}], v[VariantKey{Group: GroupKids, Slot: slot}]
}
