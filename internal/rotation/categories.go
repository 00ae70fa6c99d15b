package rotation

import "sort"

// Rotation categories and their static item lists. AvailableItems filters
// these against the recent-use window; the first few items double as the
// fallback when everything has been used recently.
var rotationItems = map[string][]string{
	"dal": {
		"toor_dal_gujarati", "masoor_dal_tadka", "moong_dal_simple", "chana_dal_spicy",
		"mixed_dal", "spinach_dal", "bottle_gourd_dal", "tomato_dal",
		"coconut_dal_south", "rajasthani_dal", "bengali_dal", "punjabi_dal",
		"quinoa_dal_fusion", "red_kidney_bean_curry",
	},
	"roti_flour": {
		"wheat_phulka", "bajra_roti", "jowar_roti", "ragi_roti",
		"methi_thepla", "palak_paratha", "beetroot_paratha", "carrot_paratha",
		"multigrain_roti", "oats_roti", "quinoa_roti", "amaranth_roti",
		"stuffed_aloo_paratha", "stuffed_gobi_paratha",
	},
	"khichdi": {
		"moong_dal_khichdi", "quinoa_khichdi", "bajra_khichdi", "vegetable_khichdi",
		"masoor_khichdi", "mixed_millet_khichdi", "spinach_khichdi", "tomato_khichdi",
		"coconut_khichdi", "lemon_khichdi", "curry_leaf_khichdi", "ginger_khichdi",
	},
	"vegetables": {
		"bharela_ringna", "aloo_gobi", "bhindi_masala", "lauki_curry",
		"turai_sabzi", "karela_fry", "baingan_bharta", "palak_paneer",
		"matar_paneer", "mixed_vegetable_curry", "cabbage_poriyal", "beans_poriyal",
		"drumstick_curry", "ridge_gourd_dal", "bottle_gourd_kofta",
	},
	"rice": {
		"plain_basmati", "jeera_rice", "lemon_rice", "coconut_rice",
		"vegetable_pulao", "quinoa_pilaf", "brown_rice", "red_rice",
		"turmeric_rice", "mint_rice", "tomato_rice", "curd_rice",
	},
}

// fallbackSize is how many items of a category's static list are returned
// when the recency filter leaves nothing.
const fallbackSize = 3

// Categories lists the known rotation categories, sorted.
func Categories() []string {
	out := make([]string, 0, len(rotationItems))
	for c := range rotationItems {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// CategoryForSlot maps a plan slot name onto a rotation category. Categories
// track recency across days and are related to, but not identical with,
// slot names.
func CategoryForSlot(slot string) string {
	switch slot {
	case "dal":
		return "dal"
	case "rice":
		return "rice"
	case "khichdi":
		return "khichdi"
	case "roti", "bread":
		return "roti_flour"
	case "vegetable", "vegetable_west":
		return "vegetables"
	default:
		return slot
	}
}
