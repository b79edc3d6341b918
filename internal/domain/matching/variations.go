package matching

// Variation tables map a base form to its plural and spelling variants, per
// language. They are kept as explicit data rather than a stemmer so that
// matching stays deterministic and auditable: every equivalence the matcher
// will ever accept is listed here.
var variations = map[string]map[string][]string{
	"en": {
		"tomato":   {"tomatoes"},
		"potato":   {"potatoes"},
		"onion":    {"onions"},
		"carrot":   {"carrots"},
		"egg":      {"eggs"},
		"apple":    {"apples"},
		"banana":   {"bananas"},
		"pepper":   {"peppers"},
		"mushroom": {"mushrooms"},
		"berry":    {"berries"},
		"chili":    {"chilli", "chilis", "chillies"},
		"yogurt":   {"yoghurt"},
		"scallion": {"scallions", "spring onion", "green onion"},
	},
	"de": {
		"tomate":    {"tomaten"},
		"kartoffel": {"kartoffeln"},
		"zwiebel":   {"zwiebeln"},
		"karotte":   {"karotten", "möhre", "möhren"},
		"ei":        {"eier"},
		"apfel":     {"äpfel"},
		"pilz":      {"pilze"},
		"paprika":   {"paprikas"},
	},
}

// variantIndex resolves any listed form to all of its counterparts, in both
// directions, across every language table. Built once at package init.
var variantIndex = buildVariantIndex()

func buildVariantIndex() map[string][]string {
	index := make(map[string][]string)
	add := func(from, to string) {
		for _, existing := range index[from] {
			if existing == to {
				return
			}
		}
		index[from] = append(index[from], to)
	}

	for _, table := range variations {
		for base, variants := range table {
			for _, v := range variants {
				add(base, v)
				add(v, base)
				// Variants of the same base are equivalent to each
				// other too.
				for _, other := range variants {
					if other != v {
						add(v, other)
					}
				}
			}
		}
	}
	return index
}

// Variants returns every known equivalent form of the given word, or nil
// when the word appears in no variation table.
func Variants(word string) []string {
	return variantIndex[normalize(word)]
}
