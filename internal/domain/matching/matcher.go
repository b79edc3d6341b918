// Package matching decides whether an inventory item plausibly is a named
// ingredient. The rules deliberately favor precision over recall: an
// unmatched ingredient surfaces as insufficient, which is visible and safe,
// while a wrong match silently consumes the wrong stock.
package matching

import "strings"

// IsMatch reports whether an inventory item name plausibly refers to the
// same food as an ingredient name. Matching is token-level; raw substring
// hits are rejected so that "salt" never matches "salted butter".
func IsMatch(itemName, ingredientName string) bool {
	item := normalize(itemName)
	ingredient := normalize(ingredientName)

	if item == "" || ingredient == "" {
		return false
	}
	if item == ingredient {
		return true
	}

	itemWords := strings.Fields(item)
	ingredientWords := strings.Fields(ingredient)

	if len(ingredientWords) > 1 {
		// Every ingredient word must equal, or be a prefix of, some
		// item word.
		for _, w := range ingredientWords {
			if !anyWordHasPrefix(itemWords, w) {
				return false
			}
		}
		return true
	}

	w := ingredientWords[0]

	if containsWord(itemWords, w) {
		return true
	}

	for _, variant := range Variants(w) {
		if containsWord(itemWords, variant) {
			return true
		}
	}

	// Whole-token boundary test on the raw string. This is intentionally
	// not a substring test.
	if strings.HasPrefix(item, w+" ") || strings.HasSuffix(item, " "+w) || strings.Contains(item, " "+w+" ") {
		return true
	}

	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsWord(words []string, w string) bool {
	for _, word := range words {
		if word == w {
			return true
		}
	}
	return false
}

func anyWordHasPrefix(words []string, prefix string) bool {
	for _, word := range words {
		if word == prefix || strings.HasPrefix(word, prefix) {
			return true
		}
	}
	return false
}
