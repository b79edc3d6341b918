// Package measurement converts quantities between kitchen measurement units.
// Units are partitioned into disjoint dimension classes; a conversion path
// only ever exists inside one class. Absence of a path is a normal outcome,
// not an error: callers use it to decide whether a candidate item can serve
// an ingredient at all.
package measurement

import "strings"

// Forward conversion table. One direction is stored per unit pair; the
// reverse direction is derived from the same entry, which keeps round trips
// exactly symmetric without doubling the table.
var factors = map[string]map[string]float64{
	// Weight
	"kg": {"g": 1000, "lb": 2.20462, "oz": 35.274},
	"lb": {"g": 453.592, "oz": 16},
	"oz": {"g": 28.3495},

	// Volume
	"l":    {"ml": 1000, "cup": 4.22675, "tbsp": 67.628, "tsp": 202.884},
	"cup":  {"ml": 236.588, "tbsp": 16, "tsp": 48},
	"tbsp": {"ml": 14.7868, "tsp": 3},
	"tsp":  {"ml": 4.92892},
}

func normalize(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}

// Convert converts quantity from one unit to another. The second return
// value is false when no conversion path exists, which includes any pair of
// units from different dimension classes and any unknown unit paired with
// anything but itself.
func Convert(quantity float64, fromUnit, toUnit string) (float64, bool) {
	from := normalize(fromUnit)
	to := normalize(toUnit)

	if from == to {
		return quantity, true
	}

	if forward, ok := factors[from]; ok {
		if factor, ok := forward[to]; ok {
			return quantity * factor, true
		}
	}

	// Derived reverse direction.
	if reverse, ok := factors[to]; ok {
		if factor, ok := reverse[from]; ok {
			return quantity / factor, true
		}
	}

	return 0, false
}

// AreCompatible reports whether two units share a conversion path.
// Every unit, known or not, is compatible with itself.
func AreCompatible(unitA, unitB string) bool {
	if normalize(unitA) == normalize(unitB) {
		return true
	}
	_, ok := Convert(1, unitA, unitB)
	return ok
}

// KnownUnits returns the closed vocabulary of convertible units
func KnownUnits() []string {
	seen := map[string]bool{}
	var units []string
	for from, tos := range factors {
		if !seen[from] {
			seen[from] = true
			units = append(units, from)
		}
		for to := range tos {
			if !seen[to] {
				seen[to] = true
				units = append(units, to)
			}
		}
	}
	return units
}
