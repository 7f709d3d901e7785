package builder

import (
	"fmt"
	"strings"
)

var romanValues = map[byte]int{'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000}

// English words made only of numeral letters
var numeralLookalikes = map[string]bool{
	"ill": true, "did": true, "mid": true, "dim": true, "mil": true, "mix": true,
	"vim": true, "civil": true, "livid": true, "mild": true, "vivid": true,
}

// ParseNumeral converts a lower- or upper-case roman numeral to its value
func ParseNumeral(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty numeral")
	}
	if numeralLookalikes[strings.ToLower(s)] {
		return 0, fmt.Errorf("%q is a word, not a numeral", s)
	}

	upper := strings.ToUpper(s)
	total := 0
	for i := 0; i < len(upper); i++ {
		v, ok := romanValues[upper[i]]
		if !ok {
			return 0, fmt.Errorf("invalid numeral %q", s)
		}
		if i+1 < len(upper) && v < romanValues[upper[i+1]] {
			total -= v
		} else {
			total += v
		}
	}
	if total <= 0 {
		return 0, fmt.Errorf("invalid numeral %q", s)
	}
	return total, nil
}

var numeralSteps = []struct {
	value  int
	symbol string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

// FormatNumeral returns the lower-case canonical numeral for n > 0
func FormatNumeral(n int) string {
	var b strings.Builder
	for _, step := range numeralSteps {
		for n >= step.value {
			b.WriteString(step.symbol)
			n -= step.value
		}
	}
	return b.String()
}
