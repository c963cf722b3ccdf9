package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// Alias overrides generic extraction for place names that the rules get
// wrong or cannot place in a state on their own.
type Alias struct {
	Pattern  *regexp.Regexp
	Location Location
}

// DefaultAliases is consulted only when the text names no state explicitly.
func DefaultAliases() []Alias {
	return []Alias{
		{Pattern: regexp.MustCompile(`\bhampden(?:\s+county)?\b`), Location: Location{County: "Hampden", State: "Massachusetts"}},
		{Pattern: regexp.MustCompile(`\bberkshire\s+county\b`), Location: Location{County: "Berkshire", State: "Massachusetts"}},
		{Pattern: regexp.MustCompile(`\bcook\s+county\b`), Location: Location{County: "Cook", State: "Illinois"}},
		{Pattern: regexp.MustCompile(`\bmiami-dade(?:\s+county)?\b`), Location: Location{County: "Miami-Dade", State: "Florida"}},
		{Pattern: regexp.MustCompile(`\blos\s+angeles\s+county\b`), Location: Location{County: "Los Angeles", State: "California"}},
		{Pattern: regexp.MustCompile(`\bmaricopa(?:\s+county)?\b`), Location: Location{County: "Maricopa", State: "Arizona"}},
		{Pattern: regexp.MustCompile(`\borleans\s+parish\b`), Location: Location{County: "Orleans", State: "Louisiana", Parish: true}},
	}
}

func matchAlias(aliases []Alias, lower string) (Location, bool) {
	for _, a := range aliases {
		if a.Pattern.MatchString(lower) {
			return a.Location, true
		}
	}
	return Location{}, false
}

// scanStateName finds the first full state name and takes the capitalised
// words right before it as a city.
func scanStateName(original, lower string) (Location, bool) {
	loc := statePattern.FindStringIndex(lower)
	if loc == nil {
		return Location{}, false
	}
	return Location{
		City:  precedingProperName(original[:loc[0]]),
		State: usStates[lower[loc[0]:loc[1]]],
	}, true
}

// scanStateCode finds an upper-case USPS code. Codes that double as English
// words only count right after a comma.
func scanStateCode(original string) (Location, bool) {
	for _, m := range abbreviationPattern.FindAllStringSubmatchIndex(original, -1) {
		code := original[m[2]:m[3]]
		state, ok := stateAbbreviations[code]
		if !ok {
			continue
		}
		before := strings.TrimRight(original[:m[2]], " ")
		afterComma := strings.HasSuffix(before, ",")
		if ambiguousAbbreviations[code] && !afterComma {
			continue
		}
		return Location{City: precedingProperName(before), State: state}, true
	}
	return Location{}, false
}

// precedingProperName returns up to three capitalised words that end the
// clause in prefix, skipping stop words and all-caps acronyms.
func precedingProperName(prefix string) string {
	prefix = strings.TrimRight(prefix, " ,")
	if i := strings.LastIndexAny(prefix, ".!?;:"); i >= 0 && !abbreviatedPrefixes[asciiLower(lastToken(prefix[:i]))] {
		prefix = prefix[i+1:]
	}
	words := strings.Fields(prefix)
	var name []string
	for i := len(words) - 1; i >= 0 && len(name) < 3; i-- {
		w := strings.Trim(words[i], ",")
		if !isProperWord(w) || stopWords[asciiLower(w)] {
			break
		}
		name = append([]string{w}, name...)
	}
	joined := strings.Join(name, " ")
	if len(joined) <= 2 {
		return ""
	}
	return joined
}

func isProperWord(w string) bool {
	if w == "" || !unicode.IsUpper(rune(w[0])) {
		return false
	}
	for _, r := range w[1:] {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}
