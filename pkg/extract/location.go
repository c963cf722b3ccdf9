// Package extract holds the heuristic text analysis used by the chat turn:
// where the user is (county, city, state) and what kind of legal matter they
// describe. Everything here is best effort and pure; a miss is reported as an
// error, never papered over with a guessed location.
package extract

import (
	"strings"

	"lawpro-be/pkg/apperr"
)

// Location is a best-guess place. Any component may be empty.
type Location struct {
	County string
	City   string
	State  string
	// Parish is set when the user called the county a parish.
	Parish bool
}

func (l Location) IsZero() bool {
	return l.County == "" && l.City == "" && l.State == ""
}

// String renders "X County, Y" (or "X Parish, Y"), "City, Y" or "Y".
func (l Location) String() string {
	var place string
	switch {
	case l.County != "":
		suffix := " County"
		if l.Parish {
			suffix = " Parish"
		}
		place = l.County + suffix
	case l.City != "":
		place = l.City
	}
	switch {
	case place != "" && l.State != "":
		return place + ", " + l.State
	case place != "":
		return place
	default:
		return l.State
	}
}

// LocationExtractor runs the alias table, the ordered rule table and the
// state-name fallbacks against free text.
type LocationExtractor struct {
	rules   []LocationRule
	aliases []Alias
}

func NewLocationExtractor() *LocationExtractor {
	return &LocationExtractor{
		rules:   DefaultLocationRules(),
		aliases: DefaultAliases(),
	}
}

// NewLocationExtractorWith builds an extractor over custom tables.
func NewLocationExtractorWith(rules []LocationRule, aliases []Alias) *LocationExtractor {
	return &LocationExtractor{rules: rules, aliases: aliases}
}

// Extract returns the first location found in text or a NoLocationFound error.
func (e *LocationExtractor) Extract(text string) (Location, error) {
	loc, _, err := e.Match(text)
	return loc, err
}

// Match is Extract that also names the rule which produced the location.
func (e *LocationExtractor) Match(text string) (Location, string, error) {
	original := normalizeSpace(text)
	lower := asciiLower(original)

	if !mentionsState(original) {
		if loc, ok := matchAlias(e.aliases, lower); ok {
			return loc, RuleAlias, nil
		}
	}

	for _, rule := range e.rules {
		if loc, ok := rule.apply(lower); ok {
			return withMentionedState(loc, lower), rule.Name, nil
		}
	}

	for _, rule := range e.rules {
		if !weakCueRules[rule.Name] {
			continue
		}
		if loc, ok := rule.applyCapitalised(original, lower); ok {
			return withMentionedState(loc, lower), rule.Name, nil
		}
	}

	if loc, ok := scanStateName(original, lower); ok {
		return loc, RuleStateName, nil
	}
	if loc, ok := scanStateCode(original); ok {
		return loc, RuleStateCode, nil
	}

	return Location{}, "", apperr.New(apperr.KindNoLocationFound, "no location found in message")
}

func withMentionedState(loc Location, lower string) Location {
	if loc.State == "" {
		if m := statePattern.FindString(lower); m != "" {
			loc.State = usStates[m]
		}
	}
	return loc
}

// ParseLocation splits a location string such as "Lane County, Oregon",
// "Eugene, OR", "portland oregon" or "Oregon" into components.
func ParseLocation(s string) Location {
	s = strings.TrimSpace(normalizeSpace(s))
	if s == "" {
		return Location{}
	}
	if state := ResolveState(s); state != "" {
		return Location{State: state}
	}
	lower := asciiLower(s)

	if m := countyLiteral.FindStringSubmatch(lower); m != nil {
		return Location{
			County: titleCase(strings.TrimSpace(m[1])),
			State:  ResolveState(m[3]),
			Parish: m[2] == "parish",
		}
	}

	if i := strings.LastIndex(lower, ","); i >= 0 {
		left := strings.TrimSpace(lower[:i])
		if state := ResolveState(lower[i+1:]); state != "" {
			return Location{City: titleCase(left), State: state}
		}
	}

	if city, state := trailingState(lower); state != "" {
		return Location{City: titleCase(city), State: state}
	}
	return Location{City: titleCase(strings.Trim(lower, " ,."))}
}

// titleCase upper-cases the first letter of every word and of every
// hyphenated part ("miami-dade" -> "Miami-Dade").
func titleCase(s string) string {
	b := []byte(strings.TrimSpace(s))
	start := true
	for i, c := range b {
		if start && c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
		start = c == ' ' || c == '-'
	}
	return string(b)
}

// asciiLower lower-cases ASCII letters only so byte offsets in the result
// line up with the input.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
