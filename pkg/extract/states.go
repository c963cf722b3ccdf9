package extract

import (
	"regexp"
	"strings"
)

// usStates maps lower-case state names to their canonical spelling.
var usStates = map[string]string{
	"alabama":              "Alabama",
	"alaska":               "Alaska",
	"arizona":              "Arizona",
	"arkansas":             "Arkansas",
	"california":           "California",
	"colorado":             "Colorado",
	"connecticut":          "Connecticut",
	"delaware":             "Delaware",
	"district of columbia": "District of Columbia",
	"florida":              "Florida",
	"georgia":              "Georgia",
	"hawaii":               "Hawaii",
	"idaho":                "Idaho",
	"illinois":             "Illinois",
	"indiana":              "Indiana",
	"iowa":                 "Iowa",
	"kansas":               "Kansas",
	"kentucky":             "Kentucky",
	"louisiana":            "Louisiana",
	"maine":                "Maine",
	"maryland":             "Maryland",
	"massachusetts":        "Massachusetts",
	"michigan":             "Michigan",
	"minnesota":            "Minnesota",
	"mississippi":          "Mississippi",
	"missouri":             "Missouri",
	"montana":              "Montana",
	"nebraska":             "Nebraska",
	"nevada":               "Nevada",
	"new hampshire":        "New Hampshire",
	"new jersey":           "New Jersey",
	"new mexico":           "New Mexico",
	"new york":             "New York",
	"north carolina":       "North Carolina",
	"north dakota":         "North Dakota",
	"ohio":                 "Ohio",
	"oklahoma":             "Oklahoma",
	"oregon":               "Oregon",
	"pennsylvania":         "Pennsylvania",
	"rhode island":         "Rhode Island",
	"south carolina":       "South Carolina",
	"south dakota":         "South Dakota",
	"tennessee":            "Tennessee",
	"texas":                "Texas",
	"utah":                 "Utah",
	"vermont":              "Vermont",
	"virginia":             "Virginia",
	"washington":           "Washington",
	"west virginia":        "West Virginia",
	"wisconsin":            "Wisconsin",
	"wyoming":              "Wyoming",
}

// stateAbbreviations maps USPS codes to canonical state names.
var stateAbbreviations = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"DC": "District of Columbia", "FL": "Florida", "GA": "Georgia", "HI": "Hawaii",
	"ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine",
	"MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota",
	"MS": "Mississippi", "MO": "Missouri", "MT": "Montana", "NE": "Nebraska",
	"NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico",
	"NY": "New York", "NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island",
	"SC": "South Carolina", "SD": "South Dakota", "TN": "Tennessee", "TX": "Texas",
	"UT": "Utah", "VT": "Vermont", "VA": "Virginia", "WA": "Washington",
	"WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
}

// Codes that are also everyday English words or names. They only count as a
// state when written after a comma ("Eugene, OR").
var ambiguousAbbreviations = map[string]bool{
	"IN": true, "OR": true, "ME": true, "OK": true, "HI": true, "OH": true,
	"LA": true, "AL": true, "ID": true, "MA": true, "PA": true, "CO": true,
	"DE": true,
}

// statePattern matches any full state name; longer names are tried first so
// "west virginia" wins over "virginia".
var statePattern = regexp.MustCompile(`\b(` + buildStateAlternation() + `)\b`)

var abbreviationPattern = regexp.MustCompile(`\b([A-Z]{2})\b`)

// ResolveState turns a full state name or a USPS code (any case) into the
// canonical state name. It returns "" when s is not a state.
func ResolveState(s string) string {
	s = strings.Trim(s, " .,;:!?")
	if s == "" {
		return ""
	}
	if name, ok := usStates[strings.ToLower(s)]; ok {
		return name
	}
	if len(s) == 2 {
		if name, ok := stateAbbreviations[strings.ToUpper(s)]; ok {
			return name
		}
	}
	return ""
}

// leadingState reports the state name that s starts with, if any, either as a
// full name or as a bare two-letter code followed by a boundary.
func leadingState(s string) string {
	s = strings.TrimLeft(s, " ,")
	if loc := statePattern.FindStringIndex(s); loc != nil && loc[0] == 0 {
		return usStates[s[loc[0]:loc[1]]]
	}
	if len(s) >= 2 && (len(s) == 2 || !isLetter(s[2])) {
		if name, ok := stateAbbreviations[strings.ToUpper(s[:2])]; ok {
			return name
		}
	}
	return ""
}

// trailingState splits "portland oregon" into ("portland", "Oregon").
func trailingState(s string) (string, string) {
	matches := statePattern.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return s, ""
	}
	last := matches[len(matches)-1]
	if last[1] != len(s) {
		return s, ""
	}
	return strings.TrimSpace(strings.TrimRight(s[:last[0]], " ,")), usStates[s[last[0]:last[1]]]
}

// mentionsState reports whether text names a state explicitly, either in
// full or with an unambiguous upper-case code.
func mentionsState(original string) bool {
	if statePattern.MatchString(strings.ToLower(original)) {
		return true
	}
	for _, m := range abbreviationPattern.FindAllStringSubmatchIndex(original, -1) {
		code := original[m[2]:m[3]]
		if _, ok := stateAbbreviations[code]; ok && !ambiguousAbbreviations[code] {
			return true
		}
	}
	return false
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
