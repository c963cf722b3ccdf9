package extract

import (
	"regexp"
	"sort"
	"strings"
)

// Rule names reported by LocationExtractor.Match.
const (
	RuleAlias       = "alias"
	RuleCountyState = "county_state"
	RuleCueIn       = "cue_in"
	RuleCueAt       = "cue_at"
	RuleCueNear     = "cue_near"
	RuleLawyerIn    = "lawyer_in"
	RuleCityState   = "city_state"
	RuleStateName   = "state_name"
	RuleStateCode   = "state_code"
)

// LocationRule pairs a pattern with the function that turns its submatches
// into a Location. Patterns run against lower-cased text.
type LocationRule struct {
	Name    string
	Pattern *regexp.Regexp
	Extract func(match []string) (Location, bool)
}

const (
	wordExpr      = `[a-z][a-z.'-]*`
	candidateExpr = `(` + wordExpr + `(?:,?\s+` + wordExpr + `){0,4})`
)

var (
	stateAlternation = buildStateAlternation()

	countyStatePattern = regexp.MustCompile(`\b((?:` + wordExpr + `\s+){0,3}` + wordExpr + `)\s+(county|parish)\b` +
		`(?:\s*,\s*([a-z]{2})\s*(?:$|[.,;:!?])|\s*,?\s*\b(` + stateAlternation + `)\b)?`)
	cueInPattern     = regexp.MustCompile(`\bin\s+` + candidateExpr)
	cueAtPattern     = regexp.MustCompile(`\bat\s+` + candidateExpr)
	cueNearPattern   = regexp.MustCompile(`\b(?:near|around)\s+` + candidateExpr)
	lawyerInPattern  = regexp.MustCompile(`\b(?:lawyers?|attorneys?|counsel|law\s+firms?|legal\s+help)\s+(?:in|near|around|at)\s+` + candidateExpr)
	cityStatePattern = regexp.MustCompile(`\b(` + wordExpr + `(?:\s+` + wordExpr + `){0,3})\s*,\s*(` + stateAlternation + `)\b`)

	countyLiteral = regexp.MustCompile(`^(.*?)\s*\b(county|parish)\b\s*,?\s*(.*)$`)
)

// DefaultLocationRules returns the rule table in evaluation order.
func DefaultLocationRules() []LocationRule {
	return []LocationRule{
		{Name: RuleCountyState, Pattern: countyStatePattern, Extract: extractCountyState},
		{Name: RuleCueIn, Pattern: cueInPattern, Extract: extractStrongCandidate},
		{Name: RuleCueAt, Pattern: cueAtPattern, Extract: extractStrongCandidate},
		{Name: RuleCueNear, Pattern: cueNearPattern, Extract: extractStrongCandidate},
		{Name: RuleLawyerIn, Pattern: lawyerInPattern, Extract: extractAnyCandidate},
		{Name: RuleCityState, Pattern: cityStatePattern, Extract: extractCityState},
	}
}

// apply tries every match of the rule, left to right, until Extract accepts one.
func (r LocationRule) apply(text string) (Location, bool) {
	pos := 0
	for pos < len(text) {
		idx := r.Pattern.FindStringSubmatchIndex(text[pos:])
		if idx == nil {
			return Location{}, false
		}
		start := pos + idx[0]
		if start > 0 && isLetter(text[start-1]) {
			pos = start + 1
			continue
		}
		match := make([]string, len(idx)/2)
		for i := range match {
			if idx[2*i] >= 0 {
				match[i] = text[pos+idx[2*i] : pos+idx[2*i+1]]
			}
		}
		if loc, ok := r.Extract(match); ok {
			return loc, true
		}
		pos = start + 1
	}
	return Location{}, false
}

// weakCueRules get a second pass that accepts a bare place name, as long as
// the user wrote it capitalised ("near Boston", not "in trouble").
var weakCueRules = map[string]bool{RuleCueIn: true, RuleCueAt: true, RuleCueNear: true}

// applyCapitalised returns the first cue candidate that starts with a run
// of capitalised words in the original text, taken as a city.
func (r LocationRule) applyCapitalised(original, lower string) (Location, bool) {
	pos := 0
	for pos < len(lower) {
		idx := r.Pattern.FindStringSubmatchIndex(lower[pos:])
		if idx == nil {
			break
		}
		start := pos + idx[0]
		if start == 0 || !isLetter(lower[start-1]) {
			if name := capitalisedRun(original[pos+idx[2] : pos+idx[3]]); len(name) > 2 {
				return Location{City: name}, true
			}
		}
		pos = start + 1
	}
	return Location{}, false
}

// capitalisedRun skips leading stop words, then collects words that start
// with an upper-case letter and are not all capitals. It stops at the first
// other word or at punctuation.
func capitalisedRun(s string) string {
	var run []string
	for _, raw := range strings.Fields(s) {
		w := strings.TrimRight(raw, ".,!?;:")
		lw := asciiLower(w)
		if len(run) == 0 && stopWords[lw] && lw != "i" {
			continue
		}
		if stopWords[lw] || breakWords[lw] || !isProperWord(w) {
			break
		}
		run = append(run, w)
		if w != raw && !abbreviatedPrefixes[strings.TrimSuffix(lw, ".")] {
			break
		}
	}
	return strings.Join(run, " ")
}

func extractCountyState(m []string) (Location, bool) {
	county := placeName(m[1])
	if county == "" {
		return Location{}, false
	}
	loc := Location{County: county, Parish: m[2] == "parish"}
	switch {
	case m[4] != "":
		loc.State = usStates[m[4]]
	case m[3] != "":
		loc.State = stateAbbreviations[strings.ToUpper(m[3])]
	}
	if loc.State == "" && m[2] == "parish" {
		loc.State = "Louisiana"
	}
	return loc, true
}

func extractStrongCandidate(m []string) (Location, bool) {
	loc, strong := parsePlace(m[1])
	return loc, strong
}

func extractAnyCandidate(m []string) (Location, bool) {
	loc, _ := parsePlace(m[1])
	return loc, !loc.IsZero()
}

func extractCityState(m []string) (Location, bool) {
	return Location{City: placeName(m[1]), State: usStates[m[2]]}, true
}

// parsePlace interprets a cue candidate. strong is true when the candidate
// names a county or a state; a bare word is only a weak city guess.
func parsePlace(candidate string) (Location, bool) {
	c := clip(candidate)
	if c == "" {
		return Location{}, false
	}

	if m := countyLiteral.FindStringSubmatch(c); m != nil {
		county := placeName(m[1])
		if county == "" {
			return Location{}, false
		}
		state := ResolveState(m[3])
		if state == "" {
			state = leadingState(m[3])
		}
		return Location{County: county, State: state, Parish: m[2] == "parish"}, true
	}

	if i := strings.LastIndex(c, ","); i >= 0 {
		if state := ResolveState(c[i+1:]); state != "" {
			return Location{City: placeName(c[:i]), State: state}, true
		}
	}

	if city, state := trailingState(c); state != "" {
		return Location{City: placeName(city), State: state}, true
	}

	name := placeName(c)
	if name == "" {
		return Location{}, false
	}
	return Location{City: name}, false
}

// clip cuts a candidate at the end of its sentence or clause and trims
// stop words from both ends.
func clip(candidate string) string {
	c := candidate
	for i := 0; i < len(c); i++ {
		switch c[i] {
		case '!', '?', ';', ':':
			c = c[:i]
		case '.':
			if i+1 < len(c) && c[i+1] != ' ' {
				continue
			}
			if abbreviatedPrefixes[lastToken(c[:i])] {
				continue
			}
			c = c[:i]
		}
	}

	words := strings.Fields(c)
	for i, w := range words {
		if breakWords[strings.Trim(w, ",")] {
			words = words[:i]
			break
		}
	}
	for len(words) > 0 && stopWords[strings.Trim(words[0], ",")] {
		words = words[1:]
	}
	for len(words) > 0 && (stopWords[strings.Trim(words[len(words)-1], ",")] || fillerWords[strings.Trim(words[len(words)-1], ",")]) {
		words = words[:len(words)-1]
	}
	return strings.Trim(strings.Join(words, " "), " ,")
}

// placeName keeps the words after the last stop word, then drops leading
// words until the name starts with a known multi-word prefix ("san", "los",
// "fort", ...) or only one word is left.
func placeName(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, ",", " "))
	for i := len(words) - 1; i >= 0; i-- {
		if stopWords[words[i]] {
			words = words[i+1:]
			break
		}
	}
	for len(words) > 0 && fillerWords[words[len(words)-1]] {
		words = words[:len(words)-1]
	}
	for len(words) > 1 && !placePrefixes[words[0]] {
		words = words[1:]
	}
	for i, w := range words {
		if !abbreviatedPrefixes[strings.TrimSuffix(w, ".")] {
			words[i] = strings.TrimRight(w, ".")
		}
	}
	name := strings.Join(words, " ")
	if len(name) <= 2 {
		return ""
	}
	return titleCase(name)
}

func lastToken(s string) string {
	if i := strings.LastIndexAny(s, " ,"); i >= 0 {
		return s[i+1:]
	}
	return s
}

func buildStateAlternation() string {
	names := make([]string, 0, len(usStates))
	for name := range usStates {
		names = append(names, regexp.QuoteMeta(name))
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return strings.Join(names, "|")
}

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

var stopWords = wordSet(
	"i", "i'm", "im", "me", "my", "we", "our", "us", "you", "your", "he", "she", "they", "it", "his", "her", "their",
	"a", "an", "the", "this", "that", "these", "those",
	"in", "at", "near", "around", "of", "from", "to", "for", "on", "by", "with", "into",
	"is", "am", "are", "was", "were", "be", "been", "being",
	"live", "lives", "living", "located", "based", "reside", "resides", "stay", "staying",
	"here", "there", "got", "get", "had", "have", "has", "and", "or", "but", "currently", "just", "also",
	"need", "needs", "want", "find", "looking", "case", "matter", "issue", "problem",
)

var fillerWords = wordSet(
	"please", "lawyer", "lawyers", "attorney", "attorneys", "help", "area", "for", "now", "today",
	"asap", "thanks", "thank", "you", "firm", "firms", "office", "offices", "region", "vicinity",
	"here", "there", "too", "right", "soon",
)

var breakWords = wordSet(
	"because", "about", "and", "but", "or", "so", "since", "who", "which", "that", "where", "when",
	"if", "after", "before", "with", "regarding", "for", "to", "while", "i", "i'm", "im", "we", "my",
	"please", "can", "could", "would", "should", "is", "was",
)

var placePrefixes = wordSet(
	"san", "santa", "los", "las", "el", "la", "le", "de", "du", "des", "del", "van", "st.", "st", "saint", "ste.",
	"ft.", "fort", "mt.", "mount", "new", "north", "south", "east", "west", "port", "palm", "salt", "grand",
	"little", "lake", "cape", "baton", "corpus", "prince", "king", "queen", "contra", "twin", "green", "long",
	"ann", "sioux", "virginia", "kansas", "oklahoma", "carson", "jersey", "iowa", "miami", "glen",
	"winston", "cedar", "pointe", "coeur", "red", "big", "high", "bay",
)

var abbreviatedPrefixes = wordSet("st", "ft", "mt", "ste")
