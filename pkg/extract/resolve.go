package extract

// Known is what the session already knows about the user's case. It is passed
// in by the caller on every turn instead of living in package state.
type Known struct {
	Location  Location
	CaseType  string
	Confirmed bool
}

// Analysis is the outcome of looking at one user message.
type Analysis struct {
	Location      Location
	LocationFound bool
	// LocationCue is set when the message itself carries a location pattern
	// (as opposed to a bare state mention or a remembered location).
	LocationCue  bool
	Rule         string
	CaseType     string
	LegalKeyword bool
}

// RuleSession marks a location taken from Known rather than the message.
const RuleSession = "session"

// Resolver combines the location extractor and the case-type classifier.
type Resolver struct {
	locations *LocationExtractor
	caseTypes *Classifier
}

func NewResolver() *Resolver {
	return &Resolver{locations: NewLocationExtractor(), caseTypes: NewClassifier()}
}

func NewResolverWith(locations *LocationExtractor, caseTypes *Classifier) *Resolver {
	return &Resolver{locations: locations, caseTypes: caseTypes}
}

// Resolve analyses text. A confirmed location always wins over the message;
// an unconfirmed remembered location is only used when the message has none.
func (r *Resolver) Resolve(text string, known Known) Analysis {
	a := Analysis{LegalKeyword: r.caseTypes.HasLegalKeyword(text)}

	if caseType, ok := r.caseTypes.Classify(text); ok {
		a.CaseType = caseType
	}
	if known.Confirmed && known.CaseType != "" {
		a.CaseType = known.CaseType
	} else if a.CaseType == "" {
		a.CaseType = known.CaseType
	}

	loc, rule, err := r.locations.Match(text)
	if err == nil {
		a.LocationCue = rule != RuleStateName && rule != RuleStateCode
	}

	switch {
	case known.Confirmed && !known.Location.IsZero():
		a.Location, a.LocationFound, a.Rule = known.Location, true, RuleSession
	case err == nil:
		a.Location, a.LocationFound, a.Rule = loc, true, rule
	case !known.Location.IsZero():
		a.Location, a.LocationFound, a.Rule = known.Location, true, RuleSession
	}
	return a
}
