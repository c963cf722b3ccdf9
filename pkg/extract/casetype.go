package extract

import (
	"regexp"
	"strings"
)

// Case-type labels shown to the user and stored in the session case info.
const (
	CaseTypeDUI            = "DUI Cases"
	CaseTypeFamily         = "Family Law"
	CaseTypeCriminal       = "Criminal Defense"
	CaseTypePersonalInjury = "Personal Injury"
	CaseTypeBankruptcy     = "Bankruptcy"
	CaseTypeImmigration    = "Immigration"
	CaseTypeEmployment     = "Employment Law"
	CaseTypeLandlordTenant = "Landlord-Tenant"
	CaseTypeRealEstate     = "Real Estate"
	CaseTypeEstatePlanning = "Estate Planning"
	CaseTypeBusiness       = "Business Law"
)

// CaseTypeRule maps keywords to a label. A keyword matches at the start of a
// word, so "lease" does not fire on "please" but does on "leases".
type CaseTypeRule struct {
	Label    string
	Keywords []string
}

// DefaultCaseTypeRules is ordered; the first rule with a matching keyword wins.
func DefaultCaseTypeRules() []CaseTypeRule {
	return []CaseTypeRule{
		{Label: CaseTypeDUI, Keywords: []string{"dui", "dwi", "drunk driving", "driving under the influence", "breathalyzer", "field sobriety", "blood alcohol"}},
		{Label: CaseTypeFamily, Keywords: []string{"divorce", "custody", "child support", "alimony", "spousal support", "separation", "adoption", "visitation", "prenup", "paternity"}},
		{Label: CaseTypeCriminal, Keywords: []string{"arrest", "criminal", "felony", "misdemeanor", "assault", "theft", "shoplift", "probation", "warrant", "charged with", "jail", "prosecutor", "drug possession"}},
		{Label: CaseTypePersonalInjury, Keywords: []string{"injury", "injured", "accident", "slip and fall", "malpractice", "whiplash", "wrongful death", "dog bite"}},
		{Label: CaseTypeBankruptcy, Keywords: []string{"bankrupt", "chapter 7", "chapter 13", "debt", "foreclosure", "creditor", "garnish"}},
		{Label: CaseTypeImmigration, Keywords: []string{"immigra", "visa", "green card", "deport", "citizenship", "asylum", "daca", "undocumented", "work permit"}},
		{Label: CaseTypeEmployment, Keywords: []string{"fired", "wrongful termination", "terminated", "discriminat", "harass", "overtime", "unpaid wages", "workplace", "employer", "retaliation"}},
		{Label: CaseTypeLandlordTenant, Keywords: []string{"landlord", "tenant", "evict", "lease", "rent", "security deposit"}},
		{Label: CaseTypeRealEstate, Keywords: []string{"real estate", "property line", "closing", "deed", "zoning", "hoa", "mortgage", "easement"}},
		{Label: CaseTypeEstatePlanning, Keywords: []string{"last will", "my will", "testament", "living trust", "trust fund", "probate", "estate planning", "inheritance", "power of attorney"}},
		{Label: CaseTypeBusiness, Keywords: []string{"business", "contract", "llc", "corporation", "partnership", "trademark", "startup", "incorporat"}},
	}
}

var legalTerms = []string{
	"lawyer", "attorney", "legal", "law", "court", "sue", "suing", "lawsuit", "judge", "case",
	"charge", "rights", "ticket", "citation", "settlement", "claim", "hearing",
}

// Classifier maps free text to a case-type label.
type Classifier struct {
	rules []compiledCaseRule
	legal *regexp.Regexp
}

type compiledCaseRule struct {
	label   string
	pattern *regexp.Regexp
}

func NewClassifier() *Classifier {
	return NewClassifierWith(DefaultCaseTypeRules())
}

func NewClassifierWith(rules []CaseTypeRule) *Classifier {
	c := &Classifier{legal: keywordPattern(legalTerms)}
	for _, r := range rules {
		c.rules = append(c.rules, compiledCaseRule{label: r.Label, pattern: keywordPattern(r.Keywords)})
	}
	return c
}

// Classify returns the label of the first matching rule.
func (c *Classifier) Classify(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, r := range c.rules {
		if r.pattern.MatchString(lower) {
			return r.label, true
		}
	}
	return "", false
}

// HasLegalKeyword reports whether text looks like a legal question at all.
func (c *Classifier) HasLegalKeyword(text string) bool {
	if _, ok := c.Classify(text); ok {
		return true
	}
	return c.legal.MatchString(strings.ToLower(text))
}

func keywordPattern(keywords []string) *regexp.Regexp {
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(k), " ", `\s+`)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)`)
}
