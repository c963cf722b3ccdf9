// Package render turns assistant replies into display-safe HTML.
package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	bulletPattern    = regexp.MustCompile(`(?m)^[ \t]*-[ \t]*`)
	emphasisPattern  = regexp.MustCompile(`(?i)\b(important|note|warning|critical|immediately|must|required by law)\b`)
	numberedPattern  = regexp.MustCompile(`(^|\s)(\d{1,2})\.\s+`)
	sentencePattern  = regexp.MustCompile(`([^\d\s])\.[ \t]+([A-Z])`)
	blankRunsPattern = regexp.MustCompile(`\n{3,}`)

	blockBreakPattern  = regexp.MustCompile(`(?i)<br\s*/?>|</(p|li|h[1-6])>`)
	htmlEntityReplacer = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&#34;", "\"", "&#39;", "'", "&quot;", "\"")
)

// AllowedTags is the sanitiser allow-list. No attributes survive.
var AllowedTags = []string{"p", "br", "strong", "em", "ul", "ol", "li", "h1", "h2", "h3", "h4", "h5", "h6"}

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	strict *bluemonday.Policy
}

func NewRenderer() *Renderer {
	policy := bluemonday.NewPolicy()
	policy.AllowElements(AllowedTags...)

	return &Renderer{
		md:     goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps())),
		policy: policy,
		strict: bluemonday.StrictPolicy(),
	}
}

// Format applies the markdown clean-up pass: bullets, emphasis of warning
// words, numbered items on their own line and paragraph breaks between
// sentences.
func Format(text string) string {
	out := bulletPattern.ReplaceAllString(text, "\n* ")
	out = emphasisPattern.ReplaceAllString(out, "**$1**")
	out = numberedPattern.ReplaceAllString(out, "\n$2. ")
	out = sentencePattern.ReplaceAllString(out, "$1.\n\n$2")
	out = blankRunsPattern.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// HTML formats text, converts it to HTML and sanitises the result.
func (r *Renderer) HTML(text string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(Format(text)), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(r.policy.Sanitize(buf.String())), nil
}

// Sanitize runs only the allow-list.
func (r *Renderer) Sanitize(s string) string {
	return r.policy.Sanitize(s)
}

// PlainText strips every tag, for feeding stored replies back to a model.
func (r *Renderer) PlainText(s string) string {
	s = blockBreakPattern.ReplaceAllString(s, "\n")
	out := r.strict.Sanitize(s)
	out = htmlEntityReplacer.Replace(out)
	out = blankRunsPattern.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
