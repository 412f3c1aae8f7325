package auth

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var executionPattern = regexp.MustCompile(`<input type="hidden" name="execution" value="([^"]+)"/>`)

// ExtractExecutionToken returns the value of the login page's hidden
// execution input. The exact markup the portal serves is matched first; an
// HTML parse covers reordered attributes or different quoting.
func ExtractExecutionToken(page string) (string, bool) {
	if m := executionPattern.FindStringSubmatch(page); len(m) >= 2 && m[1] != "" {
		return m[1], true
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", false
	}
	value, ok := doc.Find(`input[name="execution"]`).First().Attr("value")
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
