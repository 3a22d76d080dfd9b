package indeed

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fedwatch/fedwatch/internal/models"
)

// countPhrase matches the "Page 1 of 1,234 jobs" phrasing used on
// search-results pages.
var countPhrase = regexp.MustCompile(`(?i)of\s+([\d,]+)\s+jobs`)

// digitRun matches a bare number (with optional thousands separators) inside
// a count element whose surrounding phrasing changed.
var digitRun = regexp.MustCompile(`[\d,]+`)

// countSelectors are the element-based fallback strategies, tried in order
// after the phrase match. Layout markup changes over time, so older and
// newer count containers are both listed.
var countSelectors = []string{
	"div#searchCount",
	"span#searchCountPages",
	"div.jobsearch-JobCountAndSortPane-jobCount",
	"span.jobsearch-JobCountAndSortPane-jobCount",
}

// ExtractCount extracts the result count from rendered search-results markup.
// Strategies are tried in order; the first that yields a valid non-negative
// integer wins. Malformed markup or an unparsable number is treated as no
// match, never as an error, so the worst outcome is an unknown count.
// ExtractCount is a pure function: identical markup yields identical results.
func ExtractCount(markup string) models.Count {
	if n, ok := matchCountPhrase(markup); ok {
		return models.NewCount(n)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return models.UnknownCount()
	}
	for _, sel := range countSelectors {
		if n, ok := matchCountElement(doc, sel); ok {
			return models.NewCount(n)
		}
	}
	return models.UnknownCount()
}

// matchCountPhrase searches the whole document for the "of N jobs" phrasing.
func matchCountPhrase(markup string) (int, bool) {
	m := countPhrase.FindStringSubmatch(markup)
	if m == nil {
		return 0, false
	}
	return parseCount(m[1])
}

// matchCountElement extracts a count from the text of the first element
// matching sel, accepting either the full phrase or a bare number.
func matchCountElement(doc *goquery.Document, sel string) (int, bool) {
	text := strings.TrimSpace(doc.Find(sel).First().Text())
	if text == "" {
		return 0, false
	}
	if m := countPhrase.FindStringSubmatch(text); m != nil {
		if n, ok := parseCount(m[1]); ok {
			return n, true
		}
	}
	if m := digitRun.FindString(text); m != "" {
		return parseCount(m)
	}
	return 0, false
}

// parseCount strips thousands separators and parses the remainder as a
// non-negative integer. A parse failure is no match, not an error.
func parseCount(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.ReplaceAll(raw, ",", ""))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
