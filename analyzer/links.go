package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CountLinks classifies every anchor relative to the analyzed page URL.
// Internal: href starts with "/" or with the page URL itself. External:
// href starts with "http" but not with the page URL. Counts are raw
// element counts, not deduplicated by target.
func CountLinks(doc *goquery.Document, pageURL string) (internal, external int) {
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		switch {
		case strings.HasPrefix(href, "/") || (pageURL != "" && strings.HasPrefix(href, pageURL)):
			internal++
		case strings.HasPrefix(href, "http"):
			external++
		}
	})
	return internal, external
}
