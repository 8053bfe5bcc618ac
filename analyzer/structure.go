package analyzer

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var headingTags = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

var breadcrumbSelectors = []string{
	".breadcrumbs",
	".breadcrumb",
	`[itemtype="https://schema.org/BreadcrumbList"]`,
	`nav[aria-label="Breadcrumb"]`,
}

var introductionSelectors = []string{"p:first-of-type", ".introduction", "#intro"}

// AnalyzeTitle extracts the first <title> and locates the keyword in it.
func AnalyzeTitle(doc *goquery.Document, keyword string) TitleAnalysis {
	title := doc.Find("title").First().Text()
	position := 0
	if keyword != "" {
		if idx := strings.Index(strings.ToLower(title), strings.ToLower(keyword)); idx >= 0 {
			position = idx + 1
		}
	}
	return TitleAnalysis{
		Text:            title,
		Length:          len(title),
		ContainsKeyword: position > 0,
		KeywordPosition: position,
	}
}

// MetaDescription returns the content of <meta name="description">, empty
// when absent.
func MetaDescription(doc *goquery.Document) string {
	content, _ := doc.Find(`meta[name="description"]`).Attr("content")
	return content
}

// AnalyzeHeadings summarizes H1-H3 and counts keyword-bearing headings
// per level.
func AnalyzeHeadings(doc *goquery.Document, keyword string) (HeadingAnalysis, KeywordInHeadings) {
	analysis := HeadingAnalysis{
		H1: analyzeHeadingLevel(doc, "h1", keyword),
		H2: analyzeHeadingLevel(doc, "h2", keyword),
		H3: analyzeHeadingLevel(doc, "h3", keyword),
	}
	counts := KeywordInHeadings{
		H1: analysis.H1.WithKeyword,
		H2: analysis.H2.WithKeyword,
		H3: analysis.H3.WithKeyword,
	}
	return analysis, counts
}

func analyzeHeadingLevel(doc *goquery.Document, tag, keyword string) HeadingLevelAnalysis {
	level := HeadingLevelAnalysis{Items: []string{}}
	keywordLower := strings.ToLower(keyword)
	totalLength := 0

	doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		level.Items = append(level.Items, text)
		totalLength += len(text)
		if keywordLower != "" && strings.Contains(strings.ToLower(text), keywordLower) {
			level.WithKeyword++
		}
	})

	level.Count = len(level.Items)
	if level.Count > 0 {
		level.AverageLength = round2(float64(totalLength) / float64(level.Count))
	}
	return level
}

// AnalyzeHierarchy walks every H1-H6 in document order and flags headings
// whose level jumps more than one step deeper than the previous heading.
// The first heading never flags.
func AnalyzeHierarchy(doc *goquery.Document) HierarchyAnalysis {
	result := HierarchyAnalysis{
		Headings: []HeadingEntry{},
		Issues:   []HierarchyIssue{},
	}

	doc.Find(strings.Join(headingTags, ", ")).Each(func(i int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		result.Headings = append(result.Headings, HeadingEntry{
			Tag:      tag,
			Level:    headingLevel(tag),
			Text:     s.Text(),
			Position: i,
		})
	})

	previousLevel := 0
	for i, heading := range result.Headings {
		if previousLevel > 0 && heading.Level > previousLevel+1 {
			result.Issues = append(result.Issues, HierarchyIssue{
				Message: fmt.Sprintf("Improper jump in heading levels from <%s> to <%s>",
					strings.ToUpper(result.Headings[i-1].Tag), strings.ToUpper(heading.Tag)),
				Position: heading.Position,
				Text:     heading.Text,
			})
		}
		previousLevel = heading.Level
	}

	return result
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' {
		return int(tag[1] - '0')
	}
	return 0
}

// CollectMetaTags gathers every <meta> carrying a name or property
// attribute and splits out the Open Graph and Twitter subsets.
func CollectMetaTags(doc *goquery.Document) (all, openGraph, twitter []MetaTag) {
	all = []MetaTag{}
	openGraph = []MetaTag{}
	twitter = []MetaTag{}

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name, ok := s.Attr("name")
		if !ok || name == "" {
			name, ok = s.Attr("property")
		}
		if !ok || name == "" {
			return
		}
		content, _ := s.Attr("content")
		tag := MetaTag{Name: name, Content: content}
		all = append(all, tag)

		switch {
		case strings.HasPrefix(name, "og:"):
			openGraph = append(openGraph, tag)
		case strings.HasPrefix(name, "twitter:"):
			twitter = append(twitter, tag)
		}
	})

	return all, openGraph, twitter
}

// CanonicalURL returns the href of <link rel="canonical">, empty if absent.
func CanonicalURL(doc *goquery.Document) string {
	href, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	return href
}

// RobotsMeta returns the content of <meta name="robots">, empty if absent.
func RobotsMeta(doc *goquery.Document) string {
	content, _ := doc.Find(`meta[name="robots"]`).Attr("content")
	return content
}

// HasBreadcrumbs reports whether any of the known breadcrumb markers
// matches at least one element.
func HasBreadcrumbs(doc *goquery.Document) bool {
	for _, selector := range breadcrumbSelectors {
		if doc.Find(selector).Length() > 0 {
			return true
		}
	}
	return false
}

// KeywordInIntroduction reports whether the keyword appears in the page
// introduction: the first paragraph, an element classed "introduction" or
// an element with id "intro".
func KeywordInIntroduction(doc *goquery.Document, keyword string) bool {
	if keyword == "" {
		return false
	}
	keywordLower := strings.ToLower(keyword)
	for _, selector := range introductionSelectors {
		text := strings.ToLower(doc.Find(selector).Text())
		if strings.Contains(text, keywordLower) {
			return true
		}
	}
	return false
}

// HasSchemaMarkup reports whether the page embeds JSON-LD structured data.
func HasSchemaMarkup(doc *goquery.Document) bool {
	return doc.Find(`script[type="application/ld+json"]`).Length() > 0
}
