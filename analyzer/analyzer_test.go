package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seo-insight/backend/apperr"
	"github.com/seo-insight/backend/seourl"
)

const fixtureHTML = `<html>
<head>
	<title>Best Running Shoes 2024</title>
	<meta name="description" content="Our guide to running shoes.">
	<meta name="robots" content="index, follow">
	<meta property="og:title" content="Best Running Shoes">
	<meta name="twitter:card" content="summary">
	<link rel="canonical" href="https://example.com/blog/running-shoes">
	<script type="application/ld+json">{"@type":"Article"}</script>
</head>
<body>
	<nav aria-label="Breadcrumb"><a href="/">Home</a></nav>
	<h1>Running Shoes Guide</h1>
	<p>Running shoes matter. Pick shoes that fit. Run far.</p>
	<h2>Fit</h2>
	<p>A good fit prevents pain.</p>
	<h3>Width</h3>
	<a href="/reviews">Reviews</a>
	<a href="/sizing">Sizing</a>
	<a href="/brands">Brands</a>
	<a href="https://other.example.org/study">Study</a>
	<img src="/img/shoes.webp" alt="Running shoes" width="640" height="480">
</body>
</html>`

func fixturePage() seourl.AnalyzedURL {
	return seourl.AnalyzedURL{
		Raw:        "example.com/blog/running-shoes",
		Normalized: "https://example.com/blog/running-shoes",
		Hostname:   "example.com",
		Path:       "/blog/running-shoes",
	}
}

func TestBuildReport(t *testing.T) {
	t.Parallel()

	doc := docFromHTML(t, fixtureHTML)
	report := BuildReport(doc, fixtureHTML, fixturePage(), "shoes")

	require.Equal(t, "https://example.com/blog/running-shoes", report.URL)
	require.Equal(t, "shoes", report.Keyword)

	require.Equal(t, "Best Running Shoes 2024", report.Title)
	require.True(t, report.KeywordInTitle)
	require.True(t, report.KeywordInURL)
	require.Equal(t, "Our guide to running shoes.", report.MetaDescription)

	require.Equal(t, 1, report.HeadingAnalysis.H1.Count)
	require.Equal(t, 1, report.KeywordInHeadings.H1)
	require.Empty(t, report.TitleHierarchyAnalysis.Issues)
	require.Len(t, report.TitleHierarchyAnalysis.Headings, 3)

	require.Equal(t, 4, report.InternalLinks)
	require.Equal(t, 1, report.ExternalLinks)
	require.Equal(t, report.InternalLinks, report.InternalLinksCount)
	require.Equal(t, report.ExternalLinks, report.OutboundLinksCount)

	require.Len(t, report.OpenGraphTags, 1)
	require.Len(t, report.TwitterTags, 1)
	require.Equal(t, "https://example.com/blog/running-shoes", report.CanonicalURL)
	require.Equal(t, "index, follow", report.RobotsMeta)
	require.True(t, report.Breadcrumbs)
	require.True(t, report.KeywordInIntroduction)
	require.True(t, report.SchemaPresence)

	require.True(t, report.SlugAnalysis.ContainsKeyword)
	require.True(t, report.SlugAnalysis.IsReadable)

	require.Len(t, report.SEOImages, 1)
	require.Nil(t, report.ImageAnalysis)

	require.Greater(t, report.ContentAnalysis.WordCount, 0)
	require.Greater(t, report.KeywordDensity, 0.0)

	require.GreaterOrEqual(t, report.OverallScore, 0)
	require.LessOrEqual(t, report.OverallScore, 100)
	require.Greater(t, report.OverallScore, 50)
}

func TestBuildReport_Deterministic(t *testing.T) {
	t.Parallel()

	first := BuildReport(docFromHTML(t, fixtureHTML), fixtureHTML, fixturePage(), "shoes")
	second := BuildReport(docFromHTML(t, fixtureHTML), fixtureHTML, fixturePage(), "shoes")
	require.Equal(t, first, second)
}

func TestBuildReport_EmptyPage(t *testing.T) {
	t.Parallel()

	html := `<html><head></head><body></body></html>`
	report := BuildReport(docFromHTML(t, html), html, fixturePage(), "shoes")

	require.Equal(t, 0, report.ContentAnalysis.WordCount)
	require.Equal(t, 0.0, report.KeywordDensity)
	require.Equal(t, 0.0, report.ReadabilityScore)
	require.Empty(t, report.SEOImages)
	require.GreaterOrEqual(t, report.OverallScore, 0)
}

func TestAnalyze_RejectsInvalidInputs(t *testing.T) {
	t.Parallel()

	a := testAnalyzer(t)
	ctx := context.Background()

	var appErr *apperr.Error

	_, err := a.Analyze(ctx, "http://localhost:8080/page", "shoes", Options{})
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperr.CodeLocalAddress, appErr.Code)

	_, err = a.Analyze(ctx, "example.com", "shoes!", Options{})
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperr.CodeInvalidKeyword, appErr.Code)

	_, err = a.Analyze(ctx, "", "shoes", Options{})
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperr.CodeInvalidParams, appErr.Code)
}
