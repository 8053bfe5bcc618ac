// Package analyzer turns a fetched page into a structured SEO report: text
// statistics, structural checks, link and image classification, slug
// scoring and the aggregated overall score.
package analyzer

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/seo-insight/backend/apperr"
	"github.com/seo-insight/backend/config"
	"github.com/seo-insight/backend/fetcher"
	"github.com/seo-insight/backend/seourl"
)

// requestTimeout bounds one complete analysis including deep image fetches.
const requestTimeout = 30 * time.Second

// Options selects the optional, network-bound parts of an analysis.
type Options struct {
	DeepImages bool
}

// Analyzer runs single-page SEO analyses. It holds no per-request state;
// one instance serves all requests concurrently.
type Analyzer struct {
	fetcher    *fetcher.Fetcher
	httpClient *http.Client
	imageCfg   config.ImageFetchConfig
}

// New creates an Analyzer. The image fetches reuse the page fetcher's
// transport.
func New(f *fetcher.Fetcher, imageCfg config.ImageFetchConfig) *Analyzer {
	return &Analyzer{
		fetcher:    f,
		httpClient: f.Client(),
		imageCfg:   imageCfg,
	}
}

// Analyze validates the inputs, fetches the page and builds the report.
// All validation happens before any network call.
func (a *Analyzer) Analyze(ctx context.Context, rawURL, rawKeyword string, opts Options) (*Report, error) {
	page, err := seourl.Normalize(rawURL)
	if err != nil {
		return nil, err
	}
	keyword, err := seourl.ValidateKeyword(rawKeyword)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	html, err := a.fetcher.FetchHTML(ctx, page.Normalized)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeUnexpectedFailure, "failed to parse the page HTML",
			http.StatusInternalServerError, err)
	}

	report := BuildReport(doc, html, page, keyword)

	if opts.DeepImages {
		base, err := url.Parse(page.Normalized)
		if err == nil {
			report.ImageAnalysis = a.DeepImageAnalysis(ctx, base, keyword, report.SEOImages)
		}
	}

	slog.Debug("analysis complete", "url", page.Normalized, "keyword", keyword,
		"score", report.OverallScore)

	return report, nil
}

// BuildReport runs every document-level analysis over an already parsed
// page. It is deterministic: identical HTML and keyword produce an
// identical report.
func BuildReport(doc *goquery.Document, rawHTML string, page seourl.AnalyzedURL, keyword string) *Report {
	report := &Report{
		URL:     page.Normalized,
		Keyword: keyword,
	}

	report.TitleAnalysis = AnalyzeTitle(doc, keyword)
	report.Title = report.TitleAnalysis.Text
	report.KeywordInTitle = report.TitleAnalysis.ContainsKeyword
	report.KeywordInURL = strings.Contains(strings.ToLower(page.Normalized), strings.ToLower(keyword))

	report.MetaDescription = MetaDescription(doc)
	report.HeadingAnalysis, report.KeywordInHeadings = AnalyzeHeadings(doc, keyword)
	report.TitleHierarchyAnalysis = AnalyzeHierarchy(doc)

	report.ContentAnalysis = AnalyzeContent(doc, rawHTML, keyword)
	report.KeywordDensity = report.ContentAnalysis.KeywordDensity
	report.ReadabilityScore = ReadabilityScore(doc.Find("body").Text())

	internal, external := CountLinks(doc, page.Normalized)
	report.InternalLinks = internal
	report.ExternalLinks = external
	report.InternalLinksCount = internal
	report.OutboundLinksCount = external

	report.MetaTags, report.OpenGraphTags, report.TwitterTags = CollectMetaTags(doc)
	report.CanonicalURL = CanonicalURL(doc)
	report.RobotsMeta = RobotsMeta(doc)
	report.Breadcrumbs = HasBreadcrumbs(doc)
	report.KeywordInIntroduction = KeywordInIntroduction(doc, keyword)
	report.SchemaPresence = HasSchemaMarkup(doc)

	report.SlugAnalysis = AnalyzeSlug(page.Path, keyword)
	report.SEOImages = AnalyzeImages(doc)

	report.OverallScore = OverallScore(report)

	return report
}
