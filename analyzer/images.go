package analyzer

import (
	"bytes"
	"context"
	"image"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	// Dimension decoders for the deep image pass.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/semaphore"

	"github.com/seo-insight/backend/metrics"
)

// Images at or under this dimension on both axes are "small".
const largeImageDimension = 100

var webOptimizedFormats = map[string]bool{"webp": true, "avif": true, "svg": true}

// AnalyzeImages extracts the attribute-level record for every <img>.
// Width and height are the declared HTML attributes, "unknown" when absent;
// format is derived from the src extension until deep mode sniffs bytes.
func AnalyzeImages(doc *goquery.Document) []ImageRecord {
	records := []ImageRecord{}

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		alt, _ := s.Attr("alt")
		width := attrOrUnknown(s, "width")
		height := attrOrUnknown(s, "height")
		format := formatFromSrc(src)

		records = append(records, ImageRecord{
			Src:            src,
			Alt:            alt,
			HasAlt:         alt != "",
			Width:          width,
			Height:         height,
			Format:         format,
			IsWebOptimized: webOptimizedFormats[format],
		})
	})

	return records
}

func attrOrUnknown(s *goquery.Selection, name string) string {
	if v, ok := s.Attr(name); ok && v != "" {
		return v
	}
	return "unknown"
}

func formatFromSrc(src string) string {
	clean := src
	if idx := strings.IndexAny(clean, "?#"); idx >= 0 {
		clean = clean[:idx]
	}
	if idx := strings.LastIndex(clean, "."); idx >= 0 && idx < len(clean)-1 {
		return strings.ToLower(clean[idx+1:])
	}
	return ""
}

type imageFetchResult struct {
	ok       bool
	size     int64
	width    int
	height   int
	format   string
	loadTime time.Duration
}

// DeepImageAnalysis fetches every image through a bounded worker pool,
// decodes actual dimensions and byte size, sniffs the true format from the
// bytes and measures load latency. Individual fetch failures are logged and
// excluded from the aggregates; they never fail the request. The records
// slice is updated in place with the measured values.
func (a *Analyzer) DeepImageAnalysis(ctx context.Context, base *url.URL, keyword string, records []ImageRecord) *ImageAggregates {
	results := make([]imageFetchResult, len(records))

	sem := semaphore.NewWeighted(a.imageCfg.Concurrency)
	var wg sync.WaitGroup

	for i := range records {
		target, ok := resolveImageURL(base, records[i].Src)
		if !ok {
			continue
		}

		wg.Add(1)
		go func(i int, target string) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				return
			}
			defer sem.Release(1)

			result, err := a.fetchImage(ctx, target)
			if err != nil {
				metrics.ImageFetchesTotal.WithLabelValues("error").Inc()
				slog.Debug("image fetch failed", "url", target, "error", err)
				return
			}
			metrics.ImageFetchesTotal.WithLabelValues("ok").Inc()
			results[i] = result
		}(i, target)
	}
	wg.Wait()

	return a.reduceImageResults(keyword, records, results)
}

func (a *Analyzer) fetchImage(ctx context.Context, target string) (imageFetchResult, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, a.imageCfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, target, nil)
	if err != nil {
		return imageFetchResult{}, err
	}

	start := time.Now()
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return imageFetchResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return imageFetchResult{}, &url.Error{Op: "Get", URL: target, Err: errStatus(resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return imageFetchResult{}, err
	}

	result := imageFetchResult{
		ok:       true,
		size:     int64(len(data)),
		format:   sniffImageFormat(data),
		loadTime: time.Since(start),
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		result.width = cfg.Width
		result.height = cfg.Height
	}
	return result, nil
}

type statusError int

func errStatus(code int) error { return statusError(code) }

func (e statusError) Error() string { return http.StatusText(int(e)) }

func resolveImageURL(base *url.URL, src string) (string, bool) {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" || strings.HasPrefix(trimmed, "data:") {
		return "", false
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	return resolved.String(), true
}

// sniffImageFormat identifies the format from the bytes, not the filename.
func sniffImageFormat(data []byte) string {
	switch http.DetectContentType(data) {
	case "image/png":
		return "png"
	case "image/jpeg":
		return "jpeg"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	}

	if len(data) >= 12 && string(data[4:12]) == "ftypavif" {
		return "avif"
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	if strings.Contains(string(head), "<svg") {
		return "svg"
	}

	return ""
}

// reduceImageResults folds per-image fetch outcomes into the aggregate
// view and writes measured values back onto the records. Every average is
// explicitly guarded against empty denominators.
func (a *Analyzer) reduceImageResults(keyword string, records []ImageRecord, results []imageFetchResult) *ImageAggregates {
	agg := &ImageAggregates{
		TotalImages: len(records),
		Formats:     map[string]int{},
	}

	keywordLower := strings.ToLower(keyword)
	fetched := 0
	var totalLoadMs int64

	for i := range records {
		record := &records[i]

		if record.HasAlt {
			agg.WithAlt++
			if keywordLower != "" && strings.Contains(strings.ToLower(record.Alt), keywordLower) {
				agg.WithKeywordInAlt++
			}
		}
		filename := strings.ToLower(path.Base(record.Src))
		if keywordLower != "" && strings.Contains(filename, keywordLower) {
			agg.WithKeywordInFilename++
		}

		result := results[i]
		if !result.ok {
			agg.FailedFetches++
			continue
		}
		fetched++

		sizeBytes := result.size
		loadMs := result.loadTime.Milliseconds()
		record.FileSizeBytes = &sizeBytes
		record.LoadTimeMs = &loadMs

		if result.format != "" {
			record.Format = result.format
			record.IsWebOptimized = webOptimizedFormats[result.format]
		}
		if result.width > 0 || result.height > 0 {
			record.Width = strconv.Itoa(result.width)
			record.Height = strconv.Itoa(result.height)
			if result.width > largeImageDimension && result.height > largeImageDimension {
				agg.LargeImages++
			} else {
				agg.SmallImages++
			}
		}

		agg.TotalBytes += sizeBytes
		totalLoadMs += loadMs
		if record.Format != "" {
			agg.Formats[record.Format]++
		}
	}

	if fetched > 0 {
		agg.AverageBytes = round2(float64(agg.TotalBytes) / float64(fetched))
		agg.AverageLoadTimeMs = round2(float64(totalLoadMs) / float64(fetched))
	}

	return agg
}
