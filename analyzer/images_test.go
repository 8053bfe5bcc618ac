package analyzer

import (
	"bytes"
	"context"
	"image"
	"image/gif"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seo-insight/backend/config"
	"github.com/seo-insight/backend/fetcher"
)

func testAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	f := fetcher.New(config.FetchConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "test-agent/1.0",
		MaxBodyBytes: 10 << 20,
		MaxRedirects: 3,
	})
	return New(f, config.ImageFetchConfig{
		Concurrency: 4,
		Timeout:     2 * time.Second,
	})
}

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func encodeGIF(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height)), nil))
	return buf.Bytes()
}

func TestAnalyzeImages_Attributes(t *testing.T) {
	t.Parallel()

	doc := docFromHTML(t, `<html><body>
		<img src="/hero.webp" alt="Red shoes" width="300" height="200">
		<img src="photo.JPG?v=2">
		<img src="/pic.png#top" alt="">
	</body></html>`)

	records := AnalyzeImages(doc)
	require.Len(t, records, 3)

	require.Equal(t, "/hero.webp", records[0].Src)
	require.True(t, records[0].HasAlt)
	require.Equal(t, "300", records[0].Width)
	require.Equal(t, "200", records[0].Height)
	require.Equal(t, "webp", records[0].Format)
	require.True(t, records[0].IsWebOptimized)

	require.False(t, records[1].HasAlt)
	require.Equal(t, "unknown", records[1].Width)
	require.Equal(t, "unknown", records[1].Height)
	require.Equal(t, "jpg", records[1].Format)
	require.False(t, records[1].IsWebOptimized)

	require.False(t, records[2].HasAlt)
	require.Equal(t, "png", records[2].Format)
}

func TestDeepImageAnalysis(t *testing.T) {
	t.Parallel()

	heroPNG := encodePNG(t, 200, 150)
	iconGIF := encodeGIF(t, 50, 50)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/shoes-hero.png":
			w.Write(heroPNG)
		case "/icon.gif":
			w.Write(iconGIF)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	doc := docFromHTML(t, `<html><body>
		<img src="/shoes-hero.png" alt="Red shoes on sale">
		<img src="/icon.gif">
		<img src="/missing.jpg" alt="placeholder">
	</body></html>`)
	records := AnalyzeImages(doc)

	base, err := url.Parse(server.URL)
	require.NoError(t, err)

	a := testAnalyzer(t)
	agg := a.DeepImageAnalysis(context.Background(), base, "shoes", records)

	require.Equal(t, 3, agg.TotalImages)
	require.Equal(t, 2, agg.WithAlt)
	require.Equal(t, 1, agg.WithKeywordInAlt)
	require.Equal(t, 1, agg.WithKeywordInFilename)
	require.Equal(t, 1, agg.FailedFetches)
	require.Equal(t, 1, agg.LargeImages)
	require.Equal(t, 1, agg.SmallImages)
	require.Equal(t, map[string]int{"png": 1, "gif": 1}, agg.Formats)

	wantBytes := int64(len(heroPNG) + len(iconGIF))
	require.Equal(t, wantBytes, agg.TotalBytes)
	require.Equal(t, float64(wantBytes)/2, agg.AverageBytes)

	// measured values are written back onto the fetched records
	require.Equal(t, "200", records[0].Width)
	require.Equal(t, "150", records[0].Height)
	require.Equal(t, "png", records[0].Format)
	require.NotNil(t, records[0].FileSizeBytes)
	require.Equal(t, int64(len(heroPNG)), *records[0].FileSizeBytes)
	require.NotNil(t, records[0].LoadTimeMs)

	require.Equal(t, "gif", records[1].Format)

	// the failed fetch keeps its attribute-level record untouched
	require.Equal(t, "unknown", records[2].Width)
	require.Nil(t, records[2].FileSizeBytes)
}

func TestDeepImageAnalysis_NoImages(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://example.com/")
	require.NoError(t, err)

	agg := testAnalyzer(t).DeepImageAnalysis(context.Background(), base, "shoes", nil)

	require.Equal(t, 0, agg.TotalImages)
	require.Equal(t, 0.0, agg.AverageBytes)
	require.Equal(t, 0.0, agg.AverageLoadTimeMs)
	require.Empty(t, agg.Formats)
}

func TestSniffImageFormat(t *testing.T) {
	t.Parallel()

	require.Equal(t, "png", sniffImageFormat(encodePNG(t, 10, 10)))
	require.Equal(t, "gif", sniffImageFormat(encodeGIF(t, 10, 10)))
	require.Equal(t, "svg", sniffImageFormat([]byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`)))

	avif := append([]byte{0, 0, 0, 32}, []byte("ftypavif")...)
	require.Equal(t, "avif", sniffImageFormat(avif))

	require.Equal(t, "", sniffImageFormat([]byte("plain text")))
}

func TestResolveImageURL(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://example.com/blog/post")
	require.NoError(t, err)

	resolved, ok := resolveImageURL(base, "/img/a.png")
	require.True(t, ok)
	require.Equal(t, "https://example.com/img/a.png", resolved)

	resolved, ok = resolveImageURL(base, "b.png")
	require.True(t, ok)
	require.Equal(t, "https://example.com/blog/b.png", resolved)

	_, ok = resolveImageURL(base, "data:image/png;base64,AAAA")
	require.False(t, ok)

	_, ok = resolveImageURL(base, "")
	require.False(t, ok)
}
