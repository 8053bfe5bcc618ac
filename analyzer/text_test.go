package analyzer

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestKeywordOccurrences(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1, KeywordOccurrences("buy shoes online today", "shoes"))
	require.Equal(t, 2, KeywordOccurrences("Shoes and more SHOES", "shoes"))
	// substring matches inside longer words count
	require.Equal(t, 2, KeywordOccurrences("snowshoes and shoes", "shoes"))
	require.Equal(t, 0, KeywordOccurrences("no match here", "shoes"))
	require.Equal(t, 0, KeywordOccurrences("anything", ""))
}

func TestKeywordDensity(t *testing.T) {
	t.Parallel()

	require.Equal(t, 25.0, KeywordDensity("buy shoes online today", "shoes"))
	require.Equal(t, 66.67, KeywordDensity("snowshoes and shoes", "shoes"))
	require.Equal(t, 0.0, KeywordDensity("", "shoes"))
	require.Equal(t, 0.0, KeywordDensity("   ", "shoes"))
}

func TestSplitSentences(t *testing.T) {
	t.Parallel()

	require.Len(t, SplitSentences("Hello. World."), 2)
	require.Len(t, SplitSentences("One! Two? Three."), 3)
	require.Len(t, SplitSentences("No terminator"), 1)
	require.Empty(t, SplitSentences(""))
}

func TestCountSyllables(t *testing.T) {
	t.Parallel()

	cases := map[string]int{
		"the":       1,
		"she":       1,
		"tree":      1,
		"being":     2,
		"area":      3,
		"make":      1,
		"table":     2,
		"radio":     3,
		"hello":     2,
		"beautiful": 3,
		"boxes":     1,
		"a":         1,
	}
	for word, want := range cases {
		require.Equal(t, want, CountSyllables(word), word)
	}

	// punctuation is stripped before counting
	require.Equal(t, 1, CountSyllables("Me."))
	require.Equal(t, 0, CountSyllables("123"))
}

func TestReadabilityScore_Clamping(t *testing.T) {
	t.Parallel()

	// one short monosyllabic sentence pushes the raw formula above 100
	require.Equal(t, 100.0, ReadabilityScore("Me."))

	// one enormous polysyllabic sentence pushes it below zero
	long := strings.Repeat("development ", 200)
	require.Equal(t, 0.0, ReadabilityScore(long))

	require.Equal(t, 0.0, ReadabilityScore(""))
}

func TestReadabilityScore_MidRange(t *testing.T) {
	t.Parallel()

	score := ReadabilityScore("The cat sat on the mat. The dog ran to the park.")
	require.Greater(t, score, 60.0)
	require.LessOrEqual(t, score, 100.0)
}

func TestSentenceLengthVariance(t *testing.T) {
	t.Parallel()

	avg, variance := SentenceLengthVariance("One two. One two three four.")
	require.Equal(t, 3.0, avg)
	require.Equal(t, 1.0, variance)

	avg, variance = SentenceLengthVariance("Same size. Same size.")
	require.Equal(t, 2.0, avg)
	require.Equal(t, 0.0, variance)

	avg, variance = SentenceLengthVariance("")
	require.Equal(t, 0.0, avg)
	require.Equal(t, 0.0, variance)
}

func TestContentToHTMLRatio(t *testing.T) {
	t.Parallel()

	require.Equal(t, 10.0, ContentToHTMLRatio("abcde", strings.Repeat("x", 50)))
	require.Equal(t, 0.0, ContentToHTMLRatio("text", ""))
	require.Equal(t, 0.0, ContentToHTMLRatio("   ", "<html></html>"))
}

func TestAnalyzeContent(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<p>Buy shoes online today. Great shoes for everyone.</p>
		<p>Second paragraph without the word.</p>
		<p>   </p>
	</body></html>`
	doc := docFromHTML(t, html)

	content := AnalyzeContent(doc, html, "shoes")

	require.Equal(t, 2, content.ParagraphCount)
	require.Len(t, content.Paragraphs, 2)
	require.True(t, content.Paragraphs[0].ContainsKeyword)
	require.False(t, content.Paragraphs[1].ContainsKeyword)
	require.Equal(t, 8, content.Paragraphs[0].WordCount)
	require.Equal(t, 2, content.KeywordCount)
	require.Equal(t, 13, content.WordCount)
	require.Equal(t, 3, content.SentenceCount)
	require.Greater(t, content.KeywordDensity, 0.0)
	require.Greater(t, content.AvgParagraphLength, 0.0)
	require.Greater(t, content.ContentToHTMLRatio, 0.0)
}
