package analyzer

import (
	"math"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	vowelGroupRe    = regexp.MustCompile(`[aeiouy]+`)
	nonLetterRe     = regexp.MustCompile(`[^a-z]`)
)

// Words commonly miscounted by the vowel-group heuristic.
var syllableExceptions = map[string]int{
	"the": 1, "she": 1, "he": 1, "me": 1, "we": 1, "be": 1,
	"tree": 1, "flee": 1, "knee": 1, "being": 2, "area": 3,
}

// KeywordOccurrences counts case-insensitive substring matches of keyword
// in text via a global regexp scan. Matches inside longer words count too;
// this is the dominant density variant and is kept deliberately.
func KeywordOccurrences(text, keyword string) int {
	if keyword == "" {
		return 0
	}
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(keyword))
	if err != nil {
		return 0
	}
	return len(re.FindAllStringIndex(text, -1))
}

// KeywordDensity is occurrences per word, as a percentage rounded to two
// decimals. Zero when the text has no words.
func KeywordDensity(text, keyword string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}
	count := KeywordOccurrences(text, keyword)
	return round2(float64(count) / float64(len(words)) * 100)
}

// SplitSentences splits on runs of sentence punctuation and drops trailing
// empty segments so "Hello. World." counts two sentences, not three.
func SplitSentences(text string) []string {
	segments := sentenceSplitRe.Split(text, -1)
	for len(segments) > 0 && strings.TrimSpace(segments[len(segments)-1]) == "" {
		segments = segments[:len(segments)-1]
	}
	return segments
}

// ReadabilityScore computes the Flesch Reading Ease of the text using the
// syllable-aware formula, clamped to [0, 100].
func ReadabilityScore(text string) float64 {
	words := strings.Fields(text)
	sentences := SplitSentences(text)
	if len(words) == 0 || len(sentences) == 0 {
		return 0
	}

	syllables := 0
	for _, word := range words {
		syllables += CountSyllables(word)
	}

	wordsPerSentence := float64(len(words)) / float64(len(sentences))
	syllablesPerWord := float64(syllables) / float64(len(words))
	score := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord

	return round2(clamp(score, 0, 100))
}

// CountSyllables estimates syllables by counting vowel groups, adjusted by
// common suffix rules, with an exception table for short words that the
// heuristic gets wrong.
func CountSyllables(word string) int {
	w := nonLetterRe.ReplaceAllString(strings.ToLower(word), "")
	if w == "" {
		return 0
	}
	if n, ok := syllableExceptions[w]; ok {
		return n
	}

	count := len(vowelGroupRe.FindAllString(w, -1))

	// trailing silent -e
	if strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "ee") && count > 1 {
		count--
	}
	if strings.HasSuffix(w, "le") || strings.HasSuffix(w, "les") {
		count++
	}
	if (strings.HasSuffix(w, "es") || strings.HasSuffix(w, "ed")) &&
		!strings.HasSuffix(w, "les") && count > 1 {
		count--
	}
	if strings.HasSuffix(w, "ia") || strings.HasSuffix(w, "io") {
		count++
	}

	if count < 1 {
		count = 1
	}
	return count
}

// SentenceLengthVariance is the population variance of per-sentence word
// counts; sentences that are empty after trimming are excluded.
func SentenceLengthVariance(text string) (avg, variance float64) {
	var lengths []int
	for _, s := range SplitSentences(text) {
		if strings.TrimSpace(s) == "" {
			continue
		}
		lengths = append(lengths, len(strings.Fields(s)))
	}
	if len(lengths) == 0 {
		return 0, 0
	}

	sum := 0
	for _, n := range lengths {
		sum += n
	}
	avg = float64(sum) / float64(len(lengths))

	var sq float64
	for _, n := range lengths {
		d := float64(n) - avg
		sq += d * d
	}
	variance = sq / float64(len(lengths))

	return round2(avg), round2(variance)
}

// ContentToHTMLRatio is trimmed visible body text length over the full
// serialized HTML length, as a percentage.
func ContentToHTMLRatio(bodyText, html string) float64 {
	if len(html) == 0 {
		return 0
	}
	textLen := len(strings.TrimSpace(bodyText))
	return round2(float64(textLen) / float64(len(html)) * 100)
}

// AnalyzeContent computes the full set of text statistics for the page.
func AnalyzeContent(doc *goquery.Document, rawHTML, keyword string) ContentAnalysis {
	bodyText := doc.Find("body").Text()
	words := strings.Fields(bodyText)
	sentences := SplitSentences(bodyText)

	content := ContentAnalysis{
		WordCount:     len(words),
		KeywordCount:  KeywordOccurrences(bodyText, keyword),
		SentenceCount: len(sentences),
	}
	content.KeywordDensity = KeywordDensity(bodyText, keyword)
	if content.SentenceCount > 0 {
		content.AvgWordsPerSentence = round2(float64(content.WordCount) / float64(content.SentenceCount))
	}
	content.AvgSentenceLength, content.SentenceLengthVariance = SentenceLengthVariance(bodyText)
	content.ContentToHTMLRatio = ContentToHTMLRatio(bodyText, rawHTML)

	keywordLower := strings.ToLower(keyword)
	totalParagraphWords := 0
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		wordCount := len(strings.Fields(text))
		totalParagraphWords += wordCount
		content.Paragraphs = append(content.Paragraphs, ParagraphAnalysis{
			Text:            text,
			WordCount:       wordCount,
			ContainsKeyword: strings.Contains(strings.ToLower(text), keywordLower),
		})
	})
	content.ParagraphCount = len(content.Paragraphs)
	if content.ParagraphCount > 0 {
		content.AvgParagraphLength = round2(float64(totalParagraphWords) / float64(content.ParagraphCount))
	}

	return content
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
