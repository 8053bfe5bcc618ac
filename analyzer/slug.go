package analyzer

import (
	"regexp"
	"strings"
)

var (
	readableSlugRe = regexp.MustCompile(`(?i)^[a-z0-9-]+$`)
	digitRe        = regexp.MustCompile(`\d`)
)

const slugWellOptimized = "The current slug is well-optimized."

// AnalyzeSlug scores the last non-empty path segment of the analyzed URL.
func AnalyzeSlug(path, keyword string) SlugAnalysis {
	slug := lastPathSegment(path)

	analysis := SlugAnalysis{
		Slug:            slug,
		Length:          len(slug),
		ContainsKeyword: keyword != "" && strings.Contains(strings.ToLower(slug), strings.ToLower(keyword)),
		IsReadable:      readableSlugRe.MatchString(slug),
		HasDashes:       strings.Contains(slug, "-"),
		HasUnderscores:  strings.Contains(slug, "_"),
		HasNumbers:      digitRe.MatchString(slug),
	}
	analysis.Recommendation = slugRecommendation(analysis)
	return analysis
}

func lastPathSegment(path string) string {
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}

func slugRecommendation(a SlugAnalysis) string {
	var parts []string

	if a.Slug == "" {
		parts = append(parts, "Add a descriptive slug to the URL.")
	} else {
		if a.Length > 60 {
			parts = append(parts, "Consider shortening the slug.")
		}
		if !a.ContainsKeyword {
			parts = append(parts, "Include the main keyword in the slug if possible.")
		}
		if a.HasUnderscores {
			parts = append(parts, "Replace underscores with hyphens for better readability.")
		}
		if !a.IsReadable {
			parts = append(parts, "Use only lowercase letters, numbers, and hyphens in the slug.")
		}
		if a.HasNumbers {
			parts = append(parts, "Consider removing numbers from the slug unless necessary.")
		}
	}

	if len(parts) == 0 {
		return slugWellOptimized
	}
	return strings.Join(parts, " ")
}
