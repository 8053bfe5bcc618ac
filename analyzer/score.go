package analyzer

// scoreRule awards fixed points when its condition holds. The rubric is a
// flat table so the scoring behavior is data, not scattered conditionals.
type scoreRule struct {
	name    string
	points  int
	applies func(*Report) bool
}

var scoreRules = []scoreRule{
	{"keyword in title", 10, func(r *Report) bool { return r.KeywordInTitle }},
	{"keyword in URL", 5, func(r *Report) bool { return r.KeywordInURL }},
	{"keyword in an H1", 10, func(r *Report) bool { return r.KeywordInHeadings.H1 > 0 }},
	{"keyword density between 1% and 3%", 15, func(r *Report) bool {
		return r.KeywordDensity >= 1 && r.KeywordDensity <= 3
	}},
	{"readability above 60", 15, func(r *Report) bool { return r.ReadabilityScore > 60 }},
	{"has internal links", 10, func(r *Report) bool { return r.InternalLinks > 0 }},
	{"has external links", 5, func(r *Report) bool { return r.ExternalLinks > 0 }},
	{"has meta description", 10, func(r *Report) bool { return r.MetaDescription != "" }},
	{"has breadcrumbs", 5, func(r *Report) bool { return r.Breadcrumbs }},
	{"keyword in introduction", 5, func(r *Report) bool { return r.KeywordInIntroduction }},
	{"at least 3 internal links", 5, func(r *Report) bool { return r.InternalLinksCount >= 3 }},
	{"at least 3 outbound links", 5, func(r *Report) bool { return r.OutboundLinksCount >= 3 }},
	{"readable slug", 3, func(r *Report) bool { return r.SlugAnalysis.IsReadable }},
	{"keyword in slug", 3, func(r *Report) bool { return r.SlugAnalysis.ContainsKeyword }},
	{"slug uses hyphens without underscores", 2, func(r *Report) bool {
		return r.SlugAnalysis.HasDashes && !r.SlugAnalysis.HasUnderscores
	}},
	{"slug has no digits", 2, func(r *Report) bool { return !r.SlugAnalysis.HasNumbers }},
}

const maxScore = 100

// OverallScore sums the rubric points for every satisfied rule, capped
// at 100.
func OverallScore(r *Report) int {
	score := 0
	for _, rule := range scoreRules {
		if rule.applies(r) {
			score += rule.points
		}
	}
	if score > maxScore {
		score = maxScore
	}
	return score
}
