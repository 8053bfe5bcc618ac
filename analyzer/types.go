package analyzer

// Report is the complete result of analyzing one page for one keyword.
// It is assembled fresh per request and never persisted.
type Report struct {
	URL                    string            `json:"url"`
	Keyword                string            `json:"keyword"`
	Title                  string            `json:"title"`
	TitleAnalysis          TitleAnalysis     `json:"title_analysis"`
	MetaDescription        string            `json:"meta_description"`
	HeadingAnalysis        HeadingAnalysis   `json:"heading_analysis"`
	KeywordDensity         float64           `json:"keyword_density"`
	ReadabilityScore       float64           `json:"readability_score"`
	InternalLinks          int               `json:"internal_links"`
	ExternalLinks          int               `json:"external_links"`
	KeywordInURL           bool              `json:"keyword_in_url"`
	KeywordInTitle         bool              `json:"keyword_in_title"`
	KeywordInHeadings      KeywordInHeadings `json:"keyword_in_headings"`
	MetaTags               []MetaTag         `json:"meta_tags"`
	OpenGraphTags          []MetaTag         `json:"open_graph_tags"`
	TwitterTags            []MetaTag         `json:"twitter_tags"`
	CanonicalURL           string            `json:"canonical_url"`
	RobotsMeta             string            `json:"robots_meta"`
	ContentAnalysis        ContentAnalysis   `json:"content_analysis"`
	Breadcrumbs            bool              `json:"breadcrumbs"`
	KeywordInIntroduction  bool              `json:"keyword_in_introduction"`
	InternalLinksCount     int               `json:"internal_links_count"`
	OutboundLinksCount     int               `json:"outbound_links_count"`
	SchemaPresence         bool              `json:"schema_presence"`
	SlugAnalysis           SlugAnalysis      `json:"slug_analysis"`
	TitleHierarchyAnalysis HierarchyAnalysis `json:"title_hierarchy_analysis"`
	SEOImages              []ImageRecord     `json:"seo_images"`
	ImageAnalysis          *ImageAggregates  `json:"image_analysis,omitempty"`
	OverallScore           int               `json:"overall_score"`
}

// TitleAnalysis describes the page title relative to the keyword.
// KeywordPosition is the 1-based character index of the first
// case-insensitive match, 0 when absent.
type TitleAnalysis struct {
	Text            string `json:"text"`
	Length          int    `json:"length"`
	ContainsKeyword bool   `json:"containsKeyword"`
	KeywordPosition int    `json:"keywordPosition"`
}

// HeadingLevelAnalysis summarizes one heading level.
type HeadingLevelAnalysis struct {
	Count         int      `json:"count"`
	WithKeyword   int      `json:"withKeyword"`
	AverageLength float64  `json:"averageLength"`
	Items         []string `json:"list"`
}

// HeadingAnalysis covers the levels users actually optimize for.
type HeadingAnalysis struct {
	H1 HeadingLevelAnalysis `json:"h1"`
	H2 HeadingLevelAnalysis `json:"h2"`
	H3 HeadingLevelAnalysis `json:"h3"`
}

// KeywordInHeadings counts keyword-bearing headings per level.
type KeywordInHeadings struct {
	H1 int `json:"h1"`
	H2 int `json:"h2"`
	H3 int `json:"h3"`
}

// MetaTag is a name/content pair from a <meta> element; Name comes from
// either the name or property attribute.
type MetaTag struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// HeadingEntry is one heading in document order.
type HeadingEntry struct {
	Tag      string `json:"tag"`
	Level    int    `json:"level"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

// HierarchyIssue flags a heading whose level jumps more than one step
// deeper than its predecessor.
type HierarchyIssue struct {
	Message  string `json:"message"`
	Position int    `json:"position"`
	Text     string `json:"text"`
}

// HierarchyAnalysis is the ordered heading walk plus any level-jump issues.
type HierarchyAnalysis struct {
	Headings []HeadingEntry   `json:"headings"`
	Issues   []HierarchyIssue `json:"hierarchyIssues"`
}

// ParagraphAnalysis describes one non-empty <p> element.
type ParagraphAnalysis struct {
	Text            string `json:"text"`
	WordCount       int    `json:"wordCount"`
	ContainsKeyword bool   `json:"containsKeyword"`
}

// ContentAnalysis holds the text statistics for the page body.
type ContentAnalysis struct {
	WordCount              int                 `json:"wordCount"`
	KeywordCount           int                 `json:"keywordCount"`
	KeywordDensity         float64             `json:"keywordDensity"`
	SentenceCount          int                 `json:"sentenceCount"`
	AvgWordsPerSentence    float64             `json:"avgWordsPerSentence"`
	ParagraphCount         int                 `json:"paragraphCount"`
	AvgParagraphLength     float64             `json:"avgParagraphLength"`
	Paragraphs             []ParagraphAnalysis `json:"paragraphAnalysis"`
	AvgSentenceLength      float64             `json:"avgSentenceLength"`
	SentenceLengthVariance float64             `json:"sentenceLengthVariance"`
	ContentToHTMLRatio     float64             `json:"contentToHtmlRatio"`
}

// ImageRecord describes one <img> element. Width and Height are the raw
// HTML attributes ("unknown" when absent) until deep mode replaces them
// with decoded pixel dimensions.
type ImageRecord struct {
	Src            string `json:"src"`
	Alt            string `json:"alt"`
	HasAlt         bool   `json:"hasAlt"`
	Width          string `json:"width"`
	Height         string `json:"height"`
	Format         string `json:"format"`
	IsWebOptimized bool   `json:"webOptimized"`
	FileSizeBytes  *int64 `json:"fileSizeBytes,omitempty"`
	LoadTimeMs     *int64 `json:"loadTimeMs,omitempty"`
}

// ImageAggregates summarizes the deep image fetch pass. Images whose fetch
// failed are excluded from every aggregate.
type ImageAggregates struct {
	TotalImages           int            `json:"totalImages"`
	WithAlt               int            `json:"withAlt"`
	WithKeywordInAlt      int            `json:"withKeywordInAlt"`
	WithKeywordInFilename int            `json:"withKeywordInFilename"`
	LargeImages           int            `json:"largeImages"`
	SmallImages           int            `json:"smallImages"`
	TotalBytes            int64          `json:"totalBytes"`
	AverageBytes          float64        `json:"averageBytes"`
	Formats               map[string]int `json:"formats"`
	AverageLoadTimeMs     float64        `json:"averageLoadTimeMs"`
	FailedFetches         int            `json:"failedFetches"`
}

// SlugAnalysis scores the final path segment of the analyzed URL.
type SlugAnalysis struct {
	Slug            string `json:"slug"`
	Length          int    `json:"length"`
	ContainsKeyword bool   `json:"containsKeyword"`
	IsReadable      bool   `json:"isReadable"`
	HasDashes       bool   `json:"hasDashes"`
	HasUnderscores  bool   `json:"hasUnderscores"`
	HasNumbers      bool   `json:"hasNumbers"`
	Recommendation  string `json:"recommendation"`
}
