// ABOUTME: Structured payloads produced by each handler and service
// ABOUTME: The router reads only the display-relevant fields when building summary text
package models

// GrammarResult is produced by the grammar handler
type GrammarResult struct {
	CorrectedText string `json:"corrected_text"`
	OriginalText  string `json:"original_text"`
}

// SentimentScore is the polarity part of a sentiment analysis
type SentimentScore struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Score      float64 `json:"score"`
}

// Emotion is a single detected emotion with intensity in [0,1]
type Emotion struct {
	Emotion   string  `json:"emotion"`
	Intensity float64 `json:"intensity"`
}

// SentimentResult is produced by the sentiment handler
type SentimentResult struct {
	Sentiment    SentimentScore `json:"sentiment"`
	Emotions     []Emotion      `json:"emotions"`
	OriginalText string         `json:"original_text"`
	// Method is "llm" when the model output parsed, "lexicon" when the fallback was used
	Method string `json:"method"`
}

// OptimizeResult is produced by the optimizer handler
type OptimizeResult struct {
	OptimizedText string `json:"optimized_text"`
	OriginalText  string `json:"original_text"`
	Tonality      string `json:"tonality"`
}

// QueryRefResult is produced by the query-refinement handler
type QueryRefResult struct {
	RefinedQuery string `json:"refined_query"`
	OriginalText string `json:"original_text"`
	Context      string `json:"context,omitempty"`
}

// SearchHit is a single web search result
type SearchHit struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// SearchResults is produced by the search service
type SearchResults struct {
	Query        string      `json:"query"`
	Results      []SearchHit `json:"results"`
	TotalResults int         `json:"total_results"`
}

// PageContent is produced by the page-extraction service
type PageContent struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
	Length  int    `json:"length"`
	Method  string `json:"method"`
}

// TimeInfo is produced by the time service
type TimeInfo struct {
	Timestamp     float64 `json:"timestamp"`
	FormattedTime string  `json:"formatted_time"`
	Timezone      string  `json:"timezone"`
	Source        string  `json:"source"`
}

// CompositeResult is the data payload of a search-then-synthesize response
type CompositeResult struct {
	SearchResults []SearchHit `json:"search_results"`
	AnalysisText  string      `json:"analysis_text"`
	SearchQuery   string      `json:"search_query"`
	Composite     bool        `json:"composite"`
}
