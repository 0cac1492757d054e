package models

// NewsItem is one headline, already truncated and category-tagged for the
// fixed-width display.
type NewsItem struct {
	Title string
	Link  string // best-effort, may be empty
}

// NewsSnapshot holds the aggregated headlines for one pipeline run.
// Both lists are never empty after aggregation: a category whose sources all
// failed carries a single localized placeholder item instead.
type NewsSnapshot struct {
	Domestic      []NewsItem // 国内新闻
	International []NewsItem // 国际新闻
}
