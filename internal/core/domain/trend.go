package domain

// TrendingSearch is a normalized trend record as returned by the trends
// source. It is consumed transiently per matching pass and never persisted.
type TrendingSearch struct {
	Keyword        string
	Traffic        string
	RelatedQueries []string
	Articles       []TrendArticle
}

// TrendArticle is a source article attached to a trend by the trends
// provider. It is informational only and takes no part in scoring.
type TrendArticle struct {
	Title   string
	URL     string
	Source  string
	Snippet string
}

// TrendMatch pairs a trend with a catalog article and its relevance score.
// Matches with score zero are filtered out before ranking.
type TrendMatch struct {
	Trend   TrendingSearch
	Article Article
	Score   int
}
