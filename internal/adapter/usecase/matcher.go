package usecase

import (
	"sort"
	"strings"
	"time"

	"trendads/internal/core/domain"
)

// Scoring weights. A trend token found in the article title counts 3, a
// token/keyword containment match counts 2 and a related-query/keyword
// containment match counts 1. Recency adds 2 under 24h and 1 under 72h.
const (
	titleTokenWeight   = 3
	keywordTokenWeight = 2
	relatedQueryWeight = 1
)

// Score computes the relevance of an article to a trend. The recency bonus
// samples the wall clock once per call.
func Score(trend domain.TrendingSearch, article domain.Article) int {
	return scoreAt(trend, article, time.Now())
}

func scoreAt(trend domain.TrendingSearch, article domain.Article, now time.Time) int {
	score := 0
	title := strings.ToLower(article.Title)
	tokens := strings.Fields(strings.ToLower(trend.Keyword))

	for _, token := range tokens {
		if strings.Contains(title, token) {
			score += titleTokenWeight
		}
	}

	for _, kw := range article.Keywords {
		kw = strings.ToLower(kw)
		for _, token := range tokens {
			if strings.Contains(kw, token) || strings.Contains(token, kw) {
				score += keywordTokenWeight
			}
		}
		for _, related := range trend.RelatedQueries {
			related = strings.ToLower(related)
			if strings.Contains(kw, related) || strings.Contains(related, kw) {
				score += relatedQueryWeight
			}
		}
	}

	switch age := now.Sub(article.PublishedAt); {
	case age < 24*time.Hour:
		score += 2
	case age < 72*time.Hour:
		score++
	}
	return score
}

// Match scores the cross-product of trends and articles, drops zero-score
// pairs and returns the rest ordered by score descending. The sort is
// stable, so ties keep the (trend, then article) enumeration order. Empty
// inputs yield an empty list.
func Match(trends []domain.TrendingSearch, articles []domain.Article) []domain.TrendMatch {
	matches := make([]domain.TrendMatch, 0, len(trends)*len(articles))
	for _, trend := range trends {
		for _, article := range articles {
			if score := Score(trend, article); score > 0 {
				matches = append(matches, domain.TrendMatch{
					Trend:   trend,
					Article: article,
					Score:   score,
				})
			}
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}
