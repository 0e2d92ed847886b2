package entity

import "time"

// CandidateLink is an anchor on a listing page that looks like it leads to an article.
type CandidateLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Article is one successfully extracted page. Content is plain text with
// paragraphs separated by a blank line.
type Article struct {
	Source    string    `json:"source"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// PageResult is what a single in-page extraction yields: articles found
// directly, links to follow, or both.
type PageResult struct {
	Articles []Article
	Links    []CandidateLink
}

// Empty reports whether the extraction found nothing usable.
func (r PageResult) Empty() bool {
	return len(r.Articles) == 0 && len(r.Links) == 0
}
