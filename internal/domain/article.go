package domain

import "time"

// Article is a news article fetched from the article source.
type Article struct {
	NewsID      string
	Title       string
	Body        string
	PublishedAt time.Time
	Provider    string
	URL         string
}
