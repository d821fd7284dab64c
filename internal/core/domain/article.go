package domain

import "time"

// Article is one entry of the publisher's catalog. Keywords drive trend
// matching and campaign keyword criteria; Description, when set, is used
// as ad copy and should fit the platform's 90 character ceiling.
type Article struct {
	ID          string
	Title       string
	URL         string
	Keywords    []string
	Category    string
	Description string
	PublishedAt time.Time
}
