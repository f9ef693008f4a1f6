// Package blog provides persistence for AI-generated blog suggestions
// and the posts materialized from them.
package blog

import (
	"errors"
	"time"
)

// Suggestion status values. A suggestion moves forward only:
// pending -> approved -> published, or pending -> published directly.
// rejected is terminal and reachable from pending only.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusPublished = "published"
)

// Post status values.
const (
	PostDraft     = "draft"
	PostPublished = "published"
)

var (
	// ErrNotFound is returned when a suggestion id does not exist.
	ErrNotFound = errors.New("suggestion not found")

	// ErrStateConflict is returned when a transition finds the suggestion
	// in a different state than the one it requires.
	ErrStateConflict = errors.New("suggestion state conflict")
)

// Image is an illustrative image attached to a suggestion.
type Image struct {
	URL       string `json:"url"`
	Alt       string `json:"alt,omitempty"`
	Credit    string `json:"credit,omitempty"`
	CreditURL string `json:"credit_url,omitempty"`
}

// Suggestion is a moderation-pending AI-generated candidate blog post.
type Suggestion struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Summary     string     `json:"summary"`
	Tags        []string   `json:"tags"`
	Category    string     `json:"category"`
	Source      string     `json:"source"`
	NewsURL     string     `json:"news_url,omitempty"`
	UniqueID    string     `json:"unique_id,omitempty"`
	Images      []Image    `json:"images,omitempty"`
	ReadTime    string     `json:"read_time,omitempty"`
	PublishDate string     `json:"publish_date,omitempty"`
	Status      string     `json:"status"`
	AdminNotes  string     `json:"admin_notes,omitempty"`
	GeneratedAt time.Time  `json:"generated_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	PostID      *int64     `json:"post_id,omitempty"`
}

// Post is a blog article owned by the surrounding blog system. The agent
// creates posts only through approve and publish transitions.
type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Summary     string    `json:"summary"`
	Tags        []string  `json:"tags"`
	Status      string    `json:"status"`
	AuthorID    int64     `json:"author_id"`
	NewsSource  string    `json:"news_source,omitempty"`
	ReadTime    string    `json:"read_time,omitempty"`
	PublishDate string    `json:"publish_date,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
