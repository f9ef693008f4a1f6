// Package topics aggregates trending topic candidates from external news
// providers, with a curated offline fallback.
package topics

import (
	"context"
	"encoding/base64"
	"log/slog"
	"time"
)

// Candidate is a normalized trending-subject record used to seed one
// generation attempt.
type Candidate struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	URL         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
	Category    string    `json:"category"`
	UniqueID    string    `json:"unique_id"`
}

// Provider is a single news source strategy. Fetch failures are swallowed
// by the registry; a provider with missing credentials should return an
// error rather than guess.
type Provider interface {
	Name() string
	Fetch(ctx context.Context) ([]Candidate, error)
}

// minTitleLength filters out stub headlines that cannot seed a post.
const minTitleLength = 20

// Registry tries providers in registration order and falls back to the
// curated topic list when every provider fails or returns nothing.
// Safe for concurrent FetchTopics calls once registration is done.
type Registry struct {
	providers []Provider
	logger    *slog.Logger
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{logger: slog.Default()}
}

// Register appends a provider. Order is priority order.
func (r *Registry) Register(p Provider) {
	r.providers = append(r.providers, p)
}

// FetchTopics collects candidates from all providers in priority order.
// Provider failures are logged, never propagated. The result is never
// empty: when everything fails, the shuffled fallback list is returned.
func (r *Registry) FetchTopics(ctx context.Context) []Candidate {
	var all []Candidate
	for _, p := range r.providers {
		cands, err := p.Fetch(ctx)
		if err != nil {
			r.logger.Warn("topic provider failed", "provider", p.Name(), "error", err)
			continue
		}
		r.logger.Info("fetched topics", "provider", p.Name(), "count", len(cands))
		all = append(all, cands...)
	}
	if len(all) == 0 {
		r.logger.Info("all topic providers empty, using fallback topics")
		return FallbackTopics()
	}
	return all
}

// Usable reports whether a candidate passes the minimum-quality filter.
func Usable(c Candidate) bool {
	return c.Title != "" &&
		c.Description != "" &&
		len(c.Title) > minTitleLength &&
		!containsRemoved(c.Title)
}

func containsRemoved(title string) bool {
	// Some providers blank withdrawn articles with a "[Removed]" stub.
	for i := 0; i+9 <= len(title); i++ {
		if title[i:i+9] == "[Removed]" {
			return true
		}
	}
	return false
}

// DeriveUniqueID builds the provenance hash used for deduplication:
// base64 of title plus publication timestamp, truncated.
func DeriveUniqueID(title string, publishedAt time.Time) string {
	enc := base64.StdEncoding.EncodeToString([]byte(title + publishedAt.Format(time.RFC3339)))
	if len(enc) > 10 {
		enc = enc[:10]
	}
	return enc
}
