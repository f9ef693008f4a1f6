// Package images resolves illustrative images for topics, preferring a
// stock-photo provider and falling back to themed placeholder URLs.
package images

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"
)

// Image is a resolved illustration with attribution.
type Image struct {
	URL       string `json:"url"`
	Alt       string `json:"alt,omitempty"`
	Credit    string `json:"credit,omitempty"`
	CreditURL string `json:"credit_url,omitempty"`
}

// Provider searches an external image service for a query.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, count int) ([]Image, error)
}

// Resolver tries providers in order, then synthesizes placeholders so a
// resolve call never fails and always returns count entries.
type Resolver struct {
	providers []Provider
	now       func() time.Time
	logger    *slog.Logger
}

// NewResolver creates a resolver over the given providers.
func NewResolver(providers ...Provider) *Resolver {
	return &Resolver{
		providers: providers,
		now:       time.Now,
		logger:    slog.Default(),
	}
}

// Resolve returns exactly count images for the topic.
func (r *Resolver) Resolve(ctx context.Context, topic string, count int) []Image {
	if count <= 0 {
		count = 1
	}
	for _, p := range r.providers {
		imgs, err := p.Search(ctx, topic, count)
		if err != nil {
			r.logger.Warn("image provider failed", "provider", p.Name(), "error", err)
			continue
		}
		if len(imgs) >= count {
			return imgs[:count]
		}
		if len(imgs) > 0 {
			return append(imgs, r.placeholders(topic, count-len(imgs))...)
		}
	}
	return r.placeholders(topic, count)
}

// themeKeywords classifies a topic into a placeholder image theme.
var themeKeywords = []struct {
	theme string
	words []string
}{
	{"artificial-intelligence", []string{"ai", "artificial"}},
	{"cryptocurrency", []string{"crypto", "blockchain"}},
	{"mobile-technology", []string{"mobile", "app"}},
	{"cloud-computing", []string{"cloud", "server"}},
	{"cybersecurity", []string{"cyber", "security"}},
	{"healthcare", []string{"health", "medical"}},
	{"business", []string{"business", "finance"}},
	{"education", []string{"education", "learning"}},
	{"nature", []string{"environment", "climate"}},
	{"entertainment", []string{"entertainment", "gaming"}},
	{"lifestyle", []string{"travel", "lifestyle"}},
	{"science", []string{"science", "research"}},
}

// ClassifyTheme maps a topic to a placeholder theme, defaulting to
// "business".
func ClassifyTheme(topic string) string {
	lower := strings.ToLower(topic)
	for _, entry := range themeKeywords {
		for _, w := range entry.words {
			if strings.Contains(lower, w) {
				return entry.theme
			}
		}
	}
	return "business"
}

// placeholders synthesizes deterministic placeholder URLs, cycling across
// several backends and disambiguating with the current time so repeated
// cycles don't collide.
func (r *Resolver) placeholders(topic string, count int) []Image {
	theme := ClassifyTheme(topic)
	base := r.now().UnixMilli()

	out := make([]Image, 0, count)
	for i := 0; i < count; i++ {
		sig := base + int64(i)
		backends := []string{
			fmt.Sprintf("https://source.unsplash.com/800x400/?%s&sig=%d", theme, sig),
			fmt.Sprintf("https://picsum.photos/800/400?random=%d", sig),
			fmt.Sprintf("https://loremflickr.com/800/400/%s?random=%d", theme, sig),
		}
		out = append(out, Image{
			URL:    backends[i%len(backends)],
			Alt:    fmt.Sprintf("%s - Professional %s Image", topic, theme),
			Credit: "Free Stock Photos",
		})
	}
	return out
}

// queryKeywords broaden stock-photo searches for abstract topics.
var queryKeywords = []string{"technology", "business", "innovation", "digital", "computer", "data"}

// BroadenQuery appends a random generic keyword to a sanitized topic so
// narrow headlines still match stock photos.
func BroadenQuery(topic string) string {
	var b strings.Builder
	for _, r := range topic {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}
	kw := queryKeywords[rand.Intn(len(queryKeywords))]
	return strings.TrimSpace(b.String()) + " " + kw
}
