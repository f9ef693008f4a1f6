package topics

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"
)

// Domain-diverse query keywords so consecutive cycles don't converge on
// the same subject.
var newsKeywords = []string{
	"AI technology", "machine learning", "blockchain", "cybersecurity",
	"cloud computing", "quantum computing",
	"startup funding", "market trends", "cryptocurrency", "stock market",
	"business innovation",
	"medical breakthrough", "scientific discovery", "climate change",
	"space exploration", "biotechnology",
	"entertainment news", "gaming industry", "social media trends",
	"education technology", "remote work", "online learning",
	"renewable energy", "green technology",
	"public health", "urban development",
}

// NewsAPIProvider queries the newsapi.org "everything" endpoint for very
// recent articles on a randomly chosen keyword.
type NewsAPIProvider struct {
	apiKey   string
	baseURL  string
	client   *http.Client
	window   time.Duration
	maxItems int
}

// NewNewsAPIProvider creates a NewsAPI provider. The key may be empty, in
// which case every Fetch fails and the registry falls through.
func NewNewsAPIProvider(apiKey string) *NewsAPIProvider {
	return &NewsAPIProvider{
		apiKey:   apiKey,
		baseURL:  "https://newsapi.org/v2",
		client:   &http.Client{Timeout: 15 * time.Second},
		window:   4 * time.Hour,
		maxItems: 10,
	}
}

func (p *NewsAPIProvider) Name() string { return "NewsAPI" }

type newsAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		URL         string    `json:"url"`
		PublishedAt time.Time `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (p *NewsAPIProvider) Fetch(ctx context.Context) ([]Candidate, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("news API key not configured")
	}

	keyword := newsKeywords[rand.Intn(len(newsKeywords))]
	from := time.Now().Add(-p.window).UTC().Format(time.RFC3339)

	q := url.Values{}
	q.Set("q", keyword)
	q.Set("language", "en")
	q.Set("sortBy", "publishedAt")
	q.Set("from", from)
	q.Set("pageSize", "20")
	q.Set("apiKey", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", p.baseURL+"/everything?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read news response: %w", err)
	}

	var parsed newsAPIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode news response: %w", err)
	}
	if parsed.Status != "ok" {
		return nil, fmt.Errorf("news API error: %s", parsed.Message)
	}

	var out []Candidate
	for _, a := range parsed.Articles {
		desc := a.Description
		if len(desc) > 300 {
			desc = desc[:300]
		}
		c := Candidate{
			Title:       a.Title,
			Description: desc,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			Category:    Categorize(a.Title + " " + a.Description),
			UniqueID:    DeriveUniqueID(a.Title, a.PublishedAt),
		}
		if !Usable(c) {
			continue
		}
		out = append(out, c)
		if len(out) >= p.maxItems {
			break
		}
	}
	return out, nil
}
