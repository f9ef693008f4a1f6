package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// PexelsProvider searches the Pexels stock-photo API.
type PexelsProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewPexelsProvider creates a Pexels provider. An empty key makes every
// search fail so the resolver falls through to placeholders.
func NewPexelsProvider(apiKey string) *PexelsProvider {
	return &PexelsProvider{
		apiKey:  apiKey,
		baseURL: "https://api.pexels.com/v1",
		client:  &http.Client{Timeout: 8 * time.Second},
	}
}

func (p *PexelsProvider) Name() string { return "Pexels" }

type pexelsResponse struct {
	Photos []struct {
		Photographer    string `json:"photographer"`
		PhotographerURL string `json:"photographer_url"`
		Src             struct {
			Large string `json:"large"`
		} `json:"src"`
	} `json:"photos"`
}

func (p *PexelsProvider) Search(ctx context.Context, query string, count int) ([]Image, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("Pexels API key not configured")
	}

	q := url.Values{}
	q.Set("query", BroadenQuery(query))
	q.Set("per_page", fmt.Sprintf("%d", count))
	q.Set("orientation", "landscape")

	req, err := http.NewRequestWithContext(ctx, "GET", p.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search images: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Pexels returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image response: %w", err)
	}

	var parsed pexelsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode image response: %w", err)
	}

	out := make([]Image, 0, len(parsed.Photos))
	for _, photo := range parsed.Photos {
		out = append(out, Image{
			URL:       photo.Src.Large,
			Alt:       fmt.Sprintf("%s - Professional Image", query),
			Credit:    photo.Photographer,
			CreditURL: photo.PhotographerURL,
		})
	}
	return out, nil
}
