package images

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubProvider struct {
	name string
	imgs []Image
	err  error
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Search(ctx context.Context, query string, count int) ([]Image, error) {
	return s.imgs, s.err
}

func TestResolve_AlwaysReturnsCount(t *testing.T) {
	tests := []struct {
		name     string
		provider *stubProvider
	}{
		{"provider fails", &stubProvider{name: "broken", err: fmt.Errorf("no key")}},
		{"provider empty", &stubProvider{name: "empty"}},
		{"provider short", &stubProvider{name: "short", imgs: []Image{{URL: "https://img.example/a.jpg"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.provider)
			got := r.Resolve(context.Background(), "AI news", 2)
			if len(got) != 2 {
				t.Fatalf("expected 2 images, got %d", len(got))
			}
			for _, img := range got {
				if img.URL == "" {
					t.Error("image with empty URL")
				}
			}
		})
	}
}

func TestResolve_ProviderPreferred(t *testing.T) {
	p := &stubProvider{name: "stock", imgs: []Image{
		{URL: "https://img.example/a.jpg", Credit: "Jane"},
		{URL: "https://img.example/b.jpg", Credit: "John"},
		{URL: "https://img.example/c.jpg", Credit: "Jin"},
	}}

	r := NewResolver(p)
	got := r.Resolve(context.Background(), "AI news", 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 images, got %d", len(got))
	}
	if got[0].URL != "https://img.example/a.jpg" || got[1].URL != "https://img.example/b.jpg" {
		t.Errorf("provider images not used in order: %v", got)
	}
}

func TestResolve_PadsWithPlaceholders(t *testing.T) {
	p := &stubProvider{name: "short", imgs: []Image{{URL: "https://img.example/a.jpg", Credit: "Jane"}}}

	r := NewResolver(p)
	got := r.Resolve(context.Background(), "AI news", 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 images, got %d", len(got))
	}
	if got[0].Credit != "Jane" {
		t.Error("provider image must come first")
	}
	if got[1].Credit != "Free Stock Photos" {
		t.Error("padding must be a placeholder")
	}
}

func TestPlaceholders_CycleBackends(t *testing.T) {
	r := NewResolver()
	got := r.placeholders("cloud computing trends", 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 placeholders, got %d", len(got))
	}
	hosts := []string{"source.unsplash.com", "picsum.photos", "loremflickr.com"}
	for i, host := range hosts {
		if !strings.Contains(got[i].URL, host) {
			t.Errorf("placeholder %d = %q, want host %s", i, got[i].URL, host)
		}
	}
}

func TestClassifyTheme(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"New AI model released", "artificial-intelligence"},
		{"Crypto markets rebound", "cryptocurrency"},
		{"Cybersecurity flaw disclosed", "cybersecurity"},
		{"Completely unrelated headline", "business"},
	}
	for _, tt := range tests {
		if got := ClassifyTheme(tt.in); got != tt.want {
			t.Errorf("ClassifyTheme(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBroadenQuery_Sanitizes(t *testing.T) {
	got := BroadenQuery("AI: the \"next\" wave?")
	if strings.ContainsAny(got, ":\"?") {
		t.Errorf("query %q still has punctuation", got)
	}
	if !strings.HasPrefix(got, "AI the next wave ") {
		t.Errorf("query %q lost its topic words", got)
	}
}

func TestPexelsProvider_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "test-key" {
			t.Error("missing Authorization header")
		}
		fmt.Fprint(w, `{"photos":[{"photographer":"Jane Doe","photographer_url":"https://pexels.example/jane","src":{"large":"https://images.example/large.jpg"}}]}`)
	}))
	defer srv.Close()

	p := NewPexelsProvider("test-key")
	p.baseURL = srv.URL

	got, err := p.Search(context.Background(), "AI news", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 image, got %d", len(got))
	}
	img := got[0]
	if img.URL != "https://images.example/large.jpg" || img.Credit != "Jane Doe" || img.CreditURL != "https://pexels.example/jane" {
		t.Errorf("image = %+v", img)
	}
}

func TestPexelsProvider_MissingKey(t *testing.T) {
	p := NewPexelsProvider("")
	if _, err := p.Search(context.Background(), "AI", 1); err == nil {
		t.Fatal("expected error without API key")
	}
}
