package topics

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func rssFeed(recent, stale time.Time) string {
	const layout = time.RFC1123Z
	return fmt.Sprintf(`<?xml version="1.0"?>
<rss version="2.0"><channel>
<title>Example Feed</title>
<item>
  <title>A recent headline about distributed systems</title>
  <description>Fresh details</description>
  <link>https://feed.example/recent</link>
  <pubDate>%s</pubDate>
</item>
<item>
  <title>A stale headline well outside the window</title>
  <description>Old details</description>
  <link>https://feed.example/stale</link>
  <pubDate>%s</pubDate>
</item>
<item>
  <title>short</title>
  <description>Too short a title</description>
  <pubDate>%s</pubDate>
</item>
</channel></rss>`, recent.Format(layout), stale.Format(layout), recent.Format(layout))
}

func TestRSSProvider_Fetch(t *testing.T) {
	now := time.Now()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssFeed(now.Add(-time.Hour), now.Add(-48*time.Hour)))
	}))
	defer srv.Close()

	p := NewRSSProvider([]string{srv.URL})
	got, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	c := got[0]
	if c.Title != "A recent headline about distributed systems" {
		t.Errorf("title = %q", c.Title)
	}
	if c.Source != "Example Feed" || c.URL != "https://feed.example/recent" {
		t.Errorf("candidate = %+v", c)
	}
}

func TestRSSProvider_AllFeedsDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewRSSProvider([]string{srv.URL})
	if _, err := p.Fetch(context.Background()); err == nil {
		t.Fatal("expected error when every feed fails")
	}
}

func TestNewRSSProvider_DefaultFeeds(t *testing.T) {
	p := NewRSSProvider(nil)
	if len(p.feeds) != len(DefaultFeeds) {
		t.Errorf("feeds = %d, want defaults", len(p.feeds))
	}
}
