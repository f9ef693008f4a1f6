package draft

import (
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

func TestParse_ValidJSON(t *testing.T) {
	raw := `{"title":"AI Breakthrough","content":"Long body text here.","summary":"Short take","tags":["ai","news"],"category":"Technology","readTime":"6 min read","publishDate":"March 14, 2025"}`

	d := Parse(raw, testNow)
	if d.Fallback {
		t.Fatal("expected parsed draft, got fallback")
	}
	if d.Title != "AI Breakthrough" {
		t.Errorf("title = %q", d.Title)
	}
	if d.Content != "Long body text here." {
		t.Errorf("content = %q", d.Content)
	}
	if len(d.Tags) != 2 || d.Tags[0] != "ai" {
		t.Errorf("tags = %v", d.Tags)
	}
	if d.Category != "Technology" {
		t.Errorf("category = %q", d.Category)
	}
}

func TestParse_CodeFencedJSON(t *testing.T) {
	raw := "Here is the post:\n```json\n{\"title\":\"Fenced Title\",\"content\":\"Body.\"}\n```\nDone."

	d := Parse(raw, testNow)
	if d.Fallback {
		t.Fatal("expected parsed draft, got fallback")
	}
	if d.Title != "Fenced Title" {
		t.Errorf("title = %q", d.Title)
	}
}

func TestParse_SurroundingProse(t *testing.T) {
	raw := `Sure! {"title":"Embedded Object","content":"Text with {braces} inside strings? No: \"quoted {\" stays."} trailing text`

	d := Parse(raw, testNow)
	if d.Fallback {
		t.Fatal("expected parsed draft, got fallback")
	}
	if d.Title != "Embedded Object" {
		t.Errorf("title = %q", d.Title)
	}
}

func TestParse_TitleTruncated(t *testing.T) {
	long := strings.Repeat("x", 120)
	raw := `{"title":"` + long + `","content":"Body."}`

	d := Parse(raw, testNow)
	if got := len([]rune(d.Title)); got != maxTitleLength {
		t.Errorf("title length = %d, want %d", got, maxTitleLength)
	}
}

func TestParse_DefaultsFilled(t *testing.T) {
	raw := `{"title":"Minimal","content":"Body."}`

	d := Parse(raw, testNow)
	if d.Summary != "Minimal" {
		t.Errorf("summary = %q, want title fallback", d.Summary)
	}
	if d.Category != "General" {
		t.Errorf("category = %q", d.Category)
	}
	if d.ReadTime != "8-10 min read" {
		t.Errorf("readTime = %q", d.ReadTime)
	}
	if d.PublishDate != "March 14, 2025" {
		t.Errorf("publishDate = %q", d.PublishDate)
	}
	if len(d.Tags) != 2 || d.Tags[0] != "2025" || d.Tags[1] != "trending" {
		t.Errorf("tags = %v", d.Tags)
	}
}

func TestParse_MalformedTagsFallBack(t *testing.T) {
	raw := `{"title":"Odd Tags","content":"Body.","tags":"ai, news"}`

	d := Parse(raw, testNow)
	if d.Fallback {
		t.Fatal("tags shape must not force the full fallback")
	}
	if len(d.Tags) != 2 || d.Tags[1] != "trending" {
		t.Errorf("tags = %v", d.Tags)
	}
}

func TestParse_JunkFallsBack(t *testing.T) {
	raw := "The model refused and wrote an apology instead of JSON."

	d := Parse(raw, testNow)
	if !d.Fallback {
		t.Fatal("expected fallback draft")
	}
	if d.Title != "Breaking Tech News - March 14, 2025" {
		t.Errorf("title = %q", d.Title)
	}
	if !strings.Contains(d.Content, raw) {
		t.Error("fallback body must embed the raw completion prefix")
	}
	want := []string{"2025", "breaking-news", "trending", "ai-generated"}
	if len(d.Tags) != len(want) {
		t.Fatalf("tags = %v", d.Tags)
	}
	for i, tag := range want {
		if d.Tags[i] != tag {
			t.Errorf("tags[%d] = %q, want %q", i, d.Tags[i], tag)
		}
	}
}

func TestParse_FallbackPrefixBounded(t *testing.T) {
	raw := strings.Repeat("a", 2000)

	d := Parse(raw, testNow)
	if !d.Fallback {
		t.Fatal("expected fallback draft")
	}
	if strings.Contains(d.Content, strings.Repeat("a", fallbackBodyPrefix+1)) {
		t.Errorf("fallback body embeds more than %d raw characters", fallbackBodyPrefix)
	}
	if !strings.Contains(d.Content, strings.Repeat("a", fallbackBodyPrefix)) {
		t.Error("fallback body missing the raw prefix")
	}
}

func TestParse_MissingContentFallsBack(t *testing.T) {
	raw := `{"title":"No Body"}`

	if d := Parse(raw, testNow); !d.Fallback {
		t.Fatal("a draft without content must fall back")
	}
}

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"nested", `x {"a":{"b":2}} y`, `{"a":{"b":2}}`},
		{"brace in string", `{"a":"}"}`, `{"a":"}"}`},
		{"escaped quote", `{"a":"\"}"}`, `{"a":"\"}"}`},
		{"unbalanced", `{"a":1`, ""},
		{"none", "no json here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstJSONObject(tt.in); got != tt.want {
				t.Errorf("firstJSONObject(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
