// Package draft parses semi-structured completions from the generation
// service into suggestion drafts. Parsing never fails: malformed input
// falls back to a deterministic synthesized draft.
package draft

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// maxTitleLength bounds suggestion titles.
const maxTitleLength = 75

// fallbackBodyPrefix is how much of an unparseable completion gets
// embedded into the synthesized fallback body.
const fallbackBodyPrefix = 600

// Draft is the normalized suggestion payload extracted from a completion.
// Fallback is true when the payload was synthesized because the raw text
// could not be decoded.
type Draft struct {
	Title       string
	Content     string
	Summary     string
	Tags        []string
	Category    string
	ReadTime    string
	PublishDate string
	Fallback    bool
}

type rawPayload struct {
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Summary     string          `json:"summary"`
	Tags        json.RawMessage `json:"tags"`
	Category    string          `json:"category"`
	ReadTime    string          `json:"readTime"`
	PublishDate string          `json:"publishDate"`
}

var codeFenceRe = regexp.MustCompile("```json\\s*|```\\s*")

// Parse turns a raw completion into a usable draft. It strips code
// fences, locates the first balanced JSON object, and decodes it; on any
// failure it returns the fallback draft instead of an error.
func Parse(raw string, now time.Time) Draft {
	clean := strings.TrimSpace(codeFenceRe.ReplaceAllString(raw, ""))

	if obj := firstJSONObject(clean); obj != "" {
		var payload rawPayload
		if err := json.Unmarshal([]byte(obj), &payload); err == nil &&
			payload.Title != "" && payload.Content != "" {
			return normalize(payload, now)
		}
	}
	return fallbackDraft(raw, now)
}

// firstJSONObject returns the first balanced top-level JSON object in s,
// or "" when none exists. String literals and escapes are honored so
// braces inside content don't break the scan.
func firstJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

func normalize(p rawPayload, now time.Time) Draft {
	d := Draft{
		Title:       truncate(p.Title, maxTitleLength),
		Content:     p.Content,
		Summary:     p.Summary,
		Category:    p.Category,
		ReadTime:    p.ReadTime,
		PublishDate: p.PublishDate,
	}
	if d.Summary == "" {
		d.Summary = d.Title
	}
	if d.Category == "" {
		d.Category = "General"
	}
	if d.ReadTime == "" {
		d.ReadTime = "8-10 min read"
	}
	if d.PublishDate == "" {
		d.PublishDate = formatDate(now)
	}

	var tags []string
	if len(p.Tags) == 0 || json.Unmarshal(p.Tags, &tags) != nil || len(tags) == 0 {
		tags = defaultTags(now)
	}
	d.Tags = tags
	return d
}

func fallbackDraft(raw string, now time.Time) Draft {
	date := formatDate(now)
	prefix := truncate(raw, fallbackBodyPrefix)

	content := fmt.Sprintf(`## Latest Technology Update

%s

## Key Points

- Breaking development in the technology sector
- Significant industry impact and implications
- Future outlook for %d
- Market reactions and expert opinions

## Analysis

This development represents a significant shift in the technology landscape, with far-reaching implications for businesses and consumers alike.

**Published:** %s`, prefix, now.Year(), date)

	return Draft{
		Title:       fmt.Sprintf("Breaking Tech News - %s", date),
		Content:     content,
		Summary:     fmt.Sprintf("Latest technology news and analysis - %s", date),
		Tags:        []string{fmt.Sprintf("%d", now.Year()), "breaking-news", "trending", "ai-generated"},
		Category:    "General",
		ReadTime:    "8-10 min read",
		PublishDate: date,
		Fallback:    true,
	}
}

func defaultTags(now time.Time) []string {
	return []string{fmt.Sprintf("%d", now.Year()), "trending"}
}

func formatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
