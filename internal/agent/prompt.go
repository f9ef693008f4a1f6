package agent

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/neuroblog/neuroblog/internal/agent/topics"
)

// angles rotate across generation calls so repeated cycles on similar
// topics produce distinct framings.
var angles = []string{
	"comprehensive analysis",
	"expert insights",
	"future implications",
	"industry impact",
	"technical deep-dive",
	"market analysis",
}

// titleQualifiers disambiguate a generated title that collides with
// existing content.
var titleQualifiers = []string{"Insights", "Analysis", "Perspective", "Guide", "Deep Dive", "Update"}

func buildPrompt(c topics.Candidate, now time.Time) string {
	date := now.Format("January 2, 2006")
	angle := angles[rand.Intn(len(angles))]
	published := "Just now"
	if !c.PublishedAt.IsZero() {
		published = c.PublishedAt.Format(time.RFC1123)
	}

	return fmt.Sprintf(`BREAKING NEWS (%s): "%s" - %s

Source: %s | Published: %s

Create a PROFESSIONAL, engaging blog post with %s. Requirements:
- Clean, readable text (NO HTML tags)
- Use markdown formatting: ## for headings, **bold**, *italic*
- Engaging introduction with current context
- Multiple sections with clear subheadings
- Statistics in bullet points
- Expert quotes with attribution
- Professional conclusion with actionable takeaways
- Future predictions for %d

Return ONLY valid JSON:

{
  "title": "Compelling title (max 70 chars, unique from the news headline)",
  "summary": "Engaging 2-3 sentence hook with current relevance",
  "content": "The full markdown article",
  "tags": ["%d", "breaking-news", "analysis", "insights", "trending"],
  "category": "General",
  "readTime": "8-12 min read",
  "publishDate": "%s"
}`, date, c.Title, c.Description, c.Source, published, angle, now.Year(), now.Year(), date)
}

// disambiguateTitle truncates a colliding title and appends a random
// qualifier plus an HHMM stamp so the suggestion is never silently
// dropped after a costly generation call.
func disambiguateTitle(title string, now time.Time) string {
	runes := []rune(title)
	if len(runes) > 55 {
		title = string(runes[:55])
	}
	qualifier := titleQualifiers[rand.Intn(len(titleQualifiers))]
	return fmt.Sprintf("%s - %s %s", title, qualifier, now.Format("1504"))
}
