package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/neuroblog/neuroblog/internal/agent/topics"
	"github.com/neuroblog/neuroblog/internal/blog"
)

// maxDedupKeywords bounds the alternation pattern built from a title.
const maxDedupKeywords = 3

// significantKeywords extracts the leading significant words (longer than
// three characters) from a title, lowercased, capped at maxDedupKeywords.
func significantKeywords(title string) []string {
	var out []string
	for _, word := range strings.Fields(strings.ToLower(title)) {
		word = strings.Trim(word, `.,:;!?"'()`)
		if len(word) <= 3 {
			continue
		}
		out = append(out, word)
		if len(out) >= maxDedupKeywords {
			break
		}
	}
	return out
}

// dedupFilter decides whether sufficiently similar content already exists
// among suggestions and posts within trailing time windows.
type dedupFilter struct {
	store *blog.Store
}

// isDuplicateTopic checks a candidate before generation: suggestions
// within sugWindow and posts within postWindow anchored at now, matching
// on title keywords, source, or provenance id.
func (f *dedupFilter) isDuplicateTopic(ctx context.Context, c topics.Candidate, sugWindow, postWindow time.Duration, now time.Time) (bool, error) {
	keywords := significantKeywords(c.Title)

	dup, err := f.store.HasSimilarSuggestion(ctx, keywords, c.Source, c.UniqueID, now.Add(-sugWindow))
	if err != nil {
		return false, fmt.Errorf("suggestion dedup check: %w", err)
	}
	if dup {
		return true, nil
	}

	dup, err = f.store.HasSimilarPost(ctx, keywords, c.Source, now.Add(-postWindow))
	if err != nil {
		return false, fmt.Errorf("post dedup check: %w", err)
	}
	return dup, nil
}

// isDuplicateTitle re-checks the AI-produced title before persisting,
// since generated titles diverge from the source topic title.
func (f *dedupFilter) isDuplicateTitle(ctx context.Context, title string) (bool, error) {
	dup, err := f.store.TitleExists(ctx, title, significantKeywords(title))
	if err != nil {
		return false, fmt.Errorf("title dedup check: %w", err)
	}
	return dup, nil
}
