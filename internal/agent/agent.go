// Package agent owns the suggestion lifecycle: it orchestrates topic
// aggregation, deduplication, text generation, image resolution, and
// formatting into pending suggestions, and exposes the moderation
// transitions that turn suggestions into posts.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/neuroblog/neuroblog/internal/agent/compose"
	"github.com/neuroblog/neuroblog/internal/agent/draft"
	"github.com/neuroblog/neuroblog/internal/agent/gen"
	"github.com/neuroblog/neuroblog/internal/agent/images"
	"github.com/neuroblog/neuroblog/internal/agent/topics"
	"github.com/neuroblog/neuroblog/internal/blog"
)

// Config holds lifecycle tuning. The pending ceiling is best-effort
// backpressure: the count check and the insert are not one atomic step,
// so concurrent triggers can overshoot it slightly.
type Config struct {
	OnDemandLimit        int           `yaml:"on_demand_limit" json:"on_demand_limit"`
	AutoLimit            int           `yaml:"auto_limit" json:"auto_limit"`
	MaxPending           int           `yaml:"max_pending" json:"max_pending" env:"AGENT_MAX_PENDING"`
	SuggestionWindow     time.Duration `yaml:"suggestion_window" json:"suggestion_window"`
	PostWindow           time.Duration `yaml:"post_window" json:"post_window"`
	AutoSuggestionWindow time.Duration `yaml:"auto_suggestion_window" json:"auto_suggestion_window"`
	AutoPostWindow       time.Duration `yaml:"auto_post_window" json:"auto_post_window"`
	Interval             time.Duration `yaml:"interval" json:"interval"`
	ImageCount           int           `yaml:"image_count" json:"image_count"`
	AuthorID             int64         `yaml:"author_id" json:"author_id"`
}

// DefaultConfig returns the lifecycle defaults.
func DefaultConfig() Config {
	return Config{
		OnDemandLimit:        10,
		AutoLimit:            1,
		MaxPending:           15,
		SuggestionWindow:     2 * time.Hour,
		PostWindow:           4 * time.Hour,
		AutoSuggestionWindow: 3 * time.Hour,
		AutoPostWindow:       6 * time.Hour,
		Interval:             5 * time.Minute,
		ImageCount:           2,
		AuthorID:             1,
	}
}

// Agent is the suggestion lifecycle manager. It holds no per-cycle
// mutable state, so overlapping Generate calls from the scheduler and
// the HTTP handlers are safe.
type Agent struct {
	store  *blog.Store
	topics *topics.Registry
	gen    gen.Completer
	images *images.Resolver
	dedup  dedupFilter
	cfg    Config
	now    func() time.Time
	sched  *Scheduler
	logger *slog.Logger
}

// New creates a lifecycle manager over the given collaborators.
func New(store *blog.Store, registry *topics.Registry, completer gen.Completer, resolver *images.Resolver, cfg Config) *Agent {
	a := &Agent{
		store:  store,
		topics: registry,
		gen:    completer,
		images: resolver,
		dedup:  dedupFilter{store: store},
		cfg:    cfg,
		now:    time.Now,
		logger: slog.Default(),
	}
	a.sched = NewScheduler(cfg.Interval, a.runScheduled)
	return a
}

// GenerateOptions selects the per-cycle bounds for one generation run.
type GenerateOptions struct {
	Limit            int
	SuggestionWindow time.Duration
	PostWindow       time.Duration
}

// OnDemandOptions returns the bounds for a moderator-triggered run.
func (a *Agent) OnDemandOptions() GenerateOptions {
	return GenerateOptions{
		Limit:            a.cfg.OnDemandLimit,
		SuggestionWindow: a.cfg.SuggestionWindow,
		PostWindow:       a.cfg.PostWindow,
	}
}

// Generate runs the full pipeline: fetch topics, drop duplicates, call
// the generation service, parse and format, re-check the generated
// title, and persist each survivor as a pending suggestion.
//
// A topic or image provider failure degrades to fallbacks and is never
// surfaced. An exhausted generation retry budget aborts the cycle; the
// suggestions persisted before the failure are returned alongside the
// error.
func (a *Agent) Generate(ctx context.Context, opts GenerateOptions) ([]blog.Suggestion, error) {
	pending, err := a.store.CountPendingSuggestions(ctx)
	if err != nil {
		return nil, err
	}
	if pending >= a.cfg.MaxPending {
		a.logger.Info("pending ceiling reached, skipping generation",
			"pending", pending, "ceiling", a.cfg.MaxPending)
		return nil, nil
	}

	candidates := a.topics.FetchTopics(ctx)
	var results []blog.Suggestion

	for _, cand := range candidates {
		if len(results) >= opts.Limit {
			break
		}

		dup, err := a.dedup.isDuplicateTopic(ctx, cand, opts.SuggestionWindow, opts.PostWindow, a.now().UTC())
		if err != nil {
			return results, err
		}
		if dup {
			a.logger.Info("skipping duplicate topic", "title", cand.Title)
			continue
		}

		sug, err := a.generateOne(ctx, cand)
		if err != nil {
			return results, fmt.Errorf("generate for %q: %w", cand.Title, err)
		}
		results = append(results, *sug)
	}

	a.logger.Info("generation cycle complete", "generated", len(results))
	return results, nil
}

func (a *Agent) generateOne(ctx context.Context, cand topics.Candidate) (*blog.Suggestion, error) {
	now := a.now()

	// Image resolution never fails, so it can overlap the generation
	// call instead of extending the cycle.
	imgCh := make(chan []images.Image, 1)
	go func() {
		imgCh <- a.images.Resolve(ctx, cand.Title, a.cfg.ImageCount)
	}()

	raw, err := a.gen.Complete(ctx, buildPrompt(cand, now))
	imgs := <-imgCh
	if err != nil {
		return nil, err
	}

	d := draft.Parse(raw, now)
	body := compose.Format(d.Content, imgs, cand.Title, cand.URL, d.PublishDate)

	title := d.Title
	dup, err := a.dedup.isDuplicateTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if dup {
		title = disambiguateTitle(title, now)
		a.logger.Info("disambiguated duplicate title", "title", title)
	}

	sug := &blog.Suggestion{
		Title:       title,
		Content:     body,
		Summary:     d.Summary,
		Tags:        d.Tags,
		Category:    pickCategory(cand.Category, d.Category),
		Source:      fmt.Sprintf("%s - %s", cand.Source, cand.Title),
		NewsURL:     cand.URL,
		UniqueID:    cand.UniqueID,
		Images:      toBlogImages(imgs),
		ReadTime:    d.ReadTime,
		PublishDate: d.PublishDate,
		Status:      blog.StatusPending,
		GeneratedAt: now.UTC(),
	}
	if err := a.store.CreateSuggestion(ctx, sug); err != nil {
		return nil, err
	}
	a.logger.Info("generated suggestion", "id", sug.ID, "title", sug.Title, "fallback", d.Fallback)
	return sug, nil
}

func pickCategory(topicCategory, draftCategory string) string {
	if topicCategory != "" {
		return topicCategory
	}
	if draftCategory != "" {
		return draftCategory
	}
	return "General"
}

func toBlogImages(imgs []images.Image) []blog.Image {
	out := make([]blog.Image, 0, len(imgs))
	for _, img := range imgs {
		out = append(out, blog.Image{
			URL:       img.URL,
			Alt:       img.Alt,
			Credit:    img.Credit,
			CreditURL: img.CreditURL,
		})
	}
	return out
}

// --- Moderation transitions ---

// ListPending returns pending suggestions, newest first, capped at 10.
func (a *Agent) ListPending(ctx context.Context) ([]blog.Suggestion, error) {
	return a.store.ListPendingSuggestions(ctx, 10)
}

// Approve approves a pending suggestion, creating a post. With publish
// set, the post is published and the suggestion moves straight to
// published.
func (a *Agent) Approve(ctx context.Context, id int64, notes string, publish bool) (*blog.Suggestion, *blog.Post, error) {
	return a.store.ApproveSuggestion(ctx, id, notes, publish, a.cfg.AuthorID)
}

// Publish publishes a pending suggestion directly.
func (a *Agent) Publish(ctx context.Context, id int64) (*blog.Suggestion, *blog.Post, error) {
	return a.store.PublishSuggestion(ctx, id, a.cfg.AuthorID)
}

// Reject marks a suggestion rejected with moderator notes.
func (a *Agent) Reject(ctx context.Context, id int64, notes string) (*blog.Suggestion, error) {
	return a.store.RejectSuggestion(ctx, id, notes)
}

// Delete removes a suggestion in any state.
func (a *Agent) Delete(ctx context.Context, id int64) error {
	return a.store.DeleteSuggestion(ctx, id)
}

// --- Autonomous schedule ---

// StartAutoGeneration begins the recurring generation cycle.
func (a *Agent) StartAutoGeneration() { a.sched.Start() }

// StopAutoGeneration prevents future cycles. An in-flight cycle is not
// aborted.
func (a *Agent) StopAutoGeneration() { a.sched.Stop() }

// AutoGenerating reports whether the schedule is active.
func (a *Agent) AutoGenerating() bool { return a.sched.IsRunning() }

// runScheduled is the autonomous tick: one suggestion per cycle with the
// longer dedup windows. Failures are logged and the next tick proceeds.
func (a *Agent) runScheduled(ctx context.Context) {
	_, err := a.Generate(ctx, GenerateOptions{
		Limit:            a.cfg.AutoLimit,
		SuggestionWindow: a.cfg.AutoSuggestionWindow,
		PostWindow:       a.cfg.AutoPostWindow,
	})
	if err != nil {
		a.logger.Error("scheduled generation failed", "error", err)
	}
}
