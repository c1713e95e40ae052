package aggregator

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"memenews/internal/catalogue"
	"memenews/internal/media"
	"memenews/internal/model"
	"memenews/internal/relevance"
	"memenews/internal/source"
	"memenews/internal/textutil"

	"github.com/tomakado/containers/set"
)

// ErrNoContent is the only error a run surfaces: every source failed or
// nothing qualified. Individual source failures are logged and swallowed.
var ErrNoContent = errors.New("no content available")

// NewsSource yields candidate posts for one category.
type NewsSource interface {
	Name() string
	Category() model.Category
	Fetch(ctx context.Context) ([]model.Post, error)
}

// MemeFetcher pulls the listing for one meme source.
type MemeFetcher interface {
	Fetch(ctx context.Context, source string, limit int) ([]model.Post, error)
}

type Config struct {
	// Delay inserted between task dispatches, not between completions,
	// to stay under upstream rate limits.
	DispatchDelay     time.Duration
	MemeDispatchDelay time.Duration
	// Listing limit per meme source.
	MemeLimit int
	// Max memes attached to one news item.
	MemeCap int
	// Summary length budget.
	SummaryLimit int
}

func DefaultConfig() Config {
	return Config{
		DispatchDelay:     150 * time.Millisecond,
		MemeDispatchDelay: 100 * time.Millisecond,
		MemeLimit:         20,
		MemeCap:           4,
		SummaryLimit:      textutil.ShortLimit,
	}
}

// Aggregator fans out over the news sources and, per accepted item, over
// that category's meme sources. Each run is independent; concurrent runs
// share nothing.
type Aggregator struct {
	sources []NewsSource
	memes   MemeFetcher
	cfg     Config
}

func New(sources []NewsSource, memes MemeFetcher, cfg Config) *Aggregator {
	return &Aggregator{
		sources: sources,
		memes:   memes,
		cfg:     cfg,
	}
}

// Run fetches every source concurrently and returns the merged,
// deduplicated result sorted by publish time descending. A cancelled
// context stops new dispatches and lets in-flight fetches drain.
func (a *Aggregator) Run(ctx context.Context) ([]model.News, error) {
	results := make(chan []model.News, len(a.sources))

	var wg sync.WaitGroup
	for _, src := range a.sources {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(src NewsSource) {
			defer wg.Done()
			results <- a.collect(ctx, src)
		}(src)

		sleepCtx(ctx, a.cfg.DispatchDelay)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var merged []model.News
	for contribution := range results {
		merged = append(merged, contribution...)
	}

	if len(merged) == 0 {
		return nil, ErrNoContent
	}

	merged = Deduplicate(merged)
	SortByPublished(merged)

	return merged, nil
}

// collect turns one source's listing into news items. Any fetch failure
// yields an empty contribution; it must never abort sibling tasks.
func (a *Aggregator) collect(ctx context.Context, src NewsSource) []model.News {
	posts, err := src.Fetch(ctx)
	if err != nil {
		log.Printf("[ERROR] fetching posts from source %s: %v", src.Name(), err)
		return nil
	}

	var items []model.News
	for _, post := range posts {
		if !relevance.IsMajorNews(post.Title, src.Category()) {
			continue
		}

		keywords := relevance.TitleKeywords(post.Title)
		memes := a.fetchMemes(ctx, src.Category(), keywords)
		// An item without a single relevant meme is dropped, not emitted
		// with an empty list.
		if len(memes) == 0 {
			continue
		}

		items = append(items, model.NewNews(
			post.Title,
			textutil.Cleanup(post.Body, a.cfg.SummaryLimit),
			media.BestImageURL(post),
			src.Category(),
			post.Published(),
			memes,
			canonicalURL(post),
		))
	}

	return items
}

// fetchMemes is the nested fan-out: one task per meme source of the
// category, paced like the outer dispatch, merged and capped at the join.
func (a *Aggregator) fetchMemes(ctx context.Context, category model.Category, keywords []string) []model.Meme {
	sources := catalogue.MemeSources(category)
	results := make(chan []model.Meme, len(sources))

	var wg sync.WaitGroup
	for _, name := range sources {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(name string) {
			defer wg.Done()

			posts, err := a.memes.Fetch(ctx, name, a.cfg.MemeLimit)
			if err != nil {
				log.Printf("[ERROR] fetching memes from source %s: %v", name, err)
				results <- nil
				return
			}

			var memes []model.Meme
			for _, post := range posts {
				if !media.MemeCandidate(post) {
					continue
				}
				if !relevance.IsRelevantMeme(post.Title, keywords) {
					continue
				}
				image := media.BestImageURL(post)
				if image == "" {
					continue
				}
				memes = append(memes, model.NewMeme(image, model.OriginRemote, post.Title, canonicalURL(post)))
			}
			results <- memes
		}(name)

		sleepCtx(ctx, a.cfg.MemeDispatchDelay)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	seen := set.New[string]()
	var merged []model.Meme
	for batch := range results {
		for _, m := range batch {
			if seen.Contains(m.ImageURL) {
				continue
			}
			seen.Add(m.ImageURL)
			merged = append(merged, m)
		}
	}

	if len(merged) > a.cfg.MemeCap {
		merged = merged[:a.cfg.MemeCap]
	}
	return merged
}

// Deduplicate drops items whose titles collide under case-insensitive
// comparison, keeping the first occurrence. This is a heuristic, not an
// identity guarantee: near-duplicate titles from different sources pass.
func Deduplicate(items []model.News) []model.News {
	seen := set.New[string]()
	out := make([]model.News, 0, len(items))
	for _, n := range items {
		key := strings.ToLower(n.Title)
		if seen.Contains(key) {
			continue
		}
		seen.Add(key)
		out = append(out, n)
	}
	return out
}

// SortByPublished orders items by publish time descending, in place.
func SortByPublished(items []model.News) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Published.After(items[j].Published)
	})
}

func canonicalURL(p model.Post) string {
	if strings.HasPrefix(p.Permalink, "/") {
		return source.DefaultBaseURL + p.Permalink
	}
	if p.Permalink != "" {
		return p.Permalink
	}
	return p.URL
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
