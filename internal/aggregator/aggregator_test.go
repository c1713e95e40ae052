package aggregator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"memenews/internal/model"
	"memenews/internal/source"
)

type fakeSource struct {
	name     string
	category model.Category
	posts    []model.Post
	err      error
}

func (f fakeSource) Name() string             { return f.name }
func (f fakeSource) Category() model.Category { return f.category }
func (f fakeSource) Fetch(ctx context.Context) ([]model.Post, error) {
	return f.posts, f.err
}

// fakeMemeFetcher answers every meme source with the same posts.
type fakeMemeFetcher struct {
	posts []model.Post
	err   error
}

func (f fakeMemeFetcher) Fetch(ctx context.Context, src string, limit int) ([]model.Post, error) {
	return f.posts, f.err
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.DispatchDelay = 0
	cfg.MemeDispatchDelay = 0
	return cfg
}

// newsPost qualifies as sports major news and carries a full image set.
func newsPost(title string, createdUTC float64) model.Post {
	return model.Post{
		Title:      title,
		Body:       "Some body text about the game.",
		URL:        "https://example.com/story",
		CreatedUTC: createdUTC,
		Subreddit:  "Cricket",
		Permalink:  "/r/Cricket/comments/abc/item/",
	}
}

// memePost passes the meme gate and is relevant to cricket titles.
func memePost(imageURL string) model.Post {
	return model.Post{
		Title:      "Funny cricket meme",
		URL:        imageURL,
		PreviewURL: imageURL,
		CreatedUTC: 1700000000,
		PostHint:   "image",
	}
}

func memePosts(n int) []model.Post {
	posts := make([]model.Post, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, memePost(fmt.Sprintf("https://img.example.com/meme%d.jpg", i)))
	}
	return posts
}

func TestRunPartialFailure(t *testing.T) {
	sources := []NewsSource{
		fakeSource{name: "a", category: model.CategorySports, err: fmt.Errorf("%w: a", source.ErrSourceTimeout)},
		fakeSource{name: "b", category: model.CategorySports, err: fmt.Errorf("%w: b", source.ErrSourceTimeout)},
		fakeSource{name: "c", category: model.CategorySports, posts: []model.Post{newsPost("India win the cricket final", 300)}},
		fakeSource{name: "d", category: model.CategorySports, posts: []model.Post{newsPost("Cricket auction day recap", 200)}},
		fakeSource{name: "e", category: model.CategorySports, posts: []model.Post{newsPost("Cricket at the Olympics ceremony", 100)}},
	}

	agg := New(sources, fakeMemeFetcher{posts: memePosts(1)}, testConfig())

	items, err := agg.Run(context.Background())
	if err != nil {
		t.Fatalf("partial failure must not surface an error, got %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected items from the 3 healthy sources, got %d", len(items))
	}
}

func TestRunTotalFailure(t *testing.T) {
	sources := []NewsSource{
		fakeSource{name: "a", category: model.CategorySports, err: errors.New("boom")},
		fakeSource{name: "b", category: model.CategorySports, err: errors.New("boom")},
	}

	agg := New(sources, fakeMemeFetcher{posts: memePosts(1)}, testConfig())

	if _, err := agg.Run(context.Background()); !errors.Is(err, ErrNoContent) {
		t.Errorf("expected ErrNoContent, got %v", err)
	}
}

func TestRunNoQualifyingPosts(t *testing.T) {
	sources := []NewsSource{
		fakeSource{name: "a", category: model.CategorySports, posts: []model.Post{
			{Title: "Local bakery wins pastry contest", CreatedUTC: 100},
		}},
	}

	agg := New(sources, fakeMemeFetcher{posts: memePosts(1)}, testConfig())

	if _, err := agg.Run(context.Background()); !errors.Is(err, ErrNoContent) {
		t.Errorf("expected ErrNoContent, got %v", err)
	}
}

func TestRunDropsItemsWithoutMemes(t *testing.T) {
	sources := []NewsSource{
		fakeSource{name: "a", category: model.CategorySports, posts: []model.Post{newsPost("India win the cricket final", 100)}},
	}

	// No meme source returns anything usable.
	agg := New(sources, fakeMemeFetcher{err: errors.New("boom")}, testConfig())

	if _, err := agg.Run(context.Background()); !errors.Is(err, ErrNoContent) {
		t.Errorf("an item without memes must be dropped, got %v", err)
	}
}

func TestRunDeduplicatesByTitle(t *testing.T) {
	sources := []NewsSource{
		fakeSource{name: "a", category: model.CategorySports, posts: []model.Post{newsPost("India win the cricket final", 300)}},
		fakeSource{name: "b", category: model.CategorySports, posts: []model.Post{newsPost("INDIA WIN THE CRICKET FINAL", 200)}},
	}

	agg := New(sources, fakeMemeFetcher{posts: memePosts(1)}, testConfig())

	items, err := agg.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("case-insensitive duplicate titles must collapse, got %d items", len(items))
	}
}

func TestRunSortsByPublishedDescending(t *testing.T) {
	sources := []NewsSource{
		fakeSource{name: "a", category: model.CategorySports, posts: []model.Post{newsPost("Cricket at the Olympics ceremony", 100)}},
		fakeSource{name: "b", category: model.CategorySports, posts: []model.Post{newsPost("India win the cricket final", 300)}},
		fakeSource{name: "c", category: model.CategorySports, posts: []model.Post{newsPost("Cricket auction day recap", 200)}},
	}

	agg := New(sources, fakeMemeFetcher{posts: memePosts(1)}, testConfig())

	items, err := agg.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(items); i++ {
		if items[i].Published.After(items[i-1].Published) {
			t.Fatalf("items out of order at %d: %v before %v", i, items[i-1].Published, items[i].Published)
		}
	}
}

func TestRunCapsMemesPerItem(t *testing.T) {
	sources := []NewsSource{
		fakeSource{name: "a", category: model.CategorySports, posts: []model.Post{newsPost("India win the cricket final", 100)}},
	}

	// Far more qualifying memes than the cap allows.
	agg := New(sources, fakeMemeFetcher{posts: memePosts(10)}, testConfig())

	items, err := agg.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(items[0].Memes); got != 4 {
		t.Errorf("meme list must be capped at 4, got %d", got)
	}
}

func TestRunMemesCarryRemoteOrigin(t *testing.T) {
	sources := []NewsSource{
		fakeSource{name: "a", category: model.CategorySports, posts: []model.Post{newsPost("India win the cricket final", 100)}},
	}

	agg := New(sources, fakeMemeFetcher{posts: memePosts(2)}, testConfig())

	items, err := agg.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, meme := range items[0].Memes {
		if meme.Origin != model.OriginRemote {
			t.Errorf("fetched meme labeled %q, want %q", meme.Origin, model.OriginRemote)
		}
	}
}

func TestRunBuildsCanonicalSourceURL(t *testing.T) {
	sources := []NewsSource{
		fakeSource{name: "a", category: model.CategorySports, posts: []model.Post{newsPost("India win the cricket final", 100)}},
	}

	agg := New(sources, fakeMemeFetcher{posts: memePosts(1)}, testConfig())

	items, err := agg.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := source.DefaultBaseURL + "/r/Cricket/comments/abc/item/"; items[0].SourceURL != want {
		t.Errorf("got source URL %q, want %q", items[0].SourceURL, want)
	}
}

// Near-duplicate titles from different sources are not caught; the
// dedupe heuristic is exact case-insensitive match only.
func TestDeduplicateKeepsNearDuplicates(t *testing.T) {
	items := []model.News{
		{Title: "India win the cricket final"},
		{Title: "India win the cricket final!"},
	}

	if got := len(Deduplicate(items)); got != 2 {
		t.Errorf("near-duplicates should survive the heuristic, got %d items", got)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sources := []NewsSource{
		fakeSource{name: "a", category: model.CategorySports, posts: []model.Post{newsPost("India win the cricket final", 100)}},
	}

	agg := New(sources, fakeMemeFetcher{posts: memePosts(1)}, testConfig())

	// Nothing gets dispatched, so the run reports no content rather
	// than hanging.
	if _, err := agg.Run(ctx); !errors.Is(err, ErrNoContent) {
		t.Errorf("expected ErrNoContent after cancellation, got %v", err)
	}
}
