package source

import (
	"context"
	"fmt"

	"memenews/internal/model"

	"github.com/SlyMarbo/rss"
)

// RSSSource pulls a conventional RSS feed into the same candidate-post
// shape the listing client produces. RSS items carry no media fields, so
// image resolution yields nothing for them; that is fine, a news item's
// image is optional.
type RSSSource struct {
	url      string
	category model.Category
}

func NewRSSSource(src model.Source) RSSSource {
	return RSSSource{
		url:      src.Name,
		category: src.Category,
	}
}

func (s RSSSource) Fetch(ctx context.Context) ([]model.Post, error) {
	feed, err := s.loadFeed(ctx, s.url)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %s: %v", ErrSourceTimeout, s.url, err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, s.url, err)
	}

	var posts []model.Post
	for _, item := range feed.Items {
		posts = append(posts, model.Post{
			Title:      item.Title,
			Body:       item.Summary,
			URL:        item.Link,
			Permalink:  item.Link,
			CreatedUTC: float64(item.Date.Unix()),
		})
	}
	return posts, nil
}

// rss.Fetch has no context support, so run it in a goroutine and race it
// against ctx. The channels are buffered so the goroutine can always
// finish its send and exit, even when the select already returned on
// ctx.Done().
func (s RSSSource) loadFeed(ctx context.Context, url string) (*rss.Feed, error) {
	var (
		feedCh = make(chan *rss.Feed, 1)
		errCh  = make(chan error, 1)
	)

	go func() {
		feed, err := rss.Fetch(url)
		if err != nil {
			errCh <- err
			return
		}
		feedCh <- feed
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-errCh:
		return nil, err
	case feed := <-feedCh:
		return feed, nil
	}
}

func (s RSSSource) Name() string {
	return s.url
}

func (s RSSSource) Category() model.Category {
	return s.category
}
