package newsfeed

import (
	"context"
	"log"
	"sync"

	"memenews/internal/aggregator"
	"memenews/internal/model"
)

// Runner is the remote aggregation run.
type Runner interface {
	Run(ctx context.Context) ([]model.News, error)
}

// CuratedProvider lists admin-curated news records from the document
// store.
type CuratedProvider interface {
	News(ctx context.Context) ([]model.News, error)
}

// Service is the single entry point the presentation side calls. It
// merges curated records with the remote aggregation result and keeps
// the last successful result in memory, the only caching the system
// does.
type Service struct {
	aggregator Runner
	curated    CuratedProvider

	mu   sync.RWMutex
	last []model.News
}

func New(agg Runner, curated CuratedProvider) *Service {
	return &Service{
		aggregator: agg,
		curated:    curated,
	}
}

// FetchAggregated returns the unified, time-ordered feed. Collaborator
// failures degrade the result instead of failing it; only a run that
// produces nothing at all surfaces aggregator.ErrNoContent, and even
// then a previously cached result is served when one exists.
func (s *Service) FetchAggregated(ctx context.Context, includeRemote bool) ([]model.News, error) {
	var items []model.News

	curated, err := s.curated.News(ctx)
	if err != nil {
		log.Printf("[ERROR] listing curated news: %v", err)
	}
	for _, n := range curated {
		items = append(items, withDefaultMeme(n))
	}

	if includeRemote {
		remote, err := s.aggregator.Run(ctx)
		if err != nil {
			log.Printf("[ERROR] remote aggregation: %v", err)
		} else {
			items = append(items, remote...)
		}
	}

	if len(items) == 0 {
		if cached := s.cachedResult(); cached != nil {
			return cached, nil
		}
		return nil, aggregator.ErrNoContent
	}

	items = aggregator.Deduplicate(items)
	aggregator.SortByPublished(items)

	s.remember(items)
	return items, nil
}

// withDefaultMeme gives a curated item a single meme derived from its
// own image. Curated records are the one exception to the at-least-one-
// meme invariant, so an imageless record passes through with none.
func withDefaultMeme(n model.News) model.News {
	if len(n.Memes) > 0 || n.ImageURL == "" {
		return n
	}
	n.Memes = []model.Meme{
		model.NewMeme(n.ImageURL, model.OriginCurated, n.Title, n.SourceURL),
	}
	return n
}

func (s *Service) remember(items []model.News) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = items
}

func (s *Service) cachedResult() []model.News {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}
