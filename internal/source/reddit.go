package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"memenews/internal/model"

	"github.com/samber/lo"
)

const DefaultBaseURL = "https://www.reddit.com"

// ListingClient issues a single tagged GET against one listing feed and
// decodes the result. It never retries; partial-failure handling belongs
// to the aggregator.
type ListingClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewListingClient(baseURL, userAgent string, timeout time.Duration) *ListingClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ListingClient{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// Wire shape of a listing response: data.children[].data carries the
// post fields we care about.
type listingPayload struct {
	Data struct {
		Children []listingChild `json:"children"`
	} `json:"data"`
}

type listingChild struct {
	Data listingPost `json:"data"`
}

type listingPost struct {
	Title      string  `json:"title"`
	SelfText   string  `json:"selftext"`
	URL        string  `json:"url"`
	Thumbnail  string  `json:"thumbnail"`
	CreatedUTC float64 `json:"created_utc"`
	Subreddit  string  `json:"subreddit"`
	Permalink  string  `json:"permalink"`
	Over18     bool    `json:"over_18"`
	IsVideo    bool    `json:"is_video"`
	PostHint   string  `json:"post_hint"`
	Preview    struct {
		Images []struct {
			Source struct {
				URL string `json:"url"`
			} `json:"source"`
		} `json:"images"`
	} `json:"preview"`
}

// Fetch pulls the hot listing for one source identifier.
func (c *ListingClient) Fetch(ctx context.Context, name string, limit int) ([]model.Post, error) {
	endpoint := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", c.baseURL, url.PathEscape(name), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %s: %v", ErrSourceTimeout, name, err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: unexpected status %d", ErrSourceUnavailable, name, resp.StatusCode)
	}

	var payload listingPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, name, err)
	}

	return lo.Map(payload.Data.Children, func(child listingChild, _ int) model.Post {
		return toPost(child.Data)
	}), nil
}

func toPost(p listingPost) model.Post {
	preview := ""
	if len(p.Preview.Images) > 0 {
		preview = p.Preview.Images[0].Source.URL
	}
	return model.Post{
		Title:      p.Title,
		Body:       p.SelfText,
		URL:        p.URL,
		Thumbnail:  p.Thumbnail,
		PreviewURL: preview,
		CreatedUTC: p.CreatedUTC,
		Subreddit:  p.Subreddit,
		Permalink:  p.Permalink,
		Over18:     p.Over18,
		IsVideo:    p.IsVideo,
		PostHint:   p.PostHint,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}

// ListingSource adapts one catalogue entry to the aggregator's source
// interface.
type ListingSource struct {
	client   *ListingClient
	name     string
	category model.Category
	limit    int
}

func NewListingSource(client *ListingClient, src model.Source, limit int) ListingSource {
	return ListingSource{
		client:   client,
		name:     src.Name,
		category: src.Category,
		limit:    limit,
	}
}

func (s ListingSource) Fetch(ctx context.Context) ([]model.Post, error) {
	return s.client.Fetch(ctx, s.name, s.limit)
}

func (s ListingSource) Name() string {
	return s.name
}

func (s ListingSource) Category() model.Category {
	return s.category
}
