package model

import (
	"time"

	"github.com/google/uuid"
)

// Category scopes which sources and keywords apply to an item.
type Category string

const (
	CategorySports        Category = "sports"
	CategoryPersona       Category = "persona"
	CategoryEntertainment Category = "entertainment"
	CategoryAds           Category = "ads"
	CategoryPolitics      Category = "politics"
)

type SourceKind string

const (
	SourceKindListing SourceKind = "listing"
	SourceKindRSS     SourceKind = "rss"
)

// Source describes one external feed to pull from.
type Source struct {
	// Subreddit-style identifier for listing sources, feed URL for RSS ones.
	Name     string
	Category Category
	Kind     SourceKind
}

// Post is a raw decoded record from a source. It only lives for the
// duration of one fetch response.
type Post struct {
	Title      string
	Body       string
	URL        string
	Thumbnail  string
	PreviewURL string
	// Publish time as epoch seconds, the way listing feeds report it.
	CreatedUTC float64
	Subreddit  string
	Permalink  string
	Over18     bool
	IsVideo    bool
	// Content hint declared by the source, e.g. "image" or "link".
	PostHint string
}

// Published converts the epoch timestamp to time.Time.
func (p Post) Published() time.Time {
	return time.Unix(int64(p.CreatedUTC), 0).UTC()
}

// MemeOrigin records where a meme came from.
type MemeOrigin string

const (
	OriginRemote  MemeOrigin = "remote"
	OriginCurated MemeOrigin = "curated"
)

// Meme is a resolved image attached to a news item, or a standalone
// curated record.
type Meme struct {
	ID        string
	ImageURL  string
	Origin    MemeOrigin
	Title     string
	SourceURL string
}

// News is one aggregated news item. Immutable once built; the meme list
// is attached at construction and never mutated afterwards.
type News struct {
	ID        string
	Title     string
	Summary   string
	ImageURL  string
	Category  Category
	Published time.Time
	Memes     []Meme
	SourceURL string
	Curated   bool
}

// NewNews builds a news item with a fresh process-local identity.
func NewNews(title, summary, imageURL string, category Category, published time.Time, memes []Meme, sourceURL string) News {
	return News{
		ID:        uuid.NewString(),
		Title:     title,
		Summary:   summary,
		ImageURL:  imageURL,
		Category:  category,
		Published: published,
		Memes:     memes,
		SourceURL: sourceURL,
	}
}

// NewMeme builds a meme with a fresh process-local identity.
func NewMeme(imageURL string, origin MemeOrigin, title, sourceURL string) Meme {
	return Meme{
		ID:        uuid.NewString(),
		ImageURL:  imageURL,
		Origin:    origin,
		Title:     title,
		SourceURL: sourceURL,
	}
}
