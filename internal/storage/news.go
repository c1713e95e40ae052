package storage

import (
	"context"
	"time"

	"memenews/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"
)

// NewsPostgresStorage holds admin-curated news records. Timestamps are
// server-assigned on insert.
type NewsPostgresStorage struct {
	db *sqlx.DB
}

func NewNewsStorage(db *sqlx.DB) *NewsPostgresStorage {
	return &NewsPostgresStorage{db: db}
}

// News lists every curated record, newest first, with its memes attached.
func (s *NewsPostgresStorage) News(ctx context.Context) ([]model.News, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var rows []dbNews
	if err := conn.SelectContext(ctx, &rows, `SELECT * FROM curated_news ORDER BY created_at DESC`); err != nil {
		return nil, err
	}

	var memeRows []dbMeme
	if err := conn.SelectContext(ctx, &memeRows, `SELECT * FROM curated_memes ORDER BY created_at`); err != nil {
		return nil, err
	}
	byNews := lo.GroupBy(memeRows, func(m dbMeme) string { return m.NewsID })

	return lo.Map(rows, func(row dbNews, _ int) model.News {
		return row.toModel(byNews[row.ID])
	}), nil
}

// Add inserts a curated record and returns its id. The caller supplies
// the identity, the database assigns the timestamp.
func (s *NewsPostgresStorage) Add(ctx context.Context, news model.News) (string, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(
		ctx,
		`INSERT INTO curated_news (id, title, summary, image_url, category, source_url)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		news.ID,
		news.Title,
		news.Summary,
		news.ImageURL,
		string(news.Category),
		news.SourceURL,
	); err != nil {
		return "", err
	}

	return news.ID, nil
}

// MemePostgresStorage holds standalone curated memes keyed by the news
// record they belong to.
type MemePostgresStorage struct {
	db *sqlx.DB
}

func NewMemeStorage(db *sqlx.DB) *MemePostgresStorage {
	return &MemePostgresStorage{db: db}
}

// ByNewsID is the query-by-field lookup the collaborator contract asks
// for.
func (s *MemePostgresStorage) ByNewsID(ctx context.Context, newsID string) ([]model.Meme, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var rows []dbMeme
	if err := conn.SelectContext(ctx, &rows, `SELECT * FROM curated_memes WHERE news_id = $1 ORDER BY created_at`, newsID); err != nil {
		return nil, err
	}

	return lo.Map(rows, func(row dbMeme, _ int) model.Meme {
		return row.toModel()
	}), nil
}

func (s *MemePostgresStorage) Add(ctx context.Context, newsID string, meme model.Meme) error {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.ExecContext(
		ctx,
		`INSERT INTO curated_memes (id, news_id, image_url, title, source_url)
		 VALUES ($1, $2, $3, $4, $5)`,
		meme.ID,
		newsID,
		meme.ImageURL,
		meme.Title,
		meme.SourceURL,
	)
	return err
}

// Row types keep the dynamic column mapping at the collaborator edge.
type dbNews struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	Summary   string    `db:"summary"`
	ImageURL  string    `db:"image_url"`
	Category  string    `db:"category"`
	SourceURL string    `db:"source_url"`
	CreatedAt time.Time `db:"created_at"`
}

func (row dbNews) toModel(memes []dbMeme) model.News {
	return model.News{
		ID:        row.ID,
		Title:     row.Title,
		Summary:   row.Summary,
		ImageURL:  row.ImageURL,
		Category:  model.Category(row.Category),
		Published: row.CreatedAt,
		Memes: lo.Map(memes, func(m dbMeme, _ int) model.Meme {
			return m.toModel()
		}),
		SourceURL: row.SourceURL,
		Curated:   true,
	}
}

type dbMeme struct {
	ID        string    `db:"id"`
	NewsID    string    `db:"news_id"`
	ImageURL  string    `db:"image_url"`
	Title     string    `db:"title"`
	SourceURL string    `db:"source_url"`
	CreatedAt time.Time `db:"created_at"`
}

func (row dbMeme) toModel() model.Meme {
	return model.Meme{
		ID:        row.ID,
		ImageURL:  row.ImageURL,
		Origin:    model.OriginCurated,
		Title:     row.Title,
		SourceURL: row.SourceURL,
	}
}
