package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"memenews/internal/botkit"
	"memenews/internal/model"
	"memenews/internal/textutil"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type NewsCreator interface {
	Add(ctx context.Context, news model.News) (string, error)
}

type ObjectStore interface {
	Store(ctx context.Context, path string, data []byte) (string, error)
}

const maxImageBytes = 5 << 20

// ViewCmdAddNews creates a curated news record. The supplied image is
// mirrored into the object store so the record points at a durable URL
// instead of the original host.
func ViewCmdAddNews(storage NewsCreator, objects ObjectStore) botkit.ViewFunc {
	type addNewsArgs struct {
		Title     string `json:"title"`
		Summary   string `json:"summary"`
		ImageURL  string `json:"image_url"`
		Category  string `json:"category"`
		SourceURL string `json:"source_url"`
	}
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		args, err := botkit.ParseJSON[addNewsArgs](update.Message.CommandArguments())
		if err != nil {
			return err
		}

		news := model.NewNews(
			args.Title,
			textutil.Cleanup(args.Summary, textutil.LongLimit),
			"",
			model.Category(args.Category),
			time.Now().UTC(),
			nil,
			args.SourceURL,
		)
		news.Curated = true

		if args.ImageURL != "" {
			durable, err := mirrorImage(ctx, objects, news.ID, args.ImageURL)
			if err != nil {
				return err
			}
			news.ImageURL = durable
		}

		newsID, err := storage.Add(ctx, news)
		if err != nil {
			return err
		}

		reply := tgbotapi.NewMessage(update.Message.Chat.ID, fmt.Sprintf(
			"Curated item stored with ID: `%s`\\.",
			newsID,
		))
		reply.ParseMode = tgbotapi.ModeMarkdownV2

		if _, err := bot.Send(reply); err != nil {
			return err
		}

		return nil
	}
}

func mirrorImage(ctx context.Context, objects ObjectStore, newsID, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetching image: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return "", err
	}

	return objects.Store(ctx, "news/"+newsID+".jpg", data)
}
