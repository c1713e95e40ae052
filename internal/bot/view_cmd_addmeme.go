package bot

import (
	"context"
	"fmt"

	"memenews/internal/botkit"
	"memenews/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type MemeCreator interface {
	Add(ctx context.Context, newsID string, meme model.Meme) error
	ByNewsID(ctx context.Context, newsID string) ([]model.Meme, error)
}

// ViewCmdAddMeme attaches a curated meme to an existing curated record.
func ViewCmdAddMeme(storage MemeCreator) botkit.ViewFunc {
	type addMemeArgs struct {
		NewsID    string `json:"news_id"`
		ImageURL  string `json:"image_url"`
		Title     string `json:"title"`
		SourceURL string `json:"source_url"`
	}
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		args, err := botkit.ParseJSON[addMemeArgs](update.Message.CommandArguments())
		if err != nil {
			return err
		}

		meme := model.NewMeme(args.ImageURL, model.OriginCurated, args.Title, args.SourceURL)
		if err := storage.Add(ctx, args.NewsID, meme); err != nil {
			return err
		}

		attached, err := storage.ByNewsID(ctx, args.NewsID)
		if err != nil {
			return err
		}

		reply := tgbotapi.NewMessage(update.Message.Chat.ID, fmt.Sprintf(
			"Meme attached\\. The record now has %d meme\\(s\\)\\.",
			len(attached),
		))
		reply.ParseMode = tgbotapi.ModeMarkdownV2

		if _, err := bot.Send(reply); err != nil {
			return err
		}

		return nil
	}
}
