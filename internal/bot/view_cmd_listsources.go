package bot

import (
	"context"
	"fmt"
	"strings"

	"memenews/internal/botkit"
	"memenews/internal/botkit/markup"
	"memenews/internal/catalogue"
	"memenews/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"
)

// ViewCmdListSources dumps the static catalogue: per category, the news
// sources and the meme sources the aggregator pulls from.
func ViewCmdListSources() botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		sections := lo.Map(catalogue.Categories(), func(category model.Category, _ int) string {
			return formatCategory(category)
		})

		reply := tgbotapi.NewMessage(
			update.Message.Chat.ID,
			strings.Join(sections, "\n\n"),
		)
		reply.ParseMode = tgbotapi.ModeMarkdownV2

		if _, err := bot.Send(reply); err != nil {
			return err
		}
		return nil
	}
}

func formatCategory(category model.Category) string {
	newsNames := lo.Map(catalogue.NewsSources(category), func(src model.Source, _ int) string {
		return src.Name
	})

	return fmt.Sprintf(
		"*%s*\nnews: %s\nmemes: %s",
		markup.EscapeForMarkdown(string(category)),
		markup.EscapeForMarkdown(strings.Join(newsNames, ", ")),
		markup.EscapeForMarkdown(strings.Join(catalogue.MemeSources(category), ", ")),
	)
}
