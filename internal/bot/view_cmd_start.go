package bot

import (
	"context"

	"memenews/internal/botkit"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func ViewCmdStart() botkit.ViewFunc {
	return func(ctx context.Context, bot *tgbotapi.BotAPI, update tgbotapi.Update) error {
		msg := "Hi! I aggregate major news and matching memes.\n" +
			"/listsources - show the source catalogue\n" +
			"/addnews - add a curated item (admins only)\n" +
			"/addmeme - attach a meme to a curated item (admins only)"

		if _, err := bot.Send(tgbotapi.NewMessage(update.Message.Chat.ID, msg)); err != nil {
			return err
		}
		return nil
	}
}
