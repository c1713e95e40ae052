package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"memenews/internal/aggregator"
	"memenews/internal/bot"
	"memenews/internal/bot/middleware"
	"memenews/internal/botkit"
	"memenews/internal/catalogue"
	"memenews/internal/config"
	"memenews/internal/model"
	"memenews/internal/newsfeed"
	"memenews/internal/notifier"
	"memenews/internal/source"
	"memenews/internal/storage"
	"memenews/internal/summary"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func main() {
	botAPI, err := tgbotapi.NewBotAPI(config.Get().TelegramBotToken)
	if err != nil {
		log.Printf("failed to create bot: %v", err)
		return
	}

	db, err := sqlx.Connect("postgres", config.Get().DatabaseDSN)
	if err != nil {
		log.Printf("failed to connect to database: %v", err)
		return
	}
	defer db.Close()

	var (
		newsStorage = storage.NewNewsStorage(db)
		memeStorage = storage.NewMemeStorage(db)
		objectStore = storage.NewFileObjectStore(
			config.Get().ObjectStoreDir,
			config.Get().ObjectStoreBaseURL,
		)
		listingClient = source.NewListingClient(
			config.Get().ListingBaseURL,
			config.Get().ListingUserAgent,
			config.Get().RequestTimeout,
		)
		agg = aggregator.New(
			buildSources(listingClient),
			listingClient,
			aggregatorConfig(),
		)
		feed      = newsfeed.New(agg, newsStorage)
		digestBot = notifier.New(
			feed,
			summary.NewOpenAISummarizer(config.Get().OpenAIKey, config.Get().OpenAIPrompt),
			botAPI,
			config.Get().NotificationInterval,
			config.Get().LookupTimeWindow,
			config.Get().TelegramChannelID,
		)
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	newsBot := botkit.New(botAPI)
	newsBot.RegisterCmdView("start", bot.ViewCmdStart())
	newsBot.RegisterCmdView("listsources", bot.ViewCmdListSources())
	newsBot.RegisterCmdView(
		"addnews",
		middleware.AdminOnly(
			config.Get().TelegramChannelID,
			bot.ViewCmdAddNews(newsStorage, objectStore),
		),
	)
	newsBot.RegisterCmdView(
		"addmeme",
		middleware.AdminOnly(
			config.Get().TelegramChannelID,
			bot.ViewCmdAddMeme(memeStorage),
		),
	)

	go func(ctx context.Context) {
		if err := digestBot.Start(ctx); err != nil {
			if !errors.Is(err, context.Canceled) {
				log.Printf("[ERROR] failed to start notifier: %v", err)
				return
			}

			log.Println("notifier stopped")
		}
	}(ctx)

	if err := newsBot.Run(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("[ERROR] failed to start bot: %v", err)
			return
		}

		log.Println("bot stopped")
	}
}

// buildSources expands the catalogue into concrete source clients.
func buildSources(client *source.ListingClient) []aggregator.NewsSource {
	var sources []aggregator.NewsSource
	for _, category := range catalogue.Categories() {
		for _, src := range catalogue.NewsSources(category) {
			switch src.Kind {
			case model.SourceKindRSS:
				sources = append(sources, source.NewRSSSource(src))
			default:
				sources = append(sources, source.NewListingSource(client, src, config.Get().NewsListingLimit))
			}
		}
	}
	return sources
}

func aggregatorConfig() aggregator.Config {
	cfg := aggregator.DefaultConfig()
	cfg.DispatchDelay = config.Get().DispatchDelay
	cfg.MemeDispatchDelay = config.Get().MemeDispatchDelay
	cfg.MemeLimit = config.Get().MemeListingLimit
	return cfg
}
