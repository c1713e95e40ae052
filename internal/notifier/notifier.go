package notifier

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"memenews/internal/botkit/markup"
	"memenews/internal/model"
	"memenews/internal/textutil"

	readability "github.com/go-shiori/go-readability"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// FeedProvider is the aggregated feed the digest is drawn from.
type FeedProvider interface {
	FetchAggregated(ctx context.Context, includeRemote bool) ([]model.News, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Notifier periodically posts the freshest aggregated item to a channel.
// Posted titles are remembered in memory so an item goes out once per
// process lifetime.
type Notifier struct {
	feed             FeedProvider
	summarizer       Summarizer
	bot              *tgbotapi.BotAPI
	sendInterval     time.Duration
	lookupTimeWindow time.Duration
	channelID        int64

	posted map[string]struct{}
}

func New(
	feed FeedProvider,
	summarizer Summarizer,
	bot *tgbotapi.BotAPI,
	sendInterval time.Duration,
	lookupTimeWindow time.Duration,
	channelID int64,
) *Notifier {
	return &Notifier{
		feed:             feed,
		summarizer:       summarizer,
		bot:              bot,
		sendInterval:     sendInterval,
		lookupTimeWindow: lookupTimeWindow,
		channelID:        channelID,
		posted:           make(map[string]struct{}),
	}
}

func (n *Notifier) Start(ctx context.Context) error {
	ticker := time.NewTicker(n.sendInterval)
	defer ticker.Stop()

	if err := n.SelectAndSendItem(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ticker.C:
			if err := n.SelectAndSendItem(ctx); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// SelectAndSendItem posts the newest not-yet-posted item inside the
// lookup window. A run that produced nothing is not an error here; the
// next tick retries.
func (n *Notifier) SelectAndSendItem(ctx context.Context) error {
	items, err := n.feed.FetchAggregated(ctx, true)
	if err != nil {
		log.Printf("[ERROR] fetching aggregated feed: %v", err)
		return nil
	}

	item, ok := n.pickFresh(items)
	if !ok {
		return nil
	}

	summary, err := n.extractSummary(ctx, item)
	if err != nil {
		log.Printf("[ERROR] summarizing %q: %v", item.Title, err)
		summary = item.Summary
	}

	if err := n.sendItem(item, summary); err != nil {
		return err
	}

	n.posted[strings.ToLower(item.Title)] = struct{}{}
	return nil
}

func (n *Notifier) pickFresh(items []model.News) (model.News, bool) {
	cutoff := time.Now().Add(-n.lookupTimeWindow)
	for _, item := range items {
		if item.Published.Before(cutoff) {
			continue
		}
		if _, sent := n.posted[strings.ToLower(item.Title)]; sent {
			continue
		}
		return item, true
	}
	return model.News{}, false
}

// extractSummary prefers the item's own summary; when the aggregation
// left only the placeholder, the source page is fetched and boiled down
// through readability before summarizing.
func (n *Notifier) extractSummary(ctx context.Context, item model.News) (string, error) {
	text := item.Summary
	if text == "" || text == textutil.Placeholder {
		if item.SourceURL == "" {
			return "", nil
		}

		resp, err := http.Get(item.SourceURL)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		doc, err := readability.FromReader(resp.Body, nil)
		if err != nil {
			return "", err
		}
		text = cleanText(doc.TextContent)
	}

	summary, err := n.summarizer.Summarize(ctx, text)
	if err != nil {
		return "", err
	}
	if summary == "" {
		// Summarizer disabled; keep the normalized text.
		return textutil.Cleanup(text, textutil.LongLimit), nil
	}

	return summary, nil
}

func (n *Notifier) sendItem(item model.News, summary string) error {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("*%s*\n\n", markup.EscapeForMarkdown(item.Title)))
	if summary != "" {
		b.WriteString(markup.EscapeForMarkdown(summary) + "\n\n")
	}
	for _, meme := range item.Memes {
		b.WriteString(markup.EscapeForMarkdown(meme.ImageURL) + "\n")
	}
	if item.SourceURL != "" {
		b.WriteString("\n" + markup.EscapeForMarkdown(item.SourceURL))
	}

	msg := tgbotapi.NewMessage(n.channelID, b.String())
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	if _, err := n.bot.Send(msg); err != nil {
		return err
	}
	return nil
}

// readability leaves long runs of blank lines behind.
var redundantNewLines = regexp.MustCompile(`\n{3,}`)

func cleanText(text string) string {
	return redundantNewLines.ReplaceAllString(text, "\n")
}
