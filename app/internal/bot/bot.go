package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mymmrac/telego"
	"golang.org/x/time/rate"

	"gift-link/app/internal/models"
	"gift-link/app/internal/services"
	"gift-link/shared/config"
	"gift-link/shared/logger"
)

// callbackGetLink is the action identifier behind the "Get link" button.
const callbackGetLink = "get_link"

// Bot wires the Telegram gateway to the link-request flow.
type Bot struct {
	api      *telego.Bot
	flow     *services.LinkFlow
	log      *logger.Logger
	sponsors []string

	// Outbound sends share one limiter to stay under the Telegram API
	// rate limits.
	limiter *rate.Limiter
}

func New(cfg *config.Config, flow *services.LinkFlow, log *logger.Logger) (*Bot, error) {
	if cfg.Telegram.BotToken == "" {
		return nil, fmt.Errorf("telegram bot token is not configured")
	}

	api, err := telego.NewBot(cfg.Telegram.BotToken, telego.WithDefaultLogger(false, true))
	if err != nil {
		return nil, fmt.Errorf("initialize telegram bot api: %w", err)
	}

	getMeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	me, err := api.GetMe(getMeCtx)
	if err != nil {
		return nil, fmt.Errorf("verify bot token with GetMe: %w", err)
	}
	log.Info("Telegram bot initialized", "username", me.Username)

	return &Bot{
		api:      api,
		flow:     flow,
		log:      log,
		sponsors: cfg.SponsorLinks(),
		limiter:  rate.NewLimiter(rate.Limit(1), 3),
	}, nil
}

// StartListening consumes updates via long polling until the context is
// cancelled. Each update is handled independently.
func (b *Bot) StartListening(ctx context.Context) error {
	updates, err := b.api.UpdatesViaLongPolling(ctx, nil)
	if err != nil {
		return fmt.Errorf("start long polling: %w", err)
	}
	b.log.Info("Listening for Telegram updates...")

	for update := range updates {
		go b.handleUpdate(ctx, update)
	}
	b.log.Info("Telegram update stream closed")
	return nil
}

func (b *Bot) handleUpdate(ctx context.Context, update telego.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *telego.Message) {
	if msg.From == nil {
		return
	}
	user := userFromTelegram(*msg.From)
	chatID := msg.Chat.ID

	text := strings.TrimSpace(msg.Text)
	if strings.HasPrefix(text, "/start") || strings.HasPrefix(text, "/help") {
		b.flow.RememberUser(user)
		if b.flow.IsOwner(user.ID) {
			b.send(ctx, chatID, MsgOwnerGreeting, ownerKeyboard())
		} else if kb := sponsorKeyboard(b.sponsors); kb != nil {
			b.send(ctx, chatID, MsgSponsorPrompt, kb)
		} else {
			b.send(ctx, chatID, MsgSponsorPrompt, nil)
		}
		return
	}

	result := b.flow.HandleText(user, text)
	if reply := ReplyFor(result); reply != "" {
		b.send(ctx, chatID, reply, nil)
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *telego.CallbackQuery) {
	user := userFromTelegram(query.From)

	if query.Data != callbackGetLink {
		b.answerCallback(ctx, query.ID, "", false)
		return
	}

	result := b.flow.HandleTrigger(user)
	if result.Outcome == services.OutcomeUnavailable {
		b.answerCallback(ctx, query.ID, MsgUnavailable, true)
		return
	}
	b.answerCallback(ctx, query.ID, "", false)

	if reply := ReplyFor(result); reply != "" {
		b.send(ctx, query.From.ID, reply, nil)
	}
}

func (b *Bot) send(ctx context.Context, chatID int64, text string, markup telego.ReplyMarkup) {
	if err := b.limiter.Wait(ctx); err != nil {
		return
	}
	_, err := b.api.SendMessage(ctx, &telego.SendMessageParams{
		ChatID:      telego.ChatID{ID: chatID},
		Text:        text,
		ReplyMarkup: markup,
	})
	if err != nil {
		// Reply failures are cosmetic: state and requests are already
		// consistent by the time we get here.
		b.log.Error("Failed to send Telegram message", "chatID", chatID, "error", err)
	}
}

func (b *Bot) answerCallback(ctx context.Context, queryID, text string, alert bool) {
	err := b.api.AnswerCallbackQuery(ctx, &telego.AnswerCallbackQueryParams{
		CallbackQueryID: queryID,
		Text:            text,
		ShowAlert:       alert,
	})
	if err != nil {
		b.log.Warn("Failed to answer callback query", "error", err)
	}
}

func userFromTelegram(u telego.User) *models.User {
	return &models.User{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
