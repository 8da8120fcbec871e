package telegram

import (
	"context"
	"errors"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/Brze0x/sixties-life-bot/internal/application"
	"github.com/Brze0x/sixties-life-bot/internal/config"
	"github.com/Brze0x/sixties-life-bot/internal/domain/pagination"
	"github.com/Brze0x/sixties-life-bot/internal/domain/ports/adapter"
	"github.com/Brze0x/sixties-life-bot/internal/infra/logging"
	"github.com/Brze0x/sixties-life-bot/internal/infra/metrics"
	red "github.com/Brze0x/sixties-life-bot/internal/infra/redis"
)

var _ adapter.TelegramBotAdapter = (*RealTelegramBotAdapter)(nil)

// botAPI is the part of *tgbotapi.BotAPI the adapter uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// RateLimiter is satisfied by *redis.RateLimiter.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RealTelegramBotAdapter uses tgbotapi to poll updates and delegates to BotFacade.
type RealTelegramBotAdapter struct {
	bot         botAPI
	cfg         *config.BotConfig
	facade      *application.BotFacade
	rateLimiter RateLimiter
	log         *zerolog.Logger

	updateWorkers int
	cancelPolling context.CancelFunc
}

// NewRealTelegramBotAdapter connects to the Bot API. rateLimiter may be nil.
func NewRealTelegramBotAdapter(cfg *config.BotConfig, facade *application.BotFacade, rateLimiter RateLimiter, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("username", bot.Self.UserName).Msg("authorized on telegram")
	return newAdapter(bot, cfg, facade, rateLimiter, logger)
}

func newAdapter(bot botAPI, cfg *config.BotConfig, facade *application.BotFacade, rateLimiter RateLimiter, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if facade == nil {
		return nil, errors.New("bot facade is nil")
	}
	if rl, ok := rateLimiter.(*red.RateLimiter); ok && rl == nil {
		rateLimiter = nil
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 5
	}
	return &RealTelegramBotAdapter{
		bot:           bot,
		cfg:           cfg,
		facade:        facade,
		rateLimiter:   rateLimiter,
		log:           logger,
		updateWorkers: workers,
	}, nil
}

// StartPolling fans updates out to the worker goroutines until ctx is done
// or the update channel closes.
func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context) error {
	if err := r.SetMenuCommands(ctx); err != nil {
		r.log.Warn().Err(err).Msg("failed to set menu commands")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel
	defer cancel()

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < r.updateWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for up := range updateChan {
				upCtx := logging.WithTraceID(ctx, logging.NewTraceID())
				if err := r.handleUpdate(upCtx, up); err != nil {
					logging.With(upCtx, r.log).Error().Err(err).Int("worker", id).Int("update_id", up.UpdateID).Msg("update failed")
				}
			}
		}(i)
	}

	drain := func() {
		close(updateChan)
		wg.Wait()
	}
	for {
		select {
		case <-ctx.Done():
			r.bot.StopReceivingUpdates()
			drain()
			return ctx.Err()
		case up, ok := <-updates:
			if !ok {
				drain()
				return nil
			}
			updateChan <- up
		}
	}
}

func (r *RealTelegramBotAdapter) StopPolling() {
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

// SetMenuCommands registers the command list shown in the Telegram client.
func (r *RealTelegramBotAdapter) SetMenuCommands(ctx context.Context) error {
	menu := r.facade.CommandMenu()
	cmds := make([]tgbotapi.BotCommand, 0, len(menu))
	for _, c := range menu {
		cmds = append(cmds, tgbotapi.BotCommand{Command: c.Command, Description: c.Description})
	}
	_, err := r.bot.Request(tgbotapi.NewSetMyCommands(cmds...))
	return err
}

// SendMessage sends plain text without markup.
func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	return r.SendKeyboard(ctx, chatID, text, nil)
}

// SendKeyboard sends text with an inline keyboard; a nil or empty keyboard sends none.
func (r *RealTelegramBotAdapter) SendKeyboard(ctx context.Context, chatID int64, text string, kb *pagination.Keyboard) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if markup, ok := toMarkup(kb); ok {
		msg.ReplyMarkup = markup
	}
	_, err := r.bot.Send(msg)
	return err
}

func (r *RealTelegramBotAdapter) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	_, err := r.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID))
	return err
}

func (r *RealTelegramBotAdapter) AnswerCallback(ctx context.Context, callbackID, text string) error {
	_, err := r.bot.Request(tgbotapi.NewCallback(callbackID, text))
	return err
}

// toMarkup converts a keyboard to Telegram's inline markup.
func toMarkup(kb *pagination.Keyboard) (tgbotapi.InlineKeyboardMarkup, bool) {
	if kb.Len() == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb.Rows))
	for _, row := range kb.Rows {
		if len(row) == 0 {
			continue
		}
		out := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			out = append(out, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.Data))
		}
		rows = append(rows, out)
	}
	if len(rows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

// send forwards facade messages in order and stops at the first failure.
func (r *RealTelegramBotAdapter) send(ctx context.Context, chatID int64, msgs ...application.Message) error {
	for _, m := range msgs {
		if err := r.SendKeyboard(ctx, chatID, m.Text, m.Keyboard); err != nil {
			return err
		}
	}
	return nil
}

// sendError logs err and shows it to the user as "Error: <reason>".
func (r *RealTelegramBotAdapter) sendError(ctx context.Context, chatID int64, err error) error {
	logging.With(ctx, r.log).Warn().Err(err).Msg("request failed")
	return r.send(ctx, chatID, r.facade.ErrorMessage(err))
}

// allow applies the per-user rate limit. Limiter errors let the request through.
func (r *RealTelegramBotAdapter) allow(ctx context.Context, userID int64, action string) bool {
	if r.rateLimiter == nil || r.cfg.RateLimit.PerMinute <= 0 {
		return true
	}
	ok, err := r.rateLimiter.Allow(ctx, red.UserCommandKey(userID, action), r.cfg.RateLimit.PerMinute, time.Minute)
	if err != nil {
		logging.With(ctx, r.log).Warn().Err(err).Msg("rate limit check failed")
		return true
	}
	if !ok {
		metrics.IncRateLimitTriggered()
	}
	return ok
}

func (r *RealTelegramBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.CallbackQuery != nil {
		return r.handleQuery(ctx, update.CallbackQuery)
	}
	if update.Message == nil || update.Message.From == nil || update.Message.Chat == nil {
		return nil
	}
	return r.handleMessage(ctx, update.Message)
}
