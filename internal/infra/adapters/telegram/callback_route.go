package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/domain/pagination"
	"github.com/Brze0x/sixties-life-bot/internal/infra/logging"
	"github.com/Brze0x/sixties-life-bot/internal/infra/metrics"
)

// callbackRequest is one pressed inline button.
type callbackRequest struct {
	ChatID int64
	UserID int64
	Data   string
}

type cbHandler func(ctx context.Context, req callbackRequest) error
type prefixCB struct {
	Prefix string
	Fn     cbHandler
}

// Exact-match callbacks
func (r *RealTelegramBotAdapter) cbRoutes() map[string]cbHandler {
	return map[string]cbHandler{
		model.CallbackMainMenu:      r.menuCBRoute,
		model.CallbackSettings:      r.settingsCBRoute,
		model.CallbackHelp:          r.helpCBRoute,
		model.CallbackPaginationOn:  r.paginationCBRoute(model.PaginationOn),
		model.CallbackPaginationOff: r.paginationCBRoute(model.PaginationOff),
	}
}

// Prefix-match callbacks
func (r *RealTelegramBotAdapter) cbPrefixRoutes() []prefixCB {
	return []prefixCB{
		{Prefix: model.SourceCallback(""), Fn: r.sourcePrefixCBRoute},
	}
}

func (r *RealTelegramBotAdapter) handleQuery(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query == nil || query.From == nil {
		return errors.New("invalid callback query")
	}

	// Stop the client spinner when we return.
	defer func() {
		if err := r.AnswerCallback(ctx, query.ID, ""); err != nil {
			logging.With(ctx, r.log).Debug().Err(err).Msg("answer callback failed")
		}
	}()

	req := callbackRequest{ChatID: query.From.ID, UserID: query.From.ID, Data: strings.TrimSpace(query.Data)}
	messageID := 0
	if query.Message != nil {
		messageID = query.Message.MessageID
		if query.Message.Chat != nil {
			req.ChatID = query.Message.Chat.ID
		}
	}
	ctx = logging.WithChatID(logging.WithTgID(ctx, req.UserID), req.ChatID)

	if !r.allow(ctx, req.UserID, "cb") {
		return r.send(ctx, req.ChatID, r.facade.RateLimitedMessage())
	}

	r.clearHistory(ctx, req.ChatID, messageID)

	if err := r.dispatch(ctx, req); err != nil {
		return r.sendError(ctx, req.ChatID, err)
	}
	return nil
}

func (r *RealTelegramBotAdapter) dispatch(ctx context.Context, req callbackRequest) error {
	if fn, ok := r.cbRoutes()[req.Data]; ok {
		metrics.IncTelegramCallback("menu")
		return fn(ctx, req)
	}
	for _, pr := range r.cbPrefixRoutes() {
		if strings.HasPrefix(req.Data, pr.Prefix) {
			metrics.IncTelegramCallback("source")
			return pr.Fn(ctx, req)
		}
	}
	if pagination.HasCallbackPrefix(req.Data) {
		cb, err := pagination.DecodeCallback(req.Data)
		if err != nil {
			metrics.IncTelegramCallback("malformed")
			logging.With(ctx, r.log).Warn().Err(err).Str("data", req.Data).Msg("malformed callback data")
			return r.send(ctx, req.ChatID, r.facade.HandleMainMenu())
		}
		metrics.IncTelegramCallback(string(cb.Kind))
		return r.newsCBRoute(ctx, req, cb)
	}

	metrics.IncTelegramCallback("unknown")
	logging.With(ctx, r.log).Warn().Str("data", req.Data).Msg("unknown callback data")
	return r.send(ctx, req.ChatID, r.facade.HandleMainMenu())
}

// clearHistory deletes up to HistoryDepth messages counting down from the
// pressed one, and stops at the first message that cannot be deleted.
func (r *RealTelegramBotAdapter) clearHistory(ctx context.Context, chatID int64, fromID int) int {
	deleted := 0
	for id := fromID; id > 0 && deleted < r.cfg.HistoryDepth; id-- {
		if err := r.DeleteMessage(ctx, chatID, id); err != nil {
			break
		}
		deleted++
	}
	return deleted
}

func (r *RealTelegramBotAdapter) menuCBRoute(ctx context.Context, req callbackRequest) error {
	return r.send(ctx, req.ChatID, r.facade.HandleMainMenu())
}

func (r *RealTelegramBotAdapter) settingsCBRoute(ctx context.Context, req callbackRequest) error {
	return r.send(ctx, req.ChatID, r.facade.HandleSettings())
}

func (r *RealTelegramBotAdapter) helpCBRoute(ctx context.Context, req callbackRequest) error {
	return r.send(ctx, req.ChatID, r.facade.HandleHelp())
}

func (r *RealTelegramBotAdapter) paginationCBRoute(status model.PaginationStatus) cbHandler {
	return func(ctx context.Context, req callbackRequest) error {
		msg, err := r.facade.HandleSetPagination(ctx, req.UserID, status)
		if err != nil {
			return err
		}
		return r.send(ctx, req.ChatID, msg)
	}
}

func (r *RealTelegramBotAdapter) sourcePrefixCBRoute(ctx context.Context, req callbackRequest) error {
	msg, err := r.facade.HandleSource(strings.TrimPrefix(req.Data, model.SourceCallback("")))
	if err != nil {
		return err
	}
	return r.send(ctx, req.ChatID, msg)
}

// newsCBRoute opens a category (cat) or turns to another page of it (page).
func (r *RealTelegramBotAdapter) newsCBRoute(ctx context.Context, req callbackRequest, cb pagination.Callback) error {
	if cb.Kind == pagination.KindCategory {
		msgs, err := r.facade.HandleCategory(ctx, req.UserID, cb.Category)
		if err != nil {
			return err
		}
		return r.send(ctx, req.ChatID, msgs...)
	}
	msg, err := r.facade.HandlePage(ctx, cb)
	if err != nil {
		return err
	}
	return r.send(ctx, req.ChatID, msg)
}
