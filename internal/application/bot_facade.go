package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Brze0x/sixties-life-bot/internal/domain"
	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/domain/pagination"
	"github.com/Brze0x/sixties-life-bot/internal/infra/logging"
)

// Message is one outbound chat message. A nil Keyboard means no reply markup.
type Message struct {
	Text     string
	Keyboard *pagination.Keyboard
}

// BotFacade composes usecases into high-level bot commands. It returns the
// messages to send, so the Telegram adapter only forwards them to the chat.
type BotFacade struct {
	NewsUC NewsUseCaseIface
	PrefUC PreferenceUseCaseIface
	Menus  *Menus
	tr     Translator
	log    *zerolog.Logger
}

func NewBotFacade(newsUC NewsUseCaseIface, prefUC PreferenceUseCaseIface, tr Translator, logger *zerolog.Logger) *BotFacade {
	return &BotFacade{
		NewsUC: newsUC,
		PrefUC: prefUC,
		Menus:  NewMenus(newsUC.Catalog(), tr),
		tr:     tr,
		log:    logger,
	}
}

// HandleStart resets the user to the full-list view and greets them with the main menu.
func (b *BotFacade) HandleStart(ctx context.Context, userID int64, firstName string) (Message, error) {
	defer logging.TraceDuration(b.log, "BotFacade.HandleStart")()
	if err := b.PrefUC.Init(ctx, userID); err != nil {
		return Message{}, fmt.Errorf("init preference: %w", err)
	}
	return Message{Text: b.tr.T("start_greeting", firstName), Keyboard: b.Menus.Main()}, nil
}

func (b *BotFacade) HandleMainMenu() Message {
	return Message{Text: b.tr.T("main_menu"), Keyboard: b.Menus.Main()}
}

func (b *BotFacade) HandleSettings() Message {
	return Message{Text: b.tr.T("settings_menu"), Keyboard: b.Menus.Settings()}
}

func (b *BotFacade) HandleHelp() Message {
	return Message{Text: b.tr.Help(), Keyboard: keyboard([]pagination.Button{b.Menus.Back()})}
}

// HandleSource shows the category menu of a source.
func (b *BotFacade) HandleSource(code string) (Message, error) {
	src, ok := b.NewsUC.Catalog().Source(code)
	if !ok || len(src.Categories) == 0 {
		return Message{}, fmt.Errorf("%w: %q", domain.ErrUnknownSource, code)
	}
	kb, err := b.Menus.Source(src)
	if err != nil {
		return Message{}, err
	}
	text := b.tr.T("source_menu_" + src.Code)
	if text == "source_menu_"+src.Code {
		text = b.tr.T("source_menu_default", src.Title)
	}
	return Message{Text: text, Keyboard: kb}, nil
}

// HandleSetPagination stores the preference and returns to the main menu.
func (b *BotFacade) HandleSetPagination(ctx context.Context, userID int64, status model.PaginationStatus) (Message, error) {
	defer logging.TraceDuration(b.log, "BotFacade.HandleSetPagination")()
	if err := b.PrefUC.Set(ctx, userID, status); err != nil {
		return Message{}, fmt.Errorf("set preference: %w", err)
	}
	label := b.tr.T("status_off")
	if status.Enabled() {
		label = b.tr.T("status_on")
	}
	return Message{
		Text:     b.tr.T("settings_saved", label) + "\n" + b.tr.T("main_menu"),
		Keyboard: b.Menus.Main(),
	}, nil
}

// HandleCategory opens a category: the first page when pagination is on,
// otherwise every item oldest first followed by the source menu again.
func (b *BotFacade) HandleCategory(ctx context.Context, userID int64, category string) ([]Message, error) {
	defer logging.TraceDuration(b.log, "BotFacade.HandleCategory")()

	status, err := b.PrefUC.Status(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("read preference: %w", err)
	}
	if status.Enabled() {
		view, err := b.NewsUC.Page(ctx, category, 1)
		if err != nil {
			return nil, err
		}
		return []Message{{Text: view.Text, Keyboard: view.Keyboard}}, nil
	}

	source, texts, err := b.NewsUC.All(ctx, category)
	if err != nil {
		return nil, err
	}
	out := make([]Message, 0, len(texts)+1)
	for _, t := range texts {
		out = append(out, Message{Text: t})
	}
	menu, err := b.HandleSource(source)
	if err != nil {
		b.log.Warn().Err(err).Str("source", source).Msg("no source menu to resend")
		return out, nil
	}
	return append(out, menu), nil
}

// HandlePage renders the page a navigation button points at.
func (b *BotFacade) HandlePage(ctx context.Context, cb pagination.Callback) (Message, error) {
	defer logging.TraceDuration(b.log, "BotFacade.HandlePage")()
	view, err := b.NewsUC.Page(ctx, cb.Category, cb.Page)
	if err != nil {
		return Message{}, err
	}
	if cb.Source != "" && cb.Source != view.Source {
		b.log.Debug().Str("callback_source", cb.Source).Str("source", view.Source).Msg("category moved to another source")
	}
	return Message{Text: view.Text, Keyboard: view.Keyboard}, nil
}

// ErrorMessage renders err as "Error: <reason>" with a user-facing reason.
func (b *BotFacade) ErrorMessage(err error) Message {
	var reason string
	switch {
	case errors.Is(err, domain.ErrEmptyFeed):
		reason = b.tr.T("error_empty_feed")
	case errors.Is(err, domain.ErrUnknownCategory):
		reason = b.tr.T("error_unknown_category")
	case errors.Is(err, domain.ErrUnknownSource):
		reason = b.tr.T("error_unknown_source")
	case errors.Is(err, domain.ErrFetch), errors.Is(err, context.DeadlineExceeded):
		reason = b.tr.T("error_fetch")
	default:
		reason = b.tr.T("error_internal")
	}
	return Message{Text: b.tr.T("error_prefix", reason), Keyboard: keyboard([]pagination.Button{b.Menus.Back()})}
}

// RateLimitedMessage is sent when a user presses buttons too fast.
func (b *BotFacade) RateLimitedMessage() Message {
	return Message{Text: b.tr.T("error_prefix", b.tr.T("error_rate_limited"))}
}

// HandleUnknown answers text the bot has no route for.
func (b *BotFacade) HandleUnknown() Message {
	return Message{Text: b.tr.T("unknown_command")}
}

// BotCommand is one entry of the chat command menu.
type BotCommand struct {
	Command     string
	Description string
}

// CommandMenu lists the commands registered with Telegram.
func (b *BotFacade) CommandMenu() []BotCommand {
	return []BotCommand{
		{Command: "start", Description: b.tr.T("cmd_start")},
		{Command: "settings", Description: b.tr.T("cmd_settings")},
		{Command: "help", Description: b.tr.T("cmd_help")},
	}
}
