package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Brze0x/sixties-life-bot/internal/infra/logging"
	"github.com/Brze0x/sixties-life-bot/internal/infra/metrics"
)

type commandHandler func(ctx context.Context, message *tgbotapi.Message) error

// commandRoutes defines all available bot commands and their handlers.
func (r *RealTelegramBotAdapter) commandRoutes() map[string]commandHandler {
	return map[string]commandHandler{
		"start":    r.handleStartCommand,
		"settings": r.handleSettingsCommand,
		"help":     r.handleHelpCommand,
	}
}

func (r *RealTelegramBotAdapter) handleMessage(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	ctx = logging.WithChatID(logging.WithTgID(ctx, message.From.ID), chatID)

	command := "message"
	if message.IsCommand() {
		command = message.Command()
	}
	if !r.allow(ctx, message.From.ID, command) {
		return r.send(ctx, chatID, r.facade.RateLimitedMessage())
	}

	handler, ok := r.commandRoutes()[command]
	if !ok {
		metrics.IncTelegramCommand("unknown")
		return r.send(ctx, chatID, r.facade.HandleUnknown())
	}
	metrics.IncTelegramCommand(command)
	if err := handler(ctx, message); err != nil {
		return r.sendError(ctx, chatID, err)
	}
	return nil
}

// handleStartCommand resets the user to the full-list view and shows the main menu.
func (r *RealTelegramBotAdapter) handleStartCommand(ctx context.Context, message *tgbotapi.Message) error {
	msg, err := r.facade.HandleStart(ctx, message.From.ID, message.From.FirstName)
	if err != nil {
		return err
	}
	return r.send(ctx, message.Chat.ID, msg)
}

func (r *RealTelegramBotAdapter) handleSettingsCommand(ctx context.Context, message *tgbotapi.Message) error {
	return r.send(ctx, message.Chat.ID, r.facade.HandleSettings())
}

func (r *RealTelegramBotAdapter) handleHelpCommand(ctx context.Context, message *tgbotapi.Message) error {
	return r.send(ctx, message.Chat.ID, r.facade.HandleHelp())
}
