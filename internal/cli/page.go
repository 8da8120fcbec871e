package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Brze0x/sixties-life-bot/internal/application"
	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/domain/ports/adapter"
	tele "github.com/Brze0x/sixties-life-bot/internal/infra/adapters/telegram"
	"github.com/Brze0x/sixties-life-bot/internal/infra/i18n"
	"github.com/Brze0x/sixties-life-bot/internal/usecase"
)

func newPageCmd(e *env) *cobra.Command {
	var (
		chatID int64
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "page <category> [page]",
		Short: "Render one page of a category and print the keyboard JSON",
		Long: "Render one page the way the bot shows it. With --chat the page is sent to that chat; " +
			"--dry-run logs the message instead of calling Telegram.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			page := 1
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("page must be an integer: %w", err)
				}
				page = n
			}

			tr, err := newTranslator(e)
			if err != nil {
				return err
			}
			newsUC := newNewsUseCase(e, tr)
			view, err := newsUC.Page(cmd.Context(), args[0], page)
			if err != nil {
				return fmt.Errorf("render %s: %w", args[0], err)
			}

			if chatID != 0 {
				bot, err := newOutbound(e, newsUC, tr, dryRun)
				if err != nil {
					return err
				}
				if err := bot.SendKeyboard(cmd.Context(), chatID, view.Text, view.Keyboard); err != nil {
					return fmt.Errorf("send to %d: %w", chatID, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "sent %s page %d/%d to chat %d\n", view.Category, view.Page, view.PageCount, chatID)
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(view)
		},
	}
	cmd.Flags().Int64Var(&chatID, "chat", 0, "send the page to this chat id")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "with --chat, log instead of sending")
	return cmd
}

// newOutbound returns the Telegram sender: the real Bot API, or the logging
// adapter for dry runs.
func newOutbound(e *env, newsUC usecase.NewsUseCase, tr *i18n.Translator, dryRun bool) (adapter.TelegramBotAdapter, error) {
	if dryRun {
		return tele.NewNoopBotAdapter(e.log), nil
	}
	if e.cfg.Bot.Token == "" {
		return nil, errors.New("bot.token (or BOT_TOKEN) is required to send; use --dry-run")
	}
	facade := application.NewBotFacade(newsUC, noPrefs{}, tr, e.log)
	return tele.NewRealTelegramBotAdapter(&e.cfg.Bot, facade, nil, e.log)
}

var errNoPrefs = errors.New("preferences are not available when only sending")

// noPrefs fills the facade slot when the adapter is used only for sending.
type noPrefs struct{}

func (noPrefs) Status(context.Context, int64) (model.PaginationStatus, error) {
	return model.PaginationOff, nil
}
func (noPrefs) Set(context.Context, int64, model.PaginationStatus) error { return errNoPrefs }
func (noPrefs) Init(context.Context, int64) error                         { return errNoPrefs }
