package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/domain/pagination"
	"github.com/Brze0x/sixties-life-bot/internal/infra/i18n"
	"github.com/Brze0x/sixties-life-bot/internal/infra/news"
	"github.com/Brze0x/sixties-life-bot/internal/usecase"
)

func newTranslator(e *env) (*i18n.Translator, error) {
	return i18n.NewTranslator(i18n.LocalesFS, e.cfg.Bot.Language)
}

func newNewsUseCase(e *env, tr *i18n.Translator) usecase.NewsUseCase {
	client := news.NewClient(e.cfg.News.BaseURL, e.cfg.News.Timeout, e.log)
	back := pagination.Button{Text: tr.T("btn_back"), Data: model.CallbackMainMenu}
	return usecase.NewNewsUseCase(client, model.DefaultCatalog(), e.cfg.Pagination.Labels, back, e.log)
}

func newFetchCmd(e *env) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "fetch <category>",
		Short: "Fetch a category and print its items, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := newTranslator(e)
			if err != nil {
				return err
			}
			source, items, err := newNewsUseCase(e, tr).Feed(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetch %s: %w", args[0], err)
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"source": source, "category": args[0], "items": items})
			}
			fmt.Fprintf(out, "%s/%s: %d items\n", source, args[0], len(items))
			for _, it := range items {
				fmt.Fprintf(out, "\n%s\n", it.Format())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}
