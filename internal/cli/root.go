// Package cli implements newsctl, the operator tool for the news bot.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Brze0x/sixties-life-bot/internal/config"
	"github.com/Brze0x/sixties-life-bot/internal/infra/logging"
)

// env is what every subcommand gets after the root pre-run.
type env struct {
	cfg *config.Config
	log *zerolog.Logger
}

// NewRootCmd creates the root cobra command for newsctl.
func NewRootCmd() *cobra.Command {
	var (
		flagConfig   string
		flagDev      bool
		flagLogLevel string
	)
	e := &env{}

	root := &cobra.Command{
		Use:   "newsctl",
		Short: "Inspect news feeds and manage reader preferences",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadUnvalidated(flagConfig, flagDev)
			if err != nil {
				return err
			}
			if flagLogLevel != "" {
				cfg.Log.Level = flagLogLevel
			}
			e.cfg = cfg
			e.log = logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Log, flagDev)
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "config.yaml", "path to YAML config file")
	root.PersistentFlags().BoolVar(&flagDev, "dev", false, "console logs")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")

	root.AddCommand(
		newFetchCmd(e),
		newPageCmd(e),
		newPrefCmd(e),
		newMigrateCmd(e),
		newTokenCmd(e),
	)
	return root
}
