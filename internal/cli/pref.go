package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Brze0x/sixties-life-bot/internal/domain/model"
	"github.com/Brze0x/sixties-life-bot/internal/infra/db"
	"github.com/Brze0x/sixties-life-bot/internal/usecase"
)

// withPrefs opens the store, runs fn with a preference use case and closes the store.
func withPrefs(cmd *cobra.Command, e *env, fn func(uc usecase.PreferenceUseCase) error) error {
	if err := e.cfg.Database.Validate(); err != nil {
		return err
	}
	store, err := db.Open(cmd.Context(), e.cfg.Database, e.log)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(usecase.NewPreferenceUseCase(store.Prefs, store.TM, e.log))
}

func parseUserID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return id, nil
}

func newPrefCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pref",
		Short: "Read or change reader pagination preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <user_id>",
		Short: "Print the pagination status of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			return withPrefs(cmd, e, func(uc usecase.PreferenceUseCase) error {
				status, err := uc.Status(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), status)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set <user_id> <on|off>",
		Short:     "Switch pagination on or off for a user",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseUserID(args[0])
			if err != nil {
				return err
			}
			status, err := model.ParseStatus(args[1])
			if err != nil {
				return err
			}
			return withPrefs(cmd, e, func(uc usecase.PreferenceUseCase) error {
				if err := uc.Set(cmd.Context(), id, status); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "user %d: %s\n", id, status)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "count",
		Short: "Print how many users have a stored preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPrefs(cmd, e, func(uc usecase.PreferenceUseCase) error {
				n, err := uc.Count(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			})
		},
	})
	return cmd
}
