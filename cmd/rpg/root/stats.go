package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwebster45206/rpg-engine/pkg/storage"
)

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats NAME",
		Short: "Show a character's latest save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			repo, cleanup, err := openRepo(ctx, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := repo.LoadPlayer(ctx, args[0])
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("player %q not found", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), statsPanel(p))
			return nil
		},
	}
}
