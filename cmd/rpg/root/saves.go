package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSavesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "saves",
		Short: "List saved characters, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			repo, cleanup, err := openRepo(ctx, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			saves, err := repo.ListSaves(ctx)
			if err != nil {
				return err
			}
			if len(saves) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), Muted.Render("No saves yet."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), Title.Render("Saves"))
			for _, s := range saves {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
					Muted.Render(fmt.Sprintf("#%-4d", s.ID)),
					Key.Render(s.Name),
					fmt.Sprintf("Level %d", s.Level))
			}
			return nil
		},
	}
}
