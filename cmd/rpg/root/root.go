// Package root holds the commands of the offline rpg CLI. It plays against
// the SQLite save file only; no API or Redis is needed.
package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const Version = "0.1.0"

type options struct {
	dbPath  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "rpg",
		Short:         "Play the RPG offline against a local save file",
		Long:          "rpg runs games without the API server. Saves go to the same SQLite file the server uses.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite save file (default $DB_PATH or rpg_game.db)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log storage activity to stderr")

	cmd.AddCommand(
		newPlayCmd(opts),
		newStatsCmd(opts),
		newSavesCmd(opts),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, Bad.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
