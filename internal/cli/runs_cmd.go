package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/devsynth/internal/cli/formatter"
)

func newRunsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "runs",
		Aliases: []string{"run"},
		Short:   "Inspect the run manifest",
	}

	cmd.PersistentFlags().String("manifest-db", "", "SQLite run manifest")
	bindConfigKey(cmd.PersistentFlags(), "manifest-db", "manifest.db")

	cmd.AddCommand(
		newRunsListCmd(app),
		newRunsShowCmd(app),
		newRunsRemoveCmd(app),
	)

	return cmd
}

func newRunsListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := app.runs()
			if err != nil {
				return err
			}
			list, err := runs.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRunList(list, time.Now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to show; 0 for all")

	return cmd
}

func newRunsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a run's seed, counts and digests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := app.runs()
			if err != nil {
				return err
			}
			run, err := runs.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRun(run))
			return nil
		},
	}
}

func newRunsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a run from the manifest (dataset files are kept)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := app.runs()
			if err != nil {
				return err
			}
			if err := runs.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed run %s\n", args[0])
			return nil
		},
	}
}
