package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/devsynth/internal/cli/formatter"
)

func newTemplatesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"template"},
		Short:   "Browse the instruction template registry",
	}

	pf := cmd.PersistentFlags()
	pf.String("templates", "", "template registry file (.yaml or .json); default builtin")
	pf.String("profile", "standard", "task record profile used by sample")
	bindConfigKey(pf, "templates", "templates.file")
	bindConfigKey(pf, "profile", "generate.profile")

	cmd.AddCommand(
		newTemplatesListCmd(app),
		newTemplatesShowCmd(app),
		newTemplatesSampleCmd(app),
	)

	return cmd
}

func newTemplatesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List task and Q&A templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Templates.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplateList(templates))
			return nil
		},
	}
}

func newTemplatesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a template's pattern and pools",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Templates.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTemplate(t))
			return nil
		},
	}
}

func newTemplatesSampleCmd(app *App) *cobra.Command {
	var (
		n    int
		seed uint64
	)

	cmd := &cobra.Command{
		Use:   "sample ID",
		Short: "Expand a template a few times and print the examples",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 1 {
				return fmt.Errorf("-n must be at least 1, got %d", n)
			}
			examples, err := app.Templates.Sample(cmd.Context(), args[0], n, seed)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSamples(examples))
			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "count", "n", 3, "number of examples")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed; 0 picks one")

	return cmd
}
