package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/devsynth/internal/cli/formatter"
	"github.com/alexanderramin/devsynth/internal/service"
)

func newGenerateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate train.jsonl and val.jsonl",
		Long: `Generate synthesizes task_creation and tech_qa examples from the template
registry, shuffles them, and writes a 90/10 train/validation split as chat
envelopes. The same seed always produces the same files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			res, err := app.Datasets.Generate(cmd.Context(), service.GenerateRequest{
				NumTasks:      cfg.Generate.NumTasks,
				NumQA:         cfg.Generate.NumQA,
				Seed:          cfg.Generate.Seed,
				Profile:       cfg.Generate.Profile,
				Workers:       cfg.Generate.Workers,
				OutDir:        cfg.Output.Dir,
				TemplatesFile: cfg.Templates.File,
				MetricsFile:   cfg.Metrics.File,
			})
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGenerate(res))
			return nil
		},
	}

	f := cmd.Flags()
	f.Int("num-tasks", 2000, "number of task_creation examples")
	f.Int("num-qa", 2000, "number of tech_qa examples")
	f.Uint64("seed", 0, "random seed; 0 picks one and reports it")
	f.String("profile", "standard", "task record profile: standard or compact")
	f.Int("workers", 4, "concurrent synthesis workers")
	f.String("out", "data/dataset", "output directory")
	f.String("templates", "", "template registry file (.yaml or .json); default builtin")
	f.String("manifest-db", "", "SQLite run manifest to record the run in")
	f.String("metrics-file", "", "write Prometheus metrics to this textfile")

	bindConfigKey(f, "num-tasks", "generate.num_tasks")
	bindConfigKey(f, "num-qa", "generate.num_qa")
	bindConfigKey(f, "seed", "generate.seed")
	bindConfigKey(f, "profile", "generate.profile")
	bindConfigKey(f, "workers", "generate.workers")
	bindConfigKey(f, "out", "output.dir")
	bindConfigKey(f, "templates", "templates.file")
	bindConfigKey(f, "manifest-db", "manifest.db")
	bindConfigKey(f, "metrics-file", "metrics.file")

	return cmd
}
