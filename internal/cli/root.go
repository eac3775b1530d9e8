package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/devsynth/internal/config"
	"github.com/alexanderramin/devsynth/internal/logging"
)

// configKeyAnnotation marks a flag as an override of a dotted config key.
const configKeyAnnotation = "devsynth_config_key"

// skipAppAnnotation marks commands that run without configuration or services.
const skipAppAnnotation = "devsynth_skip_app"

// NewRootCmd creates the top-level "devsynth" command. Configuration is
// resolved and the App is built once flags are parsed, before any
// subcommand runs.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "devsynth",
		Short:         "Synthesize instruction-tuning datasets for a developer assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipAppAnnotation] == "true" {
				return nil
			}
			cfg, source, err := config.Load(config.LoadOptions{
				Path:      configPath,
				Overrides: flagOverrides(cmd.Flags()),
			})
			if err != nil {
				return err
			}
			logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			logger.Debug().Str("source", sourceOrDefaults(source)).Msg("configuration loaded")
			return app.wire(cfg, logger)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default ./"+config.FileName+" or ~/."+config.FileName+")")
	pf.String("log-level", "info", "log level: trace, debug, info, warn, error, disabled")
	pf.String("log-format", "auto", "log format: auto, console, json")
	bindConfigKey(pf, "log-level", "log.level")
	bindConfigKey(pf, "log-format", "log.format")

	root.AddCommand(
		newGenerateCmd(app),
		newVerifyCmd(app),
		newTemplatesCmd(app),
		newRunsCmd(app),
		newConfigCmd(),
	)
	closeAfterRun(root, app)

	return root
}

// closeAfterRun wraps the RunE of cmd and its subcommands so the App is
// closed when the command returns. Cobra skips post-run hooks after a
// failed RunE.
func closeAfterRun(cmd *cobra.Command, app *App) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) (err error) {
			defer func() { err = errors.Join(err, app.Close()) }()
			return run(cmd, args)
		}
	}
	for _, sub := range cmd.Commands() {
		closeAfterRun(sub, app)
	}
}

// bindConfigKey makes a changed flag override key in the loaded config.
func bindConfigKey(fs *pflag.FlagSet, name, key string) {
	if err := fs.SetAnnotation(name, configKeyAnnotation, []string{key}); err != nil {
		panic(err)
	}
}

// flagOverrides collects the config keys of every flag set on the command
// line. Values are passed as strings and converted when the config is decoded.
func flagOverrides(fs *pflag.FlagSet) map[string]any {
	overrides := map[string]any{}
	fs.Visit(func(f *pflag.Flag) {
		if keys, ok := f.Annotations[configKeyAnnotation]; ok && len(keys) == 1 {
			overrides[keys[0]] = f.Value.String()
		}
	})
	return overrides
}

func sourceOrDefaults(source string) string {
	if source == "" {
		return "defaults"
	}
	return source
}

var errNoManifest = errors.New("no manifest configured; set manifest.db or pass --manifest-db")
