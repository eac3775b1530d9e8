package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/devsynth/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage the configuration file",
		Annotations: map[string]string{skipAppAnnotation: "true"},
	}

	cmd.AddCommand(&cobra.Command{
		Use:         "init [PATH]",
		Short:       "Write a commented sample config (default ./" + config.FileName + ")",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipAppAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.FileName
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.InitConfig(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	})

	return cmd
}
