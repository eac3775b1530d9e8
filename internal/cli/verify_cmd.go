package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/devsynth/internal/cli/formatter"
	"github.com/alexanderramin/devsynth/internal/service"
)

var errVerifyFailed = errors.New("dataset verification failed")

func newVerifyCmd(app *App) *cobra.Command {
	var runID string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that a written dataset parses and is split correctly",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Datasets.Verify(cmd.Context(), service.VerifyRequest{
				Dir:   app.Config.Output.Dir,
				RunID: runID,
			})
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatVerify(res))
			if !res.SplitOK || (res.Run != nil && !res.DigestMatch) {
				return errVerifyFailed
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.String("out", "data/dataset", "dataset directory")
	f.String("manifest-db", "", "SQLite run manifest")
	f.StringVar(&runID, "run", "", "also compare digests with this manifest run (id or prefix)")
	bindConfigKey(f, "out", "output.dir")
	bindConfigKey(f, "manifest-db", "manifest.db")

	return cmd
}
