package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/techdufus/taskboard/internal/app"
)

var checkCmd = &cobra.Command{
	Use:   "check <seed>",
	Short: "Validate a seed file and summarize its columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := stderrLogger()

		r, err := app.Check(args[0], time.Now())
		if err != nil {
			return err
		}
		if err := r.Write(cmd.OutOrStdout()); err != nil {
			return err
		}
		for _, w := range r.Warnings() {
			logger.Warn(w)
		}
		return nil
	},
}
