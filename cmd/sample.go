package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/techdufus/taskboard/internal/app"
	"github.com/techdufus/taskboard/internal/seed"
)

var (
	sampleFormat   string
	sampleGenerate int
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write a sample seed file to stdout",
	Example: `  taskboard sample --format toml > board.toml
  taskboard sample --generate 500 > big.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := seed.ParseFormat(sampleFormat)
		if err != nil {
			return err
		}
		if sampleGenerate > 0 {
			stderrLogger().Info("generating board", "tasks", sampleGenerate, "format", string(format))
		}
		return app.WriteSample(cmd.OutOrStdout(), format, sampleGenerate, time.Now())
	},
}

func init() {
	sampleCmd.Flags().StringVarP(&sampleFormat, "format", "f", "json", "output format (json or toml)")
	sampleCmd.Flags().IntVar(&sampleGenerate, "generate", 0, "generate this many cards instead of the demo board")
}
