package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/techdufus/taskboard/internal/app"
	"github.com/techdufus/taskboard/internal/config"
	"github.com/techdufus/taskboard/internal/logging"
)

var (
	cfgFile    string
	boardPath  string
	useSample  bool
	generateN  int
	debugLevel bool
)

var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "Terminal kanban board with drag and drop",
	Long: `Taskboard is a terminal kanban board. Cards can be dragged between
columns with the mouse or moved with the keyboard, and edited in place.

The initial board comes from a JSON or TOML seed file, the built-in
sample, or a generated board for trying out large columns.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if debugLevel {
			cfg.Logging.Level = "debug"
		}

		logger, err := logging.New(cfg)
		if err != nil {
			stderrLogger().Warn("logging disabled", "err", err)
			logger = logging.Discard()
		}
		defer logger.Close()

		b, err := app.LoadBoard(cfg, app.Source{
			SeedPath: boardPath,
			Sample:   useSample,
			Generate: generateN,
		}, time.Now())
		if err != nil {
			return err
		}

		if err := app.Run(cfg, b, logger.Logger); err != nil {
			if path := logger.Path(); path != "" {
				return fmt.Errorf("%w (log: %s)", err, path)
			}
			return err
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/taskboard/config.json)")
	rootCmd.Flags().StringVarP(&boardPath, "board", "b", "", "seed file to open (.json or .toml)")
	rootCmd.Flags().BoolVar(&useSample, "sample", false, "open the built-in sample board")
	rootCmd.Flags().IntVar(&generateN, "generate", 0, "open a generated board with this many cards")
	rootCmd.Flags().BoolVar(&debugLevel, "debug", false, "log at debug level")
	rootCmd.MarkFlagsMutuallyExclusive("board", "sample", "generate")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(sampleCmd)
}

// stderrLogger is used by subcommands, which do not own the terminal.
func stderrLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:    "taskboard",
		Formatter: log.TextFormatter,
	})
}
