package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	lenient bool
)

var rootCmd = &cobra.Command{
	Use:   "roundtrip",
	Short: "Tools for testing message round-tripping",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every message checked")
	rootCmd.PersistentFlags().BoolVar(&lenient, "lenient", false, "skip malformed header lines instead of failing")
}

// setupLogger sends structured logs to stderr so that diffs on stdout stay
// readable.
func setupLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func Execute() error {
	return rootCmd.Execute()
}
