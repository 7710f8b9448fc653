package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zostay/go-email-lite/message"
)

var oneCmd = &cobra.Command{
	Use:   "one message",
	Short: "Shows the diff of a single message round-trip",
	Args:  cobra.ExactArgs(1),
	RunE:  RunOne,
}

func init() {
	rootCmd.AddCommand(oneCmd)
}

func RunOne(cmd *cobra.Command, args []string) error {
	path := args[0]
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read message: %w", err)
	}

	m, err := message.FromBytes(raw, parseOptions()...)
	if err != nil {
		return fmt.Errorf("unable to parse %s: %w", path, err)
	}

	for _, d := range m.Defects() {
		slog.Warn("skipped malformed header line", "path", path, "error", d)
	}

	patch := roundTrip(string(raw), m)
	if patch == "" {
		slog.Info("message round-tripped cleanly", "path", path)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "path = %s\n", path)
	fmt.Fprint(cmd.OutOrStdout(), patch)
	return nil
}
