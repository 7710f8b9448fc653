package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zostay/go-email-lite/mbox"
	"github.com/zostay/go-email-lite/message"
)

var mboxCmd = &cobra.Command{
	Use:   "mbox mailbox",
	Short: "Round-trips every message of an mbox and reports the ones that differ",
	Args:  cobra.ExactArgs(1),
	RunE:  RunMbox,
}

func init() {
	rootCmd.AddCommand(mboxCmd)
}

func RunMbox(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unable to open mbox: %w", err)
	}
	defer func() { _ = f.Close() }()

	var total, failed, differ int
	r := mbox.NewReader(f, parseOptions()...)
	for ix := 0; ; ix++ {
		m, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		// anything but a bad message means the mailbox cannot be read further
		var merr *mbox.MessageError
		if err != nil && !errors.As(err, &merr) {
			return err
		}

		total++
		if merr != nil {
			failed++
			slog.Error("message failed to parse", "index", merr.Index, "error", merr.Err)
			continue
		}

		// the raw text is consumed by the mbox reader, so check that the
		// output is stable when parsed and written a second time
		out := m.String()
		again, err := message.FromText(out, parseOptions()...)
		if err != nil {
			failed++
			slog.Error("round-tripped message failed to parse", "index", ix, "error", err)
			continue
		}

		if patch := roundTrip(out, again); patch != "" {
			differ++
			fmt.Fprintf(cmd.OutOrStdout(), "message %d\n%s", ix, patch)
			continue
		}

		slog.Debug("message round-tripped cleanly", "index", ix)
	}

	slog.Info("mbox checked",
		"path", path,
		"messages", total,
		"failed", failed,
		"differ", differ,
	)

	return nil
}
