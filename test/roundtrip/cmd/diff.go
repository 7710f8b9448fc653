package cmd

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/zostay/go-email-lite/message"
)

func parseOptions() []message.ParseOption {
	opts := []message.ParseOption{message.PreserveBreak()}
	if lenient {
		opts = append(opts, message.WithLenientHeaders())
	}
	return opts
}

// roundTrip serializes the message and compares it against the original text.
// It returns the unified patch text, which is empty when the two match.
func roundTrip(orig string, m *message.Message) string {
	out := m.String()
	if out == orig {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(orig, out)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	return dmp.PatchToText(dmp.PatchMake(orig, diffs))
}
