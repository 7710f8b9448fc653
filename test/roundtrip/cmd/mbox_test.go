package cmd

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	gombox "github.com/emersion/go-mbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMboxFile(t *testing.T, raws ...string) string {
	t.Helper()

	buf := &bytes.Buffer{}
	w := gombox.NewWriter(buf)
	for _, raw := range raws {
		mw, err := w.CreateMessage("sender@example.com", time.Now())
		require.NoError(t, err)
		_, err = io.WriteString(mw, raw)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "test.mbox")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	logs := &bytes.Buffer{}
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return logs
}

func TestRunMbox(t *testing.T) {
	logs := captureLogs(t)

	path := writeMboxFile(t,
		"Subject: one\n\nok\n",
		"Content-Type: nonsense\n\nbad\n",
		"Subject: three\n\nok\n",
	)

	out := &bytes.Buffer{}
	mboxCmd.SetOut(out)
	require.NoError(t, RunMbox(mboxCmd, []string{path}))

	assert.Empty(t, out.String())
	assert.Contains(t, logs.String(), `"msg":"message failed to parse","index":1`)
	assert.Contains(t, logs.String(), `"msg":"message round-tripped cleanly","index":2`)
	assert.Contains(t, logs.String(), `"messages":3,"failed":1,"differ":0`)
}

func TestRunMbox_NotAMailbox(t *testing.T) {
	captureLogs(t)

	path := filepath.Join(t.TempDir(), "plain.eml")
	require.NoError(t, os.WriteFile(path, []byte("Subject: hi\n\nbody\n"), 0o644))

	assert.Error(t, RunMbox(mboxCmd, []string{path}))
}
