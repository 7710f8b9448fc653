package mbox_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	gombox "github.com/emersion/go-mbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-email-lite/mbox"
	"github.com/zostay/go-email-lite/message"
	"github.com/zostay/go-email-lite/message/header"
)

// writeMbox builds an mbox holding the given raw messages.
func writeMbox(t *testing.T, raws ...string) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	w := gombox.NewWriter(buf)
	when := time.Date(2020, time.October, 13, 8, 0, 0, 0, time.UTC)
	for _, raw := range raws {
		mw, err := w.CreateMessage("sender@example.com", when)
		require.NoError(t, err)
		_, err = io.WriteString(mw, raw)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func TestReader(t *testing.T) {
	t.Parallel()

	data := writeMbox(t,
		"Subject: first\nTo: a@example.com\n\nOne.\n",
		"Subject: second\n\nFrom the top.\n",
	)

	r := mbox.NewReader(bytes.NewReader(data))

	m, err := r.Next()
	require.NoError(t, err)
	s, err := m.GetSubject()
	assert.NoError(t, err)
	assert.Equal(t, "first", s)
	assert.Equal(t, 2, m.Len())

	m, err = r.Next()
	require.NoError(t, err)
	s, err = m.GetSubject()
	assert.NoError(t, err)
	assert.Equal(t, "second", s)
	assert.Contains(t, m.Body, "the top.")

	m, err = r.Next()
	assert.Nil(t, m)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReader_BadMessage(t *testing.T) {
	t.Parallel()

	data := writeMbox(t,
		"Subject: good\n\nok\n",
		"Content-Type: nonsense\n\nbad\n",
		"Subject: also good\n\nok\n",
	)

	r := mbox.NewReader(bytes.NewReader(data))

	_, err := r.Next()
	require.NoError(t, err)

	_, err = r.Next()
	var merr *mbox.MessageError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, 1, merr.Index)
	assert.ErrorIs(t, err, header.ErrMalformedContentType)

	m, err := r.Next()
	require.NoError(t, err)
	s, _ := m.GetSubject()
	assert.Equal(t, "also good", s)
}

func TestReader_Lenient(t *testing.T) {
	t.Parallel()

	data := writeMbox(t, "Content-Type: nonsense\nSubject: kept\n\nbody\n")

	msgs, err := mbox.NewReader(bytes.NewReader(data), message.WithLenientHeaders()).ReadAll()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Len(t, msgs[0].Defects(), 1)
	assert.Equal(t, []string{"Subject"}, msgs[0].Names())
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "inbox.mbox")
	require.NoError(t, os.WriteFile(path, writeMbox(t,
		"Subject: 1\n\na\n",
		"Subject: 2\n\nb\n",
		"Subject: 3\n\nc\n",
	), 0o644))

	msgs, err := mbox.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	for i, want := range []string{"1", "2", "3"} {
		s, err := msgs[i].GetSubject()
		assert.NoError(t, err)
		assert.Equal(t, want, s)
	}

	_, err = mbox.ReadFile(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadAll_Empty(t *testing.T) {
	t.Parallel()

	msgs, err := mbox.NewReader(bytes.NewReader(nil)).ReadAll()
	assert.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestReader_InvalidMailbox(t *testing.T) {
	t.Parallel()

	r := mbox.NewReader(bytes.NewReader([]byte("Subject: not an mbox\n\nbody\n")))

	m, err := r.Next()
	assert.Nil(t, m)
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)

	var merr *mbox.MessageError
	assert.False(t, errors.As(err, &merr))

	// the failure sticks
	_, again := r.Next()
	assert.Equal(t, err, again)

	msgs, err := mbox.NewReader(bytes.NewReader([]byte("Subject: not an mbox\n"))).ReadAll()
	assert.Error(t, err)
	assert.Empty(t, msgs)
}
